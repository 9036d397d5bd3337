package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/invoicer/internal/ui/tui"
	"github.com/aalvaropc/invoicer/internal/usecase"
)

func validateCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the data config and template without rendering",
		Args:  usageArgs(0, 0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(g, cmd.Flags())
			if err != nil {
				return err
			}
			defer ws.Close()

			rep, err := usecase.NewValidateWorkspace(ws.config, ws.templates).Execute(cmd.Context(), ws.settings)
			if err != nil {
				return err
			}

			theme := tui.DefaultTheme()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, theme.Title.Render("OK"))
			fmt.Fprintf(out, "Template: %s\n", rep.TemplatePath)
			fmt.Fprintf(out, "Clients:  %d\n", rep.Clients)
			fmt.Fprintf(out, "Accounts: %d active (%s)\n", rep.ActiveAccounts, rep.Payment)
			if len(rep.UnusedPlaceholders) > 0 {
				fmt.Fprintln(out, theme.Help.Render("Unused placeholders: "+strings.Join(rep.UnusedPlaceholders, ", ")))
			}
			return nil
		},
	}
}
