package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/invoicer/internal/infra/fsworkspace"
	"github.com/aalvaropc/invoicer/internal/infra/logger"
	"github.com/aalvaropc/invoicer/internal/ui/tui"
	"github.com/aalvaropc/invoicer/internal/usecase"
)

func initCmd(g *globalFlags) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a workspace with invoicer.yaml, a sample config and the default templates",
		Args:  usageArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			root, err := filepath.Abs(dir)
			if err != nil {
				return err
			}

			if err := usecase.NewInitWorkspace(fsworkspace.NewInitializer()).Execute(root, force); err != nil {
				return err
			}

			cleanup, logErr := logger.Setup(logger.Config{Root: root, Debug: g.debug})
			if logErr == nil {
				defer func() { _ = cleanup() }()
			}
			logger.L().Info("workspace.initialized", "root", root, "force", force)

			theme := tui.DefaultTheme()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, theme.Title.Render("Workspace ready: ")+root)
			fmt.Fprintln(out, theme.Help.Render("Edit config.yaml, then run: invoicer <year> <month> <clientKey>"))
			return nil
		},
	}

	c.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	return c
}
