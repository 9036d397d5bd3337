package cli

import (
	"github.com/spf13/cobra"
)

func clientsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clients",
		Short: "List the clients of the data config",
		Args:  usageArgs(0, 0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(g, cmd.Flags())
			if err != nil {
				return err
			}
			defer ws.Close()

			reg, err := ws.config.LoadRegistry(ws.settings.Paths.ConfigFile)
			if err != nil {
				return err
			}

			printClients(cmd.OutOrStdout(), reg, ws.settings)
			return nil
		},
	}
}
