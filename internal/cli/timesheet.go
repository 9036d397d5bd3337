package cli

import (
	"github.com/spf13/cobra"

	"github.com/aalvaropc/invoicer/internal/domain"
	"github.com/aalvaropc/invoicer/internal/infra/settings"
	"github.com/aalvaropc/invoicer/internal/usecase/timesheet"
)

func timesheetCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "timesheet <year> <month> [customHours]",
		Short:   "Print the calendar grid and billable hours without rendering",
		Example: "  invoicer timesheet 2024 1 2024-01-15:4,2024-01-16:0",
		Args:    usageArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := domain.ParsePeriod(args[0], args[1])
			if err != nil {
				return err
			}

			var custom domain.CustomHours
			if len(args) == 3 {
				if custom, err = domain.ParseCustomHours(args[2]); err != nil {
					return err
				}
			}

			// Only settings are needed; a missing workspace falls back to defaults.
			root, err := resolveWorkspaceRoot(g.workspace)
			if err != nil {
				return err
			}
			s, err := settings.Load(root, cmd.Flags())
			if err != nil {
				return err
			}

			sheet, err := timesheet.Build(p, custom, timesheet.Options{
				DailyHours: s.Billing.DailyHours,
				WeekStart:  s.Calendar.WeekStart,
			})
			if err != nil {
				return err
			}

			printTimesheet(cmd.OutOrStdout(), sheet, timesheet.OutOfPeriod(p, custom))
			return nil
		},
	}
}
