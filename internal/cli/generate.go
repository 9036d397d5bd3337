package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/invoicer/internal/domain"
	"github.com/aalvaropc/invoicer/internal/infra/logger"
	"github.com/aalvaropc/invoicer/internal/ui/tui"
	"github.com/aalvaropc/invoicer/internal/usecase"
)

func runGenerate(cmd *cobra.Command, g *globalFlags, args []string) error {
	req, err := domain.ParseRequest(args)
	if err != nil {
		return err
	}

	ws, err := loadWorkspace(g, cmd.Flags())
	if err != nil {
		return err
	}
	defer ws.Close()

	var res usecase.GenerateResult
	title := "Invoice " + req.ClientKey + " " + req.Period.Label()

	err = tui.RunWithProgress(cmd.Context(), cmd.ErrOrStderr(), title, logger.L(), func(ctx context.Context, step tui.StepFunc) error {
		opts := []usecase.GenerateOption{
			usecase.WithLogger(logger.L()),
			usecase.WithProgress(step),
		}
		if ws.publisher != nil {
			opts = append(opts, usecase.WithPublisher(ws.publisher))
		}

		uc := usecase.NewGenerateInvoice(ws.config, ws.templates, ws.renderer, ws.store, opts...)

		var runErr error
		res, runErr = uc.Execute(ctx, req, ws.settings)
		return runErr
	})
	if err != nil {
		if res.Artifacts.PDFPath != "" {
			printSummary(cmd.OutOrStdout(), res, ws.settings)
		}
		return err
	}

	printSummary(cmd.OutOrStdout(), res, ws.settings)
	return nil
}
