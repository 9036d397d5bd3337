package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/aalvaropc/invoicer/internal/domain"
	"github.com/aalvaropc/invoicer/internal/infra/artifactstore"
	"github.com/aalvaropc/invoicer/internal/infra/assets"
	"github.com/aalvaropc/invoicer/internal/infra/chromerender"
	"github.com/aalvaropc/invoicer/internal/infra/config"
	"github.com/aalvaropc/invoicer/internal/infra/logger"
	"github.com/aalvaropc/invoicer/internal/infra/pdfrender"
	"github.com/aalvaropc/invoicer/internal/infra/s3publish"
	"github.com/aalvaropc/invoicer/internal/infra/settings"
	"github.com/aalvaropc/invoicer/internal/infra/workspacefinder"
	"github.com/aalvaropc/invoicer/internal/ports"
)

type workspaceCtx struct {
	root     string
	settings domain.Settings

	config    ports.ConfigProvider
	templates ports.TemplateSource
	renderer  ports.Renderer
	store     ports.ArtifactStore
	publisher ports.Publisher

	closeLog func() error
}

func (ws *workspaceCtx) Close() {
	if ws.closeLog != nil {
		_ = ws.closeLog()
	}
}

// loadWorkspace resolves the workspace root, starts the log file, reads the
// settings and builds the adapters they select.
func loadWorkspace(g *globalFlags, flags *pflag.FlagSet) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(g.workspace)
	if err != nil {
		return nil, err
	}

	ws := &workspaceCtx{root: root}

	cleanup, logErr := logger.Setup(logger.Config{Root: root, Debug: g.debug})
	if logErr == nil {
		ws.closeLog = cleanup
	}

	s, err := settings.Load(root, flags)
	if err != nil {
		logger.L().Error("settings.load_failed", "root", root, "error", err)
		ws.Close()
		return nil, err
	}
	ws.settings = s

	ws.config = config.NewLoader()
	ws.templates = assets.NewLoader(s.Paths.TemplateDir)
	ws.renderer = newRenderer(s)
	ws.store = artifactstore.NewFileStore(s.Paths.OutputDir, artifactstore.WithFileMode(s.Paths.FileMode))

	if s.Publish.Enabled {
		pub, err := s3publish.New(s.Publish)
		if err != nil {
			ws.Close()
			return nil, err
		}
		ws.publisher = pub
	}

	logger.L().Debug("workspace.loaded",
		"root", root,
		"config", s.Paths.ConfigFile,
		"templates", s.Paths.TemplateDir,
		"output", s.Paths.OutputDir,
		"renderer", string(s.Render.Backend),
	)

	return ws, nil
}

func newRenderer(s domain.Settings) ports.Renderer {
	if s.Render.Backend == domain.RendererNative {
		return pdfrender.New(
			pdfrender.WithCurrency(s.Billing.Currency),
			pdfrender.WithDateLayout(s.Billing.DateLayout),
		)
	}
	return chromerender.New(
		chromerender.WithExecPath(s.Render.ChromePath),
		chromerender.WithTimeout(s.Render.Timeout),
	)
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	if w := strings.TrimSpace(workspaceFlag); w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return workspacefinder.NewFinder().Resolve(wd)
}
