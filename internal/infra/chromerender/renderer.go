// Package chromerender prints the assembled invoice HTML to PDF with a
// headless Chrome driven over the DevTools protocol.
package chromerender

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/aalvaropc/invoicer/internal/domain"
	"github.com/aalvaropc/invoicer/internal/ports"
)

// A4 in inches, as expected by Page.printToPDF.
const (
	a4WidthIn  = 8.27
	a4HeightIn = 11.69
)

type Renderer struct {
	execPath string
	timeout  time.Duration
}

type Option func(*Renderer)

// WithExecPath points at a specific Chrome/Chromium binary.
func WithExecPath(path string) Option {
	return func(r *Renderer) { r.execPath = strings.TrimSpace(path) }
}

func WithTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func New(opts ...Option) *Renderer {
	r := &Renderer{timeout: 60 * time.Second}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.Renderer = (*Renderer)(nil)

func (r *Renderer) Render(ctx context.Context, doc domain.Document) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.NoSandbox)
	if r.execPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(r.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	html := InlineStylesheet(doc.HTML, doc.CSS)

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4WidthIn).
				WithPaperHeight(a4HeightIn).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "chromerender.render",
			Kind: domain.KindRender,
			Err:  fmt.Errorf("%w: %v", domain.ErrRenderFailed, err),
		}
	}
	if len(pdf) == 0 {
		return nil, &domain.OpError{
			Op:   "chromerender.render",
			Kind: domain.KindRender,
			Err:  fmt.Errorf("%w: empty document", domain.ErrRenderFailed),
		}
	}

	return pdf, nil
}

// InlineStylesheet returns html with css embedded in a <style> element at
// the end of <head>, so the page renders without resolving style.css.
func InlineStylesheet(html string, css []byte) string {
	if len(css) == 0 {
		return html
	}

	style := "<style>\n" + string(css) + "\n</style>\n"

	lower := strings.ToLower(html)
	if i := strings.Index(lower, "</head>"); i >= 0 {
		return html[:i] + style + html[i:]
	}
	return style + html
}
