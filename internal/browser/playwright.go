package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-naukri-scraper/internal/config"
	"go-naukri-scraper/internal/dom"
	"go-naukri-scraper/pkg/logging"
)

// navigationTimeout bounds a single page.Goto.
const navigationTimeout = 30 * time.Second

type PlaywrightManager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	cfg     config.BrowserConfig
}

// NewPlaywright starts the driver and a chromium instance.
func NewPlaywright(ctx context.Context, cfg config.BrowserConfig) (*PlaywrightManager, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cfg.InstallDriver {
		if err := playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}}); err != nil {
			return nil, fmt.Errorf("could not install playwright driver: %w", err)
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		Args:     cfg.Args,
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("could not launch chromium browser: %w", err)
	}

	return &PlaywrightManager{pw: pw, browser: browser, cfg: cfg}, nil
}

// NewContext opens an isolated browser context with the configured identity.
func (pm *PlaywrightManager) NewContext() (playwright.BrowserContext, error) {
	opts := playwright.BrowserNewContextOptions{
		Locale: playwright.String("en-US"),
	}
	if pm.cfg.UserAgent != "" {
		opts.UserAgent = playwright.String(pm.cfg.UserAgent)
	}
	if pm.cfg.ViewportWidth > 0 && pm.cfg.ViewportHeight > 0 {
		opts.Viewport = &playwright.Size{Width: pm.cfg.ViewportWidth, Height: pm.cfg.ViewportHeight}
	}

	bctx, err := pm.browser.NewContext(opts)
	if err != nil {
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}
	if err := applyStealth(bctx); err != nil {
		_ = bctx.Close()
		return nil, err
	}
	return bctx, nil
}

// PrintPDF renders an HTML document to an A4 PDF in a throwaway page.
func (pm *PlaywrightManager) PrintPDF(htmlContent string) ([]byte, error) {
	page, err := pm.browser.NewPage()
	if err != nil {
		return nil, fmt.Errorf("could not create new page: %w", err)
	}
	defer page.Close()

	if err := page.SetContent(htmlContent, playwright.PageSetContentOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	}); err != nil {
		return nil, fmt.Errorf("could not set page content: %w", err)
	}

	pdfBytes, err := page.PDF(playwright.PagePdfOptions{
		Format:          playwright.String("A4"),
		PrintBackground: playwright.Bool(true),
		Margin: &playwright.Margin{
			Top:    playwright.String("12mm"),
			Bottom: playwright.String("12mm"),
			Left:   playwright.String("10mm"),
			Right:  playwright.String("10mm"),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("could not generate PDF: %w", err)
	}
	return pdfBytes, nil
}

func (pm *PlaywrightManager) Close() error {
	var firstErr error
	if pm.browser != nil {
		if err := pm.browser.Close(); err != nil {
			firstErr = fmt.Errorf("close browser: %w", err)
		}
	}
	if pm.pw != nil {
		if err := pm.pw.Stop(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("stop playwright: %w", err)
		}
	}
	return firstErr
}

// Launcher starts one chromium session per Start call.
type Launcher struct {
	cfg config.BrowserConfig
	log *logging.Logger
}

func NewLauncher(cfg config.BrowserConfig, log *logging.Logger) *Launcher {
	return &Launcher{cfg: cfg, log: log}
}

func (l *Launcher) Start(ctx context.Context) (dom.Session, error) {
	pm, err := NewPlaywright(ctx, l.cfg)
	if err != nil {
		return nil, err
	}

	bctx, err := pm.NewContext()
	if err != nil {
		_ = pm.Close()
		return nil, err
	}

	page, err := bctx.NewPage()
	if err != nil {
		_ = pm.Close()
		return nil, fmt.Errorf("could not create new page: %w", err)
	}
	if l.cfg.ActionTimeout > 0 {
		page.SetDefaultTimeout(ms(l.cfg.ActionTimeout))
	}

	l.log.Info("✅ Browser initialized successfully!", "headless", l.cfg.Headless)
	return &Session{pm: pm, page: newPage(page, l.cfg.ActionTimeout)}, nil
}

// Session owns the browser behind one scrape run.
type Session struct {
	pm   *PlaywrightManager
	page *Page
}

func (s *Session) Page() dom.Page { return s.page }

// Manager exposes the running browser for side jobs such as PDF rendering.
func (s *Session) Manager() *PlaywrightManager { return s.pm }

func (s *Session) Close() error {
	return s.pm.Close()
}

func ms(d time.Duration) float64 {
	return float64(d / time.Millisecond)
}
