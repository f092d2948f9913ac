package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// hideAutomation masks the most common headless fingerprints before any page
// script runs.
const hideAutomation = `
Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
Object.defineProperty(navigator, 'languages', { get: () => ['en-US', 'en'] });
window.chrome = window.chrome || { runtime: {} };
`

func applyStealth(bctx playwright.BrowserContext) error {
	if err := bctx.AddInitScript(playwright.Script{Content: playwright.String(hideAutomation)}); err != nil {
		return fmt.Errorf("could not add stealth script: %w", err)
	}
	if err := bctx.SetExtraHTTPHeaders(map[string]string{
		"Accept-Language": "en-US,en;q=0.9",
	}); err != nil {
		return fmt.Errorf("could not set headers: %w", err)
	}
	return nil
}
