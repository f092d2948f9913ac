package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go-naukri-scraper/internal/dom"
	"go-naukri-scraper/pkg/logging"
)

// ScreenShotDebugger saves best-effort diagnostic captures. A nil or disabled
// debugger does nothing.
type ScreenShotDebugger struct {
	outputDir string
	log       *logging.Logger
}

func NewScreenShotDebugger(dir string, log *logging.Logger) *ScreenShotDebugger {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Warn("⚠️ Failed to create screenshots directory", "dir", dir, "error", err)
	}
	return &ScreenShotDebugger{
		outputDir: dir,
		log:       log,
	}
}

// CaptureAndLog writes <name>_<timestamp>.png and returns its path.
func (s *ScreenShotDebugger) CaptureAndLog(page dom.Page, name, message string) (string, error) {
	if s == nil {
		return "", nil
	}
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s.png", name, timestamp)
	path := filepath.Join(s.outputDir, filename)
	s.log.Debug("📸 "+message, "name", name)

	if err := page.Screenshot(path); err != nil {
		s.log.Warn("⚠️ Failed to capture screenshot", "name", name, "error", err)
		return "", err
	}

	s.log.Debug("Screenshot saved", "path", path)
	return path, nil
}
