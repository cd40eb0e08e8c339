package browser

import (
	"fmt"
	"log"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// Manager owns the one Chromium process shared by every job. It is created
// once at startup and lives for the process lifetime; jobs never touch the
// browser directly, they get short-lived contexts from NewContext.
type Manager struct {
	pw      *playwright.Playwright
	browser playwright.Browser

	closeOnce sync.Once
	closeErr  error
}

func NewManager(headless bool) (*Manager, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
		Args:     []string{"--disable-blink-features=AutomationControlled"},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}

	log.Println("🌐 Browser initialized")
	return &Manager{pw: pw, browser: browser}, nil
}

// NewContext creates a fresh, isolated browsing context primed with the
// auth-state snapshot. Contexts are never shared or reused across jobs;
// the caller must Close() the context on every exit path.
func (m *Manager) NewContext(authStatePath string) (playwright.BrowserContext, error) {
	ctx, err := m.browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport:   &playwright.Size{Width: 1280, Height: 900},
		Locale:     playwright.String("zh-TW"),
		TimezoneId: playwright.String("Asia/Taipei"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	cookies, err := LoadAuthState(authStatePath)
	if err != nil {
		//auth snapshot is best-effort: searching works unauthenticated too
		log.Printf("⚠️ Could not load auth state: %v. Continuing without cookies.", err)
		return ctx, nil
	}

	if len(cookies) > 0 {
		if err := ctx.AddCookies(cookies); err != nil {
			ctx.Close()
			return nil, fmt.Errorf("failed to inject cookies: %w", err)
		}
		log.Printf("🍪 Loaded auth state (%d cookies)", len(cookies))
	}

	return ctx, nil
}

// Close shuts down the shared browser. Idempotent and safe to call even if
// launch half-failed.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() {
		if m.browser != nil {
			if err := m.browser.Close(); err != nil {
				m.closeErr = err
			}
		}
		if m.pw != nil {
			if err := m.pw.Stop(); err != nil && m.closeErr == nil {
				m.closeErr = err
			}
		}
		log.Println("🌐 Browser closed")
	})
	return m.closeErr
}
