package browser

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// LazyScroll scrolls the viewport down in fixed increments to trigger lazy
// rendering before extraction. Menu grids on store pages render nothing
// below the fold until scrolled.
func LazyScroll(page playwright.Page, increments int) error {
	for i := 0; i < increments; i++ {
		if _, err := page.Evaluate("window.scrollBy(0, 400)"); err != nil {
			return err
		}
		time.Sleep(500 * time.Millisecond)
	}
	return nil
}
