// Shared types for marketplace scrapers
// Every field is best-effort: the target DOM is unstable and a field the
// page refuses to yield stays zero, it is never an error.

package scraper

// Candidate is one discovered restaurant (or menu line) from a search page.
// Identity for deduplication is URL when present, else the normalized name.
type Candidate struct {
	Name        string   `json:"name"`
	Rating      *float64 `json:"rating"`
	ReviewCount string   `json:"review_count"`
	ETA         string   `json:"eta"`
	Price       string   `json:"price"`
	URL         string   `json:"url"`
}

// Usable reports whether the candidate carries at least one field worth
// keeping. Cards that parse to nothing are discarded.
func (c Candidate) Usable() bool {
	return c.Name != "" || c.URL != ""
}

// MenuItem is one recovered menu line from a store page.
type MenuItem struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description,omitempty"`
}

// StoreDetail is the full record scraped from a single store page.
type StoreDetail struct {
	Name        string     `json:"name"`
	Rating      *float64   `json:"rating"`
	ReviewCount string     `json:"review_count"`
	DeliveryFee string     `json:"delivery_fee"`
	ServiceFee  string     `json:"service_fee"`
	MinOrder    string     `json:"min_order"`
	MenuItems   []MenuItem `json:"menu_items"`
}
