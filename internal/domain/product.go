package domain

// Product is the canonical product value used across the client core.
// It is produced at the catalog normalization boundary; stores receive it
// already normalized, so no field-fallback chains exist past that edge.
type Product struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	PriceCents  int64  `json:"price_cents"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url,omitempty"`
	Available   bool   `json:"available"`
}
