package domain

// CartLine is one product entry in the cart. Each listing is a single
// physical secondhand piece, so lines are unique by ProductID; Quantity is a
// user-adjustable multiplier that removes the line when driven to zero.
type CartLine struct {
	ProductID  int64  `json:"product_id"`
	Title      string `json:"title"`
	PriceCents int64  `json:"price_cents"`
	ImageURL   string `json:"image_url,omitempty"`
	Quantity   int    `json:"quantity"`
}

// Cart holds the ordered collection of cart lines.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Subtotal returns the sum of unit price times quantity over all lines, in cents.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.PriceCents * int64(line.Quantity)
	}
	return total
}

// TotalItems returns the sum of quantities across all lines.
func (c *Cart) TotalItems() int {
	var count int
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// FindLine returns the index of the line for the given product ID, or -1.
func (c *Cart) FindLine(productID int64) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// NewCartLine builds a quantity-1 line from a product snapshot.
func NewCartLine(p Product) CartLine {
	return CartLine{
		ProductID:  p.ID,
		Title:      p.Title,
		PriceCents: p.PriceCents,
		ImageURL:   p.ImageURL,
		Quantity:   1,
	}
}
