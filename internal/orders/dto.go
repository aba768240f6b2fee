package orders

import (
	"math"
	"time"
)

// Wire types match the backend's Portuguese field names. Prices cross the
// boundary as float BRL and are converted to cents exactly once, here.

type orderItemWire struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"preco_unitario"`
	LinePrice float64 `json:"preco_total"`
	Title     string  `json:"titulo"`
	ImageURL  string  `json:"imagem_url"`
}

type orderWire struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Items     []orderItemWire `json:"items"`
	Total     float64         `json:"total"`
	Status    string          `json:"status"`
	Address   Address         `json:"endereco"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

type submitItemWire struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type submitRequest struct {
	Items   []submitItemWire `json:"items"`
	Address Address          `json:"endereco"`
}

type submitResponse struct {
	Message string    `json:"message"`
	Order   orderWire `json:"order"`
}

type listResponse struct {
	Orders []orderWire `json:"orders"`
	Total  int         `json:"total"`
}

// OrderItem is one line of a placed order.
type OrderItem struct {
	ProductID      int64
	Quantity       int
	UnitPriceCents int64
	LineTotalCents int64
	Title          string
	ImageURL       string
}

// Order is a placed order as reported by the backend.
type Order struct {
	ID         int64
	UserID     int64
	Items      []OrderItem
	TotalCents int64
	Status     string
	Address    Address
	CreatedAt  time.Time
}

func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

func (w orderWire) toDomain() Order {
	o := Order{
		ID:         w.ID,
		UserID:     w.UserID,
		Items:      make([]OrderItem, 0, len(w.Items)),
		TotalCents: toCents(w.Total),
		Status:     w.Status,
		Address:    w.Address,
	}
	for _, it := range w.Items {
		o.Items = append(o.Items, OrderItem{
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			UnitPriceCents: toCents(it.UnitPrice),
			LineTotalCents: toCents(it.LinePrice),
			Title:          it.Title,
			ImageURL:       it.ImageURL,
		})
	}
	if t, err := time.Parse(time.RFC3339, w.CreatedAt); err == nil {
		o.CreatedAt = t
	}
	return o
}
