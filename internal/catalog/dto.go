package catalog

import (
	"math"

	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/internal/domain"
)

const soldStatus = "vendido"

// productDTO mirrors the backend's wire representation of a product. This is
// the single normalization boundary: past it, only domain.Product exists.
type productDTO struct {
	ID        int64   `json:"id"`
	Titulo    string  `json:"titulo"`
	Preco     float64 `json:"preco"`
	Descricao string  `json:"descricao"`
	Categoria string  `json:"categoria"`
	Imagem    string  `json:"imagem"`
	Status    string  `json:"status"`
}

func (d productDTO) toDomain() domain.Product {
	return domain.Product{
		ID:          d.ID,
		Title:       d.Titulo,
		PriceCents:  int64(math.Round(d.Preco * 100)),
		Description: d.Descricao,
		Category:    d.Categoria,
		ImageURL:    d.Imagem,
		Available:   d.Status != soldStatus,
	}
}

// paginationDTO mirrors the backend's pagination envelope.
type paginationDTO struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

// listResponse is the backend's product listing envelope.
type listResponse struct {
	Items      []productDTO  `json:"items"`
	Pagination paginationDTO `json:"pagination"`
}

// categorySummaryDTO mirrors one row of GET /categories/summary.
type categorySummaryDTO struct {
	ID            int64  `json:"id"`
	Nome          string `json:"nome"`
	Descricao     string `json:"descricao"`
	Ativa         bool   `json:"ativa"`
	TotalProdutos int    `json:"total_produtos"`
}

func (d categorySummaryDTO) toDomain() CategorySummary {
	return CategorySummary{
		ID:           d.ID,
		Name:         d.Nome,
		Description:  d.Descricao,
		Active:       d.Ativa,
		ProductCount: d.TotalProdutos,
	}
}

// CategorySummary is the normalized category aggregate used by listing pages.
type CategorySummary struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Active       bool   `json:"active"`
	ProductCount int    `json:"product_count"`
}

// ProductPage is one page of normalized products.
type ProductPage struct {
	Products []domain.Product `json:"products"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Total    int              `json:"total"`
}

// TotalPages returns how many pages the full listing spans.
func (p ProductPage) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

// HasNext reports whether another page follows this one.
func (p ProductPage) HasNext() bool {
	return p.Page < p.TotalPages()
}
