// Package orders submits the cart as an order and reads order history from
// the backend. Submissions carry a generated idempotency key so a retried
// POST cannot create a duplicate order.
package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/internal/domain"
	apperrors "github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/pkg/errors"
	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/pkg/httpclient"
	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/pkg/logger"
	"github.com/CaiqueAzevedo65/Luxus-Brecho-sub001/pkg/validator"
)

// Address is the delivery address attached to an order.
type Address struct {
	Street       string `json:"rua" validate:"required"`
	Number       string `json:"numero" validate:"required"`
	Complement   string `json:"complemento,omitempty"`
	Neighborhood string `json:"bairro" validate:"required"`
	City         string `json:"cidade" validate:"required"`
	State        string `json:"estado" validate:"required,len=2"`
	PostalCode   string `json:"cep" validate:"required"`
}

// Client talks to the orders endpoints of the Luxus backend.
type Client struct {
	baseURL string
	http    httpclient.Doer
	logger  *slog.Logger
}

func New(baseURL string, httpc httpclient.Doer, log *slog.Logger) *Client {
	return &Client{baseURL: baseURL, http: httpc, logger: log}
}

// Submit places the given cart lines as an order for the user. The caller is
// expected to clear the cart after a successful submit.
func (c *Client) Submit(ctx context.Context, userID int64, lines []domain.CartLine, address Address) (*Order, error) {
	if len(lines) == 0 {
		return nil, apperrors.InvalidInput("order must contain at least one item")
	}
	if err := validator.Validate(address); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	req := submitRequest{
		Items:   make([]submitItemWire, 0, len(lines)),
		Address: address,
	}
	for _, line := range lines {
		req.Items = append(req.Items, submitItemWire{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal order: %w", err)
	}

	url := fmt.Sprintf("%s/orders/user/%d", c.baseURL, userID)
	httpReq, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.http.Do(ctx, httpReq)
	if err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "submit order")
	}

	var wire submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}

	order := wire.Order.toDomain()
	logger.WithContext(ctx, c.logger).InfoContext(ctx, "order submitted",
		slog.Int64("order_id", order.ID),
		slog.Int64("user_id", userID),
		slog.Int64("total_cents", order.TotalCents),
	)
	return &order, nil
}

// ListByUser returns the user's order history, most recent first.
func (c *Client) ListByUser(ctx context.Context, userID int64) ([]Order, error) {
	resp, err := c.http.Get(ctx, fmt.Sprintf("%s/orders/user/%d", c.baseURL, userID))
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "list orders")
	}

	var wire listResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	orders := make([]Order, 0, len(wire.Orders))
	for _, w := range wire.Orders {
		orders = append(orders, w.toDomain())
	}
	return orders, nil
}

// Cancel cancels a previously placed order.
func (c *Client) Cancel(ctx context.Context, orderID int64) error {
	resp, err := c.http.Post(ctx, fmt.Sprintf("%s/orders/%d/cancel", c.baseURL, orderID), "application/json", nil)
	if err != nil {
		return fmt.Errorf("cancel order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return httpclient.ParseResponseError(resp, "cancel order")
	}

	logger.WithContext(ctx, c.logger).InfoContext(ctx, "order cancelled",
		slog.Int64("order_id", orderID),
	)
	return nil
}
