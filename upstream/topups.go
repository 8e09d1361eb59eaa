package upstream

import (
	"context"
	"fmt"
	"net/http"

	"gamemart/models"
)

func (c *Client) TopUpOrders(ctx context.Context, token string) ([]models.TopUp, error) {
	var out struct {
		status
		Data []models.TopUp `json:"data"`
	}
	if err := c.authed(ctx, http.MethodGet, "/admin/topup-orders", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ConfirmTopUp marks a funding request confirmed after the admin checked
// the uploaded receipt.
func (c *Client) ConfirmTopUp(ctx context.Context, token string, id int64) error {
	body := map[string]string{"status": models.TopUpConfirmed}
	path := fmt.Sprintf("/topup-orders/%d", id)
	return c.authed(ctx, http.MethodPut, path, token, nil, body, nil)
}
