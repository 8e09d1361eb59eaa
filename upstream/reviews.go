package upstream

import (
	"context"
	"fmt"
	"net/http"

	"gamemart/models"
)

func (c *Client) Reviews(ctx context.Context) ([]models.Review, error) {
	var out struct {
		status
		Data []models.Review `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/reviews", "", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) DeleteReview(ctx context.Context, token string, id int64) error {
	path := fmt.Sprintf("/reviews/%d", id)
	return c.authed(ctx, http.MethodDelete, path, token, nil, nil, nil)
}
