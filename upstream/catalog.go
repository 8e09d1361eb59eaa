package upstream

import (
	"context"
	"fmt"
	"net/http"

	"gamemart/models"
)

func (c *Client) Services(ctx context.Context) ([]models.Service, error) {
	var out struct {
		status
		Data []models.Service `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/services", "", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) CreateService(ctx context.Context, token string, in models.ServiceInput) error {
	return c.authed(ctx, http.MethodPost, "/services", token, nil, in, nil)
}

func (c *Client) UpdateService(ctx context.Context, token string, id int64, in models.ServiceInput) error {
	return c.authed(ctx, http.MethodPut, fmt.Sprintf("/services/%d", id), token, nil, in, nil)
}

func (c *Client) DeleteService(ctx context.Context, token string, id int64) error {
	return c.authed(ctx, http.MethodDelete, fmt.Sprintf("/services/%d", id), token, nil, nil, nil)
}

func (c *Client) Games(ctx context.Context) ([]models.Game, error) {
	var out struct {
		status
		Data []models.Game `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/games", "", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) CreateGame(ctx context.Context, token string, in models.GameInput) error {
	return c.authed(ctx, http.MethodPost, "/games", token, nil, in, nil)
}

func (c *Client) UpdateGame(ctx context.Context, token string, id int64, in models.GameInput) error {
	return c.authed(ctx, http.MethodPut, fmt.Sprintf("/games/%d", id), token, nil, in, nil)
}

func (c *Client) DeleteGame(ctx context.Context, token string, id int64) error {
	return c.authed(ctx, http.MethodDelete, fmt.Sprintf("/games/%d", id), token, nil, nil, nil)
}
