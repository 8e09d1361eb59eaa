package upstream

import (
	"context"
	"fmt"
	"net/http"

	"gamemart/models"
)

func (c *Client) AllProducts(ctx context.Context) ([]models.Product, error) {
	var out struct {
		status
		Data []models.Product `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/allproducts", "", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) Product(ctx context.Context, id int64) (*models.Product, error) {
	var out struct {
		status
		Data models.Product `json:"data"`
	}
	path := fmt.Sprintf("/products/%d", id)
	if err := c.do(ctx, http.MethodGet, path, "", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) CreateProduct(ctx context.Context, token string, in models.ProductInput) error {
	return c.authed(ctx, http.MethodPost, "/products", token, nil, in, nil)
}

func (c *Client) UpdateProduct(ctx context.Context, token string, id int64, in models.ProductInput) error {
	return c.authed(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), token, nil, in, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, token string, id int64) error {
	return c.authed(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), token, nil, nil, nil)
}
