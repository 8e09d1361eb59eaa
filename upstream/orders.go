package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"gamemart/models"
)

// OrdersQuery narrows the order listing; zero values mean no narrowing.
type OrdersQuery struct {
	ServiceID int64
	GameSlug  string
}

// OrdersResult is the one upstream envelope that deviates from the `data`
// key: orders arrive under `orders` alongside sales statistics.
type OrdersResult struct {
	Orders             []models.Order
	TodayCount         int
	YesterdayCount     int
	IncreasePercentage float64
	LastMonth          float64
}

func (c *Client) Orders(ctx context.Context, token string, q OrdersQuery) (*OrdersResult, error) {
	params := url.Values{}
	if q.GameSlug != "" {
		params.Set("game_slug", q.GameSlug)
	}
	if q.ServiceID != 0 {
		params.Set("service_id", strconv.FormatInt(q.ServiceID, 10))
	}

	var out struct {
		status
		Orders             []models.Order `json:"orders"`
		TodayCount         int            `json:"today_count"`
		YesterdayCount     int            `json:"yesterday_count"`
		IncreasePercentage float64        `json:"increase_percentage"`
		LastMonth          float64        `json:"last_month"`
	}
	if err := c.authed(ctx, http.MethodGet, "/orders/all", token, params, nil, &out); err != nil {
		return nil, err
	}
	return &OrdersResult{
		Orders:             out.Orders,
		TodayCount:         out.TodayCount,
		YesterdayCount:     out.YesterdayCount,
		IncreasePercentage: out.IncreasePercentage,
		LastMonth:          out.LastMonth,
	}, nil
}

func (c *Client) ConfirmOrder(ctx context.Context, token string, id int64) error {
	path := fmt.Sprintf("/orders/%d/confirm", id)
	return c.authed(ctx, http.MethodPost, path, token, nil, nil, nil)
}
