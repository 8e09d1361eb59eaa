package upstream

import (
	"context"
	"net/http"
)

// Dashboard chart feeds. Twelve-month series indexed from January.

type MonthlyTarget struct {
	Target   float64 `json:"target"`
	Revenue  string  `json:"revenue"`
	Progress float64 `json:"progress"`
}

type MonthlyStats struct {
	Sales   []float64 `json:"sales"`
	Revenue []float64 `json:"revenue"`
}

func (c *Client) MonthlySales(ctx context.Context, token string) ([]float64, error) {
	var out struct {
		status
		Sales []float64 `json:"sales"`
	}
	if err := c.authed(ctx, http.MethodGet, "/monthly-sales", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Sales, nil
}

func (c *Client) MonthlyTarget(ctx context.Context, token string) (*MonthlyTarget, error) {
	var out struct {
		status
		MonthlyTarget
	}
	if err := c.authed(ctx, http.MethodGet, "/monthly-target", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.MonthlyTarget, nil
}

func (c *Client) StatsMonthly(ctx context.Context, token string) (*MonthlyStats, error) {
	var out struct {
		status
		MonthlyStats
	}
	if err := c.authed(ctx, http.MethodGet, "/stats-monthly", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.MonthlyStats, nil
}
