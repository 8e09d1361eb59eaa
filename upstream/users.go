package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"gamemart/models"
)

// UsersResult is the user collection plus the signup counters the
// dashboard header shows.
type UsersResult struct {
	Users          []models.User
	TodayCount     int
	YesterdayCount int
}

func (c *Client) Users(ctx context.Context, token string) (*UsersResult, error) {
	var out struct {
		status
		Data           []models.User `json:"data"`
		TodayCount     int           `json:"today_count"`
		YesterdayCount int           `json:"yesterday_count"`
	}
	if err := c.authed(ctx, http.MethodGet, "/users", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &UsersResult{
		Users:          out.Data,
		TodayCount:     out.TodayCount,
		YesterdayCount: out.YesterdayCount,
	}, nil
}

// UserPatch is the sparse body of PUT /user/{id}. Only set fields are
// sent: ban state, wallet amount, or the admin online flag.
type UserPatch struct {
	BanReason    *string      `json:"ban_reason,omitempty"`
	IsBanned     *bool        `json:"is_banned,omitempty"`
	WalletAmount *json.Number `json:"wallet_amount,omitempty"`
	IsOnline     *bool        `json:"is_online,omitempty"`
}

func (c *Client) UpdateUser(ctx context.Context, token string, id int64, patch UserPatch) error {
	path := fmt.Sprintf("/user/%d", id)
	return c.authed(ctx, http.MethodPut, path, token, nil, patch, nil)
}
