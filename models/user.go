package models

// User is a marketplace account as the upstream API serialises it.
// Wallet balances travel as decimal strings; nothing in this codebase
// parses them into floats.
type User struct {
	ID              int64   `json:"id"`
	Username        string  `json:"username"`
	PhoneNumber     string  `json:"phone_number"`
	Email           *string `json:"email"`
	IsAdmin         bool    `json:"is_admin"`
	IsOnline        bool    `json:"is_online"`
	WalletAmount    string  `json:"wallet_amount"`
	IsBanned        bool    `json:"is_banned"`
	BanReason       *string `json:"ban_reason"`
	BannedAt        *string `json:"banned_at,omitempty"`
	CreatedAt       string  `json:"created_at"`
	EmailVerifiedAt *string `json:"email_verified_at"`
}

// AdminStatus is the trimmed profile returned by the public admin-status
// endpoint.
type AdminStatus struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsOnline bool   `json:"is_online"`
}
