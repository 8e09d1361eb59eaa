package models

// Upload is the receipt image attached to a top-up request.
type Upload struct {
	ID           string  `json:"id"`
	UserID       int64   `json:"user_id"`
	OriginalName string  `json:"original_name"`
	Mime         string  `json:"mime"`
	Size         int64   `json:"size"`
	Disk         string  `json:"disk"`
	Path         string  `json:"path"`
	Checksum     string  `json:"checksum"`
	IsPublic     bool    `json:"is_public"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
	URL          *string `json:"url"`
}

// TopUp is a wallet funding request awaiting admin confirmation against the
// uploaded receipt.
type TopUp struct {
	ID            int64   `json:"id"`
	UploadID      string  `json:"upload_id"`
	UserID        int64   `json:"user_id"`
	Amount        string  `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
	Upload        *Upload `json:"upload,omitempty"`
	User          *User   `json:"user,omitempty"`
}

const (
	TopUpPending   = "pending"
	TopUpConfirmed = "confirmed"
)
