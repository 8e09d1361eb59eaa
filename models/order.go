package models

// Order references a user and a product. Meta is only meaningful for
// coin-service orders, where it carries game_uid and server_id supplied by
// the buyer at checkout.
type Order struct {
	ID            int64          `json:"id"`
	UserID        int64          `json:"user_id"`
	ProductID     int64          `json:"product_id"`
	TotalPrice    string         `json:"total_price"`
	PaymentStatus string         `json:"payment_status"`
	Meta          map[string]any `json:"meta"`
	CreatedAt     string         `json:"created_at"`
	Product       *Product       `json:"product,omitempty"`
	User          *User          `json:"user,omitempty"`
}

// PaymentPending is the only order status an admin can act on; anything
// else renders as confirmed with no action button.
const PaymentPending = "pending"

// IsPending reports whether the order still awaits admin confirmation.
func (o Order) IsPending() bool {
	return o.PaymentStatus == PaymentPending
}

// IsCoin reports whether the ordered product belongs to the coin service,
// which is the only case where Meta should be exposed.
func (o Order) IsCoin() bool {
	return o.Product != nil && o.Product.ProductType == "coin"
}
