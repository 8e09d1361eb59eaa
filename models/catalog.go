package models

// Service is a top-level product category ("account", "coin").
type Service struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImgURL      string `json:"img_url"`
	IsHot       bool   `json:"is_hot"`
	CreatedAt   string `json:"created_at"`
}

// Game groups products under a service. Slug is the URL-safe key
// (lowercase alphanumeric segments joined by single hyphens).
type Game struct {
	ID        int64    `json:"id"`
	ServiceID int64    `json:"service_id"`
	Slug      string   `json:"slug"`
	Name      string   `json:"name"`
	LogoURL   string   `json:"logo_url"`
	IsHot     bool     `json:"is_hot"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at,omitempty"`
	Service   *Service `json:"service,omitempty"`
}

// ProductBag is the free-form data attached to a product. Which fields are
// meaningful depends on the owning service: account listings carry
// rank/hero_count/skin_count, coin listings carry amount.
type ProductBag struct {
	Rank      string `json:"rank,omitempty"`
	HeroCount int    `json:"hero_count,omitempty"`
	SkinCount int    `json:"skin_count,omitempty"`
	Amount    int    `json:"amount,omitempty"`
}

type Product struct {
	ID              int64      `json:"id"`
	GameID          int64      `json:"game_id"`
	ServiceID       int64      `json:"service_id"`
	ProductType     string     `json:"product_type,omitempty"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	ImgURL          string     `json:"img_url"`
	PreviewImg      []string   `json:"preview_img"`
	Price           string     `json:"price"`
	FakePrice       string     `json:"fake_price"`
	IsSold          bool       `json:"is_sold"`
	IsPopular       bool       `json:"is_popular"`
	Data            ProductBag `json:"data"`
	DiscountPercent float64    `json:"discount_percent"`
	CreatedAt       string     `json:"created_at"`
	Game            *Game      `json:"game,omitempty"`
	Service         *Service   `json:"service,omitempty"`
}
