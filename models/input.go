package models

// Form payloads forwarded to the upstream API after local validation.
// Shapes mirror what the create/edit modals submit.

type ProductInput struct {
	ServiceID   int64       `json:"service_id"`
	GameID      int64       `json:"game_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	ImgURL      string      `json:"img_url"`
	PreviewImg  []string    `json:"preview_img"`
	Price       float64     `json:"price"`
	FakePrice   float64     `json:"fake_price"`
	IsPopular   bool        `json:"is_popular"`
	Data        ProductBag  `json:"data"`
	Credentials Credentials `json:"credentials"`
}

// Credentials is the account handover bundle attached to account-type
// products.
type Credentials struct {
	Email         string `json:"email,omitempty"`
	EmailPassword string `json:"email_password,omitempty"`
	GamePassword  string `json:"game_password,omitempty"`
}

type ServiceInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImgURL      string `json:"img_url"`
	IsHot       bool   `json:"is_hot"`
}

type GameInput struct {
	ServiceID int64  `json:"service_id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	LogoURL   string `json:"logo_url"`
	IsHot     bool   `json:"is_hot"`
}
