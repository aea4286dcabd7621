package domain

type Banner struct {
	ID             int64  `json:"id" db:"id"`
	Title          string `json:"title" db:"title"`
	ImageURL       string `json:"imageUrl" db:"image_url"`
	MobileImageURL string `json:"mobileImageUrl" db:"mobile_image_url"`
	Link           string `json:"link" db:"link"`
	IsActive       bool   `json:"isActive" db:"is_active"`
	Order          int64  `json:"order" db:"display_order"`
	CreatedAt      string `json:"createdAt,omitempty" db:"created_at"`
	UpdatedAt      string `json:"updatedAt,omitempty" db:"updated_at"`
}
