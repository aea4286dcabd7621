package domain

type CartItem struct {
	ID        int64  `json:"id" db:"id"`
	UserID    int64  `json:"userId" db:"user_id"`
	ProductID int64  `json:"productId" db:"product_id"`
	Quantity  int64  `json:"quantity" db:"quantity"`
	CreatedAt string `json:"createdAt,omitempty" db:"created_at"`
	UpdatedAt string `json:"updatedAt,omitempty" db:"updated_at"`
}
