package domain

type Product struct {
	ID           int64    `json:"id"`
	ProductName  string   `json:"productName"`
	BrandName    string   `json:"brandName"`
	Category     string   `json:"category"`
	ProductImage []string `json:"productImage"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	SellingPrice float64  `json:"sellingPrice"`
	CreatedAt    string   `json:"createdAt,omitempty"`
	UpdatedAt    string   `json:"updatedAt,omitempty"`
}
