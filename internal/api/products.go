package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"

	"storefront/m/domain"
)

const productColumns = `id, product_name, brand_name, category, product_image, description, price, selling_price, created_at, updated_at`

// productRow mirrors the products table; image URLs are stored as a JSON
// array in a single text column.
type productRow struct {
	ID           int64   `db:"id"`
	ProductName  string  `db:"product_name"`
	BrandName    string  `db:"brand_name"`
	Category     string  `db:"category"`
	ProductImage string  `db:"product_image"`
	Description  string  `db:"description"`
	Price        float64 `db:"price"`
	SellingPrice float64 `db:"selling_price"`
	CreatedAt    string  `db:"created_at"`
	UpdatedAt    string  `db:"updated_at"`
}

func (row productRow) toDomain() domain.Product {
	images := []string{}
	_ = json.Unmarshal([]byte(row.ProductImage), &images)
	return domain.Product{
		ID:           row.ID,
		ProductName:  row.ProductName,
		BrandName:    row.BrandName,
		Category:     row.Category,
		ProductImage: images,
		Description:  row.Description,
		Price:        row.Price,
		SellingPrice: row.SellingPrice,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func toProducts(rows []productRow) []domain.Product {
	products := make([]domain.Product, len(rows))
	for i, row := range rows {
		products[i] = row.toDomain()
	}
	return products
}

func encodeImages(images []string) string {
	if images == nil {
		images = []string{}
	}
	encoded, _ := json.Marshal(images)
	return string(encoded)
}

type createProductRequest struct {
	ProductName  string   `json:"productName"`
	BrandName    string   `json:"brandName"`
	Category     string   `json:"category"`
	ProductImage []string `json:"productImage"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	SellingPrice float64  `json:"sellingPrice"`
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	var req createProductRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ProductName == "" || req.Category == "" || req.SellingPrice <= 0 {
		respondError(w, http.StatusBadRequest, "Product name, category and selling price are required")
		return
	}

	var id int64
	err := h.db.QueryRowx(`INSERT INTO products (product_name, brand_name, category, product_image, description, price, selling_price) VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		req.ProductName, req.BrandName, req.Category, encodeImages(req.ProductImage), req.Description, req.Price, req.SellingPrice).Scan(&id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to upload product")
		return
	}

	var row productRow
	if err := h.db.Get(&row, `SELECT `+productColumns+` FROM products WHERE id = ?`, id); err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to upload product")
		return
	}
	respondData(w, http.StatusCreated, "Product uploaded successfully", row.toDomain())
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	var rows []productRow
	if err := h.db.Select(&rows, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC, id DESC`); err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to list products")
		return
	}
	respondData(w, http.StatusOK, "All products", toProducts(rows))
}

type updateProductRequest struct {
	ProductID    int64     `json:"productId"`
	ProductName  *string   `json:"productName"`
	BrandName    *string   `json:"brandName"`
	Category     *string   `json:"category"`
	ProductImage *[]string `json:"productImage"`
	Description  *string   `json:"description"`
	Price        *float64  `json:"price"`
	SellingPrice *float64  `json:"sellingPrice"`
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	var req updateProductRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ProductID == 0 {
		respondError(w, http.StatusBadRequest, "Product ID is required")
		return
	}

	var (
		clauses []string
		args    []any
	)
	if req.ProductName != nil {
		clauses = append(clauses, "product_name = ?")
		args = append(args, *req.ProductName)
	}
	if req.BrandName != nil {
		clauses = append(clauses, "brand_name = ?")
		args = append(args, *req.BrandName)
	}
	if req.Category != nil {
		clauses = append(clauses, "category = ?")
		args = append(args, *req.Category)
	}
	if req.ProductImage != nil {
		clauses = append(clauses, "product_image = ?")
		args = append(args, encodeImages(*req.ProductImage))
	}
	if req.Description != nil {
		clauses = append(clauses, "description = ?")
		args = append(args, *req.Description)
	}
	if req.Price != nil {
		clauses = append(clauses, "price = ?")
		args = append(args, *req.Price)
	}
	if req.SellingPrice != nil {
		clauses = append(clauses, "selling_price = ?")
		args = append(args, *req.SellingPrice)
	}

	if len(clauses) > 0 {
		clauses = append(clauses, "updated_at = CURRENT_TIMESTAMP")
		args = append(args, req.ProductID)
		res, err := h.db.Exec("UPDATE products SET "+strings.Join(clauses, ", ")+" WHERE id = ?", args...)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Unable to update product")
			return
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			respondError(w, http.StatusNotFound, "Product not found")
			return
		}
	}

	var row productRow
	err := h.db.Get(&row, `SELECT `+productColumns+` FROM products WHERE id = ?`, req.ProductID)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to update product")
		return
	}
	respondData(w, http.StatusOK, "Product updated successfully", row.toDomain())
}

// listCategoryProducts returns one representative product per category,
// used by the storefront to render category tiles.
func (h *Handler) listCategoryProducts(w http.ResponseWriter, r *http.Request) {
	var rows []productRow
	query := `SELECT ` + productColumns + ` FROM products
                WHERE id IN (SELECT MIN(id) FROM products GROUP BY category)
                ORDER BY category ASC`
	if err := h.db.Select(&rows, query); err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to list category products")
		return
	}
	respondData(w, http.StatusOK, "Category products", toProducts(rows))
}

type categoryRequest struct {
	Category string `json:"category"`
}

func (h *Handler) productsByCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Category == "" {
		respondError(w, http.StatusBadRequest, "Category is required")
		return
	}
	var rows []productRow
	if err := h.db.Select(&rows, `SELECT `+productColumns+` FROM products WHERE category = ? ORDER BY created_at DESC, id DESC`, req.Category); err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to list products")
		return
	}
	respondData(w, http.StatusOK, "Products by category", toProducts(rows))
}

type productDetailsRequest struct {
	ProductID int64 `json:"productId"`
}

func (h *Handler) productDetails(w http.ResponseWriter, r *http.Request) {
	var req productDetailsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ProductID == 0 {
		respondError(w, http.StatusBadRequest, "Product ID is required")
		return
	}
	var row productRow
	err := h.db.Get(&row, `SELECT `+productColumns+` FROM products WHERE id = ?`, req.ProductID)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to load product")
		return
	}
	respondData(w, http.StatusOK, "Product details", row.toDomain())
}

func (h *Handler) searchProducts(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	var rows []productRow
	if query == "" {
		respondData(w, http.StatusOK, "Search results", []domain.Product{})
		return
	}
	like := "%" + query + "%"
	if err := h.db.Select(&rows, `SELECT `+productColumns+` FROM products WHERE product_name LIKE ? OR category LIKE ? ORDER BY product_name ASC`, like, like); err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to search products")
		return
	}
	respondData(w, http.StatusOK, "Search results", toProducts(rows))
}

type filterProductsRequest struct {
	Category []string `json:"category"`
}

func (h *Handler) filterProducts(w http.ResponseWriter, r *http.Request) {
	var req filterProductsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Category) == 0 {
		respondData(w, http.StatusOK, "Filtered products", []domain.Product{})
		return
	}

	query, args, err := sqlx.In(`SELECT `+productColumns+` FROM products WHERE category IN (?) ORDER BY created_at DESC, id DESC`, req.Category)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to filter products")
		return
	}
	query = h.db.Rebind(query)

	var rows []productRow
	if err := h.db.Select(&rows, query, args...); err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to filter products")
		return
	}
	respondData(w, http.StatusOK, "Filtered products", toProducts(rows))
}
