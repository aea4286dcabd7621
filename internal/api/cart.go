package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jmoiron/sqlx"

	"storefront/m/domain"
)

type addToCartRequest struct {
	ProductID int64 `json:"productId"`
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ProductID == 0 {
		respondError(w, http.StatusBadRequest, "Product ID is required")
		return
	}
	userID := sessionUserID(r)

	var productExists int64
	err := h.db.Get(&productExists, `SELECT id FROM products WHERE id = ?`, req.ProductID)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to add product to cart")
		return
	}

	var existing int64
	err = h.db.Get(&existing, `SELECT id FROM cart_items WHERE user_id = ? AND product_id = ?`, userID, req.ProductID)
	if err == nil {
		respondError(w, http.StatusConflict, "Product already exists in cart")
		return
	}
	if !errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusInternalServerError, "Unable to add product to cart")
		return
	}

	var id int64
	err = h.db.QueryRowx(`INSERT INTO cart_items (user_id, product_id, quantity) VALUES (?, ?, 1) RETURNING id`, userID, req.ProductID).Scan(&id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to add product to cart")
		return
	}
	respondData(w, http.StatusCreated, "Product added to cart", domain.CartItem{ID: id, UserID: userID, ProductID: req.ProductID, Quantity: 1})
}

func (h *Handler) countCartProducts(w http.ResponseWriter, r *http.Request) {
	var count int64
	if err := h.db.Get(&count, `SELECT COUNT(*) FROM cart_items WHERE user_id = ?`, sessionUserID(r)); err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to count cart products")
		return
	}
	respondData(w, http.StatusOK, "Cart product count", map[string]int64{"count": count})
}

// cartProductView is a cart row joined with its product.
type cartProductView struct {
	domain.CartItem
	Product domain.Product `json:"product"`
}

func (h *Handler) viewCartProducts(w http.ResponseWriter, r *http.Request) {
	items := []domain.CartItem{}
	if err := h.db.Select(&items, `SELECT id, user_id, product_id, quantity, created_at, updated_at FROM cart_items WHERE user_id = ? ORDER BY created_at DESC, id DESC`, sessionUserID(r)); err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to load cart")
		return
	}
	if len(items) == 0 {
		respondData(w, http.StatusOK, "Cart products", []cartProductView{})
		return
	}

	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}
	query, args, err := sqlx.In(`SELECT `+productColumns+` FROM products WHERE id IN (?)`, ids)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to load cart")
		return
	}
	query = h.db.Rebind(query)

	var rows []productRow
	if err := h.db.Select(&rows, query, args...); err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to load cart")
		return
	}
	productsByID := make(map[int64]domain.Product, len(rows))
	for _, row := range rows {
		productsByID[row.ID] = row.toDomain()
	}

	view := make([]cartProductView, len(items))
	for i, item := range items {
		view[i] = cartProductView{CartItem: item, Product: productsByID[item.ProductID]}
	}
	respondData(w, http.StatusOK, "Cart products", view)
}

type updateCartRequest struct {
	CartID   int64 `json:"cartId"`
	Quantity int64 `json:"quantity"`
}

func (h *Handler) updateCartProduct(w http.ResponseWriter, r *http.Request) {
	var req updateCartRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.CartID == 0 {
		respondError(w, http.StatusBadRequest, "Cart item ID is required")
		return
	}
	if req.Quantity < 1 {
		respondError(w, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}
	res, err := h.db.Exec(`UPDATE cart_items SET quantity = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND user_id = ?`, req.Quantity, req.CartID, sessionUserID(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to update cart product")
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		respondError(w, http.StatusNotFound, "Cart item not found")
		return
	}
	respondOK(w, http.StatusOK, "Cart product updated")
}

type deleteCartRequest struct {
	CartID int64 `json:"cartId"`
}

func (h *Handler) deleteCartProduct(w http.ResponseWriter, r *http.Request) {
	var req deleteCartRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.CartID == 0 {
		respondError(w, http.StatusBadRequest, "Cart item ID is required")
		return
	}
	res, err := h.db.Exec(`DELETE FROM cart_items WHERE id = ? AND user_id = ?`, req.CartID, sessionUserID(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to remove cart product")
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		respondError(w, http.StatusNotFound, "Cart item not found")
		return
	}
	respondOK(w, http.StatusOK, "Product removed from cart")
}
