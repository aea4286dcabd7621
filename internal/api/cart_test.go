package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/m/domain"
)

func TestAddToCart(t *testing.T) {
	h := newTestHandler(t)
	userID := createUser(t, h, "user@example.com", domain.RoleGeneral)
	productID := createProductRow(t, h, "Mouse", "accessories", 19.99)

	rec := doRequest(t, h, http.MethodPost, "/api/addtocart", map[string]any{"productId": productID}, authCookie(t, h, userID))
	require.Equal(t, http.StatusCreated, rec.Code)

	var item domain.CartItem
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &item))
	assert.Equal(t, productID, item.ProductID)
	assert.EqualValues(t, 1, item.Quantity)
}

func TestAddToCartDuplicate(t *testing.T) {
	h := newTestHandler(t)
	userID := createUser(t, h, "user@example.com", domain.RoleGeneral)
	productID := createProductRow(t, h, "Mouse", "accessories", 19.99)
	cookie := authCookie(t, h, userID)

	first := doRequest(t, h, http.MethodPost, "/api/addtocart", map[string]any{"productId": productID}, cookie)
	require.Equal(t, http.StatusCreated, first.Code)

	second := doRequest(t, h, http.MethodPost, "/api/addtocart", map[string]any{"productId": productID}, cookie)
	require.Equal(t, http.StatusConflict, second.Code)

	var count int64
	require.NoError(t, h.db.Get(&count, `SELECT COUNT(*) FROM cart_items WHERE user_id = ?`, userID))
	assert.EqualValues(t, 1, count)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	h := newTestHandler(t)
	userID := createUser(t, h, "user@example.com", domain.RoleGeneral)

	rec := doRequest(t, h, http.MethodPost, "/api/addtocart", map[string]any{"productId": 999}, authCookie(t, h, userID))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCountCartProducts(t *testing.T) {
	h := newTestHandler(t)
	userID := createUser(t, h, "user@example.com", domain.RoleGeneral)
	otherID := createUser(t, h, "other@example.com", domain.RoleGeneral)
	cookie := authCookie(t, h, userID)

	for _, name := range []string{"a", "b"} {
		productID := createProductRow(t, h, name, "misc", 1)
		rec := doRequest(t, h, http.MethodPost, "/api/addtocart", map[string]any{"productId": productID}, cookie)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doRequest(t, h, http.MethodGet, "/api/countAddToCartProduct", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var data map[string]int64
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &data))
	assert.EqualValues(t, 2, data["count"])

	// The count is scoped to the session user.
	other := doRequest(t, h, http.MethodGet, "/api/countAddToCartProduct", nil, authCookie(t, h, otherID))
	require.Equal(t, http.StatusOK, other.Code)
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, other).Data, &data))
	assert.Zero(t, data["count"])
}

func TestViewCartProductsJoinsProduct(t *testing.T) {
	h := newTestHandler(t)
	userID := createUser(t, h, "user@example.com", domain.RoleGeneral)
	productID := createProductRow(t, h, "Mouse", "accessories", 19.99)
	cookie := authCookie(t, h, userID)

	added := doRequest(t, h, http.MethodPost, "/api/addtocart", map[string]any{"productId": productID}, cookie)
	require.Equal(t, http.StatusCreated, added.Code)

	rec := doRequest(t, h, http.MethodGet, "/api/view-card-product", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var view []cartProductView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &view))
	require.Len(t, view, 1)
	assert.Equal(t, productID, view[0].ProductID)
	assert.Equal(t, "Mouse", view[0].Product.ProductName)
	assert.Equal(t, 19.99, view[0].Product.SellingPrice)
}

func TestUpdateCartProduct(t *testing.T) {
	h := newTestHandler(t)
	userID := createUser(t, h, "user@example.com", domain.RoleGeneral)
	productID := createProductRow(t, h, "Mouse", "accessories", 19.99)
	cookie := authCookie(t, h, userID)

	added := doRequest(t, h, http.MethodPost, "/api/addtocart", map[string]any{"productId": productID}, cookie)
	require.Equal(t, http.StatusCreated, added.Code)
	var item domain.CartItem
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, added).Data, &item))

	rec := doRequest(t, h, http.MethodPost, "/api/update-cart-product", map[string]any{
		"cartId":   item.ID,
		"quantity": 3,
	}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var quantity int64
	require.NoError(t, h.db.Get(&quantity, `SELECT quantity FROM cart_items WHERE id = ?`, item.ID))
	assert.EqualValues(t, 3, quantity)

	invalid := doRequest(t, h, http.MethodPost, "/api/update-cart-product", map[string]any{
		"cartId":   item.ID,
		"quantity": 0,
	}, cookie)
	require.Equal(t, http.StatusBadRequest, invalid.Code)
}

func TestCartOwnershipEnforced(t *testing.T) {
	h := newTestHandler(t)
	ownerID := createUser(t, h, "owner@example.com", domain.RoleGeneral)
	intruderID := createUser(t, h, "intruder@example.com", domain.RoleGeneral)
	productID := createProductRow(t, h, "Mouse", "accessories", 19.99)

	added := doRequest(t, h, http.MethodPost, "/api/addtocart", map[string]any{"productId": productID}, authCookie(t, h, ownerID))
	require.Equal(t, http.StatusCreated, added.Code)
	var item domain.CartItem
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, added).Data, &item))

	rec := doRequest(t, h, http.MethodPost, "/api/delete-cart-product", map[string]any{"cartId": item.ID}, authCookie(t, h, intruderID))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var count int64
	require.NoError(t, h.db.Get(&count, `SELECT COUNT(*) FROM cart_items WHERE id = ?`, item.ID))
	assert.EqualValues(t, 1, count)
}

func TestDeleteCartProduct(t *testing.T) {
	h := newTestHandler(t)
	userID := createUser(t, h, "user@example.com", domain.RoleGeneral)
	productID := createProductRow(t, h, "Mouse", "accessories", 19.99)
	cookie := authCookie(t, h, userID)

	added := doRequest(t, h, http.MethodPost, "/api/addtocart", map[string]any{"productId": productID}, cookie)
	require.Equal(t, http.StatusCreated, added.Code)
	var item domain.CartItem
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, added).Data, &item))

	rec := doRequest(t, h, http.MethodPost, "/api/delete-cart-product", map[string]any{"cartId": item.ID}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, h.db.Get(&count, `SELECT COUNT(*) FROM cart_items WHERE user_id = ?`, userID))
	assert.Zero(t, count)
}
