package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"storefront/m/domain"
)

const bannerColumns = `id, title, image_url, mobile_image_url, link, is_active, display_order, created_at, updated_at`

type createBannerRequest struct {
	Title          string `json:"title"`
	ImageURL       string `json:"imageUrl"`
	MobileImageURL string `json:"mobileImageUrl"`
	Link           string `json:"link"`
	IsActive       *bool  `json:"isActive"`
	Order          *int64 `json:"order"`
}

func (h *Handler) createBanner(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	var req createBannerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Title == "" || req.ImageURL == "" || req.MobileImageURL == "" {
		respondError(w, http.StatusBadRequest, "Title, desktop image and mobile image are required")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	var order int64
	if req.Order != nil {
		order = *req.Order
	}

	var id int64
	err := h.db.QueryRowx(`INSERT INTO banners (title, image_url, mobile_image_url, link, is_active, display_order) VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
		strings.TrimSpace(req.Title), req.ImageURL, req.MobileImageURL, req.Link, isActive, order).Scan(&id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to create banner")
		return
	}

	var banner domain.Banner
	if err := h.db.Get(&banner, `SELECT `+bannerColumns+` FROM banners WHERE id = ?`, id); err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to create banner")
		return
	}
	respondData(w, http.StatusCreated, "Banner created successfully", banner)
}

func (h *Handler) listBanners(w http.ResponseWriter, r *http.Request) {
	query := `SELECT ` + bannerColumns + ` FROM banners`
	if r.URL.Query().Get("active") == "true" {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY display_order ASC`

	banners := []domain.Banner{}
	if err := h.db.Select(&banners, query); err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to list banners")
		return
	}
	respondData(w, http.StatusOK, "Banners retrieved successfully", banners)
}

// updateBannerRequest is a sparse patch; only fields present in the body
// overwrite stored values.
type updateBannerRequest struct {
	BannerID       int64   `json:"bannerId"`
	Title          *string `json:"title"`
	ImageURL       *string `json:"imageUrl"`
	MobileImageURL *string `json:"mobileImageUrl"`
	Link           *string `json:"link"`
	IsActive       *bool   `json:"isActive"`
	Order          *int64  `json:"order"`
}

func (h *Handler) updateBanner(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	var req updateBannerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.BannerID == 0 {
		respondError(w, http.StatusBadRequest, "Banner ID is required")
		return
	}

	var (
		clauses []string
		args    []any
	)
	if req.Title != nil {
		clauses = append(clauses, "title = ?")
		args = append(args, *req.Title)
	}
	if req.ImageURL != nil {
		clauses = append(clauses, "image_url = ?")
		args = append(args, *req.ImageURL)
	}
	if req.MobileImageURL != nil {
		clauses = append(clauses, "mobile_image_url = ?")
		args = append(args, *req.MobileImageURL)
	}
	if req.Link != nil {
		clauses = append(clauses, "link = ?")
		args = append(args, *req.Link)
	}
	if req.IsActive != nil {
		clauses = append(clauses, "is_active = ?")
		args = append(args, *req.IsActive)
	}
	if req.Order != nil {
		clauses = append(clauses, "display_order = ?")
		args = append(args, *req.Order)
	}

	if len(clauses) > 0 {
		clauses = append(clauses, "updated_at = CURRENT_TIMESTAMP")
		args = append(args, req.BannerID)
		res, err := h.db.Exec("UPDATE banners SET "+strings.Join(clauses, ", ")+" WHERE id = ?", args...)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Unable to update banner")
			return
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			respondError(w, http.StatusNotFound, "Banner not found")
			return
		}
	}

	var banner domain.Banner
	err := h.db.Get(&banner, `SELECT `+bannerColumns+` FROM banners WHERE id = ?`, req.BannerID)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "Banner not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to update banner")
		return
	}
	respondData(w, http.StatusOK, "Banner updated successfully", banner)
}

type deleteBannerRequest struct {
	BannerID int64 `json:"bannerId"`
}

func (h *Handler) deleteBanner(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	var req deleteBannerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.BannerID == 0 {
		respondError(w, http.StatusBadRequest, "Banner ID is required")
		return
	}
	res, err := h.db.Exec(`DELETE FROM banners WHERE id = ?`, req.BannerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to delete banner")
		return
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		respondError(w, http.StatusNotFound, "Banner not found")
		return
	}
	respondOK(w, http.StatusOK, "Banner deleted successfully")
}

type reorderBannersRequest struct {
	FirstID  int64 `json:"firstId"`
	SecondID int64 `json:"secondId"`
}

// reorderBanners swaps the display order of two banners in one transaction,
// so a failure partway through cannot leave duplicated order values.
func (h *Handler) reorderBanners(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	var req reorderBannersRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.FirstID == 0 || req.SecondID == 0 || req.FirstID == req.SecondID {
		respondError(w, http.StatusBadRequest, "Two distinct banner IDs are required")
		return
	}

	tx, err := h.db.Beginx()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to reorder banners")
		return
	}
	defer tx.Rollback()

	var firstOrder, secondOrder int64
	if err := tx.Get(&firstOrder, `SELECT display_order FROM banners WHERE id = ?`, req.FirstID); err != nil {
		respondError(w, http.StatusNotFound, "Banner not found")
		return
	}
	if err := tx.Get(&secondOrder, `SELECT display_order FROM banners WHERE id = ?`, req.SecondID); err != nil {
		respondError(w, http.StatusNotFound, "Banner not found")
		return
	}

	if _, err := tx.Exec(`UPDATE banners SET display_order = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, secondOrder, req.FirstID); err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to reorder banners")
		return
	}
	if _, err := tx.Exec(`UPDATE banners SET display_order = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, firstOrder, req.SecondID); err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to reorder banners")
		return
	}
	if err := tx.Commit(); err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to reorder banners")
		return
	}

	banners := []domain.Banner{}
	if err := h.db.Select(&banners, `SELECT `+bannerColumns+` FROM banners WHERE id IN (?, ?) ORDER BY display_order ASC`, req.FirstID, req.SecondID); err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to reorder banners")
		return
	}
	respondData(w, http.StatusOK, "Banners reordered successfully", banners)
}
