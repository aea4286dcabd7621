package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"storefront/m/internal/config"
	"storefront/m/internal/media"
)

type ctxKey string

const (
	ctxUserID ctxKey = "userID"
	ctxEmail  ctxKey = "email"
)

// Uploader forwards image bytes to the external media host.
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename string) (*media.UploadResult, error)
}

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	db       *sqlx.DB
	cfg      *config.Config
	log      zerolog.Logger
	uploader Uploader
}

// New constructs a Handler.
func New(db *sqlx.DB, cfg *config.Config, log zerolog.Logger, uploader Uploader) *Handler {
	return &Handler{db: db, cfg: cfg, log: log, uploader: uploader}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.FrontendOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", h.health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/signup", h.signup)
		r.Post("/signin", h.signin)

		r.Get("/banners", h.listBanners)

		r.Get("/get-product", h.listProducts)
		r.Get("/get-categoryProduct", h.listCategoryProducts)
		r.Post("/category-product", h.productsByCategory)
		r.Post("/product-details", h.productDetails)
		r.Get("/search", h.searchProducts)
		r.Post("/filter-product", h.filterProducts)

		r.Group(func(pr chi.Router) {
			pr.Use(h.authMiddleware)

			pr.Get("/user-details", h.userDetails)
			pr.Get("/userLogout", h.logout)
			pr.Post("/update-user", h.updateUser)
			pr.Get("/all-user", h.listUsers)

			pr.Post("/create-banner", h.createBanner)
			pr.Post("/update-banner", h.updateBanner)
			pr.Post("/delete-banner", h.deleteBanner)
			pr.Post("/reorder-banners", h.reorderBanners)

			pr.Post("/upload-product", h.createProduct)
			pr.Post("/update-product", h.updateProduct)

			pr.Post("/addtocart", h.addToCart)
			pr.Get("/countAddToCartProduct", h.countCartProducts)
			pr.Get("/view-card-product", h.viewCartProducts)
			pr.Post("/update-cart-product", h.updateCartProduct)
			pr.Post("/delete-cart-product", h.deleteCartProduct)

			pr.Post("/cloudinary/upload", h.uploadImage)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, http.StatusNotFound, "Route not found")
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.log.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// envelope is the uniform response shape for every /api endpoint.
type envelope struct {
	Message string `json:"message"`
	Error   bool   `json:"error"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
}

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondData(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Message: message, Success: true, Data: data})
}

func respondOK(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Message: message, Success: true})
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Message: message, Error: true})
}
