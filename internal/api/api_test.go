package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"storefront/m/domain"
	"storefront/m/internal/config"
	"storefront/m/internal/media"
	"storefront/m/internal/migrations"
)

const testPassword = "password123"

type stubUploader struct {
	result *media.UploadResult
	err    error
}

func (s stubUploader) Upload(ctx context.Context, data []byte, filename string) (*media.UploadResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	return nil, errors.New("no upload stubbed")
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.Run(db))

	cfg := &config.Config{
		Secret:         "test-secret",
		FrontendOrigin: "http://localhost:3000",
	}
	return New(db, cfg, zerolog.Nop(), stubUploader{})
}

func createUser(t *testing.T, h *Handler, email string, role domain.Role) int64 {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	var id int64
	err = h.db.QueryRowx(`INSERT INTO users (name, email, password, role) VALUES (?, ?, ?, ?) RETURNING id`,
		"Test User", email, hashed, role).Scan(&id)
	require.NoError(t, err)
	return id
}

func authCookie(t *testing.T, h *Handler, userID int64) *http.Cookie {
	t.Helper()
	var user domain.User
	require.NoError(t, h.db.Get(&user, `SELECT id, name, email, password, role, profile_pic, created_at, updated_at FROM users WHERE id = ?`, userID))
	token, err := h.generateToken(user.ID, user.Email, user.Role)
	require.NoError(t, err)
	return &http.Cookie{Name: sessionCookie, Value: token}
}

func doRequest(t *testing.T, h *Handler, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	return rec
}

func doRequestWithHeader(t *testing.T, h *Handler, method, path, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", authorization)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	return rec
}

type testEnvelope struct {
	Message string          `json:"message"`
	Error   bool            `json:"error"`
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}
