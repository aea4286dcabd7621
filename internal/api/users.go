package api

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"storefront/m/domain"
)

type signupRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	ProfilePic string `json:"profilePic"`
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "Email is required")
		return
	}
	if req.Password == "" {
		respondError(w, http.StatusBadRequest, "Password is required")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Name is required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing int64
	err := h.db.Get(&existing, `SELECT id FROM users WHERE email = ?`, email)
	if err == nil {
		respondError(w, http.StatusConflict, "User with this email already exists")
		return
	}
	if !errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusInternalServerError, "Unable to create user")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to secure password")
		return
	}

	var id int64
	err = h.db.QueryRowx(`INSERT INTO users (name, email, password, role, profile_pic) VALUES (?, ?, ?, ?, ?) RETURNING id`,
		req.Name, email, hashed, domain.RoleGeneral, req.ProfilePic).Scan(&id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to create user")
		return
	}

	user := domain.User{
		ID:         id,
		Name:       req.Name,
		Email:      email,
		Role:       domain.RoleGeneral,
		ProfilePic: req.ProfilePic,
	}
	respondData(w, http.StatusCreated, "User created successfully!", user)
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "Email is required")
		return
	}
	if req.Password == "" {
		respondError(w, http.StatusBadRequest, "Password is required")
		return
	}

	// The same message for an unknown email and a wrong password, so the
	// endpoint cannot be used to enumerate accounts.
	var user domain.User
	err := h.db.Get(&user, `SELECT id, name, email, password, role, profile_pic, created_at, updated_at FROM users WHERE email = ?`,
		strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.generateToken(user.ID, user.Email, user.Role)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to generate token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
	})
	respondData(w, http.StatusOK, "Login successful", token)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
	})
	respondOK(w, http.StatusOK, "Logged out successfully")
}

func (h *Handler) userDetails(w http.ResponseWriter, r *http.Request) {
	var user domain.User
	err := h.db.Get(&user, `SELECT id, name, email, password, role, profile_pic, created_at, updated_at FROM users WHERE id = ?`, sessionUserID(r))
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to load user details")
		return
	}
	respondData(w, http.StatusOK, "User details retrieved successfully", user)
}

// updateUserRequest distinguishes absent fields from empty ones; only
// fields present in the request body are written.
type updateUserRequest struct {
	UserID     *int64  `json:"userId"`
	Email      *string `json:"email"`
	Name       *string `json:"name"`
	Role       *string `json:"role"`
	ProfilePic *string `json:"profilePic"`
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	sessionID := sessionUserID(r)
	targetID := sessionID
	if req.UserID != nil {
		targetID = *req.UserID
	}

	// Changing roles or touching another account is an admin operation.
	if req.Role != nil || targetID != sessionID {
		if !h.requireAdmin(w, r) {
			return
		}
	}

	var (
		clauses []string
		args    []any
	)
	if req.Email != nil {
		clauses = append(clauses, "email = ?")
		args = append(args, strings.ToLower(strings.TrimSpace(*req.Email)))
	}
	if req.Name != nil {
		clauses = append(clauses, "name = ?")
		args = append(args, *req.Name)
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		if !role.Valid() {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("role must be %s or %s", domain.RoleGeneral, domain.RoleAdmin))
			return
		}
		clauses = append(clauses, "role = ?")
		args = append(args, role)
	}
	if req.ProfilePic != nil {
		clauses = append(clauses, "profile_pic = ?")
		args = append(args, *req.ProfilePic)
	}

	if len(clauses) > 0 {
		clauses = append(clauses, "updated_at = CURRENT_TIMESTAMP")
		args = append(args, targetID)
		query := "UPDATE users SET " + strings.Join(clauses, ", ") + " WHERE id = ?"
		res, err := h.db.Exec(query, args...)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Unable to update user")
			return
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
	}

	var user domain.User
	err := h.db.Get(&user, `SELECT id, name, email, password, role, profile_pic, created_at, updated_at FROM users WHERE id = ?`, targetID)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to update user")
		return
	}
	respondData(w, http.StatusOK, "User Updated", user)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}
	var users []domain.User
	if err := h.db.Select(&users, `SELECT id, name, email, password, role, profile_pic, created_at, updated_at FROM users ORDER BY id`); err != nil {
		respondError(w, http.StatusInternalServerError, "Unable to list users")
		return
	}
	respondData(w, http.StatusOK, "All users", users)
}
