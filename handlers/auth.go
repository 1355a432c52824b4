package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/brewandbean/cafe/config"
	"github.com/brewandbean/cafe/database"
	"github.com/brewandbean/cafe/database/dbhelper"
	"github.com/brewandbean/cafe/models"
	"github.com/brewandbean/cafe/utils"
)

func Register(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Name     string `json:"name"`
		Phone    string `json:"phone"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if req.Name == "" || req.Phone == "" || req.Password == "" {
		http.Error(w, "name, phone and password are required", http.StatusBadRequest)
		return
	}

	if len(req.Password) < 6 {
		http.Error(w, "password must be at least 6 characters", http.StatusBadRequest)
		return
	}

	exists, err := dbhelper.IsUserExists(req.Phone)
	if err != nil {
		http.Error(w, "failed to check user existence", http.StatusInternalServerError)
		return
	}
	if exists {
		http.Error(w, "user already exists", http.StatusBadRequest)
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		http.Error(w, "failed to hash password", http.StatusInternalServerError)
		return
	}

	var userID uuid.UUID
	var accToken, refToken string
	txErr := database.Tx(func(tx *sql.Tx) error {
		userID, err = dbhelper.CreateUser(tx, req.Name, req.Phone, req.Email, hashedPassword)
		if err != nil {
			logrus.Printf("failed to create user, error: %v", err)
			return err
		}

		err = dbhelper.AssignRole(tx, userID, models.RoleCustomer)
		if err != nil {
			logrus.Printf("failed to assign role to the user, error: %v", err)
			return err
		}

		accToken, refToken, err = utils.GenerateTokens(userID, []string{string(models.RoleCustomer)})
		if err != nil {
			logrus.Printf("failed to generate token, error: %v", err)
			return err
		}

		return nil
	})
	if txErr != nil {
		http.Error(w, "failed to register user", http.StatusInternalServerError)
		return
	}

	resp := map[string]interface{}{
		"user_id":       userID,
		"name":          req.Name,
		"phone":         req.Phone,
		"access_token":  accToken,
		"refresh_token": refToken,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func Login(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if req.Phone == "" || req.Password == "" {
		http.Error(w, "phone and password required", http.StatusBadRequest)
		return
	}

	userID, name, err := dbhelper.GetUserByPassword(req.Phone, req.Password)
	if err == sql.ErrNoRows {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	} else if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	roles, err := dbhelper.GetUserRoles(userID)
	if err != nil {
		http.Error(w, "could not fetch roles", http.StatusInternalServerError)
		return
	}
	if len(roles) == 0 {
		http.Error(w, "no roles assigned", http.StatusForbidden)
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(userID, roles)
	if err != nil {
		http.Error(w, "failed to generate tokens", http.StatusInternalServerError)
		return
	}

	setRefreshCookie(w, refreshToken, time.Now().Add(7*24*time.Hour))

	resp := map[string]interface{}{
		"user_id":      userID,
		"name":         name,
		"access_token": accessToken,
		"roles":        roles,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		http.Error(w, "refresh token missing", http.StatusUnauthorized)
		return
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(config.SecretKey), nil
	})
	if err != nil || !token.Valid {
		http.Error(w, "invalid or expired refresh token", http.StatusUnauthorized)
		return
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		http.Error(w, "invalid or expired refresh token", http.StatusUnauthorized)
		return
	}

	roles, err := dbhelper.GetUserRoles(userID)
	if err != nil {
		http.Error(w, "could not fetch roles", http.StatusInternalServerError)
		return
	}

	newAccessToken, newRefreshToken, err := utils.GenerateTokens(userID, roles)
	if err != nil {
		http.Error(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	setRefreshCookie(w, newRefreshToken, time.Now().Add(7*24*time.Hour))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"access_token": newAccessToken,
	})
}

func Logout(w http.ResponseWriter, r *http.Request) {
	setRefreshCookie(w, "", time.Unix(0, 0))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Successfully logged out",
	})
}

func setRefreshCookie(w http.ResponseWriter, value string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    value,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		Expires:  expires,
	})
}

// CreateStaff promotes an existing user to the staff role. Admin only.
func CreateStaff(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Phone string `json:"phone"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if req.Phone == "" {
		http.Error(w, "phone is required", http.StatusBadRequest)
		return
	}

	userID, err := dbhelper.GetUserByPhone(req.Phone)
	if err == sql.ErrNoRows {
		http.Error(w, "user does not exist", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	isStaff, err := dbhelper.HasRole(userID, models.RoleStaff)
	if err != nil {
		http.Error(w, "role check failed", http.StatusInternalServerError)
		return
	}
	if isStaff {
		http.Error(w, "user is already staff", http.StatusConflict)
		return
	}

	if err := dbhelper.GrantRole(userID, models.RoleStaff); err != nil {
		http.Error(w, "failed to assign staff role", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Staff member created successfully",
		"user_id": userID.String(),
	})
}

func ListStaff(w http.ResponseWriter, r *http.Request) {
	type staffMember struct {
		ID    uuid.UUID `json:"id"`
		Name  string    `json:"name"`
		Phone string    `json:"phone"`
	}

	rows, err := dbhelper.ListUsersByRole(models.RoleStaff)
	if err != nil {
		http.Error(w, "failed to query staff", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var staff []staffMember
	for rows.Next() {
		var s staffMember
		if err := rows.Scan(&s.ID, &s.Name, &s.Phone); err != nil {
			http.Error(w, "failed to parse result", http.StatusInternalServerError)
			return
		}
		staff = append(staff, s)
	}
	if err := rows.Err(); err != nil {
		http.Error(w, "error reading results", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(staff)
}
