package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"jobsite/internal/auth"
	"jobsite/internal/models"
)

type signupReq struct {
	Username       string  `json:"username"`
	Password       string  `json:"password"`
	Email          *string `json:"email,omitempty"`
	Role           *string `json:"role,omitempty"`
	RegionID       *int    `json:"region_id,omitempty"`
	IsAdmin        bool    `json:"is_admin"`
	OrganizationID *int    `json:"organization_id,omitempty"`
}

// createUser inserts a new user, rejecting duplicate usernames with
// 403 the way the original signup flow did.
func createUser(db *gorm.DB, req signupReq) (*models.User, int, string) {
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return nil, http.StatusBadRequest, "username and password required"
	}
	var existing models.User
	err := db.First(&existing, "username = ?", req.Username).Error
	if err == nil {
		return nil, http.StatusForbidden, "username already exists"
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, http.StatusInternalServerError, "Internal Error"
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, http.StatusInternalServerError, "Internal Error"
	}
	u := models.User{
		Username: req.Username,
		Password: hash,
		Email:    req.Email,
		Role:     req.Role,
		RegionID: req.RegionID,
		IsAdmin:  req.IsAdmin,
	}
	u.OrganizationID = 1
	if req.OrganizationID != nil {
		u.OrganizationID = *req.OrganizationID
	}
	if err := db.Create(&u).Error; err != nil {
		return nil, http.StatusInternalServerError, "Internal Error"
	}
	return &u, http.StatusOK, ""
}

func Signup(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondStatus(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		u, status, msg := createUser(db, req)
		if u == nil {
			if status == http.StatusInternalServerError {
				lg.Errorw("signup failed", "username", req.Username, "reason", msg)
			}
			respondStatus(w, status, map[string]string{"error": msg})
			return
		}
		tok, err := auth.Sign(u.ID)
		if err != nil {
			respondInternal(w, lg, "token sign failed", err)
			return
		}
		respondJSON(w, map[string]interface{}{"status": "success", "user": u, "token": tok})
	}
}

// SignupInvite creates an account on someone's behalf; no token is
// issued, the invitee logs in themselves.
func SignupInvite(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondStatus(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		u, status, msg := createUser(db, req)
		if u == nil {
			if status == http.StatusInternalServerError {
				lg.Errorw("invite signup failed", "username", req.Username, "reason", msg)
			}
			respondStatus(w, status, map[string]string{"error": msg})
			return
		}
		respondJSON(w, map[string]interface{}{"status": "success", "id": u.ID})
	}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Login(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondStatus(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		var u models.User
		if err := db.First(&u, "username = ?", req.Username).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondStatus(w, http.StatusUnauthorized, map[string]string{"error": "incorrect username or password"})
				return
			}
			respondInternal(w, lg, "login lookup failed", err)
			return
		}
		if err := auth.CheckPassword(u.Password, req.Password); err != nil {
			respondStatus(w, http.StatusUnauthorized, map[string]string{"error": "incorrect username or password"})
			return
		}
		tok, err := auth.Sign(u.ID)
		if err != nil {
			respondInternal(w, lg, "token sign failed", err)
			return
		}
		respondJSON(w, map[string]interface{}{"status": "success", "user": u, "token": tok})
	}
}
