package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"jobsite/internal/auth"
	"jobsite/internal/httpserver/request"
	"jobsite/internal/models"
)

func Me(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, auth.CurrentUser(r.Context()))
	}
}

func ListUsers(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		type userRow struct {
			ID       uint    `json:"id"`
			Username string  `json:"username"`
			First    *string `json:"first"`
			Last     *string `json:"last"`
			Email    *string `json:"email"`
		}
		var users []userRow
		if err := db.Model(&models.User{}).
			Select("id", "username", "first", "last", "email").
			Scan(&users).Error; err != nil {
			respondInternal(w, lg, "list users failed", err)
			return
		}
		respondJSON(w, users)
	}
}

func UpdateUser(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "user_id")
		body, err := decodeBody(r)
		if err != nil {
			respondStatus(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		values := request.FilterBody(body, []string{"first", "last"})
		if len(values) > 0 {
			if err := db.Model(&models.User{}).Where("id = ?", userID).Updates(values).Error; err != nil {
				respondInternal(w, lg, "update user failed", err)
				return
			}
		}
		var u models.User
		if err := db.First(&u, "id = ?", userID).Error; err != nil {
			respondInternal(w, lg, "fetch updated user failed", err)
			return
		}
		respondJSON(w, map[string]interface{}{
			"id": u.ID, "username": u.Username, "first": u.First, "last": u.Last,
		})
	}
}
