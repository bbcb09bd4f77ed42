package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"jobsite/internal/httpserver/request"
	"jobsite/internal/models"
)

// Clients are not scoped to the caller; any authenticated user sees
// and edits the full list. Known gap, inherited.

var clientFields = []string{"name", "address", "email", "phone"}

func ListClients(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var clients []models.Client
		if err := db.Find(&clients).Error; err != nil {
			respondInternal(w, lg, "list clients failed", err)
			return
		}
		respondJSON(w, clients)
	}
}

func GetClient(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := chi.URLParam(r, "client_id")
		var c models.Client
		if err := db.First(&c, "id = ?", clientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondStatus(w, http.StatusNotFound, fmt.Sprintf("Client id: %s, not found", clientID))
				return
			}
			respondInternal(w, lg, "get client failed", err)
			return
		}
		respondJSON(w, c)
	}
}

func CreateClient(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c models.Client
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			respondStatus(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		c.ID = 0
		if err := db.Create(&c).Error; err != nil {
			respondInternal(w, lg, "create client failed", err)
			return
		}
		respondJSON(w, c)
	}
}

func UpdateClient(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := chi.URLParam(r, "client_id")
		body, err := decodeBody(r)
		if err != nil {
			respondStatus(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		values := request.FilterBody(body, clientFields)
		var c models.Client
		if err := db.First(&c, "id = ?", clientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondStatus(w, http.StatusBadRequest, map[string]string{
					"error": fmt.Sprintf("Client id: %s does not exist.", clientID),
				})
				return
			}
			respondInternal(w, lg, "update client lookup failed", err)
			return
		}
		if len(values) > 0 {
			if err := db.Model(&c).Updates(values).Error; err != nil {
				respondInternal(w, lg, "update client failed", err)
				return
			}
		}
		respondJSON(w, c)
	}
}

func DeleteClient(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientID := chi.URLParam(r, "client_id")
		res := db.Delete(&models.Client{}, "id = ?", clientID)
		if res.Error != nil {
			respondInternal(w, lg, "delete client failed", res.Error)
			return
		}
		if res.RowsAffected == 0 {
			respondStatus(w, http.StatusNotFound, map[string]string{
				"error": fmt.Sprintf("Client: '%s' not found", clientID),
			})
			return
		}
		respondJSON(w, fmt.Sprintf("Client: %s successfully deleted.", clientID))
	}
}
