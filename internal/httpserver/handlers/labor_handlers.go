package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"jobsite/internal/httpserver/request"
	"jobsite/internal/models"
)

var laborFields = []string{"description", "hours", "cost_per_hour"}

func ListLabor(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serviceID := chi.URLParam(r, "service_id")
		var labor []models.Labor
		if err := db.Where("service_id = ?", serviceID).Find(&labor).Error; err != nil {
			respondInternal(w, lg, "list labor failed", err)
			return
		}
		respondJSON(w, labor)
	}
}

func CreateLabor(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serviceID, err := strconv.ParseUint(chi.URLParam(r, "service_id"), 10, 64)
		if err != nil {
			respondStatus(w, http.StatusBadRequest, map[string]string{"error": "invalid service id"})
			return
		}
		var l models.Labor
		if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
			respondStatus(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		l.ID = 0
		l.ServiceID = uint(serviceID)
		if err := db.Create(&l).Error; err != nil {
			respondInternal(w, lg, "create labor failed", err)
			return
		}
		respondJSON(w, l)
	}
}

func UpdateLabor(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		laborID := chi.URLParam(r, "labor_id")
		body, err := decodeBody(r)
		if err != nil {
			respondStatus(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		values := request.FilterBody(body, laborFields)
		var l models.Labor
		if err := db.First(&l, "id = ?", laborID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondStatus(w, http.StatusBadRequest, map[string]string{
					"error": fmt.Sprintf("labor %s does not exist or is not owned by this user.", laborID),
				})
				return
			}
			respondInternal(w, lg, "update labor lookup failed", err)
			return
		}
		if len(values) > 0 {
			if err := db.Model(&l).Updates(values).Error; err != nil {
				respondInternal(w, lg, "update labor failed", err)
				return
			}
		}
		respondJSON(w, l)
	}
}

func DeleteLabor(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		laborID := chi.URLParam(r, "labor_id")
		res := db.Delete(&models.Labor{}, "id = ?", laborID)
		if res.Error != nil {
			respondInternal(w, lg, "delete labor failed", res.Error)
			return
		}
		if res.RowsAffected == 0 {
			respondStatus(w, http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("labor %s does not exist", laborID),
			})
			return
		}
		respondJSON(w, fmt.Sprintf("successfully deleted labor %s", laborID))
	}
}
