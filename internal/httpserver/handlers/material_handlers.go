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

var materialFields = []string{"name", "quantity", "unit", "cost_per_unit", "supplier_cost", "profit"}

func ListMaterials(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serviceID := chi.URLParam(r, "service_id")
		var materials []models.Material
		if err := db.Where("service_id = ?", serviceID).Find(&materials).Error; err != nil {
			respondInternal(w, lg, "list materials failed", err)
			return
		}
		respondJSON(w, materials)
	}
}

func CreateMaterial(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serviceID, err := strconv.ParseUint(chi.URLParam(r, "service_id"), 10, 64)
		if err != nil {
			respondStatus(w, http.StatusBadRequest, map[string]string{"error": "invalid service id"})
			return
		}
		var m models.Material
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			respondStatus(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		m.ID = 0
		m.ServiceID = uint(serviceID)
		if err := db.Create(&m).Error; err != nil {
			respondInternal(w, lg, "create material failed", err)
			return
		}
		respondJSON(w, m)
	}
}

func UpdateMaterial(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		materialID := chi.URLParam(r, "material_id")
		body, err := decodeBody(r)
		if err != nil {
			respondStatus(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		values := request.FilterBody(body, materialFields)
		var m models.Material
		if err := db.First(&m, "id = ?", materialID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondStatus(w, http.StatusBadRequest, map[string]string{
					"error": fmt.Sprintf("material %s does not exist or is not owned by this user.", materialID),
				})
				return
			}
			respondInternal(w, lg, "update material lookup failed", err)
			return
		}
		if len(values) > 0 {
			if err := db.Model(&m).Updates(values).Error; err != nil {
				respondInternal(w, lg, "update material failed", err)
				return
			}
		}
		respondJSON(w, m)
	}
}

func DeleteMaterial(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		materialID := chi.URLParam(r, "material_id")
		res := db.Delete(&models.Material{}, "id = ?", materialID)
		if res.Error != nil {
			respondInternal(w, lg, "delete material failed", res.Error)
			return
		}
		if res.RowsAffected == 0 {
			respondStatus(w, http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("material %s does not exist", materialID),
			})
			return
		}
		respondJSON(w, fmt.Sprintf("successfully deleted material %s", materialID))
	}
}
