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

var serviceFields = []string{"name", "trade_id", "order_id"}

// ListEstimateServices walks estimate -> trades -> services.
func ListEstimateServices(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := chi.URLParam(r, "job_id")
		estimateID := chi.URLParam(r, "estimate_id")
		var services []models.Service
		err := db.
			Joins("JOIN trades ON trades.id = services.trade_id").
			Where("trades.estimate_id = ?", estimateID).
			Find(&services).Error
		if err != nil {
			respondInternal(w, lg, "list services failed", err)
			return
		}
		if len(services) == 0 {
			respondStatus(w, http.StatusNotFound, fmt.Sprintf("no services found for job %s", jobID))
			return
		}
		respondJSON(w, services)
	}
}

func CreateService(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := chi.URLParam(r, "job_id")
		var req struct {
			Name    *string `json:"name"`
			TradeID *uint   `json:"trade_id"`
			OrderID *uint   `json:"order_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondStatus(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		var service models.Service
		err := db.Transaction(func(tx *gorm.DB) error {
			var job models.Job
			if err := tx.First(&job, "id = ?", jobID).Error; err != nil {
				return err
			}
			service = models.Service{Name: req.Name, TradeID: req.TradeID, OrderID: req.OrderID}
			return tx.Create(&service).Error
		})
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondStatus(w, http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("job %s does not exist", jobID),
			})
			return
		}
		if err != nil {
			respondInternal(w, lg, "create service failed", err)
			return
		}
		respondJSON(w, service)
	}
}

func UpdateService(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serviceID := chi.URLParam(r, "service_id")
		body, err := decodeBody(r)
		if err != nil {
			respondStatus(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		values := request.FilterBody(body, serviceFields)
		var service models.Service
		if err := db.First(&service, "id = ?", serviceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondStatus(w, http.StatusBadRequest, map[string]string{
					"error": fmt.Sprintf("service %s does not exist", serviceID),
				})
				return
			}
			respondInternal(w, lg, "update service lookup failed", err)
			return
		}
		if len(values) > 0 {
			if err := db.Model(&service).Updates(values).Error; err != nil {
				respondInternal(w, lg, "update service failed", err)
				return
			}
		}
		respondJSON(w, service)
	}
}

func DeleteService(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serviceID := chi.URLParam(r, "service_id")
		res := db.Delete(&models.Service{}, "id = ?", serviceID)
		if res.Error != nil {
			respondInternal(w, lg, "delete service failed", res.Error)
			return
		}
		if res.RowsAffected == 0 {
			respondStatus(w, http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("service %s does not exist", serviceID),
			})
			return
		}
		respondJSON(w, fmt.Sprintf("successfully deleted service %s", serviceID))
	}
}
