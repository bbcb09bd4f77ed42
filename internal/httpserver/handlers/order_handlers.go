package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"jobsite/internal/models"
)

func ListOrders(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := chi.URLParam(r, "job_id")
		var orders []models.Order
		if err := db.Where("job_id = ?", jobID).Find(&orders).Error; err != nil {
			respondInternal(w, lg, "list orders failed", err)
			return
		}
		if len(orders) == 0 {
			respondStatus(w, http.StatusNotFound, fmt.Sprintf("no orders found for job %s", jobID))
			return
		}
		respondJSON(w, orders)
	}
}

func CreateOrder(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := chi.URLParam(r, "job_id")
		var order models.Order
		err := db.Transaction(func(tx *gorm.DB) error {
			var job models.Job
			if err := tx.First(&job, "id = ?", jobID).Error; err != nil {
				return err
			}
			order = models.Order{JobID: job.ID}
			return tx.Create(&order).Error
		})
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondStatus(w, http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("job %s does not exist", jobID),
			})
			return
		}
		if err != nil {
			respondInternal(w, lg, "create order failed", err)
			return
		}
		respondJSON(w, order)
	}
}

func DeleteOrder(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := chi.URLParam(r, "job_id")
		orderID := chi.URLParam(r, "order_id")
		res := db.Where("job_id = ? AND id = ?", jobID, orderID).Delete(&models.Order{})
		if res.Error != nil {
			respondInternal(w, lg, "delete order failed", res.Error)
			return
		}
		if res.RowsAffected == 0 {
			respondStatus(w, http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("order %s does not exist", orderID),
			})
			return
		}
		respondJSON(w, fmt.Sprintf("successfully deleted order %s", orderID))
	}
}
