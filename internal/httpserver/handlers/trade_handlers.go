package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"jobsite/internal/models"
)

func ListTrades(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		estimateID := chi.URLParam(r, "estimate_id")
		var trades []models.Trade
		if err := db.Where("estimate_id = ?", estimateID).Find(&trades).Error; err != nil {
			respondInternal(w, lg, "list trades failed", err)
			return
		}
		if len(trades) == 0 {
			respondStatus(w, http.StatusNotFound, fmt.Sprintf("no trades found for estimate %s", estimateID))
			return
		}
		respondJSON(w, trades)
	}
}

func CreateTrade(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		estimateID := chi.URLParam(r, "estimate_id")
		var req struct {
			Name *string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondStatus(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		var trade models.Trade
		err := db.Transaction(func(tx *gorm.DB) error {
			var estimate models.Estimate
			if err := tx.First(&estimate, "id = ?", estimateID).Error; err != nil {
				return err
			}
			trade = models.Trade{Name: req.Name, EstimateID: estimate.ID}
			return tx.Create(&trade).Error
		})
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondStatus(w, http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("estimate %s does not exist", estimateID),
			})
			return
		}
		if err != nil {
			respondInternal(w, lg, "create trade failed", err)
			return
		}
		respondJSON(w, trade)
	}
}

func DeleteTrade(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tradeID := chi.URLParam(r, "trade_id")
		res := db.Delete(&models.Trade{}, "id = ?", tradeID)
		if res.Error != nil {
			respondInternal(w, lg, "delete trade failed", res.Error)
			return
		}
		if res.RowsAffected == 0 {
			respondStatus(w, http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("trade %s does not exist", tradeID),
			})
			return
		}
		respondJSON(w, fmt.Sprintf("successfully deleted trade %s", tradeID))
	}
}
