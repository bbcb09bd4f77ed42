package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"jobsite/internal/models"
)

func ListEstimates(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := chi.URLParam(r, "job_id")
		var estimates []models.Estimate
		if err := db.Where("job_id = ?", jobID).Find(&estimates).Error; err != nil {
			respondInternal(w, lg, "list estimates failed", err)
			return
		}
		if len(estimates) == 0 {
			respondStatus(w, http.StatusNotFound, fmt.Sprintf("no estimates found for job %s", jobID))
			return
		}
		respondJSON(w, estimates)
	}
}

func GetEstimate(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := chi.URLParam(r, "job_id")
		estimateID := chi.URLParam(r, "estimate_id")
		var estimate models.Estimate
		err := db.Where("job_id = ? AND id = ?", jobID, estimateID).First(&estimate).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondStatus(w, http.StatusNotFound, fmt.Sprintf("no estimate found with id %s", estimateID))
			return
		}
		if err != nil {
			respondInternal(w, lg, "get estimate failed", err)
			return
		}
		respondJSON(w, estimate)
	}
}

// CreateEstimate checks the parent job inside the same transaction as
// the insert so the job cannot vanish between the two.
func CreateEstimate(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := chi.URLParam(r, "job_id")
		var estimate models.Estimate
		err := db.Transaction(func(tx *gorm.DB) error {
			var job models.Job
			if err := tx.First(&job, "id = ?", jobID).Error; err != nil {
				return err
			}
			estimate = models.Estimate{JobID: job.ID}
			return tx.Create(&estimate).Error
		})
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondStatus(w, http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("job %s does not exist", jobID),
			})
			return
		}
		if err != nil {
			respondInternal(w, lg, "create estimate failed", err)
			return
		}
		respondJSON(w, estimate)
	}
}

func DeleteEstimate(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := chi.URLParam(r, "job_id")
		estimateID := chi.URLParam(r, "estimate_id")
		res := db.Where("job_id = ? AND id = ?", jobID, estimateID).Delete(&models.Estimate{})
		if res.Error != nil {
			respondInternal(w, lg, "delete estimate failed", res.Error)
			return
		}
		if res.RowsAffected == 0 {
			respondStatus(w, http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("estimate %s does not exist", estimateID),
			})
			return
		}
		respondJSON(w, fmt.Sprintf("successfully deleted estimate %s", estimateID))
	}
}

// EstimateTotalCost sums quantity×cost_per_unit over every material and
// hours×cost_per_hour over every labor row reachable through the
// estimate's trades. The math runs in decimal so totals come out exact
// rather than drifting the way float accumulation does.
func EstimateTotalCost(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		estimateID := chi.URLParam(r, "estimate_id")

		var materials []struct {
			Quantity    int64
			CostPerUnit float64
		}
		err := db.Table("services_materials").
			Select("services_materials.quantity, services_materials.cost_per_unit").
			Joins("JOIN services ON services.id = services_materials.service_id").
			Joins("JOIN trades ON trades.id = services.trade_id").
			Where("trades.estimate_id = ?", estimateID).
			Scan(&materials).Error
		if err != nil {
			respondInternal(w, lg, "material cost query failed", err)
			return
		}

		var labor []struct {
			Hours       float64
			CostPerHour float64
		}
		err = db.Table("services_labor").
			Select("services_labor.hours, services_labor.cost_per_hour").
			Joins("JOIN services ON services.id = services_labor.service_id").
			Joins("JOIN trades ON trades.id = services.trade_id").
			Where("trades.estimate_id = ?", estimateID).
			Scan(&labor).Error
		if err != nil {
			respondInternal(w, lg, "labor cost query failed", err)
			return
		}

		total := decimal.Zero
		for _, m := range materials {
			total = total.Add(decimal.NewFromInt(m.Quantity).Mul(decimal.NewFromFloat(m.CostPerUnit)))
		}
		for _, l := range labor {
			total = total.Add(decimal.NewFromFloat(l.Hours).Mul(decimal.NewFromFloat(l.CostPerHour)))
		}
		respondJSON(w, json.Number(total.String()))
	}
}
