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

	"jobsite/internal/models"
)

func ListReports(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workfileID := chi.URLParam(r, "workfile_id")
		var reports []models.Report
		if err := db.Where("workfile_id = ?", workfileID).Find(&reports).Error; err != nil {
			respondInternal(w, lg, "list reports failed", err)
			return
		}
		if len(reports) == 0 {
			respondStatus(w, http.StatusNotFound, fmt.Sprintf("no reports found for workfile %s", workfileID))
			return
		}
		respondJSON(w, reports)
	}
}

// SaveReport upserts the report document for a workfile: one row per
// workfile, replaced wholesale on every save.
func SaveReport(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workfileID, err := strconv.ParseUint(chi.URLParam(r, "workfile_id"), 10, 64)
		if err != nil {
			respondStatus(w, http.StatusBadRequest, map[string]string{"error": "invalid workfile id"})
			return
		}
		var req struct {
			Report json.RawMessage `json:"report"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondStatus(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			var existing models.Report
			err := tx.First(&existing, "workfile_id = ?", workfileID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(&models.Report{
					WorkfileID: uint(workfileID),
					Report:     models.JSONB(req.Report),
				}).Error
			}
			if err != nil {
				return err
			}
			return tx.Model(&existing).Update("report", models.JSONB(req.Report)).Error
		})
		if err != nil {
			respondInternal(w, lg, "save report failed", err)
			return
		}
		respondJSON(w, map[string]bool{"success": true})
	}
}
