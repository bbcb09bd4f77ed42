package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"jobsite/internal/auth"
	"jobsite/internal/httpserver/request"
	"jobsite/internal/models"
)

type jobRow struct {
	ID         uint       `json:"id"`
	Name       *string    `json:"name"`
	Status     *string    `json:"status"`
	CreatedAt  *time.Time `json:"created_at"`
	ClientName *string    `json:"client_name"`
}

// fetchJobs returns the caller's jobs joined with the client name,
// optionally narrowed to one job id.
func fetchJobs(db *gorm.DB, userID uint, jobID string) ([]jobRow, error) {
	q := db.Table("jobs").
		Select("jobs.id, jobs.name, jobs.status, jobs.created_at, clients.name AS client_name").
		Joins("LEFT JOIN clients ON jobs.client_id = clients.id").
		Where("jobs.user_id = ?", userID)
	if jobID != "" {
		q = q.Where("jobs.id = ?", jobID)
	}
	var rows []jobRow
	err := q.Scan(&rows).Error
	return rows, err
}

func respondJobs(w http.ResponseWriter, rows []jobRow, userID uint, jobID string) {
	if len(rows) == 0 {
		message := fmt.Sprintf("no jobs found for user %d", userID)
		if jobID != "" {
			message += fmt.Sprintf(" with id: %s", jobID)
		}
		respondStatus(w, http.StatusNotFound, message)
		return
	}
	if jobID != "" {
		respondJSON(w, rows[0])
		return
	}
	respondJSON(w, rows)
}

func ListJobs(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := auth.CurrentUser(r.Context())
		rows, err := fetchJobs(db, user.ID, "")
		if err != nil {
			respondInternal(w, lg, "list jobs failed", err)
			return
		}
		respondJobs(w, rows, user.ID, "")
	}
}

func GetJob(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := auth.CurrentUser(r.Context())
		jobID := chi.URLParam(r, "job_id")
		rows, err := fetchJobs(db, user.ID, jobID)
		if err != nil {
			respondInternal(w, lg, "get job failed", err)
			return
		}
		respondJobs(w, rows, user.ID, jobID)
	}
}

func ListJobsByStatus(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := auth.CurrentUser(r.Context())
		status := chi.URLParam(r, "status")
		var rows []jobRow
		err := db.Table("jobs").
			Select("jobs.id, jobs.name, jobs.status, jobs.created_at, clients.name AS client_name").
			Joins("JOIN clients ON jobs.client_id = clients.id").
			Where("jobs.user_id = ? AND jobs.status = ?", user.ID, status).
			Scan(&rows).Error
		if err != nil {
			respondInternal(w, lg, "list jobs by status failed", err)
			return
		}
		if len(rows) == 0 {
			respondStatus(w, http.StatusNotFound, "no job found with status: "+status)
			return
		}
		respondJSON(w, rows)
	}
}

func CreateJob(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := auth.CurrentUser(r.Context())
		body, err := decodeBody(r)
		if err != nil {
			respondStatus(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		if err := request.RequireValues(body, []string{"name"}); err != nil {
			respondStatus(w, http.StatusBadRequest, map[string]string{
				"error": err.Error(), "message": err.Error(),
			})
			return
		}
		var req struct {
			Name     *string `json:"name"`
			Status   *string `json:"status"`
			ClientID *uint   `json:"client_id"`
		}
		raw, _ := json.Marshal(body)
		_ = json.Unmarshal(raw, &req)
		now := time.Now()
		job := models.Job{Name: req.Name, Status: req.Status, ClientID: req.ClientID, UserID: user.ID, CreatedAt: &now}
		if err := db.Create(&job).Error; err != nil {
			respondInternal(w, lg, "create job failed", err)
			return
		}
		rows, err := fetchJobs(db, user.ID, fmt.Sprint(job.ID))
		if err != nil {
			respondInternal(w, lg, "fetch created job failed", err)
			return
		}
		respondJobs(w, rows, user.ID, fmt.Sprint(job.ID))
	}
}

func UpdateJob(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := auth.CurrentUser(r.Context())
		jobID := chi.URLParam(r, "job_id")
		body, err := decodeBody(r)
		if err != nil {
			respondStatus(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		values := request.FilterBody(body, []string{"name", "status", "client_id"})
		var job models.Job
		if err := db.First(&job, "user_id = ? AND id = ?", user.ID, jobID).Error; err != nil {
			respondStatus(w, http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("job id: %s does not exist or is not owned by this user", jobID),
			})
			return
		}
		if len(values) > 0 {
			if err := db.Model(&job).Updates(values).Error; err != nil {
				respondInternal(w, lg, "update job failed", err)
				return
			}
		}
		rows, err := fetchJobs(db, user.ID, jobID)
		if err != nil {
			respondInternal(w, lg, "fetch updated job failed", err)
			return
		}
		respondJobs(w, rows, user.ID, jobID)
	}
}

func DeleteJob(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := auth.CurrentUser(r.Context())
		jobID := chi.URLParam(r, "job_id")
		res := db.Where("user_id = ? AND id = ?", user.ID, jobID).Delete(&models.Job{})
		if res.Error != nil {
			respondInternal(w, lg, "delete job failed", res.Error)
			return
		}
		if res.RowsAffected == 0 {
			respondStatus(w, http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("job id: %s does not exist or is not owned by this user", jobID),
			})
			return
		}
		respondJSON(w, fmt.Sprintf("successfully deleted job %s", jobID))
	}
}
