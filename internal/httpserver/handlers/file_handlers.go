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

var fileFields = []string{"file_url", "group", "description"}

func ListJobFiles(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := chi.URLParam(r, "job_id")
		var files []models.JobFile
		if err := db.Where("job_id = ?", jobID).Find(&files).Error; err != nil {
			respondInternal(w, lg, "list job files failed", err)
			return
		}
		respondJSON(w, files)
	}
}

func CreateJobFile(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID, err := strconv.ParseUint(chi.URLParam(r, "job_id"), 10, 64)
		if err != nil {
			respondStatus(w, http.StatusBadRequest, map[string]string{"error": "invalid job id"})
			return
		}
		var f models.JobFile
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			respondStatus(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		f.ID = 0
		f.JobID = uint(jobID)
		if err := db.Create(&f).Error; err != nil {
			respondInternal(w, lg, "create job file failed", err)
			return
		}
		respondJSON(w, f)
	}
}

func UpdateJobFile(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := chi.URLParam(r, "job_id")
		fileID := chi.URLParam(r, "file_id")
		body, err := decodeBody(r)
		if err != nil {
			respondStatus(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		values := request.FilterBody(body, fileFields)
		var f models.JobFile
		if err := db.First(&f, "id = ? AND job_id = ?", fileID, jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondStatus(w, http.StatusNotFound, fmt.Sprintf("file not found with id: %s", fileID))
				return
			}
			respondInternal(w, lg, "update job file lookup failed", err)
			return
		}
		if len(values) > 0 {
			if err := db.Model(&f).Updates(values).Error; err != nil {
				respondInternal(w, lg, "update job file failed", err)
				return
			}
		}
		respondJSON(w, f)
	}
}

func DeleteJobFile(db *gorm.DB, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := chi.URLParam(r, "job_id")
		fileID := chi.URLParam(r, "file_id")
		res := db.Where("id = ? AND job_id = ?", fileID, jobID).Delete(&models.JobFile{})
		if res.Error != nil {
			respondInternal(w, lg, "delete job file failed", res.Error)
			return
		}
		if res.RowsAffected == 0 {
			respondStatus(w, http.StatusNotFound, fmt.Sprintf("file not found with id: %s", fileID))
			return
		}
		respondJSON(w, res.RowsAffected)
	}
}
