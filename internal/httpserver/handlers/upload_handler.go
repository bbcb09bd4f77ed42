package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"jobsite/internal/storage"
)

// Upload hands the client a presigned S3 PUT URL; nothing is stored
// server-side.
func Upload(lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fileName := r.URL.Query().Get("file-name")
		fileType := r.URL.Query().Get("file-type")
		if fileName == "" {
			respondStatus(w, http.StatusBadRequest, map[string]string{"error": "missing required value: 'file-name'"})
			return
		}
		if fileType == "" {
			respondStatus(w, http.StatusBadRequest, map[string]string{"error": "missing required value: 'file-type'"})
			return
		}
		data, err := storage.PresignUpload(r.Context(), fileName, fileType)
		if err != nil {
			respondInternal(w, lg, "presign upload failed", err)
			return
		}
		respondJSON(w, data)
	}
}
