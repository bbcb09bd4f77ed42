package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"jobsite/internal/pdfgen"
)

// RenderPDF streams the rendered report for a workfile. The browser
// work happens per request; there is no render cache.
func RenderPDF(lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workfileID := chi.URLParam(r, "workfile_id")
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		pdf, err := pdfgen.Render(r.Context(), token, workfileID)
		if err != nil {
			respondInternal(w, lg, "pdf render failed", err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `inline; filename="output.pdf"`)
		_, _ = w.Write(pdf)
	}
}
