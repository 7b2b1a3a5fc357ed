package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/skuflow/skuflow/internal/csvio"
	"github.com/skuflow/skuflow/internal/history"
	"github.com/skuflow/skuflow/internal/logging"
	"github.com/skuflow/skuflow/internal/pivot"
	"github.com/skuflow/skuflow/internal/xlsx"
)

// handleIndex serves the upload page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

// handleHealth reports service liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleProcess accepts a CSV export as a multipart upload and returns the
// pivot table, diagnostics, and run statistics as JSON.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	file, name, ok := s.uploadedFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	res, err := s.service.Run(r.Context(), file, name, "web")
	if err != nil {
		s.respondError(w, r, err, processStatus(err))
		return
	}

	logging.FromContext(r.Context()).Info("processed upload",
		"run_id", res.RunID,
		"file", name,
		"products", res.Stats.Products,
		"rejected", res.Stats.Rejected,
	)
	writeJSON(w, http.StatusOK, res)
}

// handleProcessXLSX accepts a CSV export and returns the pivot table as an
// .xlsx attachment.
func (s *Server) handleProcessXLSX(w http.ResponseWriter, r *http.Request) {
	file, name, ok := s.uploadedFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	res, err := s.service.Run(r.Context(), file, name, "web")
	if err != nil {
		s.respondError(w, r, err, processStatus(err))
		return
	}

	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if stem == "" {
		stem = "inventory"
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+stem+`.xlsx"`)
	if err := xlsx.Write(res.Table, w); err != nil {
		// Headers are already sent; log and give up on this response.
		logging.FromContext(r.Context()).Error("xlsx write failed", "error", err)
	}
}

// handleHistory returns recent processing runs, newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	runs, err := s.history.Recent(r.Context(), s.cfg.History.RecentLimit)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []history.Run{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

// uploadedFile extracts the "file" part from a multipart upload, enforcing
// the configured size limit. On failure it writes the error response and
// returns ok=false.
func (s *Server) uploadedFile(w http.ResponseWriter, r *http.Request) (multipart.File, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			s.respondError(w, r, errors.New("file too large"), http.StatusRequestEntityTooLarge)
		} else {
			s.respondError(w, r, errors.New("no file provided"), http.StatusBadRequest)
		}
		return nil, "", false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, errors.New("no file provided"), http.StatusBadRequest)
		return nil, "", false
	}

	return file, header.Filename, true
}

// processStatus picks the HTTP status for a processing error. Input problems
// are the client's fault; everything else is ours.
func processStatus(err error) int {
	var mce *csvio.MissingColumnError
	switch {
	case errors.As(err, &mce),
		errors.Is(err, pivot.ErrNoValidRows):
		return http.StatusBadRequest
	case strings.Contains(err.Error(), "invalid csv"),
		strings.Contains(err.Error(), "empty file"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON encodes v as JSON with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent; nothing left to do but log.
		slog.Error("json encode failed", "error", err)
	}
}
