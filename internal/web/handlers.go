package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"csvscope/internal/analyze"
	"csvscope/internal/logging"
	"csvscope/internal/render"
	"csvscope/internal/table"
)

//go:embed templates/index.html
var templateFiles embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFiles, "templates/index.html"))

type indexData struct {
	MaxSizeMB int
	Error     string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderIndex(w, r, http.StatusOK, "")
}

func (s *Server) renderIndex(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	data := indexData{MaxSizeMB: s.cfg.Upload.MaxSizeMB, Error: errMsg}
	if err := indexTmpl.Execute(w, data); err != nil {
		logging.FromContext(r.Context()).Error("render index", "error", err)
	}
}

// handleAnalyze accepts a multipart upload, bounds and filters it, and
// runs the profiling pipeline on the file bytes. Oversized uploads are
// rejected here as a distinct condition before the core ever runs.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())
	maxBytes := s.cfg.Upload.MaxBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.renderIndex(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("File is too large. Maximum allowed size is %d MB.", s.cfg.Upload.MaxSizeMB))
			return
		}
		s.renderIndex(w, r, http.StatusBadRequest, "Invalid upload form.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.renderIndex(w, r, http.StatusBadRequest, "No file part in the request.")
		return
	}
	defer file.Close()

	filename := filepath.Base(header.Filename)
	if filename == "" || filename == "." {
		s.renderIndex(w, r, http.StatusBadRequest, "No selected file.")
		return
	}
	if !strings.EqualFold(filepath.Ext(filename), ".csv") {
		s.renderIndex(w, r, http.StatusBadRequest, "Invalid file type. Only .csv files are allowed.")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.renderIndex(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("File is too large. Maximum allowed size is %d MB.", s.cfg.Upload.MaxSizeMB))
			return
		}
		logger.Error("read upload", "error", err)
		s.renderIndex(w, r, http.StatusInternalServerError, "Failed to read the uploaded file.")
		return
	}

	report, err := analyze.Analyze(data)
	if err != nil {
		s.renderAnalysisError(w, r, err)
		return
	}

	logger.Info("analysis complete",
		"file", filename,
		"rows", report.Rows,
		"cols", report.Cols,
		"encoding", report.Encoding,
	)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.HTML(w, report, filename); err != nil {
		logger.Error("render report", "error", err)
	}
}

// renderAnalysisError maps the core error taxonomy onto user-facing
// messages. Anything outside the taxonomy is a bug: logged, and
// surfaced only as a generic failure.
func (s *Server) renderAnalysisError(w http.ResponseWriter, r *http.Request, err error) {
	var emptyData *table.EmptyDataError
	var parseErr *table.ParseError

	switch {
	case errors.Is(err, analyze.ErrEmptyInput):
		s.renderIndex(w, r, http.StatusBadRequest, "Uploaded file is empty.")
	case errors.As(err, &emptyData):
		s.renderIndex(w, r, http.StatusBadRequest, "The CSV appears to be empty or has no columns.")
	case errors.As(err, &parseErr):
		s.renderIndex(w, r, http.StatusBadRequest, "Failed to parse CSV: "+parseErr.Error())
	default:
		logging.FromContext(r.Context()).Error("unexpected analysis failure", "error", err)
		s.renderIndex(w, r, http.StatusInternalServerError,
			"An unexpected error occurred while analyzing the file.")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
