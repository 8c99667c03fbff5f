package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/crossbom/crossbom/internal/observability"
)

// FilesHandler manages uploads and result downloads.
type FilesHandler struct {
	logger     *observability.Logger
	uploadDir  string
	outputDir  string
	maxSizeMB  int
	extensions map[string]bool
}

// NewFilesHandler creates a files handler.
func NewFilesHandler(logger *observability.Logger, uploadDir, outputDir string, maxSizeMB int, extensions []string) *FilesHandler {
	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		exts[strings.ToLower(e)] = true
	}
	return &FilesHandler{
		logger:     logger,
		uploadDir:  uploadDir,
		outputDir:  outputDir,
		maxSizeMB:  maxSizeMB,
		extensions: exts,
	}
}

// UploadResponseDTO is the stored-file descriptor returned on upload.
type UploadResponseDTO struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// Upload handles POST /upload (multipart form, field "file"). The
// stored name is the sanitized original name prefixed with a fresh id,
// so concurrent uploads of the same file never collide.
func (h *FilesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(h.maxSizeMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("file exceeds %d MB limit", h.maxSizeMB), "")
			return
		}
		writeError(w, http.StatusBadRequest, "missing file field", err.Error())
		return
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	ext := strings.ToLower(filepath.Ext(name))
	if !h.extensions[ext] {
		writeError(w, http.StatusUnsupportedMediaType,
			fmt.Sprintf("unsupported file extension %q", ext), "")
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to prepare upload dir", err.Error())
		return
	}

	stored := fmt.Sprintf("%s_%s", uuid.New().String()[:8], name)
	path := filepath.Join(h.uploadDir, stored)

	dst, err := os.Create(path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store file", err.Error())
		return
	}
	defer dst.Close()

	size, err := io.Copy(dst, file)
	if err != nil {
		os.Remove(path)
		writeError(w, http.StatusInternalServerError, "failed to store file", err.Error())
		return
	}

	h.logger.Info().Str("filename", stored).Int64("size", size).Msg("file uploaded")
	writeJSON(w, http.StatusOK, UploadResponseDTO{Filename: stored, Size: size})
}

// OutputDTO describes one result file.
type OutputDTO struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Modified string `json:"modified"`
}

// ListOutputs handles GET /outputs.
func (h *FilesHandler) ListOutputs(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(h.outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			writeJSON(w, http.StatusOK, []OutputDTO{})
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to list outputs", err.Error())
		return
	}

	out := make([]OutputDTO, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, OutputDTO{
			Filename: e.Name(),
			Size:     info.Size(),
			Modified: info.ModTime().UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// Download handles GET /outputs/{filename}. The name is reduced to its
// base to keep requests inside the output directory.
func (h *FilesHandler) Download(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(chi.URLParam(r, "filename"))
	if name == "." || name == string(filepath.Separator) {
		writeError(w, http.StatusBadRequest, "invalid filename", "")
		return
	}

	path := filepath.Join(h.outputDir, name)
	if _, err := os.Stat(path); err != nil {
		writeError(w, http.StatusNotFound, "output file not found", "")
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	http.ServeFile(w, r, path)
}
