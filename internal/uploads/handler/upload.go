package handler

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/shayzimm/yallambee-booking-app-backend/internal/uploads/storage"
	apperrors "github.com/shayzimm/yallambee-booking-app-backend/pkg/errors"
	httputil "github.com/shayzimm/yallambee-booking-app-backend/pkg/http"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/logger"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/middleware"
	"github.com/shayzimm/yallambee-booking-app-backend/pkg/token"
)

// FormField is the multipart field carrying the image.
const FormField = "image"

type uploadResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	File    uploadedFile `json:"file"`
}

type uploadedFile struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
}

type UploadHandler struct {
	store    storage.ImageStore
	tokens   *token.Manager
	maxBytes int64
	log      *logger.Logger
}

func NewUploadHandler(store storage.ImageStore, tokens *token.Manager, maxBytes int64, log *logger.Logger) *UploadHandler {
	return &UploadHandler{
		store:    store,
		tokens:   tokens,
		maxBytes: maxBytes,
		log:      log,
	}
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Invalid multipart form or file too large")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Upload", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	file, header, err := r.FormFile(FormField)
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Missing 'image' file field")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Upload", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Only image uploads are accepted")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Upload", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	stored, err := h.store.Save(r.Context(), header.Filename, contentType, header.Size, file)
	if err != nil {
		h.log.Error("Failed to store uploaded image", "filename", header.Filename, "error", err)
		if writeErr := httputil.WriteError(w, apperrors.Internal("Failed to store uploaded image", err)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Upload", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	resp := uploadResponse{
		Success: true,
		Message: "File uploaded successfully.",
		File: uploadedFile{
			Filename: header.Filename,
			Path:     stored.URL,
			Size:     stored.Size,
		},
	}
	if err := httputil.WriteJSON(w, http.StatusCreated, resp); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Upload", "operation", "WriteJSON", "error", err)
	}
}

// RegisterRoutes exposes the image upload used when editing property
// listings, so it is admin only.
func (h *UploadHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/uploads", middleware.Protect(h.tokens, middleware.AdminOnly(h.Upload)))
}
