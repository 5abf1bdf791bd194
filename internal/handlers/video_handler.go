package handlers

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/coursedash/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// multipartMemory is the part of a multipart upload kept in memory, the rest spills to disk
const multipartMemory = 32 << 20

// VideoService defines the interface for video service operations
type VideoService interface {
	// Method List retrieve the filename to description mapping of all uploaded videos.
	//
	// If the metadata file can not be parsed, a corrupt metadata error will be returned together with "nil" value.
	List(ctx context.Context) (map[string]string, error)
	// Method Upload stores a video and its description.
	//
	// "filename" parameter is the original upload name and must carry an accepted video extension.
	// "reader" parameter is the video content, it must not be empty.
	// "description" parameter is required.
	//
	// If some error will occur during upload, the error will be returned together with "nil" value.
	Upload(ctx context.Context, filename string, reader io.Reader, description string) (*models.Video, error)
	// Method Delete removes a video and its description.
	//
	// If the filename has no description recorded, a not found error will be returned.
	Delete(ctx context.Context, filename string) error
	// Method Open opens a video for streaming.
	//
	// If the video is unknown or its file is missing, a not found error will be returned together with "nil" value.
	Open(ctx context.Context, filename string) (*os.File, error)
	// Method Reconcile reports videos present in only one of file storage and metadata.
	//
	// "repair" parameter removes the reported orphans when set.
	Reconcile(ctx context.Context, repair bool) (*models.ConsistencyReport, error)
}

// VideoHandler handles video-related HTTP requests
type VideoHandler struct {
	BaseHandler
	service VideoService
	adminMw func(http.Handler) http.Handler
}

// NewVideoHandler creates a new video handler.
// adminMw guards the mutating and maintenance routes.
func NewVideoHandler(svc VideoService, logger *zap.Logger, adminMw func(http.Handler) http.Handler) *VideoHandler {
	return &VideoHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     svc,
		adminMw:     adminMw,
	}
}

// RegisterRoutes registers all video handler routes
// Note: This assumes the router is already scoped to /api/v1
func (h *VideoHandler) RegisterRoutes(r chi.Router) {
	r.Route("/videos", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{filename}", h.Stream)

		r.Group(func(r chi.Router) {
			r.Use(h.adminMw)
			r.Post("/", h.Upload)
			r.Delete("/{filename}", h.Delete)
		})
	})

	r.Route("/admin/consistency", func(r chi.Router) {
		r.Use(h.adminMw)
		r.Get("/", h.CheckConsistency)
		r.Post("/repair", h.RepairConsistency)
	})
}

// List handles GET /videos
// @Summary List videos
// @Description Get the description of every uploaded video, keyed by filename
// @Tags videos
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string "Internal server error or corrupt metadata"
// @Router /videos [get]
func (h *VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	videos, err := h.service.List(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err, "failed to list videos")
		return
	}

	h.respondJSON(w, http.StatusOK, videos)
}

// Stream handles GET /videos/{filename}
// @Summary Stream video
// @Description Download a video. Range requests are supported for playback seeking.
// @Tags videos
// @Produce application/octet-stream
// @Param filename path string true "Video filename"
// @Param Range header string false "Range"
// @Success 200 "File content"
// @Success 206 "Partial file content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /videos/{filename} [get]
func (h *VideoHandler) Stream(w http.ResponseWriter, r *http.Request) {
	filename := pathParam(r, "filename")

	file, err := h.service.Open(r.Context(), filename)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to open video")
		return
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		h.logger.Error("failed to get file info", zap.Error(err), zap.String("filename", filename))
		h.respondError(w, http.StatusInternalServerError, "failed to get file info")
		return
	}

	w.Header().Set("Content-Type", models.VideoContentType(filename))
	http.ServeContent(w, r, filename, fileInfo.ModTime(), file)
}

// Upload handles POST /videos
// @Summary Upload video
// @Description Upload a video (.mp4, .avi, .mkv) with a description. An existing video with the same filename is replaced. Requires admin role.
// @Tags videos
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Video file"
// @Param description formData string true "Video description"
// @Success 201 {object} models.Video
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /videos [post]
func (h *VideoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		h.logger.Info("failed to parse multipart form", zap.Error(err))
		h.respondError(w, http.StatusBadRequest, "failed to parse request")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	video, err := h.service.Upload(r.Context(), fileHeader.Filename, file, r.FormValue("description"))
	if err != nil {
		h.respondServiceError(w, r, err, "failed to upload video")
		return
	}
	h.logMutation(r, "video uploaded", zap.String("filename", video.Filename), zap.Int64("size", fileHeader.Size))

	h.respondJSON(w, http.StatusCreated, video)
}

// Delete handles DELETE /videos/{filename}
// @Summary Delete video
// @Description Delete a video and its description. Requires admin role.
// @Tags videos
// @Param filename path string true "Video filename"
// @Success 204 "Video deleted"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /videos/{filename} [delete]
func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	filename := pathParam(r, "filename")

	if err := h.service.Delete(r.Context(), filename); err != nil {
		h.respondServiceError(w, r, err, "failed to delete video")
		return
	}
	h.logMutation(r, "video deleted", zap.String("filename", filename))

	w.WriteHeader(http.StatusNoContent)
}

// CheckConsistency handles GET /admin/consistency
// @Summary Check video consistency
// @Description Report video files without metadata and metadata entries without files. Requires admin role.
// @Tags admin
// @Produce json
// @Success 200 {object} models.ConsistencyReport
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /admin/consistency [get]
func (h *VideoHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	h.reconcile(w, r, false)
}

// RepairConsistency handles POST /admin/consistency/repair
// @Summary Repair video consistency
// @Description Remove video files without metadata and metadata entries without files. Requires admin role.
// @Tags admin
// @Produce json
// @Success 200 {object} models.ConsistencyReport
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /admin/consistency/repair [post]
func (h *VideoHandler) RepairConsistency(w http.ResponseWriter, r *http.Request) {
	h.reconcile(w, r, true)
}

func (h *VideoHandler) reconcile(w http.ResponseWriter, r *http.Request, repair bool) {
	report, err := h.service.Reconcile(r.Context(), repair)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to reconcile videos")
		return
	}
	if repair {
		h.logMutation(r, "video store repaired",
			zap.Strings("orphan_files", report.OrphanFiles),
			zap.Strings("dangling_entries", report.DanglingEntries),
		)
	}

	h.respondJSON(w, http.StatusOK, report)
}
