package handlers

import (
	"context"
	"net/http"

	"github.com/coursedash/backend/internal/models"
	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

// QuizService is the interface that wraps methods for quiz business logic.
type QuizService interface {
	// Method List retrieve all quizzes ordered by title using configured repository.
	//
	// If some error will occur during data retrieve, the error will be returned together with "nil" value.
	List(ctx context.Context) ([]models.Quiz, error)
	// Method Get retrieve a single quiz by its title.
	//
	// "title" parameter identifies the quiz.
	// If the quiz does not exist, a not found error will be returned together with "nil" value.
	Get(ctx context.Context, title string) (*models.Quiz, error)
	// Method Create store a quiz under its title, replacing a quiz with the same title.
	//
	// "title" and "content" parameters are required.
	// If parameters are empty or the title can not be used as a file name, a validation error will be returned.
	Create(ctx context.Context, title, content string) (*models.Quiz, error)
	// Method Delete remove the quiz with the given title.
	//
	// If the quiz does not exist, a not found error will be returned.
	Delete(ctx context.Context, title string) error
}

// QuizHandler handles HTTP requests for quizzes
type QuizHandler struct {
	BaseHandler
	service QuizService
	adminMw func(http.Handler) http.Handler
}

// NewQuizHandler creates a new quiz handler.
// adminMw guards the mutating routes.
func NewQuizHandler(svc QuizService, logger *zap.Logger, adminMw func(http.Handler) http.Handler) *QuizHandler {
	return &QuizHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     svc,
		adminMw:     adminMw,
	}
}

// RegisterRoutes registers all quiz handler routes
// Note: This assumes the router is already scoped to /api/v1
func (h *QuizHandler) RegisterRoutes(r chi.Router) {
	r.Route("/quizzes", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{title}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(h.adminMw)
			r.Post("/", h.Create)
			r.Delete("/{title}", h.Delete)
		})
	})
}

// List handles GET /quizzes
// @Summary List quizzes
// @Description Get all quizzes ordered by title
// @Tags quizzes
// @Produce json
// @Success 200 {array} models.Quiz
// @Failure 500 {object} map[string]string
// @Router /quizzes [get]
func (h *QuizHandler) List(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.service.List(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err, "failed to list quizzes")
		return
	}

	h.respondJSON(w, http.StatusOK, quizzes)
}

// Get handles GET /quizzes/{title}
// @Summary Get quiz
// @Description Get a single quiz by its title
// @Tags quizzes
// @Produce json
// @Param title path string true "Quiz title"
// @Success 200 {object} models.Quiz
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /quizzes/{title} [get]
func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	title := pathParam(r, "title")

	quiz, err := h.service.Get(r.Context(), title)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to get quiz")
		return
	}

	h.respondJSON(w, http.StatusOK, quiz)
}

// Create handles POST /quizzes
// @Summary Create quiz
// @Description Create a quiz, replacing any quiz with the same title. Requires admin role.
// @Tags quizzes
// @Accept json
// @Produce json
// @Param request body models.CreateQuizRequest true "Quiz"
// @Success 201 {object} models.Quiz
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /quizzes [post]
func (h *QuizHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quiz, err := h.service.Create(r.Context(), req.Title, req.Content)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to create quiz")
		return
	}
	h.logMutation(r, "quiz created", zap.String("title", quiz.Title))

	h.respondJSON(w, http.StatusCreated, quiz)
}

// Delete handles DELETE /quizzes/{title}
// @Summary Delete quiz
// @Description Delete a quiz by its title. Requires admin role.
// @Tags quizzes
// @Param title path string true "Quiz title"
// @Success 204 "Quiz deleted"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /quizzes/{title} [delete]
func (h *QuizHandler) Delete(w http.ResponseWriter, r *http.Request) {
	title := pathParam(r, "title")

	if err := h.service.Delete(r.Context(), title); err != nil {
		h.respondServiceError(w, r, err, "failed to delete quiz")
		return
	}
	h.logMutation(r, "quiz deleted", zap.String("title", title))

	w.WriteHeader(http.StatusNoContent)
}
