package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/jinro-backend/internal/middleware"
	"github.com/stemsi/jinro-backend/internal/model"
	"github.com/stemsi/jinro-backend/internal/quiz"
	"github.com/stemsi/jinro-backend/internal/response"
	"github.com/stemsi/jinro-backend/internal/service"
	"github.com/stemsi/jinro-backend/internal/validator"
)

type QuizHandler struct {
	quiz     service.QuizService
	sessions service.SessionService
	log      zerolog.Logger
}

func NewQuizHandler(quiz service.QuizService, sessions service.SessionService, log zerolog.Logger) *QuizHandler {
	return &QuizHandler{
		quiz:     quiz,
		sessions: sessions,
		log:      log.With().Str("component", "quiz_handler").Logger(),
	}
}

// failQuiz maps quiz engine errors to API error codes.
func failQuiz(c *gin.Context, err error) {
	switch {
	case errors.Is(err, quiz.ErrQuizComplete):
		response.Fail(c, http.StatusConflict, response.ErrQuizComplete)
	case errors.Is(err, quiz.ErrQuizIncomplete):
		response.Fail(c, http.StatusConflict, response.ErrQuizIncomplete)
	case errors.Is(err, quiz.ErrInvalidChoice):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidChoice)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// Questions godoc
// GET /api/v1/quiz/questions
func (h *QuizHandler) Questions(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"questions": h.quiz.Questions()})
}

// State godoc
// GET /api/v1/quiz
func (h *QuizHandler) State(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrSessionRequired)
		return
	}
	st, err := h.quiz.State(sess)
	if err != nil {
		failQuiz(c, err)
		return
	}
	response.Success(c, http.StatusOK, st)
}

// Submit godoc
// POST /api/v1/quiz/answers
func (h *QuizHandler) Submit(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrSessionRequired)
		return
	}

	var req model.SubmitAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	next, st, err := h.quiz.Submit(sess, req.Choice)
	if err != nil {
		failQuiz(c, err)
		return
	}
	if err := h.sessions.Save(c.Request.Context(), next); err != nil {
		h.log.Error().Err(err).Str("session_id", sess.ID).Msg("Failed to save session")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, st)
}

// Result godoc
// GET /api/v1/quiz/result
func (h *QuizHandler) Result(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrSessionRequired)
		return
	}
	res, err := h.quiz.Result(sess)
	if err != nil {
		failQuiz(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Reset godoc
// POST /api/v1/quiz/reset
func (h *QuizHandler) Reset(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrSessionRequired)
		return
	}
	next := h.quiz.Reset(sess)
	if err := h.sessions.Save(c.Request.Context(), next); err != nil {
		h.log.Error().Err(err).Str("session_id", sess.ID).Msg("Failed to save session")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	st, err := h.quiz.State(next)
	if err != nil {
		failQuiz(c, err)
		return
	}
	response.Success(c, http.StatusOK, st)
}
