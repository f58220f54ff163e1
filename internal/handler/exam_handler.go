package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/drillbank/drillbank-backend/internal/middleware"
	"github.com/drillbank/drillbank-backend/internal/model"
	"github.com/drillbank/drillbank-backend/internal/response"
	"github.com/drillbank/drillbank-backend/internal/service"
	"github.com/drillbank/drillbank-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// ExamHandler handles the exam session lifecycle for the authenticated user.
type ExamHandler struct {
	examService *service.ExamService
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService *service.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

// Setup godoc
// POST /api/v1/exam/setup
// Assembles a fresh session from the setup form. Starting a new exam
// silently replaces any session left over from an abandoned one.
func (h *ExamHandler) Setup(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.ExamSetupRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if req.Count == 0 {
		req.Count = model.DefaultExamQuestions
	}
	if req.TimeLimitMinutes == 0 {
		req.TimeLimitMinutes = model.DefaultTimeLimitMinutes
	}

	state, err := h.examService.StartExam(c.Request.Context(), claims.UserID, req.SubjectIDs, req.Count, req.TimeLimitMinutes, req.Mode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidConfiguration):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidExamConfig)
		case errors.Is(err, service.ErrNoEligibleQuestions):
			response.Fail(c, http.StatusBadRequest, response.ErrNoEligibleQuestions)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"total":              len(state.QuestionOrder),
		"time_limit_seconds": state.TimeLimitSeconds,
	})
}

// Question godoc
// GET /api/v1/exam/questions/:index
// Returns the question at the cursor, without the correct option. An
// out-of-range index signals the client to fetch the result instead.
func (h *ExamHandler) Question(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	view, terminal, err := h.examService.ViewQuestion(c.Request.Context(), claims.UserID, index)
	if err != nil {
		h.failExam(c, err)
		return
	}
	if terminal {
		response.Success(c, http.StatusOK, gin.H{"finished": true})
		return
	}

	response.Success(c, http.StatusOK, gin.H{"finished": false, "question": view})
}

// Answer godoc
// POST /api/v1/exam/questions/:index
// Records the answer (if any) and moves the cursor per the action.
// A terminal response tells the client to fetch the result.
func (h *ExamHandler) Answer(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.ExamAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	next, terminal, err := h.examService.AnswerAndNavigate(c.Request.Context(), claims.UserID, index, req.Answer, model.Direction(req.Action))
	if err != nil {
		h.failExam(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"next": next, "finished": terminal})
}

// Result godoc
// GET /api/v1/exam/result
// Scores the session and returns the report. The session is consumed:
// a second call finds no exam in progress.
func (h *ExamHandler) Result(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	report, err := h.examService.FinishExam(c.Request.Context(), claims.UserID)
	if err != nil {
		h.failExam(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": report})
}

// State godoc
// GET /api/v1/exam/state
// Reload recovery: the in-progress session summary, or 404 when none.
func (h *ExamHandler) State(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	summary, err := h.examService.GetSessionSummary(c.Request.Context(), claims.UserID)
	if err != nil {
		h.failExam(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"session": summary})
}

func (h *ExamHandler) failExam(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrEmptySession):
		response.Fail(c, http.StatusNotFound, response.ErrNoActiveExam)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
