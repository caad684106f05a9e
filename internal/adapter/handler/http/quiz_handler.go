package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/dto"
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/model"
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/middleware/auth"
	apperrors "github.com/AREOPAGO7/ZOOJ-sub001/pkg/errors"
)

// QuizUsecase is what QuizHandler needs from the quiz service
type QuizUsecase interface {
	ListQuizzes(ctx context.Context) (*dto.QuizListResponse, error)
	GetQuiz(ctx context.Context, quizID string) (*model.Quiz, error)
	SubmitAnswers(ctx context.Context, input dto.SubmitAnswersInput) (*dto.SubmitAnswersResponse, error)
	GetStatus(ctx context.Context, quizID, userID string) (*dto.QuizStatusResponse, error)
	GetResult(ctx context.Context, quizID, userID string) (*model.QuizResult, error)
	RefreshResult(ctx context.Context, quizID, userID string) (*dto.CalculationResult, error)
}

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	logger  *zap.Logger
	quizzes QuizUsecase
}

// NewQuizHandler creates a new quiz handler instance
func NewQuizHandler(logger *zap.Logger, quizzes QuizUsecase) *QuizHandler {
	return &QuizHandler{
		logger:  logger,
		quizzes: quizzes,
	}
}

// Register mounts the quiz routes on an authenticated group
func (h *QuizHandler) Register(g *echo.Group) {
	g.GET("/quizzes", h.ListQuizzes)
	g.GET("/quizzes/:quizId", h.GetQuiz)
	g.POST("/quizzes/:quizId/answers", h.SubmitAnswers)
	g.GET("/quizzes/:quizId/status", h.GetStatus)
	g.GET("/quizzes/:quizId/result", h.GetResult)
	g.POST("/quizzes/:quizId/result/refresh", h.RefreshResult)
}

// ListQuizzes handles GET /api/v1/quizzes
func (h *QuizHandler) ListQuizzes(c echo.Context) error {
	resp, err := h.quizzes.ListQuizzes(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "Failed to list quizzes")
	}
	return c.JSON(http.StatusOK, resp)
}

// GetQuiz handles GET /api/v1/quizzes/:quizId
func (h *QuizHandler) GetQuiz(c echo.Context) error {
	quiz, err := h.quizzes.GetQuiz(c.Request().Context(), c.Param("quizId"))
	if err != nil {
		return h.fail(c, err, "Failed to get quiz")
	}
	return c.JSON(http.StatusOK, quiz)
}

// SubmitAnswers handles POST /api/v1/quizzes/:quizId/answers
func (h *QuizHandler) SubmitAnswers(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	var req dto.SubmitAnswersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorBody{
			Error: "invalid request body",
			Code:  apperrors.ErrInvalidArgument,
		})
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.ToHTTPError(err)
	}

	resp, err := h.quizzes.SubmitAnswers(c.Request().Context(), dto.SubmitAnswersInput{
		QuizID:  c.Param("quizId"),
		UserID:  userID,
		Answers: req.Answers,
	})
	if err != nil {
		return h.fail(c, err, "Failed to submit answers", zap.String("user_id", userID))
	}
	return c.JSON(http.StatusOK, resp)
}

// GetStatus handles GET /api/v1/quizzes/:quizId/status
func (h *QuizHandler) GetStatus(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	status, err := h.quizzes.GetStatus(c.Request().Context(), c.Param("quizId"), userID)
	if err != nil {
		return h.fail(c, err, "Failed to get quiz status", zap.String("user_id", userID))
	}
	return c.JSON(http.StatusOK, status)
}

// GetResult handles GET /api/v1/quizzes/:quizId/result
func (h *QuizHandler) GetResult(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	result, err := h.quizzes.GetResult(c.Request().Context(), c.Param("quizId"), userID)
	if err != nil {
		return h.fail(c, err, "Failed to get quiz result", zap.String("user_id", userID))
	}
	return c.JSON(http.StatusOK, result)
}

// RefreshResult handles POST /api/v1/quizzes/:quizId/result/refresh
func (h *QuizHandler) RefreshResult(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	calc, err := h.quizzes.RefreshResult(c.Request().Context(), c.Param("quizId"), userID)
	if err != nil {
		return h.fail(c, err, "Failed to refresh quiz result", zap.String("user_id", userID))
	}
	return c.JSON(http.StatusOK, calc)
}

func (h *QuizHandler) fail(c echo.Context, err error, msg string, fields ...zap.Field) error {
	fields = append(fields,
		zap.String("path", c.Path()),
		zap.String("quiz_id", c.Param("quizId")))
	apperrors.LogError(h.logger, err, msg, fields...)
	return apperrors.ToHTTPError(err)
}
