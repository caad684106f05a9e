package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/service"
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/middleware/auth"
	apperrors "github.com/AREOPAGO7/ZOOJ-sub001/pkg/errors"
)

// InsightUsecase is what InsightHandler needs from the insight service
type InsightUsecase interface {
	CoupleInsights(ctx context.Context, userID string) (*service.CoupleInsights, error)
	PersonalInsights(ctx context.Context, userID string) (*service.PersonalCompatibility, error)
}

// InsightHandler serves aggregated compatibility views
type InsightHandler struct {
	logger   *zap.Logger
	insights InsightUsecase
}

// NewInsightHandler creates a new insight handler instance
func NewInsightHandler(logger *zap.Logger, insights InsightUsecase) *InsightHandler {
	return &InsightHandler{
		logger:   logger,
		insights: insights,
	}
}

// Register mounts the insight routes on an authenticated group
func (h *InsightHandler) Register(g *echo.Group) {
	g.GET("/insights/couple", h.GetCoupleInsights)
	g.GET("/insights/me", h.GetPersonalInsights)
}

// GetCoupleInsights handles GET /api/v1/insights/couple
func (h *InsightHandler) GetCoupleInsights(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	insights, err := h.insights.CoupleInsights(c.Request().Context(), userID)
	if err != nil {
		apperrors.LogError(h.logger, err, "Failed to build couple insights", zap.String("user_id", userID))
		return apperrors.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, insights)
}

// GetPersonalInsights handles GET /api/v1/insights/me
func (h *InsightHandler) GetPersonalInsights(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return apperrors.ToHTTPError(err)
	}

	personal, err := h.insights.PersonalInsights(c.Request().Context(), userID)
	if err != nil {
		apperrors.LogError(h.logger, err, "Failed to build personal insights", zap.String("user_id", userID))
		return apperrors.ToHTTPError(err)
	}
	return c.JSON(http.StatusOK, personal)
}
