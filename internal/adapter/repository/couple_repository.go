package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domainErrors "github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/errors"
	"github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/model"
	domainRepo "github.com/AREOPAGO7/ZOOJ-sub001/internal/domain/repository"
)

type coupleRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewCoupleRepository creates a new gorm-backed couple repository
func NewCoupleRepository(db *gorm.DB, logger *zap.Logger) domainRepo.CoupleRepository {
	return &coupleRepository{
		db:     db,
		logger: logger,
	}
}

func (r *coupleRepository) GetByID(ctx context.Context, coupleID string) (*model.Couple, error) {
	return r.first("get couple", r.db.WithContext(ctx).Where("id = ?", coupleID))
}

func (r *coupleRepository) GetByMember(ctx context.Context, userID string) (*model.Couple, error) {
	return r.first("get couple by member",
		r.db.WithContext(ctx).Where("user1_id = ? OR user2_id = ?", userID, userID).Order("id ASC"))
}

func (r *coupleRepository) first(op string, query *gorm.DB) (*model.Couple, error) {
	var couple model.Couple

	if err := query.First(&couple).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to load couple", zap.String("op", op), zap.Error(err))
		return nil, domainErrors.NewStoreFailureError(op, err)
	}

	return &couple, nil
}
