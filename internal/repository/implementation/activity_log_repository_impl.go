package implementation

import (
	"context"

	"mockbot-be/internal/entity"
	"mockbot-be/internal/mapper"
	"mockbot-be/internal/model"
	"mockbot-be/internal/repository/contract"
	"mockbot-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ActivityLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ActivityLogMapper
}

func NewActivityLogRepository(db *gorm.DB) contract.ActivityLogRepository {
	return &ActivityLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewActivityLogMapper(),
	}
}

func (r *ActivityLogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ActivityLogRepositoryImpl) Create(ctx context.Context, log *entity.ActivityLog) error {
	modelLog, err := r.mapper.ToModel(log)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(modelLog).Error
}

func (r *ActivityLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ActivityLog, error) {
	var modelLogs []*model.ActivityLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelLogs).Error; err != nil {
		return nil, err
	}

	logs := make([]*entity.ActivityLog, len(modelLogs))
	for i, l := range modelLogs {
		e, err := r.mapper.ToEntity(l)
		if err != nil {
			return nil, err
		}
		logs[i] = e
	}
	return logs, nil
}

func (r *ActivityLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ActivityLog{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
