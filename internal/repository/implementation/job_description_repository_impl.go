package implementation

import (
	"context"
	"errors"

	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/mapper"
	"ai-interview-be/internal/model"
	"ai-interview-be/internal/repository/contract"
	"ai-interview-be/internal/repository/specification"

	"gorm.io/gorm"
)

type JobDescriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.JobDescriptionMapper
}

func NewJobDescriptionRepository(db *gorm.DB) contract.JobDescriptionRepository {
	return &JobDescriptionRepositoryImpl{
		db:     db,
		mapper: mapper.NewJobDescriptionMapper(),
	}
}

func (r *JobDescriptionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *JobDescriptionRepositoryImpl) Create(ctx context.Context, jd *entity.JobDescription) error {
	m := r.mapper.ToModel(jd)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*jd = *r.mapper.ToEntity(m)
	return nil
}

func (r *JobDescriptionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.JobDescription, error) {
	var m model.JobDescription
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *JobDescriptionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.JobDescription, error) {
	var models []*model.JobDescription
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
