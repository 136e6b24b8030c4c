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

type CandidateResumeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CandidateResumeMapper
}

func NewCandidateResumeRepository(db *gorm.DB) contract.CandidateResumeRepository {
	return &CandidateResumeRepositoryImpl{
		db:     db,
		mapper: mapper.NewCandidateResumeMapper(),
	}
}

func (r *CandidateResumeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CandidateResumeRepositoryImpl) Create(ctx context.Context, resume *entity.CandidateResume) error {
	m := r.mapper.ToModel(resume)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*resume = *r.mapper.ToEntity(m)
	return nil
}

func (r *CandidateResumeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CandidateResume, error) {
	var m model.CandidateResume
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CandidateResumeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CandidateResume, error) {
	var models []*model.CandidateResume
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
