package implementation

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/mapper"
	"ai-interview-be/internal/model"
	"ai-interview-be/internal/repository/contract"
	"ai-interview-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// States an interview can still leave. Conditional updates against this set
// keep the lifecycle monotonic: terminal rows are never rewritten.
var openStatuses = []string{
	entity.InterviewStatusScheduled,
	entity.InterviewStatusInProgress,
}

type InterviewRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InterviewMapper
}

func NewInterviewRepository(db *gorm.DB) contract.InterviewRepository {
	return &InterviewRepositoryImpl{
		db:     db,
		mapper: mapper.NewInterviewMapper(),
	}
}

func (r *InterviewRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *InterviewRepositoryImpl) Create(ctx context.Context, interview *entity.Interview) error {
	m := r.mapper.ToModel(interview)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*interview = *r.mapper.ToEntity(m)
	return nil
}

func (r *InterviewRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Interview, error) {
	var m model.Interview
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *InterviewRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Interview, error) {
	var models []*model.Interview
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

// AppendQuestion uses a single-statement jsonb concatenation so the append
// is atomic at the database, not read-modify-write in Go.
func (r *InterviewRepositoryImpl) AppendQuestion(ctx context.Context, id uuid.UUID, question string) (bool, error) {
	item, err := json.Marshal(question)
	if err != nil {
		return false, err
	}
	res := r.db.WithContext(ctx).Model(&model.Interview{}).
		Where("id = ?", id).
		Update("questions_asked", gorm.Expr("questions_asked || ?::jsonb", string(item)))
	return res.RowsAffected > 0, res.Error
}

func (r *InterviewRepositoryImpl) AppendIntegrityFlag(ctx context.Context, id uuid.UUID, flag entity.IntegrityFlag) (bool, error) {
	item, err := json.Marshal(flag)
	if err != nil {
		return false, err
	}
	res := r.db.WithContext(ctx).Model(&model.Interview{}).
		Where("id = ?", id).
		Update("integrity_flags", gorm.Expr("integrity_flags || ?::jsonb", string(item)))
	return res.RowsAffected > 0, res.Error
}

func (r *InterviewRepositoryImpl) Start(ctx context.Context, id uuid.UUID) (bool, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&model.Interview{}).
		Where("id = ? AND status = ?", id, entity.InterviewStatusScheduled).
		Updates(map[string]interface{}{
			"status":     entity.InterviewStatusInProgress,
			"start_time": now,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *InterviewRepositoryImpl) Complete(ctx context.Context, id uuid.UUID) (bool, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&model.Interview{}).
		Where("id = ? AND status IN ?", id, openStatuses).
		Updates(map[string]interface{}{
			"status":   entity.InterviewStatusCompleted,
			"end_time": now,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *InterviewRepositoryImpl) Terminate(ctx context.Context, id uuid.UUID, evaluation *entity.Evaluation) (bool, error) {
	evalJson, err := json.Marshal(evaluation)
	if err != nil {
		return false, err
	}
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&model.Interview{}).
		Where("id = ? AND status IN ?", id, openStatuses).
		Updates(map[string]interface{}{
			"status":     entity.InterviewStatusTerminated,
			"end_time":   now,
			"evaluation": datatypes.JSON(evalJson),
		})
	return res.RowsAffected > 0, res.Error
}

func (r *InterviewRepositoryImpl) SetEvaluation(ctx context.Context, id uuid.UUID, evaluation *entity.Evaluation) (bool, error) {
	evalJson, err := json.Marshal(evaluation)
	if err != nil {
		return false, err
	}
	res := r.db.WithContext(ctx).Model(&model.Interview{}).
		Where("id = ?", id).
		Update("evaluation", datatypes.JSON(evalJson))
	return res.RowsAffected > 0, res.Error
}
