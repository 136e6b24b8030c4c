package contract

import (
	"context"

	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/repository/specification"
)

type CandidateResumeRepository interface {
	Create(ctx context.Context, resume *entity.CandidateResume) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CandidateResume, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CandidateResume, error)
}
