package contract

import (
	"context"

	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/repository/specification"
)

type JobDescriptionRepository interface {
	Create(ctx context.Context, jd *entity.JobDescription) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.JobDescription, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.JobDescription, error)
}
