package contract

import (
	"context"

	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/repository/specification"

	"github.com/google/uuid"
)

// InterviewRepository is the serialization point for concurrent session
// writes: the append and transition methods are single-statement atomic
// updates, so flag appends and transcript appends racing on the same
// interview never clobber each other.
type InterviewRepository interface {
	Create(ctx context.Context, interview *entity.Interview) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Interview, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Interview, error)

	// AppendQuestion appends one model-authored utterance to the transcript.
	AppendQuestion(ctx context.Context, id uuid.UUID, question string) (bool, error)
	// AppendIntegrityFlag appends one flag record, preserving call order.
	AppendIntegrityFlag(ctx context.Context, id uuid.UUID, flag entity.IntegrityFlag) (bool, error)

	// Start moves scheduled -> in_progress and sets start_time once.
	// Returns false when no row was in a startable state.
	Start(ctx context.Context, id uuid.UUID) (bool, error)
	// Complete moves a non-terminal interview to completed and sets end_time.
	Complete(ctx context.Context, id uuid.UUID) (bool, error)
	// Terminate moves a non-terminal interview to terminated, sets end_time
	// and writes the termination evaluation in the same statement.
	Terminate(ctx context.Context, id uuid.UUID, evaluation *entity.Evaluation) (bool, error)

	// SetEvaluation overwrites the evaluation column (last write wins).
	SetEvaluation(ctx context.Context, id uuid.UUID, evaluation *entity.Evaluation) (bool, error)
}
