package service

import (
	"context"
	"fmt"

	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/repository/specification"
	"ai-interview-be/internal/repository/unitofwork"
	"ai-interview-be/internal/session"

	"github.com/google/uuid"
)

// sessionStore adapts the repositories to the narrow persistence surface
// the session orchestrator writes through.
type sessionStore struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSessionStore(uowFactory unitofwork.RepositoryFactory) session.Store {
	return &sessionStore{uowFactory: uowFactory}
}

func (s *sessionStore) GetInterview(ctx context.Context, id uuid.UUID) (*entity.Interview, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.InterviewRepository().FindOne(ctx, specification.ByID{ID: id})
}

func (s *sessionStore) GetJobDescription(ctx context.Context, id uuid.UUID) (*entity.JobDescription, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.JobDescriptionRepository().FindOne(ctx, specification.ByID{ID: id})
}

func (s *sessionStore) GetCandidateResume(ctx context.Context, id uuid.UUID) (*entity.CandidateResume, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.CandidateResumeRepository().FindOne(ctx, specification.ByID{ID: id})
}

// MarkStarted is a no-op for interviews already in progress, so reconnects
// do not disturb the start time.
func (s *sessionStore) MarkStarted(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	_, err := uow.InterviewRepository().Start(ctx, id)
	return err
}

func (s *sessionStore) AppendQuestion(ctx context.Context, id uuid.UUID, question string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	ok, err := uow.InterviewRepository().AppendQuestion(ctx, id, question)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("interview %s not found for transcript append", id)
	}
	return nil
}

func (s *sessionStore) AppendIntegrityFlag(ctx context.Context, id uuid.UUID, flag entity.IntegrityFlag) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	ok, err := uow.InterviewRepository().AppendIntegrityFlag(ctx, id, flag)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("interview %s not found for flag append", id)
	}
	return nil
}

// Complete and Terminate are guarded at the repository; a no-match means
// the interview already reached a terminal state and is not an error.
func (s *sessionStore) Complete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	_, err := uow.InterviewRepository().Complete(ctx, id)
	return err
}

func (s *sessionStore) Terminate(ctx context.Context, id uuid.UUID, evaluation *entity.Evaluation) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	_, err := uow.InterviewRepository().Terminate(ctx, id, evaluation)
	return err
}

func (s *sessionStore) SetEvaluation(ctx context.Context, id uuid.UUID, evaluation *entity.Evaluation) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	ok, err := uow.InterviewRepository().SetEvaluation(ctx, id, evaluation)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("interview %s not found for evaluation write", id)
	}
	return nil
}
