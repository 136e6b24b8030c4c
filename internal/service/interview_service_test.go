package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ai-interview-be/internal/dto"
	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/repository/contract"
	"ai-interview-be/internal/repository/specification"
	"ai-interview-be/internal/repository/unitofwork"
	"ai-interview-be/pkg/interviewer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// --- in-memory repository fakes ---

func idFromSpecs(specs []specification.Specification) (uuid.UUID, bool) {
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			return byID.ID, true
		}
	}
	return uuid.Nil, false
}

type fakeJobDescriptionRepo struct {
	items map[uuid.UUID]*entity.JobDescription
}

func (r *fakeJobDescriptionRepo) Create(_ context.Context, jd *entity.JobDescription) error {
	r.items[jd.Id] = jd
	return nil
}

func (r *fakeJobDescriptionRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.JobDescription, error) {
	if id, ok := idFromSpecs(specs); ok {
		return r.items[id], nil
	}
	return nil, nil
}

func (r *fakeJobDescriptionRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.JobDescription, error) {
	out := make([]*entity.JobDescription, 0, len(r.items))
	for _, jd := range r.items {
		out = append(out, jd)
	}
	return out, nil
}

type fakeCandidateResumeRepo struct {
	items map[uuid.UUID]*entity.CandidateResume
}

func (r *fakeCandidateResumeRepo) Create(_ context.Context, resume *entity.CandidateResume) error {
	r.items[resume.Id] = resume
	return nil
}

func (r *fakeCandidateResumeRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.CandidateResume, error) {
	if id, ok := idFromSpecs(specs); ok {
		return r.items[id], nil
	}
	return nil, nil
}

func (r *fakeCandidateResumeRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.CandidateResume, error) {
	out := make([]*entity.CandidateResume, 0, len(r.items))
	for _, resume := range r.items {
		out = append(out, resume)
	}
	return out, nil
}

type fakeInterviewRepo struct {
	items map[uuid.UUID]*entity.Interview
}

func (r *fakeInterviewRepo) Create(_ context.Context, interview *entity.Interview) error {
	r.items[interview.Id] = interview
	return nil
}

func (r *fakeInterviewRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Interview, error) {
	if id, ok := idFromSpecs(specs); ok {
		return r.items[id], nil
	}
	return nil, nil
}

func (r *fakeInterviewRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Interview, error) {
	out := make([]*entity.Interview, 0, len(r.items))
	for _, interview := range r.items {
		out = append(out, interview)
	}
	return out, nil
}

func (r *fakeInterviewRepo) AppendQuestion(_ context.Context, id uuid.UUID, question string) (bool, error) {
	interview, ok := r.items[id]
	if !ok {
		return false, nil
	}
	interview.QuestionsAsked = append(interview.QuestionsAsked, question)
	return true, nil
}

func (r *fakeInterviewRepo) AppendIntegrityFlag(_ context.Context, id uuid.UUID, flag entity.IntegrityFlag) (bool, error) {
	interview, ok := r.items[id]
	if !ok {
		return false, nil
	}
	interview.IntegrityFlags = append(interview.IntegrityFlags, flag)
	return true, nil
}

func (r *fakeInterviewRepo) Start(_ context.Context, id uuid.UUID) (bool, error) {
	interview, ok := r.items[id]
	if !ok || interview.Status != entity.InterviewStatusScheduled {
		return false, nil
	}
	now := time.Now().UTC()
	interview.Status = entity.InterviewStatusInProgress
	interview.StartTime = &now
	return true, nil
}

func (r *fakeInterviewRepo) Complete(_ context.Context, id uuid.UUID) (bool, error) {
	interview, ok := r.items[id]
	if !ok || (interview.Status != entity.InterviewStatusScheduled && interview.Status != entity.InterviewStatusInProgress) {
		return false, nil
	}
	now := time.Now().UTC()
	interview.Status = entity.InterviewStatusCompleted
	interview.EndTime = &now
	return true, nil
}

func (r *fakeInterviewRepo) Terminate(_ context.Context, id uuid.UUID, evaluation *entity.Evaluation) (bool, error) {
	interview, ok := r.items[id]
	if !ok || (interview.Status != entity.InterviewStatusScheduled && interview.Status != entity.InterviewStatusInProgress) {
		return false, nil
	}
	now := time.Now().UTC()
	interview.Status = entity.InterviewStatusTerminated
	interview.EndTime = &now
	interview.Evaluation = evaluation
	return true, nil
}

func (r *fakeInterviewRepo) SetEvaluation(_ context.Context, id uuid.UUID, evaluation *entity.Evaluation) (bool, error) {
	interview, ok := r.items[id]
	if !ok {
		return false, nil
	}
	interview.Evaluation = evaluation
	return true, nil
}

type fakeUnitOfWork struct {
	jdRepo        *fakeJobDescriptionRepo
	resumeRepo    *fakeCandidateResumeRepo
	interviewRepo *fakeInterviewRepo
}

func (u *fakeUnitOfWork) Begin(context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error               { return nil }
func (u *fakeUnitOfWork) Rollback() error             { return nil }

func (u *fakeUnitOfWork) JobDescriptionRepository() contract.JobDescriptionRepository {
	return u.jdRepo
}

func (u *fakeUnitOfWork) CandidateResumeRepository() contract.CandidateResumeRepository {
	return u.resumeRepo
}

func (u *fakeUnitOfWork) InterviewRepository() contract.InterviewRepository {
	return u.interviewRepo
}

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{
		uow: &fakeUnitOfWork{
			jdRepo:        &fakeJobDescriptionRepo{items: map[uuid.UUID]*entity.JobDescription{}},
			resumeRepo:    &fakeCandidateResumeRepo{items: map[uuid.UUID]*entity.CandidateResume{}},
			interviewRepo: &fakeInterviewRepo{items: map[uuid.UUID]*entity.Interview{}},
		},
	}
}

func (f *fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return f.uow
}

// fakeGenerator scripts the one-shot analysis call.
type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (g *fakeGenerator) NewSession(context.Context, string, string) (interviewer.Session, error) {
	return nil, errors.New("not used")
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.reply, g.err
}

func setupRequest() *dto.SetupInterviewRequest {
	return &dto.SetupInterviewRequest{
		JobTitle:       "Backend Engineer",
		JdText:         "Design Go services",
		CandidateName:  "Alex",
		CandidateEmail: "alex@example.com",
		ResumeText:     "Five years of Go",
	}
}

func TestSetupCreatesRecordsAndParsesRoleFit(t *testing.T) {
	factory := newFakeFactory()
	model := &fakeGenerator{reply: "```json\n" + `{
		"skill_match_level": "high",
		"experience_relevance": "strong backend background",
		"project_alignment": "matches the stack",
		"analysis_summary": "good fit",
		"match_score": 84
	}` + "\n```"}
	svc := NewInterviewService(factory, model, nil)

	res, err := svc.Setup(context.Background(), setupRequest())

	assert.NoError(t, err)
	assert.NotNil(t, res)
	assert.Len(t, factory.uow.jdRepo.items, 1)
	assert.Len(t, factory.uow.resumeRepo.items, 1)
	assert.Len(t, factory.uow.interviewRepo.items, 1)

	interview := factory.uow.interviewRepo.items[res.InterviewId]
	if assert.NotNil(t, interview) {
		assert.Equal(t, entity.InterviewStatusScheduled, interview.Status)
	}

	if assert.NotNil(t, res.RoleFitAnalysis) {
		assert.Equal(t, "high", res.RoleFitAnalysis.SkillMatchLevel)
		assert.Equal(t, 84, res.RoleFitAnalysis.MatchScore)
	}

	// The analysis prompt carries the raw texts, not the record ids.
	if assert.Len(t, model.prompts, 1) {
		assert.Contains(t, model.prompts[0], "Design Go services")
		assert.Contains(t, model.prompts[0], "Five years of Go")
	}
}

func TestSetupModelFailureYieldsPendingAnalysis(t *testing.T) {
	factory := newFakeFactory()
	model := &fakeGenerator{err: errors.New("quota exceeded")}
	svc := NewInterviewService(factory, model, nil)

	res, err := svc.Setup(context.Background(), setupRequest())

	assert.NoError(t, err)
	if assert.NotNil(t, res.RoleFitAnalysis) {
		assert.Equal(t, "medium", res.RoleFitAnalysis.SkillMatchLevel)
		assert.Equal(t, "Automated analysis unavailable", res.RoleFitAnalysis.AnalysisSummary)
		assert.Equal(t, 50, res.RoleFitAnalysis.MatchScore)
	}
	// The interview is still created.
	assert.Len(t, factory.uow.interviewRepo.items, 1)
}

func TestSetupUnparsableAnalysisFallsBackToSummary(t *testing.T) {
	factory := newFakeFactory()
	model := &fakeGenerator{reply: strings.Repeat("the candidate seems capable ", 40)}
	svc := NewInterviewService(factory, model, nil)

	res, err := svc.Setup(context.Background(), setupRequest())

	assert.NoError(t, err)
	if assert.NotNil(t, res.RoleFitAnalysis) {
		assert.Equal(t, "medium", res.RoleFitAnalysis.SkillMatchLevel)
		assert.Equal(t, 50, res.RoleFitAnalysis.MatchScore)
		assert.LessOrEqual(t, len(res.RoleFitAnalysis.AnalysisSummary), 500)
	}
}

func TestStartTransitionsOnce(t *testing.T) {
	factory := newFakeFactory()
	svc := NewInterviewService(factory, &fakeGenerator{err: errors.New("unused")}, nil)

	id := uuid.New()
	factory.uow.interviewRepo.items[id] = &entity.Interview{
		Id:     id,
		Status: entity.InterviewStatusScheduled,
	}

	res, err := svc.Start(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, entity.InterviewStatusInProgress, res.Status)
	assert.NotNil(t, factory.uow.interviewRepo.items[id].StartTime)

	// Second start is a no-op reporting the current status.
	res, err = svc.Start(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, entity.InterviewStatusInProgress, res.Status)
}

func TestStartUnknownInterview(t *testing.T) {
	factory := newFakeFactory()
	svc := NewInterviewService(factory, &fakeGenerator{err: errors.New("unused")}, nil)

	res, err := svc.Start(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, res)
}

func TestEndIsMonotonic(t *testing.T) {
	factory := newFakeFactory()
	svc := NewInterviewService(factory, &fakeGenerator{err: errors.New("unused")}, nil)

	id := uuid.New()
	factory.uow.interviewRepo.items[id] = &entity.Interview{
		Id:     id,
		Status: entity.InterviewStatusTerminated,
	}

	// A terminated interview stays terminated.
	res, err := svc.End(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, entity.InterviewStatusTerminated, res.Status)
}

func TestAddIntegrityFlag(t *testing.T) {
	factory := newFakeFactory()
	svc := NewInterviewService(factory, &fakeGenerator{err: errors.New("unused")}, nil)

	id := uuid.New()
	factory.uow.interviewRepo.items[id] = &entity.Interview{
		Id:     id,
		Status: entity.InterviewStatusInProgress,
	}

	found, err := svc.AddIntegrityFlag(context.Background(), id, &dto.AddIntegrityFlagRequest{
		Timestamp: time.Now().UTC(),
		FlagType:  "tab_switch",
	})
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, factory.uow.interviewRepo.items[id].IntegrityFlags, 1)

	found, err = svc.AddIntegrityFlag(context.Background(), uuid.New(), &dto.AddIntegrityFlagRequest{
		Timestamp: time.Now().UTC(),
		FlagType:  "tab_switch",
	})
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestShowNotFound(t *testing.T) {
	factory := newFakeFactory()
	svc := NewInterviewService(factory, &fakeGenerator{err: errors.New("unused")}, nil)

	res, err := svc.Show(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, res)
}
