package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-interview-be/internal/constant"
	"ai-interview-be/internal/dto"
	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/repository/specification"
	"ai-interview-be/internal/repository/unitofwork"
	"ai-interview-be/pkg/events"
	"ai-interview-be/pkg/interviewer"
	pktNats "ai-interview-be/pkg/nats"

	"github.com/google/uuid"
)

const listInterviewsLimit = 100

type IInterviewService interface {
	CreateJobDescription(ctx context.Context, req *dto.CreateJobDescriptionRequest) (*dto.JobDescriptionDTO, error)
	CreateCandidateResume(ctx context.Context, req *dto.CreateCandidateResumeRequest) (*dto.CandidateResumeDTO, error)
	Setup(ctx context.Context, req *dto.SetupInterviewRequest) (*dto.SetupInterviewResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.InterviewDTO, error)
	GetAll(ctx context.Context) ([]*dto.InterviewDTO, error)
	Start(ctx context.Context, id uuid.UUID) (*dto.InterviewStatusResponse, error)
	End(ctx context.Context, id uuid.UUID) (*dto.InterviewStatusResponse, error)
	AddIntegrityFlag(ctx context.Context, id uuid.UUID, req *dto.AddIntegrityFlagRequest) (bool, error)
}

type interviewService struct {
	uowFactory     unitofwork.RepositoryFactory
	model          interviewer.Client
	eventPublisher *pktNats.Publisher
}

func NewInterviewService(
	uowFactory unitofwork.RepositoryFactory,
	model interviewer.Client,
	eventPublisher *pktNats.Publisher,
) IInterviewService {
	return &interviewService{
		uowFactory:     uowFactory,
		model:          model,
		eventPublisher: eventPublisher,
	}
}

func (c *interviewService) CreateJobDescription(ctx context.Context, req *dto.CreateJobDescriptionRequest) (*dto.JobDescriptionDTO, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	jd := entity.JobDescription{
		Id:                  uuid.New(),
		Title:               req.Title,
		RequiredSkills:      req.RequiredSkills,
		PreferredExperience: req.PreferredExperience,
		RoleExpectations:    req.RoleExpectations,
		CreatedAt:           time.Now(),
	}

	if err := uow.JobDescriptionRepository().Create(ctx, &jd); err != nil {
		return nil, err
	}
	return toJobDescriptionDTO(&jd), nil
}

func (c *interviewService) CreateCandidateResume(ctx context.Context, req *dto.CreateCandidateResumeRequest) (*dto.CandidateResumeDTO, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	resume := entity.CandidateResume{
		Id:         uuid.New(),
		Name:       req.Name,
		Email:      req.Email,
		Skills:     req.Skills,
		Experience: req.Experience,
		Projects:   req.Projects,
		CreatedAt:  time.Now(),
	}

	if err := uow.CandidateResumeRepository().Create(ctx, &resume); err != nil {
		return nil, err
	}
	return toCandidateResumeDTO(&resume), nil
}

// Setup creates the job description, the resume and the scheduled interview
// in one transaction, then runs the role-fit analysis. The analysis is best
// effort and never fails the setup.
func (c *interviewService) Setup(ctx context.Context, req *dto.SetupInterviewRequest) (*dto.SetupInterviewResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	jd := entity.JobDescription{
		Id:               uuid.New(),
		Title:            req.JobTitle,
		RoleExpectations: req.JdText,
		CreatedAt:        time.Now(),
	}
	if err := uow.JobDescriptionRepository().Create(ctx, &jd); err != nil {
		return nil, err
	}

	resume := entity.CandidateResume{
		Id:         uuid.New(),
		Name:       req.CandidateName,
		Email:      req.CandidateEmail,
		Experience: req.ResumeText,
		CreatedAt:  time.Now(),
	}
	if err := uow.CandidateResumeRepository().Create(ctx, &resume); err != nil {
		return nil, err
	}

	interview := entity.Interview{
		Id:                uuid.New(),
		JobDescriptionId:  jd.Id,
		CandidateResumeId: resume.Id,
		Status:            entity.InterviewStatusScheduled,
		CreatedAt:         time.Now(),
	}
	if err := uow.InterviewRepository().Create(ctx, &interview); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	jdText := req.JdText
	if jdText == "" {
		jdText = req.JobTitle
	}
	resumeText := req.ResumeText
	if resumeText == "" {
		resumeText = "Candidate: " + req.CandidateName
	}
	analysis := c.analyzeRoleFit(ctx, jdText, resumeText)

	if c.eventPublisher != nil {
		evt := events.NewInterviewEvent(events.TypeInterviewCreated, interview.Id, map[string]interface{}{
			"job_title": jd.Title,
		})
		// Auxiliary; the setup result is already committed.
		if err := c.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish INTERVIEW_CREATED event: %v\n", err)
		}
	}

	return &dto.SetupInterviewResponse{
		InterviewId:     interview.Id,
		JobDescription:  toJobDescriptionDTO(&jd),
		CandidateResume: toCandidateResumeDTO(&resume),
		RoleFitAnalysis: analysis,
	}, nil
}

func (c *interviewService) analyzeRoleFit(ctx context.Context, jdText, resumeText string) *dto.RoleFitAnalysis {
	raw, err := c.model.Generate(ctx, constant.RoleFitPrompt(jdText, resumeText))
	if err != nil {
		return &dto.RoleFitAnalysis{
			SkillMatchLevel:     "medium",
			ExperienceRelevance: "Analysis pending",
			ProjectAlignment:    "Analysis pending",
			AnalysisSummary:     "Automated analysis unavailable",
			MatchScore:          50,
		}
	}

	var analysis dto.RoleFitAnalysis
	if err := json.Unmarshal([]byte(interviewer.CleanJSON(raw)), &analysis); err != nil {
		summary := raw
		if len(summary) > 500 {
			summary = summary[:500]
		}
		return &dto.RoleFitAnalysis{
			SkillMatchLevel:     "medium",
			ExperienceRelevance: "See summary",
			ProjectAlignment:    "See summary",
			AnalysisSummary:     summary,
			MatchScore:          50,
		}
	}
	return &analysis
}

func (c *interviewService) Show(ctx context.Context, id uuid.UUID) (*dto.InterviewDTO, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	interview, err := uow.InterviewRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if interview == nil {
		return nil, nil // Not found
	}
	return toInterviewDTO(interview), nil
}

func (c *interviewService) GetAll(ctx context.Context) ([]*dto.InterviewDTO, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	interviews, err := uow.InterviewRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Limit{Limit: listInterviewsLimit},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.InterviewDTO, 0, len(interviews))
	for _, interview := range interviews {
		result = append(result, toInterviewDTO(interview))
	}
	return result, nil
}

// Start moves a scheduled interview to in_progress. When the guard does not
// match, the current status is reported instead (absent interview stays a
// nil result for the controller's 404).
func (c *interviewService) Start(ctx context.Context, id uuid.UUID) (*dto.InterviewStatusResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	ok, err := uow.InterviewRepository().Start(ctx, id)
	if err != nil {
		return nil, err
	}
	if ok {
		if c.eventPublisher != nil {
			evt := events.NewInterviewEvent(events.TypeInterviewStarted, id, nil)
			if err := c.eventPublisher.Publish(ctx, evt); err != nil {
				fmt.Printf("[WARN] Failed to publish INTERVIEW_STARTED event: %v\n", err)
			}
		}
		return &dto.InterviewStatusResponse{Status: entity.InterviewStatusInProgress}, nil
	}
	return c.currentStatus(ctx, id)
}

func (c *interviewService) End(ctx context.Context, id uuid.UUID) (*dto.InterviewStatusResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	ok, err := uow.InterviewRepository().Complete(ctx, id)
	if err != nil {
		return nil, err
	}
	if ok {
		if c.eventPublisher != nil {
			evt := events.NewInterviewEvent(events.TypeInterviewCompleted, id, nil)
			if err := c.eventPublisher.Publish(ctx, evt); err != nil {
				fmt.Printf("[WARN] Failed to publish INTERVIEW_COMPLETED event: %v\n", err)
			}
		}
		return &dto.InterviewStatusResponse{Status: entity.InterviewStatusCompleted}, nil
	}
	return c.currentStatus(ctx, id)
}

func (c *interviewService) AddIntegrityFlag(ctx context.Context, id uuid.UUID, req *dto.AddIntegrityFlagRequest) (bool, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	flag := entity.IntegrityFlag{
		Timestamp:   req.Timestamp,
		FlagType:    req.FlagType,
		Description: req.Description,
	}
	return uow.InterviewRepository().AppendIntegrityFlag(ctx, id, flag)
}

func (c *interviewService) currentStatus(ctx context.Context, id uuid.UUID) (*dto.InterviewStatusResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	interview, err := uow.InterviewRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if interview == nil {
		return nil, nil // Not found
	}
	return &dto.InterviewStatusResponse{Status: interview.Status}, nil
}

func toJobDescriptionDTO(jd *entity.JobDescription) *dto.JobDescriptionDTO {
	return &dto.JobDescriptionDTO{
		Id:                  jd.Id,
		Title:               jd.Title,
		RequiredSkills:      jd.RequiredSkills,
		PreferredExperience: jd.PreferredExperience,
		RoleExpectations:    jd.RoleExpectations,
		CreatedAt:           jd.CreatedAt,
	}
}

func toCandidateResumeDTO(resume *entity.CandidateResume) *dto.CandidateResumeDTO {
	return &dto.CandidateResumeDTO{
		Id:         resume.Id,
		Name:       resume.Name,
		Email:      resume.Email,
		Skills:     resume.Skills,
		Experience: resume.Experience,
		Projects:   resume.Projects,
		CreatedAt:  resume.CreatedAt,
	}
}

func toInterviewDTO(interview *entity.Interview) *dto.InterviewDTO {
	return &dto.InterviewDTO{
		Id:                interview.Id,
		JobDescriptionId:  interview.JobDescriptionId,
		CandidateResumeId: interview.CandidateResumeId,
		Status:            interview.Status,
		StartTime:         interview.StartTime,
		EndTime:           interview.EndTime,
		QuestionsAsked:    interview.QuestionsAsked,
		IntegrityFlags:    interview.IntegrityFlags,
		Evaluation:        interview.Evaluation,
		CreatedAt:         interview.CreatedAt,
	}
}
