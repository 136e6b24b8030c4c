package session

import (
	"context"
	"encoding/json"
	"time"

	"ai-interview-be/internal/constant"
	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/pkg/logger"
	"ai-interview-be/pkg/events"
	"ai-interview-be/pkg/interviewer"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const errModelUnavailable = "AI interviewer is temporarily unavailable, please repeat your answer"

// Live model conversations are held for the session duration plus slack so
// a dropped candidate can reconnect and resume mid-interview.
const (
	liveSessionTTL     = 90 * time.Minute
	liveSessionCleanup = 10 * time.Minute
)

// Store is the persistence surface the orchestrator writes through. The
// append and transition methods are atomic at the store so concurrent
// sessions and HTTP calls never clobber each other.
type Store interface {
	GetInterview(ctx context.Context, id uuid.UUID) (*entity.Interview, error)
	GetJobDescription(ctx context.Context, id uuid.UUID) (*entity.JobDescription, error)
	GetCandidateResume(ctx context.Context, id uuid.UUID) (*entity.CandidateResume, error)

	MarkStarted(ctx context.Context, id uuid.UUID) error
	AppendQuestion(ctx context.Context, id uuid.UUID, question string) error
	AppendIntegrityFlag(ctx context.Context, id uuid.UUID, flag entity.IntegrityFlag) error
	Complete(ctx context.Context, id uuid.UUID) error
	Terminate(ctx context.Context, id uuid.UUID, evaluation *entity.Evaluation) error
	SetEvaluation(ctx context.Context, id uuid.UUID, evaluation *entity.Evaluation) error
}

// AuditPublisher receives one message per finished evaluation for the
// asynchronous audit trail.
type AuditPublisher interface {
	Publish(ctx context.Context, payload []byte) error
}

// LifecyclePublisher fans interview lifecycle events out to the bus.
type LifecyclePublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Orchestrator drives one websocket session per interview: prime the model,
// greet, then loop over candidate events until the session ends.
type Orchestrator struct {
	registry  *Registry
	store     Store
	model     interviewer.Client
	audit     AuditPublisher
	lifecycle LifecyclePublisher
	logger    logger.ILogger

	// live caches model conversations by interview id so a reconnect
	// resumes the running interview instead of starting over.
	live *gocache.Cache

	sessionMinutes int
}

func NewOrchestrator(
	registry *Registry,
	store Store,
	model interviewer.Client,
	audit AuditPublisher,
	lifecycle LifecyclePublisher,
	log logger.ILogger,
	sessionMinutes int,
) *Orchestrator {
	return &Orchestrator{
		registry:       registry,
		store:          store,
		model:          model,
		audit:          audit,
		lifecycle:      lifecycle,
		logger:         log,
		live:           gocache.New(liveSessionTTL, liveSessionCleanup),
		sessionMinutes: sessionMinutes,
	}
}

// Run owns the socket for its whole lifetime. It returns when the client
// disconnects, the session is evicted by a newer connection, or the
// interview reaches a terminal state.
func (o *Orchestrator) Run(ctx context.Context, interviewID uuid.UUID, ws Conn) {
	conn := o.registry.Register(interviewID, ws)
	defer o.registry.Unregister(conn)

	interview, err := o.store.GetInterview(ctx, interviewID)
	if err != nil {
		o.logger.Error("Orchestrator", "Failed to load interview", o.details(interviewID, err))
		return
	}
	if interview == nil {
		o.logger.Warn("Orchestrator", "Connection for unknown interview", o.details(interviewID, nil))
		o.registry.Deliver(interviewID, ErrorEvent("interview not found"))
		return
	}
	if interview.Status == entity.InterviewStatusCompleted || interview.Status == entity.InterviewStatusTerminated {
		o.registry.Deliver(interviewID, ErrorEvent("interview already ended"))
		return
	}

	modelSession, resumed, err := o.openModelSession(ctx, interview)
	if err != nil {
		o.logger.Error("Orchestrator", "Failed to open model session", o.details(interviewID, err))
		o.registry.Deliver(interviewID, ErrorEvent(errModelUnavailable))
		return
	}

	if err := o.store.MarkStarted(ctx, interviewID); err != nil {
		o.logger.Error("Orchestrator", "Failed to mark interview started", o.details(interviewID, err))
	} else if !resumed {
		o.publishLifecycle(ctx, events.TypeInterviewStarted, interviewID, nil)
	}

	if !resumed {
		greeting, err := modelSession.Send(ctx, constant.OpeningInstruction)
		if err != nil {
			o.logger.Error("Orchestrator", "Opening turn failed", o.details(interviewID, err))
			o.registry.Deliver(interviewID, ErrorEvent(errModelUnavailable))
			return
		}
		o.registry.Deliver(interviewID, AiMessage(greeting))
		if err := o.store.AppendQuestion(ctx, interviewID, greeting); err != nil {
			o.logger.Error("Orchestrator", "Failed to persist opening turn", o.details(interviewID, err))
		}
	}

	o.loop(ctx, interviewID, modelSession, conn)
}

// openModelSession reuses a cached conversation when one exists, otherwise
// primes a fresh one with the job and candidate context.
func (o *Orchestrator) openModelSession(ctx context.Context, interview *entity.Interview) (interviewer.Session, bool, error) {
	key := interview.Id.String()
	if cached, found := o.live.Get(key); found {
		if sess, ok := cached.(interviewer.Session); ok {
			return sess, true, nil
		}
	}

	jd, err := o.store.GetJobDescription(ctx, interview.JobDescriptionId)
	if err != nil {
		return nil, false, err
	}
	resume, err := o.store.GetCandidateResume(ctx, interview.CandidateResumeId)
	if err != nil {
		return nil, false, err
	}

	var roleExpectations, candidateInfo string
	if jd != nil {
		roleExpectations = jd.RoleExpectations
	}
	if resume != nil {
		candidateInfo = resume.Experience
		if candidateInfo == "" {
			candidateInfo = "Candidate: " + resume.Name
		}
	}

	systemPrompt := constant.InterviewerSystemPrompt(roleExpectations, candidateInfo, o.sessionMinutes)
	sess, err := o.model.NewSession(ctx, key, systemPrompt)
	if err != nil {
		return nil, false, err
	}

	o.live.Set(key, sess, gocache.DefaultExpiration)
	return sess, false, nil
}

func (o *Orchestrator) loop(ctx context.Context, interviewID uuid.UUID, modelSession interviewer.Session, conn *Connection) {
	for {
		data, err := conn.ReadMessage()
		if err != nil {
			// Disconnect or eviction. The registry entry is cleaned up by
			// the caller; the live model session stays cached for resume.
			o.logger.Info("Orchestrator", "Client read loop ended", o.details(interviewID, err))
			return
		}

		event, err := ParseInbound(data)
		if err != nil {
			o.logger.Warn("Orchestrator", "Malformed client frame", o.details(interviewID, err))
			continue
		}

		switch e := event.(type) {
		case PingEvent:
			o.registry.Deliver(interviewID, Pong())

		case CandidateResponseEvent:
			o.handleCandidateResponse(ctx, interviewID, modelSession, e)

		case IntegrityFlagEvent:
			flag := entity.IntegrityFlag{
				Timestamp:   time.Now().UTC(),
				FlagType:    e.FlagType,
				Description: e.Description,
			}
			if err := o.store.AppendIntegrityFlag(ctx, interviewID, flag); err != nil {
				o.logger.Error("Orchestrator", "Failed to record integrity flag", o.details(interviewID, err))
			}

		case IntegrityViolationEvent:
			o.handleViolation(ctx, interviewID, e)
			return

		case EndInterviewEvent:
			o.finishInterview(ctx, interviewID, modelSession)
			return

		default:
			// Unknown type tag, skipped.
		}
	}
}

func (o *Orchestrator) handleCandidateResponse(ctx context.Context, interviewID uuid.UUID, modelSession interviewer.Session, e CandidateResponseEvent) {
	reply, err := modelSession.Send(ctx, e.Content)
	if err != nil {
		o.logger.Error("Orchestrator", "Model turn failed", o.details(interviewID, err))
		o.registry.Deliver(interviewID, ErrorEvent(errModelUnavailable))
		return
	}

	o.registry.Deliver(interviewID, AiMessage(reply))
	if err := o.store.AppendQuestion(ctx, interviewID, reply); err != nil {
		o.logger.Error("Orchestrator", "Failed to persist model turn", o.details(interviewID, err))
	}
}

// handleViolation records the critical flag, terminates the interview with
// the fixed integrity report and notifies the client. No model call.
func (o *Orchestrator) handleViolation(ctx context.Context, interviewID uuid.UUID, e IntegrityViolationEvent) {
	flag := entity.IntegrityFlag{
		Timestamp:   time.Now().UTC(),
		FlagType:    entity.FlagTypeCriticalViolation,
		Description: e.Reason,
		Action:      e.Action,
	}
	if err := o.store.AppendIntegrityFlag(ctx, interviewID, flag); err != nil {
		o.logger.Error("Orchestrator", "Failed to record violation flag", o.details(interviewID, err))
	}

	interview, err := o.store.GetInterview(ctx, interviewID)
	if err != nil || interview == nil {
		o.logger.Error("Orchestrator", "Failed to reload interview for termination", o.details(interviewID, err))
		return
	}

	evaluation := TerminationResult(e.Reason, interview.IntegrityFlags)
	if err := o.store.Terminate(ctx, interviewID, evaluation); err != nil {
		o.logger.Error("Orchestrator", "Failed to terminate interview", o.details(interviewID, err))
	}

	o.live.Delete(interviewID.String())
	o.registry.Deliver(interviewID, EvaluationNotice("Interview terminated due to integrity violations"))
	o.publishLifecycle(ctx, events.TypeInterviewTerminated, interviewID, map[string]interface{}{
		"reason": e.Reason,
	})
	o.logger.Warn("Orchestrator", "Interview terminated for integrity violation", o.details(interviewID, nil))
}

// finishInterview runs the evaluation branch: short-circuit for empty
// transcripts, otherwise ask the model for the report, then persist,
// deliver and complete.
func (o *Orchestrator) finishInterview(ctx context.Context, interviewID uuid.UUID, modelSession interviewer.Session) {
	interview, err := o.store.GetInterview(ctx, interviewID)
	if err != nil || interview == nil {
		o.logger.Error("Orchestrator", "Failed to reload interview for evaluation", o.details(interviewID, err))
		o.registry.Deliver(interviewID, ErrorEvent("evaluation failed"))
		return
	}

	var evaluation *entity.Evaluation
	if len(interview.QuestionsAsked) <= 1 {
		evaluation = CannotEvaluateResult(interview.IntegrityFlags)
	} else {
		prompt := BuildEvaluationPrompt(interview.QuestionsAsked, len(interview.IntegrityFlags))
		raw, err := modelSession.Send(ctx, prompt)
		if err != nil {
			o.logger.Error("Orchestrator", "Evaluation turn failed", o.details(interviewID, err))
			raw = ""
		}
		evaluation = ParseEvaluation(raw, interview.IntegrityFlags)
	}

	if err := o.store.SetEvaluation(ctx, interviewID, evaluation); err != nil {
		o.logger.Error("Orchestrator", "Failed to persist evaluation", o.details(interviewID, err))
	}
	o.registry.Deliver(interviewID, EvaluationReport(evaluation))

	if err := o.store.Complete(ctx, interviewID); err != nil {
		o.logger.Error("Orchestrator", "Failed to complete interview", o.details(interviewID, err))
	}

	o.live.Delete(interviewID.String())
	o.publishLifecycle(ctx, events.TypeInterviewCompleted, interviewID, map[string]interface{}{
		"recommendation": evaluation.Recommendation,
	})
	o.publishAudit(ctx, interviewID, evaluation)
}

func (o *Orchestrator) publishLifecycle(ctx context.Context, eventType string, interviewID uuid.UUID, extra map[string]interface{}) {
	if o.lifecycle == nil {
		return
	}
	if err := o.lifecycle.Publish(ctx, events.NewInterviewEvent(eventType, interviewID, extra)); err != nil {
		o.logger.Warn("Orchestrator", "Failed to publish lifecycle event", o.details(interviewID, err))
	}
}

func (o *Orchestrator) publishAudit(ctx context.Context, interviewID uuid.UUID, evaluation *entity.Evaluation) {
	if o.audit == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"interview_id":   interviewID.String(),
		"recommendation": evaluation.Recommendation,
		"overall_score":  evaluation.OverallScore,
	})
	if err != nil {
		return
	}
	if err := o.audit.Publish(ctx, payload); err != nil {
		o.logger.Warn("Orchestrator", "Failed to publish evaluation audit", o.details(interviewID, err))
	}
}

func (o *Orchestrator) details(interviewID uuid.UUID, err error) map[string]interface{} {
	details := map[string]interface{}{"interview_id": interviewID}
	if err != nil {
		details["error"] = err.Error()
	}
	return details
}
