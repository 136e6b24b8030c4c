package service

import (
	"context"
	"encoding/json"
	"log"

	"ai-interview-be/internal/pkg/logger"
	"ai-interview-be/internal/repository/specification"
	"ai-interview-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the evaluation-archived topic and writes one audit
// line per finished interview through the isolated audit logger.
type consumerService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	uowFactory  unitofwork.RepositoryFactory
	auditLogger logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	auditLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:      pubSub,
		topicName:   topicName,
		uowFactory:  uowFactory,
		auditLogger: auditLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload struct {
		InterviewId    string `json:"interview_id"`
		Recommendation string `json:"recommendation"`
		OverallScore   int    `json:"overall_score"`
	}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal audit message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	id, err := uuid.Parse(payload.InterviewId)
	if err != nil {
		log.Printf("[ERROR] Audit message with bad interview id %q: %v", payload.InterviewId, err)
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	interview, err := uow.InterviewRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		log.Printf("[ERROR] Failed to load interview %s for audit: %v", id, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if interview == nil {
		log.Printf("[WARN] Audit message for unknown interview %s", id)
		msg.Ack()
		return
	}

	details := map[string]interface{}{
		"interview_id":    interview.Id,
		"status":          interview.Status,
		"recommendation":  payload.Recommendation,
		"overall_score":   payload.OverallScore,
		"transcript_size": len(interview.QuestionsAsked),
		"flag_count":      len(interview.IntegrityFlags),
	}
	if interview.StartTime != nil && interview.EndTime != nil {
		details["duration_seconds"] = interview.EndTime.Sub(*interview.StartTime).Seconds()
	}
	cs.auditLogger.Info("EvaluationAudit", "Interview evaluated", details)

	msg.Ack()
}
