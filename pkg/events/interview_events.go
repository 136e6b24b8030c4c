package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeInterviewCreated    = "INTERVIEW_CREATED"
	TypeInterviewStarted    = "INTERVIEW_STARTED"
	TypeInterviewCompleted  = "INTERVIEW_COMPLETED"
	TypeInterviewTerminated = "INTERVIEW_TERMINATED"
)

func NewInterviewEvent(eventType string, interviewId uuid.UUID, extra map[string]interface{}) Event {
	data := map[string]interface{}{
		"interview_id": interviewId.String(),
	}
	for k, v := range extra {
		data[k] = v
	}
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}
