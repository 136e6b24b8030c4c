// Package session hosts the live interview loop: the per-interview
// connection registry, the wire event codec, the orchestrator state machine
// and the evaluation policy.
package session

import (
	"encoding/json"
	"fmt"

	"ai-interview-be/internal/entity"
)

// Inbound event type tags accepted from the candidate client.
const (
	TypePing               = "ping"
	TypeCandidateResponse  = "candidate_response"
	TypeIntegrityFlag      = "integrity_flag"
	TypeIntegrityViolation = "integrity_violation"
	TypeEndInterview       = "end_interview"
)

// Outbound event type tags delivered to the candidate client.
const (
	TypeAiMessage  = "ai_message"
	TypePong       = "pong"
	TypeEvaluation = "evaluation"
	TypeError      = "error"
)

// Inbound is the closed set of events a candidate client may send. Each
// variant carries exactly the fields its handler needs.
type Inbound interface {
	inboundType() string
}

type PingEvent struct{}

type CandidateResponseEvent struct {
	Content string
}

type IntegrityFlagEvent struct {
	FlagType    string
	Description string
}

type IntegrityViolationEvent struct {
	Reason string
	Action string
}

type EndInterviewEvent struct{}

func (PingEvent) inboundType() string               { return TypePing }
func (CandidateResponseEvent) inboundType() string  { return TypeCandidateResponse }
func (IntegrityFlagEvent) inboundType() string      { return TypeIntegrityFlag }
func (IntegrityViolationEvent) inboundType() string { return TypeIntegrityViolation }
func (EndInterviewEvent) inboundType() string       { return TypeEndInterview }

// ParseInbound decodes one client frame. Unknown type tags return
// (nil, nil): the caller skips them without tearing down the session.
// Malformed JSON is an error.
func ParseInbound(data []byte) (Inbound, error) {
	var frame struct {
		Type        string `json:"type"`
		Content     string `json:"content"`
		FlagType    string `json:"flag_type"`
		Description string `json:"description"`
		Reason      string `json:"reason"`
		Action      string `json:"action"`
	}
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, fmt.Errorf("decode client frame: %w", err)
	}

	switch frame.Type {
	case TypePing:
		return PingEvent{}, nil
	case TypeCandidateResponse:
		return CandidateResponseEvent{Content: frame.Content}, nil
	case TypeIntegrityFlag:
		return IntegrityFlagEvent{FlagType: frame.FlagType, Description: frame.Description}, nil
	case TypeIntegrityViolation:
		action := frame.Action
		if action == "" {
			action = entity.DefaultViolationAction
		}
		return IntegrityViolationEvent{Reason: frame.Reason, Action: action}, nil
	case TypeEndInterview:
		return EndInterviewEvent{}, nil
	}
	return nil, nil
}

// Outbound is one server frame. Content is string for ai_message and the
// termination notice, and the full evaluation document for reports.
type Outbound struct {
	Type    string      `json:"type"`
	Content interface{} `json:"content,omitempty"`
	Message string      `json:"message,omitempty"`
}

func AiMessage(content string) Outbound {
	return Outbound{Type: TypeAiMessage, Content: content}
}

func Pong() Outbound {
	return Outbound{Type: TypePong}
}

func EvaluationNotice(message string) Outbound {
	return Outbound{Type: TypeEvaluation, Content: message}
}

func EvaluationReport(evaluation *entity.Evaluation) Outbound {
	return Outbound{Type: TypeEvaluation, Content: evaluation}
}

func ErrorEvent(message string) Outbound {
	return Outbound{Type: TypeError, Message: message}
}
