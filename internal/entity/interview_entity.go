package entity

import (
	"time"

	"github.com/google/uuid"
)

// Interview status values. Transitions are one-way:
// scheduled -> in_progress -> completed | terminated.
const (
	InterviewStatusScheduled  = "scheduled"
	InterviewStatusInProgress = "in_progress"
	InterviewStatusCompleted  = "completed"
	InterviewStatusTerminated = "terminated"
)

// Reserved flag type that terminates a session without consulting the model.
const FlagTypeCriticalViolation = "critical_violation"

const DefaultViolationAction = "terminate"

type IntegrityFlag struct {
	Timestamp   time.Time `json:"timestamp"`
	FlagType    string    `json:"flag_type"`
	Description string    `json:"description"`
	Action      string    `json:"action,omitempty"`
}

// Evaluation is the stored fitness report. Section shapes come from the
// model and are kept free-form; IntegrityScore.Score is always the locally
// computed value, never the model's.
type Evaluation struct {
	RoleFit                map[string]interface{} `json:"role_fit,omitempty"`
	Performance            map[string]interface{} `json:"performance,omitempty"`
	BehavioralObservations map[string]interface{} `json:"behavioral_observations,omitempty"`
	IntegrityScore         IntegrityScore         `json:"integrity_score"`
	Strengths              []string               `json:"strengths,omitempty"`
	Weaknesses             []string               `json:"weaknesses,omitempty"`
	Recommendation         string                 `json:"recommendation"`
	OverallScore           int                    `json:"overall_score"`
	Reason                 string                 `json:"reason,omitempty"`
	RawText                string                 `json:"raw_text,omitempty"`
}

type IntegrityScore struct {
	Score             int             `json:"score"`
	SuspiciousMoments []string        `json:"suspicious_moments,omitempty"`
	Flags             []IntegrityFlag `json:"flags,omitempty"`
}

type Interview struct {
	Id                uuid.UUID
	JobDescriptionId  uuid.UUID
	CandidateResumeId uuid.UUID
	Status            string
	StartTime         *time.Time
	EndTime           *time.Time
	// QuestionsAsked holds every model-authored utterance in order,
	// including the opening greeting.
	QuestionsAsked []string
	IntegrityFlags []IntegrityFlag
	Evaluation     *Evaluation
	CreatedAt      time.Time
}
