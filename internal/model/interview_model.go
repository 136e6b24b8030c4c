package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Interview keeps the transcript, integrity flags and evaluation as JSONB
// columns. The append-only lists are mutated with a single-statement
// `col || item` concatenation so concurrent appends from different code
// paths never clobber each other.
type Interview struct {
	Id                uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	JobDescriptionId  uuid.UUID      `gorm:"type:uuid;not null;index"`
	CandidateResumeId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Status            string         `gorm:"type:varchar(32);not null;default:'scheduled';index"`
	StartTime         *time.Time     `gorm:"type:timestamptz"`
	EndTime           *time.Time     `gorm:"type:timestamptz"`
	QuestionsAsked    datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	IntegrityFlags    datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	Evaluation        datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt         time.Time      `gorm:"autoCreateTime;index"`
}

func (Interview) TableName() string {
	return "interviews"
}
