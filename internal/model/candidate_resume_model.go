package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CandidateResume struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string         `gorm:"type:varchar(255);not null"`
	Email      string         `gorm:"type:varchar(255);not null"`
	Skills     datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	Experience string         `gorm:"type:text"`
	Projects   datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt  time.Time      `gorm:"autoCreateTime;index"`
}

func (CandidateResume) TableName() string {
	return "candidate_resumes"
}
