package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type JobDescription struct {
	Id                  uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title               string         `gorm:"type:varchar(255);not null"`
	RequiredSkills      datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"`
	PreferredExperience string         `gorm:"type:text"`
	RoleExpectations    string         `gorm:"type:text"`
	CreatedAt           time.Time      `gorm:"autoCreateTime;index"`
}

func (JobDescription) TableName() string {
	return "job_descriptions"
}
