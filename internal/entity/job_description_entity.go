package entity

import (
	"time"

	"github.com/google/uuid"
)

type JobDescription struct {
	Id                  uuid.UUID
	Title               string
	RequiredSkills      []string
	PreferredExperience string
	RoleExpectations    string
	CreatedAt           time.Time
}
