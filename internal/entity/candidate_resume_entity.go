package entity

import (
	"time"

	"github.com/google/uuid"
)

type CandidateResume struct {
	Id         uuid.UUID
	Name       string
	Email      string
	Skills     []string
	Experience string
	Projects   []string
	CreatedAt  time.Time
}
