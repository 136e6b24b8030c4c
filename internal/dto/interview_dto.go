package dto

import (
	"time"

	"ai-interview-be/internal/entity"

	"github.com/google/uuid"
)

type CreateJobDescriptionRequest struct {
	Title               string   `json:"title" validate:"required"`
	RequiredSkills      []string `json:"required_skills"`
	PreferredExperience string   `json:"preferred_experience"`
	RoleExpectations    string   `json:"role_expectations"`
}

type CreateCandidateResumeRequest struct {
	Name       string   `json:"name" validate:"required"`
	Email      string   `json:"email" validate:"required,email"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
	Projects   []string `json:"projects"`
}

type SetupInterviewRequest struct {
	JdText         string `json:"jd_text"`
	ResumeText     string `json:"resume_text"`
	JobTitle       string `json:"job_title" validate:"required"`
	CandidateName  string `json:"candidate_name" validate:"required"`
	CandidateEmail string `json:"candidate_email" validate:"required,email"`
}

// RoleFitAnalysis is the pre-session compatibility check computed once at
// setup time, independent of the live session.
type RoleFitAnalysis struct {
	SkillMatchLevel     string `json:"skill_match_level"`
	ExperienceRelevance string `json:"experience_relevance"`
	ProjectAlignment    string `json:"project_alignment"`
	AnalysisSummary     string `json:"analysis_summary"`
	MatchScore          int    `json:"match_score"`
}

type SetupInterviewResponse struct {
	InterviewId     uuid.UUID           `json:"interview_id"`
	JobDescription  *JobDescriptionDTO  `json:"job_description"`
	CandidateResume *CandidateResumeDTO `json:"candidate_resume"`
	RoleFitAnalysis *RoleFitAnalysis    `json:"role_fit_analysis"`
}

type JobDescriptionDTO struct {
	Id                  uuid.UUID `json:"id"`
	Title               string    `json:"title"`
	RequiredSkills      []string  `json:"required_skills"`
	PreferredExperience string    `json:"preferred_experience"`
	RoleExpectations    string    `json:"role_expectations"`
	CreatedAt           time.Time `json:"created_at"`
}

type CandidateResumeDTO struct {
	Id         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Skills     []string  `json:"skills"`
	Experience string    `json:"experience"`
	Projects   []string  `json:"projects"`
	CreatedAt  time.Time `json:"created_at"`
}

type InterviewDTO struct {
	Id                uuid.UUID              `json:"id"`
	JobDescriptionId  uuid.UUID              `json:"job_description_id"`
	CandidateResumeId uuid.UUID              `json:"candidate_resume_id"`
	Status            string                 `json:"status"`
	StartTime         *time.Time             `json:"start_time"`
	EndTime           *time.Time             `json:"end_time"`
	QuestionsAsked    []string               `json:"questions_asked"`
	IntegrityFlags    []entity.IntegrityFlag `json:"integrity_flags"`
	Evaluation        *entity.Evaluation     `json:"evaluation"`
	CreatedAt         time.Time              `json:"created_at"`
}

type AddIntegrityFlagRequest struct {
	Timestamp   time.Time `json:"timestamp" validate:"required"`
	FlagType    string    `json:"flag_type" validate:"required"`
	Description string    `json:"description"`
}

type InterviewStatusResponse struct {
	Status string `json:"status"`
}
