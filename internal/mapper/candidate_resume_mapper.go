package mapper

import (
	"encoding/json"

	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/model"

	"gorm.io/datatypes"
)

type CandidateResumeMapper struct{}

func NewCandidateResumeMapper() *CandidateResumeMapper {
	return &CandidateResumeMapper{}
}

func (m *CandidateResumeMapper) ToEntity(r *model.CandidateResume) *entity.CandidateResume {
	if r == nil {
		return nil
	}

	skills := make([]string, 0)
	if len(r.Skills) > 0 {
		_ = json.Unmarshal(r.Skills, &skills)
	}
	projects := make([]string, 0)
	if len(r.Projects) > 0 {
		_ = json.Unmarshal(r.Projects, &projects)
	}

	return &entity.CandidateResume{
		Id:         r.Id,
		Name:       r.Name,
		Email:      r.Email,
		Skills:     skills,
		Experience: r.Experience,
		Projects:   projects,
		CreatedAt:  r.CreatedAt,
	}
}

func (m *CandidateResumeMapper) ToModel(r *entity.CandidateResume) *model.CandidateResume {
	if r == nil {
		return nil
	}

	skills := r.Skills
	if skills == nil {
		skills = make([]string, 0)
	}
	projects := r.Projects
	if projects == nil {
		projects = make([]string, 0)
	}
	skillsJson, _ := json.Marshal(skills)
	projectsJson, _ := json.Marshal(projects)

	return &model.CandidateResume{
		Id:         r.Id,
		Name:       r.Name,
		Email:      r.Email,
		Skills:     datatypes.JSON(skillsJson),
		Experience: r.Experience,
		Projects:   datatypes.JSON(projectsJson),
		CreatedAt:  r.CreatedAt,
	}
}

func (m *CandidateResumeMapper) ToEntities(models []*model.CandidateResume) []*entity.CandidateResume {
	entities := make([]*entity.CandidateResume, 0, len(models))
	for _, r := range models {
		entities = append(entities, m.ToEntity(r))
	}
	return entities
}
