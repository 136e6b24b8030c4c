package mapper

import (
	"encoding/json"

	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/model"

	"gorm.io/datatypes"
)

type JobDescriptionMapper struct{}

func NewJobDescriptionMapper() *JobDescriptionMapper {
	return &JobDescriptionMapper{}
}

func (m *JobDescriptionMapper) ToEntity(jd *model.JobDescription) *entity.JobDescription {
	if jd == nil {
		return nil
	}

	skills := make([]string, 0)
	if len(jd.RequiredSkills) > 0 {
		_ = json.Unmarshal(jd.RequiredSkills, &skills)
	}

	return &entity.JobDescription{
		Id:                  jd.Id,
		Title:               jd.Title,
		RequiredSkills:      skills,
		PreferredExperience: jd.PreferredExperience,
		RoleExpectations:    jd.RoleExpectations,
		CreatedAt:           jd.CreatedAt,
	}
}

func (m *JobDescriptionMapper) ToModel(jd *entity.JobDescription) *model.JobDescription {
	if jd == nil {
		return nil
	}

	skills := jd.RequiredSkills
	if skills == nil {
		skills = make([]string, 0)
	}
	skillsJson, _ := json.Marshal(skills)

	return &model.JobDescription{
		Id:                  jd.Id,
		Title:               jd.Title,
		RequiredSkills:      datatypes.JSON(skillsJson),
		PreferredExperience: jd.PreferredExperience,
		RoleExpectations:    jd.RoleExpectations,
		CreatedAt:           jd.CreatedAt,
	}
}

func (m *JobDescriptionMapper) ToEntities(models []*model.JobDescription) []*entity.JobDescription {
	entities := make([]*entity.JobDescription, 0, len(models))
	for _, jd := range models {
		entities = append(entities, m.ToEntity(jd))
	}
	return entities
}
