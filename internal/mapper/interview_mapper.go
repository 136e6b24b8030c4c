package mapper

import (
	"encoding/json"

	"ai-interview-be/internal/entity"
	"ai-interview-be/internal/model"

	"gorm.io/datatypes"
)

type InterviewMapper struct{}

func NewInterviewMapper() *InterviewMapper {
	return &InterviewMapper{}
}

func (m *InterviewMapper) ToEntity(iv *model.Interview) *entity.Interview {
	if iv == nil {
		return nil
	}

	questions := make([]string, 0)
	if len(iv.QuestionsAsked) > 0 {
		_ = json.Unmarshal(iv.QuestionsAsked, &questions)
	}

	flags := make([]entity.IntegrityFlag, 0)
	if len(iv.IntegrityFlags) > 0 {
		_ = json.Unmarshal(iv.IntegrityFlags, &flags)
	}

	var evaluation *entity.Evaluation
	if len(iv.Evaluation) > 0 {
		var ev entity.Evaluation
		if err := json.Unmarshal(iv.Evaluation, &ev); err == nil {
			evaluation = &ev
		}
	}

	return &entity.Interview{
		Id:                iv.Id,
		JobDescriptionId:  iv.JobDescriptionId,
		CandidateResumeId: iv.CandidateResumeId,
		Status:            iv.Status,
		StartTime:         iv.StartTime,
		EndTime:           iv.EndTime,
		QuestionsAsked:    questions,
		IntegrityFlags:    flags,
		Evaluation:        evaluation,
		CreatedAt:         iv.CreatedAt,
	}
}

func (m *InterviewMapper) ToModel(iv *entity.Interview) *model.Interview {
	if iv == nil {
		return nil
	}

	questions := iv.QuestionsAsked
	if questions == nil {
		questions = make([]string, 0)
	}
	flags := iv.IntegrityFlags
	if flags == nil {
		flags = make([]entity.IntegrityFlag, 0)
	}
	questionsJson, _ := json.Marshal(questions)
	flagsJson, _ := json.Marshal(flags)

	var evaluationJson datatypes.JSON
	if iv.Evaluation != nil {
		raw, _ := json.Marshal(iv.Evaluation)
		evaluationJson = datatypes.JSON(raw)
	}

	return &model.Interview{
		Id:                iv.Id,
		JobDescriptionId:  iv.JobDescriptionId,
		CandidateResumeId: iv.CandidateResumeId,
		Status:            iv.Status,
		StartTime:         iv.StartTime,
		EndTime:           iv.EndTime,
		QuestionsAsked:    datatypes.JSON(questionsJson),
		IntegrityFlags:    datatypes.JSON(flagsJson),
		Evaluation:        evaluationJson,
		CreatedAt:         iv.CreatedAt,
	}
}

func (m *InterviewMapper) ToEntities(models []*model.Interview) []*entity.Interview {
	entities := make([]*entity.Interview, 0, len(models))
	for _, iv := range models {
		entities = append(entities, m.ToEntity(iv))
	}
	return entities
}
