package model

import "encoding/json"

// Pipeline is an ordered list of onboarding stages tracked per student.
// swagger:model Pipeline
type Pipeline struct {
	BaseModel
	Name      string          `gorm:"size:100;not null" json:"name"`
	Stages    json.RawMessage `gorm:"type:json;not null" json:"stages"` // JSON: []string, 1-10 entries
	IsActive  bool            `gorm:"default:true" json:"isActive"`
	CreatedBy *uint           `json:"createdBy,omitempty"`
}

func (Pipeline) TableName() string {
	return "pipelines"
}

// UserPipelineProgress mirrors Pipeline.Stages with one completion flag
// per stage, aligned by index.
// swagger:model UserPipelineProgress
type UserPipelineProgress struct {
	BaseModel
	UserID          uint            `gorm:"uniqueIndex:idx_progress_user_pipeline;not null" json:"userId"`
	PipelineID      uint            `gorm:"uniqueIndex:idx_progress_user_pipeline;not null" json:"pipelineId"`
	CompletedStages json.RawMessage `gorm:"type:json;not null" json:"completedStages"` // JSON: []bool
}

func (UserPipelineProgress) TableName() string {
	return "user_pipeline_progress"
}
