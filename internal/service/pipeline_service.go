package service

import (
	"encoding/json"
	"errors"
	"exam_portal_backend/internal/model"
	"exam_portal_backend/internal/repository"
	"exam_portal_backend/internal/util"
	"strings"

	"gorm.io/gorm"
)

const (
	minPipelineStages  = 1
	maxPipelineStages  = 10
	maxStageNameLength = 100
)

type PipelineService struct {
	PipelineRepo *repository.PipelineRepository
}

func NewPipelineService(pipelineRepo *repository.PipelineRepository) *PipelineService {
	return &PipelineService{PipelineRepo: pipelineRepo}
}

type PipelineReq struct {
	Name     string   `json:"name" binding:"required"`
	Stages   []string `json:"stages" binding:"required"`
	IsActive *bool    `json:"isActive"`
}

func validateStages(stages []string) error {
	if len(stages) < minPipelineStages || len(stages) > maxPipelineStages {
		return util.NewValidationError("stages must contain between 1 and 10 entries")
	}
	for _, s := range stages {
		if strings.TrimSpace(s) == "" {
			return util.NewValidationError("stage names must not be empty")
		}
		if len(s) > maxStageNameLength {
			return util.NewValidationError("stage names must be at most 100 characters")
		}
	}
	return nil
}

func (s *PipelineService) Create(req PipelineReq, createdBy uint) (*model.Pipeline, error) {
	if err := validateStages(req.Stages); err != nil {
		return nil, err
	}

	stages, err := json.Marshal(req.Stages)
	if err != nil {
		return nil, err
	}

	p := &model.Pipeline{
		Name:      req.Name,
		Stages:    stages,
		IsActive:  true,
		CreatedBy: &createdBy,
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.PipelineRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PipelineService) Get(id uint) (*model.Pipeline, error) {
	p, err := s.PipelineRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPipelineNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *PipelineService) List() ([]model.Pipeline, error) {
	return s.PipelineRepo.List()
}

func (s *PipelineService) Update(id uint, req PipelineReq) (*model.Pipeline, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := validateStages(req.Stages); err != nil {
		return nil, err
	}

	stages, err := json.Marshal(req.Stages)
	if err != nil {
		return nil, err
	}

	p.Name = req.Name
	p.Stages = stages
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.PipelineRepo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PipelineService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.PipelineRepo.Delete(id)
}

// PipelineWithProgress pairs a pipeline with one student's completion
// flags, stage by stage.
type PipelineWithProgress struct {
	Pipeline        model.Pipeline `json:"pipeline"`
	CompletedStages []bool         `json:"completedStages"`
}

// MyProgress returns every active pipeline together with the student's
// progress; students with no recorded progress get all-false flags.
func (s *PipelineService) MyProgress(userID uint) ([]PipelineWithProgress, error) {
	pipelines, err := s.PipelineRepo.List()
	if err != nil {
		return nil, err
	}

	out := make([]PipelineWithProgress, 0, len(pipelines))
	for _, p := range pipelines {
		if !p.IsActive {
			continue
		}

		var stages []string
		if err := json.Unmarshal(p.Stages, &stages); err != nil {
			return nil, err
		}

		completed := make([]bool, len(stages))
		progress, err := s.PipelineRepo.FindProgress(userID, p.ID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if progress != nil {
			var flags []bool
			if err := json.Unmarshal(progress.CompletedStages, &flags); err != nil {
				return nil, err
			}
			copy(completed, flags)
		}

		out = append(out, PipelineWithProgress{Pipeline: p, CompletedStages: completed})
	}
	return out, nil
}

type ProgressReq struct {
	CompletedStages []bool `json:"completedStages" binding:"required"`
}

// UpdateProgress replaces a student's stage flags for one pipeline. The
// flag list must match the pipeline's stage count exactly.
func (s *PipelineService) UpdateProgress(userID, pipelineID uint, req ProgressReq) (*model.UserPipelineProgress, error) {
	p, err := s.Get(pipelineID)
	if err != nil {
		return nil, err
	}

	var stages []string
	if err := json.Unmarshal(p.Stages, &stages); err != nil {
		return nil, err
	}
	if len(req.CompletedStages) != len(stages) {
		return nil, util.NewValidationError("completedStages must have one entry per stage")
	}

	flags, err := json.Marshal(req.CompletedStages)
	if err != nil {
		return nil, err
	}

	progress := &model.UserPipelineProgress{
		UserID:          userID,
		PipelineID:      pipelineID,
		CompletedStages: flags,
	}
	if err := s.PipelineRepo.UpsertProgress(progress); err != nil {
		return nil, err
	}
	return progress, nil
}
