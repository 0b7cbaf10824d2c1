package repository

import (
	"exam_portal_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PipelineRepository struct {
	DB *gorm.DB
}

func NewPipelineRepository(db *gorm.DB) *PipelineRepository {
	return &PipelineRepository{DB: db}
}

func (r *PipelineRepository) Create(p *model.Pipeline) error {
	return r.DB.Create(p).Error
}

func (r *PipelineRepository) FindByID(id uint) (*model.Pipeline, error) {
	var p model.Pipeline
	err := r.DB.First(&p, id).Error
	return &p, err
}

func (r *PipelineRepository) List() ([]model.Pipeline, error) {
	var ps []model.Pipeline
	err := r.DB.Order("created_at ASC").Find(&ps).Error
	return ps, err
}

func (r *PipelineRepository) Update(p *model.Pipeline) error {
	return r.DB.Save(p).Error
}

func (r *PipelineRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pipeline_id = ?", id).Delete(&model.UserPipelineProgress{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Pipeline{}, id).Error
	})
}

func (r *PipelineRepository) FindProgress(userID, pipelineID uint) (*model.UserPipelineProgress, error) {
	var p model.UserPipelineProgress
	err := r.DB.Where("user_id = ? AND pipeline_id = ?", userID, pipelineID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertProgress writes the stage flags for (user, pipeline), creating
// the row on first write.
func (r *PipelineRepository) UpsertProgress(p *model.UserPipelineProgress) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "pipeline_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed_stages", "updated_at"}),
	}).Create(p).Error
}
