package service

import (
	"exam_portal_backend/internal/repository"
	"exam_portal_backend/internal/util"
	"testing"

	"gorm.io/gorm"
)

func newPipelineService(db *gorm.DB) *PipelineService {
	return NewPipelineService(repository.NewPipelineRepository(db))
}

func TestPipelineStageValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newPipelineService(db)

	tests := []struct {
		name   string
		stages []string
	}{
		{"no stages", nil},
		{"too many stages", make([]string, 11)},
		{"blank stage name", []string{"Orientation", "  "}},
	}
	for i := range tests[1].stages {
		tests[1].stages[i] = "stage"
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(PipelineReq{Name: "Onboarding", Stages: tt.stages}, 1)
			if !util.IsValidationError(err) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}

func TestPipelineProgressRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := newPipelineService(db)

	pipeline, err := svc.Create(PipelineReq{
		Name:   "Onboarding",
		Stages: []string{"Orientation", "Placement test", "First exam"},
	}, 1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Before any update, progress is all false.
	progress, err := svc.MyProgress(42)
	if err != nil {
		t.Fatalf("my progress: %v", err)
	}
	if len(progress) != 1 || len(progress[0].CompletedStages) != 3 {
		t.Fatalf("progress = %+v, want one pipeline with 3 flags", progress)
	}
	for i, done := range progress[0].CompletedStages {
		if done {
			t.Errorf("stage %d completed before any update", i)
		}
	}

	// Flag count must match the stage count.
	_, err = svc.UpdateProgress(42, pipeline.ID, ProgressReq{CompletedStages: []bool{true}})
	if !util.IsValidationError(err) {
		t.Fatalf("short flags: err = %v, want validation error", err)
	}

	if _, err := svc.UpdateProgress(42, pipeline.ID, ProgressReq{CompletedStages: []bool{true, true, false}}); err != nil {
		t.Fatalf("update progress: %v", err)
	}

	// Updating again overwrites rather than duplicating.
	if _, err := svc.UpdateProgress(42, pipeline.ID, ProgressReq{CompletedStages: []bool{true, true, true}}); err != nil {
		t.Fatalf("second update: %v", err)
	}

	progress, err = svc.MyProgress(42)
	if err != nil {
		t.Fatalf("my progress: %v", err)
	}
	for i, done := range progress[0].CompletedStages {
		if !done {
			t.Errorf("stage %d not completed after update", i)
		}
	}
}
