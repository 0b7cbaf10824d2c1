package service

import (
	"context"
	"errors"
	"exam_portal_backend/internal/model"
	"exam_portal_backend/internal/repository"
	"exam_portal_backend/internal/util"
	"strings"

	"gorm.io/gorm"
)

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	ExamRepo     *repository.ExamRepository
	SessionSvc   *ExamSessionService // for question cache invalidation
}

func NewQuestionService(questionRepo *repository.QuestionRepository, examRepo *repository.ExamRepository, sessionSvc *ExamSessionService) *QuestionService {
	return &QuestionService{
		QuestionRepo: questionRepo,
		ExamRepo:     examRepo,
		SessionSvc:   sessionSvc,
	}
}

type QuestionReq struct {
	QuestionText  string `json:"questionText" binding:"required"`
	OptionA       string `json:"optionA" binding:"required"`
	OptionB       string `json:"optionB" binding:"required"`
	OptionC       string `json:"optionC" binding:"required"`
	OptionD       string `json:"optionD" binding:"required"`
	CorrectOption string `json:"correctOption" binding:"required"`
	Points        int    `json:"points"`
	Explanation   string `json:"explanation"`
}

func (req *QuestionReq) validate() error {
	req.CorrectOption = strings.ToUpper(strings.TrimSpace(req.CorrectOption))
	if !model.IsValidOption(req.CorrectOption) {
		return util.NewValidationError("correctOption must be A, B, C, or D")
	}
	if req.Points == 0 {
		req.Points = 1
	}
	if req.Points < 1 {
		return util.NewValidationError("points must be a positive integer")
	}
	return nil
}

func (req *QuestionReq) toModel(examID uint) model.Question {
	return model.Question{
		ExamID:        examID,
		QuestionText:  req.QuestionText,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectOption: req.CorrectOption,
		Points:        req.Points,
		Explanation:   req.Explanation,
	}
}

func (s *QuestionService) Create(ctx context.Context, examID uint, req QuestionReq) (*model.Question, error) {
	if _, err := s.examOrNotFound(examID); err != nil {
		return nil, err
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	q := req.toModel(examID)
	if err := s.QuestionRepo.Create(&q); err != nil {
		return nil, err
	}

	s.SessionSvc.InvalidateQuestions(ctx, examID)
	return &q, nil
}

func (s *QuestionService) BulkCreate(ctx context.Context, examID uint, reqs []QuestionReq) ([]model.Question, error) {
	if _, err := s.examOrNotFound(examID); err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return nil, util.NewValidationError("questions must not be empty")
	}

	questions := make([]model.Question, 0, len(reqs))
	for i := range reqs {
		if err := reqs[i].validate(); err != nil {
			return nil, err
		}
		questions = append(questions, reqs[i].toModel(examID))
	}

	if err := s.QuestionRepo.BulkCreate(questions); err != nil {
		return nil, err
	}

	s.SessionSvc.InvalidateQuestions(ctx, examID)
	return questions, nil
}

func (s *QuestionService) Get(id uint) (*model.Question, error) {
	q, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) ListByExam(examID uint) ([]model.Question, error) {
	if _, err := s.examOrNotFound(examID); err != nil {
		return nil, err
	}
	return s.QuestionRepo.ListByExam(examID)
}

func (s *QuestionService) Update(ctx context.Context, id uint, req QuestionReq) (*model.Question, error) {
	q, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	q.QuestionText = req.QuestionText
	q.OptionA = req.OptionA
	q.OptionB = req.OptionB
	q.OptionC = req.OptionC
	q.OptionD = req.OptionD
	q.CorrectOption = req.CorrectOption
	q.Points = req.Points
	q.Explanation = req.Explanation

	if err := s.QuestionRepo.Update(q); err != nil {
		return nil, err
	}

	s.SessionSvc.InvalidateQuestions(ctx, q.ExamID)
	return q, nil
}

func (s *QuestionService) Delete(ctx context.Context, id uint) error {
	q, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.QuestionRepo.Delete(id); err != nil {
		return err
	}

	s.SessionSvc.InvalidateQuestions(ctx, q.ExamID)
	return nil
}

func (s *QuestionService) examOrNotFound(examID uint) (*model.Exam, error) {
	exam, err := s.ExamRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	return exam, nil
}
