package service

import (
	"errors"
	"exam_portal_backend/internal/model"
	"exam_portal_backend/internal/repository"
	"exam_portal_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type ResultService struct {
	ResultRepo     *repository.ResultRepository
	AssignmentRepo *repository.AssignmentRepository
	ExamRepo       *repository.ExamRepository
}

func NewResultService(resultRepo *repository.ResultRepository, assignmentRepo *repository.AssignmentRepository, examRepo *repository.ExamRepository) *ResultService {
	return &ResultService{
		ResultRepo:     resultRepo,
		AssignmentRepo: assignmentRepo,
		ExamRepo:       examRepo,
	}
}

// AssignedExam is one row of a student's exam list: the exam plus
// whether the student can still take it.
type AssignedExam struct {
	Exam       model.Exam `json:"exam"`
	AssignedAt time.Time  `json:"assignedAt"`
	Completed  bool       `json:"completed"`
	CanTake    bool       `json:"canTake"`
}

// MyExams lists the exams assigned to a student. An exam can be taken
// while it is active and the student has no recorded attempt.
func (s *ResultService) MyExams(userID uint) ([]AssignedExam, error) {
	assignments, err := s.AssignmentRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	exams := make([]AssignedExam, 0, len(assignments))
	for _, a := range assignments {
		if a.Exam == nil {
			continue
		}
		taken, err := s.ResultRepo.Exists(userID, a.ExamID)
		if err != nil {
			return nil, err
		}
		exams = append(exams, AssignedExam{
			Exam:       *a.Exam,
			AssignedAt: a.AssignedAt,
			Completed:  taken,
			CanTake:    a.Exam.IsActive && !taken,
		})
	}
	return exams, nil
}

func (s *ResultService) MyResults(userID uint) ([]model.ExamResult, error) {
	return s.ResultRepo.FindByUser(userID)
}

// ResponseDetail is one graded question as shown after completion. The
// correct option and explanation are revealed here and nowhere earlier.
type ResponseDetail struct {
	QuestionID     uint    `json:"questionId"`
	QuestionText   string  `json:"questionText"`
	OptionA        string  `json:"optionA"`
	OptionB        string  `json:"optionB"`
	OptionC        string  `json:"optionC"`
	OptionD        string  `json:"optionD"`
	SelectedOption *string `json:"selectedOption"`
	CorrectOption  string  `json:"correctOption"`
	IsCorrect      bool    `json:"isCorrect"`
	Points         int     `json:"points"`
	PointsEarned   int     `json:"pointsEarned"`
	Explanation    string  `json:"explanation"`
}

type ResultDetail struct {
	Result    model.ExamResult `json:"result"`
	Responses []ResponseDetail `json:"responses"`
}

// Detail returns one attempt with its full per-question breakdown.
func (s *ResultService) Detail(userID, examID uint) (*ResultDetail, error) {
	result, err := s.ResultRepo.FindByUserAndExam(userID, examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrResultNotFound
		}
		return nil, err
	}

	rows, err := s.ResultRepo.ListResponses(userID, examID)
	if err != nil {
		return nil, err
	}

	responses := make([]ResponseDetail, 0, len(rows))
	for _, r := range rows {
		if r.Question == nil {
			continue
		}
		responses = append(responses, ResponseDetail{
			QuestionID:     r.QuestionID,
			QuestionText:   r.Question.QuestionText,
			OptionA:        r.Question.OptionA,
			OptionB:        r.Question.OptionB,
			OptionC:        r.Question.OptionC,
			OptionD:        r.Question.OptionD,
			SelectedOption: r.SelectedOption,
			CorrectOption:  r.Question.CorrectOption,
			IsCorrect:      r.IsCorrect,
			Points:         r.Question.Points,
			PointsEarned:   r.PointsEarned,
			Explanation:    r.Question.Explanation,
		})
	}

	return &ResultDetail{Result: *result, Responses: responses}, nil
}

func (s *ResultService) List(page, limit int, examID, userID uint, status model.ResultStatus) ([]model.ExamResult, int64, error) {
	return s.ResultRepo.List(page, limit, examID, userID, status)
}

func (s *ResultService) ListByExam(examID uint) ([]model.ExamResult, error) {
	if _, err := s.ExamRepo.FindByID(examID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	return s.ResultRepo.FindByExam(examID)
}
