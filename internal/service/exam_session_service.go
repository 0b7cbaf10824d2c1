package service

import (
	"context"
	"encoding/json"
	"errors"
	"exam_portal_backend/internal/model"
	"exam_portal_backend/internal/repository"
	"exam_portal_backend/internal/util"
	"exam_portal_backend/pkg/logger"
	"exam_portal_backend/pkg/monitoring"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const questionCacheTTL = 10 * time.Minute

// ExamSessionService owns the attempt workflow: issuing a session
// (sanitized question set) and grading the submission. At most one
// completed attempt exists per (user, exam); the result store's unique
// index settles races between concurrent submissions.
type ExamSessionService struct {
	ExamRepo       *repository.ExamRepository
	QuestionRepo   *repository.QuestionRepository
	AssignmentRepo *repository.AssignmentRepository
	ResultRepo     *repository.ResultRepository
	Redis          *redis.Client // optional question cache, may be nil
}

func NewExamSessionService(
	examRepo *repository.ExamRepository,
	questionRepo *repository.QuestionRepository,
	assignmentRepo *repository.AssignmentRepository,
	resultRepo *repository.ResultRepository,
	rdb *redis.Client,
) *ExamSessionService {
	return &ExamSessionService{
		ExamRepo:       examRepo,
		QuestionRepo:   questionRepo,
		AssignmentRepo: assignmentRepo,
		ResultRepo:     resultRepo,
		Redis:          rdb,
	}
}

// SessionQuestion is the student-facing view of a question. It must
// never carry the correct option or the explanation.
type SessionQuestion struct {
	ID           uint   `json:"id"`
	QuestionText string `json:"questionText"`
	OptionA      string `json:"optionA"`
	OptionB      string `json:"optionB"`
	OptionC      string `json:"optionC"`
	OptionD      string `json:"optionD"`
	Points       int    `json:"points"`
}

type SessionExam struct {
	ID             uint   `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Duration       int    `json:"duration"`
	Instructions   string `json:"instructions"`
	TotalQuestions int    `json:"totalQuestions"`
}

type SessionPayload struct {
	Exam      SessionExam       `json:"exam"`
	Questions []SessionQuestion `json:"questions"`
}

// StartSession validates eligibility and returns the exam's questions
// stripped of answer data, ordered by ascending question id. It has no
// side effects.
func (s *ExamSessionService) StartSession(ctx context.Context, userID, examID uint) (*SessionPayload, error) {
	if _, err := s.AssignmentRepo.FindByUserAndExam(userID, examID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotAssigned
		}
		return nil, err
	}

	exam, err := s.ExamRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotAssigned
		}
		return nil, err
	}
	if !exam.IsActive {
		return nil, util.ErrExamInactive
	}

	taken, err := s.ResultRepo.Exists(userID, examID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrAlreadyCompleted
	}

	questions, err := s.sessionQuestions(ctx, examID)
	if err != nil {
		return nil, err
	}

	return &SessionPayload{
		Exam: SessionExam{
			ID:             exam.ID,
			Title:          exam.Title,
			Description:    exam.Description,
			Duration:       exam.Duration,
			Instructions:   exam.Instructions,
			TotalQuestions: len(questions),
		},
		Questions: questions,
	}, nil
}

// sessionQuestions loads the sanitized question list, serving it from
// redis when possible. Only the sanitized form is ever cached.
func (s *ExamSessionService) sessionQuestions(ctx context.Context, examID uint) ([]SessionQuestion, error) {
	key := questionCacheKey(examID)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var questions []SessionQuestion
			if err := json.Unmarshal([]byte(cached), &questions); err == nil {
				return questions, nil
			}
		}
	}

	rows, err := s.QuestionRepo.ListByExam(examID)
	if err != nil {
		return nil, err
	}

	questions := make([]SessionQuestion, 0, len(rows))
	for _, q := range rows {
		questions = append(questions, SessionQuestion{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			OptionA:      q.OptionA,
			OptionB:      q.OptionB,
			OptionC:      q.OptionC,
			OptionD:      q.OptionD,
			Points:       q.Points,
		})
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(questions); err == nil {
			if err := s.Redis.Set(ctx, key, payload, questionCacheTTL).Err(); err != nil {
				logger.Log.Warn("question cache write failed", zap.Error(err))
			}
		}
	}

	return questions, nil
}

// InvalidateQuestions drops the cached question list for an exam. The
// question service calls this on every write.
func (s *ExamSessionService) InvalidateQuestions(ctx context.Context, examID uint) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, questionCacheKey(examID)).Err(); err != nil {
		logger.Log.Warn("question cache invalidation failed", zap.Error(err))
	}
}

func questionCacheKey(examID uint) string {
	return fmt.Sprintf("exam:%d:questions", examID)
}

type SubmitRequest struct {
	Answers   []SubmittedAnswer `json:"answers" binding:"required"`
	TimeTaken int               `json:"timeTaken"`
}

// Submit grades a submission and durably records the attempt. The
// assignment and single-attempt checks are repeated here because a
// submission may race session start or another submission; the unique
// index on exam_results is the final arbiter, and a duplicate-key error
// from the store is reported as an already-completed attempt.
func (s *ExamSessionService) Submit(ctx context.Context, userID, examID uint, req SubmitRequest) (*model.ExamResult, error) {
	if req.TimeTaken < 0 {
		return nil, util.NewValidationError("timeTaken must be a non-negative integer")
	}
	for _, a := range req.Answers {
		if a.SelectedOption != nil && !model.IsValidOption(*a.SelectedOption) {
			return nil, util.NewValidationError("selectedOption must be A, B, C, or D")
		}
	}

	if _, err := s.AssignmentRepo.FindByUserAndExam(userID, examID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotAssigned
		}
		return nil, err
	}

	taken, err := s.ResultRepo.Exists(userID, examID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrAlreadyCompleted
	}

	exam, err := s.ExamRepo.FindByID(examID)
	if err != nil {
		return nil, err
	}

	// The stored question set, not the submission, is the basis of the
	// grade: every question counts towards the total.
	questions, err := s.QuestionRepo.ListByExam(examID)
	if err != nil {
		return nil, err
	}

	summary := gradeAnswers(questions, req.Answers)

	isPassed := summary.Score >= float64(exam.PassingScore)
	status := model.StatusFailed
	if isPassed {
		status = model.StatusPassed
	}

	result := &model.ExamResult{
		UserID:         userID,
		ExamID:         examID,
		Score:          summary.Score,
		TotalQuestions: summary.TotalQuestions,
		CorrectAnswers: summary.CorrectAnswers,
		TotalPoints:    summary.TotalPoints,
		EarnedPoints:   summary.EarnedPoints,
		TimeTaken:      req.TimeTaken,
		SubmittedAt:    time.Now(),
		Status:         status,
		IsPassed:       isPassed,
	}

	responses := make([]model.ExamResponse, 0, len(summary.Graded))
	for _, g := range summary.Graded {
		responses = append(responses, model.ExamResponse{
			UserID:         userID,
			ExamID:         examID,
			QuestionID:     g.QuestionID,
			SelectedOption: g.SelectedOption,
			IsCorrect:      g.IsCorrect,
			PointsEarned:   g.PointsEarned,
		})
	}

	if err := s.ResultRepo.CreateWithResponses(result, responses); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against a concurrent submission.
			return nil, util.ErrAlreadyCompleted
		}
		return nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues(string(status)).Inc()
	logger.Log.Info("exam submitted",
		zap.Uint("userId", userID),
		zap.Uint("examId", examID),
		zap.Float64("score", summary.Score),
		zap.String("status", string(status)),
	)

	result.Exam = exam
	return result, nil
}
