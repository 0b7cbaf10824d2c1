package controller

import (
	"errors"
	"exam_portal_backend/internal/service"
	"exam_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// CreateQuestion godoc
// @Summary Add a question to an exam
// @Tags questions
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Exam ID"
// @Param   body body service.QuestionReq true "Question details"
// @Success 201 {object} util.Response{data=model.Question} "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 404 {object} util.Response "Exam not found"
// @Router /api/admin/exams/{id}/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	examID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.Create(ctx.Request.Context(), examID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExamNotFound):
			util.NotFound(ctx, err.Error())
		case util.IsValidationError(err):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, question)
}

// swagger:model BulkQuestionRequest
type BulkQuestionRequest struct {
	Questions []service.QuestionReq `json:"questions" binding:"required"`
}

// BulkCreateQuestions godoc
// @Summary Add several questions at once
// @Description Creates all questions in one transaction; any invalid entry rejects the whole batch
// @Tags questions
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Exam ID"
// @Param   body body BulkQuestionRequest true "Questions"
// @Success 201 {object} util.Response{data=[]model.Question} "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 404 {object} util.Response "Exam not found"
// @Router /api/admin/exams/{id}/questions/bulk [post]
func (c *QuestionController) BulkCreateQuestions(ctx *gin.Context) {
	examID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	var req BulkQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	questions, err := c.QuestionService.BulkCreate(ctx.Request.Context(), examID, req.Questions)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExamNotFound):
			util.NotFound(ctx, err.Error())
		case util.IsValidationError(err):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, questions)
}

// ListQuestions godoc
// @Summary List an exam's questions
// @Description Full question records including answer data, for administrators
// @Tags questions
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Exam ID"
// @Success 200 {object} util.Response{data=[]model.Question} "Success"
// @Failure 404 {object} util.Response "Exam not found"
// @Router /api/admin/exams/{id}/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	examID, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	questions, err := c.QuestionService.ListByExam(examID)
	if err != nil {
		if errors.Is(err, util.ErrExamNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, questions)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Tags questions
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Question ID"
// @Param   body body service.QuestionReq true "Question details"
// @Success 200 {object} util.Response{data=model.Question} "Success"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/admin/questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.Update(ctx.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(ctx, err.Error())
		case util.IsValidationError(err):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, question)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags questions
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Question ID"
// @Success 200 {object} util.Response "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/admin/questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.QuestionService.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}
