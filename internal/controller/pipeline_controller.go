package controller

import (
	"errors"
	"exam_portal_backend/internal/service"
	"exam_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PipelineController struct {
	PipelineService *service.PipelineService
}

func NewPipelineController(pipelineService *service.PipelineService) *PipelineController {
	return &PipelineController{PipelineService: pipelineService}
}

// CreatePipeline godoc
// @Summary Create a pipeline
// @Description Creates an ordered list of onboarding stages for students to work through
// @Tags pipelines
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.PipelineReq true "Pipeline details"
// @Success 201 {object} util.Response{data=model.Pipeline} "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Router /api/admin/pipelines [post]
func (c *PipelineController) CreatePipeline(ctx *gin.Context) {
	var req service.PipelineReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	pipeline, err := c.PipelineService.Create(req, claims.UserID)
	if err != nil {
		if util.IsValidationError(err) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, pipeline)
}

// ListPipelines godoc
// @Summary List pipelines
// @Tags pipelines
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Pipeline} "Success"
// @Router /api/admin/pipelines [get]
func (c *PipelineController) ListPipelines(ctx *gin.Context) {
	pipelines, err := c.PipelineService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, pipelines)
}

// UpdatePipeline godoc
// @Summary Update a pipeline
// @Tags pipelines
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Pipeline ID"
// @Param   body body service.PipelineReq true "Pipeline details"
// @Success 200 {object} util.Response{data=model.Pipeline} "Success"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/admin/pipelines/{id} [put]
func (c *PipelineController) UpdatePipeline(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	var req service.PipelineReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	pipeline, err := c.PipelineService.Update(id, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPipelineNotFound):
			util.NotFound(ctx, err.Error())
		case util.IsValidationError(err):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, pipeline)
}

// DeletePipeline godoc
// @Summary Delete a pipeline
// @Description Removes the pipeline together with all recorded progress
// @Tags pipelines
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Pipeline ID"
// @Success 200 {object} util.Response "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/admin/pipelines/{id} [delete]
func (c *PipelineController) DeletePipeline(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.PipelineService.Delete(id); err != nil {
		if errors.Is(err, util.ErrPipelineNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

// MyProgress godoc
// @Summary My pipeline progress
// @Description Active pipelines with the authenticated student's stage completion flags
// @Tags pipelines
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.PipelineWithProgress} "Success"
// @Router /api/my/pipelines [get]
func (c *PipelineController) MyProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.PipelineService.MyProgress(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}

// UpdateMyProgress godoc
// @Summary Update my pipeline progress
// @Description Replaces the stage completion flags for one pipeline
// @Tags pipelines
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Pipeline ID"
// @Param   body body service.ProgressReq true "Completion flags, one per stage"
// @Success 200 {object} util.Response{data=model.UserPipelineProgress} "Success"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/my/pipelines/{id}/progress [put]
func (c *PipelineController) UpdateMyProgress(ctx *gin.Context) {
	id, ok := uintParam(ctx, "id")
	if !ok {
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ProgressReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.PipelineService.UpdateProgress(claims.UserID, id, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPipelineNotFound):
			util.NotFound(ctx, err.Error())
		case util.IsValidationError(err):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, progress)
}
