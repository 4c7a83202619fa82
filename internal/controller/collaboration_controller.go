package controller

import (
	"strconv"

	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CollaborationController struct {
	CollaborationService *service.CollaborationService
}

func NewCollaborationController(collaborationService *service.CollaborationService) *CollaborationController {
	return &CollaborationController{CollaborationService: collaborationService}
}

// ListByTutor godoc
// @Summary List the calling tutor's learners
// @Tags collaboration
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Collaboration}
// @Router /collaboration/tutor [get]
func (c *CollaborationController) ListByTutor(ctx *gin.Context) {
	tutor := util.GetUserFromContext(ctx)
	if tutor == nil {
		util.Unauthorized(ctx)
		return
	}

	collaborations, err := c.CollaborationService.ListByTutor(tutor.ID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, collaborations, "Collaborations fetched successfully")
}

// ListForTutor godoc
// @Summary List a given tutor's learners
// @Tags collaboration
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Tutor ID"
// @Success 200 {object} util.Response{data=[]model.Collaboration}
// @Router /collaboration/tutor/{id} [get]
func (c *CollaborationController) ListForTutor(ctx *gin.Context) {
	tutorID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid tutor id")
		return
	}

	collaborations, err := c.CollaborationService.ListByTutor(uint(tutorID))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, collaborations, "Collaborations fetched successfully")
}

// ListAll godoc
// @Summary List every collaboration across tutors
// @Tags collaboration
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Collaboration}
// @Router /collaboration/all [get]
func (c *CollaborationController) ListAll(ctx *gin.Context) {
	collaborations, err := c.CollaborationService.ListAll()
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, collaborations, "Collaborations fetched successfully")
}

// ToggleStatus godoc
// @Summary Toggle a collaboration between ACTIVE and INACTIVE
// @Tags collaboration
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Collaboration ID"
// @Success 200 {object} util.Response{data=model.Collaboration}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response "Collaboration not found"
// @Router /collaboration/{id} [patch]
func (c *CollaborationController) ToggleStatus(ctx *gin.Context) {
	caller := util.GetUserFromContext(ctx)
	if caller == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid collaboration id")
		return
	}

	collaboration, err := c.CollaborationService.ToggleStatus(caller, uint(id))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, collaboration, "Collaboration status updated")
}

// Delete godoc
// @Summary Delete a collaboration
// @Tags collaboration
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Collaboration ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response "Collaboration not found"
// @Router /collaboration/delete/{id} [delete]
func (c *CollaborationController) Delete(ctx *gin.Context) {
	caller := util.GetUserFromContext(ctx)
	if caller == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid collaboration id")
		return
	}

	if err := c.CollaborationService.Delete(caller, uint(id)); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil, "Collaboration deleted successfully")
}
