package controller

import (
	"strconv"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// swagger:model UpdatePasswordRequest
type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// swagger:model UpdateInfoRequest
type UpdateInfoRequest struct {
	Name        *string `json:"name"`
	LastName    *string `json:"lastName"`
	Email       *string `json:"email" binding:"omitempty,email"`
	CompanyName *string `json:"companyName"`
}

// swagger:model AddLearnerRequest
type AddLearnerRequest struct {
	Name        string `json:"name" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	CompanyName string `json:"companyName"`
}

// Me godoc
// @Summary Current user profile
// @Tags user
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User}
// @Router /user/me [get]
func (c *UserController) Me(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, user, "User profile")
}

// UpdatePassword godoc
// @Summary Change own password
// @Description An inactive learner becomes active after changing the temporary password
// @Tags user
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body UpdatePasswordRequest true "Old and new password"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response "Old password is incorrect"
// @Router /user/update-password [put]
func (c *UserController) UpdatePassword(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdatePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ValidationError(ctx, err.Error())
		return
	}

	emailSent, err := c.UserService.UpdatePassword(user, req.OldPassword, req.NewPassword)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"emailSent": emailSent}, "Password updated successfully")
}

// UpdateInfo godoc
// @Summary Update own profile fields
// @Tags user
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body UpdateInfoRequest true "Fields to change"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response "No valid fields to update"
// @Failure 409 {object} util.Response "Email already in use"
// @Router /user/update-info [patch]
func (c *UserController) UpdateInfo(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateInfoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ValidationError(ctx, err.Error())
		return
	}

	updated, emailSent, err := c.UserService.UpdateInfo(user, service.UpdateInfoInput{
		Name:        req.Name,
		LastName:    req.LastName,
		Email:       req.Email,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"user": updated, "emailSent": emailSent}, "User info updated successfully")
}

// ToggleSuspension godoc
// @Summary Suspend or unsuspend a user
// @Tags user
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response "Admins cannot suspend themselves"
// @Failure 404 {object} util.Response "User not found"
// @Router /user/suspended/{id} [patch]
func (c *UserController) ToggleSuspension(ctx *gin.Context) {
	caller := util.GetUserFromContext(ctx)
	if caller == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid user id")
		return
	}

	target, err := c.UserService.ToggleSuspension(caller, uint(id))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, target, "User status updated")
}

// ListAll godoc
// @Summary List tutors and learners
// @Tags user
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /user/all [get]
func (c *UserController) ListAll(ctx *gin.Context) {
	users, err := c.UserService.ListAll()
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, users, "Users fetched successfully")
}

// AddLearner godoc
// @Summary Create a learner with a temporary password
// @Description The learner and its collaboration with the calling tutor are created together
// @Tags user
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body AddLearnerRequest true "Learner details"
// @Success 201 {object} util.Response{data=object}
// @Failure 409 {object} util.Response "Email already in use"
// @Router /user/tutor/add-learner [post]
func (c *UserController) AddLearner(ctx *gin.Context) {
	tutor := util.GetUserFromContext(ctx)
	if tutor == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AddLearnerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ValidationError(ctx, err.Error())
		return
	}

	learner := &model.User{
		Name:        req.Name,
		LastName:    req.LastName,
		Email:       req.Email,
		CompanyName: req.CompanyName,
	}

	created, emailSent, err := c.UserService.AddLearner(tutor, learner)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"learner": created, "emailSent": emailSent}, "Learner created successfully")
}

// Delete godoc
// @Summary Delete a user account
// @Tags user
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response "User not found"
// @Router /user/delete/{id} [delete]
func (c *UserController) Delete(ctx *gin.Context) {
	caller := util.GetUserFromContext(ctx)
	if caller == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid user id")
		return
	}

	if err := c.UserService.Delete(caller, uint(id)); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, nil, "User deleted successfully")
}
