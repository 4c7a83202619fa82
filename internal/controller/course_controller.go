package controller

import (
	"encoding/json"
	"strconv"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// CreateCourseRequest is the JSON part of the multipart create request. PDF
// modules name the multipart field carrying their document via fileKey.
// swagger:model CreateCourseRequest
type CreateCourseRequest struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description"`
	Status      model.CourseStatus  `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	Modules     []CreateModuleInput `json:"modules" binding:"dive"`
}

type CreateModuleInput struct {
	Title       string            `json:"title" binding:"required"`
	Order       int               `json:"order"`
	ContentType model.ContentType `json:"contentType" binding:"required,oneof=VIDEO PDF WEBLINK"`
	URL         string            `json:"url"`
	Duration    int               `json:"duration"`
	PageCount   int               `json:"pageCount"`
	FileKey     string            `json:"fileKey"`
}

// swagger:model ModuleOrderRequest
type ModuleOrderRequest struct {
	CourseID  uint   `json:"courseId" binding:"required"`
	ModuleIDs []uint `json:"moduleIds" binding:"required,min=1"`
}

// Create godoc
// @Summary Create a course with its modules
// @Description Multipart request: a "course" JSON field plus up to 5 PDF attachments referenced by fileKey
// @Tags course
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param course formData string true "Course JSON"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response "PDF file is required"
// @Router /course/create [post]
func (c *CourseController) Create(ctx *gin.Context) {
	tutor := util.GetUserFromContext(ctx)
	if tutor == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateCourseRequest
	if err := json.Unmarshal([]byte(ctx.PostForm("course")), &req); err != nil {
		util.ValidationError(ctx, "Invalid course payload: "+err.Error())
		return
	}
	if req.Title == "" {
		util.ValidationError(ctx, "Title is required")
		return
	}

	input := service.CreateCourseInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}
	for _, m := range req.Modules {
		moduleInput := service.ModuleInput{
			Title:       m.Title,
			Order:       m.Order,
			ContentType: m.ContentType,
			URL:         m.URL,
			Duration:    m.Duration,
			PageCount:   m.PageCount,
		}
		if m.ContentType == model.ContentPDF && m.FileKey != "" {
			file, err := ctx.FormFile(m.FileKey)
			if err != nil {
				util.HandleServiceError(ctx, util.ErrPDFFileRequired)
				return
			}
			moduleInput.File = file
		}
		input.Modules = append(input.Modules, moduleInput)
	}

	course, err := c.CourseService.CreateCourse(ctx.Request.Context(), tutor, input)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Created(ctx, course, "Course created successfully")
}

// List godoc
// @Summary List all courses
// @Tags course
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /course [get]
func (c *CourseController) List(ctx *gin.Context) {
	courses, err := c.CourseService.ListCourses()
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, courses, "Courses fetched successfully")
}

// ListByTutor godoc
// @Summary List the calling tutor's courses
// @Tags course
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /course/tutor [get]
func (c *CourseController) ListByTutor(ctx *gin.Context) {
	tutor := util.GetUserFromContext(ctx)
	if tutor == nil {
		util.Unauthorized(ctx)
		return
	}

	courses, err := c.CourseService.ListByTutor(tutor.ID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, courses, "Courses fetched successfully")
}

// Get godoc
// @Summary Fetch a course with ordered modules and content
// @Tags course
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response "Course not found"
// @Router /course/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid course id")
		return
	}

	course, err := c.CourseService.FetchCourse(ctx.Request.Context(), uint(id))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, course, "Course fetched successfully")
}

// Update godoc
// @Summary Update course title, description or status
// @Tags course
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 403 {object} util.Response
// @Router /course/update/{id} [patch]
func (c *CourseController) Update(ctx *gin.Context) {
	caller := util.GetUserFromContext(ctx)
	if caller == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid course id")
		return
	}

	var req struct {
		Title       *string             `json:"title"`
		Description *string             `json:"description"`
		Status      *model.CourseStatus `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ValidationError(ctx, err.Error())
		return
	}

	course, err := c.CourseService.UpdateCourse(ctx.Request.Context(), caller, uint(id), service.CourseUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, course, "Course updated successfully")
}

// UpdateModule godoc
// @Summary Update a module, optionally switching its content type
// @Description Multipart request; a content type switch replaces the content record atomically
// @Tags course
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Module ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response "Module not found"
// @Router /course/update-module/{id} [put]
func (c *CourseController) UpdateModule(ctx *gin.Context) {
	caller := util.GetUserFromContext(ctx)
	if caller == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid module id")
		return
	}

	input := service.UpdateModuleInput{
		ContentType: model.ContentType(ctx.PostForm("contentType")),
		URL:         ctx.PostForm("url"),
	}
	if title := ctx.PostForm("title"); title != "" {
		input.Title = &title
	}
	if raw := ctx.PostForm("order"); raw != "" {
		order, err := strconv.Atoi(raw)
		if err != nil {
			util.ValidationError(ctx, "Invalid order value")
			return
		}
		input.Order = &order
	}
	if raw := ctx.PostForm("duration"); raw != "" {
		if input.Duration, err = strconv.Atoi(raw); err != nil {
			util.ValidationError(ctx, "Invalid duration value")
			return
		}
	}
	if raw := ctx.PostForm("pageCount"); raw != "" {
		if input.PageCount, err = strconv.Atoi(raw); err != nil {
			util.ValidationError(ctx, "Invalid pageCount value")
			return
		}
	}
	if file, err := ctx.FormFile("file"); err == nil {
		input.File = file
	}

	course, err := c.CourseService.UpdateModule(ctx.Request.Context(), caller, uint(id), input)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, course, "Module updated successfully")
}

// ReorderModules godoc
// @Summary Apply a new ordering for a course's modules
// @Tags course
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ModuleOrderRequest true "Full module id list in the desired order"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /course/module-order [patch]
func (c *CourseController) ReorderModules(ctx *gin.Context) {
	caller := util.GetUserFromContext(ctx)
	if caller == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ModuleOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ValidationError(ctx, err.Error())
		return
	}

	if err := c.CourseService.ReorderModules(ctx.Request.Context(), caller, req.CourseID, req.ModuleIDs); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	course, err := c.CourseService.FetchCourse(ctx.Request.Context(), req.CourseID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, course, "Module order updated")
}

// DeleteModule godoc
// @Summary Delete a module and re-sequence the rest
// @Tags course
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Module ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "Module not found"
// @Router /course/delete-module/{id} [delete]
func (c *CourseController) DeleteModule(ctx *gin.Context) {
	caller := util.GetUserFromContext(ctx)
	if caller == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid module id")
		return
	}

	if err := c.CourseService.DeleteModule(ctx.Request.Context(), caller, uint(id)); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil, "Module deleted successfully")
}

// Delete godoc
// @Summary Delete a course with all its modules and enrollments
// @Tags course
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /course/delete/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	caller := util.GetUserFromContext(ctx)
	if caller == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid course id")
		return
	}

	if err := c.CourseService.DeleteCourse(ctx.Request.Context(), caller, uint(id)); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil, "Course deleted successfully")
}

// UploadVideo godoc
// @Summary Upload a video file for a later VIDEO module
// @Tags course
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param video formData file true "Video file"
// @Success 201 {object} util.Response{data=service.VideoUploadResult}
// @Router /course/upload-video [post]
func (c *CourseController) UploadVideo(ctx *gin.Context) {
	file, err := ctx.FormFile("video")
	if err != nil {
		util.ValidationError(ctx, "Video file is required")
		return
	}

	result, err := c.CourseService.UploadVideo(ctx.Request.Context(), file)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, result, "Video uploaded successfully")
}
