package controller

import (
	"strconv"

	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

// swagger:model AddLearnersRequest
type AddLearnersRequest struct {
	CourseID   uint   `json:"courseId" binding:"required"`
	LearnerIDs []uint `json:"learnerIds" binding:"required,min=1"`
}

// swagger:model DeleteEnrollmentRequest
type DeleteEnrollmentRequest struct {
	EnrollmentID uint `json:"enrollmentId" binding:"required"`
}

// AddLearners godoc
// @Summary Bulk-enroll learners into a course
// @Description Learners already enrolled are skipped; each learner needs an active collaboration with the course's tutor
// @Tags enrollment
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body AddLearnersRequest true "Course and learner ids"
// @Success 201 {object} util.Response{data=object}
// @Failure 403 {object} util.Response "No active collaboration"
// @Router /enrollment/add-learners [post]
func (c *EnrollmentController) AddLearners(ctx *gin.Context) {
	caller := util.GetUserFromContext(ctx)
	if caller == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AddLearnersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ValidationError(ctx, err.Error())
		return
	}

	enrolled, err := c.EnrollmentService.AddLearners(caller, req.CourseID, req.LearnerIDs)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"enrolledCount": enrolled}, "Learners enrolled successfully")
}

// ListAssignableLearners godoc
// @Summary List learners eligible for enrollment into a course
// @Tags enrollment
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /enrollment/unenrolled-learners/{courseId} [get]
func (c *EnrollmentController) ListAssignableLearners(ctx *gin.Context) {
	caller := util.GetUserFromContext(ctx)
	if caller == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, err := strconv.ParseUint(ctx.Param("courseId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid course id")
		return
	}

	learners, err := c.EnrollmentService.ListAssignableLearners(caller, uint(courseID))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, learners, "Assignable learners fetched successfully")
}

// ListEnrolledLearners godoc
// @Summary List learners enrolled in a course
// @Tags enrollment
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} util.Response{data=[]model.User}
// @Router /enrollment/enrolled-learners/{courseId} [get]
func (c *EnrollmentController) ListEnrolledLearners(ctx *gin.Context) {
	caller := util.GetUserFromContext(ctx)
	if caller == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, err := strconv.ParseUint(ctx.Param("courseId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "Invalid course id")
		return
	}

	learners, err := c.EnrollmentService.ListEnrolledLearners(caller, uint(courseID))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, learners, "Enrolled learners fetched successfully")
}

// Delete godoc
// @Summary Remove an enrollment
// @Tags enrollment
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body DeleteEnrollmentRequest true "Enrollment id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "Enrollment not found"
// @Router /enrollment/delete [delete]
func (c *EnrollmentController) Delete(ctx *gin.Context) {
	caller := util.GetUserFromContext(ctx)
	if caller == nil {
		util.Unauthorized(ctx)
		return
	}

	var req DeleteEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ValidationError(ctx, err.Error())
		return
	}

	if err := c.EnrollmentService.Delete(caller, req.EnrollmentID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil, "Enrollment deleted successfully")
}

// ListLearnerCourses godoc
// @Summary List the calling learner's enrolled courses
// @Tags enrollment
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.LearnerCourse}
// @Router /enrollment/learner-courses [get]
func (c *EnrollmentController) ListLearnerCourses(ctx *gin.Context) {
	learner := util.GetUserFromContext(ctx)
	if learner == nil {
		util.Unauthorized(ctx)
		return
	}

	courses, err := c.EnrollmentService.ListLearnerCourses(learner.ID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, courses, "Courses fetched successfully")
}
