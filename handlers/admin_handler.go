package handlers

import (
	"microcourses/helper"
	"microcourses/models"
	"microcourses/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	courseService  services.CourseService
	creatorService services.CreatorService
	Helper         *helper.HTTPHelper
}

func NewAdminHandler(courseService services.CourseService, creatorService services.CreatorService, h *helper.HTTPHelper) *AdminHandler {
	return &AdminHandler{courseService: courseService, creatorService: creatorService, Helper: h}
}

func (h *AdminHandler) GetReviewCourses(c *gin.Context) {
	courses, err := h.courseService.ListPendingReview()
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, courses)
}

func (h *AdminHandler) UpdateCourseStatus(c *gin.Context) {
	id, ok := helper.ParamID(c, "id")
	if !ok {
		h.Helper.SendNotFoundError(c, "Course not found")
		return
	}

	var req models.CourseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Invalid status for admin update")
		return
	}

	course, err := h.courseService.SetCourseStatus(id, req.Status)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, course)
}

func (h *AdminHandler) GetPendingCreators(c *gin.Context) {
	users, err := h.creatorService.ListPending()
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, users)
}

func (h *AdminHandler) UpdateCreatorStatus(c *gin.Context) {
	id, ok := helper.ParamID(c, "id")
	if !ok {
		h.Helper.SendNotFoundError(c, "User not found")
		return
	}

	var req models.ApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Invalid status")
		return
	}

	user, err := h.creatorService.SetApplicationStatus(id, req.Status)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, user)
}
