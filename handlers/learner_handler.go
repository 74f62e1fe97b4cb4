package handlers

import (
	"microcourses/helper"
	"microcourses/models"
	"microcourses/services"

	"github.com/gin-gonic/gin"
)

type LearnerHandler struct {
	courseService     services.CourseService
	enrollmentService services.EnrollmentService
	Helper            *helper.HTTPHelper
}

func NewLearnerHandler(courseService services.CourseService, enrollmentService services.EnrollmentService, h *helper.HTTPHelper) *LearnerHandler {
	return &LearnerHandler{courseService: courseService, enrollmentService: enrollmentService, Helper: h}
}

func (h *LearnerHandler) GetCatalog(c *gin.Context) {
	courses, err := h.courseService.ListPublished()
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, courses)
}

func (h *LearnerHandler) Enroll(c *gin.Context) {
	user, _ := helper.CurrentUser(c)
	courseID, ok := helper.ParamID(c, "id")
	if !ok {
		h.Helper.SendNotFoundError(c, "Course not found")
		return
	}

	enrollment, err := h.enrollmentService.Enroll(user, courseID)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendCreated(c, enrollment)
}

func (h *LearnerHandler) GetProgress(c *gin.Context) {
	user, _ := helper.CurrentUser(c)

	enrollments, err := h.enrollmentService.GetProgress(user)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, enrollments)
}

func (h *LearnerHandler) CompleteLesson(c *gin.Context) {
	user, _ := helper.CurrentUser(c)
	courseID, okCourse := helper.ParamID(c, "id")
	lessonID, okLesson := helper.ParamID(c, "lid")
	if !okCourse || !okLesson {
		h.Helper.SendNotFoundError(c, "Lesson not found in this course")
		return
	}

	enrollment, err := h.enrollmentService.CompleteLesson(user, courseID, lessonID)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, enrollment)
}

func (h *LearnerHandler) GetCertificate(c *gin.Context) {
	user, _ := helper.CurrentUser(c)
	courseID, ok := helper.ParamID(c, "id")
	if !ok {
		h.Helper.SendNotFoundError(c, "Enrollment not found for this course")
		return
	}

	enrollment, err := h.enrollmentService.IssueCertificate(user, courseID)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, models.CertificateResponse{
		Msg:             "Certificate issued",
		CertificateHash: enrollment.CertificateHash,
		CompletedAt:     enrollment.CompletedAt,
	})
}
