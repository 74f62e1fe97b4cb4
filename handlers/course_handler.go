package handlers

import (
	"microcourses/helper"
	"microcourses/models"
	"microcourses/services"

	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	courseService services.CourseService
	lessonService services.LessonService
	Helper        *helper.HTTPHelper
}

func NewCourseHandler(courseService services.CourseService, lessonService services.LessonService, h *helper.HTTPHelper) *CourseHandler {
	return &CourseHandler{courseService: courseService, lessonService: lessonService, Helper: h}
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	user, _ := helper.CurrentUser(c)

	var req models.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}

	course, err := h.courseService.CreateCourse(user, req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendCreated(c, course)
}

func (h *CourseHandler) GetCreatorCourses(c *gin.Context) {
	user, _ := helper.CurrentUser(c)

	courses, err := h.courseService.ListCreatorCourses(user)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, courses)
}

func (h *CourseHandler) GetCourse(c *gin.Context) {
	user, _ := helper.CurrentUser(c)
	id, ok := h.courseID(c)
	if !ok {
		return
	}

	course, err := h.courseService.GetCourse(id, user)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, course)
}

func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	user, _ := helper.CurrentUser(c)
	id, ok := h.courseID(c)
	if !ok {
		return
	}

	var req models.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}

	course, err := h.courseService.UpdateCourse(id, user, req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, course)
}

func (h *CourseHandler) SubmitCourse(c *gin.Context) {
	user, _ := helper.CurrentUser(c)
	id, ok := h.courseID(c)
	if !ok {
		return
	}

	course, err := h.courseService.SubmitCourse(id, user)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, course)
}

func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	user, _ := helper.CurrentUser(c)
	id, ok := h.courseID(c)
	if !ok {
		return
	}

	if err := h.courseService.DeleteCourse(id, user); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendMessage(c, "Course removed")
}

func (h *CourseHandler) AddLesson(c *gin.Context) {
	user, _ := helper.CurrentUser(c)
	courseID, ok := h.courseID(c)
	if !ok {
		return
	}

	var req models.CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}

	lesson, err := h.lessonService.AddLesson(courseID, user, req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendCreated(c, lesson)
}

func (h *CourseHandler) GetLessons(c *gin.Context) {
	user, _ := helper.CurrentUser(c)
	courseID, ok := h.courseID(c)
	if !ok {
		return
	}

	lessons, err := h.lessonService.ListLessons(courseID, user)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, lessons)
}

func (h *CourseHandler) GetLesson(c *gin.Context) {
	user, _ := helper.CurrentUser(c)
	courseID, lessonID, ok := h.lessonIDs(c)
	if !ok {
		return
	}

	lesson, err := h.lessonService.GetLesson(courseID, lessonID, user)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, lesson)
}

func (h *CourseHandler) UpdateLesson(c *gin.Context) {
	user, _ := helper.CurrentUser(c)
	courseID, lessonID, ok := h.lessonIDs(c)
	if !ok {
		return
	}

	var req models.UpdateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}

	lesson, err := h.lessonService.UpdateLesson(courseID, lessonID, user, req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, lesson)
}

func (h *CourseHandler) DeleteLesson(c *gin.Context) {
	user, _ := helper.CurrentUser(c)
	courseID, lessonID, ok := h.lessonIDs(c)
	if !ok {
		return
	}

	if err := h.lessonService.DeleteLesson(courseID, lessonID, user); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendMessage(c, "Lesson removed")
}

func (h *CourseHandler) courseID(c *gin.Context) (uint, bool) {
	id, ok := helper.ParamID(c, "id")
	if !ok {
		h.Helper.SendNotFoundError(c, "Course not found")
	}
	return id, ok
}

func (h *CourseHandler) lessonIDs(c *gin.Context) (uint, uint, bool) {
	courseID, okCourse := helper.ParamID(c, "id")
	lessonID, okLesson := helper.ParamID(c, "lid")
	if !okCourse || !okLesson {
		h.Helper.SendNotFoundError(c, "Course or Lesson not found")
		return 0, 0, false
	}
	return courseID, lessonID, true
}
