package handlers

import (
	"microcourses/helper"
	"microcourses/models"
	"microcourses/services"

	"github.com/gin-gonic/gin"
)

type TranscriptHandler struct {
	transcriptService services.TranscriptService
	Helper            *helper.HTTPHelper
}

func NewTranscriptHandler(transcriptService services.TranscriptService, h *helper.HTTPHelper) *TranscriptHandler {
	return &TranscriptHandler{transcriptService: transcriptService, Helper: h}
}

func (h *TranscriptHandler) Generate(c *gin.Context) {
	user, _ := helper.CurrentUser(c)
	lessonID, ok := helper.ParamID(c, "lessonId")
	if !ok {
		h.Helper.SendNotFoundError(c, "Lesson not found")
		return
	}

	lesson, err := h.transcriptService.Generate(c.Request.Context(), lessonID, user)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, models.TranscriptResponse{
		Msg:        "Transcript generated successfully",
		Transcript: lesson.Transcript,
	})
}
