package handlers

import (
	"microcourses/helper"
	"microcourses/models"
	"microcourses/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService    services.AuthService
	creatorService services.CreatorService
	Helper         *helper.HTTPHelper
}

func NewAuthHandler(authService services.AuthService, creatorService services.CreatorService, h *helper.HTTPHelper) *AuthHandler {
	return &AuthHandler{authService: authService, creatorService: creatorService, Helper: h}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}

	response, err := h.authService.Register(req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, response)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}

	response, err := h.authService.Login(req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, response)
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := helper.CurrentUser(c)
	if !ok {
		h.Helper.SendUnauthorizedError(c, "User not found in context")
		return
	}

	h.Helper.SendSuccess(c, user)
}

func (h *AuthHandler) ApplyCreator(c *gin.Context) {
	user, _ := helper.CurrentUser(c)

	var req models.CreatorApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Please provide experience and motivation")
		return
	}

	if err := h.creatorService.Apply(user, req); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendMessage(c, "Creator application submitted successfully")
}
