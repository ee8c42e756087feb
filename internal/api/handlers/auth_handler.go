package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mellah-kais/cnam-server/internal/services"
	"github.com/mellah-kais/cnam-server/internal/utils"
)

type AuthHandler struct {
	svc services.AuthService
}

func NewAuthHandler(svc services.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type SignupRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email" binding:"required"`
	Password       string `json:"password" binding:"required"`
	CNAMIdentifier string `json:"cnamIdentifier"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthResponse struct {
	Token string   `json:"token"`
	User  authUser `json:"user"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AuthHandler.Signup", "invalid request body", err))
		return
	}

	user, token, err := h.svc.Signup(c.Request.Context(), req.Name, req.Email, req.Password, req.CNAMIdentifier)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token: token,
		User:  authUser{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AuthHandler.Login", "invalid request body", err))
		return
	}

	user, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token: token,
		User:  authUser{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}
