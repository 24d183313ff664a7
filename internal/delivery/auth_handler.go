package delivery

import (
	"net/http"

	"coffeeshop/internal/middleware"
	"coffeeshop/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	useCase usecase.UserUseCase
	log     *logrus.Logger
}

func NewAuthHandler(uc usecase.UserUseCase, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *AuthHandler) RegisterRoutes(router gin.IRouter, authMW gin.HandlerFunc) {
	auth := router.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", authMW, h.Logout)
		auth.GET("/me", authMW, h.Me)
	}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Handler: Failed to bind JSON for register: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.useCase.RegisterUser(req.Email, req.Password)
	if err != nil {
		h.log.Warnf("Handler: Registration failed for %s: %v", req.Email, err)
		ErrorResponse(c, mapErrorToStatus(err), "Registration failed: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "Account created successfully", gin.H{
		"user_id": user.ID,
		"email":   user.Email,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Handler: Failed to bind JSON for login: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	auth, err := h.useCase.AuthenticateUser(req.Email, req.Password)
	if err != nil {
		h.log.Warnf("Handler: Login failed for %s: %v", req.Email, err)
		ErrorResponse(c, http.StatusUnauthorized, "Login failed: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Login successful", auth)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.SessionToken(c)
	if err := h.useCase.Logout(token); err != nil {
		h.log.Errorf("Handler: Logout failed: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Logout failed: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	SuccessResponse(c, http.StatusOK, "Profile retrieved successfully", gin.H{
		"user_id":  user.ID,
		"email":    user.Email,
		"is_admin": user.IsAdmin,
	})
}
