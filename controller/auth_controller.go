// api/controller/auth_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	api_errors "github.com/spop-ops/commander/api/errors"
	"github.com/spop-ops/commander/api/service"
	"github.com/spop-ops/commander/api/util"
)

type AuthController struct {
	authService service.IAuthService
}

func NewAuthController(authService service.IAuthService) *AuthController {
	return &AuthController{authService: authService}
}

// RegisterPublicRoutes registers the endpoints reachable without a token.
func (ac *AuthController) RegisterPublicRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", ac.Register)
		auth.POST("/login", ac.Login)
		auth.POST("/refresh", ac.Refresh)
	}
}

// RegisterRoutes registers the authenticated account endpoints.
func (ac *AuthController) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.GET("/me", ac.Me)
		auth.PUT("/profile", ac.UpdateProfile)
	}
}

// Register endpoint
func (ac *AuthController) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid registration data", err)
		return
	}

	user, tokens, err := ac.authService.Register(c, req)
	if err != nil {
		switch err {
		case api_errors.ErrUsernameTaken:
			util.RespondWithError(c, http.StatusConflict, "Username already taken", err)
		case api_errors.ErrInvalidUserData:
			util.RespondWithError(c, http.StatusBadRequest, "Invalid registration data", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to register user", err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user, "tokens": tokens})
}

// Login endpoint
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid login data", err)
		return
	}

	user, tokens, err := ac.authService.Login(c, req.Username, req.Password)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "tokens": tokens})
}

// Refresh endpoint
func (ac *AuthController) Refresh(c *gin.Context) {
	var req struct {
		Refresh string `json:"refresh" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid refresh request", err)
		return
	}

	tokens, err := ac.authService.Refresh(c, req.Refresh)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Invalid refresh token", err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

// Me endpoint
func (ac *AuthController) Me(c *gin.Context) {
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	user, err := ac.authService.GetUser(c, userID)
	if err != nil {
		util.RespondWithError(c, http.StatusNotFound, "User not found", err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile endpoint
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var update service.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid profile data", err)
		return
	}

	user, err := ac.authService.UpdateProfile(c, userID, update)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile", err)
		return
	}

	c.JSON(http.StatusOK, user)
}
