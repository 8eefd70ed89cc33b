package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/savorworks/ledger_backend/internal/core/ports/services"
	"github.com/savorworks/ledger_backend/internal/dto"
)

// authHandler handles registration and token issuance.
type authHandler struct {
	userService portssvc.UserSvcFacade
	authService portssvc.AuthSvcFacade
}

// registerAuthRoutes registers the public authentication routes.
func registerAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := &authHandler{
		userService: services.UserSvc,
		authService: services.AuthSvc,
	}

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
	}
}

// register godoc
// @Summary Register a new user
// @Description Creates a user account with a hashed password
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 409 {object} ErrorResponse "Username already taken"
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// login godoc
// @Summary Log in
// @Description Verifies credentials and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse "Invalid input format"
// @Failure 403 {object} ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}

	loggerFrom(c).Info("Login succeeded", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	})
}
