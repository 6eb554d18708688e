package handler

import (
	"net/http"

	"shopadmin/internal/middleware"
	"shopadmin/internal/service"
	"shopadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler sets up the routing dependencies for authentication endpoints
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	// Public routes
	router.POST("/signup", h.SignUp)
	router.POST("/login", h.Login)

	// Any authenticated role
	auth := router.Group("", requireAuth)
	auth.POST("/logout", h.Logout)
	auth.GET("/user", h.GetMe)
}

// SignUp handles POST /signup to register a new account
// @Summary      Register user
// @Description  Creates an account keyed by a 10-digit phone number and returns a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.SignUpRequest  true  "Sign Up Payload"
// @Success      201      {object}  response.Envelope{data=service.AuthResponse}
// @Failure      422      {object}  response.Envelope
// @Router       /signup [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req service.SignUpRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail("Invalid request payload"))
		return
	}

	res, err := h.authService.SignUp(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.OKMessage("User registered successfully", res))
}

// Login handles POST /login to authenticate by phone number and password
// @Summary      Login user
// @Description  Authenticates a user and returns a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginRequest  true  "Login Credentials"
// @Success      200      {object}  response.Envelope{data=service.AuthResponse}
// @Failure      422      {object}  response.Envelope
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail("Invalid request payload"))
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.OKMessage("Login successful", res))
}

// Logout handles POST /logout to revoke the presenting token only; the user's
// other device tokens stay valid.
// @Summary      Logout
// @Description  Revokes the token used on this request
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope
// @Failure      401  {object}  response.Envelope
// @Router       /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	tokenID, ok := middleware.CurrentTokenID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Fail("Unauthenticated."))
		return
	}

	if err := h.authService.Logout(c.Request.Context(), tokenID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.OKMessage("Logged out successfully", nil))
}

// GetMe handles GET /user to echo the authenticated identity
// @Summary      Get current user
// @Description  Returns the currently authenticated user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope{data=service.UserResponse}
// @Failure      401  {object}  response.Envelope
// @Router       /user [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, response.Fail("Unauthenticated."))
		return
	}

	c.JSON(http.StatusOK, response.OK(service.NewUserResponse(user)))
}
