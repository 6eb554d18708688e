package handler

import (
	"net/http"

	"shopadmin/internal/middleware"
	"shopadmin/internal/service"
	"shopadmin/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	user := router.Group("/user", requireAuth)
	user.PUT("/editMyProfile", h.EditMyProfile)
}

// EditMyProfile handles PUT /user/editMyProfile. Only the authenticated
// caller's own profile can be edited; a new image replaces the previously
// hosted one.
// @Summary      Edit own profile
// @Tags         user
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        first_name     formData  string  false  "First name"
// @Param        last_name      formData  string  false  "Last name"
// @Param        address        formData  string  false  "Address"
// @Param        image_profile  formData  file    false  "Profile image (jpg, jpeg, png, max 2048 KB)"
// @Success      200  {object}  response.Envelope{data=service.UserResponse}
// @Failure      401  {object}  response.Envelope
// @Failure      422  {object}  response.Envelope
// @Router       /user/editMyProfile [put]
func (h *UserHandler) EditMyProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, response.Fail("Unauthenticated."))
		return
	}

	var req service.EditProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail("Invalid request payload"))
		return
	}

	image, err := c.FormFile("image_profile")
	if err != nil {
		image = nil
	}

	updated, err := h.userService.EditMyProfile(c.Request.Context(), user.ID, req, image)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.OKMessage("Profile updated successfully", updated))
}
