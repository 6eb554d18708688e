package handler

import (
	"net/http"

	"shopadmin/internal/apperr"
	"shopadmin/internal/middleware"
	"shopadmin/internal/model"
	"shopadmin/internal/service"
	"shopadmin/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup.
// Reads are open to users and admins; mutations are admin only.
func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	categories := router.Group("/categories", requireAuth)
	{
		categories.GET("", middleware.RequireRole(model.RoleUser, model.RoleAdmin), h.Index)
		categories.GET("/:id", middleware.RequireRole(model.RoleUser, model.RoleAdmin), h.Show)
		categories.POST("", middleware.RequireRole(model.RoleAdmin), h.Store)
		categories.PUT("/:id", middleware.RequireRole(model.RoleAdmin), h.Update)
		categories.DELETE("/:id", middleware.RequireRole(model.RoleAdmin), h.Destroy)
	}
}

// Index handles GET /categories
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope{data=[]service.CategoryResponse}
// @Failure      500  {object}  response.Envelope
// @Router       /categories [get]
func (h *CategoryHandler) Index(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.OK(categories))
}

// Show handles GET /categories/:id
// @Summary      Get category by ID
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  response.Envelope{data=service.CategoryResponse}
// @Failure      404  {object}  response.Envelope
// @Router       /categories/{id} [get]
func (h *CategoryHandler) Show(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.NotFound("Category not found"))
		return
	}

	category, err := h.categoryService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.OK(category))
}

// Store handles POST /categories
// @Summary      Create category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateCategoryRequest  true  "Create Category Payload"
// @Success      201      {object}  response.Envelope{data=service.CategoryResponse}
// @Failure      422      {object}  response.Envelope
// @Router       /categories [post]
func (h *CategoryHandler) Store(c *gin.Context) {
	var req service.CreateCategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail("Invalid request payload"))
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.OKMessage("Category created successfully", category))
}

// Update handles PUT /categories/:id
// @Summary      Update category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                         true  "Category ID"
// @Param        payload  body      service.UpdateCategoryRequest  true  "Update Category Payload"
// @Success      200      {object}  response.Envelope{data=service.CategoryResponse}
// @Failure      404      {object}  response.Envelope
// @Failure      422      {object}  response.Envelope
// @Router       /categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.NotFound("Category not found"))
		return
	}

	var req service.UpdateCategoryRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail("Invalid request payload"))
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.OKMessage("Category updated successfully", category))
}

// Destroy handles DELETE /categories/:id
// @Summary      Delete category
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Failure      422  {object}  response.Envelope
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) Destroy(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.NotFound("Category not found"))
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.OKMessage("Category deleted successfully", nil))
}
