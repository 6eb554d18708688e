package handler

import (
	"net/http"

	"shopadmin/internal/apperr"
	"shopadmin/internal/middleware"
	"shopadmin/internal/model"
	"shopadmin/internal/service"
	"shopadmin/pkg/pagination"
	"shopadmin/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup.
// Reads are open to users and admins; mutations are admin only.
func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	products := router.Group("/products", requireAuth)
	{
		products.GET("", middleware.RequireRole(model.RoleUser, model.RoleAdmin), h.Index)
		products.GET("/:id", middleware.RequireRole(model.RoleUser, model.RoleAdmin), h.Show)
		products.POST("", middleware.RequireRole(model.RoleAdmin), h.Store)
		products.PUT("/:id", middleware.RequireRole(model.RoleAdmin), h.Update)
		products.DELETE("/:id", middleware.RequireRole(model.RoleAdmin), h.Destroy)
	}
}

// Index handles GET /products with search, pagination and sorting
// @Summary      List products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        search      query     string  false  "Substring match on name (case-insensitive)"
// @Param        pageSize    query     int     false  "Items per page (default 10)"
// @Param        pageNumber  query     int     false  "1-based page number"
// @Param        sortBy      query     string  false  "Sort column (name, price, quantity, created_at)"
// @Param        orderBy     query     string  false  "asc or desc (default asc)"
// @Success      200  {object}  response.Envelope{data=service.ProductListResponse}
// @Failure      500  {object}  response.Envelope
// @Router       /products [get]
func (h *ProductHandler) Index(c *gin.Context) {
	result, err := h.productService.List(c.Request.Context(), pagination.Parse(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.OK(result))
}

// Show handles GET /products/:id
// @Summary      Get product by ID
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  response.Envelope{data=service.ProductResponse}
// @Failure      404  {object}  response.Envelope
// @Router       /products/{id} [get]
func (h *ProductHandler) Show(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.NotFound("Product not found"))
		return
	}

	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.OK(product))
}

// Store handles POST /products with an optional multipart image
// @Summary      Create product
// @Tags         products
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        name         formData  string  true   "Product name"
// @Param        price        formData  number  true   "Price (>= 0)"
// @Param        quantity     formData  int     true   "Quantity (>= 1)"
// @Param        category_id  formData  string  true   "Category ID"
// @Param        image        formData  file    false  "Image (jpg, jpeg, png, max 2048 KB)"
// @Success      201  {object}  response.Envelope{data=service.ProductResponse}
// @Failure      422  {object}  response.Envelope
// @Router       /products [post]
func (h *ProductHandler) Store(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail("Invalid request payload"))
		return
	}

	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	product, err := h.productService.Create(c.Request.Context(), req, image)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.OKMessage("Product created successfully.", product))
}

// Update handles PUT /products/:id; supplying a new image replaces the stored
// file, omitting it leaves the existing reference untouched.
// @Summary      Update product
// @Tags         products
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "Product ID"
// @Param        image  formData  file    false  "Replacement image"
// @Success      200  {object}  response.Envelope{data=service.ProductResponse}
// @Failure      404  {object}  response.Envelope
// @Failure      422  {object}  response.Envelope
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.NotFound("Product not found"))
		return
	}

	var req service.UpdateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Fail("Invalid request payload"))
		return
	}

	image, err := c.FormFile("image")
	if err != nil {
		image = nil
	}

	product, err := h.productService.Update(c.Request.Context(), id, req, image)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.OKMessage("Product updated successfully.", product))
}

// Destroy handles DELETE /products/:id
// @Summary      Delete product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  response.Envelope
// @Failure      404  {object}  response.Envelope
// @Router       /products/{id} [delete]
func (h *ProductHandler) Destroy(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperr.NotFound("Product not found"))
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.OKMessage("Product deleted successfully.", nil))
}
