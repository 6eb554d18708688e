package service

import (
	"context"
	"mime/multipart"
	"time"

	"shopadmin/internal/apperr"
	"shopadmin/internal/model"
	"shopadmin/internal/repository"
	"shopadmin/internal/storage"
	"shopadmin/internal/validation"

	"shopadmin/pkg/pagination"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Directory inside the file store that product images land in.
const productImageDir = "products"

// Columns the product listing may sort by. Anything else falls back to name;
// the resolved value is interpolated into ORDER BY, so only vetted names pass.
var sortableColumns = map[string]string{
	"name":       "name",
	"price":      "price",
	"quantity":   "quantity",
	"created_at": "created_at",
}

type CreateProductRequest struct {
	Name       string   `json:"name" form:"name" validate:"required,max=255"`
	Price      *float64 `json:"price" form:"price" validate:"required,gte=0"`
	Quantity   *int     `json:"quantity" form:"quantity" validate:"required,gte=1"`
	CategoryID string   `json:"category_id" form:"category_id" validate:"required,uuid"`
}

type UpdateProductRequest struct {
	Name       *string  `json:"name" form:"name" validate:"omitempty,max=255"`
	Price      *float64 `json:"price" form:"price" validate:"omitempty,gte=0"`
	Quantity   *int     `json:"quantity" form:"quantity" validate:"omitempty,gte=1"`
	CategoryID *string  `json:"category_id" form:"category_id" validate:"omitempty,uuid"`
}

type ProductResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	CategoryID uuid.UUID       `json:"category_id"`
	ImageURL   string          `json:"image_url"`
	CreatedAt  string          `json:"created_at"`
	UpdatedAt  string          `json:"updated_at"`
}

type PaginationMeta struct {
	Total      int64 `json:"total"`
	PageSize   int   `json:"pageSize"`
	PageNumber int   `json:"pageNumber"`
	TotalPages int64 `json:"totalPages"`
}

type ProductListResponse struct {
	Products   []ProductResponse `json:"products"`
	Pagination PaginationMeta    `json:"pagination"`
}

type ProductService interface {
	List(ctx context.Context, q pagination.Query) (*ProductListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error)
	Create(ctx context.Context, req CreateProductRequest, image *multipart.FileHeader) (*ProductResponse, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest, image *multipart.FileHeader) (*ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	txm        repository.TransactionManager
	files      storage.FileStore
	notifier   CatalogNotifier
}

func NewProductService(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	txm repository.TransactionManager,
	files storage.FileStore,
	notifier CatalogNotifier,
) ProductService {
	return &productService{
		products:   products,
		categories: categories,
		txm:        txm,
		files:      files,
		notifier:   notifier,
	}
}

func mapProduct(product *model.Product) *ProductResponse {
	return &ProductResponse{
		ID:         product.ID,
		Name:       product.Name,
		Price:      product.Price,
		Quantity:   product.Quantity,
		CategoryID: product.CategoryID,
		ImageURL:   product.ImageURL,
		CreatedAt:  product.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  product.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *productService) List(ctx context.Context, q pagination.Query) (*ProductListResponse, error) {
	sortBy, ok := sortableColumns[q.SortBy]
	if !ok {
		sortBy = "name"
	}

	products, total, err := s.products.List(ctx, repository.ProductListQuery{
		Search:  q.Search,
		SortBy:  sortBy,
		OrderBy: q.OrderBy,
		Offset:  q.Offset(),
		Limit:   q.PageSize,
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, *mapProduct(&products[i]))
	}

	return &ProductListResponse{
		Products: responses,
		Pagination: PaginationMeta{
			Total:      total,
			PageSize:   q.PageSize,
			PageNumber: q.PageNumber,
			TotalPages: pagination.TotalPages(total, q.PageSize),
		},
	}, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFound("Product not found")
	}
	return mapProduct(product), nil
}

func (s *productService) Create(ctx context.Context, req CreateProductRequest, image *multipart.FileHeader) (*ProductResponse, error) {
	errs := validation.Struct(req)
	if errs == nil {
		errs = make(validation.Errors)
	}
	if msg := validation.CheckImage(image); msg != "" {
		errs.Add("image", msg)
	}

	var categoryID uuid.UUID
	if _, taken := errs["category_id"]; !taken {
		id, err := uuid.Parse(req.CategoryID)
		if err == nil {
			if _, err := s.categories.FindByID(ctx, id); err != nil {
				errs.Add("category_id", "The selected category id is invalid.")
			} else {
				categoryID = id
			}
		}
	}

	if len(errs) > 0 {
		return nil, apperr.Validation(errs)
	}

	imagePath := ""
	if image != nil {
		path, err := s.files.Store(productImageDir, image)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		imagePath = path
	}

	product := &model.Product{
		Name:       req.Name,
		Price:      decimal.NewFromFloat(*req.Price),
		Quantity:   *req.Quantity,
		CategoryID: categoryID,
		ImageURL:   imagePath,
	}

	err := s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		return s.products.Create(txCtx, product)
	})
	if err != nil {
		// The file was written before the record; clean it up so a failed
		// create leaves no orphan on disk.
		if imagePath != "" {
			_ = s.files.Delete(imagePath)
		}
		return nil, apperr.Internal(err)
	}

	notify(s.notifier, "product.created", mapProduct(product))
	return mapProduct(product), nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest, image *multipart.FileHeader) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.NotFound("Product not found")
	}

	errs := validation.Struct(req)
	if errs == nil {
		errs = make(validation.Errors)
	}
	if msg := validation.CheckImage(image); msg != "" {
		errs.Add("image", msg)
	}

	var categoryID *uuid.UUID
	if req.CategoryID != nil {
		if _, taken := errs["category_id"]; !taken {
			parsed, err := uuid.Parse(*req.CategoryID)
			if err == nil {
				if _, err := s.categories.FindByID(ctx, parsed); err != nil {
					errs.Add("category_id", "The selected category id is invalid.")
				} else {
					categoryID = &parsed
				}
			}
		}
	}

	if len(errs) > 0 {
		return nil, apperr.Validation(errs)
	}

	if image != nil {
		if product.ImageURL != "" {
			if err := s.files.Delete(product.ImageURL); err != nil {
				return nil, apperr.Internal(err)
			}
		}
		path, err := s.files.Store(productImageDir, image)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		product.ImageURL = path
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		product.Price = decimal.NewFromFloat(*req.Price)
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}
	if categoryID != nil {
		product.CategoryID = *categoryID
	}

	err = s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		return s.products.Update(txCtx, product)
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}

	notify(s.notifier, "product.updated", mapProduct(product))
	return mapProduct(product), nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return apperr.NotFound("Product not found")
	}

	// Stored image goes first; a crash in between leaves a record without a
	// file rather than an unreferenced file.
	if product.ImageURL != "" {
		if err := s.files.Delete(product.ImageURL); err != nil {
			return apperr.Internal(err)
		}
	}

	err = s.txm.RunInTx(ctx, func(txCtx context.Context) error {
		return s.products.Delete(txCtx, id)
	})
	if err != nil {
		return apperr.Internal(err)
	}

	notify(s.notifier, "product.deleted", map[string]interface{}{"id": product.ID})
	return nil
}
