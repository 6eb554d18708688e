package service

import (
	"context"
	"fmt"
	"testing"

	"shopadmin/internal/apperr"
	"shopadmin/internal/model"

	"shopadmin/pkg/pagination"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productFixture struct {
	products   *fakeProductRepo
	categories *fakeCategoryRepo
	files      *fakeFileStore
	notifier   *fakeNotifier
	svc        ProductService
	categoryID uuid.UUID
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()

	f := &productFixture{
		products:   &fakeProductRepo{},
		categories: &fakeCategoryRepo{},
		files:      &fakeFileStore{},
		notifier:   &fakeNotifier{},
	}
	f.svc = NewProductService(f.products, f.categories, fakeTxManager{}, f.files, f.notifier)

	category := &model.Category{ID: uuid.New(), Name: "Books"}
	f.categories.categories = append(f.categories.categories, category)
	f.categoryID = category.ID
	return f
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

func validCreateRequest(f *productFixture) CreateProductRequest {
	return CreateProductRequest{
		Name:       "Novel",
		Price:      floatPtr(9.99),
		Quantity:   intPtr(3),
		CategoryID: f.categoryID.String(),
	}
}

func TestProductService_CreateQuantityBounds(t *testing.T) {
	f := newProductFixture(t)

	req := validCreateRequest(f)
	req.Quantity = intPtr(0)
	_, err := f.svc.Create(context.Background(), req, nil)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Contains(t, apperr.From(err).Fields, "quantity")

	req.Quantity = intPtr(1)
	created, err := f.svc.Create(context.Background(), req, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, created.Quantity)
}

func TestProductService_CreateUnknownCategory(t *testing.T) {
	f := newProductFixture(t)

	req := validCreateRequest(f)
	req.CategoryID = uuid.New().String()
	_, err := f.svc.Create(context.Background(), req, nil)
	require.Error(t, err)
	fields := apperr.From(err).Fields
	require.Contains(t, fields, "category_id")
	assert.Equal(t, []string{"The selected category id is invalid."}, fields["category_id"])
	assert.Empty(t, f.products.products)
}

func TestProductService_CreateMalformedCategoryID(t *testing.T) {
	f := newProductFixture(t)

	req := validCreateRequest(f)
	req.CategoryID = "not-a-uuid"
	_, err := f.svc.Create(context.Background(), req, nil)
	require.Error(t, err)
	assert.Contains(t, apperr.From(err).Fields, "category_id")
}

func TestProductService_CreateImageRules(t *testing.T) {
	f := newProductFixture(t)

	// Wrong extension.
	req := validCreateRequest(f)
	_, err := f.svc.Create(context.Background(), req, fileHeader(t, "image", "manual.pdf", 100))
	require.Error(t, err)
	fields := apperr.From(err).Fields
	require.Contains(t, fields, "image")
	assert.Equal(t, []string{"The image must be a file of type: jpg, jpeg, png."}, fields["image"])

	// Over the size cap.
	_, err = f.svc.Create(context.Background(), req, fileHeader(t, "image", "cover.jpg", 2049*1024))
	require.Error(t, err)
	fields = apperr.From(err).Fields
	require.Contains(t, fields, "image")
	assert.Equal(t, []string{"The image may not be greater than 2048 kilobytes."}, fields["image"])

	assert.Empty(t, f.files.stored, "rejected uploads must never hit the file store")
}

func TestProductService_CreateStoresImage(t *testing.T) {
	f := newProductFixture(t)

	created, err := f.svc.Create(context.Background(), validCreateRequest(f), fileHeader(t, "image", "cover.png", 512))
	require.NoError(t, err)
	require.Len(t, f.files.stored, 1)
	assert.Equal(t, f.files.stored[0], created.ImageURL)
	assert.Equal(t, []string{"product.created"}, f.notifier.events)
}

func TestProductService_ListPagination(t *testing.T) {
	f := newProductFixture(t)
	for i := 1; i <= 25; i++ {
		f.products.products = append(f.products.products, &model.Product{
			ID:         uuid.New(),
			Name:       fmt.Sprintf("Product %02d", i),
			CategoryID: f.categoryID,
		})
	}

	res, err := f.svc.List(context.Background(), pagination.Query{PageSize: 10, PageNumber: 2, SortBy: "name", OrderBy: "asc"})
	require.NoError(t, err)

	require.Len(t, res.Products, 10)
	assert.Equal(t, "Product 11", res.Products[0].Name)
	assert.Equal(t, "Product 20", res.Products[9].Name)
	assert.Equal(t, int64(25), res.Pagination.Total)
	assert.Equal(t, int64(3), res.Pagination.TotalPages, "25 rows at 10 per page round up to 3 pages")
	assert.Equal(t, 2, res.Pagination.PageNumber)
}

func TestProductService_ListSortWhitelist(t *testing.T) {
	f := newProductFixture(t)

	_, err := f.svc.List(context.Background(), pagination.Query{PageSize: 10, PageNumber: 1, SortBy: "password; DROP TABLE", OrderBy: "desc"})
	require.NoError(t, err)
	assert.Equal(t, "name", f.products.lastQuery.SortBy, "unknown sort columns fall back to name")
	assert.Equal(t, "desc", f.products.lastQuery.OrderBy)

	_, err = f.svc.List(context.Background(), pagination.Query{PageSize: 10, PageNumber: 1, SortBy: "price", OrderBy: "asc"})
	require.NoError(t, err)
	assert.Equal(t, "price", f.products.lastQuery.SortBy)
}

func TestProductService_ListSearch(t *testing.T) {
	f := newProductFixture(t)
	f.products.products = append(f.products.products,
		&model.Product{ID: uuid.New(), Name: "Red Mug", CategoryID: f.categoryID},
		&model.Product{ID: uuid.New(), Name: "Blue Mug", CategoryID: f.categoryID},
		&model.Product{ID: uuid.New(), Name: "Notebook", CategoryID: f.categoryID},
	)

	res, err := f.svc.List(context.Background(), pagination.Query{Search: "mug", PageSize: 10, PageNumber: 1, SortBy: "name", OrderBy: "asc"})
	require.NoError(t, err)
	require.Len(t, res.Products, 2)
	assert.Equal(t, int64(2), res.Pagination.Total)
}

func TestProductService_UpdateReplacesImage(t *testing.T) {
	f := newProductFixture(t)

	created, err := f.svc.Create(context.Background(), validCreateRequest(f), fileHeader(t, "image", "old.jpg", 256))
	require.NoError(t, err)
	oldPath := created.ImageURL

	updated, err := f.svc.Update(context.Background(), created.ID, UpdateProductRequest{}, fileHeader(t, "image", "new.jpg", 256))
	require.NoError(t, err)

	assert.Equal(t, []string{oldPath}, f.files.deleted, "previous image must be removed on replacement")
	assert.NotEqual(t, oldPath, updated.ImageURL)
}

func TestProductService_UpdatePartialFields(t *testing.T) {
	f := newProductFixture(t)

	created, err := f.svc.Create(context.Background(), validCreateRequest(f), nil)
	require.NoError(t, err)

	updated, err := f.svc.Update(context.Background(), created.ID, UpdateProductRequest{Price: floatPtr(14.50)}, nil)
	require.NoError(t, err)

	assert.Equal(t, "14.5", updated.Price.String())
	assert.Equal(t, created.Name, updated.Name, "omitted fields keep their values")
	assert.Equal(t, created.Quantity, updated.Quantity)
}

func TestProductService_UpdateNotFound(t *testing.T) {
	f := newProductFixture(t)

	_, err := f.svc.Update(context.Background(), uuid.New(), UpdateProductRequest{Name: strPtr("x")}, nil)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, "Product not found", apperr.From(err).Message)
}

func TestProductService_DeleteRemovesImageFile(t *testing.T) {
	f := newProductFixture(t)

	created, err := f.svc.Create(context.Background(), validCreateRequest(f), fileHeader(t, "image", "cover.jpeg", 256))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), created.ID))
	assert.Equal(t, []string{created.ImageURL}, f.files.deleted)
	assert.Empty(t, f.products.products)
}

func TestProductService_DeleteWithoutImage(t *testing.T) {
	f := newProductFixture(t)

	created, err := f.svc.Create(context.Background(), validCreateRequest(f), nil)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), created.ID))
	assert.Empty(t, f.files.deleted, "nothing to remove when no image was stored")
}
