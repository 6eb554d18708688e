package service

import (
	"context"
	"testing"

	"shopadmin/internal/apperr"
	"shopadmin/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCategoryService(categories *fakeCategoryRepo, products *fakeProductRepo, notifier *fakeNotifier) CategoryService {
	return NewCategoryService(categories, products, notifier)
}

func TestCategoryService_CreateDuplicateName(t *testing.T) {
	categories := &fakeCategoryRepo{}
	svc := newTestCategoryService(categories, &fakeProductRepo{}, &fakeNotifier{})

	_, err := svc.Create(context.Background(), CreateCategoryRequest{Name: "Books"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreateCategoryRequest{Name: "Books"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.Contains(t, apperr.From(err).Fields, "name")
	assert.Len(t, categories.categories, 1)
}

func TestCategoryService_CreateMissingName(t *testing.T) {
	svc := newTestCategoryService(&fakeCategoryRepo{}, &fakeProductRepo{}, &fakeNotifier{})

	_, err := svc.Create(context.Background(), CreateCategoryRequest{})
	require.Error(t, err)
	assert.Contains(t, apperr.From(err).Fields, "name")
}

func TestCategoryService_UpdateUniqueness(t *testing.T) {
	categories := &fakeCategoryRepo{}
	svc := newTestCategoryService(categories, &fakeProductRepo{}, &fakeNotifier{})

	books, err := svc.Create(context.Background(), CreateCategoryRequest{Name: "Books"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateCategoryRequest{Name: "Games"})
	require.NoError(t, err)

	// Renaming to a name held by a different category fails.
	name := "Games"
	_, err = svc.Update(context.Background(), books.ID, UpdateCategoryRequest{Name: &name})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	// Renaming to its own current name is fine.
	own := "Books"
	updated, err := svc.Update(context.Background(), books.ID, UpdateCategoryRequest{Name: &own})
	require.NoError(t, err)
	assert.Equal(t, "Books", updated.Name)
}

func TestCategoryService_NotFound(t *testing.T) {
	svc := newTestCategoryService(&fakeCategoryRepo{}, &fakeProductRepo{}, &fakeNotifier{})

	_, err := svc.Get(context.Background(), uuid.New())
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, "Category not found", apperr.From(err).Message)

	_, err = svc.Update(context.Background(), uuid.New(), UpdateCategoryRequest{})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	err = svc.Delete(context.Background(), uuid.New())
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestCategoryService_DeleteBlockedWhileReferenced(t *testing.T) {
	categories := &fakeCategoryRepo{}
	products := &fakeProductRepo{}
	svc := newTestCategoryService(categories, products, &fakeNotifier{})

	created, err := svc.Create(context.Background(), CreateCategoryRequest{Name: "Books"})
	require.NoError(t, err)

	products.products = append(products.products, &model.Product{ID: uuid.New(), Name: "Novel", CategoryID: created.ID})

	err = svc.Delete(context.Background(), created.ID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Len(t, categories.categories, 1, "referenced category must not be deleted")

	// Once the product is gone the category can be removed.
	products.products = nil
	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Empty(t, categories.categories)
}

func TestCategoryService_NotifiesCatalogEvents(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newTestCategoryService(&fakeCategoryRepo{}, &fakeProductRepo{}, notifier)

	created, err := svc.Create(context.Background(), CreateCategoryRequest{Name: "Books"})
	require.NoError(t, err)

	name := "Textbooks"
	_, err = svc.Update(context.Background(), created.ID, UpdateCategoryRequest{Name: &name})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	assert.Equal(t, []string{"category.created", "category.updated", "category.deleted"}, notifier.events)
}
