package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"shopadmin/internal/model"
	"shopadmin/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- repository fakes ---

type fakeUserRepo struct {
	users []*model.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	f.users = append(f.users, user)
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByPhone(_ context.Context, phone string) (*model.User, error) {
	for _, u := range f.users {
		if u.PhoneNumber == phone {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	for i, u := range f.users {
		if u.ID == user.ID {
			f.users[i] = user
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeTokenRepo struct {
	tokens map[uuid.UUID]*model.AuthToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[uuid.UUID]*model.AuthToken)}
}

func (f *fakeTokenRepo) Create(_ context.Context, token *model.AuthToken) error {
	f.tokens[token.ID] = token
	return nil
}

func (f *fakeTokenRepo) FindByID(_ context.Context, id uuid.UUID) (*model.AuthToken, error) {
	if t, ok := f.tokens[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTokenRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.tokens, id)
	return nil
}

func (f *fakeTokenRepo) Touch(_ context.Context, id uuid.UUID, at time.Time) error {
	if t, ok := f.tokens[id]; ok {
		t.LastUsedAt = &at
	}
	return nil
}

type fakeCategoryRepo struct {
	categories []*model.Category
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *model.Category) error {
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	f.categories = append(f.categories, category)
	return nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, category *model.Category) error {
	for i, c := range f.categories {
		if c.ID == category.ID {
			f.categories[i] = category
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, c := range f.categories {
		if c.ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	for _, c := range f.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCategoryRepo) FindByName(_ context.Context, name string) (*model.Category, error) {
	for _, c := range f.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	out := make([]model.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

type fakeProductRepo struct {
	products  []*model.Product
	lastQuery repository.ProductListQuery
}

func (f *fakeProductRepo) Create(_ context.Context, product *model.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	f.products = append(f.products, product)
	return nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *model.Product) error {
	for i, p := range f.products {
		if p.ID == product.ID {
			f.products[i] = product
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, p := range f.products {
		if p.ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductRepo) List(_ context.Context, q repository.ProductListQuery) ([]model.Product, int64, error) {
	f.lastQuery = q

	matched := make([]model.Product, 0, len(f.products))
	for _, p := range f.products {
		if q.Search == "" || strings.Contains(strings.ToLower(p.Name), strings.ToLower(q.Search)) {
			matched = append(matched, *p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if q.OrderBy == "desc" {
			return matched[i].Name > matched[j].Name
		}
		return matched[i].Name < matched[j].Name
	})

	total := int64(len(matched))
	if q.Offset >= len(matched) {
		return nil, total, nil
	}
	end := q.Offset + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[q.Offset:end], total, nil
}

func (f *fakeProductRepo) CountByCategory(_ context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	for _, p := range f.products {
		if p.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

// --- collaborator fakes ---

type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type fakeFileStore struct {
	stored  []string
	deleted []string
	n       int
}

func (f *fakeFileStore) Store(dir string, _ *multipart.FileHeader) (string, error) {
	f.n++
	path := fmt.Sprintf("%s/stored-%d.jpg", dir, f.n)
	f.stored = append(f.stored, path)
	return path, nil
}

func (f *fakeFileStore) Delete(relPath string) error {
	f.deleted = append(f.deleted, relPath)
	return nil
}

type fakeImageHost struct {
	uploads   []string
	destroyed []string
	url       string
}

func (f *fakeImageHost) Upload(_ context.Context, _ io.Reader, folder string) (string, error) {
	f.uploads = append(f.uploads, folder)
	return f.url, nil
}

func (f *fakeImageHost) Destroy(_ context.Context, publicID string) error {
	f.destroyed = append(f.destroyed, publicID)
	return nil
}

type fakeNotifier struct {
	events []string
}

func (f *fakeNotifier) NotifyCatalogEvent(event string, _ interface{}) {
	f.events = append(f.events, event)
}

// fileHeader builds a real multipart.FileHeader with a payload of the given
// size, the same way gin would hand it to a handler.
func fileHeader(t *testing.T, field, filename string, size int) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(bytes.Repeat([]byte("a"), size))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File[field][0]
}
