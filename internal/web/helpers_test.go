package web

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"productadmin/internal/files"
	"productadmin/internal/models"
	"productadmin/internal/service"
	"productadmin/internal/storage/memstore"
)

type testEnv struct {
	router *gin.Engine
	store  *memstore.Store
	images *files.Storage
	chairs models.Category
	tables models.Category
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memstore.New()
	env := &testEnv{
		store:  store,
		images: files.NewStorage(t.TempDir(), "img"),
		chairs: store.AddCategory("Chairs"),
		tables: store.AddCategory("Tables"),
	}
	products := service.NewProductService(store, env.images, nil)
	categories := service.NewCategoryService(store)

	r, err := NewRouter(Deps{
		Products:      NewProductHandler(products, categories, 4, 500),
		Accounts:      NewAccountHandler(service.NewAccountService(store.Users())),
		SessionSecret: "test-secret",
		ImageDir:      env.images.Dir(),
		ImageURL:      "/img",
	})
	require.NoError(t, err)
	env.router = r
	return env
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil))
}

// seed кладёт продукт напрямую в хранилище
func (e *testEnv) seed(t *testing.T, name string, images ...string) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:        name,
		Description: "<p>About <b>" + name + "</b></p>",
		Price:       decimal.RequireFromString("5.00"),
		Count:       1,
		CategoryID:  e.chairs.ID,
	}
	for i, img := range images {
		p.Images = append(p.Images, models.ProductImage{Image: img, IsMain: i == 0})
	}
	require.NoError(t, e.store.Create(context.Background(), p))
	return p
}

func (e *testEnv) savedFiles(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(e.images.Dir())
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	var names []string
	for _, en := range entries {
		names = append(names, en.Name())
	}
	return names
}

type upload struct {
	filename    string
	contentType string
	size        int
}

func multipartRequest(t *testing.T, path string, fields map[string]string, uploads ...upload) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, up := range uploads {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="photos"; filename="`+up.filename+`"`)
		h.Set("Content-Type", up.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(bytes.Repeat([]byte{0x89}, up.size))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func formRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func httptestGet(path string) *http.Request {
	return httptest.NewRequest(http.MethodGet, path, nil)
}

func httptestPost(path string) *http.Request {
	return formRequest(path, url.Values{})
}
