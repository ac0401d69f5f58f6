package router

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"recipe-api/internal/config"
	"recipe-api/internal/controller"
	"recipe-api/internal/model"
	"recipe-api/internal/service"
)

type stubCompletionClient struct {
	text string
	err  error
}

func (s *stubCompletionClient) Complete(context.Context, string) (string, error) {
	return s.text, s.err
}

func setupRouter(t *testing.T, aiClient service.CompletionClient) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, model.InitTables(db))

	cfg := &config.Config{}
	cfg.App.Mode = gin.TestMode
	cfg.Upload.Dir = t.TempDir()

	tagService := service.NewTagService(db)
	recipeService := service.NewRecipeService(db, tagService)
	uploadService := service.NewUploadService(db, &cfg.Upload)
	suggestService := service.NewSuggestService(aiClient, nil, 0)

	return Setup(cfg, &Controllers{
		Recipe:  controller.NewRecipeApi(recipeService),
		Tag:     controller.NewTagApi(tagService),
		Upload:  controller.NewUploadApi(uploadService),
		Suggest: controller.NewSuggestApi(suggestService),
	})
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func TestCreateRecipe(t *testing.T) {
	r := setupRouter(t, nil)

	w := doJSON(r, http.MethodPost, "/api/recipes",
		`{"title": "番茄炒蛋", "description": "家常做法", "tags": "easy, 家常"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeMap(t, w)
	assert.EqualValues(t, 1, body["id"])
	assert.Equal(t, "番茄炒蛋", body["title"])
	assert.Nil(t, body["image_url"])

	tags, ok := body["tags"].([]any)
	require.True(t, ok)
	assert.Len(t, tags, 2)
}

func TestCreateRecipeMissingFields(t *testing.T) {
	r := setupRouter(t, nil)

	w := doJSON(r, http.MethodPost, "/api/recipes", `{"title": "只有标题"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeMap(t, w), "error")
}

func TestCreateRecipeBadJSON(t *testing.T) {
	r := setupRouter(t, nil)

	w := doJSON(r, http.MethodPost, "/api/recipes", `{not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeMap(t, w), "error")
}

func TestListRecipes(t *testing.T) {
	r := setupRouter(t, nil)

	doJSON(r, http.MethodPost, "/api/recipes", `{"title": "a", "description": "d"}`)
	doJSON(r, http.MethodPost, "/api/recipes", `{"title": "b", "description": "d"}`)

	w := doJSON(r, http.MethodGet, "/api/recipes", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0]["title"])
	assert.Equal(t, "b", list[1]["title"])
}

func TestGetRecipeNotFound(t *testing.T) {
	r := setupRouter(t, nil)

	w := doJSON(r, http.MethodGet, "/api/recipes/999", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Recipe not found", decodeMap(t, w)["error"])

	// 非数字ID同样按不存在处理
	w = doJSON(r, http.MethodGet, "/api/recipes/abc", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateRecipePartial(t *testing.T) {
	r := setupRouter(t, nil)

	doJSON(r, http.MethodPost, "/api/recipes",
		`{"title": "old", "description": "keep me", "tags": "easy"}`)

	w := doJSON(r, http.MethodPut, "/api/recipes/1", `{"title": "new"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeMap(t, w)
	assert.Equal(t, "new", body["title"])
	assert.Equal(t, "keep me", body["description"])
	tags, ok := body["tags"].([]any)
	require.True(t, ok)
	assert.Len(t, tags, 1)
}

func TestUpdateRecipeNotFound(t *testing.T) {
	r := setupRouter(t, nil)

	w := doJSON(r, http.MethodPut, "/api/recipes/999", `{"title": "x"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Recipe not found", decodeMap(t, w)["error"])
}

func TestDeleteRecipe(t *testing.T) {
	r := setupRouter(t, nil)

	doJSON(r, http.MethodPost, "/api/recipes", `{"title": "t", "description": "d"}`)

	w := doJSON(r, http.MethodDelete, "/api/recipes/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Recipe deleted successfully", decodeMap(t, w)["message"])

	// 再次删除返回404
	w = doJSON(r, http.MethodDelete, "/api/recipes/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListTags(t *testing.T) {
	r := setupRouter(t, nil)

	doJSON(r, http.MethodPost, "/api/recipes",
		`{"title": "t", "description": "d", "tags": "soup, easy"}`)

	w := doJSON(r, http.MethodGet, "/api/tags", "")
	require.Equal(t, http.StatusOK, w.Code)

	var tags []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tags))
	require.Len(t, tags, 2)
	assert.Equal(t, "soup", tags[0]["name"])
	assert.Equal(t, "easy", tags[1]["name"])
}

func TestUploadAndServeFile(t *testing.T) {
	r := setupRouter(t, nil)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", "dish.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	imageURL, ok := decodeMap(t, w)["image_url"].(string)
	require.True(t, ok)
	require.True(t, strings.HasPrefix(imageURL, "/uploads/"))

	// 上传后的文件可通过静态路由访问
	w2 := doJSON(r, http.MethodGet, imageURL, "")
	require.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, "fake image", w2.Body.String())
}

func TestUploadNoFilePart(t *testing.T) {
	r := setupRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader(""))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file part", decodeMap(t, w)["error"])
}

func TestSuggestMissingTitle(t *testing.T) {
	r := setupRouter(t, &stubCompletionClient{text: "1. step"})

	w := doJSON(r, http.MethodGet, "/api/ai-suggest", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeMap(t, w), "error")
}

func TestSuggestNotConfigured(t *testing.T) {
	r := setupRouter(t, nil)

	w := doJSON(r, http.MethodGet, "/api/ai-suggest?title=soup", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "AI service is not configured", decodeMap(t, w)["error"])
}

func TestSuggestReturnsDescription(t *testing.T) {
	r := setupRouter(t, &stubCompletionClient{text: "1. 打蛋\n2. 炒制"})

	w := doJSON(r, http.MethodGet, "/api/ai-suggest?title=%E7%95%AA%E8%8C%84%E7%82%92%E8%9B%8B", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1. 打蛋\n2. 炒制", decodeMap(t, w)["description"])
}
