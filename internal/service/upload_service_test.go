package service

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-api/internal/config"
	"recipe-api/internal/model"
)

// newFileHeader 通过multipart请求构造真实的文件头
func newFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	_, header, err := req.FormFile("file")
	require.NoError(t, err)
	return header
}

func TestSaveStoresFileAndMetadata(t *testing.T) {
	db := newTestDB(t)
	dir := t.TempDir()
	svc := NewUploadService(db, &config.UploadConfig{Dir: dir})

	content := []byte("fake image bytes")
	resp, err := svc.Save(newFileHeader(t, "dish.png", content))
	require.NoError(t, err)

	// 存储键为UUID加扩展名，不使用客户端文件名
	require.True(t, strings.HasPrefix(resp.ImageURL, "/uploads/"))
	storedName := strings.TrimPrefix(resp.ImageURL, "/uploads/")
	assert.NotEqual(t, "dish.png", storedName)
	assert.True(t, strings.HasSuffix(storedName, ".png"))

	data, err := os.ReadFile(filepath.Join(dir, storedName))
	require.NoError(t, err)
	assert.Equal(t, content, data)

	var upload model.Upload
	require.NoError(t, db.Where("stored_name = ?", storedName).First(&upload).Error)
	assert.Equal(t, "dish.png", upload.OriginalName)
	assert.Equal(t, int64(len(content)), upload.Size)
}

func TestSaveSameFilenameDoesNotCollide(t *testing.T) {
	db := newTestDB(t)
	dir := t.TempDir()
	svc := NewUploadService(db, &config.UploadConfig{Dir: dir})

	first, err := svc.Save(newFileHeader(t, "dish.png", []byte("one")))
	require.NoError(t, err)
	second, err := svc.Save(newFileHeader(t, "dish.png", []byte("two")))
	require.NoError(t, err)

	assert.NotEqual(t, first.ImageURL, second.ImageURL)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSaveEmptyFilename(t *testing.T) {
	db := newTestDB(t)
	svc := NewUploadService(db, &config.UploadConfig{Dir: t.TempDir()})

	_, err := svc.Save(&multipart.FileHeader{Filename: ""})
	assert.True(t, errors.Is(err, ErrEmptyFilename))
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	db := newTestDB(t)
	svc := NewUploadService(db, &config.UploadConfig{Dir: t.TempDir(), MaxSize: 4})

	_, err := svc.Save(newFileHeader(t, "dish.png", []byte("too large")))
	assert.True(t, errors.Is(err, ErrInvalidFile))
}

func TestSaveRejectsDisallowedExtension(t *testing.T) {
	db := newTestDB(t)
	svc := NewUploadService(db, &config.UploadConfig{
		Dir:       t.TempDir(),
		AllowExts: []string{"jpg", "png"},
	})

	_, err := svc.Save(newFileHeader(t, "evil.exe", []byte("x")))
	assert.True(t, errors.Is(err, ErrInvalidFile))
}
