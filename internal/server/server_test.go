package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"
	"testing"
	"time"

	"hanapbahay/internal/config"
	"hanapbahay/internal/database"
	"hanapbahay/internal/models"
	"hanapbahay/internal/seed"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret-key-which-is-long-enough"

// fakeBlobStore is an in-memory storage.BlobStorage for handler tests.
type fakeBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (f *fakeBlobStore) Upload(_ context.Context, reader io.Reader, _ int64, name, container string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[container+"/"+name] = data
	return "http://blobs.local/" + container + "/" + name, nil
}

func (f *fakeBlobStore) Delete(_ context.Context, name, container string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := container + "/" + name
	if _, ok := f.objects[key]; !ok {
		return false, nil
	}
	delete(f.objects, key)
	return true, nil
}

func (f *fakeBlobStore) Download(_ context.Context, name, container string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[container+"/"+name]
	if !ok {
		return nil, fmt.Errorf("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeBlobStore) SignedURL(_ context.Context, name, container string, _ time.Duration) (string, error) {
	return "http://blobs.local/" + container + "/" + name + "?signed=1", nil
}

// newTestApp builds a Fiber app wired to sqlite and a fake blob store.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, seed.SeedAmenities(context.Background(), db))

	cfg := &config.Config{
		Env:             "test",
		JWTSecret:       testJWTSecret,
		MaxUploadSizeMB: 10,
	}

	srv := NewServerWithDeps(cfg, db, nil, newFakeBlobStore())
	app := fiber.New()
	srv.SetupRoutes(app)
	return app, db
}

func createTestUser(t *testing.T, db *gorm.DB, role models.UserRole) models.User {
	t.Helper()
	user := models.User{
		ID:          uuid.New(),
		DisplayName: "Test " + string(role),
		Email:       uuid.New().String() + "@example.com",
		Role:        role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": string(user.Role),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func authed(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// multipartBody builds a multipart request body from form values and files.
func multipartBody(t *testing.T, fields map[string][]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, values := range fields {
		for _, value := range values {
			require.NoError(t, writer.WriteField(key, value))
		}
	}
	for name, content := range files {
		part, err := writer.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func validListingFields() map[string][]string {
	return map[string][]string{
		"title":        {"Bright studio near MRT"},
		"description":  {"A fully furnished studio."},
		"propertyType": {"Apartment"},
		"province":     {"Metro Manila"},
		"city":         {"Makati"},
		"monthlyPrice": {"12000"},
		"status":       {"Active"},
	}
}
