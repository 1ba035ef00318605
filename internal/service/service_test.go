package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"hanapbahay/internal/database"
	"hanapbahay/internal/models"
	"hanapbahay/internal/repository"
	"hanapbahay/internal/seed"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, seed.SeedAmenities(context.Background(), db))
	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createUser(t *testing.T, db *gorm.DB, role models.UserRole) models.User {
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

// fakeBlobStore is an in-memory storage.BlobStorage for tests. failOn fails
// every call of an operation; failUploadCall fails only the Nth Upload
// (1-based) so partial-batch failures can be simulated.
type fakeBlobStore struct {
	mu             sync.Mutex
	objects        map[string][]byte
	failOn         map[string]bool
	failUploadCall int
	uploadCalls    int
	deletes        []string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{
		objects: make(map[string][]byte),
		failOn:  make(map[string]bool),
	}
}

func (f *fakeBlobStore) key(container, name string) string {
	return container + "/" + name
}

func (f *fakeBlobStore) Upload(_ context.Context, reader io.Reader, _ int64, name, container string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	f.uploadCalls++
	if f.failOn["upload"] || f.uploadCalls == f.failUploadCall {
		return "", fmt.Errorf("simulated upload failure")
	}
	f.objects[f.key(container, name)] = data
	return "http://blobs.local/" + container + "/" + name, nil
}

func (f *fakeBlobStore) Delete(_ context.Context, name, container string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, name)
	if f.failOn["delete"] {
		return false, fmt.Errorf("simulated delete failure")
	}
	key := f.key(container, name)
	if _, ok := f.objects[key]; !ok {
		return false, nil
	}
	delete(f.objects, key)
	return true, nil
}

func (f *fakeBlobStore) Download(_ context.Context, name, container string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[f.key(container, name)]
	if !ok {
		return nil, fmt.Errorf("object not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeBlobStore) SignedURL(_ context.Context, name, container string, _ time.Duration) (string, error) {
	return "http://blobs.local/" + container + "/" + name + "?signed=1", nil
}

func (f *fakeBlobStore) objectCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

// testEnv bundles the services under test against one database.
type testEnv struct {
	db       *gorm.DB
	blobs    *fakeBlobStore
	props    *PropertyService
	resolver *AmenityResolver
	media    *MediaService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	blobs := newFakeBlobStore()
	logger := testLogger()

	propertyRepo := repository.NewPropertyRepository(db)
	amenityRepo := repository.NewAmenityRepository(db)
	resolver := NewAmenityResolver(amenityRepo, logger)
	media := NewMediaService(blobs, propertyRepo, logger)

	return &testEnv{
		db:       db,
		blobs:    blobs,
		resolver: resolver,
		media:    media,
		props:    NewPropertyService(propertyRepo, resolver, media, logger),
	}
}

func validInput() PropertyInput {
	return PropertyInput{
		Title:        "Cozy studio near the university",
		Description:  "Fully furnished studio unit.",
		Type:         models.TypeApartment,
		Province:     "Metro Manila",
		City:         "Quezon City",
		MonthlyPrice: decimal.NewFromInt(7500),
		Status:       models.StatusActive,
	}
}
