package minio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ColdBlood237/odin-inventory/internal/cfg"
	"github.com/ColdBlood237/odin-inventory/internal/domain"
	"github.com/ColdBlood237/odin-inventory/internal/usecase"
	"github.com/ColdBlood237/odin-inventory/pkg/e"
	"github.com/ColdBlood237/odin-inventory/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockImageRepo struct {
	mock.Mock
}

func (m *mockImageRepo) Upload(ctx context.Context, image *domain.Image, data []byte) (string, error) {
	args := m.Called(ctx, image, data)
	return args.String(0), args.Error(1)
}

func (m *mockImageRepo) Get(ctx context.Context, key string) (*usecase.ImageContent, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ImageContent), args.Error(1)
}

func (m *mockImageRepo) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func newInfra(repo usecase.ImageRepository) *MinioInfrastructure {
	infra := NewMinioInfrastructure(repo, &cfg.MinIOCfg{BucketName: "catalog", CleanupTimeout: 5 * time.Second},
		logger.NewDiscardLogger(), context.Background())
	infra.backoff = time.Millisecond
	return infra
}

func TestUploadImage(t *testing.T) {
	var uploadedKey string
	repo := new(mockImageRepo)
	repo.On("Upload", mock.Anything, mock.AnythingOfType("*domain.Image"), []byte("png")).
		Run(func(args mock.Arguments) {
			uploadedKey = args.Get(1).(*domain.Image).Key
		}).
		Return("items/stored.png", nil)

	image, err := newInfra(repo).UploadImage(context.Background(), "items", usecase.NewUpload([]byte("png"), "image/png", "a.png"))
	require.NoError(t, err)

	assert.Equal(t, "items/stored.png", image.Key)
	assert.Equal(t, "image/png", image.ContentType)
	assert.Equal(t, int64(3), image.Size)
	assert.Regexp(t, `^items/[0-9a-f-]{36}\.png$`, uploadedKey)
}

func TestUploadImage_DoesNotMutateUploadedHandle(t *testing.T) {
	repo := new(mockImageRepo)
	repo.On("Upload", mock.Anything, mock.AnythingOfType("*domain.Image"), []byte("png")).
		Return("items/stored.png", nil)

	image, err := newInfra(repo).UploadImage(context.Background(), "items", usecase.NewUpload([]byte("png"), "image/png", "a.png"))
	require.NoError(t, err)

	sent := repo.Calls[0].Arguments.Get(1).(*domain.Image)
	assert.NotSame(t, sent, image)
	assert.Regexp(t, `^items/[0-9a-f-]{36}\.png$`, sent.Key)
}

func TestUploadImage_UnsupportedType(t *testing.T) {
	repo := new(mockImageRepo)

	_, err := newInfra(repo).UploadImage(context.Background(), "items", usecase.NewUpload([]byte("gif"), "image/gif", "a.gif"))

	assert.ErrorIs(t, err, e.ErrUnsupportedMediaType)
	repo.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestCleanupImages_Retries(t *testing.T) {
	repo := new(mockImageRepo)
	repo.On("Delete", mock.Anything, "a").Return(errors.New("unavailable")).Once()
	repo.On("Delete", mock.Anything, "a").Return(nil).Once()
	repo.On("Delete", mock.Anything, "b").Return(nil).Once()

	infra := newInfra(repo)
	infra.CleanupImages([]string{"a", "b"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, infra.WaitForCleanup(ctx))

	repo.AssertNumberOfCalls(t, "Delete", 3)
}

func TestCleanupImages_GivesUp(t *testing.T) {
	repo := new(mockImageRepo)
	repo.On("Delete", mock.Anything, "a").Return(errors.New("unavailable"))

	infra := newInfra(repo)
	infra.CleanupImages([]string{"a"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, infra.WaitForCleanup(ctx))

	repo.AssertNumberOfCalls(t, "Delete", cleanupAttempts)
}

func TestGetImage(t *testing.T) {
	repo := new(mockImageRepo)
	repo.On("Get", mock.Anything, "missing").Return(nil, e.ErrNotFound)

	_, err := newInfra(repo).GetImage(context.Background(), "missing")

	assert.ErrorIs(t, err, e.ErrNotFound)
}
