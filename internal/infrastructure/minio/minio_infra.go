package minio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ColdBlood237/odin-inventory/internal/cfg"
	"github.com/ColdBlood237/odin-inventory/internal/domain"
	"github.com/ColdBlood237/odin-inventory/internal/usecase"
	"github.com/ColdBlood237/odin-inventory/pkg/e"
	"github.com/ColdBlood237/odin-inventory/pkg/jitter"
	"github.com/ColdBlood237/odin-inventory/pkg/logger"
	"github.com/google/uuid"
)

const (
	cleanupAttempts   = 3
	cleanupBackoff    = time.Second
	cleanupMaxBackoff = 8 * time.Second
)

// MinioInfrastructure управляет загрузкой, чтением и фоновой очисткой изображений в MinIO.
type MinioInfrastructure struct {
	imageRepo   usecase.ImageRepository
	cfg         *cfg.MinIOCfg
	logger      logger.Logger
	shutdownCtx context.Context
	wg          sync.WaitGroup
	backoff     time.Duration
}

func NewMinioInfrastructure(imageRepo usecase.ImageRepository, cfg *cfg.MinIOCfg, logger logger.Logger, shutdownCtx context.Context) *MinioInfrastructure {
	return &MinioInfrastructure{
		imageRepo:   imageRepo,
		cfg:         cfg,
		logger:      logger,
		shutdownCtx: shutdownCtx,
		backoff:     cleanupBackoff,
	}
}

// UploadImage сохраняет файл под ключом prefix/<uuid>.<ext>.
func (m *MinioInfrastructure) UploadImage(ctx context.Context, prefix string, upload *usecase.Upload) (*domain.Image, error) {
	const op = "MinioInfrastructure.UploadImage"

	ext, err := domain.ImageExtension(upload.ContentType)
	if err != nil {
		return nil, e.Wrap(op, fmt.Errorf("invalid mime type %s for %s: %w", upload.ContentType, upload.Filename, err))
	}

	objKey := fmt.Sprintf("%s/%s.%s", prefix, uuid.NewString(), ext)
	key, err := m.imageRepo.Upload(ctx, domain.NewImage(objKey, upload.ContentType, upload.Size()), upload.Data)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return domain.NewImage(key, upload.ContentType, upload.Size()), nil
}

func (m *MinioInfrastructure) GetImage(ctx context.Context, key string) (*usecase.ImageContent, error) {
	const op = "MinioInfrastructure.GetImage"

	content, err := m.imageRepo.Get(ctx, key)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return content, nil
}

// CleanupImages запускает фоновую очистку указанных ключей MinIO
func (m *MinioInfrastructure) CleanupImages(keys []string) {
	if len(keys) == 0 {
		return
	}
	m.wg.Add(1)
	go m.cleanupKeys(keys)
}

// cleanupKeys удаляет объекты с экспоненциальной задержкой и jitter.
func (m *MinioInfrastructure) cleanupKeys(keys []string) {
	defer m.wg.Done()
	const op = "MinioInfrastructure.cleanupKeys"
	m.logger.Debugf("%s: cleaning up %d keys", op, len(keys))

	ctx, cancel := context.WithTimeout(m.shutdownCtx, m.cfg.CleanupTimeout)
	defer cancel()

	for _, key := range keys {
		for attempt := 0; attempt < cleanupAttempts; attempt++ {
			err := m.imageRepo.Delete(ctx, key)
			if err == nil {
				break
			}

			if attempt == cleanupAttempts-1 {
				m.logger.Errorf(err, "%s: giving up on key=%s", op, key)
				break
			}

			select {
			case <-time.After(jitter.ExponentialBackoff(m.backoff, cleanupMaxBackoff, attempt, jitter.DefaultJitter)):
			case <-ctx.Done():
				m.logger.Warnf("%s: cleanup interrupted by shutdown, key=%v", op, key)
				return
			}
		}
	}
}

// WaitForCleanup ожидает завершения всех фоновых задач очистки с учётом таймаута завершения приложения.
func (m *MinioInfrastructure) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("minio cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}
