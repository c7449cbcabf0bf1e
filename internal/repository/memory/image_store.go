package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/ColdBlood237/odin-inventory/internal/domain"
	"github.com/ColdBlood237/odin-inventory/internal/usecase"
	"github.com/ColdBlood237/odin-inventory/pkg/e"
	"github.com/google/uuid"
)

// ImageStore хранит изображения в памяти. Очистка выполняется синхронно.
type ImageStore struct {
	mu      sync.RWMutex
	objects map[string]usecase.ImageContent
}

func NewImageStore() *ImageStore {
	return &ImageStore{objects: make(map[string]usecase.ImageContent)}
}

func (s *ImageStore) UploadImage(_ context.Context, prefix string, upload *usecase.Upload) (*domain.Image, error) {
	ext, err := domain.ImageExtension(upload.ContentType)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/%s.%s", prefix, uuid.NewString(), ext)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = usecase.ImageContent{Data: upload.Data, ContentType: upload.ContentType}

	return domain.NewImage(key, upload.ContentType, upload.Size()), nil
}

func (s *ImageStore) GetImage(_ context.Context, key string) (*usecase.ImageContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key]
	if !ok {
		return nil, e.Wrap("image "+key, e.ErrNotFound)
	}
	return &obj, nil
}

func (s *ImageStore) CleanupImages(keys []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.objects, key)
	}
}

// Keys возвращает ключи всех хранимых объектов.
func (s *ImageStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	return keys
}
