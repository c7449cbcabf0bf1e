package usecase

import (
	"context"

	"github.com/ColdBlood237/odin-inventory/internal/domain"
)

type ImagesInfra interface {
	UploadImage(ctx context.Context, prefix string, upload *Upload) (*domain.Image, error)
	GetImage(ctx context.Context, key string) (*ImageContent, error)
	CleanupImages(keys []string)
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// TxManager выполняет fn в транзакции хранилища.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
