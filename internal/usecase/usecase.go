package usecase

import (
	"context"

	"github.com/ColdBlood237/odin-inventory/internal/domain"
	"github.com/google/uuid"
)

type CategoryUC interface {
	List(ctx context.Context) ([]*domain.Category, error)
	Create(ctx context.Context, fields RawFields, upload *Upload) (*CreateRes, error)
	Update(ctx context.Context, id uuid.UUID, fields RawFields, upload *Upload) (*UpdateRes, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Detail(ctx context.Context, id uuid.UUID) (*CategoryDetailRes, error)
	Image(ctx context.Context, id uuid.UUID) (*ImageContent, error)
}

type ItemUC interface {
	List(ctx context.Context) ([]ItemView, error)
	FormData(ctx context.Context, id *uuid.UUID) (*ItemFormRes, error)
	Create(ctx context.Context, fields RawFields, upload *Upload) (*CreateRes, error)
	Update(ctx context.Context, id uuid.UUID, fields RawFields, upload *Upload) (*UpdateRes, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Detail(ctx context.Context, id uuid.UUID) (*ItemView, error)
	GetItemsInfo(ctx context.Context, req *GetItemsReq) (*GetItemsRes, error)
	Image(ctx context.Context, id uuid.UUID) (*ImageContent, error)
}
