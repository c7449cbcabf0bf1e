package grpc

import (
	"errors"

	"github.com/ColdBlood237/odin-inventory/internal/usecase"
	"github.com/ColdBlood237/odin-inventory/pkg/e"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func GRPCErrorResponse(err error) error {
	switch {
	case errors.Is(err, e.ErrNoItems):
		return status.Error(codes.InvalidArgument, e.ErrNoItems.Error())
	case errors.Is(err, e.ErrInvalidID):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, e.ErrInternalServerError.Error())
	}
}

// fromGRPCIDs разбирает список строковых UUID из запроса.
func fromGRPCIDs(list *structpb.ListValue) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(list.GetValues()))
	for _, v := range list.GetValues() {
		id, err := uuid.Parse(v.GetStringValue())
		if err != nil {
			return nil, e.Wrap(v.GetStringValue(), e.ErrInvalidID)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func toGRPCItem(v *usecase.ItemView) map[string]any {
	categories := make([]any, len(v.Categories))
	for i, c := range v.Categories {
		categories[i] = map[string]any{"id": c.ID.String(), "name": c.Name}
	}

	return map[string]any{
		"id":          v.ID.String(),
		"name":        v.Name,
		"description": v.Description,
		"price":       v.Price.StringFixed(2),
		"stock":       v.Stock,
		"categories":  categories,
	}
}

func toGRPCItemsInfo(res *usecase.GetItemsRes) (*structpb.Struct, error) {
	items := make([]any, len(res.Items))
	for i := range res.Items {
		items[i] = toGRPCItem(&res.Items[i])
	}

	notFound := make([]any, len(res.NotFound))
	for i, id := range res.NotFound {
		notFound[i] = id.String()
	}

	return structpb.NewStruct(map[string]any{
		"items":     items,
		"not_found": notFound,
	})
}
