package usecase

import (
	"time"

	"github.com/ColdBlood237/odin-inventory/internal/domain"
	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	CategoryCreated OutboxEventType = "category.created"
	CategoryUpdated OutboxEventType = "category.updated"
	CategoryDeleted OutboxEventType = "category.deleted"
	ItemCreated     OutboxEventType = "item.created"
	ItemUpdated     OutboxEventType = "item.updated"
	ItemDeleted     OutboxEventType = "item.deleted"
)

// OutboxEvent — событие изменения каталога, записываемое в той же транзакции, что и само изменение.
type OutboxEvent struct {
	ID          int64
	EventID     uuid.UUID
	EventType   OutboxEventType
	AggregateID uuid.UUID
	Payload     []byte // google.protobuf.Struct
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// NewOutboxEvent сериализует данные события в protobuf Struct.
func NewOutboxEvent(eventType OutboxEventType, aggregateID uuid.UUID, data map[string]any) (*OutboxEvent, error) {
	eventID := uuid.New()
	createdAt := time.Now().UTC()

	body, err := structpb.NewStruct(map[string]any{
		"event_id":     eventID.String(),
		"event_type":   string(eventType),
		"aggregate_id": aggregateID.String(),
		"occurred_at":  createdAt.Format(time.RFC3339Nano),
		"data":         data,
	})
	if err != nil {
		return nil, err
	}

	payload, err := proto.Marshal(body)
	if err != nil {
		return nil, err
	}

	return &OutboxEvent{
		EventID:     eventID,
		EventType:   eventType,
		AggregateID: aggregateID,
		Payload:     payload,
		Status:      Pending,
		CreatedAt:   createdAt,
	}, nil
}

// DecodeOutboxPayload разбирает payload события обратно в Struct.
func DecodeOutboxPayload(payload []byte) (*structpb.Struct, error) {
	var body structpb.Struct
	if err := proto.Unmarshal(payload, &body); err != nil {
		return nil, err
	}
	return &body, nil
}

func categoryEventData(c *domain.Category) map[string]any {
	return map[string]any{
		"id":          c.ID.String(),
		"name":        c.Name,
		"description": c.Description,
		"image_key":   imageKey(c.Image),
	}
}

func itemEventData(i *domain.Item) map[string]any {
	categoryIDs := make([]any, len(i.CategoryIDs))
	for idx, id := range i.CategoryIDs {
		categoryIDs[idx] = id.String()
	}

	return map[string]any{
		"id":           i.ID.String(),
		"name":         i.Name,
		"description":  i.Description,
		"price":        i.Price.String(),
		"stock":        i.Stock,
		"category_ids": categoryIDs,
		"image_key":    imageKey(i.Image),
	}
}

func deletedEventData(id uuid.UUID) map[string]any {
	return map[string]any{"id": id.String()}
}

func imageKey(image *domain.Image) any {
	if image == nil {
		return nil
	}
	return image.Key
}
