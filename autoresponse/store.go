package autoresponse

import (
	"context"

	"peacebot/model"
)

// Store is the persistence the auto-response components need.
// Lookups of missing records return an error matching database.ErrNotFound and
// unique-key collisions one matching database.ErrUniqueViolation.
type Store interface {
	FindAutoResponses(ctx context.Context, guildID string, filter model.AutoResponseFilter) ([]model.AutoResponse, error)
	GetAutoResponse(ctx context.Context, id string) (*model.AutoResponse, error)
	GetAutoResponseByTrigger(ctx context.Context, guildID, trigger string) (*model.AutoResponse, error)
	ExistsAutoResponse(ctx context.Context, guildID, trigger string) (bool, error)
	CreateAutoResponse(ctx context.Context, record model.AutoResponse) error
	CreateAutoResponses(ctx context.Context, records []model.AutoResponse) error
	UpdateAutoResponseEnabled(ctx context.Context, id string, enabled bool, updatedAt int64) error
	DeleteAutoResponse(ctx context.Context, id string) error
}
