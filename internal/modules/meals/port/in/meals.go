package in

import (
	"context"

	"mealsync/internal/modules/meals/dto"
)

type Usecase interface {
	Sync(ctx context.Context, input dto.SyncInput) (dto.SyncOutput, error)
	Fetch(ctx context.Context, input dto.FetchInput) (dto.FetchOutput, error)
}
