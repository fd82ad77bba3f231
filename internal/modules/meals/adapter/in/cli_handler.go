package in

import (
	"context"

	"mealsync/internal/modules/meals/dto"
	mealsin "mealsync/internal/modules/meals/port/in"
)

type CLIHandler struct {
	usecase mealsin.Usecase
}

func NewCLIHandler(usecase mealsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Sync(ctx context.Context, date string) (dto.SyncOutput, error) {
	return h.usecase.Sync(ctx, dto.SyncInput{Date: date})
}

func (h CLIHandler) Fetch(ctx context.Context, date string) (dto.FetchOutput, error) {
	return h.usecase.Fetch(ctx, dto.FetchInput{Date: date})
}
