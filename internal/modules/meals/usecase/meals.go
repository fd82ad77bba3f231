package usecase

import (
	"context"

	"mealsync/internal/modules/meals/domain"
	"mealsync/internal/modules/meals/dto"
	mealsin "mealsync/internal/modules/meals/port/in"
	"mealsync/internal/modules/meals/service"
)

type Interactor struct {
	svc *service.MealsService
}

func NewInteractor(svc *service.MealsService) mealsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Sync(ctx context.Context, input dto.SyncInput) (dto.SyncOutput, error) {
	result, err := i.svc.Sync(ctx, input.Date)
	if err != nil {
		return dto.SyncOutput{}, err
	}
	return dto.SyncOutput{
		Date:        result.Date,
		JSONPath:    result.JSONPath,
		HTMLPath:    result.HTMLPath,
		HTMLUpdated: result.HTMLUpdated,
		Payload:     result.Payload.Raw(),
		Summary:     toSummaryOutput(result.Summary),
	}, nil
}

func (i *Interactor) Fetch(ctx context.Context, input dto.FetchInput) (dto.FetchOutput, error) {
	payload, date, err := i.svc.Fetch(ctx, input.Date)
	if err != nil {
		return dto.FetchOutput{}, err
	}
	document, err := payload.Indent()
	if err != nil {
		return dto.FetchOutput{}, err
	}
	return dto.FetchOutput{
		Date:     date,
		Payload:  payload.Raw(),
		Document: document,
		Summary:  toSummaryOutput(domain.Summarize(payload)),
	}, nil
}

func toSummaryOutput(summary domain.Summary) dto.SummaryOutput {
	out := dto.SummaryOutput{HasItems: summary.HasItems, Date: summary.Date}
	for _, menu := range summary.Menus {
		out.Menus = append(out.Menus, dto.MenuCountOutput{Type: menu.Type, Count: menu.Count})
	}
	return out
}
