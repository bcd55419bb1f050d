package customizer

import (
	"context"

	"github.com/RandalBristow/pizza-palace-sub000/internal/customizer/dto"
	"github.com/RandalBristow/pizza-palace-sub000/internal/model"
)

type UseCase interface {
	StartSession(ctx context.Context, input *dto.StartSessionInput) (*dto.SessionView, error)
	GetSession(ctx context.Context, id string) (*dto.SessionView, error)
	ChooseItem(ctx context.Context, input *dto.ChooseItemInput) (*dto.SessionView, error)
	SetTopping(ctx context.Context, input *dto.SetToppingInput) (*dto.SessionView, error)
	RemoveTopping(ctx context.Context, input *dto.RemoveToppingInput) (*dto.SessionView, error)
	// Confirm finalizes the session into a cart line, publishes it and ends the session.
	Confirm(ctx context.Context, id string) (*model.Line, error)
	Abandon(ctx context.Context, id string) error
}
