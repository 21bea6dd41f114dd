package in

import (
	"context"

	"heartrisk/internal/modules/chat/dto"
)

type Usecase interface {
	Post(ctx context.Context, input dto.PostInput) (dto.PostOutput, error)
	Relay(ctx context.Context, pending dto.PendingMessage) (dto.RelayOutput, error)
	Send(ctx context.Context, input dto.PostInput) (dto.SendOutput, error)
	Transcript(ctx context.Context) ([]dto.MessageOutput, error)
}
