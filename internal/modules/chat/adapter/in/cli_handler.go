package in

import (
	"context"

	chatdto "heartrisk/internal/modules/chat/dto"
	chatin "heartrisk/internal/modules/chat/port/in"
)

type CLIHandler struct {
	usecase chatin.Usecase
}

func NewCLIHandler(usecase chatin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Post(ctx context.Context, text string) (chatdto.PostOutput, error) {
	return h.usecase.Post(ctx, chatdto.PostInput{Text: text})
}

func (h CLIHandler) Relay(ctx context.Context, pending chatdto.PendingMessage) (chatdto.RelayOutput, error) {
	return h.usecase.Relay(ctx, pending)
}

func (h CLIHandler) Send(ctx context.Context, text string) (chatdto.SendOutput, error) {
	return h.usecase.Send(ctx, chatdto.PostInput{Text: text})
}

func (h CLIHandler) Transcript(ctx context.Context) ([]chatdto.MessageOutput, error) {
	return h.usecase.Transcript(ctx)
}
