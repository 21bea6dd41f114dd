package service

import (
	"context"
	"fmt"

	chatout "heartrisk/internal/modules/chat/port/out"
	"heartrisk/internal/platform/id"
)

type ChatService struct {
	idGen   id.Generator
	advisor chatout.Advisor
}

func NewChatService(idGen id.Generator, advisor chatout.Advisor) *ChatService {
	return &ChatService{idGen: idGen, advisor: advisor}
}

func (s *ChatService) NewID() string {
	return s.idGen.New()
}

// Ask forwards the raw message text; whitespace is preserved.
func (s *ChatService) Ask(ctx context.Context, requestID, message string) (string, error) {
	reply, err := s.advisor.Ask(ctx, requestID, message)
	if err != nil {
		return "", fmt.Errorf("ask advisor: %w", err)
	}
	return reply, nil
}
