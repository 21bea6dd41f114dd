package usecase

import (
	"context"
	"strings"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"heartrisk/internal/modules/chat/domain"
	chatdto "heartrisk/internal/modules/chat/dto"
	chatin "heartrisk/internal/modules/chat/port/in"
	"heartrisk/internal/modules/chat/service"
)

type Interactor struct {
	svc    *service.ChatService
	logger hclog.Logger

	mu         sync.Mutex
	transcript domain.Transcript
}

func NewInteractor(svc *service.ChatService, logger hclog.Logger) chatin.Usecase {
	return &Interactor{svc: svc, logger: logger}
}

// Post appends the user message before any network traffic. Blank input is
// skipped without touching the transcript.
func (i *Interactor) Post(_ context.Context, input chatdto.PostInput) (chatdto.PostOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return chatdto.PostOutput{Skipped: true}, nil
	}
	i.mu.Lock()
	msg := i.transcript.AppendUser(i.svc.NewID(), input.Text)
	i.mu.Unlock()
	return chatdto.PostOutput{Pending: chatdto.PendingMessage{ID: msg.ID, Seq: msg.Seq, Text: msg.Text}}, nil
}

// Relay asks the advisor about a posted message and appends the reply. On
// failure nothing is appended.
func (i *Interactor) Relay(ctx context.Context, pending chatdto.PendingMessage) (chatdto.RelayOutput, error) {
	reply, err := i.svc.Ask(ctx, pending.ID, pending.Text)
	if err != nil {
		i.logger.Error("chat relay failed", "message_id", pending.ID, "seq", pending.Seq, "error", err)
		return chatdto.RelayOutput{}, err
	}

	i.mu.Lock()
	msg, ok := i.transcript.AcceptReply(i.svc.NewID(), pending.Seq, reply)
	i.mu.Unlock()
	if !ok {
		i.logger.Warn("dropping stale chat reply", "message_id", pending.ID, "seq", pending.Seq)
		return chatdto.RelayOutput{Stale: true}, nil
	}
	return chatdto.RelayOutput{Reply: toOutput(msg)}, nil
}

func (i *Interactor) Send(ctx context.Context, input chatdto.PostInput) (chatdto.SendOutput, error) {
	posted, err := i.Post(ctx, input)
	if err != nil || posted.Skipped {
		return chatdto.SendOutput{Skipped: posted.Skipped}, err
	}
	user := chatdto.MessageOutput{ID: posted.Pending.ID, Role: string(domain.RoleUser), Text: posted.Pending.Text, Seq: posted.Pending.Seq}
	relayed, err := i.Relay(ctx, posted.Pending)
	if err != nil {
		return chatdto.SendOutput{User: user}, err
	}
	return chatdto.SendOutput{User: user, Reply: relayed.Reply, Stale: relayed.Stale}, nil
}

func (i *Interactor) Transcript(_ context.Context) ([]chatdto.MessageOutput, error) {
	i.mu.Lock()
	messages := i.transcript.Messages()
	i.mu.Unlock()
	out := make([]chatdto.MessageOutput, 0, len(messages))
	for _, m := range messages {
		out = append(out, toOutput(m))
	}
	return out, nil
}

func toOutput(m domain.Message) chatdto.MessageOutput {
	return chatdto.MessageOutput{ID: m.ID, Role: string(m.Role), Text: m.Text, Seq: m.Seq}
}
