package out

import (
	"context"

	chatout "heartrisk/internal/modules/chat/port/out"
	"heartrisk/internal/platform/httpjson"
)

const ChatPath = "/api/chat"

type HTTPAdvisor struct {
	client *httpjson.Client
}

func NewHTTPAdvisor(client *httpjson.Client) chatout.Advisor {
	return &HTTPAdvisor{client: client}
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

func (a *HTTPAdvisor) Ask(ctx context.Context, requestID, message string) (string, error) {
	var resp chatResponse
	if err := a.client.Post(ctx, ChatPath, requestID, chatRequest{Message: message}, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}
