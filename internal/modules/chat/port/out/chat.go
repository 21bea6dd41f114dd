package out

import "context"

// Advisor is the remote chat service.
type Advisor interface {
	Ask(ctx context.Context, requestID, message string) (string, error)
}
