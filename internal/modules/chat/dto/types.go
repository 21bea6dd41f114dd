package dto

type MessageOutput struct {
	ID   string
	Role string
	Text string
	Seq  uint64
}

// PendingMessage identifies a posted user message awaiting its reply.
type PendingMessage struct {
	ID   string
	Seq  uint64
	Text string
}

type PostInput struct {
	Text string
}

type PostOutput struct {
	Pending PendingMessage
	Skipped bool
}

type RelayOutput struct {
	Reply MessageOutput
	Stale bool
}

type SendOutput struct {
	Skipped bool
	User    MessageOutput
	Reply   MessageOutput
	Stale   bool
}
