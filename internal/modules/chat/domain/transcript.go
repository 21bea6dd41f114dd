package domain

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is one transcript entry. Seq is the sequence number of the user
// message; a bot reply carries the Seq of the message it answers.
type Message struct {
	ID   string `json:"id"`
	Role Role   `json:"type"`
	Text string `json:"message"`
	Seq  uint64 `json:"seq"`
}

// Transcript is an ordered, append-only log of chat messages. It is not
// safe for concurrent use.
type Transcript struct {
	messages    []Message
	lastSeq     uint64
	lastReplied uint64
}

// AppendUser records a user message and assigns it the next sequence number.
func (t *Transcript) AppendUser(id, text string) Message {
	t.lastSeq++
	msg := Message{ID: id, Role: RoleUser, Text: text, Seq: t.lastSeq}
	t.messages = append(t.messages, msg)
	return msg
}

// AcceptReply appends a bot reply to message seq unless a reply to a newer
// message is already in the transcript; such a reply is stale and dropped.
func (t *Transcript) AcceptReply(id string, seq uint64, text string) (Message, bool) {
	if seq == 0 || seq > t.lastSeq || seq <= t.lastReplied {
		return Message{}, false
	}
	t.lastReplied = seq
	msg := Message{ID: id, Role: RoleBot, Text: text, Seq: seq}
	t.messages = append(t.messages, msg)
	return msg, true
}

func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

func (t *Transcript) Len() int {
	return len(t.messages)
}
