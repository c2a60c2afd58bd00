package chat

// Sender identifies who authored a conversation turn.
type Sender string

const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)

// Message is a single immutable conversation turn.
type Message struct {
	ID        string   `json:"id"`
	SessionID string   `json:"sessionId,omitempty"`
	Sender    Sender   `json:"sender"`
	Text      string   `json:"text"`
	Timestamp int64    `json:"timestamp"`
	Tags      []string `json:"tags,omitempty"`
}

// CountUserMessages returns how many turns in history were authored by the visitor.
func CountUserMessages(history []Message) int {
	count := 0
	for _, msg := range history {
		if msg.Sender == SenderUser {
			count++
		}
	}
	return count
}
