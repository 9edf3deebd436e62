package session

import "sync"

// Speakers in the assistant transcript.
const (
	SpeakerUser      = "You"
	SpeakerAssistant = "Chatbot"
)

// DefaultTranscriptLimit is used when no limit is configured.
const DefaultTranscriptLimit = 200

type TranscriptEntry struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Line renders the entry the way the chat panel shows it.
func (e TranscriptEntry) Line() string {
	return e.Speaker + ": " + e.Text
}

// Transcript is an append-only conversation log holding at most limit entries.
// When full, the oldest entries are dropped first.
type Transcript struct {
	mu      sync.Mutex
	limit   int
	entries []TranscriptEntry
}

func NewTranscript(limit int) *Transcript {
	if limit <= 0 {
		limit = DefaultTranscriptLimit
	}
	return &Transcript{limit: limit}
}

func (t *Transcript) Append(speaker, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = append(t.entries, TranscriptEntry{Speaker: speaker, Text: text})
	if over := len(t.entries) - t.limit; over > 0 {
		t.entries = append(t.entries[:0:0], t.entries[over:]...)
	}
}

// Entries returns a copy, oldest first.
func (t *Transcript) Entries() []TranscriptEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]TranscriptEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
