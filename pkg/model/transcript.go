package model

import "strings"

// CompletionSentinel is the exact marker the interviewer emits when it
// considers the interview finished.
const CompletionSentinel = "[DONE]"

type Speaker string

const (
	SpeakerUser    Speaker = "user"
	SpeakerPlanner Speaker = "planner"
)

// ChatMessage is one display message of the interview transcript
type ChatMessage struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// Transcript is the ordered list of display messages exchanged during
// the interview, independent of the AI transport's internal history.
type Transcript []ChatMessage

// Render serializes the transcript into a speaker-labeled text block
// for the extraction prompt. The completion sentinel is stripped.
func (t Transcript) Render() string {
	lines := make([]string, 0, len(t))
	for _, msg := range t {
		label := "Planner"
		if msg.Speaker == SpeakerUser {
			label = "User"
		}
		lines = append(lines, label+": "+msg.Text)
	}
	return strings.ReplaceAll(strings.Join(lines, "\n"), CompletionSentinel, "")
}
