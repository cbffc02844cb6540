package interview

import (
	"context"
	_ "embed"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"

	"github.com/mizutamari/keepsake/pkg/adapter"
	"github.com/mizutamari/keepsake/pkg/model"
	"github.com/mizutamari/keepsake/pkg/usecase/compose"
)

//go:embed prompt/interviewer.md
var interviewerPromptRaw string

// kickoffMessage triggers the greeting from the system instruction. It
// is sent to the model but never shown in the transcript.
const kickoffMessage = "Start the interview."

// fallbackGreeting is displayed when the model opens with empty text
const fallbackGreeting = "Hello! I'm your Birthday Page Planner. Let's create something magical! First, who is this birthday page for?"

type State string

const (
	StateInitializing      State = "initializing"
	StateAwaitingUser      State = "awaiting_user"
	StateAwaitingAssistant State = "awaiting_assistant"
	StateCompleting        State = "completing"
	StateDone              State = "done"
	StateErrored           State = "errored"
)

// Session conducts a single linear interview and decides when it is
// complete. It is content-agnostic: the topic order lives entirely in
// the interviewer instructions, the session only watches for the
// completion sentinel. The session owns its display transcript;
// the model-side history is an implementation detail of the transport.
//
// Turns are strictly sequential. The session is not safe for
// concurrent use; callers must not submit a turn while one is in
// flight.
type Session struct {
	gemini   adapter.Gemini
	composer *compose.UseCase
	timeout  time.Duration

	state      State
	transcript model.Transcript
	history    []*genai.Content
	page       *model.Page
}

// Turn is the outcome of one accepted user turn
type Turn struct {
	// Reply is the displayed assistant text, sentinel stripped. May be
	// empty when the assistant finished with nothing but the sentinel.
	Reply string

	// Completed reports that the interview finished and Page is set
	Completed bool

	Page *model.Page
}

// NewInput contains dependencies for creating an interview session
type NewInput struct {
	Gemini   adapter.Gemini
	Composer *compose.UseCase
}

type Option func(*Session)

// WithTimeout bounds each model turn
func WithTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.timeout = d
	}
}

func New(input NewInput, opts ...Option) (*Session, error) {
	if input.Gemini == nil {
		return nil, goerr.Wrap(model.ErrNotConfigured, "interview requires an AI client")
	}
	if input.Composer == nil {
		return nil, goerr.New("composer is required")
	}

	s := &Session{
		gemini:   input.Gemini,
		composer: input.Composer,
		timeout:  90 * time.Second,
		state:    StateInitializing,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *Session) State() State {
	return s.state
}

// Transcript returns a copy of the display transcript so far
func (s *Session) Transcript() model.Transcript {
	out := make(model.Transcript, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Page returns the extracted page once the session reached StateDone
func (s *Session) Page() *model.Page {
	return s.page
}

// Start sends the kickoff instruction and returns the first displayed
// assistant message
func (s *Session) Start(ctx context.Context) (string, error) {
	if s.state != StateInitializing {
		return "", goerr.New("session already started", goerr.V("state", s.state))
	}

	reply, err := s.turn(ctx, kickoffMessage)
	if err != nil {
		s.state = StateErrored
		return "", err
	}
	if reply == "" {
		reply = fallbackGreeting
	}

	s.transcript = append(s.transcript, model.ChatMessage{Speaker: model.SpeakerPlanner, Text: reply})
	s.state = StateAwaitingUser
	return reply, nil
}

// Send submits one user turn. Empty or whitespace-only input is
// rejected silently: no transition happens and (nil, nil) is returned.
// When the assistant emits the completion sentinel, the transcript is
// handed to extraction and the returned Turn carries the page.
func (s *Session) Send(ctx context.Context, text string) (*Turn, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}
	if s.state != StateAwaitingUser {
		return nil, goerr.New("session is not accepting input", goerr.V("state", s.state))
	}

	s.transcript = append(s.transcript, model.ChatMessage{Speaker: model.SpeakerUser, Text: trimmed})
	s.state = StateAwaitingAssistant

	reply, err := s.turn(ctx, trimmed)
	if err != nil {
		s.state = StateErrored
		return nil, err
	}

	if !strings.Contains(reply, model.CompletionSentinel) {
		s.transcript = append(s.transcript, model.ChatMessage{Speaker: model.SpeakerPlanner, Text: reply})
		s.state = StateAwaitingUser
		return &Turn{Reply: reply}, nil
	}

	display := strings.TrimSpace(strings.ReplaceAll(reply, model.CompletionSentinel, ""))
	if display != "" {
		s.transcript = append(s.transcript, model.ChatMessage{Speaker: model.SpeakerPlanner, Text: display})
	}
	s.state = StateCompleting

	page, err := s.finish(ctx)
	if err != nil {
		s.state = StateErrored
		return nil, err
	}

	return &Turn{Reply: display, Completed: true, Page: page}, nil
}

// Retry re-attempts extraction after a failure. The transcript is kept
// intact, no chat turn is re-sent.
func (s *Session) Retry(ctx context.Context) (*model.Page, error) {
	if s.state != StateErrored {
		return nil, goerr.New("nothing to retry", goerr.V("state", s.state))
	}

	s.state = StateCompleting
	page, err := s.finish(ctx)
	if err != nil {
		s.state = StateErrored
		return nil, err
	}
	return page, nil
}

func (s *Session) finish(ctx context.Context) (*model.Page, error) {
	page, err := s.composer.ExtractFromTranscript(ctx, s.transcript)
	if err != nil {
		return nil, err
	}

	s.page = page
	s.state = StateDone
	return page, nil
}

// turn sends one message through the transport, replaying the
// session's own accumulated history
func (s *Session) turn(ctx context.Context, message string) (string, error) {
	s.history = append(s.history, genai.NewContentFromText(message, genai.RoleUser))

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(interviewerPromptRaw, ""),
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.gemini.GenerateContent(ctx, s.history, config)
	if err != nil {
		return "", goerr.Wrap(err, "failed to send chat turn")
	}

	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		s.history = append(s.history, resp.Candidates[0].Content)
	}

	return strings.TrimSpace(adapter.ResponseText(resp)), nil
}
