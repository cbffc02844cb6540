package interview_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"google.golang.org/genai"

	"github.com/mizutamari/keepsake/pkg/model"
	"github.com/mizutamari/keepsake/pkg/usecase/compose"
	"github.com/mizutamari/keepsake/pkg/usecase/interview"
)

// mockGemini serves chat turns from a script and extraction requests
// from extractHandler. Extraction calls are distinguished by their
// structured-output config.
type mockGemini struct {
	script         []string
	turnCount      int
	extractCount   int
	turnErr        error
	extractHandler func() (string, error)
}

func (m *mockGemini) GenerateContent(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if config != nil && config.ResponseMIMEType == "application/json" {
		m.extractCount++
		text, err := m.extractHandler()
		if err != nil {
			return nil, err
		}
		return response(text), nil
	}

	if m.turnErr != nil {
		return nil, m.turnErr
	}

	if m.turnCount >= len(m.script) {
		return response("And then?"), nil
	}
	text := m.script[m.turnCount]
	m.turnCount++
	return response(text), nil
}

func response(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: genai.NewContentFromText(text, genai.RoleModel)},
		},
	}
}

const pageJSON = `{"basics":{"recipientName":"Mei","senderName":"Ken"},"message":{"main":"Happy birthday!"}}`

func goodExtraction() (string, error) {
	return pageJSON, nil
}

func newSession(t *testing.T, gemini *mockGemini) *interview.Session {
	session, err := interview.New(interview.NewInput{
		Gemini:   gemini,
		Composer: compose.New(gemini),
	})
	gt.NoError(t, err)
	return session
}

func TestSessionStart(t *testing.T) {
	gemini := &mockGemini{
		script:         []string{"Hi! Who is the birthday person?"},
		extractHandler: goodExtraction,
	}
	session := newSession(t, gemini)
	gt.V(t, session.State()).Equal(interview.StateInitializing)

	greeting, err := session.Start(context.Background())
	gt.NoError(t, err)

	gt.V(t, greeting).Equal("Hi! Who is the birthday person?")
	gt.V(t, session.State()).Equal(interview.StateAwaitingUser)

	// The kickoff instruction is not part of the display transcript.
	transcript := session.Transcript()
	gt.A(t, transcript).Length(1)
	gt.V(t, transcript[0].Speaker).Equal(model.SpeakerPlanner)
}

func TestSessionStartFallbackGreeting(t *testing.T) {
	gemini := &mockGemini{
		script:         []string{""},
		extractHandler: goodExtraction,
	}
	session := newSession(t, gemini)

	greeting, err := session.Start(context.Background())
	gt.NoError(t, err)
	gt.S(t, greeting).Contains("Birthday Page Planner")
}

func TestSessionRejectsEmptyInputSilently(t *testing.T) {
	gemini := &mockGemini{
		script:         []string{"Hi! Who is the birthday person?"},
		extractHandler: goodExtraction,
	}
	session := newSession(t, gemini)
	_, err := session.Start(context.Background())
	gt.NoError(t, err)

	before := len(session.Transcript())
	turnsBefore := gemini.turnCount

	for _, input := range []string{"", "   ", "\n\t"} {
		turn, err := session.Send(context.Background(), input)
		gt.NoError(t, err)
		gt.V(t, turn).Nil()
	}

	gt.V(t, session.State()).Equal(interview.StateAwaitingUser)
	gt.V(t, len(session.Transcript())).Equal(before)
	gt.V(t, gemini.turnCount).Equal(turnsBefore)
}

func TestSessionPlainTurn(t *testing.T) {
	gemini := &mockGemini{
		script: []string{
			"Hi! Who is the birthday person?",
			"Lovely! Who is this from?",
		},
		extractHandler: goodExtraction,
	}
	session := newSession(t, gemini)
	_, err := session.Start(context.Background())
	gt.NoError(t, err)

	turn, err := session.Send(context.Background(), "It's for Mei")
	gt.NoError(t, err)

	gt.V(t, turn.Completed).Equal(false)
	gt.V(t, turn.Reply).Equal("Lovely! Who is this from?")
	gt.V(t, session.State()).Equal(interview.StateAwaitingUser)

	transcript := session.Transcript()
	gt.A(t, transcript).Length(3)
	gt.V(t, transcript[1].Speaker).Equal(model.SpeakerUser)
	gt.V(t, transcript[1].Text).Equal("It's for Mei")
	gt.V(t, gemini.extractCount).Equal(0)
}

func TestSessionCompletionSentinel(t *testing.T) {
	gemini := &mockGemini{
		script: []string{
			"Hi! Who is the birthday person?",
			"Great, one more thing! " + model.CompletionSentinel,
		},
		extractHandler: goodExtraction,
	}
	session := newSession(t, gemini)
	_, err := session.Start(context.Background())
	gt.NoError(t, err)

	turn, err := session.Send(context.Background(), "That's it, we're done")
	gt.NoError(t, err)

	gt.V(t, turn.Completed).Equal(true)
	gt.V(t, turn.Reply).Equal("Great, one more thing!")
	gt.V(t, session.State()).Equal(interview.StateDone)
	gt.V(t, gemini.extractCount).Equal(1)

	gt.V(t, turn.Page).NotNil()
	gt.V(t, turn.Page.Basics.RecipientName).Equal("Mei")
	gt.V(t, session.Page()).Equal(turn.Page)

	// The stripped sentinel never reaches the display transcript.
	for _, msg := range session.Transcript() {
		gt.S(t, msg.Text).NotContains(model.CompletionSentinel)
	}
}

func TestSessionSentinelOnlyReply(t *testing.T) {
	gemini := &mockGemini{
		script: []string{
			"Hi! Who is the birthday person?",
			model.CompletionSentinel,
		},
		extractHandler: goodExtraction,
	}
	session := newSession(t, gemini)
	_, err := session.Start(context.Background())
	gt.NoError(t, err)

	before := len(session.Transcript())
	turn, err := session.Send(context.Background(), "Done!")
	gt.NoError(t, err)

	gt.V(t, turn.Completed).Equal(true)
	gt.V(t, turn.Reply).Equal("")
	// No empty planner message is appended for a bare sentinel.
	gt.V(t, len(session.Transcript())).Equal(before + 1)
}

func TestSessionTransportFailurePreservesTranscript(t *testing.T) {
	gemini := &mockGemini{
		script:         []string{"Hi! Who is the birthday person?"},
		extractHandler: goodExtraction,
	}
	session := newSession(t, gemini)
	_, err := session.Start(context.Background())
	gt.NoError(t, err)

	gemini.turnErr = errors.New("connection reset")

	_, err = session.Send(context.Background(), "It's for Mei")
	gt.Error(t, err)
	gt.V(t, session.State()).Equal(interview.StateErrored)

	transcript := session.Transcript()
	gt.A(t, transcript).Length(2)
	gt.V(t, transcript[1].Text).Equal("It's for Mei")
}

func TestSessionRetryRerunsExtractionOnly(t *testing.T) {
	failures := 1
	gemini := &mockGemini{
		script: []string{
			"Hi! Who is the birthday person?",
			"All set! " + model.CompletionSentinel,
		},
	}
	gemini.extractHandler = func() (string, error) {
		if failures > 0 {
			failures--
			return "not json at all", nil
		}
		return pageJSON, nil
	}

	session := newSession(t, gemini)
	_, err := session.Start(context.Background())
	gt.NoError(t, err)

	_, err = session.Send(context.Background(), "Done!")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrExtraction))
	gt.V(t, session.State()).Equal(interview.StateErrored)

	transcriptBefore := session.Transcript()
	turnsBefore := gemini.turnCount

	page, err := session.Retry(context.Background())
	gt.NoError(t, err)

	gt.V(t, session.State()).Equal(interview.StateDone)
	gt.V(t, page.Basics.RecipientName).Equal("Mei")
	gt.V(t, gemini.extractCount).Equal(2)

	// Retry never re-sends a chat turn and keeps the transcript intact.
	gt.V(t, gemini.turnCount).Equal(turnsBefore)
	gt.V(t, len(session.Transcript())).Equal(len(transcriptBefore))
}

func TestSessionRefusesInputWhileNotAwaitingUser(t *testing.T) {
	gemini := &mockGemini{
		script:         []string{"Hi! Who is the birthday person?"},
		extractHandler: goodExtraction,
	}
	session := newSession(t, gemini)

	// Not started yet: no turn can be submitted.
	_, err := session.Send(context.Background(), "hello")
	gt.Error(t, err)
}

func TestSessionRequiresAIClient(t *testing.T) {
	_, err := interview.New(interview.NewInput{
		Gemini:   nil,
		Composer: compose.New(nil),
	})
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrNotConfigured))
}
