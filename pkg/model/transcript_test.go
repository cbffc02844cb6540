package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/mizutamari/keepsake/pkg/model"
)

func TestTranscriptRender(t *testing.T) {
	transcript := model.Transcript{
		{Speaker: model.SpeakerPlanner, Text: "Who is this for?"},
		{Speaker: model.SpeakerUser, Text: "My friend Mei"},
		{Speaker: model.SpeakerPlanner, Text: "Lovely! " + model.CompletionSentinel},
	}

	rendered := transcript.Render()

	gt.S(t, rendered).Contains("Planner: Who is this for?")
	gt.S(t, rendered).Contains("User: My friend Mei")
	gt.S(t, rendered).NotContains(model.CompletionSentinel)
}

func TestTranscriptRenderEmpty(t *testing.T) {
	gt.V(t, model.Transcript{}.Render()).Equal("")
}
