package compose

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"

	"github.com/mizutamari/keepsake/pkg/adapter"
	"github.com/mizutamari/keepsake/pkg/model"
)

//go:embed prompt/extract.md
var extractPromptRaw string

var extractPromptTmpl = template.Must(template.New("extract").Parse(extractPromptRaw))

// ExtractFromTranscript converts an interview transcript into a fully
// shaped page. The model result is merged over the default shape and
// every memory and wish receives a fresh identifier.
func (uc *UseCase) ExtractFromTranscript(ctx context.Context, transcript model.Transcript) (*model.Page, error) {
	if uc.gemini == nil {
		return nil, goerr.Wrap(model.ErrNotConfigured, "cannot extract page data")
	}

	var buf bytes.Buffer
	if err := extractPromptTmpl.Execute(&buf, map[string]any{
		"Transcript": transcript.Render(),
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to execute extract prompt template")
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	contents := []*genai.Content{
		genai.NewContentFromText(buf.String(), genai.RoleUser),
	}

	resp, err := uc.gemini.GenerateContent(ctx, contents, config)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate page data")
	}

	page, err := decodePagePatch(adapter.ResponseText(resp), model.DefaultPage())
	if err != nil {
		return nil, err
	}

	page.RegenerateItemIDs()
	return page, nil
}

// decodePagePatch parses model output defensively and merges it over
// the given base shape
func decodePagePatch(text string, base *model.Page) (*model.Page, error) {
	cleaned := CleanJSON(text)

	var patch map[string]any
	if err := json.Unmarshal([]byte(cleaned), &patch); err != nil {
		return nil, goerr.Wrap(model.ErrExtraction, "model output is not a JSON object",
			goerr.V("output", text))
	}

	page, err := model.MergePatch(base, patch)
	if err != nil {
		return nil, goerr.Wrap(model.ErrExtraction, "model output does not fit the page shape",
			goerr.V("output", text))
	}

	return page, nil
}
