package compose

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"text/template"

	"google.golang.org/genai"

	"github.com/mizutamari/keepsake/pkg/adapter"
	"github.com/mizutamari/keepsake/pkg/model"
	"github.com/mizutamari/keepsake/pkg/utils/logging"
)

//go:embed prompt/polish.md
var polishPromptRaw string

var polishPromptTmpl = template.Must(template.New("polish").Parse(polishPromptRaw))

// PolishDraft asks the model to enrich a manually entered page in
// place. Best effort: on any failure the original page is returned
// unchanged, so manual submission never blocks on the model.
func (uc *UseCase) PolishDraft(ctx context.Context, page *model.Page) *model.Page {
	if uc.gemini == nil {
		return page
	}

	pageJSON, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		logging.From(ctx).Warn("failed to encode page for polishing", "error", err)
		return page
	}

	var buf bytes.Buffer
	if err := polishPromptTmpl.Execute(&buf, map[string]any{
		"PageJSON": string(pageJSON),
	}); err != nil {
		logging.From(ctx).Warn("failed to build polish prompt", "error", err)
		return page
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
		logging.From(ctx).Warn("polish request failed, keeping original", "error", err)
		return page
	}

	polished, err := decodePagePatch(adapter.ResponseText(resp), page)
	if err != nil {
		logging.From(ctx).Warn("polish output unusable, keeping original", "error", err)
		return page
	}

	polished.RegenerateItemIDs()
	return polished
}
