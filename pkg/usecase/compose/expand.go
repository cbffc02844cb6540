package compose

import (
	"bytes"
	"context"
	_ "embed"
	"strings"
	"text/template"

	"google.golang.org/genai"

	"github.com/mizutamari/keepsake/pkg/adapter"
	"github.com/mizutamari/keepsake/pkg/utils/logging"
)

//go:embed prompt/expand.md
var expandPromptRaw string

var expandPromptTmpl = template.Must(template.New("expand").Parse(expandPromptRaw))

// ExpandText rewrites one free-text field in the requested tone.
// Pure enhancement: empty input and every failure fall back to the
// original text.
func (uc *UseCase) ExpandText(ctx context.Context, text, fieldContext, tone string) string {
	if strings.TrimSpace(text) == "" || uc.gemini == nil {
		return text
	}

	if tone == "" {
		tone = "Romantic"
	}

	var buf bytes.Buffer
	if err := expandPromptTmpl.Execute(&buf, map[string]any{
		"Text":    text,
		"Context": fieldContext,
		"Tone":    tone,
	}); err != nil {
		logging.From(ctx).Warn("failed to build expand prompt", "error", err)
		return text
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromText(buf.String(), genai.RoleUser),
	}

	resp, err := uc.gemini.GenerateContent(ctx, contents, nil)
	if err != nil {
		logging.From(ctx).Warn("expand request failed, keeping original", "error", err)
		return text
	}

	expanded := strings.TrimSpace(adapter.ResponseText(resp))
	if expanded == "" {
		return text
	}
	return expanded
}
