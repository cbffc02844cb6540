package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/mizutamari/keepsake/pkg/model"
	"github.com/mizutamari/keepsake/pkg/usecase/compose"
	"github.com/mizutamari/keepsake/pkg/usecase/page"
	"github.com/mizutamari/keepsake/pkg/utils/logging"
)

func newCommand() *cli.Command {
	var (
		cfg       config
		input     string
		fromDraft bool
		noPolish  bool
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Path to a YAML or JSON file with the page content",
			Destination: &input,
		},
		&cli.BoolFlag{
			Name:        "from-draft",
			Usage:       "Use the stored draft as input instead of a file",
			Destination: &fromDraft,
		},
		&cli.BoolFlag{
			Name:        "no-polish",
			Usage:       "Skip the AI polishing pass",
			Destination: &noPolish,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "new",
		Usage: "Create a page from manually entered content",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.New(cfg.logLevel, os.Stderr)
			ctx = logging.With(ctx, logger)

			repo, err := cfg.newRepository()
			if err != nil {
				return err
			}
			pages := page.New(repo)

			var draft *model.Page
			switch {
			case fromDraft:
				draft, err = pages.LoadDraft(ctx)
				if err != nil {
					return goerr.Wrap(err, "failed to load draft")
				}
				if draft == nil {
					return goerr.New("no draft is stored")
				}
			case input != "":
				draft, err = loadPageFile(input)
				if err != nil {
					return err
				}
			default:
				return goerr.New("either --input or --from-draft is required")
			}

			draft.RegenerateItemIDs()

			if err := draft.Validate(); err != nil {
				return goerr.Wrap(err, "page content is incomplete")
			}

			// Polishing is best effort: any failure falls back to the
			// raw draft, which is already schema-valid.
			if !noPolish {
				gemini, err := cfg.newGemini(ctx)
				if err != nil {
					return err
				}
				if gemini != nil {
					composer := compose.New(gemini)
					draft = composer.PolishDraft(ctx, draft)
				}
			}

			saved, err := pages.Save(ctx, draft)
			if err != nil {
				return goerr.Wrap(err, "failed to save page")
			}

			fmt.Fprintf(c.Root().Writer, "Page saved: %s\n", saved.ID)
			return nil
		},
	}
}

// loadPageFile reads a partial page description and merges it over the
// default shape so the result is always fully formed
func loadPageFile(path string) (*model.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read input file", goerr.V("path", path))
	}

	var patch map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &patch); err != nil {
			return nil, goerr.Wrap(err, "failed to parse input file", goerr.V("path", path))
		}
	default:
		if err := yaml.Unmarshal(data, &patch); err != nil {
			return nil, goerr.Wrap(err, "failed to parse input file", goerr.V("path", path))
		}
	}

	return model.MergePatch(model.DefaultPage(), patch)
}
