package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/mizutamari/keepsake/pkg/usecase/compose"
	"github.com/mizutamari/keepsake/pkg/utils/logging"
)

func expandCommand() *cli.Command {
	var (
		cfg          config
		fieldContext string
		tone         string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "context",
			Usage:       "Which section of the page the text belongs to",
			Value:       "message",
			Destination: &fieldContext,
		},
		&cli.StringFlag{
			Name:        "tone",
			Usage:       "Desired tone of the rewrite",
			Value:       "Romantic",
			Destination: &tone,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:      "expand",
		Usage:     "Rewrite and expand a piece of text with AI (prints input unchanged when AI is unavailable)",
		ArgsUsage: "<text>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.New(cfg.logLevel, os.Stderr)
			ctx = logging.With(ctx, logger)

			text := strings.Join(c.Args().Slice(), " ")

			gemini, err := cfg.newGemini(ctx)
			if err != nil {
				return err
			}

			composer := compose.New(gemini)
			fmt.Fprintf(c.Root().Writer, "%s\n", composer.ExpandText(ctx, text, fieldContext, tone))
			return nil
		},
	}
}
