package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/mizutamari/keepsake/pkg/usecase/page"
	"github.com/mizutamari/keepsake/pkg/utils/logging"
)

func draftCommand() *cli.Command {
	return &cli.Command{
		Name:  "draft",
		Usage: "Inspect or clear the stored draft",
		Commands: []*cli.Command{
			draftShowCommand(),
			draftClearCommand(),
		},
	}
}

func draftShowCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "show",
		Usage: "Print the stored draft",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.New(cfg.logLevel, os.Stderr)
			ctx = logging.With(ctx, logger)

			repo, err := cfg.newRepository()
			if err != nil {
				return err
			}

			draft, err := page.New(repo).LoadDraft(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to load draft")
			}
			if draft == nil {
				fmt.Fprintf(c.Root().Writer, "No draft is stored\n")
				return nil
			}

			data, err := json.MarshalIndent(draft, "", "  ")
			if err != nil {
				return goerr.Wrap(err, "failed to marshal draft")
			}

			fmt.Fprintf(c.Root().Writer, "%s\n", string(data))
			return nil
		},
	}
}

func draftClearCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "clear",
		Usage: "Discard the stored draft",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.New(cfg.logLevel, os.Stderr)
			ctx = logging.With(ctx, logger)

			repo, err := cfg.newRepository()
			if err != nil {
				return err
			}

			if err := page.New(repo).ClearDraft(ctx); err != nil {
				return goerr.Wrap(err, "failed to clear draft")
			}

			fmt.Fprintf(c.Root().Writer, "Draft cleared\n")
			return nil
		},
	}
}
