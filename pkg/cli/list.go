package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/mizutamari/keepsake/pkg/usecase/page"
	"github.com/mizutamari/keepsake/pkg/utils/logging"
)

func listCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "list",
		Usage: "List all saved pages, newest first",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.New(cfg.logLevel, os.Stderr)
			ctx = logging.With(ctx, logger)

			repo, err := cfg.newRepository()
			if err != nil {
				return err
			}

			pages, err := page.New(repo).List(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to list pages")
			}

			for _, p := range pages {
				title := p.Basics.RecipientName
				if title == "" {
					title = "(untitled)"
				}
				fmt.Fprintf(c.Root().Writer, "%s\t%s\t%s\t%s\n",
					p.ID, title, p.Design.VisualStyle, p.CreatedAt.Format("2006-01-02 15:04"))
			}

			return nil
		},
	}
}
