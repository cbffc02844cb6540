package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/mizutamari/keepsake/pkg/model"
	"github.com/mizutamari/keepsake/pkg/usecase/page"
	"github.com/mizutamari/keepsake/pkg/utils/logging"
)

func deleteCommand() *cli.Command {
	var (
		cfg    config
		pageID model.PageID
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "id",
			Usage:       "Page ID to delete",
			Destination: (*string)(&pageID),
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "delete",
		Usage: "Delete a saved page",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.New(cfg.logLevel, os.Stderr)
			ctx = logging.With(ctx, logger)

			repo, err := cfg.newRepository()
			if err != nil {
				return err
			}

			if err := page.New(repo).Delete(ctx, pageID); err != nil {
				return goerr.Wrap(err, "failed to delete page")
			}

			fmt.Fprintf(c.Root().Writer, "Page deleted: %s\n", pageID)
			return nil
		},
	}
}
