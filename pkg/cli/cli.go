package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

type Error struct {
	Code    int
	Message string
}

func Run(ctx context.Context, argv []string) *Error {
	cmd := &cli.Command{
		Name:  "keepsake",
		Usage: "Personalized birthday page generator",
		Commands: []*cli.Command{
			chatCommand(),
			newCommand(),
			listCommand(),
			showCommand(),
			deleteCommand(),
			draftCommand(),
			expandCommand(),
			serveCommand(),
		},
	}

	if err := cmd.Run(ctx, argv); err != nil {
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}
