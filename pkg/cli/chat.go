package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/chzyer/readline"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/mizutamari/keepsake/pkg/model"
	"github.com/mizutamari/keepsake/pkg/usecase/compose"
	"github.com/mizutamari/keepsake/pkg/usecase/interview"
	"github.com/mizutamari/keepsake/pkg/usecase/page"
	"github.com/mizutamari/keepsake/pkg/utils/logging"
)

// draftSnapshotInterval matches the periodic draft snapshot of the
// editing flow: last write wins, failures only logged.
const draftSnapshotInterval = 30 * time.Second

func chatCommand() *cli.Command {
	var cfg config

	flags := globalFlags(&cfg)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "chat",
		Usage: "Create a page through an AI-led interview",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.New(cfg.logLevel, os.Stderr)
			ctx = logging.With(ctx, logger)

			repo, err := cfg.newRepository()
			if err != nil {
				return err
			}

			gemini, err := cfg.newGemini(ctx)
			if err != nil {
				return err
			}
			if gemini == nil {
				return goerr.Wrap(model.ErrNotConfigured,
					"chat requires a Gemini credential (set GEMINI_API_KEY or --gemini-project)")
			}

			composer := compose.New(gemini)
			pages := page.New(repo)

			session, err := interview.New(interview.NewInput{
				Gemini:   gemini,
				Composer: composer,
			})
			if err != nil {
				return goerr.Wrap(err, "failed to create interview session")
			}

			w := c.Root().Writer

			sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond,
				spinner.WithWriter(os.Stderr), spinner.WithSuffix(" thinking..."))

			// Snapshot the extracted page on an interval so a failed
			// final save never loses the interview.
			var (
				pendingMu sync.Mutex
				pending   *model.Page
			)
			autosaveCtx, stopAutosave := context.WithCancel(ctx)
			defer stopAutosave()
			go pages.AutoSave(autosaveCtx, draftSnapshotInterval, func() *model.Page {
				pendingMu.Lock()
				defer pendingMu.Unlock()
				return pending
			})

			sp.Start()
			greeting, err := session.Start(ctx)
			sp.Stop()
			if err != nil {
				return goerr.Wrap(err, "failed to start interview")
			}
			fmt.Fprintf(w, "Planner: %s\n", greeting)

			rl, err := readline.New("> ")
			if err != nil {
				return goerr.Wrap(err, "failed to open input")
			}
			defer rl.Close()

			var result *model.Page
			for result == nil {
				line, err := rl.Readline()
				if err == readline.ErrInterrupt || err == io.EOF {
					fmt.Fprintf(w, "\nInterview cancelled\n")
					return nil
				}
				if err != nil {
					return goerr.Wrap(err, "failed to read input")
				}

				sp.Start()
				turn, err := session.Send(ctx, line)
				sp.Stop()

				if err != nil {
					result, err = retryGeneration(ctx, session, rl, sp, w, err)
					if err != nil {
						return err
					}
					continue
				}
				if turn == nil {
					continue
				}

				if turn.Reply != "" {
					fmt.Fprintf(w, "Planner: %s\n", turn.Reply)
				}
				if turn.Completed {
					result = turn.Page
				}
			}

			pendingMu.Lock()
			pending = result
			pendingMu.Unlock()

			if err := pages.SaveDraft(ctx, result); err != nil {
				logging.From(ctx).Warn("failed to snapshot draft before save", "error", err)
			}

			saved, err := pages.Save(ctx, result)
			if err != nil {
				return goerr.Wrap(err, "failed to save page; the draft snapshot is kept, run 'keepsake draft show'")
			}

			fmt.Fprintf(w, "\nPage saved: %s\n", saved.ID)
			fmt.Fprintf(w, "View it with 'keepsake serve' at /pages/%s\n", saved.ID)
			return nil
		},
	}
}

// retryGeneration offers the retry affordance after a failed turn or
// extraction. The transcript is preserved; only extraction is re-run.
func retryGeneration(ctx context.Context, session *interview.Session, rl *readline.Instance, sp *spinner.Spinner, w io.Writer, cause error) (*model.Page, error) {
	fmt.Fprintf(w, "The planner ran into trouble: %v\n", cause)

	for {
		rl.SetPrompt("retry generation? [y/N] ")
		line, err := rl.Readline()
		rl.SetPrompt("> ")
		if err != nil || !strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "y") {
			return nil, goerr.Wrap(cause, "interview aborted")
		}

		sp.Start()
		result, err := session.Retry(ctx)
		sp.Stop()
		if err == nil {
			return result, nil
		}

		if errors.Is(err, model.ErrExtraction) {
			fmt.Fprintf(w, "Still no luck: %v\n", err)
			continue
		}
		return nil, goerr.Wrap(err, "failed to rebuild page from transcript")
	}
}
