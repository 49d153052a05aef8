package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/decklist/internal/model"
	"github.com/nao1215/decklist/internal/pipeline"
)

// errDecksFailed is returned when at least one deck could not be converted.
var errDecksFailed = errors.New("some decks failed")

// NewFetchCmd creates the fetch command.
func NewFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <deck-url>...",
		Short: "Convert decks without prompting",
		Long: `Fetch converts every deck URL given as an argument, one after another,
with the same steps as the interactive mode.

A deck that fails does not stop the others. The command exits with an
error if any deck failed.

Examples:
  # Convert one deck
  decklist fetch "https://www.db.yugioh-card.com/yugiohdb/member_deck.action?cgid=...&dno=1"

  # Convert Master Duel decks and write JSON reports too
  decklist fetch --master-duel --json URL1 URL2`,
		Args: cobra.MinimumNArgs(1),
		RunE: runFetchCmd,
	}

	cmd.Flags().Bool("master-duel", false,
		"Link cards to their Master Duel pages")
	addAppFlags(cmd)

	return cmd
}

// runFetchCmd executes the fetch command.
func runFetchCmd(cmd *cobra.Command, args []string) error {
	masterDuel, err := cmd.Flags().GetBool("master-duel")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.close()

	return a.fetchAll(ctx, args, masterDuel)
}

// fetchAll runs every URL through its own pipeline and reports each result.
func (a *app) fetchAll(ctx context.Context, urls []string, masterDuel bool) error {
	reporter := a.newSession(strings.NewReader(""))
	bp := pipeline.NewBatchProcessor(a.newPipeline, pipeline.WithBatchLogger(a.logger))

	failed := 0
	err := bp.ProcessBatchWithCallback(ctx, urls, masterDuel, func(job *model.Job, index int) {
		fmt.Fprintf(a.out, "[%d/%d] %s\n", index+1, len(urls), job.RawURL)
		reporter.Report(job)
		if job.Failed() || job.SaveErr != nil {
			failed++
		}
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errDecksFailed, failed, len(urls))
	}
	return nil
}
