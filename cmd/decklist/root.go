package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command. Without a subcommand it runs the
// interactive prompt loop.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decklist",
		Short: "Convert Yu-Gi-Oh! Card Database decks into wiki decklists",
		Long: `decklist opens a deck page of the Yu-Gi-Oh! Card Database in a headless
browser, reads the main, extra and side decks, and renders them as a
{{Decklist}} wiki template.

The template is saved to "<deck name> Decklist.txt" in the output directory
(Decklists next to the executable by default) and copied to the clipboard.

Run without arguments to enter deck URLs one at a time. Type "exit" to quit.

Examples:
  # Interactive mode
  decklist

  # Keep files somewhere else and skip the clipboard
  decklist -o ~/decks --no-clipboard

  # Convert decks without prompts
  decklist fetch --master-duel "https://www.db.yugioh-card.com/yugiohdb/member_deck.action?cgid=...&dno=1"`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runInteractive,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write log lines as JSON")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .decklist in current, XDG config or home directory)")

	addAppFlags(cmd)

	// Add subcommands
	cmd.AddCommand(NewFetchCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// runInteractive prompts for deck URLs until exit, end of input or a signal.
func runInteractive(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.close()

	err = a.newSession(cmd.InOrStdin()).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
