package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	choreserrors "github.com/abatilo/chores/internal/errors"
	"github.com/abatilo/chores/internal/storage"
	"github.com/abatilo/chores/internal/ui"
)

// updateCmd implements 'chores update'.
func updateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Advance overdue recurring tasks to their next date",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			store, err := getStore()
			if err != nil {
				printError(err)
			}

			// Open already ran one pass; a second one only catches a day rollover.
			n, err := store.CatchUp()
			if err != nil {
				printError(err)
			}
			n += store.AdvancedOnOpen()
			printOutput(formatter.FormatMessage(fmt.Sprintf("Advanced %d recurring task(s)", n)))
		},
	}
}

// pruneCmd implements 'chores prune'.
func pruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove all done tasks",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			store, err := getStore()
			if err != nil {
				printError(err)
			}

			n, err := store.RemoveDone()
			if err != nil {
				printError(err)
			}
			if n == 0 {
				printOutput(formatter.FormatMessage("No done tasks to prune"))
				return
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Pruned %d done task(s)", n)))
		},
	}
}

// checkCmd implements 'chores check'.
func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the task file without changing it",
		Long: "Validate the task file against the task list schema. Other commands read\n" +
			"a malformed file as an empty list; check reports what is wrong instead.",
		Args: cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			codec := storage.CodecByName(cfg.Format)
			if codec == nil {
				codec = storage.CodecFor(cfg.DataFile)
			}

			result, err := storage.CheckCodec(cfg.DataFile, codec)
			var notFound choreserrors.NotFoundError
			if errors.As(err, &notFound) {
				printError(choreserrors.NotInitializedError{Path: notFound.Path})
			}
			if err != nil {
				printError(err)
			}

			printOutput(formatter.FormatCheck(result))
			if !result.Valid() {
				os.Exit(1)
			}
		},
	}
}

// tuiCmd implements 'chores tui'.
func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit tasks interactively",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			store, err := getStore()
			if err != nil {
				printError(err)
			}
			if err = ui.Run(cmd.Context(), store); err != nil {
				printError(err)
			}
		},
	}
}
