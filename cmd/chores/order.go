package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// swapCmd implements 'chores swap'.
func swapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "swap <a> <b>",
		Short: "Exchange the positions of two tasks",
		Args:  cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(_ *cobra.Command, args []string) {
			a, b := mustIndex(args[0]), mustIndex(args[1])
			store, err := getStore()
			if err != nil {
				printError(err)
			}

			if err = store.Swap(a, b); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Swapped tasks %d and %d", a+1, b+1)))
		},
	}
}

// mvCmd implements 'chores mv'.
func mvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mv <from> <to>",
		Short: "Move a task to a new position, shifting the tasks in between",
		Args:  cobra.ExactArgs(2), //nolint:mnd // CLI takes 2 positional args
		Run: func(_ *cobra.Command, args []string) {
			from, to := mustIndex(args[0]), mustIndex(args[1])
			store, err := getStore()
			if err != nil {
				printError(err)
			}

			if err = store.Move(from, to); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Moved task %d to position %d", from+1, to+1)))
		},
	}
}
