package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/abatilo/chores/internal/config"
	choreserrors "github.com/abatilo/chores/internal/errors"
	"github.com/abatilo/chores/internal/logging"
	"github.com/abatilo/chores/internal/output"
	"github.com/abatilo/chores/internal/storage"
	"github.com/abatilo/chores/internal/task"
)

//nolint:gochecknoglobals // CLI flags, settings and formatter shared by every command
var (
	jsonOutput bool
	configPath string
	cfg        *config.Config
	logger     *log.Logger
	formatter  output.Formatter
)

func main() {
	rootCmd := newRootCmd()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chores",
		Short: "A todo list with recurring tasks",
		Long: "chores - A todo list kept in a single file. Tasks with a due date and an\n" +
			"interval move forward automatically once their date has passed.",
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if jsonOutput {
				formatter = output.NewJSONFormatter()
			} else {
				formatter = output.NewHumanFormatter()
			}

			var err error
			if cfg, err = config.Load(configPath); err != nil {
				printError(err)
			}
			if err = cfg.ApplyFlags(cmd.Flags()); err != nil {
				printError(err)
			}
			if logger, err = logging.New(os.Stderr, logging.Options{Level: cfg.LogLevel}); err != nil {
				printError(err)
			}
			logger.Debug("resolved config", "file", cfg.DataFile, "config", cfg.ConfigFile)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	flags.StringVarP(&configPath, "config", "c", "", "Config file (default $XDG_CONFIG_HOME/chores/config.toml)")
	flags.StringP("file", "f", "", "Task file (default $XDG_DATA_HOME/chores/todo.json)")
	flags.String("format", "", "Task file format: json or yaml (default: by extension)")
	flags.String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		initCmd(),
		addCmd(),
		listCmd(),
		showCmd(),
		editCmd(),
		doneCmd(),
		rmCmd(),
		swapCmd(),
		mvCmd(),
		updateCmd(),
		pruneCmd(),
		checkCmd(),
		tuiCmd(),
	)
	return rootCmd
}

func getStore() (*storage.Store, error) {
	opts := []storage.Option{storage.WithLogger(logger)}
	if codec := storage.CodecByName(cfg.Format); codec != nil {
		opts = append(opts, storage.WithCodec(codec))
	}

	store, err := storage.Open(cfg.DataFile, opts...)
	var notFound choreserrors.NotFoundError
	if errors.As(err, &notFound) {
		return nil, choreserrors.NotInitializedError{Path: notFound.Path}
	}
	return store, err
}

// parseIndex converts a 1-based task number argument to a list index.
func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 {
		return 0, InvalidPositionError{Value: arg}
	}
	return n - 1, nil
}

func mustIndex(arg string) int {
	i, err := parseIndex(arg)
	if err != nil {
		printError(err)
	}
	return i
}

func printOutput(s string) {
	os.Stdout.WriteString(s) //nolint:gosec // stdout write errors are unrecoverable
}

func printError(err error) {
	os.Stdout.WriteString(formatter.FormatError(userError(err))) //nolint:gosec // stdout write errors are unrecoverable
	os.Exit(1)
}

// initCmd implements 'chores init'.
func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create an empty task file",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			created, err := config.EnsureDataFile(cfg.DataFile)
			if err != nil {
				printError(err)
			}
			if !created {
				printError(choreserrors.AlreadyInitializedError{Path: cfg.DataFile})
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Initialized chores at %s", cfg.DataFile)))
		},
	}
}

// addCmd implements 'chores add'.
func addCmd() *cobra.Command {
	var date, every string
	cmd := &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			t := task.Task{Text: strings.Join(args, " ")}

			var err error
			if date != "" {
				if t.Date, err = task.ParseDate(date); err != nil {
					printError(err)
				}
			}
			if every != "" {
				if t.Interval, err = task.ParseInterval(every); err != nil {
					printError(err)
				}
			}
			if !t.Interval.IsZero() && t.Date.IsZero() {
				logger.Warn("interval has no effect until the task has a date")
			}

			store, err := getStore()
			if err != nil {
				printError(err)
			}
			index, err := store.Add(t)
			if err != nil {
				printError(err)
			}

			// Re-read so the output shows the date after catch-up.
			added, err := store.Get(index)
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTask(output.Entry{Number: index + 1, Task: added}))
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "Due date (dd.mm.yy)")
	cmd.Flags().StringVarP(&every, "every", "e", "", "Repeat every N days, month or year")
	return cmd
}

// listCmd implements 'chores list'.
func listCmd() *cobra.Command {
	var onlyDone, onlyPending, noStatus bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			store, err := getStore()
			if err != nil {
				printError(err)
			}
			tasks, err := store.List()
			if err != nil {
				printError(err)
			}

			var keep func(task.Task) bool
			switch {
			case onlyDone:
				keep = func(t task.Task) bool { return t.Done }
			case onlyPending:
				keep = func(t task.Task) bool { return !t.Done }
			}

			opts := output.ListOptions{ShowStatus: !noStatus && !cfg.HideStatus}
			printOutput(formatter.FormatTaskList(output.Entries(tasks, keep), opts))
		},
	}
	cmd.Flags().BoolVar(&onlyDone, "done", false, "Show only done tasks")
	cmd.Flags().BoolVar(&onlyPending, "pending", false, "Show only pending tasks")
	cmd.Flags().BoolVar(&noStatus, "no-status", false, "Hide the done column")
	cmd.MarkFlagsMutuallyExclusive("done", "pending")
	return cmd
}

// showCmd implements 'chores show'.
func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <n>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			index := mustIndex(args[0])
			store, err := getStore()
			if err != nil {
				printError(err)
			}

			t, err := store.Get(index)
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTask(output.Entry{Number: index + 1, Task: t}))
		},
	}
}

// editCmd implements 'chores edit'.
func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <n>",
		Short: "Change fields of a task",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			index := mustIndex(args[0])

			patch, err := buildPatch(cmd.Flags())
			if err != nil {
				printError(err)
			}

			store, err := getStore()
			if err != nil {
				printError(err)
			}
			if err = store.Edit(index, patch); err != nil {
				printError(err)
			}
			t, err := store.Get(index)
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTask(output.Entry{Number: index + 1, Task: t}))
		},
	}
	cmd.Flags().StringP("text", "t", "", "New task text")
	cmd.Flags().StringP("date", "d", "", "New due date (dd.mm.yy)")
	cmd.Flags().StringP("every", "e", "", "New interval: N days, month or year")
	cmd.Flags().Bool("clear-date", false, "Remove the due date")
	cmd.Flags().Bool("clear-every", false, "Remove the interval")
	cmd.Flags().Bool("done", false, "Mark as done")
	cmd.Flags().Bool("undone", false, "Mark as pending")
	cmd.MarkFlagsMutuallyExclusive("date", "clear-date")
	cmd.MarkFlagsMutuallyExclusive("every", "clear-every")
	cmd.MarkFlagsMutuallyExclusive("done", "undone")
	return cmd
}

// buildPatch turns the edit flags the user set into a Patch. A flag that
// was not given leaves its field untouched.
func buildPatch(flags *pflag.FlagSet) (task.Patch, error) {
	var p task.Patch
	isSet := func(name string) bool {
		v, _ := flags.GetBool(name)
		return v
	}

	if flags.Changed("text") {
		text, _ := flags.GetString("text")
		p.Text = &text
	}

	switch {
	case isSet("clear-date"):
		p.Date = &task.Date{}
	case flags.Changed("date"):
		raw, _ := flags.GetString("date")
		d, err := task.ParseDate(raw)
		if err != nil {
			return p, err
		}
		p.Date = &d
	}

	switch {
	case isSet("clear-every"):
		p.Interval = &task.Interval{}
	case flags.Changed("every"):
		raw, _ := flags.GetString("every")
		iv, err := task.ParseInterval(raw)
		if err != nil {
			return p, err
		}
		p.Interval = &iv
	}

	switch {
	case isSet("done"):
		done := true
		p.Done = &done
	case isSet("undone"):
		done := false
		p.Done = &done
	}

	if p.IsEmpty() {
		return p, NoChangesError{}
	}
	return p, nil
}

// doneCmd implements 'chores done'.
func doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "done <n>",
		Aliases: []string{"mark"},
		Short:   "Toggle a task between done and pending",
		Args:    cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			index := mustIndex(args[0])
			store, err := getStore()
			if err != nil {
				printError(err)
			}

			done, err := store.ToggleDone(index)
			if err != nil {
				printError(err)
			}
			state := "pending"
			if done {
				state = "done"
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Marked task %d %s", index+1, state)))
		},
	}
}

// rmCmd implements 'chores rm'.
func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <n>",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			index := mustIndex(args[0])
			store, err := getStore()
			if err != nil {
				printError(err)
			}

			if err = store.Delete(index); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Removed task %d", index+1)))
		},
	}
}
