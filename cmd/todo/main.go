package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abatilo/todo/internal/config"
	"github.com/abatilo/todo/internal/export"
	"github.com/abatilo/todo/internal/logging"
	"github.com/abatilo/todo/internal/output"
	"github.com/abatilo/todo/internal/storage"
	"github.com/abatilo/todo/internal/store"
)

//nolint:gochecknoglobals // CLI flags, config and formatter are package-level by design
var (
	jsonOutput bool
	cfgFile    string
	dataFile   string
	dataFormat string
	formatter  output.Formatter = output.NewHumanFormatter()
	cfg        = config.DefaultConfig()
	logger     = zap.NewNop()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "todo",
		Short: "A personal, file-based to-do list",
		Long: "todo - A personal, file-based to-do list.\n\n" +
			"Run without a command to open the interactive menu.",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if jsonOutput {
				formatter = output.NewJSONFormatter()
			} else {
				formatter = output.NewHumanFormatter()
			}
			setup()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = logger.Sync()
		},
		Run: func(_ *cobra.Command, _ []string) {
			runMenu()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.config/todo/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&dataFile, "file", "f", "", "Tasks file (overrides data_file)")
	rootCmd.PersistentFlags().StringVar(&dataFormat, "data-format", "", "Tasks file format: json, yaml, toml")

	rootCmd.AddCommand(
		menuCmd(),
		addCmd(),
		listCmd(),
		doneCmd(),
		rmCmd(),
		exportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration, applies flag overrides and opens the event log.
func setup() {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		printError(err)
	}
	cfg = loaded

	if dataFile != "" {
		if cfg.DataFile, err = storage.ExpandHome(dataFile); err != nil {
			printError(err)
		}
	}
	if dataFormat != "" {
		cfg.DataFormat = dataFormat
	}

	l, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
		l = zap.NewNop()
	}
	logger = l.With(zap.String("data_file", cfg.DataFile))
}

func getStore() (*store.Store, error) {
	format, err := storage.ParseFormat(cfg.DataFormat)
	if err != nil {
		return nil, err
	}
	return store.Open(storage.NewFileBackend(cfg.DataFile, format), logger)
}

func printOutput(s string) {
	os.Stdout.WriteString(s) //nolint:gosec // stdout write errors are unrecoverable
}

func printError(err error) {
	os.Stdout.WriteString(formatter.FormatError(err)) //nolint:gosec // stdout write errors are unrecoverable
	_ = logger.Sync()
	os.Exit(1)
}

// parseIndex converts a user-supplied display index.
func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, InvalidIndexError{Value: s}
	}
	return i, nil
}

// addCmd implements 'todo add'.
func addCmd() *cobra.Command {
	var due string
	var priority string
	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Add a new task",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			st, err := getStore()
			if err != nil {
				printError(err)
			}

			var dueDate *string
			if cmd.Flags().Changed("due") && strings.TrimSpace(due) != "" {
				dueDate = &due
			}

			if err = st.Add(strings.Join(args, " "), dueDate, priority); err != nil {
				printError(err)
			}
			if err = st.Save(); err != nil {
				printError(err)
			}

			tasks := st.Tasks()
			printOutput(formatter.FormatTask(tasks[len(tasks)-1]))
		},
	}
	cmd.Flags().StringVarP(&due, "due", "d", "", "Due date (e.g. 2025-07-01)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "medium", "Priority (high, medium, low)")
	return cmd
}

// listCmd implements 'todo list'.
func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks sorted by priority",
		Run: func(_ *cobra.Command, _ []string) {
			st, err := getStore()
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTaskList(st.Entries()))
		},
	}
}

// doneCmd implements 'todo done'.
func doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <index>",
		Short: "Mark a task as done (index as shown by 'todo list')",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			index, err := parseIndex(args[0])
			if err != nil {
				printError(err)
			}

			st, err := getStore()
			if err != nil {
				printError(err)
			}
			if err = st.MarkDone(index); err != nil {
				printError(err)
			}
			if err = st.Save(); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Task %d marked as done.", index)))
		},
	}
}

// rmCmd implements 'todo rm'.
func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <index>",
		Short: "Delete a task (index as shown by 'todo list')",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			index, err := parseIndex(args[0])
			if err != nil {
				printError(err)
			}

			st, err := getStore()
			if err != nil {
				printError(err)
			}
			removed, err := st.Delete(index)
			if err != nil {
				printError(err)
			}
			if err = st.Save(); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Deleted task: %s", removed.Description)))
		},
	}
}

// exportCmd implements 'todo export'.
func exportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export [destination]",
		Short: "Export tasks to a CSV or PDF file",
		Args:  cobra.MaximumNArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			f, err := export.ParseFormat(format)
			if err != nil {
				printError(err)
			}

			dest := cfg.ExportFile
			if len(args) == 1 {
				dest = args[0]
			}

			st, err := getStore()
			if err != nil {
				printError(err)
			}
			if err = st.Export(dest, f); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Exported %d task(s) to %s", st.Len(), dest)))
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Export format: csv, pdf (default: from file extension)")
	return cmd
}
