package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"todolite/internal/cli"
	"todolite/internal/config"
	"todolite/internal/store"
	"todolite/internal/store/jsonstore"
	"todolite/internal/tui"
	"todolite/internal/ui"
)

var (
	// Global flags
	verbose      bool
	themeName    string
	noColor      bool
	groupPending bool

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "todolite",
	Short: "todolite - a local todo list for the terminal",
	Long: `todolite keeps a single todo list in a JSON file under your home
directory and renders it either as one-shot subcommands or as an
interactive full-screen list.

Run without arguments to start the interactive list.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		ui.SetTheme(themeName)
		ui.SetColorForcing(false, noColor)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		return tui.Run(st)
	},
}

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List items",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		return exit(cli.List(st, cli.Options{Group: groupPending}))
	},
}

var addCmd = &cobra.Command{
	Use:   "add <title...>",
	Short: "Add a new item (title can be multiple words)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		return exit(cli.Add(st, strings.Join(args, " ")))
	},
}

var doneCmd = &cobra.Command{
	Use:   "done <index>",
	Short: "Toggle done for the item at a 1-based index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("done: not a number: %s", args[0])
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		return exit(cli.Toggle(st, n))
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <index>",
	Short: "Remove the item at a 1-based index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("rm: not a number: %s", args[0])
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		return exit(cli.Remove(st, n))
	},
}

// openStore wires config -> persistence adapter -> store and loads once.
func openStore() (*store.Store, error) {
	path, err := config.DataFile()
	if err != nil {
		return nil, fmt.Errorf("resolve data file: %w", err)
	}
	logger.Debug("using data file", zap.String("path", path))
	st := store.New(jsonstore.New(path, logger), logger)
	st.Initialize()
	return st, nil
}

// exit translates a CLI body's exit code into cobra's error flow while
// preserving the code for the shell.
func exit(code int) error {
	if code == cli.ExitOK {
		return nil
	}
	os.Exit(code)
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "classic", "output theme: classic, neon, mono")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable ANSI colors")
	lsCmd.Flags().BoolVar(&groupPending, "group", false, "group output by pending/done")

	rootCmd.AddCommand(lsCmd, addCmd, doneCmd, rmCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
