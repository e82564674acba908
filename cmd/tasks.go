package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/nibzard/todomenu/internal/config"
	"github.com/nibzard/todomenu/internal/logging"
	"github.com/nibzard/todomenu/internal/menu"
	"github.com/nibzard/todomenu/internal/present"
	"github.com/nibzard/todomenu/internal/todo"
	"github.com/nibzard/todomenu/internal/ui"
)

// tuiCommand opens the interactive menu.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string, s streams) error {
	fs := flag.NewFlagSet("todomenu tui", flag.ContinueOnError)
	fs.SetOutput(s.errOut)
	inline := fs.Bool("inline", false, "Draw below the prompt instead of the alternate screen")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if !ui.IsTTY(s.out) {
		return fmt.Errorf("tui requires a TTY")
	}

	logger := logging.Discard()
	if cfg.LogFile != "" {
		f, err := logging.Open(cfg.LogFile)
		if err != nil {
			return err
		}
		defer f.Close()
		logger = logging.FromConfig(f, cfg.LogLevel, cfg.LogFormat)
	}
	reportWarnings(logger, cfg)

	store, err := todo.Open(cfg.File, cfg.StoreOptions()...)
	if err != nil {
		return err
	}
	defer store.Close()

	m := menu.New(store,
		menu.WithColors(cfg.Colors()),
		menu.WithMatcher(cfg.Matcher()),
		menu.WithLogger(logger),
	)

	runErr := ui.Run(ctx, m,
		ui.WithInput(s.in),
		ui.WithOutput(s.out),
		ui.WithAltScreen(!*inline),
	)
	if runErr != nil {
		logger.Error("menu stopped", "err", runErr)
	}

	// Saves unless the menu already saved on its way out.
	if err := m.Close(); err != nil {
		return errors.Join(runErr, fmt.Errorf("saving tasks: %w", err))
	}
	return runErr
}

// lsCommand prints the tasks, one per line.
func lsCommand(cfg *config.Config, args []string, s streams) error {
	fs := flag.NewFlagSet("todomenu ls", flag.ContinueOnError)
	fs.SetOutput(s.errOut)
	markup := fs.Bool("markup", false, "Print Pango markup")
	plain := fs.Bool("plain", false, "Print without colors")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if *markup && *plain {
		return fmt.Errorf("--markup and --plain are mutually exclusive")
	}

	tasks, err := readTasks(cfg.File)
	if err != nil {
		return err
	}

	colors := cfg.Colors()
	presenter := present.NewWithRenderer(lipgloss.NewRenderer(s.out), colors)
	for i := range tasks {
		var line string
		switch {
		case *markup:
			line = present.Markup(&tasks[i], colors)
		case *plain:
			line = present.Plain(&tasks[i])
		default:
			line = presenter.Render(&tasks[i])
		}
		fmt.Fprintln(s.out, line)
	}
	return nil
}

// readTasks loads the task file without creating it.
func readTasks(path string) ([]todo.Task, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	store, err := todo.Open(path)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Load()
}

// addCommand appends one task parsed from the arguments.
func addCommand(cfg *config.Config, args []string, logger *log.Logger) error {
	task := todo.Parse(strings.Join(args, " "))
	if strings.TrimSpace(task.Subject) == "" {
		return fmt.Errorf("add: task text is empty")
	}

	store, err := todo.Open(cfg.File, cfg.StoreOptions()...)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Append(task); err != nil {
		return err
	}
	logger.Info("added task", "task", task.String(), "file", store.Path())
	return nil
}
