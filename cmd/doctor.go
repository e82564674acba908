package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/nibzard/todomenu/internal/config"
)

// doctorCommand prints the resolved configuration and checks the task file.
func doctorCommand(cfg *config.Config, args []string, s streams) error {
	fs := flag.NewFlagSet("todomenu doctor", flag.ContinueOnError)
	fs.SetOutput(s.errOut)
	verbose := fs.Bool("v", false, "List the tasks")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	w := s.out
	fmt.Fprintln(w, "todomenu doctor")
	fmt.Fprintln(w, "===============")
	fmt.Fprintln(w)

	allOK := true

	// Config
	if cfg.Path != "" {
		fmt.Fprintf(w, "Config file: %s\n", cfg.Path)
	} else {
		fmt.Fprintln(w, "Config file: (none)")
	}
	for _, field := range config.Fields() {
		fmt.Fprintf(w, "  %-15s %-30s (%s)\n", field, cfg.Value(field), cfg.Source(field))
	}
	for _, warning := range cfg.Warnings {
		fmt.Fprintf(w, "  ⚠️  %v\n", warning)
		allOK = false
	}
	fmt.Fprintln(w)

	// Task file
	if !checkTaskFile(w, cfg.File, *verbose) {
		allOK = false
	}
	fmt.Fprintln(w)

	// Log file
	if cfg.LogFile != "" {
		fmt.Fprintf(w, "Log file: %s\n", cfg.LogFile)
		if info, err := os.Stat(cfg.LogFile); err == nil && info.IsDir() {
			fmt.Fprintln(w, "  ❌ Error: path is a directory")
			allOK = false
		} else {
			fmt.Fprintln(w, "  ✅ OK")
		}
		fmt.Fprintln(w)
	}

	if !allOK {
		return fmt.Errorf("doctor found problems")
	}
	fmt.Fprintln(w, "All checks passed.")
	return nil
}

func checkTaskFile(w io.Writer, path string, verbose bool) bool {
	fmt.Fprintf(w, "Task file: %s\n", path)
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintln(w, "  ⚠️  Not found (will be created on first save)")
		return true
	case err != nil:
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return false
	case info.IsDir():
		fmt.Fprintln(w, "  ❌ Error: path is a directory")
		return false
	}

	tasks, err := readTasks(path)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Load error: %v\n", err)
		return false
	}
	done := 0
	for i := range tasks {
		if tasks[i].Completed {
			done++
		}
	}
	fmt.Fprintf(w, "  ✅ OK (%d tasks, %d done)\n", len(tasks), done)
	if verbose {
		for i := range tasks {
			fmt.Fprintf(w, "    %d. %s\n", i+1, tasks[i].String())
		}
	}
	return true
}
