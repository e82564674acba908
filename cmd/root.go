// Package cmd implements the CLI command structure for todomenu.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todomenu/internal/config"
	"github.com/nibzard/todomenu/internal/logging"
)

// Version is set via ldflags at build time.
var Version = "dev"

// streams are the process streams a command reads and writes.
type streams struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// Run executes the todomenu CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, streams{in: os.Stdin, out: os.Stdout, errOut: os.Stderr})
}

func run(ctx context.Context, args []string, s streams) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todomenu", flag.ContinueOnError)
	fs.SetOutput(s.errOut)
	fs.Usage = func() {
		printUsage(fs, s.errOut)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, s.out)
		return nil
	}
	if *showVersion {
		return versionCommand(s.out)
	}

	logger := logging.FromConfig(s.errOut, cfg.LogLevel, cfg.LogFormat)

	// Determine the subcommand
	// If no args or first arg is a flag, open the menu
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	// The menu owns the terminal; its warnings go to the log file.
	if subcommand != "tui" {
		reportWarnings(logger, cfg)
	}

	// Execute the subcommand
	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs, s)
	case "ls":
		return lsCommand(cfg, remainingArgs, s)
	case "add":
		return addCommand(cfg, remainingArgs, logger)
	case "doctor":
		return doctorCommand(cfg, remainingArgs, s)
	case "version":
		return versionCommand(s.out)
	case "help":
		printUsage(fs, s.out)
		return nil
	default:
		fmt.Fprintf(s.errOut, "Unknown command: %s\n", subcommand)
		printUsage(fs, s.errOut)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

func reportWarnings(logger *log.Logger, cfg *config.Config) {
	for _, w := range cfg.Warnings {
		logger.Warn("ignoring config value", "err", w)
	}
}

func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "todomenu version %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "todomenu - A menu editor for todo.txt files")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todomenu [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui           Open the menu (default command)")
	fmt.Fprintln(w, "  ls            Print the tasks")
	fmt.Fprintln(w, "  add <text>    Append one task")
	fmt.Fprintln(w, "  doctor        Show the resolved configuration and check the task file")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options (use with 'ls' command):")
	fmt.Fprintln(w, "  -markup")
	fmt.Fprintln(w, "        Print Pango markup")
	fmt.Fprintln(w, "  -plain")
	fmt.Fprintln(w, "        Print without colors")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Menu keys:")
	fmt.Fprintln(w, "  enter         Select the highlighted row, or submit the text if nothing matches")
	fmt.Fprintln(w, "  alt+enter     Toggle completion of the highlighted task")
	fmt.Fprintln(w, "  ctrl+d        Delete the highlighted task")
	fmt.Fprintln(w, "  ctrl+s        Submit the text")
	fmt.Fprintln(w, "  esc           Go back; saves and quits from the task list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	for _, field := range config.Fields() {
		fmt.Fprintf(w, "  %s\n", config.EnvName(field))
	}
	fmt.Fprintf(w, "  %s\n", config.EnvConfig)
}
