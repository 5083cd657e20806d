// Command la716 decodes, inspects, packs and serves LA716 well-log files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run dispatches a subcommand and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 2
	}

	command, rest := args[0], args[1:]

	var err error
	switch command {
	case "decode":
		err = runDecode(ctx, rest, stdout, stderr)
	case "info":
		err = runInfo(ctx, rest, stdout, stderr)
	case "stats":
		err = runStats(ctx, rest, stdout, stderr)
	case "chart":
		err = runChart(ctx, rest, stdout, stderr)
	case "pack":
		err = runPack(rest, stdout, stderr)
	case "serve":
		err = runServe(ctx, rest, stderr)
	case "version":
		fmt.Fprintf(stdout, "la716 version %s\n", version)
	case "help", "-h", "--help":
		printUsage(stdout)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", command)
		printUsage(stderr)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case isUsage(err):
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `la716 - LA716 well-log file tool

Usage: la716 <command> [options] [args]

Commands:
  decode   Decode files (paths or http(s) URLs) to JSON
  info     Print the header and body geometry of files
  stats    Print per-curve statistics of files
  chart    Render the curves of a file as HTML or PNG
  pack     Compress a file with zstd, s2 or lz4
  serve    Serve decoded files over HTTP
  version  Show la716 version
  help     Show this help message

Run 'la716 <command> -h' for the options of a command.
`)
}

// usageError marks errors caused by bad command line arguments.
type usageError struct {
	msg string
}

func (e usageError) Error() string {
	return e.msg
}

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

func isUsage(err error) bool {
	var ue usageError
	return errors.As(err, &ue)
}

// newFlagSet creates a flag set that reports errors instead of exiting.
func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	return fs
}

// parseFlags parses args, turning flag errors into usage errors.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}

		return usageError{msg: err.Error()}
	}

	return nil
}
