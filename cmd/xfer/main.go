package main

import (
	"fmt"
	"os"
)

// Exit codes
const (
	ExitSuccess        = 0
	ExitGeneralError   = 1
	ExitInvalidArgs    = 2
	ExitSourceError    = 3
	ExitSinkError      = 4
	ExitTransferFailed = 5
	ExitConfigError    = 6
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return ExitInvalidArgs
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "copy":
		return runCopy(cmdArgs)
	case "help", "-h", "--help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		return ExitInvalidArgs
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: xfer <command> [options]

Commands:
  copy      Copy data between endpoints with live progress reporting

Endpoints can be local files, "-" (stdin/stdout), http(s) URLs (source
only), or object storage URLs (s3://bucket/key, gs://bucket/key).

Run 'xfer <command> -h' for command-specific help.`)
}
