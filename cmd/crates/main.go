package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/randombyte-developer/crates-generator/internal/args"
	"github.com/randombyte-developer/crates-generator/internal/config"
	"github.com/randombyte-developer/crates-generator/internal/logging"
	"github.com/randombyte-developer/crates-generator/internal/mixxx"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit status.
func run(argv []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	log, err := logging.New(logging.Config{Level: cfg.LogLevel, File: cfg.LogFile, Output: stderr})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	defer func() { _ = log.Sync() }()

	if argv == nil {
		// cobra falls back to os.Args when given nil.
		argv = []string{}
	}
	root := newRootCmd(cfg, log)
	root.SetArgs(argv)
	root.SetOut(stdout)
	root.SetErr(stderr)

	return exitCode(root.ExecuteContext(context.Background()), stdout, stderr)
}

func exitCode(err error, stdout, stderr io.Writer) int {
	if err == nil {
		return exitOK
	}

	var cfgErr *args.ConfigError
	if errors.As(err, &cfgErr) {
		fmt.Fprintln(stdout, cfgErr)
		return exitUsage
	}
	var notFound *mixxx.NotFoundError
	if errors.As(err, &notFound) {
		fmt.Fprintln(stdout, notFound)
		return exitFailed
	}

	fmt.Fprintln(stderr, "Error:", err)
	return exitFailed
}
