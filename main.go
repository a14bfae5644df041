package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Command names.
const (
	cmdSet  = "set"
	cmdGet  = "get"
	cmdHelp = "help"
)

// Settable config fields.
const (
	fieldYear       = "year"
	fieldSessionKey = "session_key"
)

func main() {
	_ = godotenv.Load()
	log := newLogger()
	if err := run(context.Background(), log, os.Args[1:]); err != nil {
		log.err(err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger, args []string) error {
	if len(args) == 0 {
		printUsage(os.Stdout)
		return nil
	}

	switch args[0] {
	case cmdHelp, "-h", "--help":
		printUsage(os.Stdout)
		return nil
	case cmdSet:
		return runSet(log, args[1:])
	case cmdGet:
		return runGet(ctx, log, args[1:])
	default:
		printUsage(os.Stderr)
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "aochelper: Advent of Code input downloader")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Usage:")
	_, _ = fmt.Fprintln(w, "  aochelper set year <year>        Set the puzzle year for this workspace")
	_, _ = fmt.Fprintln(w, "  aochelper set session_key <key>  Store an explicit session cookie value")
	_, _ = fmt.Fprintln(w, "  aochelper get <day>              Download input for a day (1-25)")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Environment:")
	_, _ = fmt.Fprintln(w, "  AOC_SESSION  Session cookie value, used when no key is stored")
	_, _ = fmt.Fprintln(w, "  NO_COLOR     Disable colored output")
}

func runSet(log *logger, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: aochelper set {%s|%s} <value>", fieldYear, fieldSessionKey)
	}

	switch args[0] {
	case fieldYear:
		year, err := strconv.Atoi(args[1])
		if err != nil || year < 2015 {
			return fmt.Errorf("invalid year: %s", args[1])
		}
		if err := saveYear(configFile, year); err != nil {
			return err
		}
		log.okf("year set to %d", year)
		return nil
	case fieldSessionKey:
		if args[1] == "" {
			return fmt.Errorf("session key must not be empty")
		}
		if err := saveSessionKey(configFile, args[1]); err != nil {
			return err
		}
		log.ok("session key saved")
		return nil
	default:
		return fmt.Errorf("unknown setting: %s", args[0])
	}
}

func runGet(ctx context.Context, log *logger, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: aochelper get <day>")
	}
	day, err := strconv.Atoi(args[0])
	if err != nil || day < 1 || day > 25 {
		return fmt.Errorf("day must be 1-25, got %s", args[0])
	}
	return getInput(ctx, log, configFile, defaultBaseURL, day, newFirefoxSource(siteDomain))
}

// getInput is the full get pipeline: config, session, fetch, write.
// Config and session failures happen before any network work.
func getInput(ctx context.Context, log *logger, configPath, baseURL string, day int, sources ...credentialSource) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	key, err := resolveSession(cfg, log, sources...)
	if err != nil {
		return err
	}

	client, err := newAPIClient(baseURL, key)
	if err != nil {
		return err
	}

	log.infof("fetching input: year=%d day=%d", cfg.Year, day)
	body, err := client.fetchInput(ctx, cfg.Year, day)
	if err != nil {
		switch {
		case isAuthError(err):
			return fmt.Errorf("session rejected by %s: run `aochelper set session_key <key>` with a fresh cookie", siteDomain)
		case isNotFound(err):
			return fmt.Errorf("no input for %d day %d: not published yet?", cfg.Year, day)
		default:
			return err
		}
	}

	path, err := writeInput(cfg.Year, day, body)
	if err != nil {
		return err
	}
	log.okf("wrote %d bytes to %s", len(body), path)
	return nil
}
