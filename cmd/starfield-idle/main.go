package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"starfield/internal/idle"
	"starfield/internal/log"
)

func main() {
	timeout := flag.Duration("timeout", idle.DefaultTimeout, "Idle time before triggering the screensaver")
	poll := flag.Duration("poll", idle.DefaultPoll, "Interval between tmux activity checks")
	once := flag.Bool("once", false, "Trigger the screensaver immediately and exit (for manual trigger)")
	withTicker := flag.Bool("ticker", false, "Show the git commit ticker")
	flag.Parse()

	bin, err := findStarfield()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	var args []string
	if *withTicker {
		args = append(args, "--ticker")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *once {
		if err := idle.Trigger(ctx, bin, args); err != nil {
			fmt.Fprintf(os.Stderr, "screensaver exited with error: %v\n", err)
		}
		return
	}

	err = idle.Watch(ctx, bin, idle.Config{
		Timeout: *timeout,
		Poll:    *poll,
		Args:    args,
		Logger:  log.New(os.Stdout, log.LevelInfo),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// findStarfield looks for the starfield binary next to this executable,
// then under ./bin.
func findStarfield() (string, error) {
	exePath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("finding executable path: %w", err)
	}
	bin := filepath.Join(filepath.Dir(exePath), "starfield")
	if _, err := os.Stat(bin); err == nil {
		return bin, nil
	}
	if wd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(wd, "bin", "starfield")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return bin, nil
}
