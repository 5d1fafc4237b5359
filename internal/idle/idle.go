// Package idle watches tmux client activity and opens the starfield in a
// full-screen popup once the client has been idle long enough.
package idle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"starfield/internal/log"
)

const (
	DefaultTimeout = 300 * time.Second
	DefaultPoll    = 5 * time.Second
)

// ErrNotInTmux is returned by Watch outside a tmux session.
var ErrNotInTmux = errors.New("not running inside tmux")

// Config controls the watcher.
type Config struct {
	Timeout time.Duration
	Poll    time.Duration
	// Args are passed to the starfield executable after "run".
	Args   []string
	Logger *log.Logger
}

// Watch polls tmux until ctx is done, triggering the screensaver whenever
// the client has been idle for cfg.Timeout. After a trigger it waits for the
// client to become active again before re-arming, since popup interaction
// does not update #{client_activity}.
func Watch(ctx context.Context, exe string, cfg Config) error {
	if os.Getenv("TMUX") == "" {
		return ErrNotInTmux
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Poll <= 0 {
		cfg.Poll = DefaultPoll
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Discard()
	}

	logger.Infof("idle watcher started (timeout: %s, poll: %s)", cfg.Timeout, cfg.Poll)

	ticker := time.NewTicker(cfg.Poll)
	defer ticker.Stop()

	var w watcher
	for {
		select {
		case <-ctx.Done():
			logger.Infof("idle watcher stopped")
			return nil
		case <-ticker.C:
			idle, err := IdleTime(ctx)
			if err != nil {
				logger.Debugf("reading client activity: %v", err)
				continue
			}
			if !w.observe(idle, cfg.Timeout) {
				continue
			}
			logger.Infof("idle for %s, starting starfield", idle)
			if err := Trigger(ctx, exe, cfg.Args); err != nil {
				logger.Warnf("screensaver exited with error: %v", err)
			}
		}
	}
}

// watcher is the trigger/re-arm state machine behind Watch.
type watcher struct {
	waitingForActivity bool
}

// observe reports whether an idle reading should trigger the screensaver.
func (w *watcher) observe(idle, timeout time.Duration) bool {
	if w.waitingForActivity {
		if idle < timeout {
			w.waitingForActivity = false
		}
		return false
	}
	if idle >= timeout {
		w.waitingForActivity = true
		return true
	}
	return false
}

// IdleTime asks tmux how long the client has been inactive.
func IdleTime(ctx context.Context) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, "tmux", "display-message", "-p", "#{client_activity}")
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("get client activity: %w", err)
	}
	return ParseActivity(string(out), time.Now())
}

// ParseActivity converts a #{client_activity} unix timestamp into the idle
// duration at now. Timestamps in the future count as zero idle time.
func ParseActivity(out string, now time.Time) (time.Duration, error) {
	s := strings.TrimSpace(out)
	if s == "" {
		return 0, fmt.Errorf("empty activity timestamp")
	}
	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse activity timestamp: %w", err)
	}
	idle := max(now.Unix()-ts, 0)
	return time.Duration(idle) * time.Second, nil
}

// Trigger opens "exe run args..." in a full-screen tmux popup and waits for
// the user to dismiss it.
func Trigger(ctx context.Context, exe string, args []string) error {
	panePathCmd := exec.CommandContext(ctx, "tmux", "display-message", "-p", "#{pane_current_path}")
	panePathOut, _ := panePathCmd.Output()

	// Not bound to ctx: the popup is interactive and the user closes it.
	cmd := exec.Command("tmux", PopupArgs(exe, args, strings.TrimSpace(string(panePathOut)))...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	return cmd.Run()
}

// PopupArgs builds the tmux display-popup arguments. A non-empty panePath
// is forwarded as --dir so the ticker shows that repository's commits.
func PopupArgs(exe string, args []string, panePath string) []string {
	parts := append([]string{strconv.Quote(exe), "run"}, args...)
	if panePath != "" {
		parts = append(parts, "--dir", strconv.Quote(panePath))
	}
	return []string{
		"display-popup",
		"-E",
		"-w", "100%",
		"-h", "100%",
		strings.Join(parts, " "),
	}
}
