// Package ticker renders recent git commits as a two-row crawl along the
// bottom of the screen.
package ticker

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// EnvGitDir names the fallback directory when none is given.
const EnvGitDir = "STARFIELD_GIT_DIR"

// Rows is the number of screen rows the ticker occupies.
const Rows = 2

// MaxSubject is the widest subject shown before it is cut with an ellipsis,
// so one commit never fills a narrow popup on its own.
const MaxSubject = 60

// ErrNoCommits is returned when the log holds nothing to show.
var ErrNoCommits = errors.New("no commits to show")

// Ticker holds the two crawl rows and the scroll position.
type Ticker struct {
	msg    []rune
	meta   []rune
	offset int
	style  tcell.Style
}

// New builds a ticker from pre-rendered message and meta rows.
func New(msg, meta string) *Ticker {
	return &Ticker{
		msg:   []rune(msg),
		meta:  []rune(meta),
		style: tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
	}
}

// Load runs git log in dir (or $STARFIELD_GIT_DIR, or the working
// directory) and builds a ticker from the last maxCommits commits.
func Load(dir string, maxCommits int) (*Ticker, error) {
	args := []string{
		"log",
		"-n", strconv.Itoa(maxCommits),
		"--pretty=format:%h%x09%an%x09%ar%x09%s",
	}
	cmd := exec.Command("git", args...)
	if dir != "" {
		cmd.Dir = dir
	} else if env := os.Getenv(EnvGitDir); env != "" {
		cmd.Dir = env
	}
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git log: %w", err)
	}
	msg, meta, ok := Parse(string(out))
	if !ok {
		return nil, ErrNoCommits
	}
	return New(msg, meta), nil
}

// Parse turns tab-separated "hash, author, relative time, subject" lines
// into two equally segmented rows: subjects on top, "by author time" below.
func Parse(logOutput string) (string, string, bool) {
	lines := strings.Split(strings.TrimSpace(logOutput), "\n")
	var msgSegs, metaSegs []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 4)
		if len(parts) != 4 {
			continue
		}
		author, relTime, subject := parts[1], parts[2], elide(parts[3], MaxSubject)
		meta := "by " + author + " " + relTime
		width := max(len([]rune(subject)), len([]rune(meta))) + 4
		msgSegs = append(msgSegs, padRight(subject, width))
		metaSegs = append(metaSegs, padRight(meta, width))
	}
	if len(msgSegs) == 0 {
		return "", "", false
	}
	return strings.Join(msgSegs, ""), strings.Join(metaSegs, ""), true
}

func elide(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func padRight(s string, n int) string {
	pad := n - len([]rune(s))
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}

// Draw paints both rows on the last two lines of s, scrolling one column
// every fourth frame.
func (t *Ticker) Draw(s tcell.Screen, frame int) {
	width, height := s.Size()
	if height < Rows || len(t.msg) == 0 || len(t.meta) == 0 {
		return
	}
	msgRow, metaRow := height-2, height-1
	for x := 0; x < width; x++ {
		s.SetContent(x, msgRow, t.msg[(t.offset+x)%len(t.msg)], nil, t.style)
		s.SetContent(x, metaRow, t.meta[(t.offset+x)%len(t.meta)], nil, t.style)
	}
	if frame%4 == 0 {
		t.offset = (t.offset + 1) % len(t.msg)
	}
}

// Offset returns the current scroll position.
func (t *Ticker) Offset() int { return t.offset }
