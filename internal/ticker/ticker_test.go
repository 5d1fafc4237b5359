package ticker

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantMsg  string
		wantMeta string
		wantOK   bool
	}{
		{
			name:   "empty",
			in:     "",
			wantOK: false,
		},
		{
			name:   "malformed lines only",
			in:     "abc123 no tabs here\n\n",
			wantOK: false,
		},
		{
			name:     "single commit pads to the longer row",
			in:       "abc123\tAda\t2 hours ago\tFix comets",
			wantMsg:  "Fix comets" + strings.Repeat(" ", 12),
			wantMeta: "by Ada 2 hours ago" + strings.Repeat(" ", 4),
			wantOK:   true,
		},
		{
			name:     "subject with tabs is kept whole",
			in:       "abc\tBo\tnow\ta\tb",
			wantMsg:  "a\tb" + strings.Repeat(" ", 10),
			wantMeta: "by Bo now" + strings.Repeat(" ", 4),
			wantOK:   true,
		},
		{
			name:     "long subject is elided",
			in:       "abc\tAda\tnow\t" + strings.Repeat("x", MaxSubject+10),
			wantMsg:  strings.Repeat("x", MaxSubject-1) + "…" + strings.Repeat(" ", 4),
			wantMeta: "by Ada now" + strings.Repeat(" ", MaxSubject+4-len("by Ada now")),
			wantOK:   true,
		},
		{
			name: "two commits",
			in:   "a1\tAda\t1 day ago\tAdd stars\n  \nb2\tBo\t2 days ago\tA much longer subject line",
			wantMsg: "Add stars" + strings.Repeat(" ", 11) +
				"A much longer subject line" + strings.Repeat(" ", 4),
			wantMeta: "by Ada 1 day ago" + strings.Repeat(" ", 4) +
				"by Bo 2 days ago" + strings.Repeat(" ", 14),
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, meta, ok := Parse(tt.in)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantMsg, msg)
			assert.Equal(t, tt.wantMeta, meta)
			assert.Equal(t, len([]rune(msg)), len([]rune(meta)), "rows stay aligned")
		})
	}
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "abcdef", padRight("abcdef", 4))
	assert.Equal(t, "★ ", padRight("★", 2), "pads by runes, not bytes")
}

func TestTicker_Draw(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	defer s.Fini()
	s.SetSize(6, 4)

	tk := New("abcdefgh", "12345678")
	tk.Draw(s, 0)

	for x, want := range "abcdef" {
		got, _, _, _ := s.GetContent(x, 2)
		assert.Equal(t, want, got, "msg col %d", x)
	}
	for x, want := range "123456" {
		got, _, _, _ := s.GetContent(x, 3)
		assert.Equal(t, want, got, "meta col %d", x)
	}
	assert.Equal(t, 1, tk.Offset(), "frame 0 scrolls")

	tk.Draw(s, 1)
	assert.Equal(t, 1, tk.Offset(), "only every fourth frame scrolls")
	got, _, _, _ := s.GetContent(0, 2)
	assert.Equal(t, 'b', got)

	t.Run("wraps around", func(t *testing.T) {
		tk := New("xy", "12")
		for f := 0; f < 8; f += 4 {
			tk.Draw(s, f)
		}
		assert.Equal(t, 0, tk.Offset())
	})

	t.Run("too short screen draws nothing", func(t *testing.T) {
		small := tcell.NewSimulationScreen("UTF-8")
		require.NoError(t, small.Init())
		defer small.Fini()
		small.SetSize(6, 1)
		New("abc", "def").Draw(small, 0)
		got, _, _, _ := small.GetContent(0, 0)
		assert.NotEqual(t, 'a', got)
	})
}
