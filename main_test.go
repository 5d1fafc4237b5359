package main

import (
	"flag"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starfield/internal/sky"
)

func TestSecondsRange_Set(t *testing.T) {
	tests := []struct {
		in      string
		want    secondsRange
		wantErr bool
	}{
		{in: "4,10", want: secondsRange{4, 10}},
		{in: " 1.5 , 3 ", want: secondsRange{1.5, 3}},
		{in: "2", want: secondsRange{2, 2}},
		{in: "1,2,3", wantErr: true},
		{in: "a,b", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var r secondsRange
			err := r.Set(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, r)
		})
	}

	r := secondsRange{0.5, 12}
	assert.Equal(t, "0.5,12", r.String())
}

func TestRegisterSkyFlags(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		sf := registerSkyFlags(fs)
		require.NoError(t, fs.Parse(nil))
		assert.Equal(t, sky.DefaultConfig(), sf.config())
	})

	t.Run("overrides", func(t *testing.T) {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		sf := registerSkyFlags(fs)
		require.NoError(t, fs.Parse([]string{
			"-density", "0.8",
			"-comet-every", "1,2",
			"-trail-blend", "lighter",
			"-tail-bright-at-head",
			"-frame-fade", "0.3",
			"-reduced-motion",
			"-seed", "7",
		}))

		cfg := sf.config()
		assert.Equal(t, 0.8, cfg.Density)
		assert.Equal(t, [2]float64{1, 2}, cfg.CometEvery)
		assert.Equal(t, "lighter", cfg.TrailBlend)
		assert.True(t, cfg.TailBrightAtHead)
		assert.Equal(t, 0.3, cfg.FrameFade)
		assert.True(t, sf.reducedMotion)
		assert.Equal(t, int64(7), sf.seed)
	})

	t.Run("look preset then overrides", func(t *testing.T) {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		sf := registerSkyFlags(fs)
		require.NoError(t, fs.Parse([]string{"-look", "site", "-comet-trail", "50"}))

		cfg := sf.config()
		assert.Equal(t, [2]float64{10, 20}, cfg.CometEvery)
		assert.Equal(t, 3.5, cfg.CometHeadRadius)
		assert.True(t, cfg.TailBrightAtHead)
		assert.Equal(t, 50, cfg.CometTrail)
	})

	t.Run("unknown look", func(t *testing.T) {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		registerSkyFlags(fs)
		assert.Error(t, fs.Parse([]string{"-look", "neon"}))
	})

	t.Run("seeded rand is reproducible", func(t *testing.T) {
		sf := &skyFlags{seed: 42}
		assert.Equal(t, sf.newRand().Int63(), sf.newRand().Int63())
	})
}

func TestRegisterRunFlags(t *testing.T) {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	o := registerRunFlags(fs)
	require.NoError(t, fs.Parse([]string{"-cell-width", "4", "-filter", "box", "-cadence", "storm", "-ticker"}))

	assert.Equal(t, 4.0, o.cellWidth)
	assert.Equal(t, 16.0, o.cellHeight)
	assert.Equal(t, "box", o.filter)
	assert.Equal(t, "storm", o.cadence)
	assert.True(t, o.ticker)
	assert.NotNil(t, fs.Lookup("config"), "config file flag must exist for ff")
}

func TestSnapshot(t *testing.T) {
	fs := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	o := registerSnapshotFlags(fs)
	out := filepath.Join(t.TempDir(), "shots", "sky.png")
	require.NoError(t, fs.Parse([]string{
		"-width", "160",
		"-height", "90",
		"-dpr", "2",
		"-duration", "2s",
		"-fps", "30",
		"-seed", "3",
		"-comet-every", "0.2,0.4",
		"-out", out,
	}))

	require.NoError(t, execSnapshot(o))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 180, img.Bounds().Dy())
}

func TestSnapshot_Deterministic(t *testing.T) {
	o := &snapshotOptions{
		sky:      &skyFlags{cfg: sky.DefaultConfig(), every: secondsRange{0.5, 1}, seed: 11},
		width:    120,
		height:   80,
		dpr:      1,
		duration: 5 * time.Second,
		fps:      30,
	}
	a := o.simulate()
	b := o.simulate()
	assert.Equal(t, a.Spawned(), b.Spawned())
	assert.Positive(t, a.Spawned())
	assert.Equal(t, a.Surface().Image().Pix, b.Surface().Image().Pix)
}

func TestSnapshot_ClampsFPS(t *testing.T) {
	o := &snapshotOptions{
		sky:      &skyFlags{cfg: sky.DefaultConfig(), seed: 2},
		width:    40,
		height:   30,
		dpr:      1,
		duration: 200 * time.Millisecond,
		fps:      2_000_000_000,
	}

	done := make(chan *sky.Field, 1)
	go func() { done <- o.simulate() }()

	select {
	case f := <-done:
		assert.NotEmpty(t, f.Stars())
	case <-time.After(10 * time.Second):
		t.Fatal("simulate did not return")
	}
}

func TestRootCommand_ReadsEnvironment(t *testing.T) {
	t.Setenv("STARFIELD_REDUCED_MOTION", "1")
	t.Setenv("STARFIELD_DENSITY", "0.4")

	root, opts := newRootCommand()
	require.NoError(t, root.Parse(nil))

	assert.True(t, opts.sky.reducedMotion)
	assert.Equal(t, 0.4, opts.sky.config().Density)
}

func TestRootCommand_ReadsConfigFile(t *testing.T) {
	conf := filepath.Join(t.TempDir(), "starfield.conf")
	require.NoError(t, os.WriteFile(conf, []byte("reduced-motion true\ncadence calm\n"), 0o644))

	root, opts := newRootCommand()
	require.NoError(t, root.Parse([]string{"-config", conf}))

	assert.True(t, opts.sky.reducedMotion)
	assert.Equal(t, "calm", opts.cadence)
}

func TestSnapshot_RejectsEmptyViewport(t *testing.T) {
	o := &snapshotOptions{sky: &skyFlags{cfg: sky.DefaultConfig(), seed: 1}, width: 0, height: 10}
	assert.Error(t, execSnapshot(o))
}
