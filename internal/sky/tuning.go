package sky

import "time"

// ---- Simulation Parameters

const (
	// MaxStep caps the per-frame simulation step so a stalled terminal or a
	// suspended process does not teleport comets.
	MaxStep = 50 * time.Millisecond

	// UnitArea is the layout area (px²) that Density is expressed against.
	UnitArea = 10000.0

	// CometMargin is how far outside the viewport comets spawn and die.
	CometMargin = 50.0

	// twinkleFloor is the minimum star opacity before MaxTwinkle is added.
	twinkleFloor = 0.22

	// parallaxRange scales Parallax × depth into a pixel shift.
	parallaxRange = 40.0
)

// ---- Comet Launch Parameters

const (
	cometMinSpeed    = 90.0  // px/s
	cometSpeedRange  = 70.0  // px/s added on top of the minimum
	cometAimJitter   = 0.5   // rad, full width around the inward heading
	cometEdgeTilt    = 0.05  // rad, bias off the horizontal for side entries
	cometMinAccel    = 6.0   // px/s²
	cometAccelRange  = 12.0  // px/s²
	firstCometMinSec = 1.0
	firstCometMaxSec = 3.0
)

// ---- Cadence Presets

// Cadence names a comet spawn-interval preset.
type Cadence string

const (
	CadenceCalm    Cadence = "calm"
	CadenceNormal  Cadence = "normal"
	CadenceStorm   Cadence = "storm"
	DefaultCadence Cadence = CadenceNormal
)

// CadencePreset is a spawn interval range in seconds.
type CadencePreset struct {
	Min float64
	Max float64
}

// CadencePresets maps preset names to their spawn intervals.
var CadencePresets = map[Cadence]CadencePreset{
	CadenceCalm:   {Min: 8, Max: 16},
	CadenceNormal: {Min: 4, Max: 10},
	CadenceStorm:  {Min: 1, Max: 3},
}

var cadenceOrder = []Cadence{CadenceCalm, CadenceNormal, CadenceStorm}

// Faster returns the next busier preset, saturating at storm.
func (c Cadence) Faster() Cadence {
	return c.step(1)
}

// Slower returns the next quieter preset, saturating at calm.
func (c Cadence) Slower() Cadence {
	return c.step(-1)
}

func (c Cadence) step(delta int) Cadence {
	for i, name := range cadenceOrder {
		if name != c {
			continue
		}
		j := min(max(i+delta, 0), len(cadenceOrder)-1)
		return cadenceOrder[j]
	}
	return DefaultCadence
}

// Apply sets the field's spawn interval to the preset. Unknown names are ignored.
func (c Cadence) Apply(f *Field) bool {
	p, ok := CadencePresets[c]
	if !ok {
		return false
	}
	f.SetCometEvery(p.Min, p.Max)
	return true
}

// ---- Looks

// Look names a bundle of comet appearance settings.
type Look string

const (
	LookStock Look = "stock"
	LookSite  Look = "site" // the portfolio site's background: sparse, short bright-headed tails
)

// Apply returns c with the look's comet settings. Unknown looks return c
// unchanged and false.
func (l Look) Apply(c Config) (Config, bool) {
	src := DefaultConfig()
	switch l {
	case LookStock:
	case LookSite:
		src.CometEvery = [2]float64{10, 20}
		src.CometTrail = 110
		src.CometHeadRadius = 3.5
		src.CometHeadGlow = 10
		src.TailBrightAtHead = true
		src.HeadOpacity = 0.55
		src.GlowOpacity = 0.18
	default:
		return c, false
	}
	c.CometEvery = src.CometEvery
	c.CometTrail = src.CometTrail
	c.CometHeadRadius = src.CometHeadRadius
	c.CometHeadGlow = src.CometHeadGlow
	c.TailBrightAtHead = src.TailBrightAtHead
	c.HeadOpacity = src.HeadOpacity
	c.GlowOpacity = src.GlowOpacity
	return c, true
}
