package breakout

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/physics"
)

// PickupType represents different types of power-up pickups.
type PickupType int

const (
	PickupWiden     PickupType = iota // Widen paddle
	PickupShrink                      // Shrink paddle
	PickupMultiball                   // Spawn extra balls
	PickupSticky                      // Sticky paddle
	PickupSpeedUp                     // Speed up balls
	PickupSlowDown                    // Slow down balls
	PickupExtraLife                   // Extra life
)

// Glyph returns the display character for a pickup type.
func (p PickupType) Glyph() rune {
	switch p {
	case PickupWiden:
		return 'W'
	case PickupShrink:
		return 'S'
	case PickupMultiball:
		return 'M'
	case PickupSticky:
		return 'T'
	case PickupSpeedUp:
		return '+'
	case PickupSlowDown:
		return '-'
	case PickupExtraLife:
		return '♥'
	default:
		return '?'
	}
}

// Color returns the display color for a pickup type.
func (p PickupType) Color() core.Color {
	switch p {
	case PickupShrink, PickupSpeedUp:
		return core.ColorBrightRed
	case PickupExtraLife:
		return core.ColorMagenta
	default:
		return core.ColorBrightGreen
	}
}

// String returns the name of the pickup type.
func (p PickupType) String() string {
	switch p {
	case PickupWiden:
		return "Widen"
	case PickupShrink:
		return "Shrink"
	case PickupMultiball:
		return "Multi"
	case PickupSticky:
		return "Sticky"
	case PickupSpeedUp:
		return "Fast"
	case PickupSlowDown:
		return "Slow"
	case PickupExtraLife:
		return "Life"
	default:
		return "?"
	}
}

// pickup is a falling power-up body. It is registered with the scene as
// the aux value of its paddle collision.
type pickup struct {
	game *Game
	kind PickupType
	body *physics.Body
}

// EffectType represents active effects on the game.
type EffectType int

const (
	EffectWiden    EffectType = iota // Paddle is widened
	EffectShrink                     // Paddle is shrunk
	EffectSticky                     // Paddle catches the ball
	EffectSpeedUp                    // Balls move faster
	EffectSlowDown                   // Balls move slower
)

// String returns the short name for effect display.
func (e EffectType) String() string {
	switch e {
	case EffectWiden:
		return "W"
	case EffectShrink:
		return "S"
	case EffectSticky:
		return "T"
	case EffectSpeedUp:
		return "+"
	case EffectSlowDown:
		return "-"
	default:
		return "?"
	}
}

// Effect represents an active timed effect.
type Effect struct {
	Type      EffectType
	UntilTick int // Tick at which effect expires
}

// TicksRemaining returns how many ticks until effect expires.
func (e *Effect) TicksRemaining(currentTick int) int {
	return max(e.UntilTick-currentTick, 0)
}

// PowerUpManager rolls pickups and tracks the timed effects they grant.
// Pickup bodies themselves live in the game's scene.
type PowerUpManager struct {
	Config  config.BreakoutPowerUps
	Effects []*Effect
	rng     *rand.Rand
}

// NewPowerUpManager creates a manager whose rolls are determined by seed.
func NewPowerUpManager(seed int64, cfg config.BreakoutPowerUps) *PowerUpManager {
	return &PowerUpManager{
		Config: cfg,
		rng:    rand.New(rand.NewSource(seed)), //#nosec G404 -- gameplay randomness, replayable from the seed
	}
}

// RollDrop reports whether a broken brick drops a pickup and which one.
func (pm *PowerUpManager) RollDrop() (PickupType, bool) {
	if pm.Config.SpawnChance <= 0 || pm.rng.Intn(100) >= pm.Config.SpawnChance {
		return 0, false
	}
	return pm.rollPickupType(), true
}

// rollPickupType selects a random pickup type based on weights.
func (pm *PowerUpManager) rollPickupType() PickupType {
	w := pm.Config.Weights
	weights := []struct {
		Type   PickupType
		Weight int
	}{
		{PickupWiden, w.Widen},
		{PickupShrink, w.Shrink},
		{PickupMultiball, w.Multiball},
		{PickupSticky, w.Sticky},
		{PickupSpeedUp, w.SpeedUp},
		{PickupSlowDown, w.SlowDown},
		{PickupExtraLife, w.ExtraLife},
	}

	total := 0
	for _, e := range weights {
		total += max(e.Weight, 0)
	}
	if total <= 0 {
		return PickupWiden
	}

	roll := pm.rng.Intn(total)
	cumulative := 0
	for _, e := range weights {
		cumulative += max(e.Weight, 0)
		if roll < cumulative {
			return e.Type
		}
	}
	return PickupWiden
}

// AddEffect adds an effect or extends the running one.
func (pm *PowerUpManager) AddEffect(effectType EffectType, currentTick, duration int) {
	for _, e := range pm.Effects {
		if e.Type == effectType {
			e.UntilTick = currentTick + duration
			return
		}
	}
	pm.Effects = append(pm.Effects, &Effect{
		Type:      effectType,
		UntilTick: currentTick + duration,
	})
}

// RemoveEffect removes an effect by type.
func (pm *PowerUpManager) RemoveEffect(effectType EffectType) {
	for i, e := range pm.Effects {
		if e.Type == effectType {
			pm.Effects = append(pm.Effects[:i], pm.Effects[i+1:]...)
			return
		}
	}
}

// ExpireEffects drops effects that have run out and returns their types.
func (pm *PowerUpManager) ExpireEffects(currentTick int) []EffectType {
	var expired []EffectType
	active := pm.Effects[:0]
	for _, e := range pm.Effects {
		if e.UntilTick <= currentTick {
			expired = append(expired, e.Type)
		} else {
			active = append(active, e)
		}
	}
	clear(pm.Effects[len(active):])
	pm.Effects = active
	return expired
}

// HasEffect returns true if the given effect is active.
func (pm *PowerUpManager) HasEffect(effectType EffectType) bool {
	for _, e := range pm.Effects {
		if e.Type == effectType {
			return true
		}
	}
	return false
}

// ClearEffects drops every active effect.
func (pm *PowerUpManager) ClearEffects() {
	pm.Effects = pm.Effects[:0]
}

// EffectsString renders the active effects with the seconds left rounded
// up, e.g. "W(12) +(5)".
func (pm *PowerUpManager) EffectsString(currentTick int, tickSeconds float64) string {
	parts := make([]string, 0, len(pm.Effects))
	for _, e := range pm.Effects {
		secs := int(math.Ceil(float64(e.TicksRemaining(currentTick)) * tickSeconds))
		parts = append(parts, fmt.Sprintf("%s(%d)", e.Type, secs))
	}
	return strings.Join(parts, " ")
}
