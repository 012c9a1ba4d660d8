package goldrun

import (
	"fmt"

	gcore "github.com/vovakirdan/goldrun/internal/games/goldrun/core"
)

// flashTicks is how long a HUD message stays up.
const flashTicks = 120

// hud is the state the status lines show, fed by simulation events.
type hud struct {
	levelName string
	hint      string
	showHint  bool

	message string
	ttl     int

	sprites map[int]spriteAnim
	now     uint64
}

// spriteAnim is the last animation started for a sprite.
type spriteAnim struct {
	anim     gcore.Anim
	first    int
	last     int
	duration int
	started  uint64
}

// frame returns the animation frame to draw at tick now.
func (a spriteAnim) frame(now uint64) int {
	n := a.last - a.first + 1
	if n <= 1 || a.duration <= 0 {
		return a.first
	}
	elapsed := int(now - a.started)
	return a.first + (elapsed*n/a.duration)%n
}

func (h *hud) flash(format string, args ...any) {
	h.message = fmt.Sprintf(format, args...)
	h.ttl = flashTicks
}

func (h *hud) tick() {
	h.now++
	if h.ttl > 0 {
		h.ttl--
		if h.ttl == 0 {
			h.message = ""
		}
	}
}

// Emit receives simulation events for the HUD and logs the notable ones.
func (g *Game) Emit(ev gcore.Event) {
	h := &g.hud
	switch ev := ev.(type) {
	case gcore.LevelStarted:
		g.target = gcore.Coord{}
		h.levelName = ev.Name
		h.hint = ""
		h.showHint = false
		h.sprites = nil
		h.flash("Level %d: %s", ev.Number, ev.Name)
		g.logger.Debug("level", "number", ev.Number, "id", ev.ID)
	case gcore.HintAvailable:
		h.hint = ev.Text
	case gcore.SpriteAnimated:
		if h.sprites == nil {
			h.sprites = make(map[int]spriteAnim)
		}
		h.sprites[ev.Sprite] = spriteAnim{
			anim:     ev.Anim,
			first:    ev.FirstFrame,
			last:     ev.LastFrame,
			duration: ev.Duration,
			started:  h.now,
		}
	case gcore.HiddenLaddersRevealed:
		h.flash("The escape ladders appear!")
	case gcore.HeroCaught:
		if ev.EnemyID < 0 {
			h.flash("Crushed by a closing brick")
		} else {
			h.flash("Caught!")
		}
		g.logger.Info("hero died", "at", ev.At, "enemy", ev.EnemyID)
	case gcore.LevelComplete:
		h.flash("Level complete!")
		g.logger.Info("level complete", "number", ev.Number, "id", ev.ID, "ticks", ev.Ticks)
	case gcore.EnemyKilled:
		g.logger.Debug("enemy killed", "enemy", ev.EnemyID, "at", ev.At)
	case gcore.GameOver:
		g.logger.Info("game over", "score", ev.Score)
	case gcore.GameWon:
		g.logger.Info("game won", "score", ev.Score)
	case gcore.Sound:
		g.logger.Debug("sound", "cue", ev.Cue)
	}
}
