package goldrun

import (
	"fmt"

	"github.com/vovakirdan/goldrun/internal/core"
	gcore "github.com/vovakirdan/goldrun/internal/games/goldrun/core"
)

const (
	hudHeight = 2
	cellWidth = 2 // screen columns per grid cell
)

// view places the grid on the screen. It is recomputed on every Render
// and used to map pointer positions back to cells.
type view struct {
	offX, offY int
	w, h       int
	ok         bool
}

func newView(screenW, screenH, w, h int) view {
	v := view{w: w, h: h}
	if screenW < w*cellWidth+2 || screenH < h+hudHeight+2 {
		return v
	}
	v.ok = true
	v.offX = (screenW - w*cellWidth) / 2
	v.offY = hudHeight + 1
	return v
}

// cellAt maps a screen position to the grid cell drawn there.
func (v view) cellAt(x, y int) (gcore.Coord, bool) {
	if !v.ok || x < v.offX || y < v.offY {
		return gcore.Coord{}, false
	}
	i := (x-v.offX)/cellWidth + 1
	j := y - v.offY + 1
	if i > v.w || j > v.h {
		return gcore.Coord{}, false
	}
	return gcore.C(i, j), true
}

// screenPos returns the screen column and row of cell (i, j).
func (v view) screenPos(i, j int) (int, int) {
	return v.offX + (i-1)*cellWidth, v.offY + j - 1
}

type glyph struct {
	text  string
	color core.Color
}

var cellGlyphs = map[gcore.CellType]glyph{
	gcore.Brick:      {"▓▓", core.ColorOrange},
	gcore.FalseBrick: {"▓▓", core.ColorOrange},
	gcore.Concrete:   {"██", core.ColorGray},
	gcore.Ladder:     {"├┤", core.ColorWhite},
	gcore.Bar:        {"──", core.ColorWhite},
	gcore.Nugget:     {"$$", core.ColorBrightYellow},
}

// digGlyphs shows a brick crumbling and refilling, indexed by dig stage.
var digGlyphs = [gcore.DigStageLast + 1]string{
	1: "▒▒", 2: "▒░", 3: "░░", 4: "░ ",
	5: "  ",
	6: "░ ", 7: "░░", 8: "▒░", 9: "▒▒",
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.session == nil {
		msg := "Not started"
		if g.err != nil {
			msg = g.err.Error()
		}
		g.renderOverlay(dst, "Cannot start", msg)
		return
	}

	lp := g.session.Player()
	grid := lp.Grid()
	g.view = newView(dst.Width(), dst.Height(), grid.Width(), grid.Height())

	g.renderHUD(dst, lp)
	if !g.view.ok {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	v := g.view
	dst.DrawBox(core.NewRect(v.offX-1, v.offY-1, v.w*cellWidth+2, v.h+2), core.ColorGray)
	g.renderGrid(dst, grid)
	g.renderSprites(dst, lp)

	switch g.session.State() {
	case gcore.SessionWon:
		g.renderOverlay(dst, "You Win!", fmt.Sprintf("Final Score: %d", g.session.Score()))
	case gcore.SessionOver:
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case gcore.SessionPaused:
		if lp.Outcome() == gcore.Completed {
			g.renderOverlay(dst, "Level complete!", fmt.Sprintf("Score: %d", g.session.Score()))
		} else {
			g.renderOverlay(dst, "Caught!", fmt.Sprintf("Lives left: %d", g.session.Lives()))
		}
	}
}

func (g *Game) renderHUD(dst *core.Screen, lp *gcore.LevelPlayer) {
	left := fmt.Sprintf(" Level %d/%d  %s", g.session.LevelIndex()+1, len(g.session.Levels()), g.hud.levelName)
	right := fmt.Sprintf("Gold %d  Lives %d  Score %07d ", lp.NuggetsLeft(), g.session.Lives(), g.session.Score())
	dst.DrawTextColored(0, 0, left, core.ColorBrightYellow)
	dst.DrawTextColored(dst.Width()-len(right), 0, right, core.ColorBrightWhite)

	switch {
	case g.hud.showHint && g.hud.hint != "":
		dst.DrawTextCentered(1, "Hint: "+g.hud.hint, core.ColorCyan)
	case g.hud.message != "":
		dst.DrawTextCentered(1, g.hud.message, core.ColorBrightCyan)
	default:
		dst.DrawTextCentered(1, lp.Rules().Title, core.ColorGray)
	}
}

func (g *Game) renderGrid(dst *core.Screen, grid *gcore.Grid) {
	for j := 1; j <= grid.Height(); j++ {
		for i := 1; i <= grid.Width(); i++ {
			x, y := g.view.screenPos(i, j)
			if stage := grid.DigStage(i, j); stage > 0 {
				dst.DrawTextColored(x, y, digGlyphs[stage], core.ColorOrange)
				continue
			}
			if gl, ok := cellGlyphs[grid.Cell(i, j)]; ok {
				dst.DrawTextColored(x, y, gl.text, gl.color)
			}
		}
	}
}

// Sprite glyphs alternate between two frames.
var (
	heroFrames = map[gcore.Anim][2]string{
		gcore.AnimStand:    {"()", "()"},
		gcore.AnimRunLeft:  {"<)", "<("},
		gcore.AnimRunRight: {"(>", ")>"},
		gcore.AnimClimb:    {"/)", "(\\"},
		gcore.AnimBarLeft:  {"<~", "<-"},
		gcore.AnimBarRight: {"~>", "->"},
		gcore.AnimFall:     {"\\/", "\\/"},
	}
	enemyFrames = map[gcore.Anim][2]string{
		gcore.AnimStand:    {"[]", "[]"},
		gcore.AnimRunLeft:  {"<]", "<["},
		gcore.AnimRunRight: {"[>", "]>"},
		gcore.AnimClimb:    {"/]", "[\\"},
		gcore.AnimBarLeft:  {"<=", "<-"},
		gcore.AnimBarRight: {"=>", "->"},
		gcore.AnimFall:     {"\\/", "\\/"},
		gcore.AnimCaptive:  {"][", "]["},
	}
)

func (g *Game) spriteText(frames map[gcore.Anim][2]string, sprite int) string {
	a, ok := g.hud.sprites[sprite]
	if !ok {
		return frames[gcore.AnimStand][0]
	}
	pair, ok := frames[a.anim]
	if !ok {
		pair = frames[gcore.AnimStand]
	}
	return pair[a.frame(g.hud.now)%2]
}

// spritePos converts a runner's point position to screen coordinates,
// moving the sprite part way across cells.
func (g *Game) spritePos(r *gcore.Runner, ppc int) (int, int) {
	px, py := r.Point()
	x := g.view.offX + (px-ppc)*cellWidth/ppc
	y := g.view.offY + (py-ppc+ppc/2)/ppc
	return x, y
}

func (g *Game) renderSprites(dst *core.Screen, lp *gcore.LevelPlayer) {
	ppc := lp.Rules().PointsPerCell
	for _, e := range lp.Enemies() {
		color := core.ColorBrightRed
		switch {
		case e.Status == gcore.Captive:
			color = core.ColorMagenta
		case e.Nuggets > 0:
			color = core.ColorYellow
		}
		x, y := g.spritePos(&e.Runner, ppc)
		dst.DrawTextColored(x, y, g.spriteText(enemyFrames, e.ID+1), color)
	}

	x, y := g.spritePos(&lp.Hero().Runner, ppc)
	dst.DrawTextColored(x, y, g.spriteText(heroFrames, gcore.HeroSprite), core.ColorBrightGreen)
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *core.Screen, title, subtitle string) {
	w := max(len([]rune(title)), len([]rune(subtitle))) + 6
	box := core.NewRect(0, 0, dst.Width(), dst.Height()).Centered(w, 4)
	dst.FillRect(box)
	dst.DrawBox(box, core.ColorBrightWhite)
	dst.DrawTextColored(box.X+(w-len([]rune(title)))/2, box.Y+1, title, core.ColorBrightYellow)
	dst.DrawTextColored(box.X+(w-len([]rune(subtitle)))/2, box.Y+2, subtitle, core.ColorWhite)
}
