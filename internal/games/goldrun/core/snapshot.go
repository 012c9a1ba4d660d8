package core

// RunnerSnapshot is the observable state of one runner.
type RunnerSnapshot struct {
	I        int       `json:"i"`
	J        int       `json:"j"`
	Progress int       `json:"progress"`
	Dir      Direction `json:"dir"`
	Status   Status    `json:"status"`
	Nuggets  int       `json:"nuggets"`
}

// Snapshot is a comparable copy of a level's state, used to check that two
// runs with the same seed and inputs agree.
type Snapshot struct {
	Tick    uint64           `json:"tick"`
	Rows    []string         `json:"rows"`
	Hero    RunnerSnapshot   `json:"hero"`
	Enemies []RunnerSnapshot `json:"enemies"`
	Nuggets int              `json:"nuggets"`
	Score   int              `json:"score"`
	Outcome Outcome          `json:"outcome"`
}

func snapshotRunner(r *Runner) RunnerSnapshot {
	return RunnerSnapshot{
		I:        r.I,
		J:        r.J,
		Progress: r.Progress,
		Dir:      r.Dir,
		Status:   r.Status,
		Nuggets:  r.Nuggets,
	}
}

// Snapshot captures the level's current state.
func (lp *LevelPlayer) Snapshot() Snapshot {
	s := Snapshot{
		Tick:    lp.ticks,
		Rows:    lp.grid.Rows(),
		Hero:    snapshotRunner(&lp.hero.Runner),
		Nuggets: lp.nuggets,
		Score:   lp.score,
		Outcome: lp.outcome,
	}
	for _, e := range lp.enemies {
		s.Enemies = append(s.Enemies, snapshotRunner(&e.Runner))
	}
	return s
}

// Rows renders the grid as layout codes, one string per row. Dig stages
// other than open holes show as the underlying brick.
func (g *Grid) Rows() []string {
	rows := make([]string, g.h)
	buf := make([]byte, g.w)
	for j := 1; j <= g.h; j++ {
		for i := 1; i <= g.w; i++ {
			buf[i-1] = g.Cell(i, j).Code()
		}
		rows[j-1] = string(buf)
	}
	return rows
}
