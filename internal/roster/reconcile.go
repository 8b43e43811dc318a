package roster

import "fmt"

// SkipLabel is shown in place of an empty-string guess.
const SkipLabel = "SKIP"

const (
	selfBackground     = "#fff"
	otherBackground    = "#999"
	scoredOverlayColor = "yellow"
	guessOverlayColor  = "gray"
)

// RowState is everything a bound row displays.
type RowState struct {
	ID             int    `json:"id"`
	NameLabel      string `json:"name_label"`
	ScoreLabel     string `json:"score_label"`
	Background     string `json:"background"`
	OverlayVisible bool   `json:"overlay_visible"`
	OverlayText    string `json:"overlay_text,omitempty"`
	OverlayColor   string `json:"overlay_color,omitempty"`
}

// Row is one persistent visual binding. Bindings only ever calls Update;
// how a row renders is the presentation layer's business.
type Row interface {
	Update(RowState)
}

// Pool creates trailing rows on demand and drops the trailing surplus when
// the roster shrinks. Rows are never removed from the middle.
type Pool interface {
	Create() Row
	Trim(n int)
}

// Bindings keeps a pool of rows positionally in sync with the roster:
// Bindings row i always reflects roster entry i. The diff is positional, not
// keyed, so a reorder still means visiting every row.
type Bindings struct {
	pool Pool
	rows []Row
}

func NewBindings(pool Pool) *Bindings {
	return &Bindings{pool: pool}
}

// Reconcile updates every row from the player at the same index, creating
// rows as the roster outgrows the pool and trimming the tail when it
// shrinks. Reconciling twice without an intervening mutation is a no-op.
func (b *Bindings) Reconcile(players []Player, selfID, scoredID int) {
	for i := range players {
		if i >= len(b.rows) {
			b.rows = append(b.rows, b.pool.Create())
		}
		b.rows[i].Update(rowStateFor(players[i], selfID, scoredID))
	}
	if len(players) < len(b.rows) {
		b.rows = b.rows[:len(players)]
		b.pool.Trim(len(players))
	}
}

// Len reports the current pool size.
func (b *Bindings) Len() int { return len(b.rows) }

func rowStateFor(p Player, selfID, scoredID int) RowState {
	rs := RowState{
		ID:         p.ID,
		NameLabel:  fmt.Sprintf("[%d] %s", p.ID, p.Name),
		ScoreLabel: fmt.Sprintf("SCORE: %d", p.Score),
		Background: otherBackground,
	}
	if p.ID == selfID {
		rs.Background = selfBackground
	}
	if p.Guess == nil {
		return rs
	}
	rs.OverlayVisible = true
	rs.OverlayColor = guessOverlayColor
	if p.ID == scoredID {
		rs.OverlayColor = scoredOverlayColor
	}
	if *p.Guess == "" {
		rs.OverlayText = SkipLabel
	} else {
		rs.OverlayText = *p.Guess
	}
	return rs
}
