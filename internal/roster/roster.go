package roster

import "sort"

// NoPlayer marks "no self id assigned yet" and "no recently scored player".
// Real ids are allocated by the server starting from zero.
const NoPlayer = -1

// Player is one entry in the replicated player list. Guess is nil when the
// player has not answered this round; the empty string is an explicit skip.
type Player struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Score int     `json:"score"`
	Guess *string `json:"guessed,omitempty"`
}

// SortStandings orders players by score descending, ties broken by id
// ascending. Run after every structural roster event; never after a
// guess-only update.
func SortStandings(players []Player) {
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Score != players[j].Score {
			return players[i].Score > players[j].Score
		}
		return players[i].ID < players[j].ID
	})
}

// FindByID returns the index of the player with the given id, or -1.
func FindByID(players []Player, id int) int {
	for i := range players {
		if players[i].ID == id {
			return i
		}
	}
	return -1
}
