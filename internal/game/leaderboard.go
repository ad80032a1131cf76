package game

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/pixil98/go-arcana/internal/storage"
)

// Board selects the leaderboard ranking.
type Board string

const (
	BoardOverall  Board = "overall"
	BoardPvP      Board = "pvp"
	BoardDungeon  Board = "dungeon"
	BoardPrestige Board = "prestige"
)

// LeaderboardSize is the number of entries returned.
const LeaderboardSize = 10

func ParseBoard(s string) (Board, error) {
	switch b := Board(s); b {
	case "":
		return BoardOverall, nil
	case BoardOverall, BoardPvP, BoardDungeon, BoardPrestige:
		return b, nil
	}
	return "", fmt.Errorf("%w: unknown leaderboard %q", ErrInvalidChoice, s)
}

type Standing struct {
	Rank     int    `json:"rank"`
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}

// Score ranks a player on a board.
func Score(p *Player, b Board) int {
	switch b {
	case BoardPvP:
		return p.PvPPoints
	case BoardDungeon:
		return p.DeepestFloor
	case BoardPrestige:
		return p.Prestige
	default:
		return p.Level*10 + p.Mana/2 + p.PvPPoints/5 + p.DeepestFloor*20
	}
}

// Leaderboard returns the top players on a board. Ties are broken by name, then id.
func Leaderboard(players storage.Reader[*Player], b Board) []Standing {
	all := players.GetAll()
	out := make([]Standing, 0, len(all))
	for _, p := range all {
		out = append(out, Standing{PlayerID: p.ID, Name: p.Name, Score: Score(p, b)})
	}

	slices.SortFunc(out, func(a, c Standing) int {
		return cmp.Or(
			cmp.Compare(c.Score, a.Score),
			cmp.Compare(a.Name, c.Name),
			cmp.Compare(a.PlayerID, c.PlayerID),
		)
	})

	if len(out) > LeaderboardSize {
		out = out[:LeaderboardSize]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
