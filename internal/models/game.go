package models

import (
	"strconv"
	"strings"
	"time"
)

// Game types offered by the lobby.
const (
	GameTypeBlackjack = "Blackjack"
	GameTypeCasinoWar = "Casino War"
	GameTypeRoshambo  = "Roshambo"
)

// Lobby statuses. Completed and cancelled are terminal.
const (
	GameStatusWaiting    = "waiting"
	GameStatusInProgress = "in-progress"
	GameStatusFull       = "full"
	GameStatusCompleted  = "completed"
	GameStatusCancelled  = "cancelled"
)

// StakeFun denotes a zero-stake lobby.
const StakeFun = "Fun"

// Game represents a hostable lobby other users can join until it reaches
// capacity or is cancelled. Cancellation is a soft delete: the record keeps
// its history with status "cancelled" and an endedAt stamp.
type Game struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	GameType       string     `json:"gameType"`
	Host           string     `json:"host"`
	Stake          string     `json:"stake"`
	Status         string     `json:"status"`
	CurrentPlayers int        `json:"currentPlayers"`
	MaxPlayers     int        `json:"maxPlayers"`
	Players        []string   `json:"players"`
	CreatedAt      time.Time  `json:"createdAt"`
	ExpiryTime     time.Time  `json:"expiryTime"`
	EndedAt        *time.Time `json:"endedAt,omitempty"`
}

// IsValidGameType reports whether t names a known game type.
func IsValidGameType(t string) bool {
	switch t {
	case GameTypeBlackjack, GameTypeCasinoWar, GameTypeRoshambo:
		return true
	}
	return false
}

// MaxPlayersFor returns the lobby capacity for a game type. Blackjack is
// heads-up; everything else seats six.
func MaxPlayersFor(gameType string) int {
	if gameType == GameTypeBlackjack {
		return 2
	}
	return 6
}

// ParseStake resolves a stake string to its coin amount. "Fun" is zero-stake;
// "5+" counts as 5.
func ParseStake(stake string) (int, error) {
	if stake == StakeFun {
		return 0, nil
	}
	s := strings.TrimSuffix(stake, "+")
	amount, err := strconv.Atoi(s)
	if err != nil || amount <= 0 {
		return 0, NewValidationError("Invalid stake")
	}
	return amount, nil
}

// HasPlayer reports whether username already occupies a seat in the lobby.
func (g *Game) HasPlayer(username string) bool {
	for _, p := range g.Players {
		if p == username {
			return true
		}
	}
	return false
}

// Terminal reports whether the lobby can no longer transition.
func (g *Game) Terminal() bool {
	return g.Status == GameStatusCompleted || g.Status == GameStatusCancelled
}
