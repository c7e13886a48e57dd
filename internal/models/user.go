// Package models contains data structures for the application's domain records.
package models

import "time"

// UserStats tracks per-user activity and coin counters.
type UserStats struct {
	LastLogin      time.Time `json:"lastLogin"`
	TotalLogins    int       `json:"totalLogins"`
	TotalTimeSpent int       `json:"totalTimeSpent"` // seconds
	GamesPlayed    int       `json:"gamesPlayed"`
	CoinsWon       int       `json:"coinsWon"`
	CoinsLost      int       `json:"coinsLost"`
	CoinsAwarded   int       `json:"coinsAwarded"`
}

// User represents a registered account. Users are keyed by username and are
// never deleted.
type User struct {
	Username  string    `json:"username"`
	Password  string    `json:"password"` // bcrypt hash; client payloads use the view types
	Balance   int       `json:"balance"`
	IsAdmin   bool      `json:"isAdmin"`
	Stats     UserStats `json:"stats"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserStatsView is the stats payload a user sees for their own account.
type UserStatsView struct {
	Username       string    `json:"username"`
	Balance        int       `json:"balance"`
	LastLogin      time.Time `json:"lastLogin"`
	TotalLogins    int       `json:"totalLogins"`
	TotalTimeSpent int       `json:"totalTimeSpent"`
	GamesPlayed    int       `json:"gamesPlayed"`
	CoinsWon       int       `json:"coinsWon"`
	CoinsLost      int       `json:"coinsLost"`
	CreatedAt      time.Time `json:"createdAt"`
}

// AdminUserView is the per-user row returned to admins; it additionally
// exposes admin-awarded coins.
type AdminUserView struct {
	Username       string    `json:"username"`
	Balance        int       `json:"balance"`
	LastLogin      time.Time `json:"lastLogin"`
	TotalLogins    int       `json:"totalLogins"`
	TotalTimeSpent int       `json:"totalTimeSpent"`
	GamesPlayed    int       `json:"gamesPlayed"`
	CoinsWon       int       `json:"coinsWon"`
	CoinsLost      int       `json:"coinsLost"`
	CoinsAwarded   int       `json:"coinsAwarded"`
	CreatedAt      time.Time `json:"createdAt"`
}

// StatsView returns the user's own stats payload.
func (u *User) StatsView() UserStatsView {
	return UserStatsView{
		Username:       u.Username,
		Balance:        u.Balance,
		LastLogin:      u.Stats.LastLogin,
		TotalLogins:    u.Stats.TotalLogins,
		TotalTimeSpent: u.Stats.TotalTimeSpent,
		GamesPlayed:    u.Stats.GamesPlayed,
		CoinsWon:       u.Stats.CoinsWon,
		CoinsLost:      u.Stats.CoinsLost,
		CreatedAt:      u.CreatedAt,
	}
}

// AdminView returns the admin-facing row for this user.
func (u *User) AdminView() AdminUserView {
	return AdminUserView{
		Username:       u.Username,
		Balance:        u.Balance,
		LastLogin:      u.Stats.LastLogin,
		TotalLogins:    u.Stats.TotalLogins,
		TotalTimeSpent: u.Stats.TotalTimeSpent,
		GamesPlayed:    u.Stats.GamesPlayed,
		CoinsWon:       u.Stats.CoinsWon,
		CoinsLost:      u.Stats.CoinsLost,
		CoinsAwarded:   u.Stats.CoinsAwarded,
		CreatedAt:      u.CreatedAt,
	}
}
