package models

import "time"

// Vote directions accepted by the board.
const (
	VoteUp   = "up"
	VoteDown = "down"
)

// Vote records a single user's active vote on a post or comment. Each
// (voter, record) pair has at most one entry.
type Vote struct {
	Username  string `json:"username"`
	Direction string `json:"direction"`
}

// Post is a banter board entry.
type Post struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Votes     int       `json:"votes"`
	Voters    []Vote    `json:"voters"`
	CreatedAt time.Time `json:"createdAt"`
}

// Comment is a reply on a post, keyed by (postId, id).
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Votes     int       `json:"votes"`
	Voters    []Vote    `json:"voters"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsValidVoteDirection reports whether d is "up" or "down".
func IsValidVoteDirection(d string) bool {
	return d == VoteUp || d == VoteDown
}

// ApplyVote mutates a vote tally in place per the toggle rule: a fresh vote
// applies ±1 and records the voter; repeating the same direction removes the
// entry and reverses the delta; the opposite direction is a ±2 swing that
// updates the stored direction. Returns the new tally and voter set.
func ApplyVote(votes int, voters []Vote, username, direction string) (int, []Vote) {
	for i, v := range voters {
		if v.Username != username {
			continue
		}
		if v.Direction == direction {
			if direction == VoteUp {
				votes--
			} else {
				votes++
			}
			return votes, append(voters[:i], voters[i+1:]...)
		}
		if direction == VoteUp {
			votes += 2
		} else {
			votes -= 2
		}
		voters[i].Direction = direction
		return votes, voters
	}

	if direction == VoteUp {
		votes++
	} else {
		votes--
	}
	return votes, append(voters, Vote{Username: username, Direction: direction})
}
