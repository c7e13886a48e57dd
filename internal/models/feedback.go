package models

import "time"

// Feedback statuses. "replied" is sticky: once an admin has replied the
// record is shown as replied even after later reads.
const (
	FeedbackStatusUnread  = "unread"
	FeedbackStatusRead    = "read"
	FeedbackStatusReplied = "replied"
)

// FeedbackReply is a single admin-authored reply on a feedback thread.
type FeedbackReply struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Feedback is a user-submitted feedback thread with ordered admin replies.
type Feedback struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	Subject   string          `json:"subject"`
	Message   string          `json:"message"`
	Status    string          `json:"status"`
	Replies   []FeedbackReply `json:"replies"`
	CreatedAt time.Time       `json:"createdAt"`
}
