package store

import "fmt"

// Key builders for every record family in the store. Repositories own the
// record shapes; the key inventory lives here so prefixes stay consistent
// with the scans that read them.
const (
	UserKeyPrefix     = "user:"
	SessionKeyPrefix  = "session:"
	GameKeyPrefix     = "game:"
	PostKeyPrefix     = "post:"
	CommentKeyPrefix  = "comment:"
	FeedbackKeyPrefix = "feedback:"
	MessageKeyPrefix  = "message:"
)

func UserKey(username string) string {
	return UserKeyPrefix + username
}

func SessionKey(token string) string {
	return SessionKeyPrefix + token
}

func GameKey(id string) string {
	return GameKeyPrefix + id
}

func PostKey(id string) string {
	return PostKeyPrefix + id
}

// CommentKey nests comments under their parent post so the post's comment
// thread is a single prefix scan (and a cascading delete).
func CommentKey(postID, commentID string) string {
	return fmt.Sprintf("%s%s:%s", CommentKeyPrefix, postID, commentID)
}

func CommentPrefix(postID string) string {
	return fmt.Sprintf("%s%s:", CommentKeyPrefix, postID)
}

func FeedbackKey(id string) string {
	return FeedbackKeyPrefix + id
}

// MessageKey nests admin messages under the recipient so a user's inbox is a
// single prefix scan.
func MessageKey(username, id string) string {
	return fmt.Sprintf("%s%s:%s", MessageKeyPrefix, username, id)
}

func MessagePrefix(username string) string {
	return fmt.Sprintf("%s%s:", MessageKeyPrefix, username)
}
