package notification

import "time"

type Kind string

const (
	KindLike    Kind = "like"
	KindComment Kind = "comment"
	KindReply   Kind = "reply"
	KindFollow  Kind = "follow"
	KindBadge   Kind = "badge"
)

// Notification is one feed entry. Which optional fields are set depends
// on the kind; the per-kind constructors below are the only writers, so
// every persisted entry carries exactly the fields its kind requires.
type Notification struct {
	Type      Kind      `bson:"type" json:"type"`
	User      string    `bson:"user,omitempty" json:"user,omitempty"` // actor, empty for badge
	Post      string    `bson:"post,omitempty" json:"post,omitempty"`
	CommentID string    `bson:"commentId,omitempty" json:"commentId,omitempty"`
	Text      string    `bson:"text,omitempty" json:"text,omitempty"`
	Date      time.Time `bson:"date" json:"date"`
}

// Feed is the per-user notification document, newest entry first.
type Feed struct {
	User          string         `bson:"user" json:"user"`
	Notifications []Notification `bson:"notifications" json:"notifications"`
}

// Tuple identifies feed entries by field combination rather than by a
// stored id. Retraction deletes every entry matching the tuple.
type Tuple struct {
	Kind      Kind
	Actor     string
	Post      string
	CommentID string
}

func likeNotification(actor, postID string, at time.Time) Notification {
	return Notification{Type: KindLike, User: actor, Post: postID, Date: at}
}

func commentNotification(actor, postID, commentID, text string, at time.Time) Notification {
	return Notification{Type: KindComment, User: actor, Post: postID, CommentID: commentID, Text: text, Date: at}
}

func replyNotification(actor, postID, replyID, text string, at time.Time) Notification {
	return Notification{Type: KindReply, User: actor, Post: postID, CommentID: replyID, Text: text, Date: at}
}

func followNotification(actor string, at time.Time) Notification {
	return Notification{Type: KindFollow, User: actor, Date: at}
}

func badgeNotification(text string, at time.Time) Notification {
	return Notification{Type: KindBadge, Text: text, Date: at}
}
