package comment

import "time"

type Like struct {
	User string `bson:"user" json:"user"`
}

// Reply has the same shape as Comment minus its own replies list.
type Reply struct {
	ID    string    `bson:"_id" json:"id"`
	User  string    `bson:"user" json:"user"`
	Text  string    `bson:"text" json:"text"`
	Date  time.Time `bson:"date" json:"date"`
	Likes []Like    `bson:"likes" json:"likes"`
}

type Comment struct {
	ID      string    `bson:"_id" json:"id"`
	User    string    `bson:"user" json:"user"`
	Text    string    `bson:"text" json:"text"`
	Date    time.Time `bson:"date" json:"date"`
	Likes   []Like    `bson:"likes" json:"likes"`
	Replies []Reply   `bson:"replies" json:"replies"`
}

// Thread is the single comment document per post. Comment and reply ids
// are generated uuids, not store-assigned, so they can be referenced
// before the document is persisted. Comments are most-recent-first;
// replies are oldest-first.
type Thread struct {
	Post     string    `bson:"post" json:"post"`
	Comments []Comment `bson:"comments" json:"comments"`
}

func (t *Thread) find(commentID string) int {
	for i, c := range t.Comments {
		if c.ID == commentID {
			return i
		}
	}
	return -1
}

func (c *Comment) findReply(replyID string) int {
	for i, r := range c.Replies {
		if r.ID == replyID {
			return i
		}
	}
	return -1
}

func likedIndex(likes []Like, userID string) int {
	for i, l := range likes {
		if l.User == userID {
			return i
		}
	}
	return -1
}
