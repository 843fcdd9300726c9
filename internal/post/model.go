package post

import "time"

// Like and Save carry only the acting user; both lists hold at most one
// entry per user id.
type Like struct {
	User string `bson:"user" json:"user"`
}

type Save struct {
	User string `bson:"user" json:"user"`
}

type Post struct {
	ID          string    `bson:"_id" json:"id"`
	User        string    `bson:"user" json:"user"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Images      []string  `bson:"images" json:"images"`
	LiveDemo    string    `bson:"liveDemo,omitempty" json:"liveDemo,omitempty"`
	SourceCode  string    `bson:"sourceCode,omitempty" json:"sourceCode,omitempty"`
	TechStack   []string  `bson:"techStack,omitempty" json:"techStack,omitempty"`
	Likes       []Like    `bson:"likes" json:"likes"` // most-recent-first
	Saves       []Save    `bson:"saves" json:"saves"`
	Views       int64     `bson:"views" json:"views"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

func (p *Post) likedBy(userID string) int {
	for i, l := range p.Likes {
		if l.User == userID {
			return i
		}
	}
	return -1
}

func (p *Post) savedBy(userID string) int {
	for i, s := range p.Saves {
		if s.User == userID {
			return i
		}
	}
	return -1
}
