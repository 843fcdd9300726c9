package follow

// Entry references one user in a followers or following list.
type Entry struct {
	User string `bson:"user" json:"user"`
}

// Graph is the per-user social-graph document. The bidirectional
// invariant (u in A.Following iff A in u.Followers) is maintained by
// paired mutations in the service, not by the store.
type Graph struct {
	User      string  `bson:"user" json:"user"`
	Followers []Entry `bson:"followers" json:"followers"`
	Following []Entry `bson:"following" json:"following"`
}

func indexOf(entries []Entry, userID string) int {
	for i, e := range entries {
		if e.User == userID {
			return i
		}
	}
	return -1
}
