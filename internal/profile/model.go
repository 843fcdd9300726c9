package profile

type Social struct {
	Github    string `bson:"github,omitempty" json:"github,omitempty"`
	Website   string `bson:"website,omitempty" json:"website,omitempty"`
	Linkedin  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	Youtube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
}

type Profile struct {
	User      string   `bson:"user" json:"user"`
	Bio       string   `bson:"bio" json:"bio"`
	TechStack []string `bson:"techStack" json:"techStack"`
	Social    Social   `bson:"social" json:"social"`
	Badges    []string `bson:"badges" json:"badges"`
}
