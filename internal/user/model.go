package user

import "time"

const RoleRoot = "root"

type User struct {
	ID                 string    `bson:"_id" json:"id"`
	Name               string    `bson:"name" json:"name"`
	Username           string    `bson:"username" json:"username"` // unique, lowercase
	Email              string    `bson:"email" json:"email"`       // unique, lowercase
	Password           string    `bson:"password" json:"-"`
	Role               string    `bson:"role,omitempty" json:"role,omitempty"`
	ProfilePicURL      string    `bson:"profilePicUrl,omitempty" json:"profilePicUrl,omitempty"`
	IsVerified         bool      `bson:"isVerified" json:"isVerified"`
	VerificationToken  string    `bson:"verificationToken,omitempty" json:"-"`
	UnreadNotification bool      `bson:"unreadNotification" json:"unreadNotification"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
}
