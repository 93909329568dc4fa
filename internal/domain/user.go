package domain

import "time"

type User struct {
	ID         int64  `json:"id" gorm:"primaryKey"`
	Username   string `json:"username" gorm:"size:255;uniqueIndex;not null"`
	Firstname  string `json:"firstname" gorm:"size:255"`
	Middlename string `json:"middlename" gorm:"size:255"`
	Lastname   string `json:"lastname" gorm:"size:255"`
	Birthdate  string `json:"birthdate" gorm:"size:255"`
	Email      string `json:"email" gorm:"size:255;uniqueIndex"`
	// Password holds the salted digest, never the plaintext. The listing
	// endpoint returns it as stored (internal endpoint, known gap).
	Password string `json:"password" gorm:"size:255;not null"`
}

type Session struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	IP        string    `json:"ip" gorm:"size:255"`
	// At most one active session per user; the unique index is what makes
	// concurrent double-login fail one side instead of inserting twice.
	UserID int64  `json:"user_id" gorm:"uniqueIndex;not null"`
	Token  string `json:"token" gorm:"size:255;uniqueIndex;not null"`
}

// OnlineSession is the /onlineusers read model: a session joined with the
// owning user's name.
type OnlineSession struct {
	Session
	Username string `json:"username"`
}
