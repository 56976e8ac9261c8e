// api/model/user.go
package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Rank string

const (
	RankCommander  Rank = "commander"
	RankLieutenant Rank = "lieutenant"
	RankCaptain    Rank = "captain"
	RankMajor      Rank = "major"
	RankColonel    Rank = "colonel"
)

func (r Rank) Valid() bool {
	switch r {
	case RankCommander, RankLieutenant, RankCaptain, RankMajor, RankColonel:
		return true
	}
	return false
}

// User is an account that can authenticate against the API. Officers,
// commanders and reviewers are all users; the Officer profile row is linked
// one-to-one where it exists.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Password       string    `gorm:"size:255;not null" json:"-"`
	FirstName      string    `gorm:"size:150" json:"first_name"`
	LastName       string    `gorm:"size:150" json:"last_name"`
	Email          string    `gorm:"size:254" json:"email"`
	PhoneNumber    string    `gorm:"size:15" json:"phone_number"`
	Rank           Rank      `gorm:"size:50" json:"rank"`
	MilitaryNumber string    `gorm:"size:15" json:"military_number"`
	NationalID     string    `gorm:"size:15" json:"national_id"`
	IsCommander    bool      `gorm:"default:false" json:"is_commander"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) SetPassword(plain string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
