package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/casegen/casegen/server/conf"
	"github.com/casegen/casegen/server/modules/unique"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type UserSession struct {
	ID          uint `gorm:"primary_key"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	User        User
	UserID      uint   `gorm:"not null;index"`
	TokenDigest string `gorm:"not null"`
}

var ErrLogin = errors.New("incorrect email or password")

// NewSession returns a new UserSession and its token when email and password match.
func NewSession(email, password string) (*UserSession, string, error) {
	user := FindUserByEmail(email)
	if user == nil || !user.IsCorrectPassword(password) {
		return nil, "", ErrLogin
	}

	return NewSessionForUser(user)
}

// NewSessionForUser replaces any session the user already has.
func NewSessionForUser(user *User) (*UserSession, string, error) {
	secret := []byte(unique.GenerateRandomBase64String(24))
	digest, err := bcrypt.GenerateFromPassword(secret, bcrypt.MinCost)
	if err != nil {
		return nil, "", errors.WithStack(err)
	}

	db.Where("user_id = ?", user.ID).Delete(UserSession{})
	session := &UserSession{
		UserID:      user.ID,
		TokenDigest: string(digest),
	}
	if err := db.Create(session).Error; err != nil {
		return nil, "", errors.WithStack(err)
	}
	session.User = *user

	token := strconv.Itoa(int(session.ID)) + "_" + string(secret)

	return session, token, nil
}

// CheckLogin returns the session for token, or nil if it is unknown, expired or forged.
func CheckLogin(token string) *UserSession {
	tokens := strings.SplitN(token, "_", 2)
	if len(tokens) != 2 {
		return nil
	}
	id, err := strconv.Atoi(tokens[0])
	if err != nil || id <= 0 {
		return nil
	}
	session := GetSession(uint(id))
	if session == nil {
		return nil
	}
	if sessionLifetime() < time.Since(session.CreatedAt) {
		return nil
	}

	err = bcrypt.CompareHashAndPassword([]byte(session.TokenDigest), []byte(tokens[1]))
	if err != nil {
		return nil
	}

	session.FetchUser()
	return session
}

func GetSession(id uint) *UserSession {
	s := &UserSession{}
	nf := db.Where("id = ?", id).First(s).RecordNotFound()
	if nf {
		return nil
	}
	return s
}

func (s *UserSession) Delete() {
	db.Delete(UserSession{}, "id = ?", s.ID)
	s.TokenDigest = unique.GenerateRandomBase64String(16)
}

func (s *UserSession) FetchUser() {
	db.Where("id = ?", s.UserID).First(&s.User)
}

func sessionLifetime() time.Duration {
	l := conf.GetConfig().Session.Lifetime.Duration
	if l <= 0 {
		return 24 * time.Hour
	}
	return l
}
