package models

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID             uint      `gorm:"primary_key" json:"id"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	FirstName      string    `gorm:"not null" json:"firstName"`
	LastName       string    `gorm:"not null" json:"lastName"`
	Email          string    `gorm:"not null;unique_index" json:"email"`
	Role           string    `gorm:"not null" json:"role"`
	PasswordDigest string    `gorm:"not null" json:"-"`
}

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

var ErrEmailAlreadyExists = errors.New("email already exists")

func NewUser(firstName, lastName, email, password string) (*User, error) {
	email = normalizeEmail(email)
	if FindUserByEmail(email) != nil {
		return nil, ErrEmailAlreadyExists
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), GetBcryptCost())
	if err != nil {
		return nil, errors.WithStack(err)
	}

	user := &User{
		FirstName:      strings.TrimSpace(firstName),
		LastName:       strings.TrimSpace(lastName),
		Email:          email,
		Role:           RoleMember,
		PasswordDigest: string(digest),
	}
	if err := db.Create(user).Error; err != nil {
		return nil, errors.WithStack(err)
	}
	return user, nil
}

func GetUser(id uint) *User {
	u := &User{}
	nf := db.Where("id = ?", id).First(u).RecordNotFound()
	if nf {
		return nil
	}
	return u
}

func FindUserByEmail(email string) *User {
	u := &User{}
	nf := db.Where("email = ?", normalizeEmail(email)).First(u).RecordNotFound()
	if nf {
		return nil
	}
	return u
}

func getUsers(ids []uint) map[uint]User {
	res := make(map[uint]User, len(ids))
	if len(ids) == 0 {
		return res
	}

	users := make([]User, 0, len(ids))
	db.Where("id IN (?)", ids).Find(&users)
	for _, u := range users {
		res[u.ID] = u
	}
	return res
}

func (u *User) IsCorrectPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordDigest), []byte(password))
	return err == nil
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) UpdateProfile(firstName, lastName string) error {
	u.FirstName = strings.TrimSpace(firstName)
	u.LastName = strings.TrimSpace(lastName)
	err := db.Model(User{}).Where("id = ?", u.ID).Updates(map[string]interface{}{
		"first_name": u.FirstName,
		"last_name":  u.LastName,
	}).Error
	return errors.WithStack(err)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
