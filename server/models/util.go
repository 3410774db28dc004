package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"

	"github.com/casegen/casegen/server/conf"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

func GetBcryptCost() int {
	c := conf.GetConfig().Session.BcryptCost
	if c < bcrypt.MinCost || bcrypt.MaxCost < c {
		return bcrypt.DefaultCost
	}
	return c
}

// StringList is stored as a JSON array in a text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.Errorf("cannot scan %T into StringList", src)
	}

	if len(b) == 0 {
		*l = StringList{}
		return nil
	}
	res := make([]string, 0)
	if err := json.Unmarshal(b, &res); err != nil {
		return errors.WithStack(err)
	}
	*l = res
	return nil
}

func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}

// NullableID tells an absent JSON field from an explicit null.
// Set is true when the field was present; ID is nil for null.
type NullableID struct {
	Set bool
	ID  *uint
}

func SetID(id uint) NullableID {
	return NullableID{Set: true, ID: &id}
}

func (n *NullableID) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.ID = nil
		return nil
	}

	var id uint
	if err := json.Unmarshal(data, &id); err != nil {
		return errors.WithStack(err)
	}
	n.ID = &id
	return nil
}
