package models

import (
	"testing"

	"github.com/casegen/casegen/server/conf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGetBcryptCost(t *testing.T) {
	c := GetBcryptCost()
	if c < bcrypt.MinCost || bcrypt.MaxCost < c {
		t.Errorf("cost is out of range: %v", c)
	}

	orig := conf.GetConfig()
	defer conf.SetConfig(orig)

	cfg := *orig
	cfg.Session.BcryptCost = 100
	conf.SetConfig(&cfg)
	assert.Equal(t, bcrypt.DefaultCost, GetBcryptCost())
}

func TestStringList(t *testing.T) {
	v, err := StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = StringList{"a", `b"c`}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["a","b\"c"]`, v)

	var l StringList
	require.NoError(t, l.Scan([]byte(`["x","y"]`)))
	assert.Equal(t, StringList{"x", "y"}, l)
	assert.True(t, l.Contains("y"))
	assert.False(t, l.Contains("z"))

	require.NoError(t, l.Scan(nil))
	assert.Equal(t, StringList{}, l)

	require.NoError(t, l.Scan(""))
	assert.Equal(t, StringList{}, l)

	assert.Error(t, l.Scan(42))
	assert.Error(t, l.Scan("{"))
}
