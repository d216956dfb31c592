package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileComplete(t *testing.T) {
	cases := []struct {
		msg  string
		user User
		want bool
	}{
		{"all fields set", User{FirstName: "A", LastName: "B", Role: "C"}, true},
		{"missing role", User{FirstName: "A", LastName: "B"}, false},
		{"whitespace only counts as blank", User{FirstName: "  ", LastName: "B", Role: "C"}, false},
		{"zero value", User{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.msg, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.user.ProfileComplete())
		})
	}
}
