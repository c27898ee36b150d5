package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasAnyDepartment(t *testing.T) {
	u := &User{Departments: []string{"水电", "暖通"}}

	assert.True(t, u.HasAnyDepartment([]string{"暖通"}))
	assert.True(t, u.HasAnyDepartment([]string{"木工", "水电"}))
	assert.False(t, u.HasAnyDepartment([]string{"保洁"}))
	assert.False(t, u.HasAnyDepartment(nil))

	empty := &User{}
	assert.False(t, empty.HasAnyDepartment([]string{"水电"}))
}
