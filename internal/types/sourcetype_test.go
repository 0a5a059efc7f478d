package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSourcePriorityIsACopy(t *testing.T) {
	a := DefaultSourcePriority()
	require.Equal(t, SourceTypes, a)

	a[0] = "tampered"
	assert.Equal(t, "teardown", SourceTypes[0])
	assert.Equal(t, "teardown", DefaultSourcePriority()[0])
}

func TestValidatePriorityOrder(t *testing.T) {
	cases := []struct {
		name  string
		order []string
		ok    bool
	}{
		{"default order", DefaultSourcePriority(), true},
		{"reordered", []string{"user", "press", "calculated", "cad", "regulatory", "oem", "a2mac1", "teardown"}, true},
		{"nil", nil, false},
		{"too short", []string{"teardown"}, false},
		{"too long", append(DefaultSourcePriority(), "teardown"), false},
		{"duplicate", []string{"teardown", "teardown", "oem", "regulatory", "cad", "calculated", "press", "user"}, false},
		{"unknown entry", []string{"teardown", "a2mac1", "oem", "regulatory", "cad", "calculated", "press", "forum"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePriorityOrder(tc.order)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestIsValidSourceType(t *testing.T) {
	for _, st := range SourceTypes {
		assert.True(t, IsValidSourceType(st), st)
	}
	assert.False(t, IsValidSourceType("Teardown"))
	assert.False(t, IsValidSourceType(""))
	assert.False(t, IsValidSourceType("forum"))
}

func TestIsValidDataType(t *testing.T) {
	assert.True(t, IsValidDataType(DataTypeText))
	assert.True(t, IsValidDataType(DataTypeNumber))
	assert.True(t, IsValidDataType(DataTypeSelect))
	assert.False(t, IsValidDataType("json"))
	assert.False(t, IsValidDataType(""))
}
