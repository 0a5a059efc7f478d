package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/packdb-backend/internal/apierr"
	"github.com/yungbote/packdb-backend/internal/types"
)

func TestSourcePriority_DefaultWhenUnset(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "alice")

	resp, err := env.priorities.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultSourcePriority(), resp.PriorityOrder)
}

func TestSourcePriority_UpdateRoundtrip(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "alice")

	custom := []string{"oem", "teardown", "a2mac1", "regulatory", "cad", "calculated", "press", "user"}
	updated, err := env.priorities.Update(ctx, user.ID, custom)
	require.NoError(t, err)
	assert.Equal(t, custom, updated.PriorityOrder)

	got, err := env.priorities.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, custom, got.PriorityOrder)

	// A second update replaces, not duplicates, the stored row.
	again := []string{"user", "press", "calculated", "cad", "regulatory", "oem", "a2mac1", "teardown"}
	_, err = env.priorities.Update(ctx, user.ID, again)
	require.NoError(t, err)

	var count int64
	require.NoError(t, env.db.Model(&types.SourcePriority{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	got, err = env.priorities.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, again, got.PriorityOrder)
}

func TestSourcePriority_RejectsNonPermutations(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "alice")

	cases := map[string][]string{
		"too short": {"teardown", "a2mac1", "oem", "regulatory", "cad", "calculated", "press"},
		"duplicate": {"teardown", "teardown", "oem", "regulatory", "cad", "calculated", "press", "user"},
		"unknown":   {"teardown", "a2mac1", "oem", "regulatory", "cad", "calculated", "press", "wikipedia"},
		"empty":     {},
	}
	for name, order := range cases {
		_, err := env.priorities.Update(ctx, user.ID, order)
		require.Error(t, err, name)
		apiErr, ok := apierr.AsError(err)
		require.True(t, ok, name)
		assert.Equal(t, "invalid_argument", apiErr.Code, name)
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status, name)
	}

	// Nothing was stored by the rejected writes.
	var count int64
	require.NoError(t, env.db.Model(&types.SourcePriority{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestSourcePriority_SeedDefault(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "alice")

	require.NoError(t, env.priorities.SeedDefault(ctx, nil, user.ID))

	order, err := env.priorities.EffectivePriority(ctx, nil, user.ID)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultSourcePriority(), order)

	var count int64
	require.NoError(t, env.db.Model(&types.SourcePriority{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
