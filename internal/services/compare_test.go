package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/packdb-backend/internal/apierr"
	"github.com/yungbote/packdb-backend/internal/types"
)

func TestCompare_RejectsWrongPackCount(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "alice")

	for _, count := range []int{0, 1, 4} {
		ids := make([]uuid.UUID, count)
		for i := range ids {
			ids[i] = uuid.New()
		}
		_, err := env.compare.Compare(ctx, ids, user.ID)
		require.Error(t, err)
		apiErr, ok := apierr.AsError(err)
		require.True(t, ok)
		assert.Equal(t, "invalid_argument", apiErr.Code, "count=%d", count)
	}
}

func TestCompare_MissingPackIsNotFound(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "alice")
	pack := env.createPack(t, "VW", "ID.3", 2023, &user.ID)

	_, err := env.compare.Compare(ctx, []uuid.UUID{pack.ID, uuid.New()}, user.ID)
	require.Error(t, err)
	apiErr, ok := apierr.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "not_found", apiErr.Code)
}

func TestCompare_SoftDeletedPackIsNotFound(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "alice")
	a := env.createPack(t, "VW", "ID.3", 2023, &user.ID)
	b := env.createPack(t, "VW", "ID.4", 2024, &user.ID)
	require.NoError(t, env.packRepo.SoftDelete(ctx, nil, b.ID))

	_, err := env.compare.Compare(ctx, []uuid.UUID{a.ID, b.ID}, user.ID)
	require.Error(t, err)
	apiErr, ok := apierr.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "not_found", apiErr.Code)
}

func TestCompare_SideBySideValues(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "alice")
	a := env.createPack(t, "Tesla", "Model Y", 2024, &user.ID)
	b := env.createPack(t, "BYD", "Seal", 2024, &user.ID)
	c := env.createPack(t, "Nio", "ET5", 2024, &user.ID)

	domain := env.createDomain(t, "Cell", 1)
	field := env.createField(t, domain, "cell_capacity_ah", types.DataTypeNumber, nil)

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	env.addValue(t, a, field, user, "161", "press", base)
	winA := env.addValue(t, a, field, user, "163", "teardown", base.Add(time.Minute))
	winB := env.addValue(t, b, field, user, "150", "oem", base.Add(2*time.Minute))
	// Pack c contributes nothing for this field.

	resp, err := env.compare.Compare(ctx, []uuid.UUID{a.ID, b.ID, c.ID}, user.ID)
	require.NoError(t, err)
	require.Len(t, resp.Packs, 3)
	assert.Equal(t, a.ID, resp.Packs[0].ID)
	assert.Equal(t, "alice", resp.Packs[0].CreatedByName)

	require.Len(t, resp.Domains, 1)
	require.Len(t, resp.Domains[0].Fields, 1)
	entry := resp.Domains[0].Fields[0]
	assert.Equal(t, field.ID, entry.FieldID)

	require.NotNil(t, entry.ValuesByPack[a.ID])
	assert.Equal(t, winA.ID, entry.ValuesByPack[a.ID].ID)
	require.NotNil(t, entry.ValuesByPack[b.ID])
	assert.Equal(t, winB.ID, entry.ValuesByPack[b.ID].ID)
	assert.Nil(t, entry.ValuesByPack[c.ID])
}

func TestCompare_UsesCallersPriority(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "alice")
	a := env.createPack(t, "Tesla", "Model Y", 2024, &user.ID)
	b := env.createPack(t, "BYD", "Seal", 2024, &user.ID)

	domain := env.createDomain(t, "Cell", 1)
	field := env.createField(t, domain, "chemistry", types.DataTypeText, nil)

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	env.addValue(t, a, field, user, "NMC811", "teardown", base)
	press := env.addValue(t, a, field, user, "NMC", "press", base.Add(time.Minute))

	env.setPriority(t, user.ID, []string{"press", "teardown", "a2mac1", "oem", "regulatory", "cad", "calculated", "user"})

	resp, err := env.compare.Compare(ctx, []uuid.UUID{a.ID, b.ID}, user.ID)
	require.NoError(t, err)
	entry := resp.Domains[0].Fields[0]
	require.NotNil(t, entry.ValuesByPack[a.ID])
	assert.Equal(t, press.ID, entry.ValuesByPack[a.ID].ID)
}
