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

func TestCommentCreateAndList(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	pack := env.createPack(t, "VW", "ID.4", 2024, &alice.ID)
	domain := env.createDomain(t, "Cell", 1)
	field := env.createField(t, domain, "chemistry", types.DataTypeText, nil)
	value := env.addValue(t, pack, field, alice, "NMC", "oem", time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC))

	first, err := env.comments.Create(ctx, value.ID, bob.ID, "source link?")
	require.NoError(t, err)
	assert.Equal(t, "bob", first.AuthorName)

	_, err = env.comments.Create(ctx, value.ID, alice.ID, "added to source_detail")
	require.NoError(t, err)

	comments, err := env.comments.ListForValue(ctx, value.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, first.ID, comments[0].ID)
	assert.Equal(t, "bob", comments[0].AuthorName)
	assert.Equal(t, "alice", comments[1].AuthorName)
}

func TestCommentCreate_Validation(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	alice := env.createUser(t, "alice")
	pack := env.createPack(t, "VW", "ID.4", 2024, &alice.ID)
	domain := env.createDomain(t, "Cell", 1)
	field := env.createField(t, domain, "chemistry", types.DataTypeText, nil)
	value := env.addValue(t, pack, field, alice, "NMC", "oem", time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC))

	_, err := env.comments.Create(ctx, value.ID, alice.ID, "   ")
	require.Error(t, err)
	apiErr, ok := apierr.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "invalid_argument", apiErr.Code)

	_, err = env.comments.Create(ctx, uuid.New(), alice.ID, "hello")
	require.Error(t, err)
	apiErr, ok = apierr.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "not_found", apiErr.Code)

	// Comments on a soft-deleted value are rejected the same way.
	require.NoError(t, env.valueRepo.SoftDelete(ctx, nil, value.ID))
	_, err = env.comments.Create(ctx, value.ID, alice.ID, "too late")
	require.Error(t, err)
	apiErr, ok = apierr.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "not_found", apiErr.Code)
}
