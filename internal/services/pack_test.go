package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/packdb-backend/internal/apierr"
	"github.com/yungbote/packdb-backend/internal/repos"
)

func TestPackCreate_NaturalKeyConflict(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "alice")

	input := CreatePackInput{OEM: "VW", Model: "ID.4", Variant: "Pro", Year: 2024, Market: "EU"}
	created, err := env.packs.Create(ctx, user.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "alice", created.CreatedByName)
	assert.True(t, created.IsActive)

	_, err = env.packs.Create(ctx, user.ID, input)
	require.Error(t, err)
	apiErr, ok := apierr.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "conflict", apiErr.Code)

	// A different variant of the same car is a distinct pack.
	input.Variant = "GTX"
	_, err = env.packs.Create(ctx, user.ID, input)
	require.NoError(t, err)
}

func TestPackCreate_RequiredFields(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "alice")

	_, err := env.packs.Create(ctx, user.ID, CreatePackInput{OEM: "VW", Model: "ID.4"})
	require.Error(t, err)
	apiErr, ok := apierr.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "invalid_argument", apiErr.Code)
}

func TestPackList_FiltersAndPagination(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "alice")

	for _, spec := range []struct {
		oem, model string
		year       int
	}{
		{"VW", "ID.3", 2023},
		{"VW", "ID.4", 2024},
		{"Tesla", "Model 3", 2024},
		{"Tesla", "Model Y", 2024},
		{"BYD", "Seal", 2024},
	} {
		_, err := env.packs.Create(ctx, user.ID, CreatePackInput{OEM: spec.oem, Model: spec.model, Year: spec.year})
		require.NoError(t, err)
	}

	resp, err := env.packs.List(ctx, repos.PackListFilter{OEM: "Tesla"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.Total)
	assert.Len(t, resp.Items, 2)

	resp, err = env.packs.List(ctx, repos.PackListFilter{Search: "id."})
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.Total)

	resp, err = env.packs.List(ctx, repos.PackListFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, resp.Total)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, 2, resp.Page)

	// Out-of-range paging inputs are clamped, not rejected.
	resp, err = env.packs.List(ctx, repos.PackListFilter{Page: -3, PageSize: 1000})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 100, resp.PageSize)
}

func TestPackList_OmitsSoftDeleted(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "alice")

	kept, err := env.packs.Create(ctx, user.ID, CreatePackInput{OEM: "VW", Model: "ID.3", Year: 2023})
	require.NoError(t, err)
	dropped, err := env.packs.Create(ctx, user.ID, CreatePackInput{OEM: "VW", Model: "ID.4", Year: 2024})
	require.NoError(t, err)

	require.NoError(t, env.packs.SoftDelete(ctx, dropped.ID))

	resp, err := env.packs.List(ctx, repos.PackListFilter{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, kept.ID, resp.Items[0].ID)

	_, err = env.packs.GetDetail(ctx, dropped.ID, user.ID)
	require.Error(t, err)
	apiErr, ok := apierr.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "not_found", apiErr.Code)
}

func TestPackGetDetail_IncludesResolution(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "alice")

	created, err := env.packs.Create(ctx, user.ID, CreatePackInput{OEM: "VW", Model: "ID.4", Year: 2024})
	require.NoError(t, err)
	domain := env.createDomain(t, "Cell", 1)
	env.createField(t, domain, "chemistry", "text", nil)

	detail, err := env.packs.GetDetail(ctx, created.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, detail.ID)
	require.Len(t, detail.Domains, 1)
	assert.Equal(t, domain.ID, detail.Domains[0].DomainID)
}

func TestPackUpdate_PatchesOnlyGivenFields(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "alice")

	created, err := env.packs.Create(ctx, user.ID, CreatePackInput{OEM: "VW", Model: "ID.4", Year: 2024, Market: "EU"})
	require.NoError(t, err)

	market := "US"
	updated, err := env.packs.Update(ctx, created.ID, UpdatePackInput{Market: &market})
	require.NoError(t, err)
	assert.Equal(t, "US", updated.Market)
	assert.Equal(t, "VW", updated.OEM)
	assert.Equal(t, 2024, updated.Year)

	_, err = env.packs.Update(ctx, uuid.New(), UpdatePackInput{Market: &market})
	require.Error(t, err)
	apiErr, ok := apierr.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "not_found", apiErr.Code)
}
