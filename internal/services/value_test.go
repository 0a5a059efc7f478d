package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/packdb-backend/internal/apierr"
	"github.com/yungbote/packdb-backend/internal/types"
)

func TestValueCreate_Validation(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "alice")
	pack := env.createPack(t, "VW", "ID.4", 2024, &user.ID)
	domain := env.createDomain(t, "Cell", 1)
	field := env.createField(t, domain, "chemistry", types.DataTypeText, nil)

	cases := []struct {
		name   string
		input  CreateValueInput
		code   string
		status int
	}{
		{
			name:   "empty value text",
			input:  CreateValueInput{FieldID: field.ID, ValueText: "  ", SourceType: "oem", SourceDetail: "spec sheet"},
			code:   "invalid_argument",
			status: http.StatusBadRequest,
		},
		{
			name:   "missing source detail",
			input:  CreateValueInput{FieldID: field.ID, ValueText: "NMC", SourceType: "oem"},
			code:   "invalid_argument",
			status: http.StatusBadRequest,
		},
		{
			name:   "bad source type",
			input:  CreateValueInput{FieldID: field.ID, ValueText: "NMC", SourceType: "blog", SourceDetail: "somewhere"},
			code:   "invalid_argument",
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "unknown field",
			input:  CreateValueInput{FieldID: uuid.New(), ValueText: "NMC", SourceType: "oem", SourceDetail: "spec sheet"},
			code:   "not_found",
			status: http.StatusNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.values.Create(ctx, pack.ID, user.ID, tc.input)
			require.Error(t, err)
			apiErr, ok := apierr.AsError(err)
			require.True(t, ok)
			assert.Equal(t, tc.code, apiErr.Code)
			assert.Equal(t, tc.status, apiErr.Status)
		})
	}

	_, err := env.values.Create(ctx, uuid.New(), user.ID, CreateValueInput{
		FieldID: field.ID, ValueText: "NMC", SourceType: "oem", SourceDetail: "spec sheet",
	})
	require.Error(t, err)
	apiErr, ok := apierr.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "not_found", apiErr.Code)
}

func TestValueCreate_SelectOptionEnforced(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "alice")
	pack := env.createPack(t, "VW", "ID.4", 2024, &user.ID)
	domain := env.createDomain(t, "Cell", 1)
	field := env.createField(t, domain, "cell_format", types.DataTypeSelect, []string{"Prismatic", "Pouch"})

	_, err := env.values.Create(ctx, pack.ID, user.ID, CreateValueInput{
		FieldID: field.ID, ValueText: "Cylindrical", SourceType: "teardown", SourceDetail: "teardown report",
	})
	require.Error(t, err)
	apiErr, ok := apierr.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "unprocessable_value", apiErr.Code)
	assert.Equal(t, 422, apiErr.Status)

	created, err := env.values.Create(ctx, pack.ID, user.ID, CreateValueInput{
		FieldID: field.ID, ValueText: "Pouch", SourceType: "teardown", SourceDetail: "teardown report",
	})
	require.NoError(t, err)
	assert.Equal(t, "Pouch", created.ValueText)
}

func TestValueCreate_NumericParsingIsTolerant(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "alice")
	pack := env.createPack(t, "VW", "ID.4", 2024, &user.ID)
	domain := env.createDomain(t, "Cell", 1)
	field := env.createField(t, domain, "cell_capacity_ah", types.DataTypeNumber, nil)

	clean, err := env.values.Create(ctx, pack.ID, user.ID, CreateValueInput{
		FieldID: field.ID, ValueText: " 118.5 ", SourceType: "oem", SourceDetail: "spec sheet",
	})
	require.NoError(t, err)
	require.NotNil(t, clean.ValueNumeric)
	assert.InDelta(t, 118.5, *clean.ValueNumeric, 0.0001)

	// Annotated numbers keep their text but get no numeric shadow.
	annotated, err := env.values.Create(ctx, pack.ID, user.ID, CreateValueInput{
		FieldID: field.ID, ValueText: "≈120 (est.)", SourceType: "press", SourceDetail: "article",
	})
	require.NoError(t, err)
	assert.Equal(t, "≈120 (est.)", annotated.ValueText)
	assert.Nil(t, annotated.ValueNumeric)
}

func TestValueUpdate_ReparsesNumeric(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "alice")
	pack := env.createPack(t, "VW", "ID.4", 2024, &user.ID)
	domain := env.createDomain(t, "Cell", 1)
	field := env.createField(t, domain, "cell_capacity_ah", types.DataTypeNumber, nil)

	created, err := env.values.Create(ctx, pack.ID, user.ID, CreateValueInput{
		FieldID: field.ID, ValueText: "118.5", SourceType: "oem", SourceDetail: "spec sheet",
	})
	require.NoError(t, err)

	text := "tbd"
	updated, err := env.values.Update(ctx, created.ID, UpdateValueInput{ValueText: &text})
	require.NoError(t, err)
	assert.Nil(t, updated.ValueNumeric)

	text = "121"
	updated, err = env.values.Update(ctx, created.ID, UpdateValueInput{ValueText: &text})
	require.NoError(t, err)
	require.NotNil(t, updated.ValueNumeric)
	assert.InDelta(t, 121, *updated.ValueNumeric, 0.0001)
}

func TestValueUpdate_SelectStillEnforced(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "alice")
	pack := env.createPack(t, "VW", "ID.4", 2024, &user.ID)
	domain := env.createDomain(t, "Housing", 1)
	field := env.createField(t, domain, "structural_role", types.DataTypeSelect, []string{"Cell-to-Pack", "Cell-to-Body"})

	created, err := env.values.Create(ctx, pack.ID, user.ID, CreateValueInput{
		FieldID: field.ID, ValueText: "Cell-to-Pack", SourceType: "oem", SourceDetail: "press kit",
	})
	require.NoError(t, err)

	bad := "Skateboard"
	_, err = env.values.Update(ctx, created.ID, UpdateValueInput{ValueText: &bad})
	require.Error(t, err)
	apiErr, ok := apierr.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "unprocessable_value", apiErr.Code)
}

func TestValueSoftDelete(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "alice")
	pack := env.createPack(t, "VW", "ID.4", 2024, &user.ID)
	domain := env.createDomain(t, "Cell", 1)
	field := env.createField(t, domain, "chemistry", types.DataTypeText, nil)

	created, err := env.values.Create(ctx, pack.ID, user.ID, CreateValueInput{
		FieldID: field.ID, ValueText: "NMC", SourceType: "oem", SourceDetail: "spec sheet",
	})
	require.NoError(t, err)

	require.NoError(t, env.values.SoftDelete(ctx, created.ID))

	// Deleting twice is a 404: the row is hidden, not gone.
	err = env.values.SoftDelete(ctx, created.ID)
	require.Error(t, err)
	apiErr, ok := apierr.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "not_found", apiErr.Code)

	var raw types.FieldValue
	require.NoError(t, env.db.Where("id = ?", created.ID).First(&raw).Error)
	assert.False(t, raw.IsActive)
}

func TestValueResolveForPack_FieldNarrowsToDomain(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "alice")
	pack := env.createPack(t, "Kia", "EV9", 2024, &user.ID)
	cell := env.createDomain(t, "Cell", 1)
	housing := env.createDomain(t, "Housing", 2)
	cellField := env.createField(t, cell, "chemistry", types.DataTypeText, nil)
	env.createField(t, housing, "pack_weight_kg", types.DataTypeNumber, nil)

	resolved, err := env.values.ResolveForPack(ctx, pack.ID, user.ID, &cellField.ID)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, cell.ID, resolved[0].DomainID)

	_, err = env.values.ResolveForPack(ctx, uuid.New(), user.ID, nil)
	require.Error(t, err)
	apiErr, ok := apierr.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "not_found", apiErr.Code)
}
