package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/packdb-backend/internal/logger"
	"github.com/yungbote/packdb-backend/internal/repos"
	"github.com/yungbote/packdb-backend/internal/types"
)

type testEnv struct {
	db *gorm.DB

	userRepo     repos.UserRepo
	tokenRepo    repos.UserTokenRepo
	packRepo     repos.PackRepo
	domainRepo   repos.DomainRepo
	fieldRepo    repos.FieldRepo
	valueRepo    repos.FieldValueRepo
	commentRepo  repos.CommentRepo
	priorityRepo repos.SourcePriorityRepo

	priorities SourcePriorityService
	resolver   ResolverService
	packs      PackService
	domains    DomainService
	values     ValueService
	comments   CommentService
	compare    CompareService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.SourcePriority{},
		&types.Pack{},
		&types.Domain{},
		&types.Field{},
		&types.FieldValue{},
		&types.Comment{},
	)
	require.NoError(t, err)

	log := &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}

	env := &testEnv{
		db:           db,
		userRepo:     repos.NewUserRepo(db, log),
		tokenRepo:    repos.NewUserTokenRepo(db, log),
		packRepo:     repos.NewPackRepo(db, log),
		domainRepo:   repos.NewDomainRepo(db, log),
		fieldRepo:    repos.NewFieldRepo(db, log),
		valueRepo:    repos.NewFieldValueRepo(db, log),
		commentRepo:  repos.NewCommentRepo(db, log),
		priorityRepo: repos.NewSourcePriorityRepo(db, log),
	}
	env.priorities = NewSourcePriorityService(db, log, env.priorityRepo)
	env.resolver = NewResolverService(db, log, env.domainRepo, env.fieldRepo, env.valueRepo, env.commentRepo, env.userRepo, env.priorities)
	env.packs = NewPackService(db, log, env.packRepo, env.userRepo, env.resolver)
	env.domains = NewDomainService(db, log, env.domainRepo, env.fieldRepo)
	env.values = NewValueService(db, log, env.packRepo, env.fieldRepo, env.valueRepo, env.userRepo, env.commentRepo, env.resolver)
	env.comments = NewCommentService(db, log, env.valueRepo, env.commentRepo, env.userRepo)
	env.compare = NewCompareService(log, env.packRepo, env.userRepo, env.resolver)
	return env
}

func (env *testEnv) createUser(t *testing.T, displayName string) *types.User {
	t.Helper()
	user := &types.User{
		ID:          uuid.New(),
		Email:       displayName + "@example.com",
		Password:    "hashed",
		DisplayName: displayName,
		Role:        "member",
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env *testEnv) createPack(t *testing.T, oem, model string, year int, createdBy *uuid.UUID) *types.Pack {
	t.Helper()
	pack := &types.Pack{
		ID:        uuid.New(),
		OEM:       oem,
		Model:     model,
		Year:      year,
		IsActive:  true,
		CreatedBy: createdBy,
	}
	require.NoError(t, env.db.Create(pack).Error)
	return pack
}

func (env *testEnv) createDomain(t *testing.T, name string, sortOrder int) *types.Domain {
	t.Helper()
	domain := &types.Domain{
		ID:        uuid.New(),
		Name:      name,
		SortOrder: sortOrder,
		IsDefault: true,
	}
	require.NoError(t, env.db.Create(domain).Error)
	return domain
}

func (env *testEnv) createField(t *testing.T, domain *types.Domain, name, dataType string, options []string) *types.Field {
	t.Helper()
	field := &types.Field{
		ID:          uuid.New(),
		DomainID:    domain.ID,
		Name:        name,
		DisplayName: name,
		DataType:    dataType,
		IsActive:    true,
	}
	if len(options) > 0 {
		raw, err := json.Marshal(options)
		require.NoError(t, err)
		field.SelectOptions = datatypes.JSON(raw)
	}
	require.NoError(t, env.db.Create(field).Error)
	return field
}

// addValue inserts a value row directly, with an explicit created_at so
// retrieval-order assertions are deterministic.
func (env *testEnv) addValue(t *testing.T, pack *types.Pack, field *types.Field, user *types.User, text, sourceType string, createdAt time.Time) *types.FieldValue {
	t.Helper()
	value := &types.FieldValue{
		ID:            uuid.New(),
		PackID:        pack.ID,
		FieldID:       field.ID,
		ValueText:     text,
		SourceType:    sourceType,
		SourceDetail:  sourceType + " source",
		ContributedBy: user.ID,
		IsActive:      true,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
	require.NoError(t, env.db.Create(value).Error)
	return value
}

func (env *testEnv) setPriority(t *testing.T, userID uuid.UUID, order []string) {
	t.Helper()
	encoded, err := json.Marshal(order)
	require.NoError(t, err)
	require.NoError(t, env.priorityRepo.Upsert(context.Background(), nil, &types.SourcePriority{
		UserID:        userID,
		PriorityOrder: datatypes.JSON(encoded),
	}))
}

// findField digs a resolved field out of a resolution result.
func findField(t *testing.T, resolved []types.DomainResolvedFields, fieldID uuid.UUID) *types.ResolvedField {
	t.Helper()
	for i := range resolved {
		for j := range resolved[i].Fields {
			if resolved[i].Fields[j].FieldID == fieldID {
				return &resolved[i].Fields[j]
			}
		}
	}
	t.Fatalf("field %s not present in resolution", fieldID)
	return nil
}
