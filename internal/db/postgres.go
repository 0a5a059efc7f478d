package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yungbote/packdb-backend/internal/logger"
	"github.com/yungbote/packdb-backend/internal/types"
	"github.com/yungbote/packdb-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	log.Info("Loading environment variables...")
	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "packdb", log)
	log.Debug("Environment variables loaded")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	log.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		log.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
	}
	log.Info("uuid-ossp extension enabled")

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.SourcePriority{},
		&types.Pack{},
		&types.Domain{},
		&types.Field{},
		&types.FieldValue{},
		&types.Comment{},
		&types.Attachment{},
		&types.Component{},
		&types.PackComponent{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}
	s.log.Info("Configuring foreign key relationships for postgres tables...")
	constraints := []struct {
		name string
		stmt string
	}{
		{
			name: "fk_user_token_user_id",
			stmt: `ALTER TABLE "user_token"
				ADD CONSTRAINT "fk_user_token_user_id"
				FOREIGN KEY ("user_id") REFERENCES "user"("id")
				ON DELETE CASCADE`,
		},
		{
			name: "fk_source_priority_user_id",
			stmt: `ALTER TABLE "source_priority"
				ADD CONSTRAINT "fk_source_priority_user_id"
				FOREIGN KEY ("user_id") REFERENCES "user"("id")
				ON DELETE CASCADE`,
		},
		{
			name: "fk_field_domain_id",
			stmt: `ALTER TABLE "field"
				ADD CONSTRAINT "fk_field_domain_id"
				FOREIGN KEY ("domain_id") REFERENCES "domain"("id")
				ON DELETE CASCADE`,
		},
		{
			name: "fk_field_value_pack_id",
			stmt: `ALTER TABLE "field_value"
				ADD CONSTRAINT "fk_field_value_pack_id"
				FOREIGN KEY ("pack_id") REFERENCES "pack"("id")
				ON DELETE CASCADE`,
		},
		{
			name: "fk_field_value_field_id",
			stmt: `ALTER TABLE "field_value"
				ADD CONSTRAINT "fk_field_value_field_id"
				FOREIGN KEY ("field_id") REFERENCES "field"("id")
				ON DELETE CASCADE`,
		},
		{
			name: "fk_comment_value_id",
			stmt: `ALTER TABLE "comment"
				ADD CONSTRAINT "fk_comment_value_id"
				FOREIGN KEY ("value_id") REFERENCES "field_value"("id")
				ON DELETE CASCADE`,
		},
		{
			name: "fk_pack_component_pack_id",
			stmt: `ALTER TABLE "pack_component"
				ADD CONSTRAINT "fk_pack_component_pack_id"
				FOREIGN KEY ("pack_id") REFERENCES "pack"("id")
				ON DELETE CASCADE`,
		},
	}
	for _, fk := range constraints {
		var exists bool
		if err := s.db.Raw(
			`SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = ?)`, fk.name,
		).Scan(&exists).Error; err != nil {
			return fmt.Errorf("failed to check %s: %w", fk.name, err)
		}
		if exists {
			continue
		}
		if err := s.db.Exec(fk.stmt).Error; err != nil {
			return fmt.Errorf("failed to add %s: %w", fk.name, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
