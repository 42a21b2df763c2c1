package testutils

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fcbarera0210/biomachinis/internal/model"
	moduleModel "github.com/fcbarera0210/biomachinis/internal/model/module"
	dbPkg "github.com/fcbarera0210/biomachinis/pkg/database"
)

// SetupTestDB creates a test database connection using environment variables
// and returns a transaction that is rolled back on cleanup, so tests never
// leave data behind. Skips the test when the database is unavailable.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := openTestDB(t)

	tx := db.Begin()
	t.Cleanup(func() {
		tx.Rollback()
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return tx
}

// SetupTestRawDB returns a real (non-transactional) connection for tests that
// need concurrent visibility across goroutines, e.g. atomic counter updates.
// Callers must clean up the rows they create.
func SetupTestRawDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := openTestDB(t)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return db
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		host := getEnvOrDefault("POSTGRES_HOST", "localhost")
		port := getEnvOrDefault("POSTGRES_PORT", "5433")
		user := getEnvOrDefault("POSTGRES_USER", "test")
		password := getEnvOrDefault("POSTGRES_PASSWORD", "test")
		dbname := getEnvOrDefault("POSTGRES_DB", "biomachinis_test")

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, password, dbname)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent), // Suppress logs in tests
		TranslateError: true,
	})
	if err != nil {
		t.Skipf("Test database not available: %v", err)
	}

	if err := model.InitTable(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	seedDefaultModules(t, db)

	return db
}

// seedDefaultModules makes sure the three fixed modules exist, mirroring
// what the application does on startup
func seedDefaultModules(t *testing.T, db *gorm.DB) {
	t.Helper()

	defaults := []moduleModel.Module{
		{Code: moduleModel.CodeNewsManage, Name: "Gestión de Noticias"},
		{Code: moduleModel.CodeUserManage, Name: "Gestión de Usuarios"},
		{Code: moduleModel.CodeTagManage, Name: "Gestión de Etiquetas"},
	}
	for _, m := range defaults {
		if err := db.Where(moduleModel.Module{Code: m.Code}).FirstOrCreate(&m).Error; err != nil {
			t.Fatalf("Failed to seed default modules: %v", err)
		}
	}
}

// SetupTestRedis creates a test Redis connection
// Returns nil if Redis is not available (tests can skip Redis-dependent features)
func SetupTestRedis(t *testing.T) *dbPkg.RedisClient {
	t.Helper()

	redisHost := getEnvOrDefault("REDIS_HOST", "localhost")
	redisPortStr := getEnvOrDefault("REDIS_PORT", "6380")
	redisPort, err := strconv.Atoi(redisPortStr)
	if err != nil || redisPort == 0 {
		redisPort = 6380
	}

	redisClient, err := dbPkg.InitRedis(&dbPkg.RedisConfig{
		ServiceName: "biomachinis-test",
		Host:        redisHost,
		Port:        redisPort,
		DB:          0,
	})
	if err != nil || redisClient == nil {
		return nil
	}

	t.Cleanup(func() {
		redisClient.FlushDB(context.Background())
		redisClient.Close()
	})
	return redisClient
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
