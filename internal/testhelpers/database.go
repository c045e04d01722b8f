package testhelpers

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/safebite/safebite/internal/models"
)

// SetupTestDB creates an in-memory SQLite database with the full schema.
// SQLite stores the jsonb columns as text, which the array types scan fine.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.LogEntry{},
		&models.Allergen{},
		&models.EducationalResource{},
		&models.RecallAlert{},
	)
	if err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	return db
}

// SetupPostgresDB starts a PostgreSQL testcontainer and migrates the
// schema into it. Skips when no Docker daemon is reachable.
func SetupPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping container-backed test in short mode")
	}

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "testuser",
				"POSTGRES_PASSWORD": "testpass",
				"POSTGRES_DB":       "testdb",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections"),
			).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("Skipping container-backed test - Docker unavailable: %v", err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	dsn := fmt.Sprintf("host=%s port=%s user=testuser password=testpass dbname=testdb sslmode=disable",
		host, mappedPort.Port())
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.LogEntry{},
		&models.Allergen{},
		&models.EducationalResource{},
		&models.RecallAlert{},
	)
	if err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	return db
}

// RecordingPublisher captures published paths for assertions.
type RecordingPublisher struct {
	mu    sync.Mutex
	Paths []string
}

func (p *RecordingPublisher) Publish(_ context.Context, path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Paths = append(p.Paths, path)
	return nil
}

// Published returns a copy of the paths published so far.
func (p *RecordingPublisher) Published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.Paths...)
}

// MemoryRevocationStore is an in-memory RevocationStore for tests.
type MemoryRevocationStore struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{revoked: make(map[string]bool)}
}

func (s *MemoryRevocationStore) Revoke(_ context.Context, token string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = true
	return nil
}

func (s *MemoryRevocationStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revoked[token], nil
}

// SeedAllergens inserts a small catalog used across tests.
func SeedAllergens(t *testing.T, db *gorm.DB) {
	t.Helper()

	allergens := []models.Allergen{
		{
			ID:                 "peanut",
			Name:               "Peanut",
			CommonNames:        models.JSONBStringArray{"peanuts", "groundnut"},
			HiddenSources:      models.JSONBStringArray{"arachis oil", "satay sauce"},
			CrossReactiveFoods: models.JSONBStringArray{"lupin"},
		},
		{
			ID:            "milk",
			Name:          "Milk",
			CommonNames:   models.JSONBStringArray{"dairy", "lactose"},
			HiddenSources: models.JSONBStringArray{"casein", "whey"},
		},
		{
			ID:                 "shellfish",
			Name:               "Shellfish",
			CommonNames:        models.JSONBStringArray{"shrimp", "crab"},
			HiddenSources:      models.JSONBStringArray{"fish stock"},
			CrossReactiveFoods: models.JSONBStringArray{"mollusks"},
		},
	}
	for i := range allergens {
		if err := db.Create(&allergens[i]).Error; err != nil {
			t.Fatalf("failed to seed allergen %s: %v", allergens[i].ID, err)
		}
	}
}
