// test/helpers/helpers.go
package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/apotek-pos/internal/adapters/db"
	"github.com/ammerola/apotek-pos/internal/core/domain"
	"github.com/ammerola/apotek-pos/internal/pkg/config"
)

// TestDB represents a test database instance
type TestDB struct {
	PgxPool  *pgxpool.Pool
	Database *db.Database
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config
}

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	level := slog.LevelError
	if testing.Verbose() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// SetupTestDB creates a PostgreSQL container with the embedded migrations applied
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "Could not connect to Docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test_apotek",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	dbConfig := &db.Config{
		Host:               "localhost",
		Port:               resource.GetPort("5432/tcp"),
		User:               "test",
		Password:           "test",
		Database:           "test_apotek",
		SSLMode:            "disable",
		MaxConnections:     5,
		MinConnections:     1,
		MaxConnLifetime:    time.Hour,
		MaxConnIdleTime:    time.Minute * 30,
		HealthCheckPeriod:  time.Minute,
		ConnectTimeout:     time.Second * 10,
		StatementCacheMode: "describe",
		EnableQueryLogging: testing.Verbose(),
	}

	var database *db.Database
	err = pool.Retry(func() error {
		ctx := context.Background()
		var err error
		database, err = db.NewDatabase(ctx, dbConfig, TestLogger())
		if err != nil {
			return err
		}
		return database.Ping(ctx)
	})
	require.NoError(t, err, "Could not connect to PostgreSQL")
	t.Cleanup(database.Close)

	err = db.RunMigrationsWithRetry(context.Background(), &db.MigrationConfig{
		DatabaseURL: dbConfig.URL(),
	}, TestLogger(), 3)
	require.NoError(t, err, "Could not run migrations")

	return &TestDB{
		PgxPool:  database.Pool(),
		Database: database,
		Resource: resource,
		Pool:     pool,
		Config:   dbConfig,
	}
}

// SetupTestRedis creates an in-memory Redis instance for testing
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// SetupMockDB creates a mock database for unit testing
func SetupMockDB(t *testing.T) (sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create mock DB")

	t.Cleanup(func() {
		db.Close()
	})

	return mock, db
}

// LoadTestConfig returns a test configuration
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "apotek-pos-test",
			Environment: "test",
			Version:     "test",
			LogLevel:    "debug",
			LogFormat:   "text",
			Debug:       true,
		},
		Database: config.DatabaseConfig{
			Host:           "localhost",
			Port:           "5432",
			User:           "test",
			Password:       "test",
			Name:           "test_apotek",
			SSLMode:        "disable",
			MaxConnections: 5,
			MinConnections: 1,
		},
		Redis: config.RedisConfig{
			Host:       "localhost",
			Port:       "6379",
			PoolSize:   10,
			CatalogTTL: time.Minute,
		},
		Receipt: config.ReceiptConfig{
			StoreName: "Apotek Tandra Mantap",
			Tagline:   "Melayani dengan Sepenuh Hati dan cinta",
			Footer:    "Semoga Lekas Sembuh Ya!",
			Locale:    "id-ID",
		},
		Scanner: config.ScannerConfig{
			Source:  "http",
			Channel: "pos:scans",
			Buffer:  4,
		},
		Inventory: config.InventoryConfig{
			LowStockThreshold: domain.DefaultLowStockThreshold,
			TempDir:           os.TempDir(),
			MaxUploadMB:       1,
			ProcessingTimeout: time.Minute,
		},
		Security: config.SecurityConfig{
			RateLimitRequests: 100,
			RateLimitDuration: time.Minute,
			AllowedOrigins:    []string{"*"},
			RequestIDHeader:   "X-Request-ID",
		},
		Server: config.ServerConfig{
			Host:         "localhost",
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
	}
}

// CreateTestMedicine returns Paracetamol, barcode 111, Rp 5000, 20 in stock
func CreateTestMedicine(overrides ...func(*domain.Medicine)) *domain.Medicine {
	now := time.Now()
	m := &domain.Medicine{
		ID:        uuid.New(),
		Barcode:   "111",
		Name:      "Paracetamol",
		Price:     decimal.NewFromInt(5000),
		Stock:     20,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, override := range overrides {
		override(m)
	}

	return m
}

// CreateTestMedicines creates count medicines named "Obat 1" to "Obat <count>"
func CreateTestMedicines(count int) []domain.Medicine {
	medicines := make([]domain.Medicine, count)

	for i := 0; i < count; i++ {
		medicines[i] = *CreateTestMedicine(func(m *domain.Medicine) {
			m.Barcode = fmt.Sprintf("899%05d", i+1)
			m.Name = fmt.Sprintf("Obat %d", i+1)
			m.Price = decimal.NewFromInt(int64(1000 * (i + 1)))
			m.Stock = 5 * (i + 1)
		})
	}

	return medicines
}

// CreateTestMedicineForm returns a valid new-record form for Paracetamol
func CreateTestMedicineForm(overrides ...func(*domain.MedicineForm)) *domain.MedicineForm {
	price := decimal.NewFromInt(5000)
	stock := 20
	form := &domain.MedicineForm{
		Barcode: "111",
		Name:    "Paracetamol",
		Price:   &price,
		Stock:   &stock,
	}

	for _, override := range overrides {
		override(form)
	}

	return form
}

// CompareMedicines compares two medicines for testing
func CompareMedicines(t *testing.T, expected, actual *domain.Medicine) {
	t.Helper()

	require.Equal(t, expected.ID, actual.ID)
	require.Equal(t, expected.Barcode, actual.Barcode)
	require.Equal(t, expected.Name, actual.Name)
	require.True(t, expected.Price.Equal(actual.Price), "price %s != %s", expected.Price, actual.Price)
	require.Equal(t, expected.Stock, actual.Stock)
}

// AssertEventuallyWithTimeout asserts that a condition is met within a timeout
func AssertEventuallyWithTimeout(t *testing.T, condition func() bool, timeout time.Duration, msg string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Errorf("Condition not met within %v: %s", timeout, msg)
}

// TruncateAllTables truncates all tables in the test database
func TruncateAllTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	for _, table := range []string{"transactions", "medicines"} {
		_, err := pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "Failed to truncate table: %s", table)
	}
}

// SeedTestData inserts medicines directly, bypassing the store
func SeedTestData(t *testing.T, pool *pgxpool.Pool, medicines []domain.Medicine) {
	t.Helper()

	ctx := context.Background()
	query := `
		INSERT INTO medicines (id, barcode, name, price, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for _, m := range medicines {
		_, err := pool.Exec(ctx, query,
			m.ID, m.Barcode, m.Name, m.Price, m.Stock, m.CreatedAt, m.UpdatedAt)
		require.NoError(t, err, "Failed to seed test data")
	}
}

// CreateTempFile creates a temporary file for testing
func CreateTempFile(t *testing.T, content []byte, extension string) string {
	t.Helper()

	file, err := os.CreateTemp(t.TempDir(), fmt.Sprintf("test-*%s", extension))
	require.NoError(t, err, "Failed to create temp file")

	_, err = file.Write(content)
	require.NoError(t, err, "Failed to write to temp file")
	require.NoError(t, file.Close())

	return file.Name()
}
