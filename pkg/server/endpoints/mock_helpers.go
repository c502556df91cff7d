package endpoints

import (
	"database/sql"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/doodlesbykumbi/arxiv-cache/pkg/config"
	"github.com/doodlesbykumbi/arxiv-cache/pkg/server"
)

// TestConfig returns a configuration suitable for tests
func TestConfig() *config.ArxivCacheConfig {
	return &config.ArxivCacheConfig{
		AllowedOrigins: []string{"http://localhost:5173"},
		LookupURL:      config.DefaultLookupURL,
		LookupTimeout:  5,
		LogFormat:      "development",
		LogLevel:       "info",
	}
}

// NewMockTestServer creates a server instance with a mocked database for unit testing.
// Returns the server with all endpoints registered, the mock database, and any error.
func NewMockTestServer(resolver server.Resolver) (*server.Server, *MockDB, error) {
	mockDB, err := NewMockDB()
	if err != nil {
		return nil, nil, err
	}

	s := server.NewServer(mockDB.GormDB, TestConfig(), resolver, zap.NewNop(), "127.0.0.1", "0")
	RegisterAll(s)
	return s, mockDB, nil
}

// MockDB wraps sqlmock for easier test setup
type MockDB struct {
	DB     *sql.DB
	Mock   sqlmock.Sqlmock
	GormDB *gorm.DB
}

// NewMockDB creates a new mock database connection
func NewMockDB() (*MockDB, error) {
	db, mock, err := sqlmock.New()
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 db,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &MockDB{
		DB:     db,
		Mock:   mock,
		GormDB: gormDB,
	}, nil
}

// Close closes the mock database
func (m *MockDB) Close() error {
	return m.DB.Close()
}

// PaperColumns are the columns of the papers table in declaration order
var PaperColumns = []string{
	"id", "identifier", "datestamp", "set_spec", "created", "updated",
	"title", "categories", "license", "abstract",
}

// ExpectListPapers sets up expectation for listing papers with no authors
func (m *MockDB) ExpectListPapers(identifiers ...string) {
	rows := sqlmock.NewRows(PaperColumns)
	for i, identifier := range identifiers {
		rows.AddRow(i+1, identifier, nil, "cs", nil, nil, "Title "+identifier, "", "", "")
	}
	m.Mock.ExpectQuery(`SELECT \* FROM "papers" ORDER BY id`).WillReturnRows(rows)
	if len(identifiers) > 0 {
		m.Mock.ExpectQuery(`SELECT pa.paper_id`).
			WillReturnRows(sqlmock.NewRows([]string{"paper_id", "id", "keyname", "forenames"}))
	}
}

// ExpectHealthCheck sets up expectation for the connectivity probe
func (m *MockDB) ExpectHealthCheck(err error) {
	e := m.Mock.ExpectExec(`SELECT 1`)
	if err != nil {
		e.WillReturnError(err)
		return
	}
	e.WillReturnResult(sqlmock.NewResult(0, 0))
}

// VerifyExpectations checks all expectations were met
func (m *MockDB) VerifyExpectations() error {
	return m.Mock.ExpectationsWereMet()
}
