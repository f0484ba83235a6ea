package database

import (
	"testing"

	"twofactor-vault/internal/config"
	"twofactor-vault/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return testDB
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	tables := []string{
		"audit_logs",
		"otp_accounts",
		"groups",
		"users",
	}

	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	if err := db.Close(); err != nil {
		t.Logf("failed to close test database: %v", err)
	}
}

func CreateTestUser(t *testing.T, db *DB) *models.User {
	t.Helper()

	user := &models.User{
		Email:        gofakeit.Email(),
		PasswordHash: "hashed_password",
		Name:         gofakeit.Name(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

func CreateTestGroup(t *testing.T, db *DB, user *models.User, name string) *models.Group {
	t.Helper()

	group := &models.Group{
		UserID: user.ID,
		Name:   name,
	}

	if err := db.Create(group).Error; err != nil {
		t.Fatalf("failed to create test group: %v", err)
	}

	return group
}

func CreateTestOtpAccount(t *testing.T, db *DB, user *models.User, groupID *uint) *models.OtpAccount {
	t.Helper()

	account := &models.OtpAccount{
		UserID:  user.ID,
		GroupID: groupID,
		Service: gofakeit.Company(),
		Account: gofakeit.Email(),
		OtpType: models.OtpTypeTotp,
		Secret:  gofakeit.LetterN(32),
	}

	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test otp account: %v", err)
	}

	return account
}
