package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// kvEntry is one row of the kv_entries table.
type kvEntry struct {
	InstallationID string `gorm:"primaryKey;size:128"`
	Key            string `gorm:"primaryKey;column:kv_key;size:64"`
	Value          string
	UpdatedAt      time.Time
}

func (kvEntry) TableName() string { return "kv_entries" }

// SQLiteProvider persists keys in a single SQLite table through gorm.
type SQLiteProvider struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the database at path and migrates the schema.
func OpenSQLite(path string) (*SQLiteProvider, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, fmt.Errorf("migrate kv_entries: %w", err)
	}
	return &SQLiteProvider{db: db}, nil
}

// Store returns the keyspace for installationID.
func (p *SQLiteProvider) Store(installationID string) Store {
	if installationID == "" {
		return errStore{err: ErrEmptyInstallation}
	}
	return &sqliteStore{db: p.db, installationID: installationID}
}

// Close releases the underlying connection pool.
func (p *SQLiteProvider) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type sqliteStore struct {
	db             *gorm.DB
	installationID string
}

func (s *sqliteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry kvEntry
	err := s.db.WithContext(ctx).
		Where("installation_id = ? AND kv_key = ?", s.installationID, key).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *sqliteStore) Set(ctx context.Context, key, value string) error {
	entry := kvEntry{
		InstallationID: s.installationID,
		Key:            key,
		Value:          value,
		UpdatedAt:      time.Now().UTC(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "installation_id"}, {Name: "kv_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (s *sqliteStore) Remove(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).
		Where("installation_id = ? AND kv_key = ?", s.installationID, key).
		Delete(&kvEntry{}).Error
}

// Compile-time interface checks
var (
	_ Provider = (*SQLiteProvider)(nil)
	_ Store    = (*sqliteStore)(nil)
)
