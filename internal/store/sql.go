package store

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// blob is one row of the key-value table.
type blob struct {
	Key       string `gorm:"column:blob_key;primaryKey"`
	Value     string
	UpdatedAt time.Time
}

// SQLBlobs stores blobs in a SQLite table through gorm.
type SQLBlobs struct {
	db *gorm.DB
}

// NewSQLBlobs opens (or creates) the SQLite database at dsn and migrates
// the blobs table.
func NewSQLBlobs(dsn string) (*SQLBlobs, error) {
	if err := ensureDirForSQLite(dsn); err != nil {
		return nil, err
	}

	dbLogger := logger.New(
		log.New(os.Stderr, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: dbLogger})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&blob{}); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	return &SQLBlobs{db: db}, nil
}

// Get implements Blobs.
func (s *SQLBlobs) Get(key string) ([]byte, error) {
	var b blob
	err := s.db.Where("blob_key = ?", key).Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading blob %s: %w", key, err)
	}
	return []byte(b.Value), nil
}

// Put implements Blobs. The row is replaced in a single statement.
func (s *SQLBlobs) Put(key string, value []byte) error {
	b := blob{Key: key, Value: string(value), UpdatedAt: time.Now()}
	if err := s.db.Save(&b).Error; err != nil {
		return fmt.Errorf("writing blob %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *SQLBlobs) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ensureDirForSQLite creates the parent directory of a file DSN.
func ensureDirForSQLite(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, blobDirMode); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}
