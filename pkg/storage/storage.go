package storage

import (
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

// ErrNotFound is returned when no blob exists under the requested key.
var ErrNotFound = errors.New("storage: key not found")

// Store is a key/value blob store on top of a single local SQLite file.
// The application keeps whole collections serialized under fixed keys and
// rewrites them on every mutation, so one table is all we need.
type Store struct {
	db *gorm.DB
}

type Config struct {
	Path string `env:"PATH" default:"kassa.db"`
}

func Open(cfg Config, withDebug bool) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: glogger.Default.LogMode(glogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if withDebug {
		db = db.Debug()
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := migrate(sqlDB); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Get(key string) ([]byte, error) {
	var b Blob
	err := s.db.First(&b, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b.Value, nil
}

func (s *Store) Put(key string, value []byte) error {
	b := Blob{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.Save(&b).Error
}

func (s *Store) Delete(key string) error {
	return s.db.Delete(&Blob{}, "key = ?", key).Error
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
