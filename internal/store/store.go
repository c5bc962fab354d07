// Package store keeps a history of analyses in an SQLite database.
package store

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/zeebo/blake3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/you-not-fish/numc/internal/session"
)

// ErrNotFound is returned when no run matches a query.
var ErrNotFound = errors.New("store: run not found")

// Store is an analysis history backed by SQLite.
type Store struct {
	db *gorm.DB
}

// Open opens or creates the database at path and migrates its schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	if err := s.db.AutoMigrate(&Run{}); err != nil {
		return err
	}
	return s.db.AutoMigrate(&Diagnostic{})
}

// Close closes the database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Hash returns the hex BLAKE3 digest of a source.
func Hash(src []byte) string {
	h := blake3.New()
	h.Write(src)
	return hex.EncodeToString(h.Sum(nil))
}

// Save records an analysis in language lang together with its diagnostics.
func (s *Store) Save(lang string, res *session.Result) (*Run, error) {
	run := &Run{
		Name:       res.Name,
		SourceHash: Hash(res.Source),
		Language:   lang,
		Function:   res.FuncName,
		OK:         res.OK,
		Code:       strings.Join(res.Lines(), "\n"),
		ErrorCount: len(res.Errors),
	}
	diags := make([]*Diagnostic, 0, len(res.Errors))
	for _, e := range res.Errors {
		diags = append(diags, &Diagnostic{Line: e.Line, Col: e.Col, Msg: e.Msg})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(run).Error; err != nil {
			return err
		}
		if len(diags) == 0 {
			return nil
		}
		for _, d := range diags {
			d.RunID = run.ID
		}
		return tx.Create(&diags).Error
	})
	if err != nil {
		return nil, fmt.Errorf("saving run: %w", err)
	}
	run.Diagnostics = diags
	return run, nil
}

func withDiagnostics(db *gorm.DB) *gorm.DB {
	return db.Preload("Diagnostics", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	})
}

// Find returns the latest run of the source with the given hash that was
// analyzed in lang.
func (s *Store) Find(sourceHash, lang string) (*Run, error) {
	var run Run
	err := withDiagnostics(s.db).
		Where("`source_hash`=? and `language`=?", sourceHash, lang).
		Order("id desc").First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(limit int) ([]*Run, error) {
	var runs []*Run
	if err := withDiagnostics(s.db).Order("id desc").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// Prune deletes runs created before t and returns how many were deleted.
// Deleted runs are only flagged and no longer show up in queries.
func (s *Store) Prune(t time.Time) (int64, error) {
	res := s.db.Where("`created_at` < ?", t.Unix()).Delete(&Run{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
