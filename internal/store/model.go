package store

import "gorm.io/plugin/soft_delete"

// Run is one stored analysis.
type Run struct {
	ID         int64  `json:"id" gorm:"primaryKey"`
	Name       string `json:"name" gorm:"index:idx_name"`
	SourceHash string `json:"source_hash" gorm:"index:idx_source_hash"`
	Language   string `json:"language"`
	Function   string `json:"function"`
	OK         bool   `json:"ok"`
	// intermediate code, one instruction per line
	Code        string        `json:"code"`
	ErrorCount  int           `json:"error_count"`
	Diagnostics []*Diagnostic `json:"diagnostics" gorm:"foreignKey:RunID"`
	CreatedAt   int64         `json:"created_at" gorm:"index:idx_created_at"`
	/* 0 false 1 true */
	Deleted soft_delete.DeletedAt `json:"-" gorm:"softDelete:flag;default:0"`
}

func (Run) TableName() string {
	return "run"
}

// Diagnostic is one error of a stored run.
type Diagnostic struct {
	ID    int64  `json:"-" gorm:"primaryKey"`
	RunID int64  `json:"-" gorm:"index:idx_run_id"`
	Line  int    `json:"line"`
	Col   int    `json:"col"`
	Msg   string `json:"msg"`
}

func (Diagnostic) TableName() string {
	return "diagnostic"
}
