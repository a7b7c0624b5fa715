package models

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateName is returned when a unique name index rejects a write.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrStillReferenced is returned when a delete is blocked by rows that reference the record.
	ErrStillReferenced = errors.New("record is still referenced")
	// ErrMissingReference is returned when a write points at a row that does not exist.
	ErrMissingReference = errors.New("referenced record does not exist")
)

// Postgres SQLSTATE codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation
}

// classifyWrite maps constraint violations raised on insert/update.
func classifyWrite(err error) error {
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return ErrDuplicateName
	case isForeignKeyViolation(err):
		return ErrMissingReference
	}
	return err
}

// classifyDelete maps constraint violations raised on delete.
func classifyDelete(err error) error {
	if err != nil && isForeignKeyViolation(err) {
		return ErrStillReferenced
	}
	return err
}
