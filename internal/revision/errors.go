package revision

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrChangePermission = errors.New("insufficient permission to change entity")
	ErrStaleRevision    = errors.New("entity was changed by another revision")
	ErrNotFound         = errors.New("entity or revision not found")

	// errRevisionConflict is returned by a transaction that lost the race for
	// the next revision number. Submit retries it once.
	errRevisionConflict = errors.New("revision number already taken")
)

// HasRelationsError blocks hiding an entity that live, visible entities
// still reference.
type HasRelationsError struct {
	Relation string
}

func (e *HasRelationsError) Error() string {
	return fmt.Sprintf("entity is still referenced through %s", e.Relation)
}

type DuplicateScope string

const (
	ScopeBooks     DuplicateScope = "books"
	ScopeTitles    DuplicateScope = "titles"
	ScopeRelations DuplicateScope = "relations"
)

// DuplicateEntryError reports which sub-collection of a submission held the
// same key twice.
type DuplicateEntryError struct {
	Scope DuplicateScope
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("duplicate entries in %s", e.Scope)
}

// ValidationError is a payload invariant that depends on database state or
// spans several fields.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// older sqlite builds do not translate composite primary key violations
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// dupOr tags uniqueness violations with the collection being written and
// wraps anything else with context.
func dupOr(err error, scope DuplicateScope, what string) error {
	if err == nil {
		return nil
	}
	if isDuplicate(err) {
		return &DuplicateEntryError{Scope: scope}
	}
	return fmt.Errorf("%s: %w", what, err)
}

func notFoundOr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}
