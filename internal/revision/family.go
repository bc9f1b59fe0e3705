package revision

import (
	"fmt"

	"catalog-app/internal/domain/catalog"

	"gorm.io/gorm"
)

// family is the storage of one entity kind: its current table, history table
// and owned sub-collections. Data handed to the write methods has already
// passed through normalize.
type family interface {
	kind() catalog.Kind
	normalize(d catalog.Data) (catalog.Data, error)
	validate(tx *gorm.DB, id int64, d catalog.Data, canonical catalog.Language) error

	// saveRow inserts the current row when id is zero, otherwise overwrites it.
	saveRow(tx *gorm.DB, id int64, d catalog.Data) (int64, error)
	// replaceChildren deletes and reinserts every owned sub-row. It returns
	// the data with any ids assigned during the insert.
	replaceChildren(tx *gorm.DB, id int64, d catalog.Data) (catalog.Data, error)
	writeHistory(tx *gorm.DB, changeID int64, d catalog.Data) error

	flags(tx *gorm.DB, id int64) (catalog.Flags, error)
	loadCurrent(tx *gorm.DB, id int64) (catalog.Data, error)
	// loadHistory rebuilds the data as of ch; flags come from the change row.
	loadHistory(tx *gorm.DB, ch catalog.Change) (catalog.Data, error)
}

var families = map[catalog.Kind]family{
	catalog.KindBook:      bookFamily{},
	catalog.KindSeries:    seriesFamily{},
	catalog.KindStaff:     staffFamily{},
	catalog.KindPublisher: publisherFamily{},
	catalog.KindRelease:   releaseFamily{},
}

func familyOf(kind catalog.Kind) (family, error) {
	f, ok := families[kind]
	if !ok {
		return nil, fmt.Errorf("unknown entity kind %q", kind)
	}
	return f, nil
}

// as accepts both T and *T.
func as[T catalog.Data](d catalog.Data) (T, error) {
	if v, ok := d.(T); ok {
		return v, nil
	}
	if p, ok := any(d).(*T); ok && p != nil {
		return *p, nil
	}
	var zero T
	return zero, fmt.Errorf("payload %T does not match %s", d, zero.Kind())
}

func rowFlags(tx *gorm.DB, model any, kind catalog.Kind, id int64) (catalog.Flags, error) {
	var f catalog.Flags
	res := tx.Model(model).Select("hidden", "locked").Where("id = ?", id).Scan(&f)
	if res.Error != nil {
		return f, fmt.Errorf("load %s %d: %w", kind, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return f, fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
	}
	return f, nil
}

// loadRow loads one current-table row into dest.
func loadRow(tx *gorm.DB, dest any, kind catalog.Kind, id int64) error {
	if err := tx.First(dest, "id = ?", id).Error; err != nil {
		return notFoundOr(err, fmt.Sprintf("load %s %d", kind, id))
	}
	return nil
}

func loadHistRow(tx *gorm.DB, dest any, kind catalog.Kind, changeID int64) error {
	if err := tx.First(dest, "change_id = ?", changeID).Error; err != nil {
		return notFoundOr(err, fmt.Sprintf("load %s history of change %d", kind, changeID))
	}
	return nil
}

// createAll inserts rows in one statement; an empty slice is a no-op.
func createAll[T any](tx *gorm.DB, rows []T, scope DuplicateScope, what string) error {
	if len(rows) == 0 {
		return nil
	}
	return dupOr(tx.Create(&rows).Error, scope, what)
}

func requireLanguage(titles []catalog.Title, lang catalog.Language) error {
	for _, t := range titles {
		if t.Lang == lang {
			return nil
		}
	}
	return &ValidationError{Field: "titles", Message: fmt.Sprintf("at least one title must be in %q", lang)}
}

// requireExisting checks that every id names a row of model. Repeated ids are
// left for the uniqueness constraints to report.
func requireExisting(tx *gorm.DB, model any, ids []int64, field string) error {
	set := map[int64]struct{}{}
	for _, id := range ids {
		set[id] = struct{}{}
	}
	if len(set) == 0 {
		return nil
	}
	distinct := make([]int64, 0, len(set))
	for id := range set {
		distinct = append(distinct, id)
	}

	var n int64
	if err := tx.Model(model).Where("id IN ?", distinct).Count(&n).Error; err != nil {
		return fmt.Errorf("check %s: %w", field, err)
	}
	if int(n) != len(distinct) {
		return &ValidationError{Field: field, Message: "references an entity that does not exist"}
	}
	return nil
}

func requireNotSelf(id int64, refs []int64, field string) error {
	if id == 0 {
		return nil
	}
	for _, r := range refs {
		if r == id {
			return &ValidationError{Field: field, Message: "an entity cannot relate to itself"}
		}
	}
	return nil
}

func requireValid(field string, e catalog.Enum) error {
	if !e.Valid() {
		return &ValidationError{Field: field, Message: fmt.Sprintf("unknown value %v", e)}
	}
	return nil
}

func validateTitles(titles []catalog.Title, canonical catalog.Language) error {
	for _, t := range titles {
		if err := requireValid("titles.lang", t.Lang); err != nil {
			return err
		}
	}
	return requireLanguage(titles, canonical)
}

// saveOrCreate inserts row when id is zero, otherwise overwrites every column.
func saveOrCreate(tx *gorm.DB, row any, id int64) error {
	if id == 0 {
		return tx.Create(row).Error
	}
	return tx.Save(row).Error
}
