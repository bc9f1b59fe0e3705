package revision

import (
	"fmt"

	"catalog-app/internal/domain/catalog"

	"gorm.io/gorm"
)

// reference is one live relation that can point at an entity. query returns
// the rows that reference id from an entity that is not itself hidden.
type reference struct {
	relation string
	query    func(tx *gorm.DB, id int64) *gorm.DB
}

var references = map[catalog.Kind][]reference{
	catalog.KindBook: {
		{"release_book", func(tx *gorm.DB, id int64) *gorm.DB {
			return tx.Table("release_book").
				Joins("JOIN release ON release.id = release_book.release_id").
				Where("release_book.book_id = ? AND release.hidden = ?", id, false)
		}},
		{"series_book", func(tx *gorm.DB, id int64) *gorm.DB {
			return tx.Table("series_book").
				Joins("JOIN series ON series.id = series_book.series_id").
				Where("series_book.book_id = ? AND series.hidden = ?", id, false)
		}},
	},
	catalog.KindSeries: {
		{"series_relation", func(tx *gorm.DB, id int64) *gorm.DB {
			return tx.Table("series_relation").
				Joins("JOIN series ON series.id = series_relation.id_parent").
				Where("series_relation.id_child = ? AND series_relation.id_parent <> ? AND series.hidden = ?", id, id, false)
		}},
	},
	catalog.KindStaff: {
		{"book_staff_alias", func(tx *gorm.DB, id int64) *gorm.DB {
			return tx.Table("book_staff_alias").
				Joins("JOIN staff_alias ON staff_alias.id = book_staff_alias.staff_alias_id").
				Joins("JOIN book_edition ON book_edition.eid = book_staff_alias.eid").
				Joins("JOIN book ON book.id = book_edition.book_id").
				Where("staff_alias.staff_id = ? AND book.hidden = ?", id, false)
		}},
	},
	catalog.KindPublisher: {
		{"release_publisher", func(tx *gorm.DB, id int64) *gorm.DB {
			return tx.Table("release_publisher").
				Joins("JOIN release ON release.id = release_publisher.release_id").
				Where("release_publisher.publisher_id = ? AND release.hidden = ?", id, false)
		}},
		{"publisher_relation", func(tx *gorm.DB, id int64) *gorm.DB {
			return tx.Table("publisher_relation").
				Joins("JOIN publisher ON publisher.id = publisher_relation.id_parent").
				Where("publisher_relation.id_child = ? AND publisher_relation.id_parent <> ? AND publisher.hidden = ?", id, id, false)
		}},
	},
}

// checkHide returns a *HasRelationsError naming the first relation that still
// references id from a visible entity. It is a no-op unless hidden is set.
func checkHide(tx *gorm.DB, kind catalog.Kind, id int64, hidden bool) error {
	if !hidden || id == 0 {
		return nil
	}
	for _, ref := range references[kind] {
		var n int64
		if err := ref.query(tx, id).Count(&n).Error; err != nil {
			return fmt.Errorf("check %s references: %w", ref.relation, err)
		}
		if n > 0 {
			return &HasRelationsError{Relation: ref.relation}
		}
	}
	return nil
}
