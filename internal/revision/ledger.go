package revision

import (
	"context"
	"fmt"

	"catalog-app/internal/domain/catalog"

	"gorm.io/gorm"
)

// RevisionEntry is one ledger row with its author's username.
type RevisionEntry struct {
	catalog.Change
	Username string `json:"username"`
}

func itemChanges(tx *gorm.DB, kind catalog.Kind, itemID int64) *gorm.DB {
	return tx.Model(&catalog.Change{}).
		Where("item_id = ? AND item_name = ?", itemID, kind)
}

// latestChange returns the authoritative change for an item: the one with the
// highest revision.
func latestChange(tx *gorm.DB, kind catalog.Kind, itemID int64) (catalog.Change, error) {
	var ch catalog.Change
	err := itemChanges(tx, kind, itemID).Order("revision DESC").First(&ch).Error
	if err != nil {
		return ch, notFoundOr(err, fmt.Sprintf("latest change of %s %d", kind, itemID))
	}
	return ch, nil
}

// LatestRevision returns the newest revision number of an entity.
func LatestRevision(ctx context.Context, db *gorm.DB, kind catalog.Kind, itemID int64) (int, error) {
	ch, err := latestChange(db.WithContext(ctx), kind, itemID)
	if err != nil {
		return 0, err
	}
	return ch.Revision, nil
}

func changeAt(tx *gorm.DB, kind catalog.Kind, itemID int64, revision int) (catalog.Change, error) {
	var ch catalog.Change
	err := itemChanges(tx, kind, itemID).Where("revision = ?", revision).First(&ch).Error
	if err != nil {
		return ch, notFoundOr(err, fmt.Sprintf("revision %d of %s %d", revision, kind, itemID))
	}
	return ch, nil
}

func firstAuthor(tx *gorm.DB, kind catalog.Kind, itemID int64) (int64, error) {
	ch, err := changeAt(tx, kind, itemID, 1)
	if err != nil {
		return 0, err
	}
	return ch.UserID, nil
}

// insertChange appends to the ledger. A unique violation on
// (item_id, item_name, revision) means a concurrent writer took the number.
func insertChange(tx *gorm.DB, ch *catalog.Change) error {
	if err := tx.Create(ch).Error; err != nil {
		if isDuplicate(err) {
			return errRevisionConflict
		}
		return fmt.Errorf("insert change: %w", err)
	}
	return nil
}

// ListRevisions returns every change of an item, newest first.
func ListRevisions(ctx context.Context, db *gorm.DB, kind catalog.Kind, itemID int64) ([]RevisionEntry, error) {
	var entries []RevisionEntry
	err := db.WithContext(ctx).
		Table("change").
		Select("change.*, COALESCE(users.username, '') AS username").
		Joins("LEFT JOIN users ON users.id = change.user_id").
		Where("change.item_id = ? AND change.item_name = ?", itemID, kind).
		Order("change.revision DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list revisions of %s %d: %w", kind, itemID, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("revisions of %s %d: %w", kind, itemID, ErrNotFound)
	}
	return entries, nil
}

// RecentChanges returns the newest ledger rows across every entity, at most
// limit of them. A non-zero userID restricts the list to that author.
func RecentChanges(ctx context.Context, db *gorm.DB, userID int64, limit int) ([]RevisionEntry, error) {
	q := db.WithContext(ctx).
		Table("change").
		Select("change.*, COALESCE(users.username, '') AS username").
		Joins("LEFT JOIN users ON users.id = change.user_id")
	if userID != 0 {
		q = q.Where("change.user_id = ?", userID)
	}
	entries := []RevisionEntry{}
	if err := q.Order("change.id DESC").Limit(limit).Scan(&entries).Error; err != nil {
		return nil, fmt.Errorf("recent changes: %w", err)
	}
	return entries, nil
}
