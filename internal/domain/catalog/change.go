package catalog

import "time"

// Change is one row of the shared ledger. (item_id, item_name, revision) is
// unique; a writer that loses a race on the next revision fails on that index.
type Change struct {
	ID       int64 `gorm:"primaryKey" json:"id"`
	ItemID   int64 `gorm:"not null;uniqueIndex:idx_change_item_revision,priority:1" json:"item_id"`
	ItemName Kind  `gorm:"type:text;not null;uniqueIndex:idx_change_item_revision,priority:2" json:"item_name"`
	Revision int   `gorm:"not null;uniqueIndex:idx_change_item_revision,priority:3" json:"revision"`

	UserID   int64  `gorm:"not null;index" json:"user_id"`
	Comments string `gorm:"type:text;not null" json:"comments"`

	Ihid  bool `gorm:"column:ihid;not null;default:false" json:"hidden"`
	Ilock bool `gorm:"column:ilock;not null;default:false" json:"locked"`

	Created time.Time `gorm:"not null;autoCreateTime" json:"created"`
}
