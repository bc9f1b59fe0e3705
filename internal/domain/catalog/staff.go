package catalog

type Staff struct {
	ID           int64  `gorm:"primaryKey" json:"id"`
	Description  string `gorm:"type:text;not null;default:''" json:"description"`
	BookwalkerID *int64 `json:"bookwalker_id,omitempty"`
	Hidden       bool   `gorm:"not null;default:false;index" json:"hidden"`
	Locked       bool   `gorm:"not null;default:false" json:"locked"`
}

type StaffHist struct {
	ChangeID     int64  `gorm:"primaryKey;autoIncrement:false" json:"change_id"`
	Description  string `gorm:"type:text;not null;default:''" json:"description"`
	BookwalkerID *int64 `json:"bookwalker_id,omitempty"`
}

// StaffAlias ids are stable across edits because book credits point at them.
type StaffAlias struct {
	ID        int64   `gorm:"column:id;primaryKey" json:"id"`
	StaffID   int64   `gorm:"not null;uniqueIndex:idx_staff_alias_name,priority:1" json:"staff_id"`
	Name      string  `gorm:"type:text;not null;uniqueIndex:idx_staff_alias_name,priority:2" json:"name"`
	Romaji    *string `gorm:"type:text" json:"romaji,omitempty"`
	MainAlias bool    `gorm:"not null;default:false" json:"main_alias"`
	RefBookID *int64  `json:"ref_book_id,omitempty"`
}

type StaffAliasHist struct {
	ChangeID  int64   `gorm:"primaryKey;autoIncrement:false;uniqueIndex:idx_staff_alias_hist_name,priority:1" json:"change_id"`
	AID       int64   `gorm:"column:aid;primaryKey;autoIncrement:false" json:"aid"`
	Name      string  `gorm:"type:text;not null;uniqueIndex:idx_staff_alias_hist_name,priority:2" json:"name"`
	Romaji    *string `gorm:"type:text" json:"romaji,omitempty"`
	MainAlias bool    `gorm:"not null;default:false" json:"main_alias"`
	RefBookID *int64  `json:"ref_book_id,omitempty"`
}
