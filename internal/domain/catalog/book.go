package catalog

type Book struct {
	ID            int64  `gorm:"primaryKey" json:"id"`
	Description   string `gorm:"type:text;not null;default:''" json:"description"`
	DescriptionJa string `gorm:"type:text;not null;default:''" json:"description_ja"`
	Hidden        bool   `gorm:"not null;default:false;index" json:"hidden"`
	Locked        bool   `gorm:"not null;default:false" json:"locked"`
}

type BookHist struct {
	ChangeID      int64  `gorm:"primaryKey;autoIncrement:false" json:"change_id"`
	Description   string `gorm:"type:text;not null;default:''" json:"description"`
	DescriptionJa string `gorm:"type:text;not null;default:''" json:"description_ja"`
}

// One title per language per book.
type BookTitle struct {
	BookID   int64    `gorm:"primaryKey;autoIncrement:false" json:"book_id"`
	Lang     Language `gorm:"primaryKey;type:text" json:"lang"`
	Official bool     `gorm:"not null;default:false" json:"official"`
	Title    string   `gorm:"type:text;not null" json:"title"`
	Romaji   *string  `gorm:"type:text" json:"romaji,omitempty"`
}

type BookTitleHist struct {
	ChangeID int64    `gorm:"primaryKey;autoIncrement:false" json:"change_id"`
	Lang     Language `gorm:"primaryKey;type:text" json:"lang"`
	Official bool     `gorm:"not null;default:false" json:"official"`
	Title    string   `gorm:"type:text;not null" json:"title"`
	Romaji   *string  `gorm:"type:text" json:"romaji,omitempty"`
}

// BookEdition is one edition of a book. Eids are stable across edits because
// staff credits hang off them. Position keeps the submitted order; position 0
// is the original edition.
type BookEdition struct {
	EID      int64    `gorm:"column:eid;primaryKey" json:"eid"`
	BookID   int64    `gorm:"not null;index" json:"book_id"`
	Position int      `gorm:"not null" json:"position"`
	Lang     Language `gorm:"type:text;not null" json:"lang"`
	Title    string   `gorm:"type:text;not null" json:"title"`
}

type BookEditionHist struct {
	ChangeID int64    `gorm:"primaryKey;autoIncrement:false" json:"change_id"`
	EID      int64    `gorm:"column:eid;primaryKey;autoIncrement:false" json:"eid"`
	Position int      `gorm:"not null" json:"position"`
	Lang     Language `gorm:"type:text;not null" json:"lang"`
	Title    string   `gorm:"type:text;not null" json:"title"`
}

// BookStaffAlias credits a staff alias on one edition of a book.
type BookStaffAlias struct {
	EID          int64     `gorm:"column:eid;primaryKey;autoIncrement:false" json:"eid"`
	StaffAliasID int64     `gorm:"primaryKey;autoIncrement:false;index" json:"staff_alias_id"`
	RoleType     StaffRole `gorm:"primaryKey;type:text" json:"role_type"`
	Note         string    `gorm:"type:text;not null;default:''" json:"note"`
}

type BookStaffAliasHist struct {
	ChangeID     int64     `gorm:"primaryKey;autoIncrement:false" json:"change_id"`
	EID          int64     `gorm:"column:eid;primaryKey;autoIncrement:false" json:"eid"`
	StaffAliasID int64     `gorm:"primaryKey;autoIncrement:false" json:"staff_alias_id"`
	RoleType     StaffRole `gorm:"primaryKey;type:text" json:"role_type"`
	Note         string    `gorm:"type:text;not null;default:''" json:"note"`
}
