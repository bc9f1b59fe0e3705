package catalog

type Release struct {
	ID          int64         `gorm:"primaryKey" json:"id"`
	Title       string        `gorm:"type:text;not null" json:"title"`
	Romaji      *string       `gorm:"type:text" json:"romaji,omitempty"`
	Description string        `gorm:"type:text;not null;default:''" json:"description"`
	Format      ReleaseFormat `gorm:"type:text;not null" json:"format"`
	Lang        Language      `gorm:"type:text;not null" json:"lang"`
	ReleaseDate int           `gorm:"not null;index" json:"release_date"`
	Pages       *int          `json:"pages,omitempty"`
	ISBN13      *string       `gorm:"column:isbn13;type:text" json:"isbn13,omitempty"`
	Hidden      bool          `gorm:"not null;default:false;index" json:"hidden"`
	Locked      bool          `gorm:"not null;default:false" json:"locked"`
}

type ReleaseHist struct {
	ChangeID    int64         `gorm:"primaryKey;autoIncrement:false" json:"change_id"`
	Title       string        `gorm:"type:text;not null" json:"title"`
	Romaji      *string       `gorm:"type:text" json:"romaji,omitempty"`
	Description string        `gorm:"type:text;not null;default:''" json:"description"`
	Format      ReleaseFormat `gorm:"type:text;not null" json:"format"`
	Lang        Language      `gorm:"type:text;not null" json:"lang"`
	ReleaseDate int           `gorm:"not null" json:"release_date"`
	Pages       *int          `json:"pages,omitempty"`
	ISBN13      *string       `gorm:"column:isbn13;type:text" json:"isbn13,omitempty"`
}

type ReleaseBook struct {
	ReleaseID int64       `gorm:"primaryKey;autoIncrement:false" json:"release_id"`
	BookID    int64       `gorm:"primaryKey;autoIncrement:false;index" json:"book_id"`
	RType     ReleaseType `gorm:"column:rtype;type:text;not null" json:"rtype"`
}

type ReleaseBookHist struct {
	ChangeID int64       `gorm:"primaryKey;autoIncrement:false" json:"change_id"`
	BookID   int64       `gorm:"primaryKey;autoIncrement:false" json:"book_id"`
	RType    ReleaseType `gorm:"column:rtype;type:text;not null" json:"rtype"`
}

type ReleasePublisher struct {
	ReleaseID     int64                `gorm:"primaryKey;autoIncrement:false" json:"release_id"`
	PublisherID   int64                `gorm:"primaryKey;autoIncrement:false;index" json:"publisher_id"`
	PublisherType ReleasePublisherType `gorm:"type:text;not null" json:"publisher_type"`
}

type ReleasePublisherHist struct {
	ChangeID      int64                `gorm:"primaryKey;autoIncrement:false" json:"change_id"`
	PublisherID   int64                `gorm:"primaryKey;autoIncrement:false" json:"publisher_id"`
	PublisherType ReleasePublisherType `gorm:"type:text;not null" json:"publisher_type"`
}
