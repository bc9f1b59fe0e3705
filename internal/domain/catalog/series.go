package catalog

type Series struct {
	ID                int64        `gorm:"primaryKey" json:"id"`
	Description       string       `gorm:"type:text;not null;default:''" json:"description"`
	BookwalkerID      *int64       `json:"bookwalker_id,omitempty"`
	PublicationStatus SeriesStatus `gorm:"type:text;not null" json:"publication_status"`
	Hidden            bool         `gorm:"not null;default:false;index" json:"hidden"`
	Locked            bool         `gorm:"not null;default:false" json:"locked"`
}

type SeriesHist struct {
	ChangeID          int64        `gorm:"primaryKey;autoIncrement:false" json:"change_id"`
	Description       string       `gorm:"type:text;not null;default:''" json:"description"`
	BookwalkerID      *int64       `json:"bookwalker_id,omitempty"`
	PublicationStatus SeriesStatus `gorm:"type:text;not null" json:"publication_status"`
}

type SeriesTitle struct {
	SeriesID int64    `gorm:"primaryKey;autoIncrement:false" json:"series_id"`
	Lang     Language `gorm:"primaryKey;type:text" json:"lang"`
	Official bool     `gorm:"not null;default:false" json:"official"`
	Title    string   `gorm:"type:text;not null" json:"title"`
	Romaji   *string  `gorm:"type:text" json:"romaji,omitempty"`
}

type SeriesTitleHist struct {
	ChangeID int64    `gorm:"primaryKey;autoIncrement:false" json:"change_id"`
	Lang     Language `gorm:"primaryKey;type:text" json:"lang"`
	Official bool     `gorm:"not null;default:false" json:"official"`
	Title    string   `gorm:"type:text;not null" json:"title"`
	Romaji   *string  `gorm:"type:text" json:"romaji,omitempty"`
}

type SeriesBook struct {
	SeriesID  int64 `gorm:"primaryKey;autoIncrement:false" json:"series_id"`
	BookID    int64 `gorm:"primaryKey;autoIncrement:false;index" json:"book_id"`
	SortOrder int   `gorm:"not null;default:0" json:"sort_order"`
}

type SeriesBookHist struct {
	ChangeID  int64 `gorm:"primaryKey;autoIncrement:false" json:"change_id"`
	BookID    int64 `gorm:"primaryKey;autoIncrement:false" json:"book_id"`
	SortOrder int   `gorm:"not null;default:0" json:"sort_order"`
}

type SeriesRelation struct {
	IDParent     int64         `gorm:"column:id_parent;primaryKey;autoIncrement:false" json:"id_parent"`
	IDChild      int64         `gorm:"column:id_child;primaryKey;autoIncrement:false;index" json:"id_child"`
	RelationType SeriesRelType `gorm:"type:text;not null" json:"relation_type"`
}

type SeriesRelationHist struct {
	ChangeID     int64         `gorm:"primaryKey;autoIncrement:false" json:"change_id"`
	IDChild      int64         `gorm:"column:id_child;primaryKey;autoIncrement:false" json:"id_child"`
	RelationType SeriesRelType `gorm:"type:text;not null" json:"relation_type"`
}
