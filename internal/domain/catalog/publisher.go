package catalog

type Publisher struct {
	ID           int64   `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"type:text;not null" json:"name"`
	Romaji       *string `gorm:"type:text" json:"romaji,omitempty"`
	Description  string  `gorm:"type:text;not null;default:''" json:"description"`
	BookwalkerID *int64  `json:"bookwalker_id,omitempty"`
	Hidden       bool    `gorm:"not null;default:false;index" json:"hidden"`
	Locked       bool    `gorm:"not null;default:false" json:"locked"`
}

type PublisherHist struct {
	ChangeID     int64   `gorm:"primaryKey;autoIncrement:false" json:"change_id"`
	Name         string  `gorm:"type:text;not null" json:"name"`
	Romaji       *string `gorm:"type:text" json:"romaji,omitempty"`
	Description  string  `gorm:"type:text;not null;default:''" json:"description"`
	BookwalkerID *int64  `json:"bookwalker_id,omitempty"`
}

type PublisherRelation struct {
	IDParent     int64            `gorm:"column:id_parent;primaryKey;autoIncrement:false" json:"id_parent"`
	IDChild      int64            `gorm:"column:id_child;primaryKey;autoIncrement:false;index" json:"id_child"`
	RelationType PublisherRelType `gorm:"type:text;not null" json:"relation_type"`
}

type PublisherRelationHist struct {
	ChangeID     int64            `gorm:"primaryKey;autoIncrement:false" json:"change_id"`
	IDChild      int64            `gorm:"column:id_child;primaryKey;autoIncrement:false" json:"id_child"`
	RelationType PublisherRelType `gorm:"type:text;not null" json:"relation_type"`
}
