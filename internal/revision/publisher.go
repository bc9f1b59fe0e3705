package revision

import (
	"catalog-app/internal/domain/catalog"

	"gorm.io/gorm"
)

type publisherFamily struct{}

func (publisherFamily) kind() catalog.Kind { return catalog.KindPublisher }

func (publisherFamily) normalize(d catalog.Data) (catalog.Data, error) {
	p, err := as[catalog.PublisherData](d)
	if err != nil {
		return nil, err
	}
	if p.ChildPublishers == nil {
		p.ChildPublishers = []catalog.PublisherRelationRef{}
	}
	return p, nil
}

func (publisherFamily) validate(tx *gorm.DB, id int64, d catalog.Data, _ catalog.Language) error {
	p := d.(catalog.PublisherData)
	if p.Name == "" {
		return &ValidationError{Field: "name", Message: "must not be empty"}
	}
	childIDs := make([]int64, 0, len(p.ChildPublishers))
	for _, c := range p.ChildPublishers {
		if err := requireValid("child_publishers.relation_type", c.RelationType); err != nil {
			return err
		}
		childIDs = append(childIDs, c.ID)
	}
	if err := requireNotSelf(id, childIDs, "child_publishers"); err != nil {
		return err
	}
	return requireExisting(tx, &catalog.Publisher{}, childIDs, "child_publishers")
}

func (publisherFamily) saveRow(tx *gorm.DB, id int64, d catalog.Data) (int64, error) {
	p := d.(catalog.PublisherData)
	row := catalog.Publisher{
		ID:           id,
		Name:         p.Name,
		Romaji:       p.Romaji,
		Description:  p.Description,
		BookwalkerID: p.BookwalkerID,
		Hidden:       p.Hidden,
		Locked:       p.Locked,
	}
	if err := saveOrCreate(tx, &row, id); err != nil {
		return 0, err
	}
	return row.ID, nil
}

func (publisherFamily) replaceChildren(tx *gorm.DB, id int64, d catalog.Data) (catalog.Data, error) {
	p := d.(catalog.PublisherData)
	if err := tx.Where("id_parent = ?", id).Delete(&catalog.PublisherRelation{}).Error; err != nil {
		return nil, err
	}
	rels := make([]catalog.PublisherRelation, 0, len(p.ChildPublishers))
	for _, c := range p.ChildPublishers {
		rels = append(rels, catalog.PublisherRelation{IDParent: id, IDChild: c.ID, RelationType: c.RelationType})
	}
	if err := createAll(tx, rels, ScopeRelations, "insert publisher relations"); err != nil {
		return nil, err
	}
	return p, nil
}

func (publisherFamily) writeHistory(tx *gorm.DB, changeID int64, d catalog.Data) error {
	p := d.(catalog.PublisherData)
	hist := catalog.PublisherHist{
		ChangeID:     changeID,
		Name:         p.Name,
		Romaji:       p.Romaji,
		Description:  p.Description,
		BookwalkerID: p.BookwalkerID,
	}
	if err := tx.Create(&hist).Error; err != nil {
		return err
	}
	rels := make([]catalog.PublisherRelationHist, 0, len(p.ChildPublishers))
	for _, c := range p.ChildPublishers {
		rels = append(rels, catalog.PublisherRelationHist{ChangeID: changeID, IDChild: c.ID, RelationType: c.RelationType})
	}
	return createAll(tx, rels, ScopeRelations, "insert publisher relation history")
}

func (publisherFamily) flags(tx *gorm.DB, id int64) (catalog.Flags, error) {
	return rowFlags(tx, &catalog.Publisher{}, catalog.KindPublisher, id)
}

func (publisherFamily) loadCurrent(tx *gorm.DB, id int64) (catalog.Data, error) {
	var row catalog.Publisher
	if err := loadRow(tx, &row, catalog.KindPublisher, id); err != nil {
		return nil, err
	}
	var rels []catalog.PublisherRelation
	if err := tx.Where("id_parent = ?", id).Order("id_child").Find(&rels).Error; err != nil {
		return nil, err
	}
	p := catalog.PublisherData{
		Hidden:          row.Hidden,
		Locked:          row.Locked,
		Name:            row.Name,
		Romaji:          row.Romaji,
		Description:     row.Description,
		BookwalkerID:    row.BookwalkerID,
		ChildPublishers: make([]catalog.PublisherRelationRef, 0, len(rels)),
	}
	for _, r := range rels {
		p.ChildPublishers = append(p.ChildPublishers, catalog.PublisherRelationRef{ID: r.IDChild, RelationType: r.RelationType})
	}
	return p, nil
}

func (publisherFamily) loadHistory(tx *gorm.DB, ch catalog.Change) (catalog.Data, error) {
	var row catalog.PublisherHist
	if err := loadHistRow(tx, &row, catalog.KindPublisher, ch.ID); err != nil {
		return nil, err
	}
	var rels []catalog.PublisherRelationHist
	if err := tx.Where("change_id = ?", ch.ID).Order("id_child").Find(&rels).Error; err != nil {
		return nil, err
	}
	p := catalog.PublisherData{
		Hidden:          ch.Ihid,
		Locked:          ch.Ilock,
		Name:            row.Name,
		Romaji:          row.Romaji,
		Description:     row.Description,
		BookwalkerID:    row.BookwalkerID,
		ChildPublishers: make([]catalog.PublisherRelationRef, 0, len(rels)),
	}
	for _, r := range rels {
		p.ChildPublishers = append(p.ChildPublishers, catalog.PublisherRelationRef{ID: r.IDChild, RelationType: r.RelationType})
	}
	return p, nil
}
