package revision

import (
	"catalog-app/internal/domain/catalog"

	"gorm.io/gorm"
)

type seriesFamily struct{}

func (seriesFamily) kind() catalog.Kind { return catalog.KindSeries }

func (seriesFamily) normalize(d catalog.Data) (catalog.Data, error) {
	s, err := as[catalog.SeriesData](d)
	if err != nil {
		return nil, err
	}
	if s.Titles == nil {
		s.Titles = []catalog.Title{}
	}
	if s.Books == nil {
		s.Books = []catalog.SeriesBookRef{}
	}
	if s.ChildSeries == nil {
		s.ChildSeries = []catalog.SeriesRelationRef{}
	}
	return s, nil
}

func (seriesFamily) validate(tx *gorm.DB, id int64, d catalog.Data, canonical catalog.Language) error {
	s := d.(catalog.SeriesData)
	if err := requireValid("publication_status", s.PublicationStatus); err != nil {
		return err
	}
	if err := validateTitles(s.Titles, canonical); err != nil {
		return err
	}

	bookIDs := make([]int64, 0, len(s.Books))
	for _, b := range s.Books {
		bookIDs = append(bookIDs, b.BookID)
	}
	if err := requireExisting(tx, &catalog.Book{}, bookIDs, "books"); err != nil {
		return err
	}

	childIDs := make([]int64, 0, len(s.ChildSeries))
	for _, c := range s.ChildSeries {
		if err := requireValid("child_series.relation_type", c.RelationType); err != nil {
			return err
		}
		childIDs = append(childIDs, c.ID)
	}
	if err := requireNotSelf(id, childIDs, "child_series"); err != nil {
		return err
	}
	return requireExisting(tx, &catalog.Series{}, childIDs, "child_series")
}

func (seriesFamily) saveRow(tx *gorm.DB, id int64, d catalog.Data) (int64, error) {
	s := d.(catalog.SeriesData)
	row := catalog.Series{
		ID:                id,
		Description:       s.Description,
		BookwalkerID:      s.BookwalkerID,
		PublicationStatus: s.PublicationStatus,
		Hidden:            s.Hidden,
		Locked:            s.Locked,
	}
	if err := saveOrCreate(tx, &row, id); err != nil {
		return 0, err
	}
	return row.ID, nil
}

func (seriesFamily) replaceChildren(tx *gorm.DB, id int64, d catalog.Data) (catalog.Data, error) {
	s := d.(catalog.SeriesData)

	if err := tx.Where("series_id = ?", id).Delete(&catalog.SeriesTitle{}).Error; err != nil {
		return nil, err
	}
	titles := make([]catalog.SeriesTitle, 0, len(s.Titles))
	for _, t := range s.Titles {
		titles = append(titles, catalog.SeriesTitle{SeriesID: id, Lang: t.Lang, Official: t.Official, Title: t.Title, Romaji: t.Romaji})
	}
	if err := createAll(tx, titles, ScopeTitles, "insert series titles"); err != nil {
		return nil, err
	}

	if err := tx.Where("series_id = ?", id).Delete(&catalog.SeriesBook{}).Error; err != nil {
		return nil, err
	}
	books := make([]catalog.SeriesBook, 0, len(s.Books))
	for _, b := range s.Books {
		books = append(books, catalog.SeriesBook{SeriesID: id, BookID: b.BookID, SortOrder: b.SortOrder})
	}
	if err := createAll(tx, books, ScopeBooks, "insert series books"); err != nil {
		return nil, err
	}

	// Only relations where this series is the parent belong to it.
	if err := tx.Where("id_parent = ?", id).Delete(&catalog.SeriesRelation{}).Error; err != nil {
		return nil, err
	}
	rels := make([]catalog.SeriesRelation, 0, len(s.ChildSeries))
	for _, c := range s.ChildSeries {
		rels = append(rels, catalog.SeriesRelation{IDParent: id, IDChild: c.ID, RelationType: c.RelationType})
	}
	if err := createAll(tx, rels, ScopeRelations, "insert series relations"); err != nil {
		return nil, err
	}
	return s, nil
}

func (seriesFamily) writeHistory(tx *gorm.DB, changeID int64, d catalog.Data) error {
	s := d.(catalog.SeriesData)
	hist := catalog.SeriesHist{
		ChangeID:          changeID,
		Description:       s.Description,
		BookwalkerID:      s.BookwalkerID,
		PublicationStatus: s.PublicationStatus,
	}
	if err := tx.Create(&hist).Error; err != nil {
		return err
	}

	titles := make([]catalog.SeriesTitleHist, 0, len(s.Titles))
	for _, t := range s.Titles {
		titles = append(titles, catalog.SeriesTitleHist{ChangeID: changeID, Lang: t.Lang, Official: t.Official, Title: t.Title, Romaji: t.Romaji})
	}
	if err := createAll(tx, titles, ScopeTitles, "insert series title history"); err != nil {
		return err
	}

	books := make([]catalog.SeriesBookHist, 0, len(s.Books))
	for _, b := range s.Books {
		books = append(books, catalog.SeriesBookHist{ChangeID: changeID, BookID: b.BookID, SortOrder: b.SortOrder})
	}
	if err := createAll(tx, books, ScopeBooks, "insert series book history"); err != nil {
		return err
	}

	rels := make([]catalog.SeriesRelationHist, 0, len(s.ChildSeries))
	for _, c := range s.ChildSeries {
		rels = append(rels, catalog.SeriesRelationHist{ChangeID: changeID, IDChild: c.ID, RelationType: c.RelationType})
	}
	return createAll(tx, rels, ScopeRelations, "insert series relation history")
}

func (seriesFamily) flags(tx *gorm.DB, id int64) (catalog.Flags, error) {
	return rowFlags(tx, &catalog.Series{}, catalog.KindSeries, id)
}

func (seriesFamily) loadCurrent(tx *gorm.DB, id int64) (catalog.Data, error) {
	var row catalog.Series
	if err := loadRow(tx, &row, catalog.KindSeries, id); err != nil {
		return nil, err
	}
	var titles []catalog.SeriesTitle
	if err := tx.Where("series_id = ?", id).Order("lang").Find(&titles).Error; err != nil {
		return nil, err
	}
	var books []catalog.SeriesBook
	if err := tx.Where("series_id = ?", id).Order("sort_order, book_id").Find(&books).Error; err != nil {
		return nil, err
	}
	var rels []catalog.SeriesRelation
	if err := tx.Where("id_parent = ?", id).Order("id_child").Find(&rels).Error; err != nil {
		return nil, err
	}

	s := catalog.SeriesData{
		Hidden:            row.Hidden,
		Locked:            row.Locked,
		Description:       row.Description,
		BookwalkerID:      row.BookwalkerID,
		PublicationStatus: row.PublicationStatus,
		Titles:            make([]catalog.Title, 0, len(titles)),
		Books:             make([]catalog.SeriesBookRef, 0, len(books)),
		ChildSeries:       make([]catalog.SeriesRelationRef, 0, len(rels)),
	}
	for _, t := range titles {
		s.Titles = append(s.Titles, catalog.Title{Lang: t.Lang, Official: t.Official, Title: t.Title, Romaji: t.Romaji})
	}
	for _, b := range books {
		s.Books = append(s.Books, catalog.SeriesBookRef{BookID: b.BookID, SortOrder: b.SortOrder})
	}
	for _, r := range rels {
		s.ChildSeries = append(s.ChildSeries, catalog.SeriesRelationRef{ID: r.IDChild, RelationType: r.RelationType})
	}
	return s, nil
}

func (seriesFamily) loadHistory(tx *gorm.DB, ch catalog.Change) (catalog.Data, error) {
	var row catalog.SeriesHist
	if err := loadHistRow(tx, &row, catalog.KindSeries, ch.ID); err != nil {
		return nil, err
	}
	var titles []catalog.SeriesTitleHist
	if err := tx.Where("change_id = ?", ch.ID).Order("lang").Find(&titles).Error; err != nil {
		return nil, err
	}
	var books []catalog.SeriesBookHist
	if err := tx.Where("change_id = ?", ch.ID).Order("sort_order, book_id").Find(&books).Error; err != nil {
		return nil, err
	}
	var rels []catalog.SeriesRelationHist
	if err := tx.Where("change_id = ?", ch.ID).Order("id_child").Find(&rels).Error; err != nil {
		return nil, err
	}

	s := catalog.SeriesData{
		Hidden:            ch.Ihid,
		Locked:            ch.Ilock,
		Description:       row.Description,
		BookwalkerID:      row.BookwalkerID,
		PublicationStatus: row.PublicationStatus,
		Titles:            make([]catalog.Title, 0, len(titles)),
		Books:             make([]catalog.SeriesBookRef, 0, len(books)),
		ChildSeries:       make([]catalog.SeriesRelationRef, 0, len(rels)),
	}
	for _, t := range titles {
		s.Titles = append(s.Titles, catalog.Title{Lang: t.Lang, Official: t.Official, Title: t.Title, Romaji: t.Romaji})
	}
	for _, b := range books {
		s.Books = append(s.Books, catalog.SeriesBookRef{BookID: b.BookID, SortOrder: b.SortOrder})
	}
	for _, r := range rels {
		s.ChildSeries = append(s.ChildSeries, catalog.SeriesRelationRef{ID: r.IDChild, RelationType: r.RelationType})
	}
	return s, nil
}
