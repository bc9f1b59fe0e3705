package revision

import (
	"catalog-app/internal/domain/catalog"

	"gorm.io/gorm"
)

type releaseFamily struct{}

func (releaseFamily) kind() catalog.Kind { return catalog.KindRelease }

func (releaseFamily) normalize(d catalog.Data) (catalog.Data, error) {
	r, err := as[catalog.ReleaseData](d)
	if err != nil {
		return nil, err
	}
	if r.Books == nil {
		r.Books = []catalog.ReleaseBookRef{}
	}
	if r.Publishers == nil {
		r.Publishers = []catalog.ReleasePublisherRef{}
	}
	return r, nil
}

func (releaseFamily) validate(tx *gorm.DB, _ int64, d catalog.Data, _ catalog.Language) error {
	r := d.(catalog.ReleaseData)
	if r.Title == "" {
		return &ValidationError{Field: "title", Message: "must not be empty"}
	}
	if err := requireValid("format", r.Format); err != nil {
		return err
	}
	if err := requireValid("lang", r.Lang); err != nil {
		return err
	}
	if !catalog.ValidReleaseDate(r.ReleaseDate) {
		return &ValidationError{Field: "release_date", Message: "must be YYYYMMDD with 99 for unknown parts"}
	}

	bookIDs := make([]int64, 0, len(r.Books))
	for _, b := range r.Books {
		if err := requireValid("books.rtype", b.RType); err != nil {
			return err
		}
		bookIDs = append(bookIDs, b.BookID)
	}
	if err := requireExisting(tx, &catalog.Book{}, bookIDs, "books"); err != nil {
		return err
	}

	pubIDs := make([]int64, 0, len(r.Publishers))
	for _, p := range r.Publishers {
		if err := requireValid("publishers.publisher_type", p.PublisherType); err != nil {
			return err
		}
		pubIDs = append(pubIDs, p.PublisherID)
	}
	return requireExisting(tx, &catalog.Publisher{}, pubIDs, "publishers")
}

func (releaseFamily) saveRow(tx *gorm.DB, id int64, d catalog.Data) (int64, error) {
	r := d.(catalog.ReleaseData)
	row := catalog.Release{
		ID:          id,
		Title:       r.Title,
		Romaji:      r.Romaji,
		Description: r.Description,
		Format:      r.Format,
		Lang:        r.Lang,
		ReleaseDate: r.ReleaseDate,
		Pages:       r.Pages,
		ISBN13:      r.ISBN13,
		Hidden:      r.Hidden,
		Locked:      r.Locked,
	}
	if err := saveOrCreate(tx, &row, id); err != nil {
		return 0, err
	}
	return row.ID, nil
}

func (releaseFamily) replaceChildren(tx *gorm.DB, id int64, d catalog.Data) (catalog.Data, error) {
	r := d.(catalog.ReleaseData)

	if err := tx.Where("release_id = ?", id).Delete(&catalog.ReleaseBook{}).Error; err != nil {
		return nil, err
	}
	books := make([]catalog.ReleaseBook, 0, len(r.Books))
	for _, b := range r.Books {
		books = append(books, catalog.ReleaseBook{ReleaseID: id, BookID: b.BookID, RType: b.RType})
	}
	if err := createAll(tx, books, ScopeBooks, "insert release books"); err != nil {
		return nil, err
	}

	if err := tx.Where("release_id = ?", id).Delete(&catalog.ReleasePublisher{}).Error; err != nil {
		return nil, err
	}
	pubs := make([]catalog.ReleasePublisher, 0, len(r.Publishers))
	for _, p := range r.Publishers {
		pubs = append(pubs, catalog.ReleasePublisher{ReleaseID: id, PublisherID: p.PublisherID, PublisherType: p.PublisherType})
	}
	if err := createAll(tx, pubs, ScopeRelations, "insert release publishers"); err != nil {
		return nil, err
	}
	return r, nil
}

func (releaseFamily) writeHistory(tx *gorm.DB, changeID int64, d catalog.Data) error {
	r := d.(catalog.ReleaseData)
	hist := catalog.ReleaseHist{
		ChangeID:    changeID,
		Title:       r.Title,
		Romaji:      r.Romaji,
		Description: r.Description,
		Format:      r.Format,
		Lang:        r.Lang,
		ReleaseDate: r.ReleaseDate,
		Pages:       r.Pages,
		ISBN13:      r.ISBN13,
	}
	if err := tx.Create(&hist).Error; err != nil {
		return err
	}

	books := make([]catalog.ReleaseBookHist, 0, len(r.Books))
	for _, b := range r.Books {
		books = append(books, catalog.ReleaseBookHist{ChangeID: changeID, BookID: b.BookID, RType: b.RType})
	}
	if err := createAll(tx, books, ScopeBooks, "insert release book history"); err != nil {
		return err
	}

	pubs := make([]catalog.ReleasePublisherHist, 0, len(r.Publishers))
	for _, p := range r.Publishers {
		pubs = append(pubs, catalog.ReleasePublisherHist{ChangeID: changeID, PublisherID: p.PublisherID, PublisherType: p.PublisherType})
	}
	return createAll(tx, pubs, ScopeRelations, "insert release publisher history")
}

func (releaseFamily) flags(tx *gorm.DB, id int64) (catalog.Flags, error) {
	return rowFlags(tx, &catalog.Release{}, catalog.KindRelease, id)
}

func (releaseFamily) loadCurrent(tx *gorm.DB, id int64) (catalog.Data, error) {
	var row catalog.Release
	if err := loadRow(tx, &row, catalog.KindRelease, id); err != nil {
		return nil, err
	}
	var books []catalog.ReleaseBook
	if err := tx.Where("release_id = ?", id).Order("book_id").Find(&books).Error; err != nil {
		return nil, err
	}
	var pubs []catalog.ReleasePublisher
	if err := tx.Where("release_id = ?", id).Order("publisher_id").Find(&pubs).Error; err != nil {
		return nil, err
	}

	r := catalog.ReleaseData{
		Hidden:      row.Hidden,
		Locked:      row.Locked,
		Title:       row.Title,
		Romaji:      row.Romaji,
		Description: row.Description,
		Format:      row.Format,
		Lang:        row.Lang,
		ReleaseDate: row.ReleaseDate,
		Pages:       row.Pages,
		ISBN13:      row.ISBN13,
		Books:       make([]catalog.ReleaseBookRef, 0, len(books)),
		Publishers:  make([]catalog.ReleasePublisherRef, 0, len(pubs)),
	}
	for _, b := range books {
		r.Books = append(r.Books, catalog.ReleaseBookRef{BookID: b.BookID, RType: b.RType})
	}
	for _, p := range pubs {
		r.Publishers = append(r.Publishers, catalog.ReleasePublisherRef{PublisherID: p.PublisherID, PublisherType: p.PublisherType})
	}
	return r, nil
}

func (releaseFamily) loadHistory(tx *gorm.DB, ch catalog.Change) (catalog.Data, error) {
	var row catalog.ReleaseHist
	if err := loadHistRow(tx, &row, catalog.KindRelease, ch.ID); err != nil {
		return nil, err
	}
	var books []catalog.ReleaseBookHist
	if err := tx.Where("change_id = ?", ch.ID).Order("book_id").Find(&books).Error; err != nil {
		return nil, err
	}
	var pubs []catalog.ReleasePublisherHist
	if err := tx.Where("change_id = ?", ch.ID).Order("publisher_id").Find(&pubs).Error; err != nil {
		return nil, err
	}

	r := catalog.ReleaseData{
		Hidden:      ch.Ihid,
		Locked:      ch.Ilock,
		Title:       row.Title,
		Romaji:      row.Romaji,
		Description: row.Description,
		Format:      row.Format,
		Lang:        row.Lang,
		ReleaseDate: row.ReleaseDate,
		Pages:       row.Pages,
		ISBN13:      row.ISBN13,
		Books:       make([]catalog.ReleaseBookRef, 0, len(books)),
		Publishers:  make([]catalog.ReleasePublisherRef, 0, len(pubs)),
	}
	for _, b := range books {
		r.Books = append(r.Books, catalog.ReleaseBookRef{BookID: b.BookID, RType: b.RType})
	}
	for _, p := range pubs {
		r.Publishers = append(r.Publishers, catalog.ReleasePublisherRef{PublisherID: p.PublisherID, PublisherType: p.PublisherType})
	}
	return r, nil
}
