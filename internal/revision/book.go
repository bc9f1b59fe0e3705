package revision

import (
	"fmt"

	"catalog-app/internal/domain/catalog"

	"gorm.io/gorm"
)

type bookFamily struct{}

func (bookFamily) kind() catalog.Kind { return catalog.KindBook }

func (bookFamily) normalize(d catalog.Data) (catalog.Data, error) {
	b, err := as[catalog.BookData](d)
	if err != nil {
		return nil, err
	}
	if b.Titles == nil {
		b.Titles = []catalog.Title{}
	}
	// copy so assigned eids never leak into the caller's slice
	editions := make([]catalog.Edition, len(b.Editions))
	for i, e := range b.Editions {
		if e.Staff == nil {
			e.Staff = []catalog.StaffCredit{}
		}
		editions[i] = e
	}
	b.Editions = editions
	return b, nil
}

func (bookFamily) validate(tx *gorm.DB, id int64, d catalog.Data, canonical catalog.Language) error {
	b := d.(catalog.BookData)
	if err := validateTitles(b.Titles, canonical); err != nil {
		return err
	}

	if n := len(b.Editions); n == 0 || n > catalog.MaxEditions {
		return &ValidationError{Field: "editions", Message: fmt.Sprintf("must have 1 to %d editions", catalog.MaxEditions)}
	}
	if first := b.Editions[0]; first.Title != catalog.OriginalEdition || first.Lang != canonical {
		return &ValidationError{Field: "editions", Message: fmt.Sprintf("the first edition must be %q in %q", catalog.OriginalEdition, canonical)}
	}

	seen := map[int64]struct{}{}
	var eids, aliasIDs []int64
	for _, e := range b.Editions {
		if e.Title == "" {
			return &ValidationError{Field: "editions.title", Message: "must not be empty"}
		}
		if err := requireValid("editions.lang", e.Lang); err != nil {
			return err
		}
		if len(e.Staff) > catalog.MaxEditionStaff {
			return &ValidationError{Field: "editions.staff", Message: fmt.Sprintf("at most %d credits per edition", catalog.MaxEditionStaff)}
		}
		for _, s := range e.Staff {
			if err := requireValid("editions.staff.role_type", s.RoleType); err != nil {
				return err
			}
			aliasIDs = append(aliasIDs, s.StaffAliasID)
		}
		if e.EID == 0 {
			continue
		}
		if _, dup := seen[e.EID]; dup {
			return &ValidationError{Field: "editions.eid", Message: fmt.Sprintf("edition %d listed twice", e.EID)}
		}
		seen[e.EID] = struct{}{}
		eids = append(eids, e.EID)
	}
	if err := requireExisting(tx, &catalog.StaffAlias{}, aliasIDs, "editions.staff"); err != nil {
		return err
	}

	if len(eids) > 0 {
		var owned int64
		err := tx.Model(&catalog.BookEdition{}).
			Where("eid IN ? AND book_id = ?", eids, id).
			Count(&owned).Error
		if err != nil {
			return fmt.Errorf("check edition ownership: %w", err)
		}
		if int(owned) != len(eids) {
			return &ValidationError{Field: "editions.eid", Message: "edition does not belong to this book"}
		}
	}
	return nil
}

func (bookFamily) saveRow(tx *gorm.DB, id int64, d catalog.Data) (int64, error) {
	b := d.(catalog.BookData)
	row := catalog.Book{
		ID:            id,
		Description:   b.Description,
		DescriptionJa: b.DescriptionJa,
		Hidden:        b.Hidden,
		Locked:        b.Locked,
	}
	if err := saveOrCreate(tx, &row, id); err != nil {
		return 0, err
	}
	return row.ID, nil
}

func bookEditionIDs(tx *gorm.DB, bookID int64) *gorm.DB {
	return tx.Model(&catalog.BookEdition{}).Select("eid").Where("book_id = ?", bookID)
}

// replaceChildren keeps eids stable the way staff aliases do: listed editions
// are reinserted with their eid and new ones get a fresh eid.
func (bookFamily) replaceChildren(tx *gorm.DB, id int64, d catalog.Data) (catalog.Data, error) {
	b := d.(catalog.BookData)

	if err := tx.Where("book_id = ?", id).Delete(&catalog.BookTitle{}).Error; err != nil {
		return nil, err
	}
	titles := make([]catalog.BookTitle, 0, len(b.Titles))
	for _, t := range b.Titles {
		titles = append(titles, catalog.BookTitle{BookID: id, Lang: t.Lang, Official: t.Official, Title: t.Title, Romaji: t.Romaji})
	}
	if err := createAll(tx, titles, ScopeTitles, "insert book titles"); err != nil {
		return nil, err
	}

	if err := tx.Where("eid IN (?)", bookEditionIDs(tx, id)).Delete(&catalog.BookStaffAlias{}).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("book_id = ?", id).Delete(&catalog.BookEdition{}).Error; err != nil {
		return nil, err
	}

	var staff []catalog.BookStaffAlias
	for i, e := range b.Editions {
		row := catalog.BookEdition{EID: e.EID, BookID: id, Position: i, Lang: e.Lang, Title: e.Title}
		if err := tx.Create(&row).Error; err != nil {
			return nil, fmt.Errorf("insert book edition: %w", err)
		}
		b.Editions[i].EID = row.EID
		for _, s := range e.Staff {
			staff = append(staff, catalog.BookStaffAlias{EID: row.EID, StaffAliasID: s.StaffAliasID, RoleType: s.RoleType, Note: s.Note})
		}
	}
	if err := createAll(tx, staff, ScopeRelations, "insert book staff"); err != nil {
		return nil, err
	}
	return b, nil
}

func (bookFamily) writeHistory(tx *gorm.DB, changeID int64, d catalog.Data) error {
	b := d.(catalog.BookData)
	hist := catalog.BookHist{ChangeID: changeID, Description: b.Description, DescriptionJa: b.DescriptionJa}
	if err := tx.Create(&hist).Error; err != nil {
		return err
	}

	titles := make([]catalog.BookTitleHist, 0, len(b.Titles))
	for _, t := range b.Titles {
		titles = append(titles, catalog.BookTitleHist{ChangeID: changeID, Lang: t.Lang, Official: t.Official, Title: t.Title, Romaji: t.Romaji})
	}
	if err := createAll(tx, titles, ScopeTitles, "insert book title history"); err != nil {
		return err
	}

	editions := make([]catalog.BookEditionHist, 0, len(b.Editions))
	var staff []catalog.BookStaffAliasHist
	for i, e := range b.Editions {
		editions = append(editions, catalog.BookEditionHist{ChangeID: changeID, EID: e.EID, Position: i, Lang: e.Lang, Title: e.Title})
		for _, s := range e.Staff {
			staff = append(staff, catalog.BookStaffAliasHist{ChangeID: changeID, EID: e.EID, StaffAliasID: s.StaffAliasID, RoleType: s.RoleType, Note: s.Note})
		}
	}
	if err := createAll(tx, editions, ScopeRelations, "insert book edition history"); err != nil {
		return err
	}
	return createAll(tx, staff, ScopeRelations, "insert book staff history")
}

func (bookFamily) flags(tx *gorm.DB, id int64) (catalog.Flags, error) {
	return rowFlags(tx, &catalog.Book{}, catalog.KindBook, id)
}

// groupCredits attaches credits to the edition with the same eid.
func groupCredits(editions []catalog.Edition, eids []int64, credits []catalog.StaffCredit) {
	at := make(map[int64]int, len(editions))
	for i, e := range editions {
		at[e.EID] = i
	}
	for i, c := range credits {
		if j, ok := at[eids[i]]; ok {
			editions[j].Staff = append(editions[j].Staff, c)
		}
	}
}

func (bookFamily) loadCurrent(tx *gorm.DB, id int64) (catalog.Data, error) {
	var row catalog.Book
	if err := loadRow(tx, &row, catalog.KindBook, id); err != nil {
		return nil, err
	}
	var titles []catalog.BookTitle
	if err := tx.Where("book_id = ?", id).Order("lang").Find(&titles).Error; err != nil {
		return nil, err
	}
	var editions []catalog.BookEdition
	if err := tx.Where("book_id = ?", id).Order("position").Find(&editions).Error; err != nil {
		return nil, err
	}
	var staff []catalog.BookStaffAlias
	err := tx.Where("eid IN (?)", bookEditionIDs(tx, id)).
		Order("eid, staff_alias_id, role_type").
		Find(&staff).Error
	if err != nil {
		return nil, err
	}

	b := catalog.BookData{
		Hidden:        row.Hidden,
		Locked:        row.Locked,
		Description:   row.Description,
		DescriptionJa: row.DescriptionJa,
		Titles:        make([]catalog.Title, 0, len(titles)),
		Editions:      make([]catalog.Edition, 0, len(editions)),
	}
	for _, t := range titles {
		b.Titles = append(b.Titles, catalog.Title{Lang: t.Lang, Official: t.Official, Title: t.Title, Romaji: t.Romaji})
	}
	for _, e := range editions {
		b.Editions = append(b.Editions, catalog.Edition{EID: e.EID, Title: e.Title, Lang: e.Lang, Staff: []catalog.StaffCredit{}})
	}
	eids := make([]int64, 0, len(staff))
	credits := make([]catalog.StaffCredit, 0, len(staff))
	for _, s := range staff {
		eids = append(eids, s.EID)
		credits = append(credits, catalog.StaffCredit{StaffAliasID: s.StaffAliasID, RoleType: s.RoleType, Note: s.Note})
	}
	groupCredits(b.Editions, eids, credits)
	return b, nil
}

func (bookFamily) loadHistory(tx *gorm.DB, ch catalog.Change) (catalog.Data, error) {
	var row catalog.BookHist
	if err := loadHistRow(tx, &row, catalog.KindBook, ch.ID); err != nil {
		return nil, err
	}
	var titles []catalog.BookTitleHist
	if err := tx.Where("change_id = ?", ch.ID).Order("lang").Find(&titles).Error; err != nil {
		return nil, err
	}
	var editions []catalog.BookEditionHist
	if err := tx.Where("change_id = ?", ch.ID).Order("position").Find(&editions).Error; err != nil {
		return nil, err
	}
	var staff []catalog.BookStaffAliasHist
	if err := tx.Where("change_id = ?", ch.ID).Order("eid, staff_alias_id, role_type").Find(&staff).Error; err != nil {
		return nil, err
	}

	b := catalog.BookData{
		Hidden:        ch.Ihid,
		Locked:        ch.Ilock,
		Description:   row.Description,
		DescriptionJa: row.DescriptionJa,
		Titles:        make([]catalog.Title, 0, len(titles)),
		Editions:      make([]catalog.Edition, 0, len(editions)),
	}
	for _, t := range titles {
		b.Titles = append(b.Titles, catalog.Title{Lang: t.Lang, Official: t.Official, Title: t.Title, Romaji: t.Romaji})
	}
	for _, e := range editions {
		b.Editions = append(b.Editions, catalog.Edition{EID: e.EID, Title: e.Title, Lang: e.Lang, Staff: []catalog.StaffCredit{}})
	}
	eids := make([]int64, 0, len(staff))
	credits := make([]catalog.StaffCredit, 0, len(staff))
	for _, s := range staff {
		eids = append(eids, s.EID)
		credits = append(credits, catalog.StaffCredit{StaffAliasID: s.StaffAliasID, RoleType: s.RoleType, Note: s.Note})
	}
	groupCredits(b.Editions, eids, credits)
	return b, nil
}
