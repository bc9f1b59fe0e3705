package revision

import (
	"fmt"

	"catalog-app/internal/domain/catalog"

	"gorm.io/gorm"
)

type staffFamily struct{}

func (staffFamily) kind() catalog.Kind { return catalog.KindStaff }

func (staffFamily) normalize(d catalog.Data) (catalog.Data, error) {
	s, err := as[catalog.StaffData](d)
	if err != nil {
		return nil, err
	}
	// copy so assigned alias ids never leak into the caller's slice
	aliases := make([]catalog.Alias, len(s.Aliases))
	copy(aliases, s.Aliases)
	s.Aliases = aliases
	return s, nil
}

func (staffFamily) validate(tx *gorm.DB, id int64, d catalog.Data, _ catalog.Language) error {
	s := d.(catalog.StaffData)

	mains := 0
	seen := map[int64]struct{}{}
	var existing, refBooks []int64
	for _, a := range s.Aliases {
		if a.MainAlias {
			mains++
		}
		if a.RefBookID != nil {
			refBooks = append(refBooks, *a.RefBookID)
		}
		if a.ID == 0 {
			continue
		}
		if _, dup := seen[a.ID]; dup {
			return &ValidationError{Field: "aliases.id", Message: fmt.Sprintf("alias %d listed twice", a.ID)}
		}
		seen[a.ID] = struct{}{}
		existing = append(existing, a.ID)
	}
	if mains != 1 {
		return &ValidationError{Field: "aliases", Message: "exactly one alias must be the main alias"}
	}
	if err := requireExisting(tx, &catalog.Book{}, refBooks, "aliases.ref_book_id"); err != nil {
		return err
	}

	if len(existing) > 0 {
		var owned int64
		err := tx.Model(&catalog.StaffAlias{}).
			Where("id IN ? AND staff_id = ?", existing, id).
			Count(&owned).Error
		if err != nil {
			return fmt.Errorf("check alias ownership: %w", err)
		}
		if int(owned) != len(existing) {
			return &ValidationError{Field: "aliases.id", Message: "alias does not belong to this staff"}
		}
	}
	return nil
}

func (staffFamily) saveRow(tx *gorm.DB, id int64, d catalog.Data) (int64, error) {
	s := d.(catalog.StaffData)
	row := catalog.Staff{
		ID:           id,
		Description:  s.Description,
		BookwalkerID: s.BookwalkerID,
		Hidden:       s.Hidden,
		Locked:       s.Locked,
	}
	if err := saveOrCreate(tx, &row, id); err != nil {
		return 0, err
	}
	return row.ID, nil
}

// replaceChildren keeps alias ids stable: listed aliases are reinserted with
// their id, new ones get a fresh id, and dropping an alias that a book still
// credits is refused.
func (staffFamily) replaceChildren(tx *gorm.DB, id int64, d catalog.Data) (catalog.Data, error) {
	s := d.(catalog.StaffData)

	var current []int64
	if err := tx.Model(&catalog.StaffAlias{}).Where("staff_id = ?", id).Pluck("id", &current).Error; err != nil {
		return nil, err
	}
	kept := map[int64]struct{}{}
	for _, a := range s.Aliases {
		if a.ID != 0 {
			kept[a.ID] = struct{}{}
		}
	}
	var removed []int64
	for _, aid := range current {
		if _, ok := kept[aid]; !ok {
			removed = append(removed, aid)
		}
	}
	if len(removed) > 0 {
		var credits int64
		err := tx.Table("book_staff_alias").
			Joins("JOIN book_edition ON book_edition.eid = book_staff_alias.eid").
			Where("book_staff_alias.staff_alias_id IN ?", removed).
			Count(&credits).Error
		if err != nil {
			return nil, err
		}
		if credits > 0 {
			return nil, &HasRelationsError{Relation: "book_staff_alias"}
		}
	}

	if err := tx.Where("staff_id = ?", id).Delete(&catalog.StaffAlias{}).Error; err != nil {
		return nil, err
	}
	// one insert per alias so rows with and without an id can be mixed
	for i, a := range s.Aliases {
		row := catalog.StaffAlias{
			ID:        a.ID,
			StaffID:   id,
			Name:      a.Name,
			Romaji:    a.Romaji,
			MainAlias: a.MainAlias,
			RefBookID: a.RefBookID,
		}
		if err := tx.Create(&row).Error; err != nil {
			return nil, dupOr(err, ScopeTitles, "insert staff alias")
		}
		s.Aliases[i].ID = row.ID
	}
	return s, nil
}

func (staffFamily) writeHistory(tx *gorm.DB, changeID int64, d catalog.Data) error {
	s := d.(catalog.StaffData)
	hist := catalog.StaffHist{ChangeID: changeID, Description: s.Description, BookwalkerID: s.BookwalkerID}
	if err := tx.Create(&hist).Error; err != nil {
		return err
	}

	aliases := make([]catalog.StaffAliasHist, 0, len(s.Aliases))
	for _, a := range s.Aliases {
		aliases = append(aliases, catalog.StaffAliasHist{
			ChangeID:  changeID,
			AID:       a.ID,
			Name:      a.Name,
			Romaji:    a.Romaji,
			MainAlias: a.MainAlias,
			RefBookID: a.RefBookID,
		})
	}
	return createAll(tx, aliases, ScopeTitles, "insert staff alias history")
}

func (staffFamily) flags(tx *gorm.DB, id int64) (catalog.Flags, error) {
	return rowFlags(tx, &catalog.Staff{}, catalog.KindStaff, id)
}

func (staffFamily) loadCurrent(tx *gorm.DB, id int64) (catalog.Data, error) {
	var row catalog.Staff
	if err := loadRow(tx, &row, catalog.KindStaff, id); err != nil {
		return nil, err
	}
	var aliases []catalog.StaffAlias
	if err := tx.Where("staff_id = ?", id).Order("id").Find(&aliases).Error; err != nil {
		return nil, err
	}

	s := catalog.StaffData{
		Hidden:       row.Hidden,
		Locked:       row.Locked,
		Description:  row.Description,
		BookwalkerID: row.BookwalkerID,
		Aliases:      make([]catalog.Alias, 0, len(aliases)),
	}
	for _, a := range aliases {
		s.Aliases = append(s.Aliases, catalog.Alias{ID: a.ID, Name: a.Name, Romaji: a.Romaji, MainAlias: a.MainAlias, RefBookID: a.RefBookID})
	}
	return s, nil
}

func (staffFamily) loadHistory(tx *gorm.DB, ch catalog.Change) (catalog.Data, error) {
	var row catalog.StaffHist
	if err := loadHistRow(tx, &row, catalog.KindStaff, ch.ID); err != nil {
		return nil, err
	}
	var aliases []catalog.StaffAliasHist
	if err := tx.Where("change_id = ?", ch.ID).Order("aid").Find(&aliases).Error; err != nil {
		return nil, err
	}

	s := catalog.StaffData{
		Hidden:       ch.Ihid,
		Locked:       ch.Ilock,
		Description:  row.Description,
		BookwalkerID: row.BookwalkerID,
		Aliases:      make([]catalog.Alias, 0, len(aliases)),
	}
	for _, a := range aliases {
		s.Aliases = append(s.Aliases, catalog.Alias{ID: a.AID, Name: a.Name, Romaji: a.Romaji, MainAlias: a.MainAlias, RefBookID: a.RefBookID})
	}
	return s, nil
}
