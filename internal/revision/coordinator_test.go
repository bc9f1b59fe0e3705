package revision

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"catalog-app/database"
	"catalog-app/internal/domain/access"
	"catalog-app/internal/domain/catalog"
	"catalog-app/internal/domain/users"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

var (
	admin   = access.Identity{UserID: 1, Role: access.RoleAdmin}
	editor  = access.Identity{UserID: 2, Role: access.RoleEditor}
	editor2 = access.Identity{UserID: 3, Role: access.RoleEditor}
	member  = access.Identity{UserID: 4, Role: access.RoleUser}
	guest   = access.Identity{Role: access.RoleGuest}
)

type CoordinatorSuite struct {
	suite.Suite
	ctx     context.Context
	db      *gorm.DB
	metrics *Metrics
	coord   *Coordinator
}

func TestCoordinatorSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorSuite))
}

func (s *CoordinatorSuite) SetupTest() {
	db, err := database.Open(database.DriverSQLite, ":memory:")
	s.Require().NoError(err)
	s.Require().NoError(database.Migrate(db))

	for _, u := range []users.User{
		{ID: 1, Username: "admin", Role: "admin"},
		{ID: 2, Username: "editor", Role: "editor"},
		{ID: 3, Username: "editor2", Role: "editor"},
		{ID: 4, Username: "member", Role: "user"},
	} {
		s.Require().NoError(db.Create(&u).Error)
	}

	s.ctx = context.Background()
	s.db = db
	s.metrics = NewMetrics(prometheus.NewRegistry())
	s.coord = New(WithMetrics(s.metrics))
}

func ja(title string) catalog.Title {
	return catalog.Title{Lang: catalog.LangJa, Title: title, Official: true}
}

func en(title string) catalog.Title {
	return catalog.Title{Lang: catalog.LangEn, Title: title, Official: true}
}

func original() []catalog.Edition {
	return []catalog.Edition{{Title: catalog.OriginalEdition, Lang: catalog.LangJa}}
}

func credited(credits ...catalog.StaffCredit) []catalog.Edition {
	editions := original()
	editions[0].Staff = credits
	return editions
}

func (s *CoordinatorSuite) submit(user access.Identity, id int64, data catalog.Data) (Result, error) {
	return s.coord.Submit(s.ctx, s.db, Submission{ID: id, Comment: "edit", User: user, Data: data})
}

func (s *CoordinatorSuite) mustSubmit(user access.Identity, id int64, data catalog.Data) Result {
	res, err := s.submit(user, id, data)
	s.Require().NoError(err)
	return res
}

func (s *CoordinatorSuite) newBook(titles ...catalog.Title) int64 {
	return s.mustSubmit(editor, 0, catalog.BookData{Editions: original(), Titles: titles}).ID
}

func (s *CoordinatorSuite) count(model any) int64 {
	var n int64
	s.Require().NoError(s.db.Model(model).Count(&n).Error)
	return n
}

type tableCounts map[string]int64

func (s *CoordinatorSuite) counts() tableCounts {
	out := tableCounts{}
	for _, m := range catalog.Models() {
		out[fmt.Sprintf("%T", m)] = s.count(m)
	}
	return out
}

func (s *CoordinatorSuite) assertLatestMatchesCurrent(kind catalog.Kind, id int64) {
	hist, err := GetHistoryAt(s.ctx, s.db, kind, id, 0)
	s.Require().NoError(err)
	cur, err := Current(s.ctx, s.db, kind, id)
	s.Require().NoError(err)
	s.Equal(cur.Data, hist.Data, "%s %d", kind, id)
	s.Equal(cur.Change.ID, hist.Change.ID)
}

func (s *CoordinatorSuite) TestCreateStartsAtRevisionOne() {
	res := s.mustSubmit(editor, 0, catalog.BookData{Editions: original(), Description: "d", Titles: []catalog.Title{ja("本")}})
	s.NotZero(res.ID)
	s.Equal(1, res.Revision)

	entries, err := ListRevisions(s.ctx, s.db, catalog.KindBook, res.ID)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("editor", entries[0].Username)
	s.Equal("edit", entries[0].Comments)
	s.Equal(int64(2), entries[0].UserID)
}

func (s *CoordinatorSuite) TestLatestHistoryEqualsCurrentForEveryKind() {
	alias := s.mustSubmit(editor, 0, catalog.StaffData{
		Aliases: []catalog.Alias{{Name: "作者", MainAlias: true}},
	})
	staff, err := Current(s.ctx, s.db, catalog.KindStaff, alias.ID)
	s.Require().NoError(err)
	aliasID := staff.Data.(catalog.StaffData).Aliases[0].ID

	romaji := "Hon"
	book := s.mustSubmit(editor, 0, catalog.BookData{
		Titles:   []catalog.Title{{Lang: catalog.LangJa, Title: "本", Romaji: &romaji}, en("Book")},
		Editions: credited(catalog.StaffCredit{StaffAliasID: aliasID, RoleType: catalog.RoleAuthor}),
	})
	child := s.mustSubmit(editor, 0, catalog.SeriesData{PublicationStatus: catalog.StatusOngoing, Titles: []catalog.Title{ja("外伝")}})
	series := s.mustSubmit(editor, 0, catalog.SeriesData{
		PublicationStatus: catalog.StatusOngoing,
		Titles:            []catalog.Title{ja("シリーズ")},
		Books:             []catalog.SeriesBookRef{{BookID: book.ID, SortOrder: 1}},
		ChildSeries:       []catalog.SeriesRelationRef{{ID: child.ID, RelationType: catalog.SeriesSideStory}},
	})
	imprint := s.mustSubmit(editor, 0, catalog.PublisherData{Name: "Imprint"})
	pub := s.mustSubmit(editor, 0, catalog.PublisherData{
		Name:            "Publisher",
		ChildPublishers: []catalog.PublisherRelationRef{{ID: imprint.ID, RelationType: catalog.PublisherImprint}},
	})
	release := s.mustSubmit(editor, 0, catalog.ReleaseData{
		Title:       "Vol. 1",
		Format:      catalog.FormatPrint,
		Lang:        catalog.LangJa,
		ReleaseDate: 20240399,
		Books:       []catalog.ReleaseBookRef{{BookID: book.ID, RType: catalog.ReleaseComplete}},
		Publishers:  []catalog.ReleasePublisherRef{{PublisherID: pub.ID, PublisherType: catalog.ReleasePublisherPublisher}},
	})

	s.assertLatestMatchesCurrent(catalog.KindStaff, alias.ID)
	s.assertLatestMatchesCurrent(catalog.KindBook, book.ID)
	s.assertLatestMatchesCurrent(catalog.KindSeries, series.ID)
	s.assertLatestMatchesCurrent(catalog.KindSeries, child.ID)
	s.assertLatestMatchesCurrent(catalog.KindPublisher, pub.ID)
	s.assertLatestMatchesCurrent(catalog.KindRelease, release.ID)

	// edits that change every sub-collection
	s.mustSubmit(editor, series.ID, catalog.SeriesData{
		PublicationStatus: catalog.StatusCompleted,
		Titles:            []catalog.Title{ja("シリーズ"), en("Series")},
	})
	s.mustSubmit(editor, pub.ID, catalog.PublisherData{Name: "Publisher Inc."})
	s.mustSubmit(editor, release.ID, catalog.ReleaseData{
		Title:       "Vol. 1",
		Format:      catalog.FormatDigital,
		Lang:        catalog.LangJa,
		ReleaseDate: 20240315,
		Books:       []catalog.ReleaseBookRef{{BookID: book.ID, RType: catalog.ReleasePartial}},
	})

	s.assertLatestMatchesCurrent(catalog.KindSeries, series.ID)
	s.assertLatestMatchesCurrent(catalog.KindPublisher, pub.ID)
	s.assertLatestMatchesCurrent(catalog.KindRelease, release.ID)
}

func (s *CoordinatorSuite) TestRevisionsAreGapFree() {
	id := s.newBook(ja("本"))
	for i := 0; i < 4; i++ {
		res := s.mustSubmit(editor, id, catalog.BookData{Editions: original(), Titles: []catalog.Title{ja("本")}})
		s.Equal(i+2, res.Revision)
	}

	entries, err := ListRevisions(s.ctx, s.db, catalog.KindBook, id)
	s.Require().NoError(err)
	s.Require().Len(entries, 5)
	for i, e := range entries {
		s.Equal(5-i, e.Revision)
	}
}

func (s *CoordinatorSuite) TestRoundTripAddsTitleInNewRevisionOnly() {
	id := s.newBook(ja("Book Title"))
	s.mustSubmit(editor, id, catalog.BookData{Editions: original(), Titles: []catalog.Title{ja("Book Title"), en("Book Title EN")}})

	first, err := GetHistoryAt(s.ctx, s.db, catalog.KindBook, id, 1)
	s.Require().NoError(err)
	s.Equal([]catalog.Title{ja("Book Title")}, first.Data.(catalog.BookData).Titles)

	second, err := GetHistoryAt(s.ctx, s.db, catalog.KindBook, id, 2)
	s.Require().NoError(err)
	s.Equal([]catalog.Title{en("Book Title EN"), ja("Book Title")}, second.Data.(catalog.BookData).Titles)

	cur, err := Current(s.ctx, s.db, catalog.KindBook, id)
	s.Require().NoError(err)
	s.Equal(second.Data, cur.Data)
}

func (s *CoordinatorSuite) TestHideBlockedByVisibleSeries() {
	book := s.newBook(ja("本"))
	series := s.mustSubmit(editor, 0, catalog.SeriesData{
		PublicationStatus: catalog.StatusOngoing,
		Titles:            []catalog.Title{ja("シリーズ")},
		Books:             []catalog.SeriesBookRef{{BookID: book}},
	})
	before := s.counts()

	_, err := s.submit(editor, book, catalog.BookData{Editions: original(), Hidden: true, Titles: []catalog.Title{ja("本")}})
	var hasRel *HasRelationsError
	s.Require().ErrorAs(err, &hasRel)
	s.Equal("series_book", hasRel.Relation)
	s.Equal(before, s.counts())

	cur, err := Current(s.ctx, s.db, catalog.KindBook, book)
	s.Require().NoError(err)
	s.False(cur.Data.Flags().Hidden)

	// once the series is hidden the book may be hidden too
	s.mustSubmit(editor, series.ID, catalog.SeriesData{
		Hidden:            true,
		PublicationStatus: catalog.StatusOngoing,
		Titles:            []catalog.Title{ja("シリーズ")},
		Books:             []catalog.SeriesBookRef{{BookID: book}},
	})
	res := s.mustSubmit(editor, book, catalog.BookData{Editions: original(), Hidden: true, Titles: []catalog.Title{ja("本")}})
	s.Equal(2, res.Revision)

	hist, err := GetHistoryAt(s.ctx, s.db, catalog.KindBook, book, 0)
	s.Require().NoError(err)
	s.True(hist.Change.Ihid)
	s.True(hist.Data.Flags().Hidden)
}

func (s *CoordinatorSuite) TestHideBlockedByRelations() {
	staff := s.mustSubmit(editor, 0, catalog.StaffData{Aliases: []catalog.Alias{{Name: "作者", MainAlias: true}}})
	var alias catalog.StaffAlias
	s.Require().NoError(s.db.Where("staff_id = ?", staff.ID).First(&alias).Error)
	book := s.mustSubmit(editor, 0, catalog.BookData{
		Titles:   []catalog.Title{ja("本")},
		Editions: credited(catalog.StaffCredit{StaffAliasID: alias.ID, RoleType: catalog.RoleArtist}),
	})
	pub := s.mustSubmit(editor, 0, catalog.PublisherData{Name: "Publisher"})
	parent := s.mustSubmit(editor, 0, catalog.PublisherData{
		Name:            "Parent",
		ChildPublishers: []catalog.PublisherRelationRef{{ID: pub.ID, RelationType: catalog.PublisherSubsidiary}},
	})
	s.mustSubmit(editor, 0, catalog.ReleaseData{
		Title:       "Vol. 1",
		Format:      catalog.FormatPrint,
		Lang:        catalog.LangJa,
		ReleaseDate: 20240101,
		Books:       []catalog.ReleaseBookRef{{BookID: book.ID, RType: catalog.ReleaseComplete}},
		Publishers:  []catalog.ReleasePublisherRef{{PublisherID: pub.ID, PublisherType: catalog.ReleasePublisherPublisher}},
	})
	imprint := s.mustSubmit(editor, 0, catalog.PublisherData{Name: "Imprint"})
	s.mustSubmit(editor, 0, catalog.PublisherData{
		Name:            "Group",
		ChildPublishers: []catalog.PublisherRelationRef{{ID: imprint.ID, RelationType: catalog.PublisherImprint}},
	})
	childSeries := s.mustSubmit(editor, 0, catalog.SeriesData{PublicationStatus: catalog.StatusOngoing, Titles: []catalog.Title{ja("外伝")}})
	s.mustSubmit(editor, 0, catalog.SeriesData{
		PublicationStatus: catalog.StatusOngoing,
		Titles:            []catalog.Title{ja("本編")},
		ChildSeries:       []catalog.SeriesRelationRef{{ID: childSeries.ID, RelationType: catalog.SeriesSideStory}},
	})

	tests := []struct {
		name     string
		id       int64
		data     catalog.Data
		relation string
	}{
		{"staff credited on visible book", staff.ID, catalog.StaffData{Hidden: true, Aliases: []catalog.Alias{{ID: alias.ID, Name: "作者", MainAlias: true}}}, "book_staff_alias"},
		{"book in visible release", book.ID, catalog.BookData{Editions: original(), Hidden: true, Titles: []catalog.Title{ja("本")}}, "release_book"},
		{"publisher on visible release", pub.ID, catalog.PublisherData{Hidden: true, Name: "Publisher"}, "release_publisher"},
		{"imprint of visible publisher", imprint.ID, catalog.PublisherData{Hidden: true, Name: "Imprint"}, "publisher_relation"},
		{"series with visible parent", childSeries.ID, catalog.SeriesData{Hidden: true, PublicationStatus: catalog.StatusOngoing, Titles: []catalog.Title{ja("外伝")}}, "series_relation"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			before := s.counts()
			_, err := s.submit(editor, tt.id, tt.data)
			var hasRel *HasRelationsError
			s.Require().ErrorAs(err, &hasRel)
			s.Equal(tt.relation, hasRel.Relation)
			s.Equal(before, s.counts())
		})
	}

	// a parent publisher has no incoming relations of its own
	s.mustSubmit(editor, parent.ID, catalog.PublisherData{
		Hidden:          true,
		Name:            "Parent",
		ChildPublishers: []catalog.PublisherRelationRef{{ID: pub.ID, RelationType: catalog.PublisherSubsidiary}},
	})
}

func (s *CoordinatorSuite) TestDuplicateEntriesWriteNothing() {
	book := s.newBook(ja("本"))
	staff := s.mustSubmit(editor, 0, catalog.StaffData{Aliases: []catalog.Alias{{Name: "作者", MainAlias: true}}})
	var alias catalog.StaffAlias
	s.Require().NoError(s.db.Where("staff_id = ?", staff.ID).First(&alias).Error)
	aliasID := alias.ID
	child := s.mustSubmit(editor, 0, catalog.SeriesData{PublicationStatus: catalog.StatusOngoing, Titles: []catalog.Title{ja("外伝")}})

	tests := []struct {
		name  string
		id    int64
		data  catalog.Data
		scope DuplicateScope
	}{
		{"book titles on create", 0, catalog.BookData{Editions: original(), Titles: []catalog.Title{ja("同じ"), ja("同じ")}}, ScopeTitles},
		{"book titles on edit", book, catalog.BookData{Editions: original(), Titles: []catalog.Title{ja("同じ"), ja("同じ")}}, ScopeTitles},
		{"book staff credits", 0, catalog.BookData{
			Titles: []catalog.Title{ja("本")},
			Editions: credited(
				catalog.StaffCredit{StaffAliasID: aliasID, RoleType: catalog.RoleAuthor},
				catalog.StaffCredit{StaffAliasID: aliasID, RoleType: catalog.RoleAuthor},
			),
		}, ScopeRelations},
		{"series books", 0, catalog.SeriesData{
			PublicationStatus: catalog.StatusOngoing,
			Titles:            []catalog.Title{ja("シリーズ")},
			Books:             []catalog.SeriesBookRef{{BookID: book, SortOrder: 1}, {BookID: book, SortOrder: 2}},
		}, ScopeBooks},
		{"child series", 0, catalog.SeriesData{
			PublicationStatus: catalog.StatusOngoing,
			Titles:            []catalog.Title{ja("シリーズ")},
			ChildSeries: []catalog.SeriesRelationRef{
				{ID: child.ID, RelationType: catalog.SeriesSideStory},
				{ID: child.ID, RelationType: catalog.SeriesSequel},
			},
		}, ScopeRelations},
		{"release books", 0, catalog.ReleaseData{
			Title:       "Vol. 1",
			Format:      catalog.FormatPrint,
			Lang:        catalog.LangJa,
			ReleaseDate: 20240101,
			Books:       []catalog.ReleaseBookRef{{BookID: book, RType: catalog.ReleaseComplete}, {BookID: book, RType: catalog.ReleasePartial}},
		}, ScopeBooks},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			before := s.counts()
			_, err := s.submit(editor, tt.id, tt.data)
			var dup *DuplicateEntryError
			s.Require().ErrorAs(err, &dup)
			s.Equal(tt.scope, dup.Scope)
			s.Equal(before, s.counts())
		})
	}
}

func (s *CoordinatorSuite) TestConflictIsRetriedOnce() {
	id := s.newBook(ja("本"))

	fired := false
	s.coord.beforeChange = func(tx *gorm.DB, ch *catalog.Change) error {
		if fired {
			return nil
		}
		fired = true
		return tx.Create(&catalog.Change{ItemID: ch.ItemID, ItemName: ch.ItemName, Revision: ch.Revision, UserID: 3, Comments: "concurrent"}).Error
	}

	res, err := s.submit(editor, id, catalog.BookData{Editions: original(), Titles: []catalog.Title{ja("本"), en("Book")}})
	s.Require().NoError(err)
	s.Equal(2, res.Revision)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.conflicts))

	entries, err := ListRevisions(s.ctx, s.db, catalog.KindBook, id)
	s.Require().NoError(err)
	s.Len(entries, 2)
	s.assertLatestMatchesCurrent(catalog.KindBook, id)
}

func (s *CoordinatorSuite) TestSecondConflictIsStale() {
	id := s.newBook(ja("本"))
	s.coord.beforeChange = func(tx *gorm.DB, ch *catalog.Change) error {
		return tx.Create(&catalog.Change{ItemID: ch.ItemID, ItemName: ch.ItemName, Revision: ch.Revision, UserID: 3, Comments: "concurrent"}).Error
	}
	before := s.counts()

	_, err := s.submit(editor, id, catalog.BookData{Editions: original(), Titles: []catalog.Title{ja("本"), en("Book")}})
	s.ErrorIs(err, ErrStaleRevision)
	s.Equal(float64(2), testutil.ToFloat64(s.metrics.conflicts))
	s.Equal(before, s.counts())
}

func (s *CoordinatorSuite) TestBaseRevisionMustMatch() {
	id := s.newBook(ja("本"))
	s.mustSubmit(editor, id, catalog.BookData{Editions: original(), Titles: []catalog.Title{ja("本"), en("Book")}})

	_, err := s.coord.Submit(s.ctx, s.db, Submission{
		ID: id, BaseRevision: 1, Comment: "stale", User: editor2,
		Data: catalog.BookData{Editions: original(), Titles: []catalog.Title{ja("本")}},
	})
	s.ErrorIs(err, ErrStaleRevision)

	res, err := s.coord.Submit(s.ctx, s.db, Submission{
		ID: id, BaseRevision: 2, Comment: "fresh", User: editor2,
		Data: catalog.BookData{Editions: original(), Titles: []catalog.Title{ja("本")}},
	})
	s.Require().NoError(err)
	s.Equal(3, res.Revision)
}

func (s *CoordinatorSuite) TestLockedEntityNeedsAdmin() {
	id := s.newBook(ja("本"))
	s.mustSubmit(admin, id, catalog.BookData{Editions: original(), Locked: true, Titles: []catalog.Title{ja("本")}})

	_, err := s.submit(editor, id, catalog.BookData{Editions: original(), Locked: true, Titles: []catalog.Title{ja("本"), en("Book")}})
	s.ErrorIs(err, ErrChangePermission)

	res, err := s.submit(admin, id, catalog.BookData{Editions: original(), Locked: true, Titles: []catalog.Title{ja("本"), en("Book")}})
	s.Require().NoError(err)
	s.Equal(3, res.Revision)

	hist, err := GetHistoryAt(s.ctx, s.db, catalog.KindBook, id, 2)
	s.Require().NoError(err)
	s.True(hist.Change.Ilock)
}

func (s *CoordinatorSuite) TestPermissionGate() {
	id := s.newBook(ja("本"))
	book := catalog.BookData{Editions: original(), Titles: []catalog.Title{ja("本")}}

	_, err := s.submit(guest, 0, book)
	s.ErrorIs(err, ErrChangePermission)
	_, err = s.submit(member, 0, book)
	s.ErrorIs(err, ErrChangePermission)
	_, err = s.submit(member, id, book)
	s.ErrorIs(err, ErrChangePermission)

	_, err = s.submit(editor, 0, catalog.BookData{Editions: original(), Locked: true, Titles: []catalog.Title{ja("本")}})
	s.ErrorIs(err, ErrChangePermission)
	_, err = s.submit(editor, id, catalog.BookData{Editions: original(), Locked: true, Titles: []catalog.Title{ja("本")}})
	s.ErrorIs(err, ErrChangePermission)

	s.Equal(int64(1), s.count(&catalog.Book{}))
}

func (s *CoordinatorSuite) TestEditorsRestrictedToOwnEntities() {
	policy := access.DefaultPolicy()
	policy.EditorsEditOthers = false
	s.coord = New(WithPolicy(policy))

	id := s.newBook(ja("本"))
	_, err := s.submit(editor2, id, catalog.BookData{Editions: original(), Titles: []catalog.Title{ja("本")}})
	s.ErrorIs(err, ErrChangePermission)

	s.mustSubmit(editor, id, catalog.BookData{Editions: original(), Titles: []catalog.Title{ja("本")}})
	s.mustSubmit(admin, id, catalog.BookData{Editions: original(), Titles: []catalog.Title{ja("本")}})
}

func (s *CoordinatorSuite) TestMissingEntity() {
	_, err := s.submit(editor, 999, catalog.BookData{Editions: original(), Titles: []catalog.Title{ja("本")}})
	s.ErrorIs(err, ErrNotFound)

	_, err = GetHistoryAt(s.ctx, s.db, catalog.KindBook, 999, 0)
	s.ErrorIs(err, ErrNotFound)

	id := s.newBook(ja("本"))
	_, err = GetHistoryAt(s.ctx, s.db, catalog.KindBook, id, 2)
	s.ErrorIs(err, ErrNotFound)

	_, err = ListRevisions(s.ctx, s.db, catalog.KindSeries, id)
	s.ErrorIs(err, ErrNotFound)
}

func (s *CoordinatorSuite) TestValidation() {
	book := s.newBook(ja("本"))
	series := s.mustSubmit(editor, 0, catalog.SeriesData{PublicationStatus: catalog.StatusOngoing, Titles: []catalog.Title{ja("シリーズ")}})

	tests := []struct {
		name  string
		id    int64
		data  catalog.Data
		field string
	}{
		{"no canonical title", 0, catalog.BookData{Editions: original(), Titles: []catalog.Title{en("Book")}}, "titles"},
		{"unknown language", 0, catalog.BookData{Editions: original(), Titles: []catalog.Title{ja("本"), {Lang: "xx", Title: "?"}}}, "titles.lang"},
		{"unknown staff alias", 0, catalog.BookData{Titles: []catalog.Title{ja("本")}, Editions: credited(catalog.StaffCredit{StaffAliasID: 42, RoleType: catalog.RoleAuthor})}, "editions.staff"},
		{"no editions", 0, catalog.BookData{Titles: []catalog.Title{ja("本")}}, "editions"},
		{"first edition not original", 0, catalog.BookData{
			Titles:   []catalog.Title{ja("本")},
			Editions: []catalog.Edition{{Title: "English edition", Lang: catalog.LangEn}},
		}, "editions"},
		{"original edition in wrong language", 0, catalog.BookData{
			Titles:   []catalog.Title{ja("本")},
			Editions: []catalog.Edition{{Title: catalog.OriginalEdition, Lang: catalog.LangEn}},
		}, "editions"},
		{"eleven editions", 0, catalog.BookData{Titles: []catalog.Title{ja("本")}, Editions: make([]catalog.Edition, 11)}, "editions"},
		{"foreign edition id", book, catalog.BookData{
			Titles:   []catalog.Title{ja("本")},
			Editions: []catalog.Edition{{EID: 999, Title: catalog.OriginalEdition, Lang: catalog.LangJa}},
		}, "editions.eid"},
		{"two main aliases", 0, catalog.StaffData{Aliases: []catalog.Alias{{Name: "a", MainAlias: true}, {Name: "b", MainAlias: true}}}, "aliases"},
		{"no main alias", 0, catalog.StaffData{Aliases: []catalog.Alias{{Name: "a"}}}, "aliases"},
		{"foreign alias id", 0, catalog.StaffData{Aliases: []catalog.Alias{{ID: 7, Name: "a", MainAlias: true}}}, "aliases.id"},
		{"series relates to itself", series.ID, catalog.SeriesData{
			PublicationStatus: catalog.StatusOngoing,
			Titles:            []catalog.Title{ja("シリーズ")},
			ChildSeries:       []catalog.SeriesRelationRef{{ID: series.ID, RelationType: catalog.SeriesSequel}},
		}, "child_series"},
		{"unknown series book", 0, catalog.SeriesData{
			PublicationStatus: catalog.StatusOngoing,
			Titles:            []catalog.Title{ja("シリーズ")},
			Books:             []catalog.SeriesBookRef{{BookID: book + 100}},
		}, "books"},
		{"bad release date", 0, catalog.ReleaseData{Title: "Vol. 1", Format: catalog.FormatPrint, Lang: catalog.LangJa, ReleaseDate: 20241301}, "release_date"},
		{"empty publisher name", 0, catalog.PublisherData{}, "name"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			before := s.counts()
			_, err := s.submit(editor, tt.id, tt.data)
			var inv *ValidationError
			s.Require().ErrorAs(err, &inv)
			s.Equal(tt.field, inv.Field)
			s.Equal(before, s.counts())
		})
	}

	_, err := s.coord.Submit(s.ctx, s.db, Submission{User: editor, Data: catalog.BookData{Editions: original(), Titles: []catalog.Title{ja("本")}}})
	var inv *ValidationError
	s.Require().ErrorAs(err, &inv)
	s.Equal("comment", inv.Field)
}

func (s *CoordinatorSuite) TestStaffAliasesKeepIDs() {
	res := s.mustSubmit(editor, 0, catalog.StaffData{Aliases: []catalog.Alias{
		{Name: "本名", MainAlias: true},
		{Name: "ペンネーム"},
	}})
	cur, err := Current(s.ctx, s.db, catalog.KindStaff, res.ID)
	s.Require().NoError(err)
	aliases := cur.Data.(catalog.StaffData).Aliases
	s.Require().Len(aliases, 2)
	main, pen := aliases[0], aliases[1]

	s.mustSubmit(editor, 0, catalog.BookData{
		Titles:   []catalog.Title{ja("本")},
		Editions: credited(catalog.StaffCredit{StaffAliasID: pen.ID, RoleType: catalog.RoleAuthor}),
	})

	// renaming keeps the id and adds a new alias
	s.mustSubmit(editor, res.ID, catalog.StaffData{Aliases: []catalog.Alias{
		{ID: main.ID, Name: "本名", MainAlias: true},
		{ID: pen.ID, Name: "新ペンネーム"},
		{Name: "別名"},
	}})
	cur, err = Current(s.ctx, s.db, catalog.KindStaff, res.ID)
	s.Require().NoError(err)
	aliases = cur.Data.(catalog.StaffData).Aliases
	s.Require().Len(aliases, 3)
	s.Equal(main.ID, aliases[0].ID)
	s.Equal(pen.ID, aliases[1].ID)
	s.Equal("新ペンネーム", aliases[1].Name)
	s.assertLatestMatchesCurrent(catalog.KindStaff, res.ID)

	// the credited alias cannot be dropped
	_, err = s.submit(editor, res.ID, catalog.StaffData{Aliases: []catalog.Alias{{ID: main.ID, Name: "本名", MainAlias: true}}})
	var hasRel *HasRelationsError
	s.Require().ErrorAs(err, &hasRel)
	s.Equal("book_staff_alias", hasRel.Relation)

	// an uncredited one can
	s.mustSubmit(editor, res.ID, catalog.StaffData{Aliases: []catalog.Alias{
		{ID: main.ID, Name: "本名", MainAlias: true},
		{ID: pen.ID, Name: "新ペンネーム"},
	}})

	first, err := GetHistoryAt(s.ctx, s.db, catalog.KindStaff, res.ID, 1)
	s.Require().NoError(err)
	s.Equal("ペンネーム", first.Data.(catalog.StaffData).Aliases[1].Name)
}

func (s *CoordinatorSuite) TestBookEditionsKeepEIDs() {
	staff := s.mustSubmit(editor, 0, catalog.StaffData{Aliases: []catalog.Alias{{Name: "訳者", MainAlias: true}}})
	var alias catalog.StaffAlias
	s.Require().NoError(s.db.Where("staff_id = ?", staff.ID).First(&alias).Error)

	res := s.mustSubmit(editor, 0, catalog.BookData{
		Titles: []catalog.Title{ja("本"), en("Book")},
		Editions: []catalog.Edition{
			{Title: catalog.OriginalEdition, Lang: catalog.LangJa},
			{Title: "English edition", Lang: catalog.LangEn, Staff: []catalog.StaffCredit{
				{StaffAliasID: alias.ID, RoleType: catalog.RoleTranslator},
			}},
		},
	})
	cur, err := Current(s.ctx, s.db, catalog.KindBook, res.ID)
	s.Require().NoError(err)
	editions := cur.Data.(catalog.BookData).Editions
	s.Require().Len(editions, 2)
	orig, eng := editions[0], editions[1]
	s.NotZero(orig.EID)
	s.Empty(orig.Staff)
	s.Equal("English edition", eng.Title)
	s.Equal([]catalog.StaffCredit{{StaffAliasID: alias.ID, RoleType: catalog.RoleTranslator}}, eng.Staff)
	s.assertLatestMatchesCurrent(catalog.KindBook, res.ID)

	// a credit on any edition of a visible book blocks hiding the staff
	_, err = s.submit(editor, staff.ID, catalog.StaffData{Hidden: true, Aliases: []catalog.Alias{{ID: alias.ID, Name: "訳者", MainAlias: true}}})
	var hasRel *HasRelationsError
	s.Require().ErrorAs(err, &hasRel)
	s.Equal("book_staff_alias", hasRel.Relation)

	// kept editions keep their eid, a new one gets a fresh eid
	s.mustSubmit(editor, res.ID, catalog.BookData{
		Titles: []catalog.Title{ja("本"), en("Book")},
		Editions: []catalog.Edition{
			{EID: orig.EID, Title: catalog.OriginalEdition, Lang: catalog.LangJa},
			{EID: eng.EID, Title: "English edition (revised)", Lang: catalog.LangEn, Staff: eng.Staff},
			{Title: "French edition", Lang: catalog.LangFr},
		},
	})
	cur, err = Current(s.ctx, s.db, catalog.KindBook, res.ID)
	s.Require().NoError(err)
	editions = cur.Data.(catalog.BookData).Editions
	s.Require().Len(editions, 3)
	s.Equal(orig.EID, editions[0].EID)
	s.Equal(eng.EID, editions[1].EID)
	s.Equal("English edition (revised)", editions[1].Title)
	s.NotContains([]int64{orig.EID, eng.EID}, editions[2].EID)
	s.assertLatestMatchesCurrent(catalog.KindBook, res.ID)

	// dropping the credited edition frees the staff
	s.mustSubmit(editor, res.ID, catalog.BookData{
		Titles:   []catalog.Title{ja("本"), en("Book")},
		Editions: []catalog.Edition{{EID: orig.EID, Title: catalog.OriginalEdition, Lang: catalog.LangJa}},
	})
	s.Equal(int64(0), s.count(&catalog.BookStaffAlias{}))
	s.mustSubmit(editor, staff.ID, catalog.StaffData{Hidden: true, Aliases: []catalog.Alias{{ID: alias.ID, Name: "訳者", MainAlias: true}}})

	first, err := GetHistoryAt(s.ctx, s.db, catalog.KindBook, res.ID, 1)
	s.Require().NoError(err)
	s.Equal(orig.EID, first.Data.(catalog.BookData).Editions[0].EID)
	s.Equal("English edition", first.Data.(catalog.BookData).Editions[1].Title)
	s.Len(first.Data.(catalog.BookData).Editions[1].Staff, 1)
}

func (s *CoordinatorSuite) TestMetricsRecordOutcomes() {
	s.newBook(ja("本"))
	_, err := s.submit(guest, 0, catalog.BookData{Editions: original(), Titles: []catalog.Title{ja("本")}})
	s.Require().Error(err)

	s.Equal(float64(1), testutil.ToFloat64(s.metrics.submissions.WithLabelValues("book", "ok")))
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.submissions.WithLabelValues("book", "permission")))
}

func (s *CoordinatorSuite) TestPointerPayloadsAccepted() {
	res, err := s.submit(editor, 0, &catalog.PublisherData{Name: "Publisher"})
	s.Require().NoError(err)
	s.assertLatestMatchesCurrent(catalog.KindPublisher, res.ID)

	_, err = s.coord.Submit(s.ctx, s.db, Submission{Comment: "x", User: editor})
	s.Error(err)
}

func TestOutcome(t *testing.T) {
	tests := map[string]error{
		"ok":            nil,
		"permission":    ErrChangePermission,
		"stale":         errors.Join(errors.New("x"), ErrStaleRevision),
		"not_found":     ErrNotFound,
		"has_relations": &HasRelationsError{Relation: "series_book"},
		"duplicate":     &DuplicateEntryError{Scope: ScopeTitles},
		"invalid":       &ValidationError{Field: "titles"},
		"error":         errors.New("disk full"),
	}
	for want, err := range tests {
		if got := outcome(err); got != want {
			t.Errorf("outcome(%v) = %q, want %q", err, got, want)
		}
	}
}
