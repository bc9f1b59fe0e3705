package catalog

import "catalog-app/internal/domain/catalog"

// ---------- requests

// RevisionMeta is shared by every write request.
type RevisionMeta struct {
	Comment      string `json:"comment" binding:"required,min=1,max=2000"`
	BaseRevision int    `json:"base_revision" binding:"min=0"`
	Hidden       bool   `json:"hidden"`
	Locked       bool   `json:"locked"`
}

func (m RevisionMeta) meta() RevisionMeta { return m }

type request interface {
	meta() RevisionMeta
	data() catalog.Data
}

func newRequest(kind catalog.Kind) request {
	switch kind {
	case catalog.KindBook:
		return &BookRequest{}
	case catalog.KindSeries:
		return &SeriesRequest{}
	case catalog.KindStaff:
		return &StaffRequest{}
	case catalog.KindPublisher:
		return &PublisherRequest{}
	case catalog.KindRelease:
		return &ReleaseRequest{}
	}
	return nil
}

type TitleInput struct {
	Lang     catalog.Language `json:"lang" binding:"required,enum"`
	Official bool             `json:"official"`
	Title    string           `json:"title" binding:"required,max=2000"`
	Romaji   *string          `json:"romaji" binding:"omitempty,max=2000"`
}

func toTitles(in []TitleInput) []catalog.Title {
	out := make([]catalog.Title, 0, len(in))
	for _, t := range in {
		out = append(out, catalog.Title{Lang: t.Lang, Official: t.Official, Title: t.Title, Romaji: t.Romaji})
	}
	return out
}

type StaffCreditInput struct {
	StaffAliasID int64             `json:"staff_alias_id" binding:"required,gt=0"`
	RoleType     catalog.StaffRole `json:"role_type" binding:"required,enum"`
	Note         string            `json:"note" binding:"max=2000"`
}

// EditionInput.EID is omitted for a new edition.
type EditionInput struct {
	EID   int64              `json:"eid" binding:"min=0"`
	Title string             `json:"title" binding:"required,max=2000"`
	Lang  catalog.Language   `json:"lang" binding:"required,enum"`
	Staff []StaffCreditInput `json:"staff" binding:"max=50,dive"`
}

type BookRequest struct {
	RevisionMeta
	Description   string         `json:"description" binding:"max=10000"`
	DescriptionJa string         `json:"description_ja" binding:"max=10000"`
	Titles        []TitleInput   `json:"titles" binding:"required,min=1,max=50,dive"`
	Editions      []EditionInput `json:"editions" binding:"required,min=1,max=10,dive"`
}

func (r *BookRequest) data() catalog.Data {
	editions := make([]catalog.Edition, 0, len(r.Editions))
	for _, e := range r.Editions {
		staff := make([]catalog.StaffCredit, 0, len(e.Staff))
		for _, s := range e.Staff {
			staff = append(staff, catalog.StaffCredit{StaffAliasID: s.StaffAliasID, RoleType: s.RoleType, Note: s.Note})
		}
		editions = append(editions, catalog.Edition{EID: e.EID, Title: e.Title, Lang: e.Lang, Staff: staff})
	}
	return catalog.BookData{
		Hidden:        r.Hidden,
		Locked:        r.Locked,
		Description:   r.Description,
		DescriptionJa: r.DescriptionJa,
		Titles:        toTitles(r.Titles),
		Editions:      editions,
	}
}

type SeriesBookInput struct {
	BookID    int64 `json:"book_id" binding:"required,gt=0"`
	SortOrder int   `json:"sort_order" binding:"min=0"`
}

type SeriesRelationInput struct {
	ID           int64                 `json:"id" binding:"required,gt=0"`
	RelationType catalog.SeriesRelType `json:"relation_type" binding:"required,enum"`
}

type SeriesRequest struct {
	RevisionMeta
	Description       string                `json:"description" binding:"max=10000"`
	BookwalkerID      *int64                `json:"bookwalker_id" binding:"omitempty,gt=0"`
	PublicationStatus catalog.SeriesStatus  `json:"publication_status" binding:"required,enum"`
	Titles            []TitleInput          `json:"titles" binding:"required,min=1,max=50,dive"`
	Books             []SeriesBookInput     `json:"books" binding:"max=500,dive"`
	ChildSeries       []SeriesRelationInput `json:"child_series" binding:"max=50,dive"`
}

func (r *SeriesRequest) data() catalog.Data {
	books := make([]catalog.SeriesBookRef, 0, len(r.Books))
	for _, b := range r.Books {
		books = append(books, catalog.SeriesBookRef{BookID: b.BookID, SortOrder: b.SortOrder})
	}
	children := make([]catalog.SeriesRelationRef, 0, len(r.ChildSeries))
	for _, c := range r.ChildSeries {
		children = append(children, catalog.SeriesRelationRef{ID: c.ID, RelationType: c.RelationType})
	}
	return catalog.SeriesData{
		Hidden:            r.Hidden,
		Locked:            r.Locked,
		Description:       r.Description,
		BookwalkerID:      r.BookwalkerID,
		PublicationStatus: r.PublicationStatus,
		Titles:            toTitles(r.Titles),
		Books:             books,
		ChildSeries:       children,
	}
}

type AliasInput struct {
	ID        int64   `json:"id" binding:"min=0"`
	Name      string  `json:"name" binding:"required,max=2000"`
	Romaji    *string `json:"romaji" binding:"omitempty,max=2000"`
	MainAlias bool    `json:"main_alias"`
	RefBookID *int64  `json:"ref_book_id" binding:"omitempty,gt=0"`
}

type StaffRequest struct {
	RevisionMeta
	Description  string       `json:"description" binding:"max=10000"`
	BookwalkerID *int64       `json:"bookwalker_id" binding:"omitempty,gt=0"`
	Aliases      []AliasInput `json:"aliases" binding:"required,min=1,max=50,dive"`
}

func (r *StaffRequest) data() catalog.Data {
	aliases := make([]catalog.Alias, 0, len(r.Aliases))
	for _, a := range r.Aliases {
		aliases = append(aliases, catalog.Alias{ID: a.ID, Name: a.Name, Romaji: a.Romaji, MainAlias: a.MainAlias, RefBookID: a.RefBookID})
	}
	return catalog.StaffData{
		Hidden:       r.Hidden,
		Locked:       r.Locked,
		Description:  r.Description,
		BookwalkerID: r.BookwalkerID,
		Aliases:      aliases,
	}
}

type PublisherRelationInput struct {
	ID           int64                    `json:"id" binding:"required,gt=0"`
	RelationType catalog.PublisherRelType `json:"relation_type" binding:"required,enum"`
}

type PublisherRequest struct {
	RevisionMeta
	Name            string                   `json:"name" binding:"required,max=2000"`
	Romaji          *string                  `json:"romaji" binding:"omitempty,max=2000"`
	Description     string                   `json:"description" binding:"max=10000"`
	BookwalkerID    *int64                   `json:"bookwalker_id" binding:"omitempty,gt=0"`
	ChildPublishers []PublisherRelationInput `json:"child_publishers" binding:"max=50,dive"`
}

func (r *PublisherRequest) data() catalog.Data {
	children := make([]catalog.PublisherRelationRef, 0, len(r.ChildPublishers))
	for _, c := range r.ChildPublishers {
		children = append(children, catalog.PublisherRelationRef{ID: c.ID, RelationType: c.RelationType})
	}
	return catalog.PublisherData{
		Hidden:          r.Hidden,
		Locked:          r.Locked,
		Name:            r.Name,
		Romaji:          r.Romaji,
		Description:     r.Description,
		BookwalkerID:    r.BookwalkerID,
		ChildPublishers: children,
	}
}

type ReleaseBookInput struct {
	BookID int64               `json:"book_id" binding:"required,gt=0"`
	RType  catalog.ReleaseType `json:"rtype" binding:"required,enum"`
}

type ReleasePublisherInput struct {
	PublisherID   int64                        `json:"publisher_id" binding:"required,gt=0"`
	PublisherType catalog.ReleasePublisherType `json:"publisher_type" binding:"required,enum"`
}

type ReleaseRequest struct {
	RevisionMeta
	Title       string                  `json:"title" binding:"required,max=2000"`
	Romaji      *string                 `json:"romaji" binding:"omitempty,max=2000"`
	Description string                  `json:"description" binding:"max=10000"`
	Format      catalog.ReleaseFormat   `json:"format" binding:"required,enum"`
	Lang        catalog.Language        `json:"lang" binding:"required,enum"`
	ReleaseDate int                     `json:"release_date" binding:"required,releasedate"`
	Pages       *int                    `json:"pages" binding:"omitempty,gt=0"`
	ISBN13      *string                 `json:"isbn13" binding:"omitempty,len=13,numeric"`
	Books       []ReleaseBookInput      `json:"books" binding:"max=50,dive"`
	Publishers  []ReleasePublisherInput `json:"publishers" binding:"max=50,dive"`
}

func (r *ReleaseRequest) data() catalog.Data {
	books := make([]catalog.ReleaseBookRef, 0, len(r.Books))
	for _, b := range r.Books {
		books = append(books, catalog.ReleaseBookRef{BookID: b.BookID, RType: b.RType})
	}
	pubs := make([]catalog.ReleasePublisherRef, 0, len(r.Publishers))
	for _, p := range r.Publishers {
		pubs = append(pubs, catalog.ReleasePublisherRef{PublisherID: p.PublisherID, PublisherType: p.PublisherType})
	}
	return catalog.ReleaseData{
		Hidden:      r.Hidden,
		Locked:      r.Locked,
		Title:       r.Title,
		Romaji:      r.Romaji,
		Description: r.Description,
		Format:      r.Format,
		Lang:        r.Lang,
		ReleaseDate: r.ReleaseDate,
		Pages:       r.Pages,
		ISBN13:      r.ISBN13,
		Books:       books,
		Publishers:  pubs,
	}
}
