package catalog

// Data is the full editable state of one entity as carried by a submission
// and as reconstructed from the current or history tables.
type Data interface {
	Kind() Kind
	Flags() Flags
}

type Flags struct {
	Hidden bool `json:"hidden"`
	Locked bool `json:"locked"`
}

type Title struct {
	Lang     Language `json:"lang"`
	Official bool     `json:"official"`
	Title    string   `json:"title"`
	Romaji   *string  `json:"romaji,omitempty"`
}

type StaffCredit struct {
	StaffAliasID int64     `json:"staff_alias_id"`
	RoleType     StaffRole `json:"role_type"`
	Note         string    `json:"note"`
}

// OriginalEdition is the required title of a book's first edition.
const OriginalEdition = "Original edition"

const (
	MaxEditions     = 10
	MaxEditionStaff = 50
)

// Edition.EID is zero for an edition that does not exist yet.
type Edition struct {
	EID   int64         `json:"eid"`
	Title string        `json:"title"`
	Lang  Language      `json:"lang"`
	Staff []StaffCredit `json:"staff"`
}

type BookData struct {
	Hidden        bool      `json:"hidden"`
	Locked        bool      `json:"locked"`
	Description   string    `json:"description"`
	DescriptionJa string    `json:"description_ja"`
	Titles        []Title   `json:"titles"`
	Editions      []Edition `json:"editions"`
}

func (BookData) Kind() Kind      { return KindBook }
func (d BookData) Flags() Flags { return Flags{Hidden: d.Hidden, Locked: d.Locked} }

type SeriesBookRef struct {
	BookID    int64 `json:"book_id"`
	SortOrder int   `json:"sort_order"`
}

type SeriesRelationRef struct {
	ID           int64         `json:"id"`
	RelationType SeriesRelType `json:"relation_type"`
}

type SeriesData struct {
	Hidden            bool                `json:"hidden"`
	Locked            bool                `json:"locked"`
	Description       string              `json:"description"`
	BookwalkerID      *int64              `json:"bookwalker_id,omitempty"`
	PublicationStatus SeriesStatus        `json:"publication_status"`
	Titles            []Title             `json:"titles"`
	Books             []SeriesBookRef     `json:"books"`
	ChildSeries       []SeriesRelationRef `json:"child_series"`
}

func (SeriesData) Kind() Kind      { return KindSeries }
func (d SeriesData) Flags() Flags { return Flags{Hidden: d.Hidden, Locked: d.Locked} }

// Alias.ID is zero for an alias that does not exist yet.
type Alias struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Romaji    *string `json:"romaji,omitempty"`
	MainAlias bool    `json:"main_alias"`
	RefBookID *int64  `json:"ref_book_id,omitempty"`
}

type StaffData struct {
	Hidden       bool    `json:"hidden"`
	Locked       bool    `json:"locked"`
	Description  string  `json:"description"`
	BookwalkerID *int64  `json:"bookwalker_id,omitempty"`
	Aliases      []Alias `json:"aliases"`
}

func (StaffData) Kind() Kind      { return KindStaff }
func (d StaffData) Flags() Flags { return Flags{Hidden: d.Hidden, Locked: d.Locked} }

type PublisherRelationRef struct {
	ID           int64            `json:"id"`
	RelationType PublisherRelType `json:"relation_type"`
}

type PublisherData struct {
	Hidden          bool                   `json:"hidden"`
	Locked          bool                   `json:"locked"`
	Name            string                 `json:"name"`
	Romaji          *string                `json:"romaji,omitempty"`
	Description     string                 `json:"description"`
	BookwalkerID    *int64                 `json:"bookwalker_id,omitempty"`
	ChildPublishers []PublisherRelationRef `json:"child_publishers"`
}

func (PublisherData) Kind() Kind      { return KindPublisher }
func (d PublisherData) Flags() Flags { return Flags{Hidden: d.Hidden, Locked: d.Locked} }

type ReleaseBookRef struct {
	BookID int64       `json:"book_id"`
	RType  ReleaseType `json:"rtype"`
}

type ReleasePublisherRef struct {
	PublisherID   int64                `json:"publisher_id"`
	PublisherType ReleasePublisherType `json:"publisher_type"`
}

type ReleaseData struct {
	Hidden      bool                  `json:"hidden"`
	Locked      bool                  `json:"locked"`
	Title       string                `json:"title"`
	Romaji      *string               `json:"romaji,omitempty"`
	Description string                `json:"description"`
	Format      ReleaseFormat         `json:"format"`
	Lang        Language              `json:"lang"`
	ReleaseDate int                   `json:"release_date"`
	Pages       *int                  `json:"pages,omitempty"`
	ISBN13      *string               `json:"isbn13,omitempty"`
	Books       []ReleaseBookRef      `json:"books"`
	Publishers  []ReleasePublisherRef `json:"publishers"`
}

func (ReleaseData) Kind() Kind      { return KindRelease }
func (d ReleaseData) Flags() Flags { return Flags{Hidden: d.Hidden, Locked: d.Locked} }
