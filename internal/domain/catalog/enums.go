package catalog

// Enum is implemented by every closed value set so request validation can
// check membership without repeating the lists in struct tags.
type Enum interface {
	Valid() bool
}

type Language string

const (
	LangJa     Language = "ja"
	LangEn     Language = "en"
	LangZhHans Language = "zh-Hans"
	LangZhHant Language = "zh-Hant"
	LangKo     Language = "ko"
	LangFr     Language = "fr"
	LangDe     Language = "de"
	LangEs     Language = "es"
	LangIt     Language = "it"
	LangPt     Language = "pt"
	LangRu     Language = "ru"
	LangPl     Language = "pl"
	LangVi     Language = "vi"
	LangTh     Language = "th"
	LangID     Language = "id"
)

var Languages = []Language{
	LangJa, LangEn, LangZhHans, LangZhHant, LangKo, LangFr, LangDe, LangEs,
	LangIt, LangPt, LangRu, LangPl, LangVi, LangTh, LangID,
}

func (l Language) Valid() bool { return contains(Languages, l) }

type ReleaseFormat string

const (
	FormatDigital ReleaseFormat = "digital"
	FormatPrint   ReleaseFormat = "print"
	FormatAudio   ReleaseFormat = "audio"
)

var ReleaseFormats = []ReleaseFormat{FormatDigital, FormatPrint, FormatAudio}

func (f ReleaseFormat) Valid() bool { return contains(ReleaseFormats, f) }

type ReleaseType string

const (
	ReleaseComplete ReleaseType = "complete"
	ReleasePartial  ReleaseType = "partial"
)

var ReleaseTypes = []ReleaseType{ReleaseComplete, ReleasePartial}

func (t ReleaseType) Valid() bool { return contains(ReleaseTypes, t) }

type ReleasePublisherType string

const (
	ReleasePublisherPublisher ReleasePublisherType = "publisher"
	ReleasePublisherImprint   ReleasePublisherType = "imprint"
)

var ReleasePublisherTypes = []ReleasePublisherType{ReleasePublisherPublisher, ReleasePublisherImprint}

func (t ReleasePublisherType) Valid() bool { return contains(ReleasePublisherTypes, t) }

type PublisherRelType string

const (
	PublisherImprint    PublisherRelType = "imprint"
	PublisherSubsidiary PublisherRelType = "subsidiary"
)

var PublisherRelTypes = []PublisherRelType{PublisherImprint, PublisherSubsidiary}

func (t PublisherRelType) Valid() bool { return contains(PublisherRelTypes, t) }

type SeriesRelType string

const (
	SeriesPrequel          SeriesRelType = "prequel"
	SeriesSequel           SeriesRelType = "sequel"
	SeriesSideStory        SeriesRelType = "side story"
	SeriesMainStory        SeriesRelType = "main story"
	SeriesSummary          SeriesRelType = "summary"
	SeriesParentStory      SeriesRelType = "parent story"
	SeriesSpinOff          SeriesRelType = "spin-off"
	SeriesAlternateSetting SeriesRelType = "alternate setting"
	SeriesAlternateVersion SeriesRelType = "alternate version"
	SeriesOther            SeriesRelType = "other"
)

var SeriesRelTypes = []SeriesRelType{
	SeriesPrequel, SeriesSequel, SeriesSideStory, SeriesMainStory, SeriesSummary,
	SeriesParentStory, SeriesSpinOff, SeriesAlternateSetting, SeriesAlternateVersion, SeriesOther,
}

func (t SeriesRelType) Valid() bool { return contains(SeriesRelTypes, t) }

type SeriesStatus string

const (
	StatusOngoing   SeriesStatus = "ongoing"
	StatusCompleted SeriesStatus = "completed"
	StatusHiatus    SeriesStatus = "hiatus"
	StatusStalled   SeriesStatus = "stalled"
	StatusCancelled SeriesStatus = "cancelled"
	StatusUnknown   SeriesStatus = "unknown"
)

var SeriesStatuses = []SeriesStatus{
	StatusOngoing, StatusCompleted, StatusHiatus, StatusStalled, StatusCancelled, StatusUnknown,
}

func (s SeriesStatus) Valid() bool { return contains(SeriesStatuses, s) }

type StaffRole string

const (
	RoleAuthor     StaffRole = "author"
	RoleArtist     StaffRole = "artist"
	RoleEditor     StaffRole = "editor"
	RoleTranslator StaffRole = "translator"
	RoleNarrator   StaffRole = "narrator"
	RoleStaff      StaffRole = "staff"
)

var StaffRoles = []StaffRole{RoleAuthor, RoleArtist, RoleEditor, RoleTranslator, RoleNarrator, RoleStaff}

func (r StaffRole) Valid() bool { return contains(StaffRoles, r) }

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
