package catalog

// NameKind discriminates the two label shapes an entity can have: staff and
// publishers carry a name, books, series and releases carry a title.
type NameKind int

const (
	NameKindName NameKind = iota
	NameKindTitle
)

type NamePref string

const (
	NamesRomaji NamePref = "romaji"
	NamesNative NamePref = "native"
)

func (p NamePref) Valid() bool { return p == NamesRomaji || p == NamesNative }

type NameDisplay struct {
	Kind   NameKind `json:"kind"`
	Name   string   `json:"name,omitempty"`
	Title  string   `json:"title,omitempty"`
	Romaji *string  `json:"romaji,omitempty"`
}

func NameOf(name string, romaji *string) NameDisplay {
	return NameDisplay{Kind: NameKindName, Name: name, Romaji: romaji}
}

func TitleOf(title string, romaji *string) NameDisplay {
	return NameDisplay{Kind: NameKindTitle, Title: title, Romaji: romaji}
}

// Native returns the untransliterated text of whichever variant is set.
func (n NameDisplay) Native() string {
	switch n.Kind {
	case NameKindTitle:
		return n.Title
	default:
		return n.Name
	}
}

func (n NameDisplay) romaji() string {
	if n.Romaji == nil {
		return ""
	}
	return *n.Romaji
}

// Display picks the primary label for the preference. Romaji falls back to
// the native text when no romanization exists.
func (n NameDisplay) Display(pref NamePref) string {
	switch pref {
	case NamesRomaji:
		if r := n.romaji(); r != "" {
			return r
		}
		return n.Native()
	case NamesNative:
		return n.Native()
	}
	return ""
}

// DisplaySub is the secondary label, empty when it would repeat Display.
func (n NameDisplay) DisplaySub(pref NamePref) string {
	var sub string
	switch pref {
	case NamesRomaji:
		sub = n.Native()
	case NamesNative:
		sub = n.romaji()
	}
	if sub == n.Display(pref) {
		return ""
	}
	return sub
}

// LabelOf builds the label of an entity. Books and series use their title in
// lang, falling back to the first title; staff use the main alias.
func LabelOf(d Data, lang Language) NameDisplay {
	switch v := d.(type) {
	case BookData:
		return titleIn(v.Titles, lang)
	case SeriesData:
		return titleIn(v.Titles, lang)
	case StaffData:
		for _, a := range v.Aliases {
			if a.MainAlias {
				return NameOf(a.Name, a.Romaji)
			}
		}
		return NameDisplay{Kind: NameKindName}
	case PublisherData:
		return NameOf(v.Name, v.Romaji)
	case ReleaseData:
		return TitleOf(v.Title, v.Romaji)
	}
	return NameDisplay{}
}

func titleIn(titles []Title, lang Language) NameDisplay {
	for _, t := range titles {
		if t.Lang == lang {
			return TitleOf(t.Title, t.Romaji)
		}
	}
	if len(titles) > 0 {
		return TitleOf(titles[0].Title, titles[0].Romaji)
	}
	return NameDisplay{Kind: NameKindTitle}
}
