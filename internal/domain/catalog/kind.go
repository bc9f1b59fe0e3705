package catalog

// Kind identifies an entity family. It is stored in change.item_name.
type Kind string

const (
	KindBook      Kind = "book"
	KindSeries    Kind = "series"
	KindStaff     Kind = "staff"
	KindPublisher Kind = "publisher"
	KindRelease   Kind = "release"
)

var Kinds = []Kind{KindBook, KindSeries, KindStaff, KindPublisher, KindRelease}

func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

func (k Kind) Valid() bool {
	_, ok := ParseKind(string(k))
	return ok
}
