package catalog

import (
	"encoding/json"
	"fmt"
)

// DecodeData unmarshals the JSON form of a Data value of the given kind.
func DecodeData(kind Kind, raw []byte) (Data, error) {
	switch kind {
	case KindBook:
		return decodeAs[BookData](raw)
	case KindSeries:
		return decodeAs[SeriesData](raw)
	case KindStaff:
		return decodeAs[StaffData](raw)
	case KindPublisher:
		return decodeAs[PublisherData](raw)
	case KindRelease:
		return decodeAs[ReleaseData](raw)
	}
	return nil, fmt.Errorf("unknown entity kind %q", kind)
}

func decodeAs[T Data](raw []byte) (Data, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", v.Kind(), err)
	}
	return v, nil
}
