package catalog

// ReleaseDate is stored as YYYYMMDD. 99 in the month or day position means
// that part is unknown, so 20240099 is "some day in 2024" and 20249999 is
// "some time in 2024".
const (
	MinReleaseDate = 10000101
	MaxReleaseDate = 99999999
)

func ValidReleaseDate(d int) bool {
	if d < MinReleaseDate || d > MaxReleaseDate {
		return false
	}
	month := d / 100 % 100
	day := d % 100
	if month != 99 && (month < 1 || month > 12) {
		return false
	}
	if day != 99 && (day < 1 || day > 31) {
		return false
	}
	return true
}
