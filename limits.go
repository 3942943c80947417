package gridfilter

const (
	// DefaultPerPage is the page size used when neither the request nor the
	// entity configuration provides one.
	DefaultPerPage = 100

	// DefaultSortColumn is the order expression used when neither the request
	// nor the entity configuration provides one.
	DefaultSortColumn = "created_at"
)

func IsNormalizedPerPage(perPage int, fallback int) (int, bool) {
	if perPage <= 0 {
		return fallback, false
	}

	return perPage, true
}

func NormalizePerPageWith(perPage int, fallback int) int {
	ret, _ := IsNormalizedPerPage(perPage, fallback)
	return ret
}

func NormalizePerPage(perPage int) int {
	return NormalizePerPageWith(perPage, DefaultPerPage)
}
