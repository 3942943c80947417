package gridfilter

import (
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// FilterRequest is the typed form of the inbound grid parameter bag. It is
// transient: build one per call, translate it, discard it.
//
// Start and Limit are pointers to distinguish absent from zero; values that
// failed the lenient numeric parse at the boundary stay absent.
type FilterRequest struct {
	Start   *int
	Limit   *int
	Sort    string
	Dir     string
	Filters []FilterClause
}

// FilterClause is one entry of a filter request. Field is the external field
// name used by the grid widget, not necessarily the storage column name.
type FilterClause struct {
	Field string
	Type  string
	Value string
}

// Matches the grid widget's indexed filter keys:
// filter[0][field], filter[0][data][type], filter[0][data][value].
var _filterKeyPattern = regexp.MustCompile(`^filter\[(\d+)\]\[([a-z]+)\](?:\[([a-z]+)\])?$`)

// ParseRequest normalizes a grid-widget parameter bag into a FilterRequest.
//
// Recognized keys (matched case-insensitively): start, limit, sort, dir and
// the indexed filter triplets. Filters are ordered by their numeric index.
// Unparsable numeric values are treated as absent rather than rejected;
// clauses without a field are dropped. Unknown keys are ignored.
func ParseRequest(params url.Values) FilterRequest {
	var (
		req     FilterRequest
		clauses = make(map[int]*FilterClause)
		indexes []int
	)

	for key, values := range params {
		if len(values) == 0 {
			continue
		}
		value := values[0]

		switch lower := strings.ToLower(key); lower {
		case "start":
			req.Start = parseIntValue(value)
		case "limit":
			req.Limit = parseIntValue(value)
		case "sort":
			req.Sort = value
		case "dir":
			req.Dir = value
		default:
			match := _filterKeyPattern.FindStringSubmatch(lower)
			if match == nil {
				continue
			}

			idx, err := strconv.Atoi(match[1])
			if err != nil {
				continue
			}

			clause := clauses[idx]
			if clause == nil {
				clause = new(FilterClause)
				clauses[idx] = clause
				indexes = append(indexes, idx)
			}

			switch {
			case match[2] == "field" && match[3] == "":
				clause.Field = value
			case match[2] == "data" && match[3] == "type":
				clause.Type = value
			case match[2] == "data" && match[3] == "value":
				clause.Value = value
			}
		}
	}

	sort.Ints(indexes)
	for _, idx := range indexes {
		clause := clauses[idx]
		if clause.Field == "" {
			continue
		}

		req.Filters = append(req.Filters, *clause)
	}

	return req
}

// parseIntValue is the lenient numeric parse applied at the boundary:
// anything that is not an integer counts as absent.
func parseIntValue(raw string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}

	return &n
}
