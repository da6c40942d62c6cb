/*
Package search implements trademark retrieval: filtering by status, product
classification and date range, free-text matching through the fuzzy gate,
similarity ordering with a bounded re-rank pass, and offset/limit paging.

The pure matching logic lives in pkg/hangul and pkg/fuzzy; this package
wires it to the store and the name index.
*/
package search

import (
	"regexp"
	"strings"

	"github.com/haneulsoft/markserve/pkg/store"
)

// datePattern validates YYYYMMDD filter bounds.
var datePattern = regexp.MustCompile(`^\d{8}$`)

// Params carries one search request. Zero values mean "no filter".
type Params struct {
	Query       string
	Status      string
	ProductCode string
	FromDate    string // YYYYMMDD, inclusive
	ToDate      string // YYYYMMDD, inclusive
	DateField   string // store.DateField*, defaults to application date
	Limit       int
	Offset      int
}

// Normalize trims the query, defaults the date field and clamps paging
// values. maxLimit <= 0 means no cap.
func (p *Params) Normalize(defaultLimit, maxLimit int) {
	p.Query = strings.TrimSpace(p.Query)
	if p.DateField == "" {
		p.DateField = store.DateFieldApplication
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ValidDate reports whether a date filter bound is usable.
func ValidDate(s string) bool {
	return datePattern.MatchString(s)
}

// Result is one page of matches plus the pre-paging total.
type Result struct {
	Records []*store.Trademark
	Total   int
}
