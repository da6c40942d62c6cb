package search

import (
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/haneulsoft/markserve/pkg/fuzzy"
	"github.com/haneulsoft/markserve/pkg/hangul"
	"github.com/haneulsoft/markserve/pkg/store"
)

// Options tunes the engine. Zero values fall back to the defaults below.
type Options struct {
	Threshold    float64 // fuzzy gate cut-off
	RerankLimit  int     // max result-set size for the re-rank pass
	DefaultLimit int     // page size when the request gives none
	MaxLimit     int     // page size cap, 0 for uncapped
}

const (
	defaultRerankLimit  = 10
	defaultPageLimit    = 10
	defaultMaxPageLimit = 64
)

func (o Options) withDefaults() Options {
	if o.Threshold == 0 {
		o.Threshold = fuzzy.DefaultThreshold
	}
	if o.RerankLimit == 0 {
		o.RerankLimit = defaultRerankLimit
	}
	if o.DefaultLimit == 0 {
		o.DefaultLimit = defaultPageLimit
	}
	if o.MaxLimit == 0 {
		o.MaxLimit = defaultMaxPageLimit
	}
	return o
}

// Engine retrieves trademark records from the store, with an in-memory
// name index for prefix candidates and query suggestions.
type Engine struct {
	store *store.Store

	// mu guards index and opts: config reloads and reindexing swap them
	// while searches are in flight.
	mu    sync.RWMutex
	index *NameIndex
	opts  Options
}

// NewEngine builds an engine over a store and indexes the current records.
func NewEngine(s *store.Store, opts Options) (*Engine, error) {
	e := &Engine{store: s, index: NewNameIndex(), opts: opts.withDefaults()}
	if err := e.Reindex(); err != nil {
		return nil, err
	}
	return e, nil
}

// Reindex rebuilds the name index from the store. Call after bulk imports.
func (e *Engine) Reindex() error {
	idx := NewNameIndex()
	err := e.store.ForEach(func(tm *store.Trademark) error {
		idx.Add(tm)
		return nil
	})
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.index = idx
	e.mu.Unlock()
	log.Debugf("Indexed %d names", idx.Len())
	return nil
}

// SetOptions swaps the engine tuning, used by config reloads.
func (e *Engine) SetOptions(opts Options) {
	e.mu.Lock()
	e.opts = opts.withDefaults()
	e.mu.Unlock()
}

func (e *Engine) options() Options {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.opts
}

func (e *Engine) nameIndex() *NameIndex {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.index
}

// IndexedNames returns the number of distinct keys in the name index.
func (e *Engine) IndexedNames() int {
	return e.nameIndex().Len()
}

// scored pairs a record with its best-field similarity for ordering.
type scored struct {
	tm    *store.Trademark
	score float64
}

// Search applies filters and the query gate, orders by similarity and
// returns one page plus the total match count.
func (e *Engine) Search(p Params) (Result, error) {
	opts := e.options()
	p.Normalize(opts.DefaultLimit, opts.MaxLimit)

	var matches []scored
	err := e.store.ForEach(func(tm *store.Trademark) error {
		if !e.passesFilters(tm, p) {
			return nil
		}
		if p.Query != "" {
			ok, score := matchQuery(tm, p.Query, opts.Threshold)
			if !ok {
				return nil
			}
			matches = append(matches, scored{tm, score})
			return nil
		}
		matches = append(matches, scored{tm, 0})
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	if p.Query != "" {
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].score > matches[j].score
		})
	}

	records := make([]*store.Trademark, len(matches))
	for i, m := range matches {
		records[i] = m.tm
	}

	// Secondary refinement over small result sets only; the similarity
	// ordering above is the primary ranking.
	if p.Query != "" && len(records) <= opts.RerankLimit {
		records = fuzzy.RankBySimilarity(records, func(tm *store.Trademark) string {
			if tm == nil {
				return ""
			}
			return tm.DisplayName()
		}, p.Query)
	}

	total := len(records)
	return Result{Records: page(records, p.Offset, p.Limit), Total: total}, nil
}

// page slices with bounds clamping.
func page(records []*store.Trademark, offset, limit int) []*store.Trademark {
	if offset >= len(records) {
		return nil
	}
	end := offset + limit
	if end > len(records) {
		end = len(records)
	}
	return records[offset:end]
}

// passesFilters applies the status, product-code and date-range filters.
func (e *Engine) passesFilters(tm *store.Trademark, p Params) bool {
	if p.Status != "" && tm.RegisterStatus != p.Status {
		return false
	}
	if p.ProductCode != "" && !contains(tm.MainProductCodes, p.ProductCode) {
		return false
	}
	if p.FromDate != "" || p.ToDate != "" {
		from, to := p.FromDate, p.ToDate
		if from != "" && !ValidDate(from) {
			log.Warnf("Ignoring malformed from_date: %q", from)
			from = ""
		}
		if to != "" && !ValidDate(to) {
			log.Warnf("Ignoring malformed to_date: %q", to)
			to = ""
		}
		if from != "" || to != "" {
			if !anyDateInRange(tm.DateByField(p.DateField), from, to) {
				return false
			}
		}
	}
	return true
}

// anyDateInRange reports whether any of the record's dates falls in the
// inclusive [from, to] range. YYYYMMDD compares correctly as a string.
func anyDateInRange(dates []string, from, to string) bool {
	for _, d := range dates {
		if d == "" {
			continue
		}
		if from != "" && d < from {
			continue
		}
		if to != "" && d > to {
			continue
		}
		return true
	}
	return false
}

// matchQuery decides relevance of a record to the query and computes the
// best-field similarity used for ordering.
//
// An all-initials query goes through the initials matcher against the
// Korean name, scored on the name's initials form. Anything else runs the
// fuzzy gate over the Korean name, the English name and the application
// number, scored as the greatest of the three similarities.
func matchQuery(tm *store.Trademark, query string, threshold float64) (bool, float64) {
	if hangul.IsInitialPattern(query) {
		if !hangul.MatchesInitialPattern(tm.ProductName, query) {
			return false, 0
		}
		return true, fuzzy.Similarity(hangul.ExtractInitials(tm.ProductName), query)
	}

	fields := []string{tm.ProductName, tm.ProductNameEng, tm.ApplicationNumber}
	matched := false
	best := 0.0
	for _, f := range fields {
		if f == "" {
			continue
		}
		if fuzzy.Match(f, query, threshold) {
			matched = true
		}
		if s := fuzzy.Similarity(f, query); s > best {
			best = s
		}
	}
	return matched, best
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
