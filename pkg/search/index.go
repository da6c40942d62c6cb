package search

import (
	"errors"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/haneulsoft/markserve/pkg/hangul"
	"github.com/haneulsoft/markserve/pkg/store"
)

// NameIndex maps lowercased display names and their initials forms to
// application numbers on a patricia trie, giving cheap prefix candidate
// lookups for the CLI and a bounded name pool for the suggester.
type NameIndex struct {
	trie  *patricia.Trie
	names int
}

// NewNameIndex returns an empty index.
func NewNameIndex() *NameIndex {
	return &NameIndex{trie: patricia.NewTrie()}
}

// Add indexes a record under its Korean name, its English name and the
// initials form of the Korean name. Multiple records may share a name.
func (ix *NameIndex) Add(tm *store.Trademark) {
	if tm == nil || tm.ApplicationNumber == "" {
		return
	}
	keys := []string{
		strings.ToLower(tm.ProductName),
		strings.ToLower(tm.ProductNameEng),
	}
	if hangul.ContainsHangul(tm.ProductName) {
		keys = append(keys, hangul.ExtractInitials(tm.ProductName))
	}
	for _, key := range keys {
		if key == "" {
			continue
		}
		ix.insert(key, tm.ApplicationNumber)
	}
}

func (ix *NameIndex) insert(key, appNo string) {
	prefix := patricia.Prefix(key)
	if item := ix.trie.Get(prefix); item != nil {
		nums := item.([]string)
		for _, n := range nums {
			if n == appNo {
				return
			}
		}
		ix.trie.Set(prefix, append(nums, appNo))
		return
	}
	ix.trie.Insert(prefix, []string{appNo})
	ix.names++
}

// Len returns the number of distinct indexed keys.
func (ix *NameIndex) Len() int {
	return ix.names
}

// PrefixCandidates returns the application numbers of records whose
// indexed name starts with prefix (case-folded; an all-initials prefix is
// matched against the indexed initials forms). limit <= 0 means unbounded.
func (ix *NameIndex) PrefixCandidates(prefix string, limit int) []string {
	if prefix == "" {
		return nil
	}
	key := prefix
	if !hangul.IsInitialPattern(prefix) {
		key = strings.ToLower(prefix)
	}

	var out []string
	seen := map[string]bool{}
	err := ix.trie.VisitSubtree(patricia.Prefix(key), func(p patricia.Prefix, item patricia.Item) error {
		for _, appNo := range item.([]string) {
			if seen[appNo] {
				continue
			}
			seen[appNo] = true
			out = append(out, appNo)
			if limit > 0 && len(out) >= limit {
				return errVisitDone
			}
		}
		return nil
	})
	if err != nil && err != errVisitDone {
		log.Errorf("Error visiting trie subtree: %v", err)
	}
	return out
}

// errVisitDone stops a trie walk early once enough candidates are
// collected.
var errVisitDone = errors.New("visit done")

// Names visits every indexed key. Used by the suggester.
func (ix *NameIndex) Names(fn func(name string)) {
	err := ix.trie.Visit(func(p patricia.Prefix, _ patricia.Item) error {
		fn(string(p))
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie: %v", err)
	}
}
