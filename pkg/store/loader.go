package store

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// defaultBatchSize keeps import transactions bounded; bbolt holds the whole
// write transaction in memory until commit.
const defaultBatchSize = 1000

// ImportStats summarizes a bulk load.
type ImportStats struct {
	Loaded  int
	Skipped int
	Elapsed time.Duration
}

// ImportJSON bulk-loads trademark records from a JSON array file, the
// export format the upstream dataset ships in. Records without an
// application number are skipped with a warning; dates are normalized so
// the placeholder string "null" becomes empty.
func (s *Store) ImportJSON(path string) (ImportStats, error) {
	start := time.Now()
	stats := ImportStats{}

	data, err := os.ReadFile(path)
	if err != nil {
		return stats, fmt.Errorf("read %s: %w", path, err)
	}

	var records []*Trademark
	if err := json.Unmarshal(data, &records); err != nil {
		return stats, fmt.Errorf("parse %s: %w", path, err)
	}
	log.Debugf("Parsed %d records from %s", len(records), path)

	batch := make([]*Trademark, 0, defaultBatchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.PutBatch(batch); err != nil {
			return err
		}
		stats.Loaded += len(batch)
		batch = batch[:0]
		return nil
	}

	for _, tm := range records {
		if tm == nil || tm.ApplicationNumber == "" {
			stats.Skipped++
			continue
		}
		normalize(tm)
		batch = append(batch, tm)
		if len(batch) >= defaultBatchSize {
			if err := flush(); err != nil {
				return stats, err
			}
		}
	}
	if err := flush(); err != nil {
		return stats, err
	}

	stats.Elapsed = time.Since(start)
	log.Debugf("Imported %d records (%d skipped) in %v", stats.Loaded, stats.Skipped, stats.Elapsed)
	return stats, nil
}

// normalize clears the literal "null" placeholders the raw export uses for
// missing date strings.
func normalize(tm *Trademark) {
	for _, p := range []*string{
		&tm.ApplicationDate, &tm.PublicationDate,
		&tm.RegistrationPubDate, &tm.InternationalRegDate,
	} {
		if *p == "null" {
			*p = ""
		}
	}
	tm.RegistrationDates = dropNullStrings(tm.RegistrationDates)
	tm.PriorityClaimDates = dropNullStrings(tm.PriorityClaimDates)
}

func dropNullStrings(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s != "" && s != "null" {
			out = append(out, s)
		}
	}
	return out
}
