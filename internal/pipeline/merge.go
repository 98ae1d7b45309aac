package pipeline

import (
	"sort"

	"github.com/couchcryptid/meteo-archive-etl/internal/domain"
)

// Merge reduces the per-file tables into the final corpus: records with no
// parseable timestamp are dropped (they cannot be placed in the timeline),
// the rest are sorted by (station, timestamp) ascending. The sort is stable,
// so duplicate (station, timestamp) pairs across files are both kept,
// adjacent, in the order the files were presented. Nothing is deduplicated.
func Merge(tables []FileTable) []domain.Record {
	var total int
	for _, t := range tables {
		total += len(t.Records)
	}

	corpus := make([]domain.Record, 0, total)
	for _, t := range tables {
		for _, rec := range t.Records {
			if rec.Timestamp == nil {
				continue
			}
			corpus = append(corpus, rec)
		}
	}

	sort.SliceStable(corpus, func(i, j int) bool {
		if corpus[i].Station != corpus[j].Station {
			return corpus[i].Station < corpus[j].Station
		}
		return corpus[i].Timestamp.Before(*corpus[j].Timestamp)
	})
	return corpus
}
