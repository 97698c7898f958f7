package trend

import (
	"sort"
	"time"
)

// Config controls a ranking pass. The zero value means "use defaults";
// out-of-range values are clamped to the defaults as well, so the ranker
// never fails on a bad config.
type Config struct {
	// MaxResults caps the output length. Default 50.
	MaxResults int `yaml:"max_results"`
	// MinScore drops candidates whose overall score falls below it.
	// Default 0.1.
	MinScore float64 `yaml:"min_score"`
	// Categories keeps only candidates in the listed categories.
	// Empty means no category filter.
	Categories []Category `yaml:"categories"`
	// TimeWindowHours drops candidates older than this many hours.
	// Default 24. Independent from the recency decay constant, which
	// happens to share the same default.
	TimeWindowHours float64 `yaml:"time_window_hours"`
}

// DefaultConfig returns the standard ranking configuration.
func DefaultConfig() Config {
	return Config{
		MaxResults:      50,
		MinScore:        0.1,
		TimeWindowHours: 24,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MaxResults <= 0 {
		c.MaxResults = def.MaxResults
	}
	if c.MinScore <= 0 {
		c.MinScore = def.MinScore
	}
	if c.TimeWindowHours <= 0 {
		c.TimeWindowHours = def.TimeWindowHours
	}
	return c
}

// Rank merges user-origin and global-origin candidate sets, filters by
// time window, category, and minimum score, and returns the survivors
// sorted by overall score descending, truncated to MaxResults.
//
// User candidates are not weighted above global ones here; any
// prioritization of personal sources happens upstream through volume.
// Ties keep input order (user list before global), via a stable sort.
// Pure function over its inputs plus now; it never fails, returning an
// empty slice when nothing qualifies.
func Rank(user, global []Candidate, cfg Config, now time.Time) []Candidate {
	cfg = cfg.withDefaults()
	if now.IsZero() {
		now = time.Now().UTC()
	}

	merged := make([]Candidate, 0, len(user)+len(global))
	merged = append(merged, user...)
	merged = append(merged, global...)

	var allowed map[Category]bool
	if len(cfg.Categories) > 0 {
		allowed = make(map[Category]bool, len(cfg.Categories))
		for _, cat := range cfg.Categories {
			allowed[cat] = true
		}
	}

	ranked := merged[:0]
	for _, c := range merged {
		if c.Age(now) > cfg.TimeWindowHours {
			continue
		}
		if allowed != nil && !allowed[c.Category] {
			continue
		}
		if c.Score.Overall < cfg.MinScore {
			continue
		}
		ranked = append(ranked, c)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Overall > ranked[j].Score.Overall
	})

	if len(ranked) > cfg.MaxResults {
		ranked = ranked[:cfg.MaxResults]
	}
	return ranked
}
