package trend

import "time"

// SourceKind identifies which kind of origin a candidate came from.
type SourceKind string

const (
	KindSocial    SourceKind = "social"
	KindVideo     SourceKind = "video"
	KindWeb       SourceKind = "web"
	KindAggregate SourceKind = "aggregate"
)

// Category is the topical bucket a candidate falls into.
type Category string

const (
	CategoryTechnology    Category = "technology"
	CategoryBusiness      Category = "business"
	CategorySocial        Category = "social"
	CategoryEntertainment Category = "entertainment"
	CategoryScience       Category = "science"
	CategoryGeneral       Category = "general"
)

// AllCategories returns every known category.
func AllCategories() []Category {
	return []Category{
		CategoryTechnology,
		CategoryBusiness,
		CategorySocial,
		CategoryEntertainment,
		CategoryScience,
		CategoryGeneral,
	}
}

// Metrics holds engagement counts for a candidate. Any count the origin
// does not report stays zero; scoring tolerates all-zero metrics.
type Metrics struct {
	Views    int `json:"views"`
	Likes    int `json:"likes"`
	Shares   int `json:"shares"`
	Comments int `json:"comments"`
	Reposts  int `json:"reposts"`
}

// Score is the computed score breakdown. Every component lies in [0,1].
type Score struct {
	Recency    float64 `json:"recency"`
	Popularity float64 `json:"popularity"`
	Engagement float64 `json:"engagement"`
	Overall    float64 `json:"overall"`
}

// Candidate is the unified representation of one trending item from any
// origin. Candidates are plain values built fresh per ranking run; the same
// raw item re-ranked later yields a new Candidate with a recomputed score.
type Candidate struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	SourceLabel string     `json:"source_label"`
	SourceKind  SourceKind `json:"source_kind"`
	URL         string     `json:"url"`
	Timestamp   time.Time  `json:"timestamp"`
	Metrics     Metrics    `json:"metrics"`
	Score       Score      `json:"score"`
	Tags        []string   `json:"tags"`
	Category    Category   `json:"category"`
}

// Age returns how old the candidate is, in hours, relative to now.
// Future timestamps yield a negative age.
func (c *Candidate) Age(now time.Time) float64 {
	return now.Sub(c.Timestamp).Hours()
}
