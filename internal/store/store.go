package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/pulselab/trendpulse/pkg/trend"
)

// Ranking is one persisted ranking run: the ordered candidate IDs plus the
// configuration that produced them.
type Ranking struct {
	ID               int64     `db:"id" json:"id"`
	RanAt            time.Time `db:"ran_at" json:"ran_at"`
	CandidateIDsJSON string    `db:"candidate_ids" json:"-"`
	CandidateIDs     []string  `db:"-" json:"candidate_ids"`
	MaxResults       int       `db:"max_results" json:"max_results"`
	MinScore         float64   `db:"min_score" json:"min_score"`
	TimeWindowHours  float64   `db:"time_window" json:"time_window_hours"`
}

// ListOpts controls candidate listing.
type ListOpts struct {
	Kind  trend.SourceKind
	Since time.Time
	Limit int
}

// Store is the persistence interface.
type Store interface {
	UpsertCandidate(ctx context.Context, c *trend.Candidate) error
	UpsertCandidates(ctx context.Context, cs []trend.Candidate) error
	GetCandidate(ctx context.Context, id string) (*trend.Candidate, error)
	ListCandidates(ctx context.Context, opts ListOpts) ([]trend.Candidate, error)
	CountByKind(ctx context.Context) (map[trend.SourceKind]int, error)

	SaveRanking(ctx context.Context, r *Ranking) error
	LatestRanking(ctx context.Context) (*Ranking, error)

	Close() error
}

// candidateRow flattens a trend.Candidate for sqlx scanning.
type candidateRow struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Content     string    `db:"content"`
	SourceLabel string    `db:"source_label"`
	SourceKind  string    `db:"source_kind"`
	URL         string    `db:"url"`
	Timestamp   time.Time `db:"timestamp"`
	Views       int       `db:"views"`
	Likes       int       `db:"likes"`
	Shares      int       `db:"shares"`
	Comments    int       `db:"comments"`
	Reposts     int       `db:"reposts"`
	Recency     float64   `db:"recency"`
	Popularity  float64   `db:"popularity"`
	Engagement  float64   `db:"engagement"`
	Overall     float64   `db:"overall"`
	TagsJSON    string    `db:"tags"`
	Category    string    `db:"category"`
	CollectedAt time.Time `db:"collected_at"`
}

func (r *candidateRow) toCandidate() trend.Candidate {
	c := trend.Candidate{
		ID:          r.ID,
		Title:       r.Title,
		Content:     r.Content,
		SourceLabel: r.SourceLabel,
		SourceKind:  trend.SourceKind(r.SourceKind),
		URL:         r.URL,
		Timestamp:   r.Timestamp,
		Metrics: trend.Metrics{
			Views:    r.Views,
			Likes:    r.Likes,
			Shares:   r.Shares,
			Comments: r.Comments,
			Reposts:  r.Reposts,
		},
		Score: trend.Score{
			Recency:    r.Recency,
			Popularity: r.Popularity,
			Engagement: r.Engagement,
			Overall:    r.Overall,
		},
		Category: trend.Category(r.Category),
	}
	json.Unmarshal([]byte(r.TagsJSON), &c.Tags)
	return c
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// New opens a SQLite database and runs migrations.
func New(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) UpsertCandidate(ctx context.Context, c *trend.Candidate) error {
	tagsJSON, _ := json.Marshal(c.Tags)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO candidates (id, title, content, source_label, source_kind, url, timestamp,
			views, likes, shares, comments, reposts,
			recency, popularity, engagement, overall,
			tags, category, collected_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			views = excluded.views,
			likes = excluded.likes,
			shares = excluded.shares,
			comments = excluded.comments,
			reposts = excluded.reposts,
			recency = excluded.recency,
			popularity = excluded.popularity,
			engagement = excluded.engagement,
			overall = excluded.overall,
			tags = excluded.tags,
			category = excluded.category,
			collected_at = excluded.collected_at
	`, c.ID, c.Title, c.Content, c.SourceLabel, string(c.SourceKind), c.URL, c.Timestamp,
		c.Metrics.Views, c.Metrics.Likes, c.Metrics.Shares, c.Metrics.Comments, c.Metrics.Reposts,
		c.Score.Recency, c.Score.Popularity, c.Score.Engagement, c.Score.Overall,
		string(tagsJSON), string(c.Category), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert candidate %s: %w", c.ID, err)
	}
	return nil
}

func (s *SQLiteStore) UpsertCandidates(ctx context.Context, cs []trend.Candidate) error {
	for i := range cs {
		if err := s.UpsertCandidate(ctx, &cs[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) GetCandidate(ctx context.Context, id string) (*trend.Candidate, error) {
	var row candidateRow
	if err := s.db.GetContext(ctx, &row, "SELECT * FROM candidates WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("get candidate %s: %w", id, err)
	}
	c := row.toCandidate()
	return &c, nil
}

func (s *SQLiteStore) ListCandidates(ctx context.Context, opts ListOpts) ([]trend.Candidate, error) {
	query := "SELECT * FROM candidates WHERE 1=1"
	var args []any

	if opts.Kind != "" {
		query += " AND source_kind = ?"
		args = append(args, string(opts.Kind))
	}
	if !opts.Since.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, opts.Since)
	}

	query += " ORDER BY overall DESC"

	limit := opts.Limit
	if limit <= 0 {
		limit = 200
	}
	query += " LIMIT ?"
	args = append(args, limit)

	var rows []candidateRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	candidates := make([]trend.Candidate, 0, len(rows))
	for i := range rows {
		candidates = append(candidates, rows[i].toCandidate())
	}
	return candidates, nil
}

func (s *SQLiteStore) CountByKind(ctx context.Context) (map[trend.SourceKind]int, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT source_kind, COUNT(*) as cnt FROM candidates GROUP BY source_kind")
	if err != nil {
		return nil, fmt.Errorf("count candidates by kind: %w", err)
	}
	defer rows.Close()

	counts := make(map[trend.SourceKind]int)
	for rows.Next() {
		var kind string
		var cnt int
		if err := rows.Scan(&kind, &cnt); err != nil {
			return nil, err
		}
		counts[trend.SourceKind(kind)] = cnt
	}
	return counts, nil
}

func (s *SQLiteStore) SaveRanking(ctx context.Context, r *Ranking) error {
	idsJSON, _ := json.Marshal(r.CandidateIDs)
	if r.RanAt.IsZero() {
		r.RanAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO rankings (ran_at, candidate_ids, max_results, min_score, time_window)
		VALUES (?, ?, ?, ?, ?)
	`, r.RanAt, string(idsJSON), r.MaxResults, r.MinScore, r.TimeWindowHours)
	if err != nil {
		return fmt.Errorf("save ranking: %w", err)
	}
	r.ID, _ = res.LastInsertId()
	return nil
}

func (s *SQLiteStore) LatestRanking(ctx context.Context) (*Ranking, error) {
	var r Ranking
	err := s.db.GetContext(ctx, &r, "SELECT * FROM rankings ORDER BY ran_at DESC, id DESC LIMIT 1")
	if err != nil {
		return nil, fmt.Errorf("latest ranking: %w", err)
	}
	json.Unmarshal([]byte(r.CandidateIDsJSON), &r.CandidateIDs)
	return &r, nil
}
