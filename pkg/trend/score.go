package trend

import (
	"math"
	"time"
)

// Weights are the linear combination weights for the overall score.
type Weights struct {
	Recency    float64 `yaml:"recency"`
	Popularity float64 `yaml:"popularity"`
	Engagement float64 `yaml:"engagement"`
}

// DefaultWeights returns the standard 0.4/0.4/0.2 scoring policy.
func DefaultWeights() Weights {
	return Weights{Recency: 0.4, Popularity: 0.4, Engagement: 0.2}
}

// Scorer computes score breakdowns for candidates. It is stateless apart
// from its policy constants and safe for concurrent use.
type Scorer struct {
	weights      Weights
	decayHours   float64
	viewDiscount float64
	logDivisor   float64
}

// NewScorer creates a scorer. Zero-sum weights fall back to DefaultWeights;
// non-positive policy constants fall back to their defaults: a 24h recency
// decay, a 100x view discount, and a log10 divisor of 6 (so roughly one
// million engagement points saturate popularity at 1.0).
func NewScorer(w Weights, decayHours, viewDiscount, logDivisor float64) *Scorer {
	if w.Recency+w.Popularity+w.Engagement == 0 {
		w = DefaultWeights()
	}
	if decayHours <= 0 {
		decayHours = 24
	}
	if viewDiscount <= 0 {
		viewDiscount = 100
	}
	if logDivisor <= 0 {
		logDivisor = 6
	}
	return &Scorer{
		weights:      w,
		decayHours:   decayHours,
		viewDiscount: viewDiscount,
		logDivisor:   logDivisor,
	}
}

// Score computes the score breakdown for a candidate relative to now.
// Pure function of the candidate's timestamp and metrics; all components
// are clamped to [0,1].
func (s *Scorer) Score(c *Candidate, now time.Time) Score {
	recency := s.recency(c.Timestamp, now)
	popularity := s.popularity(c.Metrics)
	engagement := s.engagement(c.Metrics)

	overall := s.weights.Recency*recency +
		s.weights.Popularity*popularity +
		s.weights.Engagement*engagement

	return Score{
		Recency:    recency,
		Popularity: popularity,
		Engagement: engagement,
		Overall:    clamp01(overall),
	}
}

// ScoreAll computes and assigns scores for every candidate in place.
func (s *Scorer) ScoreAll(candidates []Candidate, now time.Time) {
	for i := range candidates {
		candidates[i].Score = s.Score(&candidates[i], now)
	}
}

// recency decays exponentially with age. A future timestamp clamps to age
// zero, so a just-published (or leniently-defaulted) candidate scores 1.
func (s *Scorer) recency(ts, now time.Time) float64 {
	age := now.Sub(ts).Hours()
	if age < 0 {
		age = 0
	}
	return clamp01(math.Exp(-age / s.decayHours))
}

// popularity is log-scaled raw engagement volume. Views are discounted
// because passive views are a weaker signal than active engagement.
func (s *Scorer) popularity(m Metrics) float64 {
	total := float64(m.Likes+m.Shares+m.Comments+m.Reposts) +
		float64(m.Views)/s.viewDiscount
	return clamp01(math.Log10(total+1) / s.logDivisor)
}

// engagement is the ratio of active participation to passive reach,
// favoring content with disproportionate discussion.
func (s *Scorer) engagement(m Metrics) float64 {
	impressions := m.Views
	if m.Likes > impressions {
		impressions = m.Likes
	}
	if impressions == 0 {
		return 0
	}
	active := float64(m.Comments + m.Shares + m.Reposts)
	return clamp01(active / float64(impressions) * 100)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
