package trend

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestScoreBounds(t *testing.T) {
	s := NewScorer(Weights{}, 0, 0, 0)

	cases := []Candidate{
		{Timestamp: testNow},
		{Timestamp: testNow.Add(-1000 * time.Hour)},
		{Timestamp: testNow.Add(48 * time.Hour)}, // future
		{Timestamp: testNow, Metrics: Metrics{Views: 100_000_000, Likes: 50_000_000, Shares: 10_000_000, Comments: 5_000_000, Reposts: 1_000_000}},
		{Timestamp: testNow, Metrics: Metrics{Likes: 10, Comments: 500, Shares: 500}},
	}

	for _, c := range cases {
		sc := s.Score(&c, testNow)
		assert.GreaterOrEqual(t, sc.Recency, 0.0)
		assert.LessOrEqual(t, sc.Recency, 1.0)
		assert.GreaterOrEqual(t, sc.Popularity, 0.0)
		assert.LessOrEqual(t, sc.Popularity, 1.0)
		assert.GreaterOrEqual(t, sc.Engagement, 0.0)
		assert.LessOrEqual(t, sc.Engagement, 1.0)
		assert.GreaterOrEqual(t, sc.Overall, 0.0)
		assert.LessOrEqual(t, sc.Overall, 1.0)
	}
}

func TestOverallIsWeightedCombination(t *testing.T) {
	s := NewScorer(DefaultWeights(), 24, 100, 6)

	c := Candidate{
		Timestamp: testNow.Add(-7 * time.Hour),
		Metrics:   Metrics{Views: 12345, Likes: 678, Shares: 90, Comments: 12},
	}
	sc := s.Score(&c, testNow)

	want := 0.4*sc.Recency + 0.4*sc.Popularity + 0.2*sc.Engagement
	assert.InDelta(t, want, sc.Overall, 1e-12)
}

func TestRecencyDecay(t *testing.T) {
	s := NewScorer(Weights{}, 0, 0, 0)

	fresh := Candidate{Timestamp: testNow}
	assert.InDelta(t, 1.0, s.Score(&fresh, testNow).Recency, 1e-9)

	day := Candidate{Timestamp: testNow.Add(-24 * time.Hour)}
	assert.InDelta(t, math.Exp(-1), s.Score(&day, testNow).Recency, 1e-9)

	twoDays := Candidate{Timestamp: testNow.Add(-48 * time.Hour)}
	assert.InDelta(t, math.Exp(-2), s.Score(&twoDays, testNow).Recency, 1e-9)
}

func TestFutureTimestampClampsToFullRecency(t *testing.T) {
	s := NewScorer(Weights{}, 0, 0, 0)
	c := Candidate{Timestamp: testNow.Add(6 * time.Hour)}
	assert.Equal(t, 1.0, s.Score(&c, testNow).Recency)
}

func TestZeroMetricsScoreZero(t *testing.T) {
	s := NewScorer(Weights{}, 0, 0, 0)
	c := Candidate{Timestamp: testNow.Add(-3 * time.Hour)}
	sc := s.Score(&c, testNow)

	assert.Equal(t, 0.0, sc.Popularity)
	assert.Equal(t, 0.0, sc.Engagement)
	assert.Greater(t, sc.Overall, 0.0) // recency alone still counts
}

func TestEngagementZeroImpressions(t *testing.T) {
	s := NewScorer(Weights{}, 0, 0, 0)
	// Comments without any views or likes must not divide by zero.
	c := Candidate{Timestamp: testNow, Metrics: Metrics{Comments: 50, Shares: 10}}
	assert.Equal(t, 0.0, s.Score(&c, testNow).Engagement)
}

func TestViralCandidateScenario(t *testing.T) {
	s := NewScorer(Weights{}, 0, 0, 0)

	c := Candidate{
		Timestamp: testNow,
		Metrics:   Metrics{Likes: 1000, Shares: 200, Comments: 50, Views: 500000},
	}
	sc := s.Score(&c, testNow)

	// total = 1000 + 200 + 50 + 500000/100 = 6250
	wantPop := math.Log10(6251) / 6
	assert.InDelta(t, wantPop, sc.Popularity, 1e-9)
	assert.InDelta(t, 1.0, sc.Recency, 1e-9)
	// (200+50) / max(500000, 1000) * 100 = 0.05
	assert.InDelta(t, 0.05, sc.Engagement, 1e-9)
	assert.InDelta(t, 0.4*1.0+0.4*wantPop+0.2*0.05, sc.Overall, 1e-9)
	assert.InDelta(t, 0.665, sc.Overall, 0.005)
}

func TestZeroWeightsFallBackToDefaults(t *testing.T) {
	a := NewScorer(Weights{}, 0, 0, 0)
	b := NewScorer(DefaultWeights(), 24, 100, 6)

	c := Candidate{
		Timestamp: testNow.Add(-5 * time.Hour),
		Metrics:   Metrics{Views: 9999, Likes: 321, Comments: 12},
	}
	assert.Equal(t, b.Score(&c, testNow), a.Score(&c, testNow))
}

func TestScoreAll(t *testing.T) {
	s := NewScorer(Weights{}, 0, 0, 0)
	cs := []Candidate{
		{Timestamp: testNow, Metrics: Metrics{Likes: 10}},
		{Timestamp: testNow.Add(-12 * time.Hour)},
	}
	s.ScoreAll(cs, testNow)

	for _, c := range cs {
		assert.Equal(t, s.Score(&c, testNow), c.Score)
	}
}
