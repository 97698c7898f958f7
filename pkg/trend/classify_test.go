package trend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorizeFirstMatchWins(t *testing.T) {
	// Contains both a technology keyword ("AI") and a business keyword
	// ("startup"); technology is checked first and wins.
	assert.Equal(t, CategoryTechnology, Categorize("AI startup raises $50M to build coding agents"))
}

func TestCategorize(t *testing.T) {
	cases := []struct {
		text string
		want Category
	}{
		{"New machine learning framework released", CategoryTechnology},
		{"Startup secures funding despite volatile stock conditions", CategoryBusiness},
		{"Election results spark protest downtown", CategorySocial},
		{"The new movie broke box office records", CategoryEntertainment},
		{"New research on climate published by NASA", CategoryScience},
		{"Local bakery wins annual pie contest", CategoryGeneral},
		{"", CategoryGeneral},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Categorize(tc.text), "text: %q", tc.text)
	}
}

func TestCategorizeWordBoundary(t *testing.T) {
	// "rain" and "said" contain the letters "ai" but are not AI content.
	assert.Equal(t, CategoryGeneral, Categorize("Heavy rain expected, the mayor said"))
}

func TestExtractTagsVocabularyOrder(t *testing.T) {
	tags := ExtractTags("Bitcoin falls as crypto market wobbles; AI stocks rally")
	// Matches come back in vocabulary order, not text order.
	assert.Equal(t, []string{"ai", "crypto", "bitcoin", "stocks"}, tags)
}

func TestExtractTagsCap(t *testing.T) {
	text := "AI and machine learning power this LLM; ChatGPT by OpenAI beats crypto and bitcoin"
	tags := ExtractTags(text)
	assert.Len(t, tags, 5)
	assert.Equal(t, []string{"ai", "machine learning", "llm", "chatgpt", "openai"}, tags)
}

func TestExtractTagsEmpty(t *testing.T) {
	assert.Empty(t, ExtractTags(""))
	assert.Empty(t, ExtractTags("nothing relevant here"))
}

func TestExtractHashtags(t *testing.T) {
	tags := ExtractHashtags("Big news! #AI #Golang #ai #Tech1 #more #and #even #more")
	// Lower-cased, deduplicated, unlimited.
	assert.Equal(t, []string{"ai", "golang", "tech1", "more", "and", "even"}, tags)
}

func TestExtractMentionsCapped(t *testing.T) {
	mentions := ExtractMentions("cc @Alice @bob @Carol @dave @Erin @frank @grace")
	assert.Equal(t, []string{"alice", "bob", "carol", "dave", "erin"}, mentions)
}

func TestExtractHashtagsNone(t *testing.T) {
	assert.Empty(t, ExtractHashtags("no tags in this text"))
	assert.Empty(t, ExtractMentions("no mentions either"))
}
