package trend

import (
	"regexp"
	"strings"
)

// categoryRules is the ordered keyword table for categorization. The order
// is a tie-break contract: the first rule whose keyword appears in the text
// wins, so a text mentioning both "AI" and "startup" lands in technology.
// Do not reorder without changing that contract.
var categoryRules = []struct {
	category Category
	keywords []string
}{
	{CategoryTechnology, []string{
		"artificial intelligence", " ai ", "machine learning", "software",
		"programming", "developer", "tech", "computer", "robot", "crypto",
		"blockchain", "smartphone", "gadget", "cybersecurity", "internet",
		"startup tech", "chip", "semiconductor", "cloud computing",
	}},
	{CategoryBusiness, []string{
		"startup", "economy", "market", "stock", "invest", "finance",
		"company", "business", "revenue", "earnings", "ipo", "merger",
		"acquisition", "trade", "inflation",
	}},
	{CategorySocial, []string{
		"community", "society", "culture", "election", "protest", "policy",
		"government", "education", "social media", "viral", "influencer",
	}},
	{CategoryEntertainment, []string{
		"movie", "film", "music", "celebrity", "concert", "festival",
		"gaming", "streaming", "netflix", "entertainment", "tv show",
	}},
	{CategoryScience, []string{
		"science", "research", "study finds", "climate", "space", "nasa",
		"physics", "biology", "medicine", "vaccine", "discovery",
	}},
}

// tagVocabulary is the fixed keyword set scanned for tag extraction.
// Matches come back in vocabulary order, not frequency order.
var tagVocabulary = []string{
	" ai ", "machine learning", "llm", "chatgpt", "openai",
	"crypto", "bitcoin", "blockchain", "web3",
	"startup", "funding", "ipo", "acquisition",
	"cloud", "security", "privacy", "open source",
	"iphone", "android", "apple", "google", "microsoft", "meta",
	"stocks", "economy", "inflation", "recession",
	"climate", "energy", "space", "health",
	"gaming", "streaming", "social media", "viral",
}

var (
	hashtagRe = regexp.MustCompile(`#(\w+)`)
	mentionRe = regexp.MustCompile(`@(\w+)`)
)

// Categorize buckets free text into a category by first-match-wins lexical
// containment over the ordered keyword table. Empty or non-matching text
// yields CategoryGeneral, never an error.
func Categorize(text string) Category {
	if text == "" {
		return CategoryGeneral
	}
	// Pad so boundary-sensitive keywords like " ai " can match at the edges.
	lower := " " + strings.ToLower(text) + " "

	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return CategoryGeneral
}

// ExtractTags scans free text against the fixed tag vocabulary and returns
// at most five matches, in vocabulary order.
func ExtractTags(text string) []string {
	if text == "" {
		return nil
	}
	// Same edge padding as Categorize, for keywords like " ai ".
	lower := " " + strings.ToLower(text) + " "

	var tags []string
	for _, kw := range tagVocabulary {
		if strings.Contains(lower, kw) {
			tags = append(tags, strings.TrimSpace(kw))
			if len(tags) == 5 {
				break
			}
		}
	}
	return tags
}

// ExtractHashtags pulls #word tokens out of raw social text, lower-cased
// and without the marker. Unlimited.
func ExtractHashtags(text string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, m := range hashtagRe.FindAllStringSubmatch(text, -1) {
		tag := strings.ToLower(m[1])
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	return tags
}

// ExtractMentions pulls @word tokens out of raw social text, lower-cased
// and without the marker, capped at five.
func ExtractMentions(text string) []string {
	var mentions []string
	seen := make(map[string]bool)
	for _, m := range mentionRe.FindAllStringSubmatch(text, -1) {
		mention := strings.ToLower(m[1])
		if seen[mention] {
			continue
		}
		seen[mention] = true
		mentions = append(mentions, mention)
		if len(mentions) == 5 {
			break
		}
	}
	return mentions
}
