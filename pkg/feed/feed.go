package feed

// Raw record shapes as delivered by the fetch layer. Timestamps stay
// string-encoded here; the normalizer parses them leniently. Counters on
// Video are string-encoded because that is how the upstream API ships them.

// SocialPost is one post from a social timeline.
type SocialPost struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	URL       string `json:"url"`
	CreatedAt string `json:"created_at"`
	Likes     int    `json:"likes"`
	Reposts   int    `json:"reposts"`
	Replies   int    `json:"replies"`
}

// Video is one video record from a video platform API.
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Channel      string `json:"channel"`
	URL          string `json:"url"`
	PublishedAt  string `json:"published_at"`
	ViewCount    string `json:"view_count"`
	LikeCount    string `json:"like_count"`
	CommentCount string `json:"comment_count"`
}

// Page is one crawled web page. Crawled content carries no native
// engagement metrics and often no publish time.
type Page struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	PublishedAt string `json:"published_at"`
}
