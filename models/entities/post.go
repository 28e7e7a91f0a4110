package entities

// Post is one fetched content item. It lives only for the duration of a
// single fetch-compare-broadcast cycle.
type Post struct {
	URL     string `json:"url"`
	Content string `json:"content"`
	Title   string `json:"title,omitempty"`
}
