package models

// Item is one piece of new content returned for a subscription.
// Fields missing from the API response stay empty.
type Item struct {
	Created     string `json:"created"`
	Source      string `json:"source"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
}
