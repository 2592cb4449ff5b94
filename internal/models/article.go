// Package models defines data structures shared by the validator, adapter and normalizer.
package models

// ProviderSourceRef is the source reference embedded in a provider article.
type ProviderSourceRef struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
}

// ProviderArticle is an article exactly as the upstream provider returns it.
type ProviderArticle struct {
	Source      ProviderSourceRef `json:"source"`
	Author      *string           `json:"author"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	URL         string            `json:"url"`
	URLToImage  *string           `json:"urlToImage"`
	PublishedAt string            `json:"publishedAt"`
	Content     *string           `json:"content"`
}

// ProviderSource is a news source exactly as the upstream provider returns it.
type ProviderSource struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Category    string `json:"category"`
	Language    string `json:"language"`
	Country     string `json:"country"`
}

// Article is the canonical article record returned to clients.
// Description and ImageURL encode as JSON null when absent.
type Article struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	PublishedAt string  `json:"publishedAt"`
	// Category is the lower-cased display name of the originating source,
	// not the topic category that was requested.
	Category string `json:"category"`
}

// Source is the canonical news source record returned to clients.
type Source struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Category    string `json:"category"`
	Language    string `json:"language"`
	Country     string `json:"country"`
}
