package models

import (
	"time"

	"go.mau.fi/util/jsontime"
)

// ArticlesResponse is the canonical body of the search and headlines operations.
type ArticlesResponse struct {
	Articles  []Article          `json:"articles"`
	Timestamp jsontime.UnixMilli `json:"timestamp"`
}

// SourcesResponse is the canonical body of the sources operation.
type SourcesResponse struct {
	Sources   []Source           `json:"sources"`
	Timestamp jsontime.UnixMilli `json:"timestamp"`
}

// NewArticlesResponse builds a response stamped with now.
// A nil list is replaced by an empty one so it encodes as [].
func NewArticlesResponse(articles []Article, now time.Time) *ArticlesResponse {
	if articles == nil {
		articles = []Article{}
	}

	return &ArticlesResponse{Articles: articles, Timestamp: jsontime.UM(now)}
}

// NewSourcesResponse builds a response stamped with now.
func NewSourcesResponse(sources []Source, now time.Time) *SourcesResponse {
	if sources == nil {
		sources = []Source{}
	}

	return &SourcesResponse{Sources: sources, Timestamp: jsontime.UM(now)}
}
