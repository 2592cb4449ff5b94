package server

import (
	"net/http"

	"newsgate/internal/models"
	"newsgate/internal/validator"
)

// APIVersion is reported by the documentation endpoint.
const APIVersion = "1.0.0"

type apiDocs struct {
	Info       docsInfo                `json:"info"`
	Servers    []docsServer            `json:"servers"`
	Endpoints  map[string]docsEndpoint `json:"endpoints"`
	Components docsComponents          `json:"components"`
}

type docsInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

type docsServer struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

type docsEndpoint struct {
	Get docsOperation `json:"get"`
}

type docsOperation struct {
	Summary     string                  `json:"summary"`
	Description string                  `json:"description"`
	Parameters  []validator.Param       `json:"parameters"`
	Responses   map[string]docsResponse `json:"responses"`
	Examples    []docsExample           `json:"examples"`
}

type docsResponse struct {
	Description string         `json:"description"`
	Content     map[string]any `json:"content,omitempty"`
}

type docsExample struct {
	Description string `json:"description"`
	Request     string `json:"request"`
}

type docsComponents struct {
	Schemas map[string]docsSchema `json:"schemas"`
}

type docsSchema struct {
	Type       string                  `json:"type"`
	Required   []string                `json:"required"`
	Properties map[string]docsProperty `json:"properties"`
}

type docsProperty struct {
	Type        any    `json:"type"`
	Format      string `json:"format,omitempty"`
	Description string `json:"description"`
}

// docs describes the API as served from r's host.
func (s *Server) docs(r *http.Request) apiDocs {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	base := s.prefix()

	op := func(o models.Operation, summary, desc, listKey, schema string, examples ...docsExample) docsOperation {
		for i := range examples {
			examples[i].Request = base + examples[i].Request
		}

		return docsOperation{
			Summary:     summary,
			Description: desc,
			Parameters:  validator.Parameters(o),
			Responses:   responses(listKey, schema),
			Examples:    examples,
		}
	}

	return apiDocs{
		Info: docsInfo{
			Name:        "News API",
			Version:     APIVersion,
			Description: "A RESTful API for retrieving news articles and sources from NewsAPI.org",
		},
		Servers: []docsServer{{URL: scheme + "://" + r.Host + base, Description: "This server"}},
		Endpoints: map[string]docsEndpoint{
			RouteEverything: {Get: op(models.OpSearch,
				"Search all articles",
				"Search through millions of articles from news sources and blogs",
				"articles", "article",
				docsExample{"Search for bitcoin news", RouteEverything + "?q=bitcoin&language=en&sortBy=publishedAt"},
				docsExample{"Search tech news from specific sources", RouteEverything + "?q=technology&sources=techcrunch,wired&language=en"},
				docsExample{"Search news within a date range excluding certain domains", RouteEverything + "?q=climate&from=2024-03-01&to=2024-03-14&sortBy=popularity&excludeDomains=example.com"},
			)},
			RouteTopHeadlines: {Get: op(models.OpHeadlines,
				"Get top headlines",
				"Returns breaking news headlines for countries, categories, and singular publishers",
				"articles", "article",
				docsExample{"Get US technology headlines", RouteTopHeadlines + "?category=technology&country=us"},
				docsExample{"Headlines from specific sources", RouteTopHeadlines + "?sources=bbc-news,cnn"},
			)},
			RouteSources: {Get: op(models.OpSources,
				"Get news sources",
				"Returns information about news publishers available through the API",
				"sources", "source",
				docsExample{"Get English business sources", RouteSources + "?category=business&language=en"},
			)},
		},
		Components: docsComponents{Schemas: map[string]docsSchema{
			"article": {
				Type:     "object",
				Required: []string{"title", "url", "description", "imageUrl", "publishedAt", "category"},
				Properties: map[string]docsProperty{
					"title":       {Type: "string", Description: "The headline or title of the article"},
					"url":         {Type: "string", Format: "uri", Description: "The direct URL to the article"},
					"description": {Type: []string{"string", "null"}, Description: "A description or snippet from the article"},
					"imageUrl":    {Type: []string{"string", "null"}, Format: "uri", Description: "The URL to a relevant image for the article"},
					"publishedAt": {Type: "string", Format: "date-time", Description: "Publication time in UTC with millisecond precision"},
					"category":    {Type: "string", Description: "Lower-cased display name of the publishing source"},
				},
			},
			"source": {
				Type:     "object",
				Required: []string{"id", "name", "url"},
				Properties: map[string]docsProperty{
					"id":          {Type: "string", Description: "Unique identifier of the news source"},
					"name":        {Type: "string", Description: "Display name of the news source"},
					"description": {Type: "string", Description: "A description of the news source"},
					"url":         {Type: "string", Format: "uri", Description: "The base URL of the news source"},
					"category":    {Type: "string", Description: "Main category of the news source"},
					"language":    {Type: "string", Description: "Language of the news source using ISO 639-1 codes"},
					"country":     {Type: "string", Description: "Country of the news source using ISO 3166-1 codes"},
				},
			},
		}},
	}
}

func responses(listKey, schema string) map[string]docsResponse {
	return map[string]docsResponse{
		"200": {
			Description: "Successful response",
			Content: map[string]any{
				listKey: map[string]any{
					"type":  "array",
					"items": map[string]string{"$ref": "#/components/schemas/" + schema},
				},
				"timestamp": map[string]string{
					"type":        "integer",
					"description": "Response time in milliseconds since the Unix epoch",
				},
			},
		},
		"400": {Description: "Bad request - validation error with the full violation list"},
		"401": {Description: "Unauthorized - the provider rejected the configured API key"},
		"429": {Description: "Too many requests - provider rate limit exceeded"},
		"500": {Description: "Provider failure or non-conforming provider response"},
	}
}
