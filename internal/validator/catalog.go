package validator

import "newsgate/internal/models"

// Query parameter names.
const (
	ParamQ              = "q"
	ParamSearchIn       = "searchIn"
	ParamSources        = "sources"
	ParamDomains        = "domains"
	ParamExcludeDomains = "excludeDomains"
	ParamFrom           = "from"
	ParamTo             = "to"
	ParamLanguage       = "language"
	ParamSortBy         = "sortBy"
	ParamCategory       = "category"
	ParamCountry        = "country"
	ParamPage           = "page"
	ParamPageSize       = "pageSize"
)

// Param documents one query parameter accepted by an operation.
type Param struct {
	Name        string   `json:"name"`
	In          string   `json:"in"`
	Type        string   `json:"type"`
	Format      string   `json:"format,omitempty"`
	Description string   `json:"description"`
	Required    bool     `json:"required"`
	Enum        []string `json:"enum,omitempty"`
	Pattern     string   `json:"pattern,omitempty"`
	Minimum     *int     `json:"minimum,omitempty"`
	Maximum     *int     `json:"maximum,omitempty"`
	Example     any      `json:"example,omitempty"`
	Note        string   `json:"note,omitempty"`
}

// Language and country codes the provider knows about. They are listed in the
// documentation only; validation checks the shape of the code.
var (
	KnownLanguages = []string{"ar", "de", "en", "es", "fr", "he", "it", "nl", "no", "pt", "ru", "sv", "ud", "zh"}
	KnownCountries = []string{
		"ae", "ar", "at", "au", "be", "bg", "br", "ca", "ch", "cn", "co", "cu", "cz",
		"de", "eg", "fr", "gb", "gr", "hk", "hu", "id", "ie", "il", "in", "it", "jp",
		"kr", "lt", "lv", "ma", "mx", "my", "ng", "nl", "no", "nz", "ph", "pl", "pt",
		"ro", "rs", "ru", "sa", "se", "sg", "si", "sk", "th", "tr", "tw", "ua", "us",
		"ve", "za",
	}
)

func intp(n int) *int { return &n }

func queryParam(name, typ, desc string, example any) Param {
	return Param{Name: name, In: "query", Type: typ, Description: desc, Example: example}
}

func pageParams() []Param {
	page := queryParam(ParamPage, "integer", "Page number for paginated results", 1)
	page.Minimum = intp(MinPage)

	size := queryParam(ParamPageSize, "integer", "Number of results per page", 20)
	size.Minimum = intp(MinPageSize)
	size.Maximum = intp(MaxPageSize)

	return []Param{page, size}
}

func languageParam() Param {
	p := queryParam(ParamLanguage, "string", "Two-letter language code", "en")
	p.Pattern = CodePattern
	p.Enum = KnownLanguages
	p.Note = "Lower case only; upper-case codes are rejected"

	return p
}

func countryParam() Param {
	p := queryParam(ParamCountry, "string", "Two-letter country code", "us")
	p.Pattern = CodePattern
	p.Enum = KnownCountries
	p.Note = "Lower case only; upper-case codes are rejected"

	return p
}

func categoryParam() Param {
	p := queryParam(ParamCategory, "string", "Category of news to retrieve", "technology")
	p.Enum = models.CategoryNames()

	return p
}

func dateParam(name, desc, example string) Param {
	p := queryParam(name, "string", desc, example)
	p.Format = "date-time"
	p.Note = "ISO 8601 date or date-time (e.g., 2024-03-01, 2024-03-01T12:00:00 or 2024-03-01T12:00:00Z)"

	return p
}

// Parameters returns the documented parameters of op in validation order.
func Parameters(op models.Operation) []Param {
	switch op {
	case models.OpSearch:
		searchIn := queryParam(ParamSearchIn, "string", "The fields to restrict your q search to", "title,description")
		searchIn.Enum = SearchInFields
		searchIn.Note = "Comma-separated subset of the listed fields"

		sortBy := queryParam(ParamSortBy, "string", "Sort order for articles", "publishedAt")
		sortBy.Enum = SortKeys

		q := queryParam(ParamQ, "string", "Keywords or phrases to search for in the article title and body", "bitcoin OR cryptocurrency")
		q.Note = "Advanced search is supported: AND, OR, NOT operators and grouping with parentheses"

		sources := queryParam(ParamSources, "string", "Comma-separated string of news source IDs to restrict the search to", "bbc-news,cnn")
		sources.Note = "Use the /sources endpoint to get available source IDs"

		params := []Param{
			q,
			searchIn,
			sources,
			queryParam(ParamDomains, "string", "Comma-separated string of domains to restrict the search to", "bbc.co.uk,techcrunch.com"),
			queryParam(ParamExcludeDomains, "string", "Comma-separated string of domains to exclude from the results", "example.com"),
			dateParam(ParamFrom, "Start date for article search", "2024-03-01"),
			dateParam(ParamTo, "End date for article search", "2024-03-14"),
			languageParam(),
			sortBy,
		}

		return append(params, pageParams()...)

	case models.OpHeadlines:
		sources := queryParam(ParamSources, "string", "Comma-separated string of news source IDs", "bbc-news,cnn")
		sources.Note = "Cannot be mixed with country or category; the combination is rejected with 400 rather than forwarded upstream"

		params := []Param{
			queryParam(ParamQ, "string", "Keywords or phrases to search for in the article title and body", "bitcoin"),
			sources,
			categoryParam(),
			countryParam(),
		}

		return append(params, pageParams()...)

	case models.OpSources:
		return []Param{categoryParam(), languageParam(), countryParam()}
	}

	return nil
}
