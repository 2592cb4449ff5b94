package models

// Operation names one of the logical read operations.
type Operation string

// Supported operations.
const (
	OpSearch    Operation = "search"
	OpHeadlines Operation = "headlines"
	OpSources   Operation = "sources"
)

// Operations lists every operation in a stable order.
func Operations() []Operation {
	return []Operation{OpSearch, OpHeadlines, OpSources}
}

// IsValid reports whether op is a known operation.
func (op Operation) IsValid() bool {
	switch op {
	case OpSearch, OpHeadlines, OpSources:
		return true
	}

	return false
}

// Options is implemented by the validated option set of each operation.
type Options interface {
	Operation() Operation
}

// SearchOptions are the validated parameters of a full-text search.
// Zero values mean "not supplied".
type SearchOptions struct {
	Q              string
	SearchIn       string
	Sources        string
	Domains        string
	ExcludeDomains string
	From           string
	To             string
	Language       string
	SortBy         string
	Page           int
	PageSize       int
}

// Operation implements Options.
func (SearchOptions) Operation() Operation { return OpSearch }

// HeadlinesOptions are the validated parameters of a top-headlines request.
type HeadlinesOptions struct {
	Q        string
	Sources  string
	Category Category
	Country  string
	Page     int
	PageSize int
}

// Operation implements Options.
func (HeadlinesOptions) Operation() Operation { return OpHeadlines }

// SourcesOptions are the validated parameters of a source listing.
type SourcesOptions struct {
	Category Category
	Language string
	Country  string
}

// Operation implements Options.
func (SourcesOptions) Operation() Operation { return OpSources }

// AdapterArguments is the flat parameter set handed to the upstream adapter.
// Zero values are omitted from the upstream request.
type AdapterArguments struct {
	Q              string
	SearchIn       string
	Sources        string
	Domains        string
	ExcludeDomains string
	From           string
	To             string
	Language       string
	SortBy         string
	Category       Category
	Country        string
	Page           int
	PageSize       int
}
