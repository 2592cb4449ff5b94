// Package validator validates and coerces raw query parameters into typed option sets.
package validator

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"newsgate/internal/models"
)

// ErrUnknownOperation is returned by Validate for an operation it does not know.
var ErrUnknownOperation = errors.New("unknown operation")

// Bounds shared with the documentation catalog.
const (
	MinPage     = 1
	MinPageSize = 1
	MaxPageSize = 100
)

// CodePattern is the accepted shape of language and country codes.
// Upper-case codes are rejected rather than folded.
const CodePattern = `^[a-z]{2}$`

var codeRe = regexp.MustCompile(CodePattern)

// SortKeys are the accepted values of sortBy.
var SortKeys = []string{"relevancy", "popularity", "publishedAt"}

// SearchInFields are the accepted members of searchIn.
var SearchInFields = []string{"title", "description", "content"}

// Violation describes one invalid parameter.
type Violation struct {
	Field  string `json:"field"`
	Value  string `json:"value,omitempty"`
	Reason string `json:"reason"`
}

// ValidationError aggregates every violation found in one query.
type ValidationError struct {
	Operation  models.Operation
	Violations []Violation
}

// Error implements error.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Reason)
	}

	return fmt.Sprintf("invalid %s query: %s", e.Operation, strings.Join(parts, "; "))
}

// Validate dispatches to the validator of op.
func Validate(op models.Operation, q url.Values) (models.Options, error) {
	switch op {
	case models.OpSearch:
		return Search(q)
	case models.OpHeadlines:
		return Headlines(q)
	case models.OpSources:
		return Sources(q)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
}

// Search validates the parameters of a full-text search.
func Search(q url.Values) (models.SearchOptions, error) {
	c := newCollector(models.OpSearch, q)

	opts := models.SearchOptions{
		Q:              c.text(ParamQ),
		SearchIn:       c.list(ParamSearchIn, SearchInFields),
		Sources:        c.text(ParamSources),
		Domains:        c.text(ParamDomains),
		ExcludeDomains: c.text(ParamExcludeDomains),
		From:           c.date(ParamFrom),
		To:             c.date(ParamTo),
		Language:       c.code(ParamLanguage),
		SortBy:         c.enum(ParamSortBy, SortKeys),
		Page:           c.integer(ParamPage, MinPage, 0),
		PageSize:       c.integer(ParamPageSize, MinPageSize, MaxPageSize),
	}

	if err := c.err(); err != nil {
		return models.SearchOptions{}, err
	}

	return opts, nil
}

// Headlines validates the parameters of a top-headlines request.
func Headlines(q url.Values) (models.HeadlinesOptions, error) {
	c := newCollector(models.OpHeadlines, q)

	opts := models.HeadlinesOptions{
		Q:        c.text(ParamQ),
		Sources:  c.text(ParamSources),
		Category: c.category(ParamCategory),
		Country:  c.code(ParamCountry),
		Page:     c.integer(ParamPage, MinPage, 0),
		PageSize: c.integer(ParamPageSize, MinPageSize, MaxPageSize),
	}

	// The provider refuses sources mixed with country or category.
	if opts.Sources != "" && (opts.Country != "" || opts.Category != "") {
		c.add(ParamSources, opts.Sources, "cannot be combined with country or category")
	}

	if err := c.err(); err != nil {
		return models.HeadlinesOptions{}, err
	}

	return opts, nil
}

// Sources validates the parameters of a source listing.
func Sources(q url.Values) (models.SourcesOptions, error) {
	c := newCollector(models.OpSources, q)

	opts := models.SourcesOptions{
		Category: c.category(ParamCategory),
		Language: c.code(ParamLanguage),
		Country:  c.code(ParamCountry),
	}

	if err := c.err(); err != nil {
		return models.SourcesOptions{}, err
	}

	return opts, nil
}

// collector reads parameters one at a time and records every violation.
type collector struct {
	query      url.Values
	op         models.Operation
	violations []Violation
}

func newCollector(op models.Operation, q url.Values) *collector {
	return &collector{op: op, query: q}
}

func (c *collector) add(field, value, reason string) {
	c.violations = append(c.violations, Violation{Field: field, Value: value, Reason: reason})
}

func (c *collector) err() error {
	if len(c.violations) == 0 {
		return nil
	}

	return &ValidationError{Operation: c.op, Violations: c.violations}
}

// raw returns the single value of name and whether it was supplied.
// A present empty value counts as supplied.
func (c *collector) raw(name string) (string, bool) {
	values := c.query[name]
	if len(values) > 1 {
		c.add(name, "", "must be supplied at most once")
		return "", false
	}

	if len(values) == 0 {
		return "", false
	}

	return values[0], true
}

// text reads a free-text parameter. Empty means not supplied.
func (c *collector) text(name string) string {
	v, _ := c.raw(name)
	return v
}

func (c *collector) code(name string) string {
	v, ok := c.raw(name)
	if !ok {
		return ""
	}

	if !codeRe.MatchString(v) {
		c.add(name, v, "must be exactly two lower-case letters")
		return ""
	}

	return v
}

func (c *collector) category(name string) models.Category {
	v, ok := c.raw(name)
	if !ok {
		return ""
	}

	cat := models.Category(v)
	if !cat.IsValid() {
		c.add(name, v, fmt.Sprintf("invalid category %q, must be one of: %s",
			v, strings.Join(models.CategoryNames(), ", ")))

		return ""
	}

	return cat
}

func (c *collector) enum(name string, allowed []string) string {
	v, ok := c.raw(name)
	if !ok {
		return ""
	}

	if !slices.Contains(allowed, v) {
		c.add(name, v, "must be one of: "+strings.Join(allowed, ", "))
		return ""
	}

	return v
}

func (c *collector) list(name string, allowed []string) string {
	v, ok := c.raw(name)
	if !ok {
		return ""
	}

	for item := range strings.SplitSeq(v, ",") {
		if !slices.Contains(allowed, strings.TrimSpace(item)) {
			c.add(name, v, "must be a comma-separated list of: "+strings.Join(allowed, ", "))
			return ""
		}
	}

	return v
}

func (c *collector) date(name string) string {
	v, ok := c.raw(name)
	if !ok {
		return ""
	}

	for _, layout := range models.DateLayouts {
		if _, err := time.Parse(layout, v); err == nil {
			return v
		}
	}

	c.add(name, v, "must be an ISO 8601 date (2024-03-01) or date-time (2024-03-01T12:00:00 or 2024-03-01T12:00:00Z)")

	return ""
}

// integer coerces name to an int in [lo, hi]. A zero hi means no upper bound.
func (c *collector) integer(name string, lo, hi int) int {
	v, ok := c.raw(name)
	if !ok {
		return 0
	}

	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		c.add(name, v, "must be an integer")
		return 0
	}

	switch {
	case n < lo:
		c.add(name, v, fmt.Sprintf("must be at least %d", lo))
		return 0
	case hi > 0 && n > hi:
		c.add(name, v, fmt.Sprintf("must be at most %d", hi))
		return 0
	}

	return n
}
