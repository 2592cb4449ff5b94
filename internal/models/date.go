package models

import "time"

// DateLayouts are the ISO 8601 forms accepted for query dates and provider
// timestamps. A date-time without a zone is read as UTC.
var DateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}
