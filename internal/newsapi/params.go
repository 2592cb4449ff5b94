package newsapi

import (
	"net/url"
	"strconv"

	"newsgate/internal/models"
)

// encodeArguments renders args as provider query parameters.
// Zero values are left out so the provider applies its own defaults.
func encodeArguments(args models.AdapterArguments) url.Values {
	q := url.Values{}

	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}

	setInt := func(key string, value int) {
		if value != 0 {
			q.Set(key, strconv.Itoa(value))
		}
	}

	set("q", args.Q)
	set("searchIn", args.SearchIn)
	set("sources", args.Sources)
	set("domains", args.Domains)
	set("excludeDomains", args.ExcludeDomains)
	set("from", args.From)
	set("to", args.To)
	set("language", args.Language)
	set("sortBy", args.SortBy)
	set("category", args.Category.String())
	set("country", args.Country)
	setInt("page", args.Page)
	setInt("pageSize", args.PageSize)

	return q
}
