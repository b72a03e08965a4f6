package catalog

import (
	"context"
	"strings"
)

// Page is one window of a filtered entry collection.
type Page struct {
	Entries []Entry
	// Total counts all entries matching the filter, across every page.
	Total int
	// Number is the 1-based page number actually served; out-of-range
	// requests are clamped.
	Number int
	Pages  int
}

// BrowseDescriptions fetches the full item-description catalog (unscoped by
// product) through the collection endpoints, applying the usual probe order.
func (r *Resolver) BrowseDescriptions(ctx context.Context) ([]Entry, error) {
	for _, endpoint := range DescriptionCollectionEndpoints() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		payload, err := r.source.Get(ctx, endpoint)
		if err != nil {
			continue
		}

		records, err := decodeCollection(payload)
		if err != nil {
			continue
		}

		entries := normalize(records)
		if len(entries) > 0 {
			sortEntries(entries)

			return entries, nil
		}
	}

	return []Entry{}, nil
}

// Filter returns the entries whose label contains query, case-insensitively.
// An empty query returns the input unchanged.
func Filter(entries []Entry, query string) []Entry {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return entries
	}

	matched := make([]Entry, 0, len(entries))

	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Label), needle) {
			matched = append(matched, entry)
		}
	}

	return matched
}

// Paginate slices entries into fixed-size pages. perPage below 1 is treated
// as 1; the page number is clamped into range so callers can navigate blindly.
func Paginate(entries []Entry, page, perPage int) Page {
	if perPage < 1 {
		perPage = 1
	}

	total := len(entries)

	pages := (total + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}

	if page < 1 {
		page = 1
	} else if page > pages {
		page = pages
	}

	start := (page - 1) * perPage

	end := start + perPage
	if end > total {
		end = total
	}

	window := []Entry{}
	if start < total {
		window = entries[start:end]
	}

	return Page{Entries: window, Total: total, Number: page, Pages: pages}
}
