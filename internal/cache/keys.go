package cache

import "strings"

const (
	// ListKeyPrefix prefixes every product list entry; the bare prefix
	// is also the whole-collection key for unfiltered, unpaginated lists.
	ListKeyPrefix = "products"

	// DetailKeyPrefix prefixes product detail entries.
	DetailKeyPrefix = "product:"

	keyDelimiter = ":"
)

// ListKeyParts carries the raw filter values of a catalog list query.
// Fields are the request's query-string values so that identical
// requests always build identical keys.
type ListKeyParts struct {
	MaxPrice  string
	MinPrice  string
	Length    string
	Type      string
	Category  string
	Page      string
	Limit     string
	SortOrder string
	IDs       string
}

// ListKey builds the cache key for a product list query: the ordered
// concatenation of the filter fields, absent fields skipped.
func ListKey(p ListKeyParts) string {
	parts := []string{ListKeyPrefix}
	for _, field := range []string{
		p.MaxPrice, p.MinPrice, p.Length, p.Type,
		p.Category, p.Page, p.Limit, p.SortOrder, p.IDs,
	} {
		if field != "" {
			parts = append(parts, field)
		}
	}
	return strings.Join(parts, keyDelimiter)
}

// DetailKey builds the cache key for a product detail lookup
func DetailKey(productID string) string {
	return DetailKeyPrefix + productID
}
