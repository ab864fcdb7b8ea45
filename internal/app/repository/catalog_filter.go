package repository

import (
	"strings"

	"github.com/princesss/catalog-backend/internal/app/model"
)

// LengthBucket is a named inclusive range over product length (cm)
type LengthBucket struct {
	Min int
	Max int
}

var lengthBuckets = map[string]LengthBucket{
	"SHORT":  {Min: 0, Max: 15},
	"MEDIUM": {Min: 16, Max: 30},
	"LONG":   {Min: 31, Max: 100},
}

// ParseLengthBucket resolves a bucket name (SHORT/MEDIUM/LONG)
func ParseLengthBucket(name string) (LengthBucket, bool) {
	bucket, ok := lengthBuckets[strings.ToUpper(strings.TrimSpace(name))]
	return bucket, ok
}

// CatalogFilter describes one catalog list query. Families combine with
// AND; the values inside a family combine with OR.
type CatalogFilter struct {
	IDs            []string
	CategoryID     *model.ProductCategory
	MinPrice       *float64
	MaxPrice       *float64
	Lengths        []LengthBucket
	Types          []model.ProductType
	SortDescending bool

	// Pagination applies only when Page > 0; Page is 1-based.
	Page  int
	Limit int
}

// predicate is one filter family compiled to a parameterized fragment
type predicate struct {
	expr string
	args []interface{}
}

// anyOf OR-combines the variants of a single filter family
func anyOf(preds ...predicate) predicate {
	exprs := make([]string, 0, len(preds))
	var args []interface{}
	for _, p := range preds {
		exprs = append(exprs, p.expr)
		args = append(args, p.args...)
	}
	return predicate{
		expr: "(" + strings.Join(exprs, " OR ") + ")",
		args: args,
	}
}

// buildPredicates compiles the filter into one predicate per active
// family. The price family matches a variant's price OR promo price.
func buildPredicates(f CatalogFilter) []predicate {
	var preds []predicate

	if len(f.IDs) > 0 {
		preds = append(preds, predicate{expr: "products.id IN ?", args: []interface{}{f.IDs}})
	}

	if f.CategoryID != nil {
		preds = append(preds, predicate{expr: "products.category_id = ?", args: []interface{}{*f.CategoryID}})
	}

	switch {
	case f.MinPrice != nil && f.MaxPrice != nil:
		preds = append(preds, anyOf(
			predicate{expr: "variants.price BETWEEN ? AND ?", args: []interface{}{*f.MinPrice, *f.MaxPrice}},
			predicate{expr: "variants.promo_price BETWEEN ? AND ?", args: []interface{}{*f.MinPrice, *f.MaxPrice}},
		))
	case f.MinPrice != nil:
		preds = append(preds, anyOf(
			predicate{expr: "variants.price >= ?", args: []interface{}{*f.MinPrice}},
			predicate{expr: "variants.promo_price >= ?", args: []interface{}{*f.MinPrice}},
		))
	case f.MaxPrice != nil:
		preds = append(preds, anyOf(
			predicate{expr: "variants.price <= ?", args: []interface{}{*f.MaxPrice}},
			predicate{expr: "variants.promo_price <= ?", args: []interface{}{*f.MaxPrice}},
		))
	}

	if len(f.Lengths) > 0 {
		buckets := make([]predicate, 0, len(f.Lengths))
		for _, b := range f.Lengths {
			buckets = append(buckets, predicate{
				expr: "products.length BETWEEN ? AND ?",
				args: []interface{}{b.Min, b.Max},
			})
		}
		preds = append(preds, anyOf(buckets...))
	}

	if len(f.Types) > 0 {
		preds = append(preds, predicate{expr: "products.type IN ?", args: []interface{}{f.Types}})
	}

	return preds
}
