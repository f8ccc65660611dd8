package catalog

import (
	"slices"
	"strings"
)

const AllCollections = "all"

const DefaultRelatedLimit = 4

// The functions below are pure reads over a snapshot. They never return nil
// slices so that empty results encode as [] rather than null.

func FindProduct(products []Product, id string) (Product, bool) {
	i := slices.IndexFunc(products, func(p Product) bool { return p.ID == id })
	if i < 0 {
		return Product{}, false
	}
	return products[i], true
}

func FindCollection(collections []Collection, id string) (Collection, bool) {
	i := slices.IndexFunc(collections, func(c Collection) bool { return c.ID == id })
	if i < 0 {
		return Collection{}, false
	}
	return collections[i], true
}

func FindCollectionByName(collections []Collection, name string) (Collection, bool) {
	i := slices.IndexFunc(collections, func(c Collection) bool { return strings.EqualFold(c.Name, name) })
	if i < 0 {
		return Collection{}, false
	}
	return collections[i], true
}

func FilterByCollection(products []Product, name string) []Product {
	if name == AllCollections {
		return cloneProducts(products)
	}
	return filterProducts(products, func(p Product) bool {
		return strings.EqualFold(p.Collection, name)
	})
}

func FilterFeatured(products []Product) []Product {
	return filterProducts(products, func(p Product) bool { return p.Featured })
}

// Search matches query as a case-insensitive substring of the name,
// description or collection. A blank query matches everything.
func Search(products []Product, query string) []Product {
	if strings.TrimSpace(query) == "" {
		return cloneProducts(products)
	}

	q := strings.ToLower(query)
	return filterProducts(products, func(p Product) bool {
		return strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Collection), q)
	})
}

func Related(products []Product, p Product, limit int) []Product {
	out := filterProducts(FilterByCollection(products, p.Collection), func(o Product) bool {
		return o.ID != p.ID
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func filterProducts(products []Product, keep func(Product) bool) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func cloneProducts(products []Product) []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}

func cloneCollections(collections []Collection) []Collection {
	out := make([]Collection, len(collections))
	copy(out, collections)
	return out
}
