package inventory

import "github.com/ihirwe/stockroom/internal/model"

// DeriveCategories synthesizes the category list from the distinct non-empty
// category tags across products, unioned with the declared set. Declared
// entries keep their order; categories seen only on products follow in
// first-seen order. Categories stay denormalized strings on purpose; this is
// the single place that would change if they ever become a real table.
func DeriveCategories(products []model.Product, declared []string) []string {
	seen := make(map[string]struct{}, len(declared))
	out := make([]string, 0, len(declared))

	for _, c := range declared {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}

	for _, p := range products {
		if p.Category == nil || *p.Category == "" {
			continue
		}
		if _, ok := seen[*p.Category]; ok {
			continue
		}
		seen[*p.Category] = struct{}{}
		out = append(out, *p.Category)
	}

	return out
}
