package catalog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"github.com/volubiks/storefront/internal/domain"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)
var tagSplitPattern = regexp.MustCompile(`[,;]+`)

// legacyImageTable maps product ids to their image sets for rows that carry
// no images of their own. Both catalog feeds resolve images through this one
// table; the old spreadsheet-only lookup path is gone.
var legacyImageTable = map[string][]string{
	"1": {"/images/4.jpg", "/images/4-1.jpg", "/images/4-2.jpg", "/images/4-3.jpg"},
	"2": {"/images/IMG-1.jpg", "/images/IMG-2.jpg", "/images/IMG-3.jpg"},
	"3": {"/images/golden_green_chain_1.jpg", "/images/golden_green_chain_2.jpg", "/images/golden_green_chain_3.jpg", "/images/golden_green_chain_4.jpg"},
	"4": {"/images/Screenshot_20251225-175416.jpg"},
}

// Slugify lowercases the name, collapses runs of non-alphanumerics into a
// single hyphen and trims leading/trailing hyphens.
func Slugify(name string) string {
	s := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

// Normalize coerces one raw catalog row into a Product. index is the row's
// zero-based position and seeds the fallback id. Normalize is idempotent:
// feeding a normalized product back through (same field names) yields an
// identical product, so the already-normalized JSON feed passes through
// unchanged.
func Normalize(raw map[string]interface{}, index int) domain.Product {
	id := strings.TrimSpace(cast.ToString(raw["id"]))
	if id == "" {
		id = strconv.Itoa(index + 1)
	}

	name := strings.TrimSpace(cast.ToString(raw["name"]))
	slug := strings.TrimSpace(cast.ToString(raw["slug"]))
	if slug == "" {
		slug = Slugify(name)
	}

	price, err := cast.ToFloat64E(raw["price"])
	if err != nil {
		price = 0
	}

	currency := strings.ToUpper(strings.TrimSpace(cast.ToString(raw["currency"])))
	if currency == "" {
		currency = "NGN"
	}

	inventory, err := cast.ToIntE(raw["inventory"])
	if err != nil {
		inventory = 0
	}

	p := domain.Product{
		ID:          id,
		Name:        name,
		Slug:        slug,
		Price:       price,
		Currency:    currency,
		Description: strings.TrimSpace(cast.ToString(raw["description"])),
		Category:    strings.TrimSpace(cast.ToString(raw["category"])),
		Featured:    strings.ToLower(cast.ToString(raw["featured"])) == "true",
		Inventory:   inventory,
		Tags:        normalizeTags(raw["tags"]),
		Images:      normalizeImages(id, raw["images"]),
	}

	if len(p.Images) > 0 {
		p.Image = p.Images[0]
	} else {
		p.Image = strings.TrimSpace(cast.ToString(raw["image"]))
	}
	return p
}

// NormalizeRows normalizes a whole feed in row order.
func NormalizeRows(rows []map[string]interface{}) []domain.Product {
	out := make([]domain.Product, 0, len(rows))
	for i, row := range rows {
		out = append(out, Normalize(row, i))
	}
	return out
}

// normalizeTags splits a free-text tag cell on commas/semicolons. A value
// that is already a list passes through trimmed, which keeps Normalize
// idempotent.
func normalizeTags(v interface{}) []string {
	switch tv := v.(type) {
	case nil:
		return []string{}
	case string:
		if tv == "" {
			return []string{}
		}
		parts := tagSplitPattern.Split(tv, -1)
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			out = append(out, strings.TrimSpace(part))
		}
		return out
	default:
		list, err := cast.ToStringSliceE(v)
		if err != nil {
			return []string{}
		}
		out := make([]string, 0, len(list))
		for _, item := range list {
			out = append(out, strings.TrimSpace(item))
		}
		return out
	}
}

// normalizeImages keeps a provided image list, otherwise falls back to the
// fixed id lookup.
func normalizeImages(id string, v interface{}) []string {
	if v != nil {
		if list, err := cast.ToStringSliceE(v); err == nil && len(list) > 0 {
			out := make([]string, 0, len(list))
			for _, item := range list {
				out = append(out, strings.TrimSpace(item))
			}
			return out
		}
	}
	if base, ok := legacyImageTable[id]; ok {
		out := make([]string, len(base))
		copy(out, base)
		return out
	}
	return []string{}
}
