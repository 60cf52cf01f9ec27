package dataset

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Template builds target URLs from record fields. Placeholders use the
// canonical column names: ${sku}, ${name} and ${barcode_value}. Values
// are path-escaped on substitution so the produced URL stays encodable.
type Template struct {
	raw string
}

// ParseTemplate validates a template up front: an unknown placeholder is
// a configuration mistake and is rejected before any record is touched.
func ParseTemplate(s string) (*Template, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("empty url template")
	}
	for _, groups := range placeholderPattern.FindAllStringSubmatch(s, -1) {
		name := strings.TrimSpace(groups[1])
		switch name {
		case "sku", "name", "barcode_value":
		default:
			return nil, fmt.Errorf("unknown placeholder %q in url template (have sku, name, barcode_value)", name)
		}
	}
	return &Template{raw: s}, nil
}

// Expand substitutes the record's fields into the template. An absent or
// empty field substitutes as the empty string.
func (t *Template) Expand(r Record) string {
	return placeholderPattern.ReplaceAllStringFunc(t.raw, func(match string) string {
		groups := placeholderPattern.FindStringSubmatch(match)
		switch strings.TrimSpace(groups[1]) {
		case "sku":
			return url.PathEscape(r.SKU)
		case "name":
			return url.PathEscape(r.Name)
		case "barcode_value":
			return url.PathEscape(r.Barcode.Value)
		}
		return match
	})
}

// FillURLs gives every record without a usable URL one expanded from the
// template. Explicit spreadsheet URLs always win over the template.
func (t *Template) FillURLs(tbl *Table) {
	for i := range tbl.Records {
		if !tbl.Records[i].URL.Empty() {
			continue
		}
		tbl.Records[i].URL = Field{Value: t.Expand(tbl.Records[i]), Present: true}
	}
}
