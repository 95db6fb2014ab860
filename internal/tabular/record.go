// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tabular

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/pdiddy/companydir/pkg/types"
)

// absent reports whether a cell value stands for a missing field. The literal
// "nan" is a spreadsheet-export convention carried by the directory tables.
func absent(v string) bool {
	return v == "" || strings.EqualFold(v, "nan")
}

// buildCompany maps row values onto the canonical column names and validates
// the result. It returns an error, and no record, as soon as any field fails:
// a Company is all-or-nothing.
func buildCompany(schema, values []string) (types.Company, error) {
	var c types.Company
	for i, name := range schema {
		if err := assign(&c, name, values[i]); err != nil {
			return types.Company{}, err
		}
	}

	if c.Company == "" {
		return types.Company{}, errors.New("required field Company is missing")
	}
	if c.ShortDescription == "" {
		return types.Company{}, errors.New("required field Short_Description is missing")
	}
	return c, nil
}

// assign decodes one cell into its target field. The header decides the
// mapping, not a fixed index; cells under unrecognized headers are ignored.
func assign(c *types.Company, name, value string) error {
	switch name {
	case "Company":
		if !absent(value) {
			c.Company = value
		}
	case "Short_Description":
		if !absent(value) {
			c.ShortDescription = value
		}
	case "Location":
		if !absent(value) {
			c.Location = value
		}
	case "Tags":
		c.Tags = SplitTags(value)
	case "Company_Website":
		return assignURL(&c.CompanyWebsite, name, value)
	case "YC_Link":
		return assignURL(&c.YCLink, name, value)
	case "Founder_Link_1":
		return assignURL(&c.FounderLink1, name, value)
	case "Founder_Link_2":
		return assignURL(&c.FounderLink2, name, value)
	case "Founder_Link_3":
		return assignURL(&c.FounderLink3, name, value)
	}
	return nil
}

func assignURL(dst *string, field, value string) error {
	if absent(value) {
		return nil
	}
	normalized, err := NormalizeURL(value)
	if err != nil {
		return fmt.Errorf("field %s: %w", field, err)
	}
	*dst = normalized
	return nil
}

// NormalizeURL checks that raw is an absolute http or https URL and returns
// its canonical form. A URL with an empty path gains a trailing slash, so
// "https://acme.com" serializes as "https://acme.com/" — the form earlier
// consumers of the persisted JSON were built against.
func NormalizeURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %v", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid URL %q: missing host", raw)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String(), nil
}

// SplitTags turns a comma-separated cell into a tag list: entries are
// trimmed and entries empty after trimming are dropped. An absent cell
// yields nil.
func SplitTags(value string) []string {
	if absent(value) {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(value, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
