package address

import (
	"regexp"
	"strings"

	"codgate/internal/model"
)

// postalCodeRe matches a run of exactly 6 digits, the Indian PIN format.
var postalCodeRe = regexp.MustCompile(`(?:^|[^0-9])([0-9]{6})(?:[^0-9]|$)`)

// provinceAlias maps a lowercased abbreviation or full name to the canonical
// state name. Aliases are tried in table order, first match wins.
type provinceAlias struct {
	alias     string
	canonical string
}

// Full names come before the two-letter codes so "tamil nadu" resolves
// before a stray "tn" token would.
var provinceAliases = []provinceAlias{
	{"maharashtra", "Maharashtra"},
	{"tamil nadu", "Tamil Nadu"},
	{"tamilnadu", "Tamil Nadu"},
	{"uttar pradesh", "Uttar Pradesh"},
	{"madhya pradesh", "Madhya Pradesh"},
	{"andhra pradesh", "Andhra Pradesh"},
	{"himachal pradesh", "Himachal Pradesh"},
	{"west bengal", "West Bengal"},
	{"karnataka", "Karnataka"},
	{"telangana", "Telangana"},
	{"rajasthan", "Rajasthan"},
	{"gujarat", "Gujarat"},
	{"kerala", "Kerala"},
	{"punjab", "Punjab"},
	{"haryana", "Haryana"},
	{"bihar", "Bihar"},
	{"odisha", "Odisha"},
	{"orissa", "Odisha"},
	{"assam", "Assam"},
	{"jharkhand", "Jharkhand"},
	{"chhattisgarh", "Chhattisgarh"},
	{"uttarakhand", "Uttarakhand"},
	{"delhi", "Delhi"},
	{"goa", "Goa"},
	{"mh", "Maharashtra"},
	{"tn", "Tamil Nadu"},
	{"up", "Uttar Pradesh"},
	{"mp", "Madhya Pradesh"},
	{"ap", "Andhra Pradesh"},
	{"hp", "Himachal Pradesh"},
	{"wb", "West Bengal"},
	{"ka", "Karnataka"},
	{"ts", "Telangana"},
	{"rj", "Rajasthan"},
	{"gj", "Gujarat"},
	{"kl", "Kerala"},
	{"pb", "Punjab"},
	{"hr", "Haryana"},
	{"br", "Bihar"},
	{"jh", "Jharkhand"},
	{"cg", "Chhattisgarh"},
	{"dl", "Delhi"},
	{"ga", "Goa"},
}

// Parse turns a free-text delivery address into a structured shipping tuple.
// It never fails: inconclusive parses fall back to the region defaults.
// Address quality is best-effort enrichment, not a blocking concern.
//
// Segments beyond the second are not consulted; a 3-segment address produces
// the same output as a 2-segment one.
func Parse(fullAddress string, defaults model.RegionDefaults) model.AddressParseResult {
	segments := splitSegments(fullAddress)

	result := model.AddressParseResult{
		Address1:   strings.TrimSpace(fullAddress),
		City:       defaults.City,
		Province:   defaults.Province,
		PostalCode: defaults.PostalCode,
	}

	if len(segments) <= 1 {
		// Single segment: keep it verbatim, no further inference.
		if len(segments) == 1 {
			result.Address1 = segments[0]
		}
		return result
	}

	if code := extractPostalCode(fullAddress); code != "" {
		result.PostalCode = code
	}
	if province := inferProvince(fullAddress); province != "" {
		result.Province = province
	}

	result.Address1 = segments[0]
	if segments[1] != "" {
		result.City = segments[1]
	}
	return result
}

// splitSegments splits on commas and trims, dropping nothing: an empty
// second segment still counts as a segment so city falls back to default.
func splitSegments(fullAddress string) []string {
	if strings.TrimSpace(fullAddress) == "" {
		return nil
	}
	parts := strings.Split(fullAddress, ",")
	segments := make([]string, len(parts))
	for i, p := range parts {
		segments[i] = strings.TrimSpace(p)
	}
	return segments
}

// extractPostalCode finds the first exactly-6-digit run, or "".
func extractPostalCode(fullAddress string) string {
	m := postalCodeRe.FindStringSubmatch(fullAddress)
	if m == nil {
		return ""
	}
	return m[1]
}

// inferProvince scans the lowercased address against the alias table.
// Multi-word aliases match as substrings; two-letter codes only match as
// standalone tokens to keep "up" inside a street name from resolving to
// Uttar Pradesh.
func inferProvince(fullAddress string) string {
	lower := strings.ToLower(fullAddress)
	tokens := tokenize(lower)

	for _, pa := range provinceAliases {
		if len(pa.alias) <= 2 {
			if tokens[pa.alias] {
				return pa.canonical
			}
			continue
		}
		if strings.Contains(lower, pa.alias) {
			return pa.canonical
		}
	}
	return ""
}

func tokenize(s string) map[string]bool {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '.' || r == '-' || r == '\t' || r == '\n'
	})
	tokens := make(map[string]bool, len(fields))
	for _, f := range fields {
		tokens[f] = true
	}
	return tokens
}
