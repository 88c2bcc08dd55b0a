package extract

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// digits, separators, decimal point and an optional magnitude suffix right before "view"
var viewCountRegex = regexp.MustCompile(`(?i)([\d,.]+[KMB]?)\s*view`)

// ViewsFromLabel pulls the view count out of an accessibility label such as
// "4,821 views" or "1.2K Views. View post analytics".
func ViewsFromLabel(label string) (string, bool) {
	//NFKC folds no-break spaces and full-width digits into plain ASCII
	normalized := norm.NFKC.String(label)
	if !strings.Contains(strings.ToLower(normalized), "view") {
		return "", false
	}

	for _, match := range viewCountRegex.FindAllStringSubmatch(normalized, -1) {
		if hasDigit(match[1]) {
			return match[1], true
		}
	}
	return "", false
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}
