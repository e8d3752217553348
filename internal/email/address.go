package email

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sewoong/mailbridge/internal/mailer"
)

// addressPattern is a practical RFC 5322 address check: dotted atoms in the
// local part, domain labels that neither start nor end with a hyphen, and a
// domain containing at least one dot. Anchored, so whitespace and line
// breaks are rejected outright.
var addressPattern = regexp.MustCompile(
	"^[a-zA-Z0-9!#$%&'*+/=?^_`{|}~-]+(?:\\.[a-zA-Z0-9!#$%&'*+/=?^_`{|}~-]+)*" +
		"@(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?\\.)+[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?$")

// ValidAddress reports whether addr is a syntactically valid email address.
func ValidAddress(addr string) bool {
	return addressPattern.MatchString(addr)
}

// ValidateAddresses checks every address in the list and names the first
// offending one. A nil or empty list is valid.
func ValidateAddresses(addrs []string) error {
	for _, addr := range addrs {
		if !ValidAddress(addr) {
			return &mailer.ValidationError{
				Reason: fmt.Sprintf("invalid recipient address: %s", addr),
			}
		}
	}
	return nil
}

// ParseList splits a comma-separated address field into individual
// addresses, trimming surrounding whitespace and dropping empty entries.
func ParseList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
