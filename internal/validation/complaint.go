// Package validation checks and sanitizes citizen complaint
// submissions server-side, independent of any client-side checks.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/model"
)

var allowedFields = map[string]bool{
	"fullName":      true,
	"phone":         true,
	"address":       true,
	"zone":          true,
	"wardNumber":    true,
	"complaintType": true,
	"description":   true,
}

var (
	phoneRx   = regexp.MustCompile(`^[\d\s\-+()]+$`)
	htmlTagRx = regexp.MustCompile(`<[^>]*>`)
)

// Sanitize trims the input, strips HTML tag-like substrings and escapes
// special characters. Ampersand goes first so entities introduced by the
// later replacements are not double-escaped.
func Sanitize(input string) string {
	s := strings.TrimSpace(input)
	s = htmlTagRx.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "'", "&#x27;")
	return s
}

// stringField extracts a trimmed string value, reporting an error for
// missing or non-string values via the short message.
func stringField(raw map[string]interface{}, key string) (string, bool) {
	v, ok := raw[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// ValidateComplaint checks an arbitrary input record against the
// submission rules. It returns either a fully sanitized submission or a
// non-empty field->message map, never both.
func ValidateComplaint(raw map[string]interface{}) (*model.ComplaintSubmission, map[string]string) {
	errs := make(map[string]string)

	// Unexpected fields are each reported under their own key and do
	// not short-circuit the remaining checks.
	for key := range raw {
		if !allowedFields[key] {
			errs[key] = fmt.Sprintf("Unexpected field: %s", key)
		}
	}

	// Length bounds count characters, not bytes, so multibyte scripts
	// are measured the same way the bounds are stated.
	fullName, ok := stringField(raw, "fullName")
	switch {
	case !ok || utf8.RuneCountInString(fullName) < 2:
		errs["fullName"] = "Name must be at least 2 characters"
	case utf8.RuneCountInString(fullName) > 100:
		errs["fullName"] = "Name must be at most 100 characters"
	}

	phone, ok := stringField(raw, "phone")
	switch {
	case !ok || utf8.RuneCountInString(phone) < 10:
		errs["phone"] = "Valid phone number required (min 10 digits)"
	case utf8.RuneCountInString(phone) > 15:
		errs["phone"] = "Phone number too long"
	case !phoneRx.MatchString(phone):
		errs["phone"] = "Phone contains invalid characters"
	}

	address, ok := stringField(raw, "address")
	switch {
	case !ok || utf8.RuneCountInString(address) < 5:
		errs["address"] = "Address must be at least 5 characters"
	case utf8.RuneCountInString(address) > 300:
		errs["address"] = "Address must be at most 300 characters"
	}

	zone, ok := stringField(raw, "zone")
	switch {
	case !ok || zone == "":
		errs["zone"] = "Zone is required"
	case utf8.RuneCountInString(zone) > 50:
		errs["zone"] = "Zone must be at most 50 characters"
	}

	wardNumber, ok := stringField(raw, "wardNumber")
	switch {
	case !ok || wardNumber == "":
		errs["wardNumber"] = "Ward number is required"
	case utf8.RuneCountInString(wardNumber) > 10:
		errs["wardNumber"] = "Ward number must be at most 10 characters"
	}

	complaintType, ok := stringField(raw, "complaintType")
	if !ok || !model.AllowedComplaintTypes[model.ComplaintType(complaintType)] {
		errs["complaintType"] = "Invalid complaint type"
	}

	description, ok := stringField(raw, "description")
	switch {
	case !ok || utf8.RuneCountInString(description) < 10:
		errs["description"] = "Description must be at least 10 characters"
	case utf8.RuneCountInString(description) > 1000:
		errs["description"] = "Description must be at most 1000 characters"
	}

	if len(errs) > 0 {
		return nil, errs
	}

	// complaintType is a closed enum and is stored as-is.
	return &model.ComplaintSubmission{
		FullName:      Sanitize(fullName),
		Phone:         Sanitize(phone),
		Address:       Sanitize(address),
		Zone:          Sanitize(zone),
		WardNumber:    Sanitize(wardNumber),
		ComplaintType: complaintType,
		Description:   Sanitize(description),
	}, nil
}
