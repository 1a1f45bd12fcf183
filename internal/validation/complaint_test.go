package validation_test

import (
	"strings"
	"testing"

	"github.com/Kapildas9057/recycle-monitor-app-sub000/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() map[string]interface{} {
	return map[string]interface{}{
		"fullName":      "Jo",
		"phone":         "1234567890",
		"address":       "12 Main St",
		"zone":          "A",
		"wardNumber":    "4",
		"complaintType": "late_collection",
		"description":   "Bin not emptied for two weeks",
	}
}

func TestValidateComplaint_Success(t *testing.T) {
	submission, errs := validation.ValidateComplaint(validInput())

	require.Nil(t, errs)
	require.NotNil(t, submission)
	assert.Equal(t, "Jo", submission.FullName)
	assert.Equal(t, "late_collection", submission.ComplaintType)
	assert.Equal(t, "Bin not emptied for two weeks", submission.Description)
}

func TestValidateComplaint_TrimsBeforeLengthChecks(t *testing.T) {
	input := validInput()
	input["fullName"] = "  Jo  "

	submission, errs := validation.ValidateComplaint(input)

	require.Nil(t, errs)
	assert.Equal(t, "Jo", submission.FullName)
}

func TestValidateComplaint_LengthBounds(t *testing.T) {
	cases := []struct {
		field string
		value string
	}{
		{"fullName", "J"},
		{"fullName", strings.Repeat("a", 101)},
		{"phone", "123456789"},
		{"phone", strings.Repeat("1", 16)},
		{"address", "12 M"},
		{"address", strings.Repeat("a", 301)},
		{"zone", ""},
		{"zone", strings.Repeat("z", 51)},
		{"wardNumber", ""},
		{"wardNumber", strings.Repeat("9", 11)},
		{"description", "too short"},
		{"description", strings.Repeat("d", 1001)},
	}

	for _, tc := range cases {
		input := validInput()
		input[tc.field] = tc.value

		submission, errs := validation.ValidateComplaint(input)

		assert.Nil(t, submission, "field %s value %q should fail", tc.field, tc.value)
		assert.Contains(t, errs, tc.field)
	}
}

// Length bounds count characters, not bytes: Tamil letters are three
// UTF-8 bytes each and must measure the same as ASCII.
func TestValidateComplaint_MultibyteLengths(t *testing.T) {
	input := validInput()
	input["fullName"] = strings.Repeat("அ", 50)
	input["description"] = strings.Repeat("க", 10)

	submission, errs := validation.ValidateComplaint(input)

	require.Nil(t, errs)
	assert.Equal(t, strings.Repeat("அ", 50), submission.FullName)

	input = validInput()
	input["description"] = strings.Repeat("அ", 5)
	submission, errs = validation.ValidateComplaint(input)
	assert.Nil(t, submission)
	assert.Equal(t, "Description must be at least 10 characters", errs["description"])

	input = validInput()
	input["fullName"] = strings.Repeat("அ", 101)
	submission, errs = validation.ValidateComplaint(input)
	assert.Nil(t, submission)
	assert.Equal(t, "Name must be at most 100 characters", errs["fullName"])
}

func TestValidateComplaint_MissingDescription(t *testing.T) {
	input := validInput()
	delete(input, "description")

	submission, errs := validation.ValidateComplaint(input)

	assert.Nil(t, submission)
	assert.Contains(t, errs, "description")
}

func TestValidateComplaint_PhoneCharset(t *testing.T) {
	input := validInput()
	input["phone"] = "12345abcde"

	submission, errs := validation.ValidateComplaint(input)

	assert.Nil(t, submission)
	assert.Equal(t, "Phone contains invalid characters", errs["phone"])

	// The permitted punctuation is fine.
	input["phone"] = "+1 (234) 567-89"
	submission, errs = validation.ValidateComplaint(input)
	require.Nil(t, errs)
	assert.NotNil(t, submission)
}

func TestValidateComplaint_InvalidComplaintType(t *testing.T) {
	input := validInput()
	input["complaintType"] = "unlisted_type"

	submission, errs := validation.ValidateComplaint(input)

	assert.Nil(t, submission)
	assert.Equal(t, "Invalid complaint type", errs["complaintType"])
}

func TestValidateComplaint_NonStringField(t *testing.T) {
	input := validInput()
	input["wardNumber"] = 4.0

	submission, errs := validation.ValidateComplaint(input)

	assert.Nil(t, submission)
	assert.Contains(t, errs, "wardNumber")
}

// Unexpected fields are each reported under their own key and do not
// suppress errors on the known fields.
func TestValidateComplaint_UnexpectedFields(t *testing.T) {
	input := validInput()
	input["isAdmin"] = true
	input["description"] = "short"

	submission, errs := validation.ValidateComplaint(input)

	assert.Nil(t, submission)
	assert.Equal(t, "Unexpected field: isAdmin", errs["isAdmin"])
	assert.Contains(t, errs, "description")
}

func TestValidateComplaint_UnexpectedFieldAloneFails(t *testing.T) {
	input := validInput()
	input["extra"] = "anything"

	submission, errs := validation.ValidateComplaint(input)

	assert.Nil(t, submission)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs, "extra")
}

func TestSanitize_StripsTagsAndEscapes(t *testing.T) {
	got := validation.Sanitize(`<script>alert("hi")</script> Tom & Jerry's <b>bins`)

	assert.NotContains(t, got, "<")
	assert.NotContains(t, got, ">")
	assert.Equal(t, `alert(&quot;hi&quot;) Tom &amp; Jerry&#x27;s bins`, got)
}

func TestSanitize_PlainASCIIUnchanged(t *testing.T) {
	assert.Equal(t, "Bin 42 on Oak Street", validation.Sanitize("Bin 42 on Oak Street"))
}

// Text that carries no raw specials is a fixed point of Sanitize, so
// already-sanitized output is not double-escaped on a second pass.
func TestSanitize_IdempotentOnCleanText(t *testing.T) {
	once := validation.Sanitize("Tom & Jerry bins")
	assert.NotContains(t, once, "&amp;amp;")

	clean := "Tom and Jerry bins 42"
	assert.Equal(t, clean, validation.Sanitize(validation.Sanitize(clean)))
}

func TestValidateComplaint_SanitizesPassingFields(t *testing.T) {
	input := validInput()
	input["description"] = `Bins <b>overflowing</b> & "stinking" here`

	submission, errs := validation.ValidateComplaint(input)

	require.Nil(t, errs)
	assert.Equal(t, `Bins overflowing &amp; &quot;stinking&quot; here`, submission.Description)
}
