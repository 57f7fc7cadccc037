package validation

import "strings"

// fieldLabels maps field paths to the labels shown to form users
var fieldLabels = map[string]string{
	"awardId":                    "Award",
	"awardCategory":              "Award category",
	"nomineeInfo":                "Nominee",
	"nomineeInfo.name":           "Nominee name",
	"nomineeInfo.email":          "Nominee email",
	"nomineeInfo.organization":   "Nominee organization",
	"nomineeInfo.position":       "Nominee position",
	"nominatorInfo":              "Nominator",
	"nominatorInfo.name":         "Your name",
	"nominatorInfo.email":        "Your email",
	"nominatorInfo.organization": "Your organization",
	"nominatorInfo.position":     "Your position",
	"nominationText":             "Nomination statement",
	"agreedToTerms":              "Terms and conditions",
}

// ruleMessages is keyed by "<field>.<tag>" where field is the last path segment
var ruleMessages = map[string]string{
	"awardId.required":            "Award selection is required",
	"awardCategory.awardcategory": "Invalid award category",
	"name.required":               "Name is required",
	"name.max":                    "Name must be less than 100 characters",
	"name.personname":             "Name can only contain letters, spaces, hyphens, periods, and apostrophes",
	"email.required":              "Email is required",
	"email.email":                 "Invalid email address",
	"email.max":                   "Email must be less than 255 characters",
	"organization.max":            "Organization must be less than 200 characters",
	"position.max":                "Position must be less than 100 characters",
	"nominationText.min":          "Nomination statement must be at least 50 characters",
	"nominationText.trimmedmin":   "Nomination statement must be at least 50 characters",
	"nominationText.max":          "Nomination statement must be less than 2000 characters",
	"agreedToTerms.accepted":      "You must agree to the terms and conditions",
}

func ruleMessage(path, tag string) string {
	field := path
	if i := strings.LastIndex(path, "."); i >= 0 {
		field = path[i+1:]
	}
	if msg, ok := ruleMessages[field+"."+tag]; ok {
		return msg
	}
	return "Failed " + tag + " validation"
}

// FormatErrorMessage prefixes message with the display label of fieldPath,
// falling back to the path itself when it has no label.
func FormatErrorMessage(fieldPath, message string) string {
	label, ok := fieldLabels[fieldPath]
	if !ok {
		label = fieldPath
	}
	return label + ": " + message
}
