package validation

import (
	"awards-backend/models"
	"errors"
)

// Step identifies one page of the multi-step nomination form
type Step int

const (
	StepAwardSelection Step = iota + 1
	StepNomineeInfo
	StepNominatorInfo
	StepNominationDetails
)

// Steps lists every form step in order
var Steps = []Step{StepAwardSelection, StepNomineeInfo, StepNominatorInfo, StepNominationDetails}

// ErrUnknownStep is returned by ValidateStep for a step outside 1..4
var ErrUnknownStep = errors.New("unknown form step")

// Valid reports whether s is one of the defined steps
func (s Step) Valid() bool {
	return s >= StepAwardSelection && s <= StepNominationDetails
}

// PersonInfo is a nominee or nominator as submitted. Nil pointers are
// absent values.
type PersonInfo struct {
	Name         string  `json:"name"`
	Email        *string `json:"email,omitempty"`
	Organization *string `json:"organization,omitempty"`
	Position     *string `json:"position,omitempty"`
}

// NominationForm is the submission payload of the nomination form
type NominationForm struct {
	AwardID        string               `json:"awardId"`
	AwardCategory  models.AwardCategory `json:"awardCategory"`
	NomineeInfo    PersonInfo           `json:"nomineeInfo"`
	NominatorInfo  PersonInfo           `json:"nominatorInfo"`
	NominationText string               `json:"nominationText"`
	AgreedToTerms  bool                 `json:"agreedToTerms"`
}

// ValidatedNomination is a form that passed every rule. Emails are
// trimmed and lower-cased; an empty optional email is absent.
type ValidatedNomination NominationForm

// FieldError is one failed rule. Path is empty for payload-level failures.
type FieldError struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// String renders "<path>: <message>", or the bare message without a path
func (e FieldError) String() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// FormResult is the outcome of whole-form validation
type FormResult struct {
	IsValid     bool
	Malformed   bool
	Data        *ValidatedNomination
	Errors      []string
	FieldErrors []FieldError
}

// StepResult is the outcome of validating a single step
type StepResult struct {
	IsValid     bool
	Malformed   bool
	Errors      []string
	FieldErrors []FieldError
}

func errorStrings(errs []FieldError) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.String()
	}
	return out
}
