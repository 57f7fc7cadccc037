package validation

import (
	"awards-backend/models"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"
)

var personNamePattern = regexp.MustCompile(`^[A-Za-z \-.']+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "personname", func(fl validator.FieldLevel) bool {
		return personNamePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "awardcategory", func(fl validator.FieldLevel) bool {
		category := models.AwardCategory(fl.Field().String())
		for _, c := range models.AwardCategories {
			if c == category {
				return true
			}
		}
		return false
	})
	mustRegister(v, "trimmedmin", func(fl validator.FieldLevel) bool {
		min, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= min
	})
	mustRegister(v, "accepted", func(fl validator.FieldLevel) bool {
		return fl.Field().Kind() == reflect.Bool && fl.Field().Bool()
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

type awardSelection struct {
	AwardID       string `json:"awardId" validate:"required"`
	AwardCategory string `json:"awardCategory" validate:"awardcategory"`
}

type nomineeFields struct {
	Name         string `json:"name" validate:"required,max=100,personname"`
	Email        string `json:"email" validate:"omitempty,email,max=255"`
	Organization string `json:"organization" validate:"max=200"`
	Position     string `json:"position" validate:"max=100"`
}

type nominatorFields struct {
	Name         string `json:"name" validate:"required,max=100,personname"`
	Email        string `json:"email" validate:"required,email,max=255"`
	Organization string `json:"organization" validate:"max=200"`
	Position     string `json:"position" validate:"max=100"`
}

type nomineeStep struct {
	NomineeInfo nomineeFields `json:"nomineeInfo"`
}

type nominatorStep struct {
	NominatorInfo nominatorFields `json:"nominatorInfo"`
}

type nominationDetails struct {
	NominationText string `json:"nominationText" validate:"min=50,max=2000,trimmedmin=50"`
	AgreedToTerms  bool   `json:"agreedToTerms" validate:"accepted"`
}

// stepRules decodes one step's fields into the form and returns the
// struct its rules run against. paths fixes the error order.
type stepRules struct {
	paths  []string
	decode func(d *decoder, f *NominationForm) interface{}
}

var rules = map[Step]stepRules{
	StepAwardSelection: {
		paths: []string{"awardId", "awardCategory"},
		decode: func(d *decoder, f *NominationForm) interface{} {
			f.AwardID = deref(d.str("awardId", true))
			f.AwardCategory = models.AwardCategory(deref(d.str("awardCategory", true)))
			return &awardSelection{AwardID: f.AwardID, AwardCategory: string(f.AwardCategory)}
		},
	},
	StepNomineeInfo: {
		paths: personPaths("nomineeInfo"),
		decode: func(d *decoder, f *NominationForm) interface{} {
			f.NomineeInfo = d.person("nomineeInfo", false)
			p := f.NomineeInfo
			return &nomineeStep{NomineeInfo: nomineeFields{
				Name:         p.Name,
				Email:        deref(p.Email),
				Organization: deref(p.Organization),
				Position:     deref(p.Position),
			}}
		},
	},
	StepNominatorInfo: {
		paths: personPaths("nominatorInfo"),
		decode: func(d *decoder, f *NominationForm) interface{} {
			f.NominatorInfo = d.person("nominatorInfo", true)
			p := f.NominatorInfo
			return &nominatorStep{NominatorInfo: nominatorFields{
				Name:         p.Name,
				Email:        deref(p.Email),
				Organization: deref(p.Organization),
				Position:     deref(p.Position),
			}}
		},
	},
	StepNominationDetails: {
		paths: []string{"nominationText", "agreedToTerms"},
		decode: func(d *decoder, f *NominationForm) interface{} {
			f.NominationText = deref(d.str("nominationText", true))
			f.AgreedToTerms = d.boolean("agreedToTerms")
			return &nominationDetails{NominationText: f.NominationText, AgreedToTerms: f.AgreedToTerms}
		},
	},
}

func personPaths(prefix string) []string {
	return []string{
		prefix,
		prefix + ".name",
		prefix + ".email",
		prefix + ".organization",
		prefix + ".position",
	}
}

// ValidateNominationForm runs every step's rules against raw and returns
// all failures together. raw may be JSON bytes, a json.RawMessage, a
// NominationForm or any value that marshals to JSON. It never panics.
func ValidateNominationForm(raw interface{}) (result *FormResult) {
	defer func() {
		if r := recover(); r != nil {
			errs := []FieldError{{Message: "Invalid nomination payload"}}
			result = &FormResult{FieldErrors: errs, Errors: errorStrings(errs)}
		}
	}()

	form, errs := run(raw, Steps)
	if len(errs) > 0 {
		return &FormResult{Malformed: malformed(errs), FieldErrors: errs, Errors: errorStrings(errs)}
	}

	data := ValidatedNomination(*form)
	return &FormResult{IsValid: true, Data: &data}
}

// ValidateStep runs only the rules of one form step
func ValidateStep(step Step, raw interface{}) (*StepResult, error) {
	if !step.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStep, step)
	}

	_, errs := run(raw, []Step{step})
	return &StepResult{
		IsValid:     len(errs) == 0,
		Malformed:   malformed(errs),
		Errors:      errorStrings(errs),
		FieldErrors: errs,
	}, nil
}

// MsgInvalidJSON is reported when the payload is not syntactically valid JSON
const MsgInvalidJSON = "Invalid JSON"

func malformed(errs []FieldError) bool {
	return len(errs) == 1 && errs[0].Path == "" && errs[0].Message == MsgInvalidJSON
}

func run(raw interface{}, steps []Step) (*NominationForm, []FieldError) {
	payload, err := toJSON(raw)
	if err != nil {
		return nil, []FieldError{{Message: "Invalid nomination payload"}}
	}
	if !gjson.ValidBytes(payload) {
		return nil, []FieldError{{Message: MsgInvalidJSON}}
	}

	root := gjson.ParseBytes(payload)
	if !root.IsObject() {
		return nil, []FieldError{{Message: "Expected object, received " + jsonTypeName(root)}}
	}

	d := newDecoder(root)
	form := &NominationForm{}
	var errs []FieldError

	for _, step := range steps {
		r := rules[step]
		target := r.decode(d, form)

		messages := make(map[string]string, len(d.errs))
		for path, msg := range d.errs {
			messages[path] = msg
		}

		if err := validate.Struct(target); err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				return nil, []FieldError{{Message: err.Error()}}
			}
			for _, fe := range verrs {
				path := fieldPath(fe)
				if d.skipped(path) {
					continue
				}
				if _, seen := messages[path]; !seen {
					messages[path] = ruleMessage(path, fe.Tag())
				}
			}
		}

		for _, path := range r.paths {
			if msg, ok := messages[path]; ok {
				errs = append(errs, FieldError{Path: path, Message: msg})
			}
		}
	}

	return form, errs
}

// fieldPath drops the root struct name from the validator namespace
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func toJSON(raw interface{}) ([]byte, error) {
	switch v := raw.(type) {
	case []byte:
		return v, nil
	case json.RawMessage:
		return v, nil
	default:
		return json.Marshal(v)
	}
}
