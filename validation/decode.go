package validation

import (
	"strings"

	"github.com/tidwall/gjson"
)

// decoder reads form fields out of a JSON document, recording a type
// mismatch per path instead of stopping at the first one.
type decoder struct {
	root    gjson.Result
	errs    map[string]string
	blocked []string
}

func newDecoder(root gjson.Result) *decoder {
	return &decoder{root: root, errs: make(map[string]string)}
}

func jsonTypeName(r gjson.Result) string {
	switch r.Type {
	case gjson.Null:
		return "null"
	case gjson.True, gjson.False:
		return "boolean"
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	default:
		if r.IsArray() {
			return "array"
		}
		return "object"
	}
}

func (d *decoder) fail(path, expected string, got gjson.Result) {
	if _, seen := d.errs[path]; !seen {
		d.errs[path] = "Expected " + expected + ", received " + jsonTypeName(got)
	}
}

// skipped reports whether path already failed or sits under a failed object
func (d *decoder) skipped(path string) bool {
	if _, failed := d.errs[path]; failed {
		return true
	}
	for _, prefix := range d.blocked {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// object reports whether the nested fields under path can be read. An
// absent object reads as empty so its required fields are reported.
func (d *decoder) object(path string) bool {
	r := d.root.Get(path)
	if !r.Exists() || r.IsObject() {
		return true
	}
	d.fail(path, "object", r)
	d.blocked = append(d.blocked, path+".")
	return false
}

func (d *decoder) str(path string, required bool) *string {
	r := d.root.Get(path)
	switch {
	case !r.Exists():
		return nil
	case r.Type == gjson.Null:
		if required {
			d.fail(path, "string", r)
		}
		return nil
	case r.Type == gjson.String:
		s := r.Str
		return &s
	default:
		d.fail(path, "string", r)
		return nil
	}
}

func (d *decoder) boolean(path string) bool {
	r := d.root.Get(path)
	switch {
	case !r.Exists():
		return false
	case r.Type == gjson.True:
		return true
	case r.Type == gjson.False:
		return false
	default:
		d.fail(path, "boolean", r)
		return false
	}
}

func (d *decoder) person(prefix string, emailRequired bool) PersonInfo {
	var p PersonInfo
	if !d.object(prefix) {
		return p
	}
	p.Name = deref(d.str(prefix+".name", true))
	p.Email = normalizeEmail(d.str(prefix+".email", emailRequired))
	p.Organization = d.str(prefix+".organization", false)
	p.Position = d.str(prefix+".position", false)
	return p
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	v := strings.ToLower(strings.TrimSpace(*email))
	if v == "" {
		return nil
	}
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
