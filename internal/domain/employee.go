package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Employee field names as they appear on the wire and in the store.
const (
	FieldID          = "id"
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldDesignation = "designation"
	FieldDepartment  = "department"
)

// reservedFields can never be carried in Employee.Extra.
var reservedFields = map[string]bool{
	FieldID:          true,
	"_id":            true,
	"eid":            true,
	FieldFirstName:   true,
	FieldLastName:    true,
	FieldDesignation: true,
	FieldDepartment:  true,
}

// Employee is a directory record. Only the names are validated; any other
// attribute supplied by the caller is kept verbatim in Extra.
type Employee struct {
	ID          string
	FirstName   string
	LastName    string
	Designation string
	Department  string
	Extra       map[string]any
}

// EmployeeFromFields builds an Employee from a flat field map such as a
// decoded request. Known fields must be strings; unknown fields go to Extra.
// The result is not validated.
func EmployeeFromFields(fields map[string]any) (*Employee, error) {
	patch, err := NewEmployeePatch(fields)
	if err != nil {
		return nil, err
	}

	e := &Employee{}
	e.Apply(patch)
	return e, nil
}

// Validate checks the required name fields.
func (e *Employee) Validate() error {
	if strings.TrimSpace(e.FirstName) == "" {
		return ErrEmptyFirstName
	}
	if strings.TrimSpace(e.LastName) == "" {
		return ErrEmptyLastName
	}
	return nil
}

// Apply merges the supplied patch fields into e. Fields absent from the
// patch are left untouched.
func (e *Employee) Apply(p EmployeePatch) {
	if p.FirstName != nil {
		e.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		e.LastName = *p.LastName
	}
	if p.Designation != nil {
		e.Designation = *p.Designation
	}
	if p.Department != nil {
		e.Department = *p.Department
	}
	if len(p.Extra) > 0 && e.Extra == nil {
		e.Extra = make(map[string]any, len(p.Extra))
	}
	for k, v := range p.Extra {
		e.Extra[k] = v
	}
}

// Clone returns a deep-enough copy: Extra is copied one level down.
func (e *Employee) Clone() *Employee {
	cp := *e
	if e.Extra != nil {
		cp.Extra = make(map[string]any, len(e.Extra))
		for k, v := range e.Extra {
			cp.Extra[k] = v
		}
	}
	return &cp
}

// Fields flattens the employee into a single map, the inverse of
// EmployeeFromFields.
func (e *Employee) Fields() map[string]any {
	out := make(map[string]any, len(e.Extra)+5)
	for k, v := range e.Extra {
		out[k] = v
	}
	if e.ID != "" {
		out[FieldID] = e.ID
	}
	out[FieldFirstName] = e.FirstName
	out[FieldLastName] = e.LastName
	if e.Designation != "" {
		out[FieldDesignation] = e.Designation
	}
	if e.Department != "" {
		out[FieldDepartment] = e.Department
	}
	return out
}

// MarshalJSON emits the employee as a flat object with extras inlined.
func (e Employee) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Fields())
}

// UnmarshalJSON accepts a flat object. The id field is honoured so
// responses round-trip; every other unknown field lands in Extra.
func (e *Employee) UnmarshalJSON(data []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	parsed, err := EmployeeFromFields(fields)
	if err != nil {
		return err
	}
	if id, ok := fields[FieldID].(string); ok {
		parsed.ID = id
	}

	*e = *parsed
	return nil
}

// EmployeePatch is a merge patch: nil fields are not changed.
type EmployeePatch struct {
	FirstName   *string
	LastName    *string
	Designation *string
	Department  *string
	Extra       map[string]any
}

// NewEmployeePatch parses a flat field map into a patch. Reserved id keys
// are dropped, null values for known fields are treated as absent.
func NewEmployeePatch(fields map[string]any) (EmployeePatch, error) {
	var p EmployeePatch
	var err error

	if p.FirstName, err = stringField(fields, FieldFirstName); err != nil {
		return EmployeePatch{}, err
	}
	if p.LastName, err = stringField(fields, FieldLastName); err != nil {
		return EmployeePatch{}, err
	}
	if p.Designation, err = stringField(fields, FieldDesignation); err != nil {
		return EmployeePatch{}, err
	}
	if p.Department, err = stringField(fields, FieldDepartment); err != nil {
		return EmployeePatch{}, err
	}

	for k, v := range fields {
		if reservedFields[k] || strings.HasPrefix(k, "$") || k == "" {
			continue
		}
		// Stores read dotted names as paths, not literal keys.
		if strings.Contains(k, ".") {
			return EmployeePatch{}, fmt.Errorf("%w: field name %q must not contain '.'", ErrValidation, k)
		}
		if containsNUL(k) || containsNUL(v) {
			return EmployeePatch{}, fmt.Errorf("%w: %s must not contain NUL characters", ErrValidation, k)
		}
		if p.Extra == nil {
			p.Extra = make(map[string]any)
		}
		p.Extra[k] = v
	}

	return p, nil
}

// IsEmpty reports whether the patch changes nothing.
func (p EmployeePatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil &&
		p.Designation == nil && p.Department == nil && len(p.Extra) == 0
}

// Validate rejects patches that would blank a required name.
func (p EmployeePatch) Validate() error {
	if p.FirstName != nil && strings.TrimSpace(*p.FirstName) == "" {
		return ErrEmptyFirstName
	}
	if p.LastName != nil && strings.TrimSpace(*p.LastName) == "" {
		return ErrEmptyLastName
	}
	return nil
}

// Fields returns the supplied fields keyed by their stored names.
func (p EmployeePatch) Fields() map[string]any {
	out := make(map[string]any, len(p.Extra)+4)
	for k, v := range p.Extra {
		out[k] = v
	}
	if p.FirstName != nil {
		out[FieldFirstName] = *p.FirstName
	}
	if p.LastName != nil {
		out[FieldLastName] = *p.LastName
	}
	if p.Designation != nil {
		out[FieldDesignation] = *p.Designation
	}
	if p.Department != nil {
		out[FieldDepartment] = *p.Department
	}
	return out
}

// EmployeeFilter selects employees by exact designation and/or department.
// Empty fields do not constrain the match.
type EmployeeFilter struct {
	Designation string
	Department  string
}

// IsEmpty reports whether the filter matches every employee.
func (f EmployeeFilter) IsEmpty() bool {
	return f.Designation == "" && f.Department == ""
}

// Matches reports whether e satisfies every non-empty filter field.
func (f EmployeeFilter) Matches(e *Employee) bool {
	if f.Designation != "" && e.Designation != f.Designation {
		return false
	}
	if f.Department != "" && e.Department != f.Department {
		return false
	}
	return true
}

func stringField(fields map[string]any, key string) (*string, error) {
	raw, ok := fields[key]
	if !ok || raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a string", ErrValidation, key)
	}
	if containsNUL(s) {
		return nil, fmt.Errorf("%w: %s must not contain NUL characters", ErrValidation, key)
	}
	return &s, nil
}

// containsNUL reports whether v, or any string nested in it, holds a NUL
// byte. PostgreSQL text and jsonb reject them.
func containsNUL(v any) bool {
	switch t := v.(type) {
	case string:
		return strings.ContainsRune(t, 0)
	case map[string]any:
		for k, nested := range t {
			if containsNUL(k) || containsNUL(nested) {
				return true
			}
		}
	case []any:
		for _, nested := range t {
			if containsNUL(nested) {
				return true
			}
		}
	}
	return false
}
