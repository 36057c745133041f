package auth

import (
	"github.com/iliyamo/lawshop/internal/model"
)

// Field names a registration form input.
type Field string

const (
	FieldLastName        Field = "lastName"
	FieldFirstName       Field = "firstName"
	FieldMiddleName      Field = "middleName"
	FieldPhone           Field = "phone"
	FieldEmail           Field = "email"
	FieldDOB             Field = "dob"
	FieldPassword        Field = "password"
	FieldPasswordConfirm Field = "passwordConfirm"
	FieldNickname        Field = "nickname"
	FieldNicknameManual  Field = "nicknameManual"
	FieldAgreement       Field = "agreement"
)

// formOrder is the on-screen order; InvalidFields reports in it.
var formOrder = []Field{
	FieldLastName, FieldFirstName, FieldMiddleName, FieldPhone, FieldEmail, FieldDOB,
	FieldPassword, FieldPasswordConfirm, FieldNickname, FieldNicknameManual, FieldAgreement,
}

// FieldState is the value and verdict of one input.
type FieldState struct {
	Value string `json:"value"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// Form is the registration form record. Its validity map starts with only
// the optional middle name and the hidden manual nickname marked valid.
type Form struct {
	Fields         map[Field]*FieldState
	PasswordMode   model.PasswordStrategy
	ManualNickname bool
	Submitting     bool

	// Checks caches uniqueness probes for the life of the form.
	Checks *UniquenessCache
}

func NewForm(checks *UniquenessCache) *Form {
	f := &Form{Checks: checks}
	f.Reset()
	return f
}

// Reset clears every value and verdict and forgets cached probes.
func (f *Form) Reset() {
	f.Fields = make(map[Field]*FieldState, len(formOrder))
	for _, name := range formOrder {
		f.Fields[name] = &FieldState{Valid: name == FieldMiddleName || name == FieldNicknameManual}
	}
	f.PasswordMode = model.PasswordManual
	f.ManualNickname = false
	f.Submitting = false
	if f.Checks != nil {
		f.Checks.Reset()
	}
}

func (f *Form) field(name Field) *FieldState {
	st, ok := f.Fields[name]
	if !ok {
		st = &FieldState{}
		f.Fields[name] = st
	}
	return st
}

// Input stores a typed value. Until it is validated again the field is
// invalid, except the middle name which is never required.
func (f *Form) Input(name Field, value string) {
	st := f.field(name)
	st.Value = value
	st.Error = ""
	st.Valid = name == FieldMiddleName
}

// Mark records a validation verdict; a nil err marks the field valid.
func (f *Form) Mark(name Field, err error) {
	st := f.field(name)
	st.Valid = err == nil
	st.Error = ""
	if err != nil {
		st.Error = err.Error()
	}
}

// SetPasswordMode switches between typed and generated passwords. Going
// manual clears both password inputs; going auto marks them valid since
// the generator only produces acceptable passwords.
func (f *Form) SetPasswordMode(mode model.PasswordStrategy) {
	f.PasswordMode = mode
	if mode == model.PasswordAuto {
		f.Mark(FieldPassword, nil)
		f.Mark(FieldPasswordConfirm, nil)
		return
	}
	f.PasswordMode = model.PasswordManual
	f.Input(FieldPassword, "")
	f.Input(FieldPasswordConfirm, "")
}

func (f *Form) required(name Field) bool {
	switch name {
	case FieldPassword, FieldPasswordConfirm:
		return f.PasswordMode != model.PasswordAuto
	case FieldNickname:
		return !f.ManualNickname
	case FieldNicknameManual:
		return f.ManualNickname
	}
	return true
}

// InvalidFields lists the required fields that are not valid, in form
// order.
func (f *Form) InvalidFields() []Field {
	var out []Field
	for _, name := range formOrder {
		if !f.required(name) {
			continue
		}
		if st := f.Fields[name]; st == nil || !st.Valid {
			out = append(out, name)
		}
	}
	return out
}

// Submittable reports whether the submit button is enabled.
func (f *Form) Submittable() bool {
	return !f.Submitting && len(f.InvalidFields()) == 0
}

// AllowPaste reports whether pasting or dropping text into the field is
// allowed. The password confirmation must be typed.
func AllowPaste(name Field) bool { return name != FieldPasswordConfirm }
