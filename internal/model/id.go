package model

import (
    "bytes"
    "encoding/json"
    "fmt"
    "strconv"
)

// ID is a document identifier assigned by the store.  json-server style
// stores hand out numbers, other stores hand out strings; both decode into
// an ID.  Digit-only IDs are encoded back as JSON numbers so that the store
// sees the same type it issued.
type ID string

func (id ID) String() string { return string(id) }

// IsZero reports whether no identifier has been assigned.
func (id ID) IsZero() bool { return id == "" }

func (id ID) MarshalJSON() ([]byte, error) {
    if id == "" {
        return []byte(`""`), nil
    }
    if isDigits(string(id)) {
        return []byte(id), nil
    }
    return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(b []byte) error {
    b = bytes.TrimSpace(b)
    if len(b) == 0 || bytes.Equal(b, []byte("null")) {
        *id = ""
        return nil
    }
    if b[0] == '"' {
        var s string
        if err := json.Unmarshal(b, &s); err != nil {
            return err
        }
        *id = ID(s)
        return nil
    }
    var n json.Number
    if err := json.Unmarshal(b, &n); err != nil {
        return fmt.Errorf("model: id must be a string or number: %w", err)
    }
    if i, err := n.Int64(); err == nil {
        *id = ID(strconv.FormatInt(i, 10))
        return nil
    }
    *id = ID(n.String())
    return nil
}

func isDigits(s string) bool {
    if s == "" || len(s) > 15 || (len(s) > 1 && s[0] == '0') {
        return false
    }
    for i := 0; i < len(s); i++ {
        if s[i] < '0' || s[i] > '9' {
            return false
        }
    }
    return true
}
