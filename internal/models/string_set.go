package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// StringSet is an unordered set of strings persisted as a JSON array.
// Values are trimmed, deduplicated and kept sorted so equal sets compare equal.
type StringSet []string

// NewStringSet builds a normalized set, dropping blank values.
func NewStringSet(values ...string) StringSet {
	seen := make(map[string]struct{}, len(values))
	set := make(StringSet, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		set = append(set, v)
	}
	sort.Strings(set)
	return set
}

// Contains reports whether v is a member of the set.
func (s StringSet) Contains(v string) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}

// Value implements the driver.Valuer interface
func (s StringSet) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSet) Scan(value interface{}) error {
	if value == nil {
		*s = StringSet{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for StringSet", value)
	}
	if len(bytes) == 0 {
		*s = StringSet{}
		return nil
	}

	var values []string
	if err := json.Unmarshal(bytes, &values); err != nil {
		return err
	}
	*s = NewStringSet(values...)
	return nil
}

// GormDBDataType stores the set as JSONB on PostgreSQL and TEXT elsewhere.
func (StringSet) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "JSONB"
	}
	return "TEXT"
}
