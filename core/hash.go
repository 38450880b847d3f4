package core

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// HashField is one named value contributing to a state hash.
type HashField struct {
	Name  string
	Value string
}

// ComputeStateHash computes a hash over an ordered list of named fields.
//
// Formula: SHA256(name1 + "=" + value1 + "|" + name2 + "=" + value2 + ...)
//
// Callers must pass fields in a fixed order so equal states hash equally.
func ComputeStateHash(fields []HashField) string {
	var b strings.Builder
	for i, field := range fields {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(field.Name)
		b.WriteByte('=')
		b.WriteString(field.Value)
	}
	hash := sha256.Sum256([]byte(b.String()))
	return fmt.Sprintf("%x", hash)
}

// OptionalHashValue renders an optional value for hashing. Absent values
// render as "-" so they never collide with a present empty string.
func OptionalHashValue[T any](o Optional[T]) string {
	v, ok := o.Get()
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%q", fmt.Sprint(v))
}
