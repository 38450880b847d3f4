package lot

import (
	"encoding/json"
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestPayload_Int(t *testing.T) {
	p := Payload{
		"float":      float64(12),
		"fraction":   1.5,
		"int":        42,
		"int64":      int64(-3),
		"number":     json.Number("900719925474099312"),
		"bad_number": json.Number("1e400"),
		"string":     "12",
		"nil":        nil,
	}

	tests := []struct {
		key     string
		want    int64
		present bool
	}{
		{key: "float", want: 12, present: true},
		{key: "fraction", present: false},
		{key: "int", want: 42, present: true},
		{key: "int64", want: -3, present: true},
		{key: "number", want: 900719925474099312, present: true},
		{key: "bad_number", present: false},
		{key: "string", present: false},
		{key: "nil", present: false},
		{key: "missing", present: false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := p.Int(tt.key).Get()
			check.Equal(t, tt.present, ok)
			if tt.present {
				check.Equal(t, tt.want, got)
			}
		})
	}
}

func TestPayload_CountRejectsNegative(t *testing.T) {
	p := Payload{"negative": float64(-1), "zero": float64(0)}

	check.False(t, p.Count("negative").IsPresent())
	check.Equal(t, int64(0), p.Count("zero").OrElse(-1))
}

func TestPayload_StringAndObject(t *testing.T) {
	p := decode(`{"name": "x", "number": 3, "nested": {"a": 1}, "list": [1]}`)

	check.Equal(t, "x", p.String("name").OrElse(""))
	check.False(t, p.String("number").IsPresent())

	nested, ok := p.Object("nested")
	check.True(t, ok)
	check.Equal(t, int64(1), nested.Int("a").OrElse(0))

	_, ok = p.Object("list")
	check.False(t, ok)
	_, ok = p.Object("missing")
	check.False(t, ok)
}
