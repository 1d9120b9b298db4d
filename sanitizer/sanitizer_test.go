// FILE: lixenwraith/rlog/sanitizer/sanitizer_test.go
package sanitizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizerPolicies(t *testing.T) {
	tests := []struct {
		name   string
		policy PolicyPreset
		input  string
		want   string
	}{
		{"raw passthrough", PolicyRaw, "a\nb\x00c", "a\nb\x00c"},
		{"txt hex encodes nul", PolicyTxt, "a\x00b", "a<00>b"},
		{"txt keeps newline", PolicyTxt, "a\nb", "a\nb"},
		{"txt keeps tab", PolicyTxt, "a\tb", "a\tb"},
		{"line escapes newline", PolicyLine, "first\nsecond", `first\nsecond`},
		{"line escapes carriage return", PolicyLine, "a\r\nb", `a\r\nb`},
		{"line escapes unicode separator", PolicyLine, "a\u2028b", `a\u2028b`},
		{"line hex encodes bell", PolicyLine, "a\ab", "a<07>b"},
		{"plain text untouched", PolicyLine, "user 42 logged in", "user 42 logged in"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New().Policy(tt.policy)
			assert.Equal(t, tt.want, s.Sanitize(tt.input))
		})
	}
}

func TestSanitizerCustomRules(t *testing.T) {
	t.Run("first matching rule wins", func(t *testing.T) {
		s := New().
			Rule(FilterWhitespace, TransformStrip).
			Rule(FilterWhitespace, TransformSpace)
		assert.Equal(t, "abc", s.Sanitize("a b\tc"))
	})

	t.Run("control to space", func(t *testing.T) {
		s := New().Rule(FilterControl, TransformSpace)
		assert.Equal(t, "a b", s.Sanitize("a\nb"))
	})

	t.Run("multibyte hex", func(t *testing.T) {
		s := New().Rule(FilterNonPrintable, TransformHexEncode)
		assert.Equal(t, "<e280a8>", s.Sanitize("\u2028"))
	})

	t.Run("passthrough", func(t *testing.T) {
		assert.True(t, New().IsPassthrough())
		assert.False(t, New().Policy(PolicyTxt).IsPassthrough())
		assert.True(t, New().Policy(PolicyRaw).IsPassthrough())
	})
}

func TestValidPolicy(t *testing.T) {
	assert.True(t, ValidPolicy("raw"))
	assert.True(t, ValidPolicy("txt"))
	assert.True(t, ValidPolicy("line"))
	assert.False(t, ValidPolicy("json"))
	assert.False(t, ValidPolicy(""))
}

func TestSerializer(t *testing.T) {
	t.Run("txt quotes ambiguous strings", func(t *testing.T) {
		se := NewSerializer("txt", nil)
		var buf []byte
		se.WriteString(&buf, `say "hi"`)
		assert.Equal(t, `"say \"hi\""`, string(buf))

		buf = buf[:0]
		se.WriteString(&buf, "plain")
		assert.Equal(t, "plain", string(buf))

		buf = buf[:0]
		se.WriteString(&buf, "")
		assert.Equal(t, `""`, string(buf))
	})

	t.Run("raw never quotes", func(t *testing.T) {
		se := NewSerializer("raw", nil)
		var buf []byte
		se.WriteString(&buf, "two words")
		assert.Equal(t, "two words", string(buf))
		assert.False(t, se.NeedsQuotes(""))
	})

	t.Run("raw dumps complex values", func(t *testing.T) {
		se := NewSerializer("raw", nil)
		var buf []byte
		se.WriteComplex(&buf, map[string]int{"b": 2, "a": 1})
		out := string(buf)
		assert.Contains(t, out, "map[string]int")
		assert.Less(t, strings.Index(out, `"a"`), strings.Index(out, `"b"`))
	})

	t.Run("txt complex uses fmt", func(t *testing.T) {
		se := NewSerializer("txt", nil)
		var buf []byte
		se.WriteComplex(&buf, []int{1, 2})
		assert.Equal(t, `"[1 2]"`, string(buf))
	})

	t.Run("scalars", func(t *testing.T) {
		se := NewSerializer("raw", nil)
		var buf []byte
		se.WriteBool(&buf, true)
		buf = append(buf, ' ')
		se.WriteNumber(&buf, "42")
		buf = append(buf, ' ')
		se.WriteNil(&buf)
		assert.Equal(t, "true 42 <nil>", string(buf))
	})
}
