// FILE: lixenwraith/rlog/sanitizer/sanitizer.go
// Package sanitizer provides a fluent and composable interface for cleaning
// log message text based on configurable rules using bitwise filter flags and transforms.
package sanitizer

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/davecgh/go-spew/spew"
)

// Filter flags for character matching
const (
	FilterNonPrintable uint64 = 1 << iota // Matches runes not classified as printable by strconv.IsPrint
	FilterControl                         // Matches control characters (unicode.IsControl)
	FilterWhitespace                      // Matches whitespace characters (unicode.IsSpace)
	FilterLineBreak                       // Matches '\n', '\r', U+2028 and U+2029
)

// Transform flags for character transformation
const (
	TransformStrip     uint64 = 1 << iota // Removes the character
	TransformHexEncode                    // Encodes the character's UTF-8 bytes as "<XXYY>"
	TransformEscape                       // Escapes the character with backslashes (e.g., '\n', '\u0000')
	TransformSpace                        // Replaces the character with a single space
)

// PolicyPreset defines pre-configured sanitization policies
type PolicyPreset string

const (
	PolicyRaw  PolicyPreset = "raw"  // Raw is a no-op (passthrough)
	PolicyTxt  PolicyPreset = "txt"  // Non-printable runes are hex encoded, line breaks kept
	PolicyLine PolicyPreset = "line" // Keeps every record on a single physical line
)

// rule represents a single sanitization rule
type rule struct {
	filter    uint64
	transform uint64
}

// policyRules contains pre-configured rules for each policy
var policyRules = map[PolicyPreset][]rule{
	PolicyRaw: {},
	PolicyTxt: {{filter: FilterNonPrintable, transform: TransformHexEncode}},
	PolicyLine: {
		{filter: FilterLineBreak, transform: TransformEscape},
		{filter: FilterNonPrintable, transform: TransformHexEncode},
	},
}

// filterOrder fixes the evaluation order of individual filter flags
var filterOrder = []uint64{FilterLineBreak, FilterControl, FilterWhitespace, FilterNonPrintable}

// filterCheckers maps individual filter flags to their check functions
var filterCheckers = map[uint64]func(rune) bool{
	FilterNonPrintable: func(r rune) bool { return r != '\n' && r != '\t' && !strconv.IsPrint(r) },
	FilterControl:      unicode.IsControl,
	FilterWhitespace:   unicode.IsSpace,
	FilterLineBreak: func(r rune) bool {
		switch r {
		case '\n', '\r', '\u2028', '\u2029':
			return true
		}
		return false
	},
}

// Sanitizer provides chainable text sanitization. Not safe for concurrent use.
type Sanitizer struct {
	rules []rule
	buf   []byte
}

// New creates a new Sanitizer instance
func New() *Sanitizer {
	return &Sanitizer{
		rules: []rule{},
		buf:   make([]byte, 0, 256),
	}
}

// Rule adds a custom rule to the sanitizer (appended, earliest rule applies first)
func (s *Sanitizer) Rule(filter uint64, transform uint64) *Sanitizer {
	s.rules = append(s.rules, rule{filter: filter, transform: transform})
	return s
}

// Policy applies a pre-configured policy to the sanitizer (appended)
func (s *Sanitizer) Policy(preset PolicyPreset) *Sanitizer {
	if rules, ok := policyRules[preset]; ok {
		s.rules = append(s.rules, rules...)
	}
	return s
}

// IsPassthrough reports whether the sanitizer has no rules
func (s *Sanitizer) IsPassthrough() bool {
	return len(s.rules) == 0
}

// ValidPolicy reports whether name is a known preset
func ValidPolicy(name string) bool {
	_, ok := policyRules[PolicyPreset(name)]
	return ok
}

// Sanitize applies all configured rules to the input string
func (s *Sanitizer) Sanitize(data string) string {
	if len(s.rules) == 0 {
		return data
	}

	s.buf = s.buf[:0]

	for _, r := range data {
		matched := false
		// First matching rule wins
		for _, rl := range s.rules {
			if matchesFilter(r, rl.filter) {
				applyTransform(&s.buf, r, rl.transform)
				matched = true
				break
			}
		}
		if !matched {
			s.buf = utf8.AppendRune(s.buf, r)
		}
	}

	return string(s.buf)
}

// matchesFilter checks if a rune matches any filter in the mask
func matchesFilter(r rune, filterMask uint64) bool {
	for _, flag := range filterOrder {
		if (filterMask&flag) != 0 && filterCheckers[flag](r) {
			return true
		}
	}
	return false
}

// applyTransform applies the specified transform to the buffer
func applyTransform(buf *[]byte, r rune, transformMask uint64) {
	switch {
	case (transformMask & TransformStrip) != 0:
		// strip

	case (transformMask & TransformHexEncode) != 0:
		var runeBytes [utf8.UTFMax]byte
		n := utf8.EncodeRune(runeBytes[:], r)
		*buf = append(*buf, '<')
		*buf = append(*buf, hex.EncodeToString(runeBytes[:n])...)
		*buf = append(*buf, '>')

	case (transformMask & TransformEscape) != 0:
		switch r {
		case '\n':
			*buf = append(*buf, '\\', 'n')
		case '\r':
			*buf = append(*buf, '\\', 'r')
		case '\t':
			*buf = append(*buf, '\\', 't')
		case '\b':
			*buf = append(*buf, '\\', 'b')
		case '\f':
			*buf = append(*buf, '\\', 'f')
		case '\\':
			*buf = append(*buf, '\\', '\\')
		default:
			*buf = append(*buf, fmt.Sprintf("\\u%04x", r)...)
		}

	case (transformMask & TransformSpace) != 0:
		*buf = append(*buf, ' ')
	}
}

// Serializer renders values into message text.
// Format is "raw" (values verbatim, complex types dumped) or "txt" (strings quoted when ambiguous).
type Serializer struct {
	format    string
	sanitizer *Sanitizer
}

// NewSerializer creates a handler with format-specific behavior
func NewSerializer(format string, san *Sanitizer) *Serializer {
	if san == nil {
		san = New()
	}
	return &Serializer{
		format:    format,
		sanitizer: san,
	}
}

// WriteString writes a string with format-specific handling
func (se *Serializer) WriteString(buf *[]byte, s string) {
	sanitized := se.sanitizer.Sanitize(s)
	if se.format != "txt" || !se.NeedsQuotes(sanitized) {
		*buf = append(*buf, sanitized...)
		return
	}
	*buf = append(*buf, '"')
	for i := 0; i < len(sanitized); i++ {
		if sanitized[i] == '"' || sanitized[i] == '\\' {
			*buf = append(*buf, '\\')
		}
		*buf = append(*buf, sanitized[i])
	}
	*buf = append(*buf, '"')
}

// WriteNumber writes a number value
func (se *Serializer) WriteNumber(buf *[]byte, n string) {
	*buf = append(*buf, n...)
}

// WriteBool writes a boolean value
func (se *Serializer) WriteBool(buf *[]byte, b bool) {
	*buf = strconv.AppendBool(*buf, b)
}

// WriteNil writes a nil value
func (se *Serializer) WriteNil(buf *[]byte) {
	*buf = append(*buf, "<nil>"...)
}

// WriteComplex writes maps, slices, structs and pointers
func (se *Serializer) WriteComplex(buf *[]byte, v any) {
	switch se.format {
	case "raw":
		var b bytes.Buffer
		dumper := &spew.ConfigState{
			Indent:                  " ",
			MaxDepth:                10,
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
		}
		dumper.Fdump(&b, v)
		*buf = append(*buf, se.sanitizer.Sanitize(string(bytes.TrimSpace(b.Bytes())))...)

	default:
		se.WriteString(buf, fmt.Sprintf("%+v", v))
	}
}

// NeedsQuotes determines if quoting is needed
func (se *Serializer) NeedsQuotes(s string) bool {
	if se.format != "txt" {
		return false
	}
	if len(s) == 0 {
		return true
	}
	for _, r := range s {
		if unicode.IsSpace(r) {
			return true
		}
		switch r {
		case '"', '\'', '\\', '[', ']', '{', '}', '=':
			return true
		}
		if !unicode.IsPrint(r) {
			return true
		}
	}
	return false
}
