package json

import (
	"fmt"
	"strconv"
	"strings"
)

// Serialize renders a Value as JSON text. Compact output carries no
// insignificant whitespace; pretty output indents two spaces per level
// with one member or element per line. Object keys appear in stored
// insertion order, so parse → mutate → serialize keeps file layouts
// stable.
func Serialize(v *Value, pretty bool) string {
	var b strings.Builder
	writeValue(&b, v, pretty, 0)
	return b.String()
}

func writeValue(b *strings.Builder, v *Value, pretty bool, indent int) {
	switch v.kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		if v.boolVal {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KindNumber:
		b.WriteString(formatNumber(v))
	case KindString:
		writeString(b, v.strVal)
	case KindArray:
		writeArray(b, v, pretty, indent)
	case KindObject:
		writeObject(b, v, pretty, indent)
	}
}

func writeArray(b *strings.Builder, v *Value, pretty bool, indent int) {
	if len(v.items) == 0 {
		b.WriteString("[]")
		return
	}

	b.WriteByte('[')
	for i, item := range v.items {
		if i > 0 {
			b.WriteByte(',')
		}
		if pretty {
			b.WriteByte('\n')
			writeIndent(b, indent+1)
		}
		writeValue(b, item, pretty, indent+1)
	}
	if pretty {
		b.WriteByte('\n')
		writeIndent(b, indent)
	}
	b.WriteByte(']')
}

func writeObject(b *strings.Builder, v *Value, pretty bool, indent int) {
	if len(v.members) == 0 {
		b.WriteString("{}")
		return
	}

	b.WriteByte('{')
	for i, m := range v.members {
		if i > 0 {
			b.WriteByte(',')
		}
		if pretty {
			b.WriteByte('\n')
			writeIndent(b, indent+1)
		}
		writeString(b, m.Key)
		b.WriteByte(':')
		if pretty {
			b.WriteByte(' ')
		}
		writeValue(b, m.Value, pretty, indent+1)
	}
	if pretty {
		b.WriteByte('\n')
		writeIndent(b, indent)
	}
	b.WriteByte('}')
}

func writeIndent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

// writeString escapes exactly the characters JSON cannot carry
// unescaped: the quote, the backslash and control characters below
// 0x20. Everything else, multi-byte UTF-8 included, is emitted
// literally.
func writeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			b.WriteString(`\"`)
		case c == '\\':
			b.WriteString(`\\`)
		case c == '\b':
			b.WriteString(`\b`)
		case c == '\f':
			b.WriteString(`\f`)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\t':
			b.WriteString(`\t`)
		case c < 0x20:
			fmt.Fprintf(b, `\u%04x`, c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
}

// formatNumber keeps the integral-vs-fractional shape of the source
// literal: integral numbers never gain a decimal point, fractional
// ones never lose theirs.
func formatNumber(v *Value) string {
	if v.integer {
		return strconv.FormatInt(v.intVal, 10)
	}
	s := strconv.FormatFloat(v.numVal, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
