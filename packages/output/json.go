package output

import (
	"strings"

	"github.com/fatih/color"

	"github.com/abdul-hamid-achik/reqvault/packages/core/json"
)

// FormatJSON pretty-prints a document with per-kind coloring: strings
// green, numbers cyan, booleans yellow, null dimmed, keys bright
// white. Honors color.NoColor for plain output.
func FormatJSON(v *json.Value) string {
	var b strings.Builder
	writeColored(&b, v, 0)
	return b.String()
}

var (
	nullColor   = color.New(color.FgHiBlack).SprintFunc()
	boolColor   = color.New(color.FgYellow).SprintFunc()
	numberColor = color.New(color.FgCyan).SprintFunc()
	stringColor = color.New(color.FgGreen).SprintFunc()
	keyColor    = color.New(color.FgHiWhite).SprintFunc()
)

func writeColored(b *strings.Builder, v *json.Value, indent int) {
	switch v.Kind() {
	case json.KindNull:
		b.WriteString(nullColor("null"))
	case json.KindBool, json.KindNumber, json.KindString:
		b.WriteString(scalarColor(v.Kind())(json.Serialize(v, false)))
	case json.KindArray:
		items, _ := v.AsArray()
		if len(items) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for i, item := range items {
			writeIndent(b, indent+1)
			writeColored(b, item, indent+1)
			if i < len(items)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		writeIndent(b, indent)
		b.WriteByte(']')
	case json.KindObject:
		members, _ := v.AsObject()
		if len(members) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{\n")
		for i, m := range members {
			writeIndent(b, indent+1)
			b.WriteString(keyColor(json.Serialize(json.NewString(m.Key), false)))
			b.WriteString(": ")
			writeColored(b, m.Value, indent+1)
			if i < len(members)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		writeIndent(b, indent)
		b.WriteByte('}')
	}
}

func scalarColor(k json.Kind) func(...any) string {
	switch k {
	case json.KindBool:
		return boolColor
	case json.KindNumber:
		return numberColor
	default:
		return stringColor
	}
}

func writeIndent(b *strings.Builder, indent int) {
	for i := 0; i < indent; i++ {
		b.WriteString("  ")
	}
}
