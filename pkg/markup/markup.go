package markup

import "strings"

type rule struct {
	pattern     string
	replacement string
}

// Ordered substitution table. Tag rules run before entity unescapes so that
// an unescaped "<b>" is never picked up as markup; "&amp;" runs last so a
// single pass cannot double-unescape.
var displayRules = []rule{
	{"<br />", "\n"},
	{"<br/>", "\n"},
	{"<br>", "\n"},
	{"<b>", "*"},
	{"</b>", "*"},
	{"<strong>", "*"},
	{"</strong>", "*"},
	{"<i>", "_"},
	{"</i>", "_"},
	{"<em>", "_"},
	{"</em>", "_"},
	{"<u>", "__"},
	{"</u>", "__"},
	{"&nbsp;", " "},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", "\""},
	{"&#39;", "'"},
	{"&amp;", "&"},
}

// ToDisplay converts raw post markup into the message format sent to chats.
// Each rule is applied once, in order, without re-scanning its own output.
func ToDisplay(raw string) string {
	out := raw
	for _, r := range displayRules {
		out = strings.ReplaceAll(out, r.pattern, r.replacement)
	}
	return out
}

// SplitChunks splits text into chunks of at most maxLength runes, strictly on
// line boundaries. A single line longer than maxLength is emitted as its own
// oversized chunk rather than being cut.
func SplitChunks(text string, maxLength int) []string {
	lines := strings.Split(text, "\n")

	var chunks []string
	current := lines[0]
	for _, line := range lines[1:] {
		if len(current)+1+len(line) > maxLength {
			chunks = append(chunks, current)
			current = line
			continue
		}
		current += "\n" + line
	}
	chunks = append(chunks, current)

	return chunks
}
