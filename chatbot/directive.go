package chatbot

import (
	"regexp"
	"strconv"
)

// directiveRegexp matches the cost-calculation token the model embeds in a
// reply: [calculate_cost(name="<material>", quantity=<integer>)]. The material
// name may be single- or double-quoted and whitespace around the separators is
// tolerated
var directiveRegexp = regexp.MustCompile(`\[\s*calculate_cost\(\s*name\s*=\s*(?:"([^"]*)"|'([^']*)')\s*,\s*quantity\s*=\s*([0-9]+)\s*\)\s*\]`)

// Directive is a parsed cost-calculation request extracted from a model reply
type Directive struct {
	Name     string
	Quantity int
}

// ExtractDirective scans reply for cost-calculation tokens and returns the
// first well-formed one. A token with a quantity below 1 or beyond integer
// range is malformed and skipped. ok is false when no well-formed token is
// present, in which case the raw reply is used verbatim downstream
func ExtractDirective(reply string) (d *Directive, ok bool) {
	for _, m := range directiveRegexp.FindAllStringSubmatch(reply, -1) {
		name := m[1]
		if name == "" {
			name = m[2]
		}
		if name == "" {
			continue
		}

		quantity, err := strconv.Atoi(m[3])
		if err != nil || quantity < 1 {
			continue
		}

		return &Directive{Name: name, Quantity: quantity}, true
	}
	return nil, false
}

// StripDirectives removes all well-formed cost-calculation tokens from reply.
// The token must never be shown to the end user, even when only the first one
// is acted on
func StripDirectives(reply string) string {
	return directiveRegexp.ReplaceAllString(reply, "")
}
