// Package prereq compiles free-form prerequisite prose into canonical
// boolean clause trees. Malformed input degrades to a partial or empty
// result with recorded issues; compilation never fails a batch.
package prereq

import (
	"strings"

	"github.com/banweb/crawler/catalog"
)

// Compile turns one course's cleaned prerequisite text into its canonical
// form. The course identifier is only used to label issues.
func Compile(course catalog.CourseID, text string) (catalog.Prerequisites, []Issue) {
	text = strings.TrimSpace(text)
	if text == "" {
		return catalog.Prerequisites{}, nil
	}

	tokens, issues := tokenize(course, text)

	p := &parser{course: course, tokens: tokens}
	tree := p.parse()
	issues = append(issues, p.issues...)

	return Canonicalize(buildExpression(tree)), issues
}
