package prereq

import (
	"fmt"

	"github.com/banweb/crawler/catalog"
)

type IssueKind string

const (
	IssueLexical IssueKind = "lexical"
	IssueSyntax  IssueKind = "syntax"
)

// Issue records one recoverable problem found while compiling a course's
// prerequisite text. Issues degrade the result to a partial or empty tree;
// they never abort a batch.
type Issue struct {
	Course  catalog.CourseID
	Kind    IssueKind
	Pos     int
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%v: %v error at %v: %v", i.Course, i.Kind, i.Pos, i.Message)
}
