package prereq

import (
	"strings"

	"github.com/banweb/crawler/catalog"
)

// The builder folds a parse tree bottom-up into a raw clause. A nil return
// is the ignored sentinel: test atoms fold to it and it propagates upward
// through productions left empty after filtering.

func buildExpression(node *exprNode) catalog.Clause {
	var children []catalog.Clause
	for _, term := range node.terms {
		if child := buildTerm(term); child != nil {
			children = append(children, child)
		}
	}
	switch len(children) {
	case 0:
		return nil
	case 1:
		return children[0]
	default:
		return catalog.SetClause{Operator: catalog.OperatorOr, Children: children}
	}
}

func buildTerm(node *termNode) catalog.Clause {
	var children []catalog.Clause
	for _, atom := range node.atoms {
		if child := buildAtom(atom); child != nil {
			children = append(children, child)
		}
	}
	switch len(children) {
	case 0:
		return nil
	case 1:
		return children[0]
	default:
		return catalog.SetClause{Operator: catalog.OperatorAnd, Children: children}
	}
}

func buildAtom(node atomNode) catalog.Clause {
	switch atom := node.(type) {
	case courseAtom:
		return catalog.CourseClause{
			ID:           catalog.MakeCourseID(atom.subject, atom.number),
			MinimumGrade: catalog.Grade(strings.ToUpper(atom.grade)),
		}
	case groupAtom:
		return buildExpression(atom.expr)
	default: // testAtom
		return nil
	}
}
