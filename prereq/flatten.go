package prereq

import "github.com/banweb/crawler/catalog"

// Canonicalize turns a raw clause into the canonical attached form. A bare
// course is promoted to and(course) so the top level is always a set. Within
// sets, same-operator children are spliced into their parent, vacuous
// children are dropped, and a single surviving child replaces its wrapper
// everywhere except the top level. Child order stays source order; no
// deduplication or semantic equivalence is attempted.
func Canonicalize(raw catalog.Clause) catalog.Prerequisites {
	switch clause := raw.(type) {
	case nil:
		return catalog.Prerequisites{}
	case catalog.CourseClause:
		root := catalog.SetClause{Operator: catalog.OperatorAnd, Children: []catalog.Clause{clause}}
		return catalog.Prerequisites{Root: &root}
	default:
		flattened := flatten(raw, true)
		if flattened == nil {
			return catalog.Prerequisites{}
		}
		root := flattened.(catalog.SetClause)
		return catalog.Prerequisites{Root: &root}
	}
}

func flatten(clause catalog.Clause, top bool) catalog.Clause {
	set, ok := clause.(catalog.SetClause)
	if !ok {
		return clause
	}

	var children []catalog.Clause
	for _, child := range set.Children {
		flattened := flatten(child, false)
		if flattened == nil {
			continue
		}
		if childSet, ok := flattened.(catalog.SetClause); ok && childSet.Operator == set.Operator {
			children = append(children, childSet.Children...)
			continue
		}
		children = append(children, flattened)
	}

	switch len(children) {
	case 0:
		return nil
	case 1:
		if !top {
			return children[0]
		}
	}
	return catalog.SetClause{Operator: set.Operator, Children: children}
}
