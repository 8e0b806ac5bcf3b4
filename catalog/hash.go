package catalog

import (
	"fmt"
	"hash/fnv"
	"io"
)

// Hash computes a structural, order-sensitive content hash of the compiled
// tree. Structurally equal trees hash equal, and the value is stable across
// runs. Semantically equivalent but structurally different trees are
// distinct on purpose.
func (p Prerequisites) Hash() uint64 {
	h := fnv.New64a()
	if p.Root != nil {
		writeClause(h, *p.Root)
	}
	return h.Sum64()
}

// Equal reports whether two compiled trees are structurally identical.
func (p Prerequisites) Equal(other Prerequisites) bool {
	return p.Hash() == other.Hash()
}

func writeClause(w io.Writer, clause Clause) {
	switch c := clause.(type) {
	case CourseClause:
		fmt.Fprintf(w, "c;%v;%v;", c.ID, c.MinimumGrade)
	case SetClause:
		fmt.Fprintf(w, "%v(", c.Operator)
		for _, child := range c.Children {
			writeClause(w, child)
		}
		fmt.Fprint(w, ")")
	}
}
