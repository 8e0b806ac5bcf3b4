package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
)

type Operator string

const (
	OperatorAnd Operator = "and"
	OperatorOr  Operator = "or"
)

// Clause is one node of a compiled prerequisite tree: either a CourseClause
// leaf or an and/or SetClause over child clauses.
type Clause interface {
	isClause()
}

type CourseClause struct {
	ID           CourseID `json:"id"`
	MinimumGrade Grade    `json:"grade,omitempty"`
}

type SetClause struct {
	Operator Operator
	Children []Clause
}

func (CourseClause) isClause() {}
func (SetClause) isClause()    {}

// Prerequisites is the compiled requirement attached to a section. A nil
// Root means the course has none. A non-nil Root is always a SetClause,
// even for a single course.
type Prerequisites struct {
	Root *SetClause
}

func (p Prerequisites) Empty() bool {
	return p.Root == nil
}

// The wire shape is an empty array for "none", otherwise
// ["and"|"or", child, ...] where each child is a nested array of the same
// shape or an object {"id": ..., "grade": ...}.

func (p Prerequisites) MarshalJSON() ([]byte, error) {
	if p.Root == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(*p.Root)
}

func (p *Prerequisites) UnmarshalJSON(data []byte) error {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return err
	}
	if len(elements) == 0 {
		p.Root = nil
		return nil
	}

	var set SetClause
	if err := set.UnmarshalJSON(data); err != nil {
		return err
	}
	p.Root = &set
	return nil
}

func (s SetClause) MarshalJSON() ([]byte, error) {
	elements := make([]any, 0, len(s.Children)+1)
	elements = append(elements, string(s.Operator))
	for _, child := range s.Children {
		elements = append(elements, child)
	}
	return json.Marshal(elements)
}

func (s *SetClause) UnmarshalJSON(data []byte) error {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return err
	}
	if len(elements) == 0 {
		return errors.New("clause set has no operator")
	}

	var operator string
	if err := json.Unmarshal(elements[0], &operator); err != nil {
		return err
	}
	if operator != string(OperatorAnd) && operator != string(OperatorOr) {
		return fmt.Errorf("unknown clause operator %q", operator)
	}
	s.Operator = Operator(operator)

	s.Children = nil
	for _, element := range elements[1:] {
		child, err := unmarshalClause(element)
		if err != nil {
			return err
		}
		s.Children = append(s.Children, child)
	}
	return nil
}

func unmarshalClause(data []byte) (Clause, error) {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			var set SetClause
			if err := set.UnmarshalJSON(data); err != nil {
				return nil, err
			}
			return set, nil
		case '{':
			var course CourseClause
			if err := json.Unmarshal(data, &course); err != nil {
				return nil, err
			}
			return course, nil
		default:
			return nil, fmt.Errorf("unexpected clause element %q", string(data))
		}
	}
	return nil, errors.New("empty clause element")
}
