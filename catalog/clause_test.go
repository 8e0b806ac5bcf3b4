package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() Prerequisites {
	return Prerequisites{Root: &SetClause{
		Operator: OperatorAnd,
		Children: []Clause{
			CourseClause{ID: "CS 1331"},
			SetClause{
				Operator: OperatorOr,
				Children: []Clause{
					CourseClause{ID: "CS 2340"},
					CourseClause{ID: "CS 2110", MinimumGrade: GradeC},
				},
			},
		},
	}}
}

func TestPrerequisitesMarshalEmpty(t *testing.T) {
	data, err := json.Marshal(Prerequisites{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestPrerequisitesMarshalShape(t *testing.T) {
	data, err := json.Marshal(sampleTree())
	require.NoError(t, err)
	assert.JSONEq(t,
		`["and",{"id":"CS 1331"},["or",{"id":"CS 2340"},{"id":"CS 2110","grade":"C"}]]`,
		string(data))
}

func TestPrerequisitesRoundTrip(t *testing.T) {
	original := sampleTree()
	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Prerequisites
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)

	var empty Prerequisites
	require.NoError(t, json.Unmarshal([]byte("[]"), &empty))
	assert.True(t, empty.Empty())
}

func TestPrerequisitesUnmarshalRejectsBadOperator(t *testing.T) {
	var decoded Prerequisites
	err := json.Unmarshal([]byte(`["xor",{"id":"CS 1331"}]`), &decoded)
	assert.Error(t, err)
}

func TestHashEqualForEqualTrees(t *testing.T) {
	assert.Equal(t, sampleTree().Hash(), sampleTree().Hash())
	assert.True(t, sampleTree().Equal(sampleTree()))
}

func TestHashOrderSensitive(t *testing.T) {
	a := Prerequisites{Root: &SetClause{Operator: OperatorAnd, Children: []Clause{
		CourseClause{ID: "CS 1331"}, CourseClause{ID: "CS 2110"},
	}}}
	b := Prerequisites{Root: &SetClause{Operator: OperatorAnd, Children: []Clause{
		CourseClause{ID: "CS 2110"}, CourseClause{ID: "CS 1331"},
	}}}
	assert.NotEqual(t, a.Hash(), b.Hash())
}

func TestHashDistinguishesOperatorAndGrade(t *testing.T) {
	and := Prerequisites{Root: &SetClause{Operator: OperatorAnd, Children: []Clause{CourseClause{ID: "CS 1331"}}}}
	or := Prerequisites{Root: &SetClause{Operator: OperatorOr, Children: []Clause{CourseClause{ID: "CS 1331"}}}}
	graded := Prerequisites{Root: &SetClause{Operator: OperatorAnd, Children: []Clause{CourseClause{ID: "CS 1331", MinimumGrade: GradeC}}}}

	assert.NotEqual(t, and.Hash(), or.Hash())
	assert.NotEqual(t, and.Hash(), graded.Hash())
	assert.NotEqual(t, Prerequisites{}.Hash(), and.Hash())
}
