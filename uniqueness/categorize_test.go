package uniqueness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banweb/crawler/catalog"
	"github.com/banweb/crawler/prereq"
)

func compiled(t *testing.T, text string) *catalog.Prerequisites {
	t.Helper()
	prerequisites, issues := prereq.Compile("CS 9999", text)
	require.Empty(t, issues)
	return &prerequisites
}

func termWith(course *catalog.Course) *catalog.Term {
	return &catalog.Term{
		Code:    "202502",
		Courses: map[catalog.CourseID]*catalog.Course{course.ID: course},
	}
}

func TestCategorizeUniform(t *testing.T) {
	course := &catalog.Course{ID: "CS 3510", Sections: map[string]*catalog.Section{
		"A": {CRN: "1", Instructors: []string{"X (P)"}, Prerequisites: compiled(t, "CS 1331")},
		"B": {CRN: "2", Instructors: []string{"X (P)"}, Prerequisites: compiled(t, "CS 1331")},
		"C": {CRN: "3", Instructors: []string{"Y (P)"}, Prerequisites: compiled(t, "CS 1331")},
	}}

	tiers, err := Categorize(termWith(course))
	require.NoError(t, err)
	assert.Equal(t, TierUniform, tiers["CS 3510"])
}

func TestCategorizeUniformWithoutPrerequisites(t *testing.T) {
	course := &catalog.Course{ID: "CS 1100", Sections: map[string]*catalog.Section{
		"A": {CRN: "1", Instructors: []string{"X (P)"}, Prerequisites: &catalog.Prerequisites{}},
		"B": {CRN: "2", Instructors: []string{"Y (P)"}, Prerequisites: &catalog.Prerequisites{}},
	}}

	tiers, err := Categorize(termWith(course))
	require.NoError(t, err)
	assert.Equal(t, TierUniform, tiers["CS 1100"])
}

func TestCategorizeSplitAcrossInstructors(t *testing.T) {
	course := &catalog.Course{ID: "CS 3510", Sections: map[string]*catalog.Section{
		"A": {CRN: "1", Instructors: []string{"X (P)"}, Prerequisites: compiled(t, "CS 1331")},
		"B": {CRN: "2", Instructors: []string{"X (P)"}, Prerequisites: compiled(t, "CS 1331")},
		"C": {CRN: "3", Instructors: []string{"Y (P)"}, Prerequisites: compiled(t, "CS 1332")},
	}}

	tiers, err := Categorize(termWith(course))
	require.NoError(t, err)
	assert.Equal(t, TierSplit, tiers["CS 3510"])
}

func TestCategorizeSplitWithinInstructor(t *testing.T) {
	course := &catalog.Course{ID: "CS 3510", Sections: map[string]*catalog.Section{
		"A": {CRN: "1", Instructors: []string{"X (P)"}, Prerequisites: compiled(t, "CS 1331")},
		"B": {CRN: "2", Instructors: []string{"X (P)"}, Prerequisites: compiled(t, "CS 1332")},
		"C": {CRN: "3", Instructors: []string{"Y (P)"}, Prerequisites: compiled(t, "CS 1332")},
	}}

	tiers, err := Categorize(termWith(course))
	require.NoError(t, err)
	assert.Equal(t, TierInstructorSplit, tiers["CS 3510"])
}

func TestCategorizeUsesPrimaryInstructor(t *testing.T) {
	// The unmarked co-instructor X teaches both sections, but the
	// instructors of record differ, so the split is across instructors.
	course := &catalog.Course{ID: "CS 3510", Sections: map[string]*catalog.Section{
		"A": {CRN: "1", Instructors: []string{"X", "Y (P)"}, Prerequisites: compiled(t, "CS 1331")},
		"B": {CRN: "2", Instructors: []string{"X", "Z (P)"}, Prerequisites: compiled(t, "CS 1332")},
	}}

	tiers, err := Categorize(termWith(course))
	require.NoError(t, err)
	assert.Equal(t, TierSplit, tiers["CS 3510"])
}

func TestCategorizeUnattachedSectionIsError(t *testing.T) {
	course := &catalog.Course{ID: "CS 3510", Sections: map[string]*catalog.Section{
		"A": {CRN: "1", Instructors: []string{"X (P)"}, Prerequisites: compiled(t, "CS 1331")},
		"B": {CRN: "2", Instructors: []string{"X (P)"}},
	}}

	_, err := Categorize(termWith(course))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CS 3510")
}

func TestCategorizeCourseWithoutSections(t *testing.T) {
	tiers, err := Categorize(termWith(&catalog.Course{ID: "CS 3510"}))
	require.NoError(t, err)
	assert.Equal(t, TierUniform, tiers["CS 3510"])
}
