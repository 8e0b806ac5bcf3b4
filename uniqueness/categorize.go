// Package uniqueness classifies each course in a term by how consistent
// the compiled prerequisites are across its sections and instructors.
package uniqueness

import (
	"fmt"

	"github.com/banweb/crawler/catalog"
)

type Tier int

const (
	// TierUniform: every section carries an identical canonical clause,
	// or none has prerequisites.
	TierUniform Tier = iota
	// TierSplit: sections disagree, but each instructor's own sections
	// are mutually consistent.
	TierSplit
	// TierInstructorSplit: at least one instructor teaches sections with
	// differing clauses.
	TierInstructorSplit
)

// Categorize assigns every course in the term its consistency tier.
// Every section must already have a compiled value attached; a section
// that was never attached is a caller bug, not bad input data, and is
// reported as an error rather than skipped.
func Categorize(term *catalog.Term) (map[catalog.CourseID]Tier, error) {
	tiers := make(map[catalog.CourseID]Tier, len(term.Courses))
	for _, id := range term.CourseIDs() {
		tier, err := categorizeCourse(term.Courses[id])
		if err != nil {
			return nil, err
		}
		tiers[id] = tier
	}
	return tiers, nil
}

func categorizeCourse(course *catalog.Course) (Tier, error) {
	labels := course.SectionLabels()
	if len(labels) == 0 {
		return TierUniform, nil
	}

	for _, label := range labels {
		if course.Sections[label].Prerequisites == nil {
			return 0, fmt.Errorf("course %v section %v has no prerequisites attached", course.ID, label)
		}
	}

	// The first section in stable label order is the basis; the course is
	// uniform iff every other section matches it.
	basis := *course.Sections[labels[0]].Prerequisites
	uniform := true
	for _, label := range labels[1:] {
		if !course.Sections[label].Prerequisites.Equal(basis) {
			uniform = false
			break
		}
	}
	if uniform {
		return TierUniform, nil
	}

	seen := make(map[string]map[uint64]bool)
	for _, label := range labels {
		section := course.Sections[label]
		instructor := catalog.PrimaryInstructor(section.Instructors)

		hashes := seen[instructor]
		if hashes == nil {
			hashes = make(map[uint64]bool)
			seen[instructor] = hashes
		}
		hashes[section.Prerequisites.Hash()] = true
	}

	for _, hashes := range seen {
		if len(hashes) > 1 {
			return TierInstructorSplit, nil
		}
	}
	return TierSplit, nil
}
