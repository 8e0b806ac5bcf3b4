package catalog

import "go.uber.org/zap"

// AttachPrerequisites writes compiled prerequisites into the term's
// sections, keyed by course reference number. A reference number that
// matches no known section usually means the schedule and catalog sources
// drifted between fetches; it is logged and skipped rather than failing
// the run. Returns the number of sections updated.
func AttachPrerequisites(term *Term, compiled map[string]Prerequisites, logger *zap.Logger) int {
	sectionsByCRN := make(map[string]*Section)
	for _, course := range term.Courses {
		for _, section := range course.Sections {
			sectionsByCRN[section.CRN] = section
		}
	}

	attached := 0
	for crn, prerequisites := range compiled {
		section, ok := sectionsByCRN[crn]
		if !ok {
			logger.Warn("no section for course reference number",
				zap.String("term", term.Code),
				zap.String("crn", crn))
			continue
		}

		value := prerequisites
		section.Prerequisites = &value
		attached++
	}
	return attached
}
