package oscar

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/banweb/crawler/catalog"
	"go.uber.org/zap"
)

var creditsPattern = regexp.MustCompile(`([0-9]+)\.[0-9]+ Credits`)

// ScrapeSubjectSections fetches the section listing for one subject in a
// term and returns the courses it describes, keyed by course identifier.
func (c Client) ScrapeSubjectSections(termCode, subjectCode string, logger *zap.Logger) (map[catalog.CourseID]*catalog.Course, error) {
	form := url.Values{}
	form.Add("term_in", termCode)
	form.Add("sel_subj", "dummy")
	form.Add("sel_subj", subjectCode)
	form.Add("sel_day", "dummy")
	form.Add("sel_schd", "dummy")
	form.Add("sel_insm", "dummy")
	form.Add("sel_camp", "dummy")
	form.Add("sel_levl", "dummy")
	form.Add("sel_sess", "dummy")
	form.Add("sel_instr", "dummy")
	form.Add("sel_ptrm", "dummy")
	form.Add("sel_attr", "dummy")
	form.Add("sel_crse", "")
	form.Add("sel_title", "")
	form.Add("begin_hh", "0")
	form.Add("begin_mi", "0")
	form.Add("begin_ap", "a")
	form.Add("end_hh", "0")
	form.Add("end_mi", "0")
	form.Add("end_ap", "a")

	response, err := http.PostForm(c.BaseURL+sectionListPath, form)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	document, err := goquery.NewDocumentFromReader(response.Body)
	if err != nil {
		return nil, err
	}

	return ParseSectionList(document, logger), nil
}

// ParseSectionList walks a section listing page. Each section is a title
// row ("Title - CRN - SUBJ NUM - LABEL") followed by a body cell holding
// the credit hours and the meeting times table.
func ParseSectionList(document *goquery.Document, logger *zap.Logger) map[catalog.CourseID]*catalog.Course {
	courses := make(map[catalog.CourseID]*catalog.Course)

	titleLinks := document.Find("th.ddtitle").Find("a")
	titleLinks.Each(func(i int, titleLink *goquery.Selection) {
		title, crn, courseID, label, err := ParseSectionTitle(titleLink.Text())
		if err != nil {
			logger.Warn("unable to parse section title", zap.String("title", titleLink.Text()), zap.Error(err))
			return
		}

		section := &catalog.Section{CRN: crn}

		body := titleLink.Closest("tr").Next().Find("td.dddefault").First()
		if match := creditsPattern.FindStringSubmatch(body.Text()); match != nil {
			section.Credits, _ = strconv.Atoi(match[1])
		}

		meetingRows := body.Find("table.datadisplaytable").Find("tr")
		meetingRows.Each(func(j int, meetingRow *goquery.Selection) {
			cells := meetingRow.Find("td.dddefault")
			if cells.Length() < 7 {
				return
			}

			section.Meetings = append(section.Meetings, catalog.Meeting{
				Period:   strings.TrimSpace(cells.Eq(1).Text()),
				Days:     strings.TrimSpace(cells.Eq(2).Text()),
				Location: strings.TrimSpace(cells.Eq(3).Text()),
			})
			if section.ScheduleType == "" {
				section.ScheduleType = strings.TrimSpace(cells.Eq(5).Text())
			}
			for _, name := range strings.Split(cells.Eq(6).Text(), ",") {
				if name = strings.TrimSpace(name); name != "" && name != "TBA" {
					section.Instructors = append(section.Instructors, name)
				}
			}
		})

		course := courses[courseID]
		if course == nil {
			course = &catalog.Course{ID: courseID, Title: title, Sections: make(map[string]*catalog.Section)}
			courses[courseID] = course
		}
		course.Sections[label] = section
	})

	return courses
}

// ParseSectionTitle splits a section title row. The course title itself may
// contain " - ", so the fixed fields are taken from the right.
func ParseSectionTitle(text string) (title, crn string, courseID catalog.CourseID, label string, err error) {
	parts := strings.Split(strings.TrimSpace(text), " - ")
	if len(parts) < 4 {
		return "", "", "", "", fmt.Errorf("malformed section title %q", text)
	}

	label = parts[len(parts)-1]
	course := parts[len(parts)-2]
	crn = parts[len(parts)-3]
	title = strings.Join(parts[:len(parts)-3], " - ")

	if _, err := strconv.Atoi(crn); err != nil {
		return "", "", "", "", fmt.Errorf("malformed course reference number %q", crn)
	}

	subject, number, found := strings.Cut(course, " ")
	if !found {
		return "", "", "", "", fmt.Errorf("malformed course identifier %q", course)
	}

	return title, crn, catalog.MakeCourseID(subject, number), label, nil
}
