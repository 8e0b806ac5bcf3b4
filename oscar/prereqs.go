package oscar

import (
	"net/http"
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/banweb/crawler/catalog"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

const prerequisitesLabel = "Prerequisites:"

// detailFetchConcurrency caps the number of course detail pages fetched
// at once; a full term has hundreds of courses.
const detailFetchConcurrency = 8

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	// Includes non-breaking spaces left behind by &nbsp; entities.
	whitespacePattern = regexp.MustCompile(`[\s\x{00A0}]+`)
)

// ScrapePrerequisiteTexts fetches every course's catalog detail page and
// returns the cleaned prerequisite prose keyed by course reference number.
// The detail page is per course, so its text is recorded once per section.
// A page that cannot be fetched is logged and skipped.
func (c Client) ScrapePrerequisiteTexts(term *catalog.Term, logger *zap.Logger) map[string]string {
	texts := make(map[string]string)
	var textsMutex sync.Mutex

	group := errgroup.Group{}
	group.SetLimit(detailFetchConcurrency)
	for _, id := range term.CourseIDs() {
		course := term.Courses[id]

		group.Go(func() error {
			text, err := c.ScrapeCoursePrerequisiteText(term.Code, course.ID)
			if err != nil {
				logger.Warn("unable to scrape course detail",
					zap.String("term", term.Code),
					zap.String("course", string(course.ID)),
					zap.Error(err))
				return nil
			}

			textsMutex.Lock()
			for _, section := range course.Sections {
				texts[section.CRN] = text
			}
			textsMutex.Unlock()
			return nil
		})
	}
	_ = group.Wait()

	return texts
}

// ScrapeCoursePrerequisiteText fetches one course's catalog detail page.
// Returns "" when the page lists no prerequisites.
func (c Client) ScrapeCoursePrerequisiteText(termCode string, courseID catalog.CourseID) (string, error) {
	subject, number, _ := strings.Cut(string(courseID), " ")

	request, err := http.NewRequest("GET", c.BaseURL+courseDetailPath, nil)
	if err != nil {
		return "", err
	}

	query := request.URL.Query()
	query.Add("cat_term_in", termCode)
	query.Add("subj_code_in", subject)
	query.Add("crse_numb_in", number)
	request.URL.RawQuery = query.Encode()

	response, err := http.DefaultClient.Do(request)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	document, err := goquery.NewDocumentFromReader(response.Body)
	if err != nil {
		return "", err
	}

	return ParsePrerequisiteText(document)
}

// ParsePrerequisiteText extracts the prose following the "Prerequisites:"
// field label on a course detail page, up to the next field label.
func ParsePrerequisiteText(document *goquery.Document) (string, error) {
	var text string

	details := document.Find("td.ntdefault")
	details.EachWithBreak(func(i int, detail *goquery.Selection) bool {
		raw, err := detail.Html()
		if err != nil {
			return true
		}

		_, after, found := strings.Cut(raw, prerequisitesLabel)
		if !found {
			return true
		}
		if _, rest, ok := strings.Cut(after, "</span>"); ok {
			after = rest
		}
		if before, _, ok := strings.Cut(after, "<span"); ok {
			after = before
		}

		text = CleanText(after)
		return false
	})

	return text, nil
}

// CleanText strips an HTML fragment down to the whitespace-collapsed plain
// text the tokenizer expects.
func CleanText(fragment string) string {
	text := tagPattern.ReplaceAllString(fragment, " ")
	text = html.UnescapeString(text)
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
