package whoscored

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/team"
	"github.com/lucasAG-UNQ/FutbolApi/internal/usecase"
)

const teamsHeading = "Teams:"

var teamHrefRegex = regexp.MustCompile(`/teams/(\d+)/`)

// ParseSearch reads the "Teams:" results table of the search page. A page
// without that table yields no results. Rows without a usable link are skipped.
func ParseSearch(body []byte) ([]team.Ref, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: search page: %v", usecase.ErrParse, err)
	}

	var table *goquery.Selection
	doc.Find("h2").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if strings.TrimSpace(h.Text()) != teamsHeading {
			return true
		}
		if next := h.Next(); goquery.NodeName(next) == "table" {
			table = next
			return false
		}
		return true
	})
	if table == nil {
		return []team.Ref{}, nil
	}

	out := make([]team.Ref, 0)
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		link := row.Find("td").First().Find("a").First()
		if link.Length() == 0 {
			return
		}
		href, _ := link.Attr("href")
		m := teamHrefRegex.FindStringSubmatch(href)
		if m == nil {
			return
		}
		id, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return
		}
		out = append(out, team.Ref{ID: id, Name: strings.TrimSpace(link.Text())})
	})

	return out, nil
}
