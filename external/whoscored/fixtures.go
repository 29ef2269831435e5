package whoscored

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"

	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/match"
	"github.com/lucasAG-UNQ/FutbolApi/internal/domain/team"
	"github.com/lucasAG-UNQ/FutbolApi/internal/usecase"
)

const (
	fixturesMarker     = "fixtureMatches"
	fixturesArrayStart = "fixtureMatches: ["
	fixturesArrayEnd   = "];"
	fixtureDateLayout  = "02-01-06"
)

// Positions inside one fixture row.
const (
	colMatchID    = 0
	colDate       = 2
	colHomeID     = 4
	colHomeName   = 5
	colAwayID     = 7
	colAwayName   = 8
	colTournament = 16
	colHomeScore  = 31
	colAwayScore  = 32
)

// ParseFixtures extracts the fixture rows embedded in the fixtures page script.
// A page without the script yields no fixtures; a malformed array or date is ErrParse.
func ParseFixtures(body []byte) ([]match.Match, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: fixtures page: %v", usecase.ErrParse, err)
	}

	script := ""
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if strings.Contains(text, fixturesMarker) {
			script = text
			return false
		}
		return true
	})
	if script == "" {
		return []match.Match{}, nil
	}

	rows, err := decodeFixtureArray(script)
	if err != nil {
		return nil, err
	}

	out := make([]match.Match, 0, len(rows))
	for i, row := range rows {
		m, err := fixtureFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: fixture row %d: %v", usecase.ErrParse, i, err)
		}
		out = append(out, m)
	}
	return out, nil
}

func decodeFixtureArray(script string) ([][]any, error) {
	start := strings.Index(script, fixturesArrayStart)
	if start < 0 {
		return nil, fmt.Errorf("%w: fixture array start not found", usecase.ErrParse)
	}
	rest := script[start+len(fixturesArrayStart):]
	end := strings.Index(rest, fixturesArrayEnd)
	if end < 0 {
		return nil, fmt.Errorf("%w: fixture array end not found", usecase.ErrParse)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	_ = buf.WriteByte('[')
	normalizeFixtureArray(buf, rest[:end])
	_ = buf.WriteByte(']')

	var rows [][]any
	if err := sonic.Unmarshal(buf.B, &rows); err != nil {
		return nil, fmt.Errorf("%w: fixture array: %v", usecase.ErrParse, err)
	}
	return rows, nil
}

// normalizeFixtureArray writes the JavaScript literal to dst as JSON: single
// quotes become double quotes, elided elements become null and a trailing comma
// before a closing bracket (or the end of raw, which the caller closes) is
// dropped.
func normalizeFixtureArray(dst *bytebufferpool.ByteBuffer, raw string) {
	for i := 0; i < len(raw); i++ {
		switch c := raw[i]; c {
		case '\'':
			_ = dst.WriteByte('"')
		case ',':
			next := i + 1
			for next < len(raw) && isFixtureSpace(raw[next]) {
				next++
			}
			if next == len(raw) || raw[next] == ']' {
				continue
			}
			_ = dst.WriteByte(',')
			if next < len(raw) && raw[next] == ',' {
				_, _ = dst.WriteString(raw[i+1 : next])
				_, _ = dst.WriteString("null")
				i = next - 1
			}
		default:
			_ = dst.WriteByte(c)
		}
	}
}

func isFixtureSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func fixtureFromRow(row []any) (match.Match, error) {
	if len(row) <= colAwayName {
		return match.Match{}, fmt.Errorf("expected at least %d columns, got %d", colAwayName+1, len(row))
	}

	externalID, err := int64At(row, colMatchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("match id: %w", err)
	}
	rawDate, _ := row[colDate].(string)
	date, err := time.ParseInLocation(fixtureDateLayout, strings.TrimSpace(rawDate), time.UTC)
	if err != nil {
		return match.Match{}, fmt.Errorf("date %q: %w", rawDate, err)
	}
	homeID, err := int64At(row, colHomeID)
	if err != nil {
		return match.Match{}, fmt.Errorf("home team id: %w", err)
	}
	awayID, err := int64At(row, colAwayID)
	if err != nil {
		return match.Match{}, fmt.Errorf("away team id: %w", err)
	}

	return match.Match{
		ExternalID: externalID,
		HomeTeam:   team.Ref{ID: homeID, Name: stringAt(row, colHomeName)},
		AwayTeam:   team.Ref{ID: awayID, Name: stringAt(row, colAwayName)},
		Date:       date,
		Tournament: optionalStringAt(row, colTournament),
		HomeScore:  scoreAt(row, colHomeScore),
		AwayScore:  scoreAt(row, colAwayScore),
	}, nil
}

func int64At(row []any, i int) (int64, error) {
	switch v := row[i].(type) {
	case float64:
		return int64(v), nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	default:
		return 0, fmt.Errorf("column %d has type %T", i, row[i])
	}
}

func stringAt(row []any, i int) string {
	if v := optionalStringAt(row, i); v != nil {
		return *v
	}
	return ""
}

func optionalStringAt(row []any, i int) *string {
	if i >= len(row) || row[i] == nil {
		return nil
	}
	var s string
	switch v := row[i].(type) {
	case string:
		s = v
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		s = fmt.Sprint(v)
	}
	return &s
}

// scoreAt keeps only the digits of the score cell; no digits means no score.
func scoreAt(row []any, i int) *int {
	raw := optionalStringAt(row, i)
	if raw == nil {
		return nil
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, *raw)
	if digits == "" {
		return nil
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &n
}
