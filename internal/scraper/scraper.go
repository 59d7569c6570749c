package scraper

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/powderline/hakuba-dashboard/internal/resort"
)

// Selectors for one resort block on the Hakuba Valley info page. Field
// extraction is purely positional: the page always yields six spec cells
// (length, total trails length, area, gondolas, chairs, trails), three
// altitude cells (max, vertical, base) and three course-level cells
// (beginner, intermediate, advanced). Any layout drift must surface as a
// MalformedRecordError rather than a silently defaulted field.
const (
	blockSelector     = ".spec-item"
	nameSelector      = ".gelande_name"
	specSelector      = ".spec-info dl dd"
	elevationSelector = ".altitude p"
	levelSelector     = ".course-level p"
	websiteSelector   = ".site_url a"
	trailMapSelector  = ".btn-wht-blk a"
)

// MalformedRecordError reports a resort block that violates the positional
// field contract. The whole parse aborts on the first such block.
type MalformedRecordError struct {
	Block  int
	Name   string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	name := e.Name
	if name == "" {
		name = "unnamed"
	}
	return fmt.Sprintf("malformed resort block %d (%s): %s", e.Block, name, e.Reason)
}

// Parse extracts one pre-normalization record per resort block from the raw
// markup. Relative website and trail-map links are resolved against
// sourceURL.
func Parse(html, sourceURL string) (resort.Table, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}
	base, _ := url.Parse(sourceURL)

	var table resort.Table
	var parseErr error

	doc.Find(blockSelector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		r, err := parseBlock(i, s, base)
		if err != nil {
			parseErr = err
			return false
		}
		table = append(table, r)
		return true
	})

	if parseErr != nil {
		return nil, parseErr
	}
	return table, nil
}

func parseBlock(i int, s *goquery.Selection, base *url.URL) (resort.Resort, error) {
	name := cleanText(s.Find(nameSelector).First().Text())

	specs := cellTexts(s.Find(specSelector))
	if len(specs) < 6 {
		return resort.Resort{}, &MalformedRecordError{Block: i, Name: name,
			Reason: fmt.Sprintf("expected 6 spec fields, found %d", len(specs))}
	}
	elevation := cellTexts(s.Find(elevationSelector))
	if len(elevation) < 3 {
		return resort.Resort{}, &MalformedRecordError{Block: i, Name: name,
			Reason: fmt.Sprintf("expected 3 elevation values, found %d", len(elevation))}
	}
	levels := cellTexts(s.Find(levelSelector))
	if len(levels) < 3 {
		return resort.Resort{}, &MalformedRecordError{Block: i, Name: name,
			Reason: fmt.Sprintf("expected 3 course-level values, found %d", len(levels))}
	}

	p := &blockParser{block: i, name: name}
	r := resort.Resort{
		Name:              name,
		Length:            p.integer("length", specs[0]),
		TotalTrailsLength: p.integer("total_trails_length", specs[1]),
		Area:              p.integer("area", specs[2]),
		Gondolas:          p.integer("gondolas", specs[3]),
		Chairs:            p.integer("chairs", specs[4]),
		Trails:            p.integer("trails", specs[5]),
		MaxElevation:      p.integer("max_elevation", elevation[0]),
		Vertical:          p.integer("vertical", elevation[1]),
		BaseElevation:     p.integer("base_elevation", elevation[2]),
		BeginnerPct:       float64(p.integer("beginner_pct", levels[0])) / 100.0,
		IntermediatePct:   float64(p.integer("intermediate_pct", levels[1])) / 100.0,
		AdvancedPct:       float64(p.integer("advanced_pct", levels[2])) / 100.0,
		Website:           linkHref(s.Find(websiteSelector), base),
		TrailMap:          linkHref(s.Find(trailMapSelector), base),
	}
	if p.err != nil {
		return resort.Resort{}, p.err
	}
	return r, nil
}

// blockParser accumulates the first conversion failure so a block's fields
// can be assigned in one literal.
type blockParser struct {
	block int
	name  string
	err   error
}

func (p *blockParser) integer(field, raw string) int {
	if p.err != nil {
		return 0
	}
	n, err := strconv.Atoi(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		p.err = &MalformedRecordError{Block: p.block, Name: p.name,
			Reason: fmt.Sprintf("field %s: not a number: %q", field, raw)}
		return 0
	}
	return n
}

func cellTexts(sel *goquery.Selection) []string {
	var out []string
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, cleanText(s.Text()))
	})
	return out
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func linkHref(sel *goquery.Selection, base *url.URL) string {
	href, ok := sel.First().Attr("href")
	if !ok {
		return ""
	}
	return resolveLink(base, strings.TrimSpace(href))
}

func resolveLink(base *url.URL, href string) string {
	if href == "" || strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	return u.String()
}
