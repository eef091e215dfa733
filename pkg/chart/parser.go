package chart

import (
	"errors"
	"fmt"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"

	"github.com/myusername/darts-scorer/pkg/checkout"
)

// ErrNoRoutes is returned when a source contained nothing that looks like a checkout chart
var ErrNoRoutes = errors.New("no checkout routes found")

var (
	// Matches "170 T20 T20 Bull", "121: T20, 11, D25" or "40 - D20"
	chartLineRegex = regexp.MustCompile(`^\s*(\d{1,3})\s*[:=\-]?\s+(.+)$`)

	// Alternatives on one line, e.g. "T20 D20 or D25 D25"
	alternativeRegex = regexp.MustCompile(`(?i)\s+or\s+|\|`)

	tokenSplitRegex = regexp.MustCompile(`[\s,/>\-]+`)
)

// chartSpellings maps the spellings printed charts use to throw notation
var chartSpellings = map[string]string{
	"BULL":     "D25",
	"BULLSEYE": "D25",
	"BE":       "D25",
	"DB":       "D25",
	"DBULL":    "D25",
	"50":       "D25",
	"OB":       "25",
	"SB":       "25",
	"OUTER":    "25",
	"S25":      "25",
}

// ParseChartText reads one score per line. Lines that do not parse, or whose route
// does not check out the score, are logged and skipped.
func ParseChartText(text string) (*Chart, error) {
	c := New("text")
	skipped := 0

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		match := chartLineRegex.FindStringSubmatch(line)
		if len(match) < 3 {
			continue
		}
		score, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}

		for _, alternative := range alternativeRegex.Split(match[2], -1) {
			route, err := ParseRoute(alternative)
			if err != nil {
				log.Printf("Skipping chart line %q: %v", line, err)
				skipped++
				continue
			}
			if err := c.Add(score, route); err != nil {
				log.Printf("Skipping chart line %q: %v", line, err)
				skipped++
			}
		}
	}

	if c.Len() == 0 {
		return nil, ErrNoRoutes
	}
	log.Printf("Parsed checkout chart with %d scores (%d routes skipped)", c.Len(), skipped)
	return c, nil
}

// ParseRoute turns a chart route such as "T20 T20 Bull" into a path
func ParseRoute(route string) (checkout.Path, error) {
	var tokens []string
	for _, field := range tokenSplitRegex.Split(strings.TrimSpace(route), -1) {
		field = strings.ToUpper(strings.Trim(field, "().;"))
		if field == "" {
			continue
		}
		if spelling, ok := chartSpellings[field]; ok {
			field = spelling
		} else if strings.HasPrefix(field, "S") {
			field = strings.TrimPrefix(field, "S")
		}
		tokens = append(tokens, field)
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty route")
	}

	path, ok := checkout.ParsePath(tokens...)
	if !ok {
		return nil, fmt.Errorf("route %q contains an illegal throw", route)
	}
	return path, nil
}

// ExtractChartFromHTML reads a chart laid out as table rows (score in the first cell,
// throws in the following cells). Pages without such a table are parsed as plain text.
func ExtractChartFromHTML(htmlContent string) (*Chart, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("error parsing chart HTML: %w", err)
	}

	c := New("html")
	doc.Find("tr").Each(func(i int, row *goquery.Selection) {
		var cells []string
		row.Find("td, th").Each(func(j int, cell *goquery.Selection) {
			text := strings.TrimSpace(cell.Text())
			if text != "" {
				cells = append(cells, text)
			}
		})
		if len(cells) < 2 {
			return
		}

		score, err := strconv.Atoi(cells[0])
		if err != nil {
			// Header rows such as "Score | Dart 1 | Dart 2 | Dart 3"
			return
		}

		route, err := ParseRoute(strings.Join(cells[1:], " "))
		if err != nil {
			log.Printf("Skipping chart row %d: %v", i, err)
			return
		}
		if err := c.Add(score, route); err != nil {
			log.Printf("Skipping chart row %d: %v", i, err)
		}
	})

	if c.Len() > 0 {
		log.Printf("Extracted %d charted scores from HTML table", c.Len())
		return c, nil
	}

	log.Println("No chart table found in HTML, trying line-by-line parsing...")
	fromText, err := ParseChartText(doc.Text())
	if err != nil {
		return nil, err
	}
	fromText.Source = "html"
	return fromText, nil
}

// ReadPDFText reads a PDF file and returns its text content
func ReadPDFText(pdfPath string) (string, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("error opening PDF: %w", err)
	}
	defer f.Close()

	plainText, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("error extracting text from PDF: %w", err)
	}

	bytes, err := io.ReadAll(plainText)
	if err != nil {
		return "", fmt.Errorf("error reading plain text from PDF: %w", err)
	}
	return string(bytes), nil
}

// ReadPDFChart parses a printed checkout chart
func ReadPDFChart(pdfPath string) (*Chart, error) {
	text, err := ReadPDFText(pdfPath)
	if err != nil {
		return nil, err
	}
	c, err := ParseChartText(text)
	if err != nil {
		return nil, fmt.Errorf("error parsing chart %s: %w", pdfPath, err)
	}
	c.Source = pdfPath
	return c, nil
}
