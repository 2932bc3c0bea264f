package scraper

import (
	"fmt"
	"strings"

	"github.com/gocolly/colly/v2"
)

// ProcessPage holds the text extracted from a web page describing a business
// process, ready to be fed into the refinement stage.
type ProcessPage struct {
	URL        string
	Title      string
	Paragraphs []string
	StatusCode int
}

// Scraper fetches process descriptions from web pages
type Scraper struct {
	collector *colly.Collector
}

// NewScraper creates a scraper instance with default configuration
func NewScraper() *Scraper {
	c := colly.NewCollector(
		colly.AllowURLRevisit(),
		colly.UserAgent("Mozilla/5.0 (compatible; bpmn-architect/1.0)"),
	)

	return &Scraper{collector: c}
}

// FetchDescription scrapes the page at url and returns its textual content
func (s *Scraper) FetchDescription(url string) (*ProcessPage, error) {
	page := &ProcessPage{URL: url}

	s.collector.OnHTML("title", func(e *colly.HTMLElement) {
		page.Title = strings.TrimSpace(e.Text)
	})

	s.collector.OnHTML("p, li", func(e *colly.HTMLElement) {
		if text := strings.TrimSpace(e.Text); text != "" {
			page.Paragraphs = append(page.Paragraphs, text)
		}
	})

	s.collector.OnResponse(func(r *colly.Response) {
		page.StatusCode = r.StatusCode
	})

	if err := s.collector.Visit(url); err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", url, err)
	}
	s.collector.Wait()

	if len(page.Paragraphs) == 0 {
		return nil, fmt.Errorf("no textual content found at %s", url)
	}

	return page, nil
}

// Description joins the page content into a single raw process description
func (p *ProcessPage) Description() string {
	var b strings.Builder
	if p.Title != "" {
		b.WriteString(p.Title)
		b.WriteString("\n\n")
	}
	b.WriteString(strings.Join(p.Paragraphs, "\n"))
	return b.String()
}
