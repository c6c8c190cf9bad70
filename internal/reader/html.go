package reader

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"IRNotifier/internal/domain"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// Selectors for the likely main-content area, tried before falling back to
// paragraph and whole-body extraction.
const contentAreaSelectors = "article, .content, .main, main, .article, #content, #main"

const minParagraphRunes = 200

func parseHTMLDocument(body io.Reader, rawURL string) (domain.Document, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return domain.Document{}, fmt.Errorf("parse html: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = extractTitleFromURL(rawURL)
	}

	metaDesc, _ := doc.Find(`meta[name="description"]`).First().Attr("content")
	metaDesc = strings.TrimSpace(metaDesc)

	// Navigation chrome and scripts only dilute term matching.
	doc.Find("nav, header, footer, aside, .ad, .advertisement, .banner, script, style").Remove()

	content := largestContentArea(doc)
	if content == "" {
		content = paragraphText(doc)
		if utf8.RuneCountInString(content) < minParagraphRunes {
			content = doc.Find("body").Text()
		}
	}

	if utf8.RuneCountInString(metaDesc) > 50 {
		content = metaDesc + " " + content
	}
	content = strings.TrimSpace(whitespacePattern.ReplaceAllString(content, " "))

	symbol := extractSymbolFromURL(rawURL)
	if symbol == "" {
		symbol = extractSymbolFromText(content)
	}

	return domain.Document{
		Symbol:    symbol,
		Title:     title,
		Body:      content,
		Origin:    domain.OriginURL,
		SourceURL: rawURL,
	}, nil
}

func largestContentArea(doc *goquery.Document) string {
	best := ""
	doc.Find(contentAreaSelectors).Each(func(_ int, area *goquery.Selection) {
		text := strings.TrimSpace(area.Text())
		if len(text) > len(best) {
			best = text
		}
	})
	return best
}

func paragraphText(doc *goquery.Document) string {
	var parts []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, " ")
}
