package reader

import (
	"net/url"
	"regexp"
	"strings"
)

// Securities-code extraction patterns, tried in order.
var (
	textSymbolPatterns = []*regexp.Regexp{
		regexp.MustCompile(`証券コード[：:]\s*(\d{4})`),
		regexp.MustCompile(`コード[：:]\s*(\d{4})`),
		regexp.MustCompile(`[\(（](\d{4})[\)）]`),
		regexp.MustCompile(`株式会社.{0,10}?(\d{4})`),
	}

	urlSymbolPatterns = []*regexp.Regexp{
		regexp.MustCompile(`[/=](\d{4})[/.]`),
		regexp.MustCompile(`code=(\d{4})`),
		regexp.MustCompile(`stock=(\d{4})`),
		regexp.MustCompile(`[/=](\d{4,5})[/.]`),
	}

	filenameSymbolPattern = regexp.MustCompile(`(\d{4})`)
	fileExtPattern        = regexp.MustCompile(`\.[^.]+$`)
	separatorPattern      = regexp.MustCompile(`[-_]`)
)

func extractSymbolFromText(text string) string {
	for _, pattern := range textSymbolPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

func extractSymbolFromURL(rawURL string) string {
	for _, pattern := range urlSymbolPatterns {
		if m := pattern.FindStringSubmatch(rawURL); m != nil {
			return m[1]
		}
	}
	return ""
}

func extractSymbolFromFilename(name string) string {
	if m := filenameSymbolPattern.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	return ""
}

// extractTitleFromURL derives a readable title from the last path component.
func extractTitleFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	path := strings.TrimSuffix(parsed.Path, "/")
	if path == "" {
		return parsed.Host
	}

	last := path[strings.LastIndex(path, "/")+1:]
	last = fileExtPattern.ReplaceAllString(last, "")
	if decoded, err := url.QueryUnescape(last); err == nil {
		last = decoded
	}
	last = separatorPattern.ReplaceAllString(last, " ")

	if last == "" {
		return parsed.Host
	}
	return last
}
