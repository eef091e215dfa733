// Package scraper fetches published checkout charts from the web
package scraper

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Client is the HTTP client used for every request
var Client = &http.Client{
	Timeout: 30 * time.Second,
}

// get sends the request and checks the response status code
func get(rawURL string) (*http.Response, error) {
	resp, err := Client.Get(rawURL)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("non-200 status code: %d %s", resp.StatusCode, resp.Status)
	}
	return resp, nil
}

// FetchURL downloads the HTML content from a URL and returns it as a string
func FetchURL(rawURL string) (string, error) {
	log.Printf("Fetching URL: %s", rawURL)

	resp, err := get(rawURL)
	if err != nil {
		return "", fmt.Errorf("error fetching URL: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %w", err)
	}

	log.Printf("Content-Type: %s, %d bytes", resp.Header.Get("Content-Type"), len(body))
	return string(body), nil
}

// DownloadPDF downloads a PDF file from a URL and saves it locally
func DownloadPDF(rawURL string, localPath string) error {
	log.Printf("Downloading PDF from %s to %s", rawURL, localPath)

	resp, err := get(rawURL)
	if err != nil {
		return fmt.Errorf("error fetching PDF: %w", err)
	}
	defer resp.Body.Close()

	out, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("error saving PDF to file: %w", err)
	}

	log.Printf("Successfully downloaded PDF to %s", localPath)
	return nil
}

// SaveContentToFile saves content to a file
func SaveContentToFile(filename string, content string) error {
	return os.WriteFile(filename, []byte(content), 0644)
}

// ExtractChartLinks returns the href of every link on the page that points at a PDF
func ExtractChartLinks(htmlContent string) []string {
	var links []string

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		log.Printf("Error parsing HTML content: %v", err)
		return links
	}

	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		path := href
		if idx := strings.IndexAny(path, "?#"); idx >= 0 {
			path = path[:idx]
		}
		if strings.HasSuffix(strings.ToLower(path), ".pdf") {
			links = append(links, href)
		}
	})

	log.Printf("Extracted %d chart links", len(links))
	return links
}

// ResolveRelativeURL resolves a link found on the page at baseURL. A base
// without a scheme is assumed to be https.
func ResolveRelativeURL(baseURL, relativeURL string) string {
	if !strings.HasPrefix(baseURL, "https://") && !strings.HasPrefix(baseURL, "http://") {
		baseURL = "https://" + strings.TrimPrefix(strings.TrimPrefix(baseURL, "https:/"), "http:/")
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return relativeURL
	}
	ref, err := url.Parse(relativeURL)
	if err != nil {
		return relativeURL
	}
	return base.ResolveReference(ref).String()
}
