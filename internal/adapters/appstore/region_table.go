// Package appstore scrapes the storefront's published financial-report
// regions and currencies table.
package appstore

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/musicmuni/pppfy/internal/core/domain"
	"golang.org/x/net/html"
)

// DefaultTableURL is Apple's published financial report regions page.
const DefaultTableURL = "https://developer.apple.com/help/app-store-connect/reference/financial-report-regions-and-currencies/"

// Expected column headers of the published table.
const (
	headerReportRegion   = "Report Region"
	headerReportCurrency = "Report Currency"
	headerRegionCode     = "Region Code"
	headerCountries      = "Countries or Regions"
)

// Client scrapes region rows from the storefront's help page.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a Client for url. A nil httpClient gets a default with a
// 30s timeout.
func NewClient(url string, httpClient *http.Client) *Client {
	if url == "" {
		url = DefaultTableURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{url: url, httpClient: httpClient}
}

// RegionRows fetches the page and extracts the first table into region rows.
func (c *Client) RegionRows(ctx context.Context) ([]domain.RegionRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build region table request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch region table: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("region table request returned status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse region table page: %w", err)
	}
	return extractRows(doc)
}

func extractRows(doc *html.Node) ([]domain.RegionRow, error) {
	table := findFirst(doc, "table")
	if table == nil {
		return nil, fmt.Errorf("no table found in region page")
	}

	var headers []string
	var rows []domain.RegionRow
	for _, tr := range findAll(table, "tr") {
		if ths := findAll(tr, "th"); len(ths) > 0 {
			headers = headers[:0]
			for _, th := range ths {
				headers = append(headers, nodeText(th))
			}
			continue
		}

		tds := findAll(tr, "td")
		if len(tds) == 0 {
			continue
		}
		cells := make(map[string]string, len(tds))
		for i, td := range tds {
			if i < len(headers) {
				cells[headers[i]] = nodeText(td)
			}
		}
		rows = append(rows, domain.RegionRow{
			ReportRegion:       cells[headerReportRegion],
			ReportCurrency:     cells[headerReportCurrency],
			RegionCode:         cells[headerRegionCode],
			CountriesOrRegions: cells[headerCountries],
		})
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("region table contained no data rows")
	}
	return rows, nil
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findFirst(child, tag); found != nil {
			return found
		}
	}
	return nil
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == tag {
			out = append(out, node)
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child)
	}
	return out
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
