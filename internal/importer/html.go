package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// DefaultFolderName receives bookmarks that sit outside any folder in
// the source file. Server folders are flat, so every entry needs one.
const DefaultFolderName = "Imported"

// Entry is one bookmark parsed from a Netscape bookmark file, resolved
// to the flat folder name it should be created under.
type Entry struct {
	Title      string
	URL        string
	FolderName string
	CreatedAt  time.Time
}

// ParseHTMLBookmarks parses Netscape bookmark HTML into flat entries.
// Nested source folders are flattened into "Parent/Child" names.
func ParseHTMLBookmarks(r io.Reader) ([]Entry, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var entries []Entry

	// Track the folder name stack for hierarchy flattening
	var nameStack []string
	var pendingName string // folder waiting to be pushed on next DL

	currentFolder := func() string {
		if len(nameStack) == 0 {
			return DefaultFolderName
		}
		return strings.Join(nameStack, "/")
	}

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				pendingName = getTextContent(n)
				return // Don't recurse into H3

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					// Skip bookmarks without URL
					return
				}

				title := getTextContent(n)
				if title == "" {
					title = href // fallback to URL as title
				}

				// Parse ADD_DATE timestamp
				createdAt := time.Now()
				if addDate := getAttr(n, "add_date"); addDate != "" {
					if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
						createdAt = time.Unix(ts, 0)
					}
				}

				entries = append(entries, Entry{
					Title:      title,
					URL:        href,
					FolderName: currentFolder(),
					CreatedAt:  createdAt,
				})
				return // Don't recurse into A

			case "dl":
				// Definition list marks folder contents. If a folder
				// name is pending, it owns this list.
				pushed := false
				if pendingName != "" {
					nameStack = append(nameStack, pendingName)
					pendingName = ""
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed && len(nameStack) > 0 {
					nameStack = nameStack[:len(nameStack)-1]
				}
				return // Children handled above
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return entries, nil
}

// FolderNames returns the distinct folder names of the entries, in
// first-seen order.
func FolderNames(entries []Entry) []string {
	seen := make(map[string]bool)
	var names []string
	for _, e := range entries {
		if !seen[e.FolderName] {
			seen[e.FolderName] = true
			names = append(names, e.FolderName)
		}
	}
	return names
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
