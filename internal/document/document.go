package document

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	noiseSelector   = "script, style, iframe, noscript"
	contentSelector = "main, article, .content, #content"
	blockSelector   = "p, div, li, h1, h2, h3, h4, h5, h6, section, blockquote, pre, tr"
)

// ExtractText returns the readable text of an HTML document: the first main
// content element when there is one, otherwise the whole body. Block
// elements are separated by blank lines.
func ExtractText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("create document from reader: %w", err)
	}

	doc.Find(noiseSelector).Remove()

	content := doc.Find(contentSelector).First()
	if content.Length() == 0 {
		content = doc.Find("body")
	}

	content.Find("br").Each(func(_ int, br *goquery.Selection) {
		br.ReplaceWithHtml("\n")
	})
	content.Find(blockSelector).Each(func(_ int, block *goquery.Selection) {
		block.AppendHtml("\n\n")
	})

	return strings.TrimSpace(content.Text()), nil
}
