// Package extract implements the link-extractor contract: given an HTML
// body and its base URL, return the list of absolute, normalized,
// http(s) outbound URLs referenced by anchor tags.
package extract

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
	"github.com/saintfish/chardet"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/alvmarrod/pagerank-crawler/internal/urlnorm"
)

// MaxBodySize bounds the input accepted for extraction; bodies larger
// than this yield an empty list rather than being parsed.
const MaxBodySize = 100 * 1024 * 1024

var detector = chardet.NewTextDetector()

// Links parses body as HTML relative to baseURL and returns the
// absolute, normalized http(s) URLs found in anchor href attributes.
// Duplicates within a single page's output are preserved, matching the
// contract that adjacency lists are multisets.
func Links(body []byte, baseURL string) []string {
	if len(body) > MaxBodySize {
		logrus.Warnf("extract: body for %s exceeds %d bytes, skipping", baseURL, MaxBodySize)
		return nil
	}

	utf8Body := toUTF8(body)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(utf8Body))
	if err != nil {
		logrus.Warnf("extract: failed to parse HTML for %s: %v", baseURL, err)
		return nil
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}

		absolute, err := urlnorm.Resolve(baseURL, href)
		if err != nil {
			return
		}

		if !urlnorm.Valid(absolute) {
			return
		}

		links = append(links, absolute)
	})

	return links
}

// toUTF8 detects the body's charset and transcodes it to UTF-8. Bodies
// that are already UTF-8, or whose charset cannot be reliably detected,
// are returned unchanged — malformed/undetectable encodings degrade to
// "best effort parse", never to an error.
func toUTF8(body []byte) []byte {
	result, err := detector.DetectBest(body)
	if err != nil || result == nil || result.Charset == "" {
		return body
	}

	enc, err := htmlindex.Get(result.Charset)
	if err != nil {
		return body
	}

	name, _ := htmlindex.Name(enc)
	if name == "utf-8" {
		return body
	}

	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return body
	}
	return decoded
}
