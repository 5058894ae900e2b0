package keywords

import (
	"errors"
	"fmt"
	"io"
	"strings"

	motmedelErrors "github.com/Motmedel/static_server_go/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	ErrNilReader      = errors.New("nil reader")
	ErrNoKeywordsMeta = errors.New("no keywords meta tag")
)

const ExpectedFormat = `<meta name="keywords" content="keyword1, keyword2, ...">`

type Result struct {
	Keywords []string
	Tag      string
}

func splitKeywords(content string) []string {
	var keywords []string
	for _, keyword := range strings.Split(content, ",") {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			continue
		}
		keywords = append(keywords, keyword)
	}
	return keywords
}

// Extract returns the keywords of the first `<meta name="keywords">` element
// with a non-empty content attribute in the HTML document read from reader.
func Extract(reader io.Reader) (*Result, error) {
	if reader == nil {
		return nil, motmedelErrors.NewWithTrace(ErrNilReader)
	}

	tokenizer := html.NewTokenizer(reader)
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if err := tokenizer.Err(); err != io.EOF {
				return nil, motmedelErrors.NewWithTrace(fmt.Errorf("html tokenizer next: %w", err))
			}
			return nil, motmedelErrors.NewWithTrace(ErrNoKeywordsMeta)
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			if token.DataAtom != atom.Meta {
				continue
			}

			var name, content string
			var hasContent bool
			for _, attribute := range token.Attr {
				switch strings.ToLower(attribute.Key) {
				case "name":
					name = attribute.Val
				case "content":
					content = attribute.Val
					hasContent = true
				}
			}

			if !strings.EqualFold(name, "keywords") || !hasContent || strings.TrimSpace(content) == "" {
				continue
			}

			return &Result{Keywords: splitKeywords(content), Tag: token.String()}, nil
		}
	}
}
