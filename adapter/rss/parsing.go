package rss

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html/charset"

	"gator/domain"
)

type rssRoot struct {
	XMLName xml.Name
	Channel *rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Links       []rssText `xml:"link"`
	Description string    `xml:"description"`
	// Zero, one or many <item> elements all land here.
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string    `xml:"title"`
	Links       []rssText `xml:"link"`
	Description string    `xml:"description"`
	PubDate     string    `xml:"pubDate"`
}

// rssText keeps the element namespace so <atom:link> siblings can be told apart from <link>.
type rssText struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

// Parse decodes an RSS document and validates the channel.
// Items lacking a title or link are dropped.
func Parse(data []byte) (*domain.RSSFeed, error) {
	switch gofeed.DetectFeedType(bytes.NewReader(data)) {
	case gofeed.FeedTypeAtom:
		return nil, fmt.Errorf("%w: got an Atom document, channel does not exist", domain.ErrMalformedFeed)
	case gofeed.FeedTypeJSON:
		return nil, fmt.Errorf("%w: got a JSON feed, channel does not exist", domain.ErrMalformedFeed)
	}

	var root rssRoot
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Strict = false
	decoder.CharsetReader = charset.NewReaderLabel
	if err := decoder.Decode(&root); err != nil {
		return nil, err
	}

	if root.XMLName.Local != "rss" || root.Channel == nil {
		return nil, fmt.Errorf("%w: channel does not exist", domain.ErrMalformedFeed)
	}

	channel := root.Channel
	feed := &domain.RSSFeed{Channel: domain.RSSChannel{
		Title:       strings.TrimSpace(channel.Title),
		Link:        plainLink(channel.Links),
		Description: strings.TrimSpace(channel.Description),
		Items:       make([]domain.RSSItem, 0, len(channel.Items)),
	}}

	if feed.Channel.Title == "" || feed.Channel.Link == "" || feed.Channel.Description == "" {
		return nil, domain.ErrMissingMetadata
	}

	for _, it := range channel.Items {
		if item, ok := normalizeItem(it); ok {
			feed.Channel.Items = append(feed.Channel.Items, item)
		}
	}

	return feed, nil
}

func normalizeItem(it rssItem) (domain.RSSItem, bool) {
	item := domain.RSSItem{
		Title:       strings.TrimSpace(it.Title),
		Link:        plainLink(it.Links),
		Description: strings.TrimSpace(it.Description),
		PubDate:     strings.TrimSpace(it.PubDate),
	}
	if item.Title == "" || item.Link == "" {
		return domain.RSSItem{}, false
	}
	return item, true
}

func plainLink(links []rssText) string {
	for _, link := range links {
		if link.XMLName.Space != "" {
			continue
		}
		if value := strings.TrimSpace(link.Value); value != "" {
			return value
		}
	}
	return ""
}
