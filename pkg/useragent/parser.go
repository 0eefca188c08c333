package useragent

import (
	"strings"

	"github.com/ua-parser/uap-go/uaparser"
)

// Classifier wraps the uap-go User-Agent parser with the coarse
// classification the click pipeline needs: is this a bot, and roughly what
// kind of device clicked.
type Classifier struct {
	parser *uaparser.Parser
}

// NewClassifier builds a classifier from the regex definitions compiled into
// uap-go, so no external regexes file is needed at runtime.
func NewClassifier() *Classifier {
	return &Classifier{parser: uaparser.NewFromSaved()}
}

var botIndicators = []string{
	"googlebot", "bingbot", "slurp", "duckduckbot", "baiduspider",
	"yandexbot", "facebookexternalhit", "twitterbot", "linkedinbot",
	"whatsapp", "telegrambot", "skypeuripreview", "bot", "crawler",
	"spider", "scraper", "curl", "wget", "python-requests", "go-http-client",
}

// IsBot reports whether the User-Agent looks like an automated client. An
// empty User-Agent is treated as a bot: real browsers always send one.
func (c *Classifier) IsBot(userAgent string) bool {
	if strings.TrimSpace(userAgent) == "" {
		return true
	}

	client := c.parser.Parse(userAgent)
	if client.Device.Family == "Spider" {
		return true
	}

	lower := strings.ToLower(userAgent)
	family := strings.ToLower(client.UserAgent.Family)
	for _, indicator := range botIndicators {
		if strings.Contains(lower, indicator) || strings.Contains(family, indicator) {
			return true
		}
	}

	return false
}

// DeviceType classifies the User-Agent as bot, mobile, tablet, desktop or
// unknown.
func (c *Classifier) DeviceType(userAgent string) string {
	if c.IsBot(userAgent) {
		return "bot"
	}

	client := c.parser.Parse(userAgent)
	osFamily := client.Os.Family

	switch {
	case strings.Contains(osFamily, "iOS"):
		if strings.Contains(userAgent, "iPad") {
			return "tablet"
		}
		return "mobile"
	case strings.Contains(osFamily, "Android"):
		// Android tablets typically do not carry "Mobile" in the User-Agent.
		if !strings.Contains(userAgent, "Mobile") {
			return "tablet"
		}
		return "mobile"
	case osFamily == "Windows", strings.Contains(osFamily, "Mac OS X"),
		strings.Contains(osFamily, "Linux"), strings.Contains(osFamily, "Chrome OS"):
		return "desktop"
	}

	return "unknown"
}
