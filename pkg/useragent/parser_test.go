package useragent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	chromeDesktopUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	iphoneUA        = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	ipadUA          = "Mozilla/5.0 (iPad; CPU OS 16_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.0 Mobile/15E148 Safari/604.1"
	googlebotUA     = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"
	curlUA          = "curl/8.4.0"
)

func TestIsBot(t *testing.T) {
	c := NewClassifier()

	assert.True(t, c.IsBot(googlebotUA))
	assert.True(t, c.IsBot(curlUA))
	assert.True(t, c.IsBot(""), "empty User-Agent is treated as automated")
	assert.True(t, c.IsBot("python-requests/2.31.0"))

	assert.False(t, c.IsBot(chromeDesktopUA))
	assert.False(t, c.IsBot(iphoneUA))
}

func TestDeviceType(t *testing.T) {
	c := NewClassifier()

	assert.Equal(t, "desktop", c.DeviceType(chromeDesktopUA))
	assert.Equal(t, "mobile", c.DeviceType(iphoneUA))
	assert.Equal(t, "tablet", c.DeviceType(ipadUA))
	assert.Equal(t, "bot", c.DeviceType(googlebotUA))
}
