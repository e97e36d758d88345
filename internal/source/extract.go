// Package source fetches raw comment tables from the supported upstreams:
// the Facebook Graph API, a Bluesky post thread, or a local JSON fixture.
// All fetchers return normalized comment tables; classification happens
// downstream.
package source

import (
	"fmt"
	"regexp"
	"strings"
)

type idPattern struct {
	re     *regexp.Regexp
	format func(m []string) string
}

func single(m []string) string { return m[1] }

// Group posts address the Graph API as "<groupId>_<postId>".
func grouped(m []string) string { return fmt.Sprintf("%s_%s", m[1], m[2]) }

var idPatterns = []idPattern{
	{regexp.MustCompile(`(?i)facebook\.com/reel/(\d+)`), single},
	{regexp.MustCompile(`(?i)facebook\.com/.*/videos/(\d+)`), single},
	{regexp.MustCompile(`(?i)facebook\.com/watch/\?v=(\d+)`), single},
	{regexp.MustCompile(`(?i)[?&]v=(\d+)`), single},
	{regexp.MustCompile(`(?i)facebook\.com/photo\.php\?[^#]*\bfbid=(\d+)`), single},
	{regexp.MustCompile(`(?i)facebook\.com/(?:permalink|story)\.php\?[^#]*\bstory_fbid=(\d+)`), single},
	{regexp.MustCompile(`(?i)facebook\.com/.*/posts/(\d+)`), single},
	{regexp.MustCompile(`(?i)facebook\.com/groups/(\d+)/permalink/(\d+)`), grouped},
	{regexp.MustCompile(`(?i)facebook\.com/groups/(\d+)/posts/(\d+)`), grouped},
}

var numericID = regexp.MustCompile(`^\d+(_\d+)?$`)

// ExtractObjectID pulls a Graph object ID out of the post URL shapes the
// dashboard accepts (reels, videos, watch links, photos, permalinks, group
// posts). Raw numeric IDs pass through unchanged; anything else returns
// empty.
func ExtractObjectID(url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return ""
	}
	for _, p := range idPatterns {
		if m := p.re.FindStringSubmatch(url); m != nil {
			return p.format(m)
		}
	}
	if numericID.MatchString(url) {
		return url
	}
	return ""
}
