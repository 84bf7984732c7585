package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
)

// Video detection is an ordered list of independent detectors, each emitting
// zero or more candidates; the final stage deduplicates by resolved src.

var (
	videoExtensions = []string{".mp4", ".webm", ".ogv", ".ogg", ".mov", ".m4v", ".avi", ".mkv"}

	youtubeIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`youtube(?:-nocookie)?\.com/watch\?(?:[^"'\s]*&)?v=([A-Za-z0-9_-]{6,})`),
		regexp.MustCompile(`youtube(?:-nocookie)?\.com/embed/([A-Za-z0-9_-]{6,})`),
		regexp.MustCompile(`youtube(?:-nocookie)?\.com/shorts/([A-Za-z0-9_-]{6,})`),
		regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{6,})`),
	}
	vimeoPattern       = regexp.MustCompile(`vimeo\.com/(?:video/)?(\d+)`)
	dailymotionPattern = regexp.MustCompile(`dailymotion\.com/(?:embed/)?video/([A-Za-z0-9]+)`)

	rawVideoFilePattern = regexp.MustCompile(`https?://[^\s"'<>]+\.(?:mp4|webm|ogv|ogg|mov|m4v)\b`)
	rawVideoHostPattern = regexp.MustCompile(`https?://[^\s"'<>]*(?:youtube\.com/(?:watch|embed)|youtu\.be/|vimeo\.com/|dailymotion\.com/)[^\s"'<>]*`)
)

// lazySrcAttrs are common lazy-load aliases for a real src.
var lazySrcAttrs = []string{"src", "data-src", "data-lazy-src", "data-original"}

func extractVideos(doc *goquery.Document, rawHTML string, base *pagelens.NormalizedURL) []pagelens.Video {
	seen := make(map[string]bool)
	var videos []pagelens.Video

	add := func(v pagelens.Video) {
		resolved := base.Resolve(v.Src)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		v.Src = resolved
		videos = append(videos, v)
	}

	// Detector 1: video and source elements, including lazy-load aliases.
	doc.Find("video, video source").Each(func(_ int, s *goquery.Selection) {
		src := firstAttr(s, lazySrcAttrs)
		if src == "" {
			return
		}
		poster := ""
		if goquery.NodeName(s) == "video" {
			poster = base.Resolve(s.AttrOr("poster", ""))
		} else {
			poster = base.Resolve(s.Closest("video").AttrOr("poster", ""))
		}
		add(pagelens.Video{
			Src:       src,
			Type:      s.AttrOr("type", "direct"),
			Thumbnail: poster,
		})
	})

	// Detector 2: iframes pointing at known video hosts, or generic
	// player/embed keywords.
	doc.Find("iframe[src]").Each(func(_ int, s *goquery.Selection) {
		src := s.AttrOr("src", "")
		if v, ok := classifyHostedVideo(src); ok {
			v.Type = "iframe"
			add(v)
			return
		}
		lower := strings.ToLower(src)
		if strings.Contains(lower, "video") || strings.Contains(lower, "player") || strings.Contains(lower, "embed") {
			add(pagelens.Video{Src: src, Type: "iframe"})
		}
	})

	// Detector 3: embed/object elements with a video file extension.
	doc.Find("embed[src], object[data]").Each(func(_ int, s *goquery.Selection) {
		src := s.AttrOr("src", "")
		if src == "" {
			src = s.AttrOr("data", "")
		}
		if hasVideoExtension(src) {
			add(pagelens.Video{Src: src, Type: "embed"})
		}
	})

	// Detector 4: anchors whose href ends in a video file extension.
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		if hasVideoExtension(href) {
			add(pagelens.Video{Src: href, Type: "link"})
		}
	})

	// Detector 5: Open Graph / Twitter player metadata.
	for _, selector := range []string{
		`meta[property="og:video"]`,
		`meta[property="og:video:url"]`,
		`meta[property="og:video:secure_url"]`,
		`meta[name="twitter:player"]`,
		`meta[name="twitter:player:stream"]`,
	} {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			content := s.AttrOr("content", "")
			if content == "" {
				return
			}
			if v, ok := classifyHostedVideo(content); ok {
				v.Type = "meta"
				add(v)
				return
			}
			add(pagelens.Video{Src: content, Type: "meta"})
		})
	}

	// Detector 6: last-resort sweep of the serialized document for raw video
	// file URLs and known video-host URLs not already captured.
	for _, match := range rawVideoFilePattern.FindAllString(rawHTML, -1) {
		add(pagelens.Video{Src: match, Type: "detected"})
	}
	for _, match := range rawVideoHostPattern.FindAllString(rawHTML, -1) {
		if v, ok := classifyHostedVideo(match); ok {
			v.Type = "detected"
			add(v)
		}
	}

	return videos
}

// classifyHostedVideo recognizes YouTube, Vimeo, and Dailymotion URLs.
// YouTube matches synthesize a thumbnail from the video id.
func classifyHostedVideo(src string) (pagelens.Video, bool) {
	for _, p := range youtubeIDPatterns {
		if m := p.FindStringSubmatch(src); m != nil {
			return pagelens.Video{
				Src:       src,
				Platform:  "youtube",
				Thumbnail: "https://i.ytimg.com/vi/" + m[1] + "/hqdefault.jpg",
			}, true
		}
	}
	if vimeoPattern.MatchString(src) {
		return pagelens.Video{Src: src, Platform: "vimeo"}, true
	}
	if dailymotionPattern.MatchString(src) {
		return pagelens.Video{Src: src, Platform: "dailymotion"}, true
	}
	return pagelens.Video{}, false
}

func hasVideoExtension(src string) bool {
	lower := strings.ToLower(src)
	if i := strings.IndexAny(lower, "?#"); i >= 0 {
		lower = lower[:i]
	}
	for _, ext := range videoExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func firstAttr(s *goquery.Selection, names []string) string {
	for _, name := range names {
		if v := strings.TrimSpace(s.AttrOr(name, "")); v != "" {
			return v
		}
	}
	return ""
}
