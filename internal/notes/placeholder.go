package notes

import "strings"

const (
	placeholderPrefix = "[image:"
	placeholderSuffix = "]"
)

// SegmentKind distinguishes rendered text from image references.
type SegmentKind int

const (
	SegmentText SegmentKind = iota
	SegmentImage
)

// Segment is one rendered piece of note content.
type Segment struct {
	Kind SegmentKind
	Text string // SegmentText only, includes the trailing newline
	Name string // the image name; set on a text segment when the image is missing
	Path string // SegmentImage only
}

// Placeholder returns the content line that embeds the named image.
func Placeholder(name string) string {
	return placeholderPrefix + name + placeholderSuffix
}

// ParsePlaceholder returns the image name if line is exactly a placeholder.
func ParsePlaceholder(line string) (string, bool) {
	if !strings.HasPrefix(line, placeholderPrefix) || !strings.HasSuffix(line, placeholderSuffix) {
		return "", false
	}
	if len(line) < len(placeholderPrefix)+len(placeholderSuffix) {
		return "", false
	}
	return line[len(placeholderPrefix) : len(line)-len(placeholderSuffix)], true
}

// FailedImageText is the marker shown for a placeholder whose file is missing.
func FailedImageText(name string) string {
	return "[Failed to load image: " + name + "]"
}

// RenderImagePlaceholders splits content into lines and resolves each image
// placeholder against the image store. Missing images become a visible
// failure marker; the reference is never dropped.
func (s *Service) RenderImagePlaceholders(content string) []Segment {
	var segs []Segment
	for _, line := range splitLines(content) {
		name, ok := ParsePlaceholder(line)
		switch {
		case !ok:
			segs = append(segs, Segment{Kind: SegmentText, Text: line + "\n"})
		case s.images != nil && s.images.Has(name):
			segs = append(segs, Segment{Kind: SegmentImage, Name: name, Path: s.images.Path(name)})
		default:
			segs = append(segs, Segment{Kind: SegmentText, Text: FailedImageText(name) + "\n", Name: name})
		}
	}
	return segs
}

// splitLines splits on line breaks without producing a trailing empty line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
