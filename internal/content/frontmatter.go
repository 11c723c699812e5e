package content

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var fmDelim = []byte("---")

// SplitFrontMatter separates a leading YAML front matter block from the
// markdown body. Files without front matter return a nil block.
func SplitFrontMatter(src []byte) (fm []byte, body []byte) {
	src = bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(src, fmDelim) {
		return nil, src
	}
	rest := src[len(fmDelim):]
	nl := bytes.IndexByte(rest, '\n')
	if nl < 0 || len(bytes.TrimSpace(rest[:nl])) != 0 {
		return nil, src
	}
	rest = rest[nl+1:]

	for off := 0; off <= len(rest); {
		end := bytes.IndexByte(rest[off:], '\n')
		line := rest[off:]
		if end >= 0 {
			line = rest[off : off+end]
		}
		if bytes.Equal(bytes.TrimRight(line, " \t"), fmDelim) {
			fm = rest[:off]
			if end < 0 {
				return fm, nil
			}
			return fm, rest[off+end+1:]
		}
		if end < 0 {
			break
		}
		off += end + 1
	}
	return nil, src
}

// decodeFrontMatter unmarshals a front matter block into out.
func decodeFrontMatter(fm []byte, out any) error {
	if len(bytes.TrimSpace(fm)) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(fm, out); err != nil {
		return fmt.Errorf("parsing front matter: %w", err)
	}
	return nil
}

// Minutes is a reading time authored either as a number or as a string such
// as "45 minutes". Unparseable values decode to zero.
type Minutes int

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Minutes) UnmarshalYAML(value *yaml.Node) error {
	var n int
	if err := value.Decode(&n); err == nil {
		*m = Minutes(n)
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		*m = 0
		return nil
	}
	*m = Minutes(parseMinutes(s))
	return nil
}

func parseMinutes(s string) int {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}

type legendFrontMatter struct {
	Legend              string      `yaml:"legend"`
	Subtitle            string      `yaml:"subtitle"`
	Dates               string      `yaml:"dates"`
	Archetype           string      `yaml:"archetype"`
	ArchetypeColor      string      `yaml:"archetypeColor"`
	SecondaryArchetypes []string    `yaml:"secondaryArchetypes"`
	Industry            string      `yaml:"industry"`
	CoverImage          string      `yaml:"coverImage"`
	IconImage           string      `yaml:"iconImage"`
	CoverQuote          string      `yaml:"coverQuote"`
	Quote               string      `yaml:"quote"`
	QuoteAttribution    string      `yaml:"quoteAttribution"`
	Hook                string      `yaml:"hook"`
	Introduction        string      `yaml:"introduction"`
	CentralQuestion     string      `yaml:"centralQuestion"`
	TotalReadingTime    Minutes     `yaml:"totalReadingTime"`
	Volumes             []VolumeRef `yaml:"volumes"`
}

type sectionFrontMatter struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
}

type marginaliaFrontMatter struct {
	ID      string `yaml:"id"`
	Section string `yaml:"section"`
	Type    string `yaml:"type"`
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

type volumeFrontMatter struct {
	Title               string                  `yaml:"title"`
	Subtitle            string                  `yaml:"subtitle"`
	LegendName          string                  `yaml:"legendName"`
	Dates               string                  `yaml:"dates"`
	Industry            string                  `yaml:"industry"`
	ReadingTime         Minutes                 `yaml:"readingTime"`
	Archetype           string                  `yaml:"archetype"`
	ArchetypeColor      string                  `yaml:"archetypeColor"`
	SecondaryArchetypes []string                `yaml:"secondaryArchetypes"`
	Disciplines         []string                `yaml:"disciplines"`
	Motifs              []string                `yaml:"motifs"`
	CoverImage          string                  `yaml:"coverImage"`
	Quote               string                  `yaml:"quote"`
	QuoteAttribution    string                  `yaml:"quoteAttribution"`
	PDFURL              string                  `yaml:"pdfUrl"`
	Hook                string                  `yaml:"hook"`
	Sections            []sectionFrontMatter    `yaml:"sections"`
	Marginalia          []marginaliaFrontMatter `yaml:"marginalia"`
	Sources             []Source                `yaml:"sources"`
}

type modelFrontMatter struct {
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
	Status  string `yaml:"status"`
}
