package domain

import (
	"strings"

	"github.com/goccy/go-yaml"
)

const frontMatterDelimiter = "---"

// FrontMatter holds the YAML front matter fields the tool reports on. The
// rewrite pipeline itself treats front matter as opaque root text; decoding
// exists for the list view only.
type FrontMatter struct {
	Title string `yaml:"title"`
}

// ParseFrontMatter decodes a leading `---` YAML block. It returns the
// decoded fields and the number of lines the block spans including both
// delimiter lines, or (nil, 0) when the document has no front matter.
// An undecodable block is reported as an error but still counts its extent.
func ParseFrontMatter(lines []string) (*FrontMatter, int, error) {
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r\n") != frontMatterDelimiter {
		return nil, 0, nil
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r\n") != frontMatterDelimiter {
			continue
		}

		var fm FrontMatter
		if err := yaml.Unmarshal([]byte(strings.Join(lines[1:i], "")), &fm); err != nil {
			return nil, i + 1, err
		}

		return &fm, i + 1, nil
	}

	return nil, 0, nil
}
