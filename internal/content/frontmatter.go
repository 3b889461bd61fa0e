package content

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// yamlFormat reads "---" delimited YAML through yaml.v3 so models.StringList
// and the other yaml.v3 unmarshalers apply
var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

var bom = []byte("\xef\xbb\xbf")

// parseFrontmatter decodes a leading "---" delimited metadata block into meta
// and returns the body. A file without an opening delimiter is all body.
func parseFrontmatter(data []byte, meta any) (string, error) {
	data = bytes.TrimPrefix(data, bom)
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))

	body, err := frontmatter.MustParse(bytes.NewReader(data), meta, yamlFormat)
	if errors.Is(err, frontmatter.ErrNotFound) {
		if opensBlock(data) {
			return "", errors.New("frontmatter block is not closed")
		}
		return string(data), nil
	}
	if err != nil {
		return "", fmt.Errorf("decode frontmatter: %w", err)
	}
	return string(bytes.TrimPrefix(body, []byte("\n"))), nil
}

// opensBlock reports whether the first non-blank line is a delimiter
func opensBlock(data []byte) bool {
	for _, line := range bytes.Split(data, []byte("\n")) {
		if s := bytes.TrimSpace(line); len(s) > 0 {
			return string(s) == "---"
		}
	}
	return false
}
