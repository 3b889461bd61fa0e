package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ArticleSource is the frontmatter of a content/articles/*.md file
type ArticleSource struct {
	ID          string     `yaml:"id"`
	Title       string     `yaml:"title"`
	Slug        string     `yaml:"slug"`
	Excerpt     string     `yaml:"excerpt"`
	Category    string     `yaml:"category"`
	Tags        StringList `yaml:"tags"`
	PublishedAt string     `yaml:"publishedAt"`
	UpdatedAt   string     `yaml:"updatedAt"`
	Featured    bool       `yaml:"featured"`
	ReadTime    int        `yaml:"readTime"`
}

// EvidenceSource is the frontmatter of a content/evidence/*.md file
type EvidenceSource struct {
	ID                 string     `yaml:"id"`
	Title              string     `yaml:"title"`
	Description        string     `yaml:"description"`
	DocumentType       string     `yaml:"documentType"`
	Source             string     `yaml:"source"`
	SourceURL          string     `yaml:"sourceUrl"`
	VerificationStatus string     `yaml:"verificationStatus"`
	Tags               StringList `yaml:"tags"`
	Category           string     `yaml:"category"`
	PublishedAt        string     `yaml:"publishedAt"`
	CreatedAt          string     `yaml:"createdAt"`
	UpdatedAt          string     `yaml:"updatedAt"`
}

// TimelineEventSource is one element of a content/timeline/*.json array
type TimelineEventSource struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        string     `json:"date"`
	Category    string     `json:"category"`
	Importance  int        `json:"importance"`
	Sources     StringList `json:"sources"`
	CreatedAt   string     `json:"createdAt"`
	UpdatedAt   string     `json:"updatedAt"`
}

// CategorySource is one element of content/categories/categories.json
type CategorySource struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	Order       int    `json:"order"`
}

// StringList accepts either a list of strings or a single comma-delimited string
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*l = items
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*l = nil
			return nil
		}
		*l = SplitList(node.Value)
	default:
		return fmt.Errorf("line %d: expected a list or a comma-separated string", node.Line)
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler
func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*l = nil
	case len(data) > 0 && data[0] == '[':
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = items
	default:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("expected a list or a comma-separated string: %w", err)
		}
		*l = SplitList(s)
	}
	return nil
}

// SplitList splits a comma-delimited string, dropping blank items
func SplitList(s string) []string {
	var items []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
