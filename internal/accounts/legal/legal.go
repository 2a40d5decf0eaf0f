// Package legal loads the terms and privacy documents linked from the form
// footers. Documents are markdown with YAML front matter.
package legal

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

//go:embed content/*.md
var embedded embed.FS

// ErrNotFound is returned when no document exists for a slug.
var ErrNotFound = errors.New("legal: document not found")

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// Document is a rendered legal page.
type Document struct {
	Slug      string
	Title     string
	UpdatedAt time.Time
	HTML      string
}

type frontMatter struct {
	Title     string `yaml:"title"`
	UpdatedAt string `yaml:"updated_at"`
}

// Content returns the documents bundled with the binary.
func Content() fs.FS {
	sub, err := fs.Sub(embedded, "content")
	if err != nil {
		panic(fmt.Sprintf("legal: embedded content: %v", err))
	}
	return sub
}

// Store renders documents from a filesystem of <slug>.md files.
type Store struct {
	fsys     fs.FS
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

// NewStore returns a Store reading from fsys. A nil fsys uses the embedded
// documents.
func NewStore(fsys fs.FS) *Store {
	if fsys == nil {
		fsys = Content()
	}
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	return &Store{
		fsys:     fsys,
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy:   policy,
	}
}

// Load reads, renders and sanitises the document for slug.
func (s *Store) Load(slug string) (Document, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if !slugPattern.MatchString(slug) {
		return Document{}, ErrNotFound
	}

	data, err := fs.ReadFile(s.fsys, slug+".md")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Document{}, ErrNotFound
		}
		return Document{}, fmt.Errorf("legal: read %s: %w", slug, err)
	}

	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Document{}, fmt.Errorf("legal: parse front matter %s: %w", slug, err)
		}
	}

	var rendered bytes.Buffer
	if err := s.markdown.Convert([]byte(body), &rendered); err != nil {
		return Document{}, fmt.Errorf("legal: render %s: %w", slug, err)
	}

	doc := Document{
		Slug:      slug,
		Title:     strings.TrimSpace(front.Title),
		UpdatedAt: parseDate(front.UpdatedAt),
		HTML:      s.policy.Sanitize(rendered.String()),
	}
	if doc.Title == "" {
		doc.Title = prettifySlug(slug)
	}
	return doc, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}
