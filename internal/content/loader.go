// Package content loads articles, timeline events, evidence documents and
// categories from a content tree of markdown and JSON files.
//
// Layout (relative to the tree root):
//
//	articles/*.md
//	timeline/*.json
//	evidence/*.md
//	categories/categories.json
//
// Every load call reads the files again; nothing is cached here.
package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/olive-branch-content-api/internal/models"
	"github.com/olive-branch-content-api/internal/readtime"
	"github.com/olive-branch-content-api/internal/validation"
	"github.com/rs/zerolog"
)

// Sub-directories and files of the content tree
const (
	ArticlesDir    = "articles"
	TimelineDir    = "timeline"
	EvidenceDir    = "evidence"
	CategoriesFile = "categories/categories.json"
)

// idNamespace seeds deterministic ids for records that carry none
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("olive-branch-content"))

// Loader reads content records from a content tree
type Loader struct {
	fsys fs.FS
	log  zerolog.Logger
}

// NewLoader creates a loader over fsys, whose root is the content tree root
func NewLoader(fsys fs.FS, log zerolog.Logger) *Loader {
	return &Loader{
		fsys: fsys,
		log:  log.With().Str("component", "content-loader").Logger(),
	}
}

// NewDirLoader creates a loader over a content directory on disk
func NewDirLoader(dir string, log zerolog.Logger) *Loader {
	return NewLoader(os.DirFS(dir), log)
}

// LoadArticles loads every articles/*.md file, newest publishedAt first.
// Files that fail to parse or validate are skipped and logged.
func (l *Loader) LoadArticles() ([]models.Article, error) {
	files, err := l.listFiles(ArticlesDir, ".md")
	if err != nil {
		return nil, err
	}

	validator := validation.NewValidator()
	articles := make([]models.Article, 0, len(files))

	for _, file := range files {
		article, err := l.parseArticle(file, validator)
		if err != nil {
			l.skip(file, err)
			continue
		}
		validator.AddArticleSlug(article.Slug)
		validator.AddID(article.ID)
		articles = append(articles, *article)
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})

	l.log.Debug().Int("count", len(articles)).Int("files", len(files)).Msg("Articles loaded")
	return articles, nil
}

// LoadEvidence loads every evidence/*.md file, newest publishedAt first
func (l *Loader) LoadEvidence() ([]models.EvidenceDocument, error) {
	files, err := l.listFiles(EvidenceDir, ".md")
	if err != nil {
		return nil, err
	}

	validator := validation.NewValidator()
	documents := make([]models.EvidenceDocument, 0, len(files))

	for _, file := range files {
		doc, err := l.parseEvidence(file, validator)
		if err != nil {
			l.skip(file, err)
			continue
		}
		validator.AddID(doc.ID)
		documents = append(documents, *doc)
	}

	sort.SliceStable(documents, func(i, j int) bool {
		return documents[i].PublishedAt.After(documents[j].PublishedAt)
	})

	l.log.Debug().Int("count", len(documents)).Int("files", len(files)).Msg("Evidence loaded")
	return documents, nil
}

// LoadTimeline loads every timeline/*.json array, latest date first
func (l *Loader) LoadTimeline() ([]models.TimelineEvent, error) {
	files, err := l.listFiles(TimelineDir, ".json")
	if err != nil {
		return nil, err
	}

	validator := validation.NewValidator()
	var events []models.TimelineEvent

	for _, file := range files {
		elements, modTime, err := l.readJSONArray(file)
		if err != nil {
			l.skip(file, err)
			continue
		}

		for i, raw := range elements {
			ref := fmt.Sprintf("%s#%d", file, i)
			event, err := parseTimelineEvent(ref, raw, modTime, validator)
			if err != nil {
				l.skip(ref, err)
				continue
			}
			validator.AddID(event.ID)
			events = append(events, *event)
		}
	}

	if events == nil {
		events = []models.TimelineEvent{}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.After(events[j].Date)
	})

	l.log.Debug().Int("count", len(events)).Int("files", len(files)).Msg("Timeline loaded")
	return events, nil
}

// LoadCategories loads categories/categories.json ordered by order ascending.
// A missing or malformed file yields an empty list.
func (l *Loader) LoadCategories() ([]models.Category, error) {
	categories := []models.Category{}

	elements, _, err := l.readJSONArray(CategoriesFile)
	if errors.Is(err, fs.ErrNotExist) {
		l.log.Debug().Str("file", CategoriesFile).Msg("Categories file not found")
		return categories, nil
	}
	if errors.Is(err, ErrMalformedSource) {
		l.skip(CategoriesFile, err)
		return categories, nil
	}
	if err != nil {
		return nil, err
	}

	validator := validation.NewValidator()
	for i, raw := range elements {
		ref := fmt.Sprintf("%s#%d", CategoriesFile, i)

		var src models.CategorySource
		if err := json.Unmarshal(raw, &src); err != nil {
			l.skip(ref, malformed(ref, err))
			continue
		}
		id := src.ID
		if id == "" {
			id = uuid.NewSHA1(idNamespace, []byte("category:"+src.Slug)).String()
		}
		errs := validator.ValidateCategory(&src)
		if errs = append(errs, validator.ValidateID(id)...); len(errs) > 0 {
			l.skip(ref, invalid(ref, errs))
			continue
		}
		validator.AddCategorySlug(src.Slug)
		validator.AddID(id)
		categories = append(categories, models.Category{
			ID:          id,
			Name:        src.Name,
			Slug:        src.Slug,
			Description: src.Description,
			Color:       src.Color,
			Icon:        src.Icon,
			Order:       src.Order,
		})
	}

	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Order < categories[j].Order
	})

	return categories, nil
}

func (l *Loader) parseArticle(file string, validator *validation.Validator) (*models.Article, error) {
	var src models.ArticleSource
	body, err := l.readMarkdown(file, &src)
	if err != nil {
		return nil, err
	}

	base := baseName(file)
	id := firstNonEmpty(src.ID, base)
	slug := firstNonEmpty(src.Slug, base)
	errs := validator.ValidateArticle(&src, slug)
	if errs = append(errs, validator.ValidateID(id)...); len(errs) > 0 {
		return nil, invalid(file, errs)
	}

	publishedAt, _ := validation.ParseDate(src.PublishedAt)
	updatedAt := publishedAt
	if src.UpdatedAt != "" {
		updatedAt, _ = validation.ParseDate(src.UpdatedAt)
	}

	readTime := src.ReadTime
	if readTime < 1 {
		readTime = max(1, readtime.Estimate(body))
	}

	return &models.Article{
		ID:          id,
		Title:       src.Title,
		Slug:        slug,
		Content:     body,
		Excerpt:     src.Excerpt,
		Category:    src.Category,
		Tags:        nonNil(src.Tags),
		PublishedAt: publishedAt,
		UpdatedAt:   updatedAt,
		Featured:    src.Featured,
		ReadTime:    readTime,
	}, nil
}

func (l *Loader) parseEvidence(file string, validator *validation.Validator) (*models.EvidenceDocument, error) {
	var src models.EvidenceSource
	body, err := l.readMarkdown(file, &src)
	if err != nil {
		return nil, err
	}

	id := firstNonEmpty(src.ID, baseName(file))
	errs := validator.ValidateEvidence(&src)
	if errs = append(errs, validator.ValidateID(id)...); len(errs) > 0 {
		return nil, invalid(file, errs)
	}

	publishedAt, _ := validation.ParseDate(src.PublishedAt)
	createdAt, updatedAt := publishedAt, publishedAt
	if src.CreatedAt != "" {
		createdAt, _ = validation.ParseDate(src.CreatedAt)
	}
	if src.UpdatedAt != "" {
		updatedAt, _ = validation.ParseDate(src.UpdatedAt)
	}

	docType := models.DocumentType(firstNonEmpty(src.DocumentType, string(models.DocumentTypeOther)))
	status := models.VerificationStatus(firstNonEmpty(src.VerificationStatus, string(models.VerificationPending)))

	return &models.EvidenceDocument{
		ID:                 id,
		Title:              src.Title,
		Description:        src.Description,
		DocumentType:       docType,
		Source:             src.Source,
		SourceURL:          src.SourceURL,
		VerificationStatus: status,
		Tags:               nonNil(src.Tags),
		Content:            body,
		PublishedAt:        publishedAt,
		CreatedAt:          createdAt,
		UpdatedAt:          updatedAt,
		Category:           src.Category,
	}, nil
}

// parseTimelineEvent converts one JSON element. Absent createdAt/updatedAt
// fall back to the file's modification time.
func parseTimelineEvent(ref string, raw json.RawMessage, modTime time.Time, validator *validation.Validator) (*models.TimelineEvent, error) {
	var src models.TimelineEventSource
	if err := json.Unmarshal(raw, &src); err != nil {
		return nil, malformed(ref, err)
	}

	id := src.ID
	if id == "" {
		id = uuid.NewSHA1(idNamespace, []byte("timeline:"+ref)).String()
	}
	errs := validator.ValidateTimelineEvent(&src)
	if errs = append(errs, validator.ValidateID(id)...); len(errs) > 0 {
		return nil, invalid(ref, errs)
	}

	date, _ := validation.ParseDate(src.Date)
	createdAt, updatedAt := modTime, modTime
	if src.CreatedAt != "" {
		createdAt, _ = validation.ParseDate(src.CreatedAt)
	}
	if src.UpdatedAt != "" {
		updatedAt, _ = validation.ParseDate(src.UpdatedAt)
	}

	return &models.TimelineEvent{
		ID:          id,
		Title:       src.Title,
		Description: src.Description,
		Date:        date,
		Category:    src.Category,
		Importance:  min(max(src.Importance, models.MinImportance), models.MaxImportance),
		Sources:     nonNil(src.Sources),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// listFiles returns dir's regular files with the given extension in
// enumeration (lexical) order. A missing directory yields no files.
func (l *Loader) listFiles(dir, ext string) ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read content directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(path.Ext(entry.Name()), ext) {
			continue
		}
		files = append(files, path.Join(dir, entry.Name()))
	}
	return files, nil
}

// readMarkdown decodes file's frontmatter into meta and returns the body
func (l *Loader) readMarkdown(file string, meta any) (string, error) {
	data, err := fs.ReadFile(l.fsys, file)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", file, err)
	}
	body, err := parseFrontmatter(data, meta)
	if err != nil {
		return "", malformed(file, err)
	}
	return body, nil
}

func (l *Loader) readJSONArray(file string) ([]json.RawMessage, time.Time, error) {
	data, err := fs.ReadFile(l.fsys, file)
	if err != nil {
		return nil, time.Time{}, err
	}

	var modTime time.Time
	if info, err := fs.Stat(l.fsys, file); err == nil {
		modTime = info.ModTime().UTC()
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, time.Time{}, malformed(file, err)
	}
	return elements, modTime, nil
}

func (l *Loader) skip(file string, err error) {
	l.log.Warn().Err(err).Str("file", file).Msg("Skipping content file")
}

func baseName(file string) string {
	name := path.Base(file)
	return strings.TrimSuffix(name, path.Ext(name))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func nonNil(list models.StringList) []string {
	if list == nil {
		return []string{}
	}
	return []string(list)
}
