// Package fixture holds the static article set served by the API. The set is
// built once at startup from embedded literal records plus a procedurally
// generated tail, and is read-only afterwards.
package fixture

import (
	_ "embed"
	"fmt"
	"time"

	"dash0times/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed articles.yaml
var literalYAML []byte

// Source supplies the randomness used for generated timestamps.
// *math/rand/v2.Rand satisfies it.
type Source interface {
	Int64N(n int64) int64
}

type record struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Excerpt     string   `yaml:"excerpt"`
	Body        string   `yaml:"body"`
	Tags        []string `yaml:"tags"`
	PublishedAt string   `yaml:"publishedAt"`
	Author      string   `yaml:"author"`
}

type literalFile struct {
	Seed  []record `yaml:"seed"`
	Extra []record `yaml:"extra"`
}

type Provider struct {
	articles []model.Article
	byID     map[string]int
}

// New builds the full article set: seed literals, extra literals, then the
// generated tail whose ids continue after the literals.
func New(src Source) (*Provider, error) {
	var file literalFile
	if err := yaml.Unmarshal(literalYAML, &file); err != nil {
		return nil, fmt.Errorf("parsing article fixtures: %w", err)
	}

	var articles []model.Article
	for _, set := range [][]record{file.Seed, file.Extra} {
		for _, r := range set {
			a, err := r.toArticle()
			if err != nil {
				return nil, err
			}
			articles = append(articles, a)
		}
	}

	articles = append(articles, generate(len(articles)+1, src)...)

	return fromArticles(articles)
}

func fromArticles(articles []model.Article) (*Provider, error) {
	byID := make(map[string]int, len(articles))
	for i, a := range articles {
		if err := validate(a); err != nil {
			return nil, err
		}
		if _, dup := byID[a.ID]; dup {
			return nil, fmt.Errorf("duplicate article id %q", a.ID)
		}
		byID[a.ID] = i
	}

	return &Provider{articles: articles, byID: byID}, nil
}

func validate(a model.Article) error {
	switch {
	case a.ID == "":
		return fmt.Errorf("article %q: id is required", a.Title)
	case a.Title == "":
		return fmt.Errorf("article %s: title is required", a.ID)
	case a.Body == "":
		return fmt.Errorf("article %s: body is required", a.ID)
	case a.Author == "":
		return fmt.Errorf("article %s: author is required", a.ID)
	}
	return nil
}

func (r record) toArticle() (model.Article, error) {
	publishedAt, err := time.Parse(time.RFC3339, r.PublishedAt)
	if err != nil {
		return model.Article{}, fmt.Errorf("article %s: invalid publishedAt %q: %w", r.ID, r.PublishedAt, err)
	}

	return model.Article{
		ID:          r.ID,
		Title:       r.Title,
		Excerpt:     r.Excerpt,
		Body:        r.Body,
		Tags:        r.Tags,
		PublishedAt: publishedAt.UTC(),
		Author:      r.Author,
	}, nil
}

// All returns every article in fixture order. The slice is a copy.
func (p *Provider) All() []model.Article {
	out := make([]model.Article, len(p.articles))
	copy(out, p.articles)
	return out
}

func (p *Provider) ByID(id string) (model.Article, bool) {
	i, ok := p.byID[id]
	if !ok {
		return model.Article{}, false
	}
	return p.articles[i], true
}

func (p *Provider) Len() int {
	return len(p.articles)
}
