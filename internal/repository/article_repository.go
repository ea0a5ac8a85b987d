package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dash0times/internal/model"
)

type Querier interface {
	Query(ctx context.Context, query string, args ...any) ([]Row, error)
}

type ArticleRepository struct {
	store Querier
}

func NewArticleRepository(store Querier) *ArticleRepository {
	return &ArticleRepository{store: store}
}

func (r *ArticleRepository) CountArticles(ctx context.Context) (int, error) {
	rows, err := r.store.Query(ctx, `SELECT COUNT(*) AS count FROM articles`)
	if err != nil {
		return 0, err
	}

	if len(rows) == 0 {
		return 0, nil
	}

	return toInt(rows[0]["count"])
}

func (r *ArticleRepository) DistinctAuthors(ctx context.Context) ([]string, error) {
	rows, err := r.store.Query(ctx, `SELECT DISTINCT author FROM articles ORDER BY author`)
	if err != nil {
		return nil, err
	}

	authors := make([]string, 0, len(rows))
	for _, row := range rows {
		author, _ := row["author"].(string)
		authors = append(authors, author)
	}

	return authors, nil
}

func (r *ArticleRepository) RecentArticles(ctx context.Context, limit int) ([]model.Article, error) {
	rows, err := r.store.Query(ctx, `
		SELECT id, title, excerpt, body, author, publishedAt, tags
		FROM articles
		ORDER BY publishedAt DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}

	articles := make([]model.Article, 0, len(rows))
	for _, row := range rows {
		a, err := rowToArticle(row)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	return articles, nil
}

func rowToArticle(row Row) (model.Article, error) {
	var a model.Article
	a.ID, _ = row["id"].(string)
	a.Title, _ = row["title"].(string)
	a.Excerpt, _ = row["excerpt"].(string)
	a.Body, _ = row["body"].(string)
	a.Author, _ = row["author"].(string)

	if raw, _ := row["tags"].(string); raw != "" {
		if err := json.Unmarshal([]byte(raw), &a.Tags); err != nil {
			return model.Article{}, fmt.Errorf("decoding tags for article %s: %w", a.ID, err)
		}
	}

	if raw, _ := row["publishedAt"].(string); raw != "" {
		publishedAt, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return model.Article{}, fmt.Errorf("parsing publishedAt for article %s: %w", a.ID, err)
		}
		a.PublishedAt = publishedAt
	}

	return a, nil
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int64:
		return int(n), nil
	case int:
		return n, nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("unexpected count type %T", v)
	}
}
