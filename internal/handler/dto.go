package handler

import (
	"encoding/json"

	"dash0times/internal/model"
)

type ArticleSummary struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Excerpt     string   `json:"excerpt"`
	Tags        []string `json:"tags"`
	PublishedAt string   `json:"publishedAt"`
	Author      string   `json:"author"`
}

type ArticleDetail struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Excerpt     string   `json:"excerpt"`
	Body        string   `json:"body"`
	Tags        []string `json:"tags"`
	PublishedAt string   `json:"publishedAt"`
	Author      string   `json:"author"`
}

type ArticlesResponse struct {
	Articles []ArticleSummary `json:"articles"`
	Viewer   json.RawMessage  `json:"viewer,omitempty"`
}

type ArticleResponse struct {
	Article ArticleDetail   `json:"article"`
	Viewer  json.RawMessage `json:"viewer,omitempty"`
}

type SearchResponse struct {
	Results []ArticleSummary `json:"results"`
	Query   string           `json:"query"`
}

type RecommendationResponse struct {
	Recommendations []ArticleSummary `json:"recommendations"`
}

type AnalyzeResponse struct {
	Result    string `json:"result"`
	Duration  int64  `json:"duration"`
	Timestamp string `json:"timestamp"`
}

type FlakyResponse struct {
	Status string `json:"status"`
	Data   string `json:"data"`
}

type DatabaseQueryResponse struct {
	TotalArticles  int   `json:"totalArticles"`
	TotalAuthors   int   `json:"totalAuthors"`
	RecentArticles int   `json:"recentArticles"`
	QueryTime      int64 `json:"queryTime"`
}

type WeatherResponse struct {
	Location    string `json:"location"`
	Temperature int    `json:"temperature"`
	Condition   string `json:"condition"`
	Humidity    int    `json:"humidity"`
	Timestamp   string `json:"timestamp"`
}

type FileOperationsResponse struct {
	Operation     string `json:"operation"`
	FileName      string `json:"fileName"`
	ContentLength int    `json:"contentLength"`
	Timestamp     string `json:"timestamp"`
}

type CacheDemoResponse struct {
	Source    string `json:"source"`
	Key       string `json:"key"`
	Data      string `json:"data"`
	Timestamp string `json:"timestamp"`
}

func toSummary(a model.Article) ArticleSummary {
	return ArticleSummary{
		ID:          a.ID,
		Title:       a.Title,
		Excerpt:     a.Excerpt,
		Tags:        nonNilTags(a.Tags),
		PublishedAt: model.Timestamp(a.PublishedAt),
		Author:      a.Author,
	}
}

func toDetail(a model.Article) ArticleDetail {
	return ArticleDetail{
		ID:          a.ID,
		Title:       a.Title,
		Excerpt:     a.Excerpt,
		Body:        a.Body,
		Tags:        nonNilTags(a.Tags),
		PublishedAt: model.Timestamp(a.PublishedAt),
		Author:      a.Author,
	}
}

func toSummaries(articles []model.Article) []ArticleSummary {
	res := make([]ArticleSummary, 0, len(articles))
	for _, a := range articles {
		res = append(res, toSummary(a))
	}
	return res
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
