package client

import "time"

type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt"`
	Body        string    `json:"body,omitempty"`
	Tags        []string  `json:"tags"`
	PublishedAt time.Time `json:"publishedAt"`
	Author      string    `json:"author"`
}

type HealthResponse struct {
	OK bool `json:"ok"`
}

type ArticlesResponse struct {
	Articles []Article `json:"articles"`
	Viewer   *Viewer   `json:"viewer,omitempty"`
}

type ArticleResponse struct {
	Article Article `json:"article"`
	Viewer  *Viewer `json:"viewer,omitempty"`
}

type SearchResponse struct {
	Results []Article `json:"results"`
	Query   string    `json:"query"`
}

type RecommendationResponse struct {
	Recommendations []Article `json:"recommendations"`
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
