package model

import "time"

const (
	PlanFree       = "free"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

type Article struct {
	ID          string
	Title       string
	Excerpt     string
	Body        string
	Tags        []string
	PublishedAt time.Time
	Author      string
}

// Viewer is the unauthenticated caller identity taken from the x-demo-user header.
type Viewer struct {
	ID   string `json:"id"`
	Plan string `json:"plan"`
}

// Timestamp renders t the way the API serializes publishedAt: RFC 3339 in UTC,
// with milliseconds only when the instant has a sub-second part.
func Timestamp(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond() == 0 {
		return t.Format(time.RFC3339)
	}
	return t.Format("2006-01-02T15:04:05.000Z07:00")
}
