// Package loadgen drives synthetic traffic against the API so every route
// shows up in traces with realistic volume.
package loadgen

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"dash0times/pkg/client"
)

// Route is one API call the generator knows how to make. n is the sequence
// number of the request and varies ids, queries and cache keys.
type Route struct {
	Name string
	Call func(ctx context.Context, c *client.Client, n int) error
}

const articleCount = 50

var searchTerms = []string{"opentelemetry", "tracing", "metrics", "kubernetes", "collector", "  ", "sampling"}

var DefaultRoutes = []Route{
	{"health", func(ctx context.Context, c *client.Client, n int) error {
		_, err := c.Health(ctx)
		return err
	}},
	{"articles", func(ctx context.Context, c *client.Client, n int) error {
		_, err := c.Articles(ctx)
		return err
	}},
	{"article", func(ctx context.Context, c *client.Client, n int) error {
		// one past the end so not-found traces show up too
		_, err := c.Article(ctx, strconv.Itoa(1+n%(articleCount+1)))
		return err
	}},
	{"search", func(ctx context.Context, c *client.Client, n int) error {
		_, err := c.Search(ctx, searchTerms[n%len(searchTerms)])
		return err
	}},
	{"recommendation", func(ctx context.Context, c *client.Client, n int) error {
		_, err := c.Recommendations(ctx)
		return err
	}},
	{"analyze", func(ctx context.Context, c *client.Client, n int) error {
		_, err := c.Analyze(ctx)
		return err
	}},
	{"flaky-service", func(ctx context.Context, c *client.Client, n int) error {
		_, err := c.FlakyService(ctx)
		return err
	}},
	{"database-query", func(ctx context.Context, c *client.Client, n int) error {
		_, err := c.DatabaseQuery(ctx)
		return err
	}},
	{"external-weather", func(ctx context.Context, c *client.Client, n int) error {
		_, err := c.ExternalWeather(ctx)
		return err
	}},
	{"file-operations", func(ctx context.Context, c *client.Client, n int) error {
		_, err := c.FileOperations(ctx)
		return err
	}},
	{"cache-demo", func(ctx context.Context, c *client.Client, n int) error {
		_, err := c.CacheDemo(ctx, fmt.Sprintf("key-%d", n%10))
		return err
	}},
}

// SelectRoutes returns the named routes in the order given. An empty list
// selects every route.
func SelectRoutes(names []string) ([]Route, error) {
	if len(names) == 0 {
		return DefaultRoutes, nil
	}

	byName := make(map[string]Route, len(DefaultRoutes))
	for _, r := range DefaultRoutes {
		byName[r.Name] = r
	}

	routes := make([]Route, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		r, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown route %q", name)
		}
		routes = append(routes, r)
	}
	return routes, nil
}
