package fixture

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"dash0times/internal/model"
)

var topics = []string{
	"Kubernetes Observability with OpenTelemetry",
	"Securing Telemetry Data in Production",
	"OpenTelemetry for Serverless Applications",
	"Monitoring Database Performance with Traces",
	"Observability for Machine Learning Pipelines",
	"Real User Monitoring with OpenTelemetry",
	"Chaos Engineering and Observability",
	"Multi-Cloud Observability Strategies",
	"OpenTelemetry Auto-Instrumentation Deep Dive",
	"Building Observability Dashboards That Matter",
	"Incident Response with Observability Data",
	"OpenTelemetry for Mobile Applications",
	"Observability in CI/CD Pipelines",
	"Performance Testing with Distributed Tracing",
	"OpenTelemetry Semantic Conventions Guide",
	"Observability for Edge Computing",
	"Log Correlation with Distributed Traces",
	"OpenTelemetry Operator for Kubernetes",
	"Observability Data Privacy and Compliance",
	"Building Custom Observability Exporters",
	"Synthetic Monitoring with OpenTelemetry",
	"Observability for Event-Driven Architectures",
	"OpenTelemetry Baggage and Context Propagation",
	"Capacity Planning with Observability Data",
	"Observability Testing Strategies",
	"OpenTelemetry for Legacy System Migration",
	"Real-time Alerting with Streaming Telemetry",
	"Observability for GraphQL APIs",
	"OpenTelemetry Sampling Algorithms Explained",
	"Building Observability Culture in Teams",
	"Observability for Blockchain Applications",
	"OpenTelemetry Protocol (OTLP) Deep Dive",
	"Observability Data Lake Architecture",
	"Performance Profiling with OpenTelemetry",
	"Observability for IoT Systems",
	"OpenTelemetry Contrib Instrumentation Libraries",
	"Observability Maturity Model Assessment",
	"Distributed Tracing for Batch Processing",
	"OpenTelemetry Resource Detection",
	"Observability ROI Measurement",
}

var authors = []string{
	"Dr. Sarah Mitchell", "James Rodriguez", "Anna Kowalski", "Michael Zhang",
	"Rachel Green", "Thomas Anderson", "Priya Patel", "Carlos Mendez",
	"Sophie Laurent", "Ahmed Hassan", "Elena Petrov", "Daniel Kim",
	"Isabella Romano", "Lucas Silva", "Fatima Al-Zahra", "Oliver Johnson",
}

// tagSets runs parallel to topics; a topic without an entry gets defaultTags.
var tagSets = [][]string{
	{"kubernetes", "observability", "deployment"},
	{"security", "telemetry", "privacy"},
	{"serverless", "lambda", "monitoring"},
	{"database", "performance", "optimization"},
	{"machine-learning", "mlops", "monitoring"},
	{"rum", "frontend", "user-experience"},
	{"chaos-engineering", "reliability", "testing"},
	{"multi-cloud", "strategy", "architecture"},
	{"auto-instrumentation", "automation"},
	{"dashboards", "visualization", "ux"},
	{"incident-response", "sre", "operations"},
	{"mobile", "ios", "android"},
	{"cicd", "devops", "automation"},
	{"performance-testing", "load-testing"},
	{"semantic-conventions", "standards"},
	{"edge-computing", "iot", "distributed"},
	{"logs", "correlation", "debugging"},
	{"kubernetes", "operator", "automation"},
	{"privacy", "compliance", "gdpr"},
	{"exporters", "custom", "development"},
	{"synthetic-monitoring", "uptime"},
	{"event-driven", "messaging", "async"},
	{"baggage", "context", "propagation"},
	{"capacity-planning", "forecasting"},
	{"testing", "quality-assurance"},
	{"legacy", "migration", "modernization"},
	{"real-time", "streaming", "alerting"},
	{"graphql", "api", "monitoring"},
	{"sampling", "algorithms", "performance"},
	{"culture", "teams", "adoption"},
	{"blockchain", "web3", "monitoring"},
	{"otlp", "protocol", "networking"},
	{"data-lake", "analytics", "storage"},
	{"profiling", "performance", "optimization"},
	{"iot", "sensors", "telemetry"},
	{"contrib", "libraries", "community"},
	{"maturity", "assessment", "strategy"},
	{"batch-processing", "etl", "monitoring"},
	{"resources", "detection", "metadata"},
	{"roi", "business-value", "metrics"},
}
var defaultTags = []string{"observability", "opentelemetry"}

var generatedEpoch = time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

const generatedWindow = 365 * 24 * time.Hour

const bodyTemplate = `This article provides an in-depth exploration of %s.

## Overview
Understanding the fundamentals and practical applications in modern observability stacks.

## Key Concepts
- Implementation strategies and patterns
- Best practices from industry experience
- Common pitfalls and how to avoid them
- Performance considerations and optimization

## Practical Examples
Real-world scenarios and code examples demonstrating effective implementation approaches.

## Conclusion
Summary of key takeaways and next steps for implementation in your environment.`

func excerptFor(title string) string {
	return fmt.Sprintf("Comprehensive guide to %s covering implementation strategies, best practices, and real-world examples.", strings.ToLower(title))
}

func bodyFor(title string) string {
	return fmt.Sprintf(bodyTemplate, strings.ToLower(title))
}

func tagsFor(index int) []string {
	if index < len(tagSets) && len(tagSets[index]) > 0 {
		return tagSets[index]
	}
	return defaultTags
}

// generate expands the topic list into articles with ids starting at firstID.
func generate(firstID int, src Source) []model.Article {
	articles := make([]model.Article, 0, len(topics))
	for i, title := range topics {
		offset := time.Duration(src.Int64N(generatedWindow.Milliseconds())) * time.Millisecond
		articles = append(articles, model.Article{
			ID:          strconv.Itoa(firstID + i),
			Title:       title,
			Excerpt:     excerptFor(title),
			Body:        bodyFor(title),
			Tags:        tagsFor(i),
			PublishedAt: generatedEpoch.Add(offset),
			Author:      authors[i%len(authors)],
		})
	}
	return articles
}
