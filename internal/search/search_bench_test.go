package search

import (
	"fmt"
	"strings"
	"testing"

	"github.com/olive-branch-content-api/internal/models"
	"github.com/rs/zerolog"
)

func benchCollections(n int) Collections {
	c := Collections{
		Articles: make([]models.Article, n),
		Timeline: make([]models.TimelineEvent, n),
		Evidence: make([]models.EvidenceDocument, n),
	}
	body := strings.Repeat("تاريخ الأرض والناس ", 100)
	for i := 0; i < n; i++ {
		c.Articles[i] = models.Article{
			ID:      fmt.Sprintf("article-%06d", i),
			Title:   fmt.Sprintf("Article %d", i),
			Content: body,
			Tags:    []string{"history", "land"},
		}
		c.Timeline[i] = models.TimelineEvent{
			ID:          fmt.Sprintf("event-%06d", i),
			Title:       fmt.Sprintf("Event %d", i),
			Description: "Description of the event",
		}
		c.Evidence[i] = models.EvidenceDocument{
			ID:      fmt.Sprintf("evidence-%06d", i),
			Title:   fmt.Sprintf("Document %d", i),
			Content: body,
		}
	}
	return c
}

// BenchmarkSearch measures a full scan over 1000 records per kind
func BenchmarkSearch(b *testing.B) {
	engine := NewEngine(nil, zerolog.Nop())
	c := benchCollections(1000)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := engine.Search("Event 99", c); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportMetric(float64(3000*b.N)/b.Elapsed().Seconds(), "records/sec")
}

func BenchmarkSearchNoMatch(b *testing.B) {
	engine := NewEngine(nil, zerolog.Nop())
	c := benchCollections(1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Search("zzz-not-present", c); err != nil {
			b.Fatal(err)
		}
	}
}
