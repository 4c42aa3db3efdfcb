// Package admin holds the console-side controllers behind the admin
// screens: dashboard refresh, the test table with filtering and
// selection, bulk activation, the test builder form, and CSV export.
// Each controller talks to the server through a narrow interface that
// *client.Client satisfies.
package admin

import (
	"context"
	"log"
	"sort"

	"github.com/mind-engage/quizhub/internal/alert"
	"github.com/mind-engage/quizhub/internal/client"
	"github.com/mind-engage/quizhub/internal/quiz"
	"github.com/mind-engage/quizhub/internal/store"
)

// StatsAPI is the slice of the client the dashboard needs.
type StatsAPI interface {
	Dashboard(ctx context.Context) (client.DashboardData, error)
	Stats(ctx context.Context) (store.DetailedStats, error)
}

// ChartPoint is one bar or pie slice, in display order.
type ChartPoint struct {
	Label string
	Value int
}

// Dashboard caches the last successful load so a failed refresh keeps
// showing stale numbers instead of blanking the screen.
type Dashboard struct {
	api      StatsAPI
	notifier alert.Notifier

	Stats        store.DashboardStats
	Recent       []quiz.Result
	Distribution []ChartPoint
	Popularity   []ChartPoint
	loadedOnce   bool
}

func NewDashboard(api StatsAPI, n alert.Notifier) *Dashboard {
	if n == nil {
		n = alert.Log()
	}
	return &Dashboard{api: api, notifier: n}
}

// Refresh pulls the counters, recent submissions, and chart data. On
// error the previous data is kept and the error is surfaced once.
func (d *Dashboard) Refresh(ctx context.Context) error {
	data, err := d.api.Dashboard(ctx)
	if err != nil {
		log.Printf("dashboard refresh: %v", err)
		d.notifier.Notify(alert.Danger, "Failed to load dashboard data")
		return err
	}
	detail, err := d.api.Stats(ctx)
	if err != nil {
		log.Printf("dashboard stats: %v", err)
		d.notifier.Notify(alert.Danger, "Failed to load dashboard data")
		return err
	}

	d.Stats = data.Stats
	d.Recent = data.RecentResults
	d.Distribution = distributionPoints(detail.ScoreDistribution)
	d.Popularity = popularityPoints(detail.TestPopularity)
	d.loadedOnce = true
	return nil
}

func (d *Dashboard) Loaded() bool { return d.loadedOnce }

// distributionPoints orders the histogram by bucket, lowest range first,
// so chart colors stay stable across refreshes.
func distributionPoints(dist map[string]int) []ChartPoint {
	points := make([]ChartPoint, 0, len(store.ScoreBuckets))
	for _, bucket := range store.ScoreBuckets {
		points = append(points, ChartPoint{Label: bucket, Value: dist[bucket]})
	}
	return points
}

// popularityPoints sorts tests by submission count, busiest first, with
// title as the tiebreak so the order is deterministic.
func popularityPoints(pop map[string]int) []ChartPoint {
	points := make([]ChartPoint, 0, len(pop))
	for title, n := range pop {
		points = append(points, ChartPoint{Label: title, Value: n})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Value != points[j].Value {
			return points[i].Value > points[j].Value
		}
		return points[i].Label < points[j].Label
	})
	return points
}
