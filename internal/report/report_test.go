package report

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/pgconf-watch/internal/conference"
)

var detectedAt = time.Date(2026, 10, 18, 6, 30, 0, 0, time.UTC)

func rec(name string, details ...string) *conference.Record {
	r := conference.NewRecord(name)
	r.Details = append(r.Details, details...)
	return r
}

func TestTitle(t *testing.T) {
	if got := Title(detectedAt); got != "PostgreSQL Conference Changes - 2026-10-18" {
		t.Errorf("Title() = %q", got)
	}
}

func TestBuild(t *testing.T) {
	added := rec("PGConf India 2026", "March 2026", "Bengaluru", "Hotel Lalit", "Registration open", "Sponsors wanted", "Sixth line", "Seventh line")
	removed := rec("PGDay Paris 2025")
	oldUS := rec("PGConf US 2025", "October 2025")
	newUS := rec("PGConf US 2025", "November 2025")

	diff := &conference.DiffResult{
		Added:   []*conference.Record{added},
		Removed: []*conference.Record{removed},
		Modified: []*conference.Modification{
			{
				ID:      newUS.ID,
				Old:     oldUS,
				New:     newUS,
				Changes: conference.DetectChanges(oldUS, newUS),
			},
		},
	}

	r := Build(diff, conference.Snapshot{added, newUS}, detectedAt, Options{})

	if r.Title != "PostgreSQL Conference Changes - 2026-10-18" {
		t.Errorf("Title = %q", r.Title)
	}

	contains := []string{
		"# PostgreSQL Conference Changes Detected",
		"**Detection Date:** 2026-10-18 06:30:00 UTC",
		"## 🆕 New Conferences Added",
		"### PGConf India 2026\n- March 2026\n",
		"- Sponsors wanted\n\n",
		"## ❌ Conferences Removed",
		"- **PGDay Paris 2025**",
		"## 📝 Conference Updates",
		"### PGConf US 2025\n**Changes detected in conference details** (details)",
		"## 📋 All Current Conferences",
		"*Total conferences tracked: 2*",
		"### 🎯 Active Conferences",
		"[source page](" + DefaultSourceURL + ")",
	}
	for _, want := range contains {
		if !strings.Contains(r.Body, want) {
			t.Errorf("Build() body missing %q:\n%s", want, r.Body)
		}
	}

	for _, unwanted := range []string{"Sixth line", "Seventh line", "Call for Papers Open", "Other Listings"} {
		if strings.Contains(r.Body, unwanted) {
			t.Errorf("Build() body should not contain %q", unwanted)
		}
	}
}

func TestBuildOmitsEmptySections(t *testing.T) {
	r := Build(&conference.DiffResult{}, conference.Snapshot{}, detectedAt, Options{SourceURL: "https://example.com/conf"})

	for _, section := range []string{"New Conferences Added", "Conferences Removed", "Conference Updates", "Active Conferences"} {
		if strings.Contains(r.Body, section) {
			t.Errorf("empty diff should not render %q", section)
		}
	}
	if !strings.Contains(r.Body, "*Total conferences tracked: 0*") {
		t.Error("current snapshot section should always be rendered")
	}
	if !strings.Contains(r.Body, "(https://example.com/conf)") {
		t.Error("footer should link the configured source page")
	}
}

func TestBuildDeterministic(t *testing.T) {
	current := conference.Snapshot{rec("PGDay Nordic", "Call for Papers"), rec("PGConf EU 2025")}
	diff := conference.Diff(nil, current)

	first := Build(diff, current, detectedAt, Options{})
	second := Build(diff, current, detectedAt, Options{})

	if first.Body != second.Body || first.Title != second.Title {
		t.Error("Build() should be deterministic for identical input")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		record *conference.Record
		want   Bucket
	}{
		{"call for papers in details", rec("PGConf EU 2025", "Call for Papers open until May"), BucketCallForPapers},
		{"call for papers in name", rec("PGDay Call for Papers"), BucketCallForPapers},
		{"call for papers beats schedule", rec("PGConf schedule published", "call for papers"), BucketCallForPapers},
		{"schedule published", rec("PGConf.dev schedule published"), BucketSchedulePublished},
		{"schedule online", rec("PGDay Lowlands schedule online"), BucketSchedulePublished},
		{"schedule without publication is active", rec("PGDay schedule draft"), BucketActive},
		{"plain trigger name", rec("PostgreSQL Conference Europe"), BucketActive},
		{"nordic", rec("Nordic PGDay 2026"), BucketActive},
		{"no trigger term", rec("Community meetup"), BucketOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.record); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGroupSingleBucketPerRecord(t *testing.T) {
	current := conference.Snapshot{
		rec("PGConf EU 2025", "call for papers"),
		rec("PGDay schedule published"),
		rec("PGConf US 2025"),
		rec("Meetup"),
		nil,
	}

	groups := Group(current)

	total := 0
	for _, records := range groups {
		total += len(records)
	}
	if total != 4 {
		t.Errorf("expected every record in exactly one bucket, got %d placements", total)
	}
	for _, b := range []Bucket{BucketCallForPapers, BucketSchedulePublished, BucketActive, BucketOther} {
		if len(groups[b]) != 1 {
			t.Errorf("bucket %s has %d records, want 1", b, len(groups[b]))
		}
	}
}

func TestBucketTruncation(t *testing.T) {
	current := make(conference.Snapshot, 0, 20)
	for i := 0; i < 18; i++ {
		current = append(current, rec(fmt.Sprintf("PGDay City %02d", i)))
	}
	for i := 0; i < 12; i++ {
		current = append(current, rec(fmt.Sprintf("PGConf CFP %02d", i), "Call for papers"))
	}

	r := Build(&conference.DiffResult{}, current, detectedAt, Options{})

	if !strings.Contains(r.Body, "- **PGDay City 14**") {
		t.Error("active bucket should show 15 entries")
	}
	if strings.Contains(r.Body, "- **PGDay City 15**") {
		t.Error("active bucket should be capped at 15 entries")
	}
	if !strings.Contains(r.Body, "- *... and 3 more*") {
		t.Error("active bucket should report 3 more")
	}
	if strings.Contains(r.Body, "- **PGConf CFP 10**") {
		t.Error("call for papers bucket should be capped at 10 entries")
	}
	if !strings.Contains(r.Body, "- *... and 2 more*") {
		t.Error("call for papers bucket should report 2 more")
	}
}

func TestSummarize(t *testing.T) {
	x := rec("PGDay Paris")
	tests := []struct {
		name string
		diff *conference.DiffResult
		want string
	}{
		{"nil diff", nil, "no changes"},
		{"empty diff", &conference.DiffResult{}, "no changes"},
		{"added only", &conference.DiffResult{Added: []*conference.Record{x, x}}, "2 added"},
		{
			name: "everything",
			diff: &conference.DiffResult{
				Added:    []*conference.Record{x},
				Removed:  []*conference.Record{x},
				Modified: []*conference.Modification{{ID: x.ID, Old: x, New: x}},
			},
			want: "1 added, 1 removed, 1 updated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.diff); got != tt.want {
				t.Errorf("Summarize() = %q, want %q", got, tt.want)
			}
		})
	}
}
