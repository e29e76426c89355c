package report

import (
	"strings"

	"github.com/pfrederiksen/pgconf-watch/internal/conference"
)

// Bucket is one of the mutually exclusive groups of the current snapshot
type Bucket string

const (
	BucketCallForPapers     Bucket = "call-for-papers"
	BucketSchedulePublished Bucket = "schedule-published"
	BucketActive            Bucket = "active"
	BucketOther             Bucket = "other"
)

// Rule assigns a record to Bucket when Match returns true
type Rule struct {
	Bucket Bucket
	Title  string
	Limit  int
	Match  func(rec *conference.Record) bool
}

// Rules are evaluated top-down; the last one matches everything.
var Rules = []Rule{
	{
		Bucket: BucketCallForPapers,
		Title:  "📢 Call for Papers Open",
		Limit:  10,
		Match: func(rec *conference.Record) bool {
			return conference.ContainsAny(rec.Name, []string{"call for papers"}) ||
				conference.ContainsAny(rec.DetailText(), []string{"call for papers"})
		},
	},
	{
		Bucket: BucketSchedulePublished,
		Title:  "📅 Schedule Published",
		Limit:  10,
		Match: func(rec *conference.Record) bool {
			name := strings.ToLower(rec.Name)
			return strings.Contains(name, "schedule") &&
				(strings.Contains(name, "published") || strings.Contains(name, "online"))
		},
	},
	{
		Bucket: BucketActive,
		Title:  "🎯 Active Conferences",
		Limit:  15,
		Match: func(rec *conference.Record) bool {
			return conference.ContainsAny(rec.Name, conference.TriggerTerms)
		},
	},
	{
		Bucket: BucketOther,
		Title:  "🗂️ Other Listings",
		Limit:  10,
		Match: func(rec *conference.Record) bool {
			return true
		},
	},
}

// Classify returns the bucket of the first rule matching rec
func Classify(rec *conference.Record) Bucket {
	for _, rule := range Rules {
		if rule.Match(rec) {
			return rule.Bucket
		}
	}
	return BucketOther
}

// Group buckets every record, preserving snapshot order within each bucket
func Group(records conference.Snapshot) map[Bucket][]*conference.Record {
	groups := make(map[Bucket][]*conference.Record)
	for _, rec := range records {
		if rec == nil {
			continue
		}
		b := Classify(rec)
		groups[b] = append(groups[b], rec)
	}
	return groups
}
