// Package stats computes collection-wide statistics over the note store.
package stats

import (
	"context"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/aguiarsc/numen/internal/notes"
	"github.com/aguiarsc/numen/internal/parser"
	"github.com/aguiarsc/numen/internal/storage"
)

// readConcurrency bounds how many notes are parsed at once.
const readConcurrency = 8

// TagCount is one tag and how many notes carry it.
type TagCount struct {
	Tag   string
	Count int
}

// MonthCount is one calendar month and how many notes are dated in it.
type MonthCount struct {
	Month string // YYYY-MM
	Count int
}

// Report aggregates the whole collection.
type Report struct {
	Notes      int
	Words      int
	AvgWords   int
	Tags       []TagCount   // sorted by count desc, then tag asc
	Months     []MonthCount // sorted chronologically
	Newest     *notes.Note
	Oldest     *notes.Note
	LongestID  string
	LongestLen int // words in the longest note
}

// Collect reads and parses every note concurrently and folds the results
// into a report.
func Collect(ctx context.Context, store storage.Provider) (*Report, error) {
	entries, err := store.List()
	if err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		parsed []*notes.Note
		words  = map[string]int{}
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(readConcurrency)
	for _, e := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := store.Read(e.Name)
			if err != nil {
				return err
			}
			res, err := parser.Parse(data)
			if err != nil {
				// Unparseable files are not notes; skip them.
				return nil
			}
			stem := strings.TrimSuffix(e.Name, ".md")
			n := &notes.Note{ID: stem, Title: res.Title, Date: res.Date, Tags: res.Tags, Body: res.Body}
			if n.Title == "" {
				n.Title = stem
			}
			wc := len(strings.Fields(res.Body))

			mu.Lock()
			parsed = append(parsed, n)
			words[stem] = wc
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return fold(parsed, words), nil
}

func fold(parsed []*notes.Note, words map[string]int) *Report {
	r := &Report{Notes: len(parsed)}
	tagCounts := map[string]int{}
	monthCounts := map[string]int{}

	for _, n := range parsed {
		wc := words[n.ID]
		r.Words += wc
		if wc > r.LongestLen {
			r.LongestLen = wc
			r.LongestID = n.ID
		}
		for _, t := range n.Tags {
			tagCounts[t]++
		}
		if !n.Date.IsZero() {
			monthCounts[n.Date.Format("2006-01")]++
			if r.Newest == nil || n.Date.After(r.Newest.Date) {
				r.Newest = n
			}
			if r.Oldest == nil || n.Date.Before(r.Oldest.Date) {
				r.Oldest = n
			}
		}
	}
	if r.Notes > 0 {
		r.AvgWords = r.Words / r.Notes
	}

	for t, c := range tagCounts {
		r.Tags = append(r.Tags, TagCount{Tag: t, Count: c})
	}
	sort.Slice(r.Tags, func(i, j int) bool {
		if r.Tags[i].Count != r.Tags[j].Count {
			return r.Tags[i].Count > r.Tags[j].Count
		}
		return r.Tags[i].Tag < r.Tags[j].Tag
	})

	for m, c := range monthCounts {
		r.Months = append(r.Months, MonthCount{Month: m, Count: c})
	}
	sort.Slice(r.Months, func(i, j int) bool { return r.Months[i].Month < r.Months[j].Month })

	return r
}
