package palette

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func noop() error { return nil }

func labels(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Item.Label
	}
	return out
}

func salesItems() []Item {
	return []Item{
		{Label: "Today", Category: "tab", Action: noop, Keywords: []string{"queue", "cards"}},
		{Label: "Pipeline", Category: "tab", Action: noop, Keywords: []string{"prospects"}},
		{Label: "Send Email", Category: "action", Action: noop, Keywords: []string{"compose", "message"}},
		{Label: "Schedule Demo", Category: "action", Action: noop, Keywords: []string{"meeting"}},
		{Label: "Settings", Category: "setting", Action: noop},
	}
}

func TestSearchMatching(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"prefix", "pipe", []string{"Pipeline"}},
		{"case insensitive", "TODAY", []string{"Today"}},
		{"substring", "mail", []string{"Send Email"}},
		{"keyword", "compose", []string{"Send Email"}},
		{"fuzzy subsequence", "sddmo", []string{"Schedule Demo"}},
		{"no match", "zzzz", []string{}},
		{"whitespace trimmed", "  pipe ", []string{"Pipeline"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(nil)
			p.RegisterMany(salesItems())
			got := labels(p.Search(tt.query, 0))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Search(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestSearchTierOrder(t *testing.T) {
	p := New(nil)
	// Registered in reverse of the expected ranking.
	p.RegisterMany([]Item{
		{Label: "Dxexmxo", Action: noop},
		{Label: "Calendar", Action: noop, Keywords: []string{"demo"}},
		{Label: "Schedule Demo", Action: noop},
		{Label: "Demo Prep", Action: noop},
	})

	got := labels(p.Search("demo", 10))
	want := []string{"Demo Prep", "Schedule Demo", "Calendar", "Dxexmxo"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tier order mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchRegistrationOrderBreaksTies(t *testing.T) {
	p := New(nil)
	p.RegisterMany([]Item{
		{Label: "Send Invoice", Action: noop},
		{Label: "Send Email", Action: noop},
		{Label: "Send Contract", Action: noop},
	})

	got := labels(p.Search("send", 0))
	want := []string{"Send Invoice", "Send Email", "Send Contract"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tie order mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchRecencyBoost(t *testing.T) {
	p := New(nil)
	p.RegisterMany([]Item{
		{Label: "Send Email", Action: noop},
		{Label: "Send Invoice", Action: noop},
	})

	if err := p.Execute(p.Search("send invoice", 1)[0]); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := labels(p.Search("send", 0)); got[0] != "Send Invoice" {
		t.Errorf("after executing invoice, first = %q, want Send Invoice", got[0])
	}

	if err := p.Execute(p.Search("send email", 1)[0]); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := labels(p.Search("send", 0)); got[0] != "Send Email" {
		t.Errorf("after executing email, first = %q, want Send Email", got[0])
	}
}

func TestSearchRecencyDoesNotCrossTiers(t *testing.T) {
	p := New(nil)
	p.RegisterMany([]Item{
		{Label: "Demo Prep", Action: noop},
		{Label: "Schedule Demo", Action: noop},
	})
	if err := p.Execute(p.Search("schedule", 1)[0]); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	got := labels(p.Search("demo", 0))
	want := []string{"Demo Prep", "Schedule Demo"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("prefix match should outrank recent substring match (-want +got):\n%s", diff)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	p := New(nil)
	p.RegisterMany(salesItems())

	t.Run("registration order without history", func(t *testing.T) {
		got := labels(p.Search("", 0))
		want := []string{"Today", "Pipeline", "Send Email", "Schedule Demo", "Settings"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("recent items first", func(t *testing.T) {
		if err := p.Execute(p.Search("settings", 1)[0]); err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if err := p.Execute(p.Search("pipeline", 1)[0]); err != nil {
			t.Fatalf("Execute: %v", err)
		}
		got := labels(p.Search("", 0))
		want := []string{"Pipeline", "Settings", "Today", "Send Email", "Schedule Demo"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestSearchLimit(t *testing.T) {
	p := New(nil)
	for i := range 30 {
		p.Register(Item{Label: fmt.Sprintf("Prospect %02d", i), Category: "prospect", Action: noop})
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"explicit", 3, 3},
		{"zero uses default", 0, DefaultLimit},
		{"negative uses default", -1, DefaultLimit},
		{"larger than matches", 100, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(p.Search("prospect", tt.limit)); got != tt.want {
				t.Errorf("len(Search(limit=%d)) = %d, want %d", tt.limit, got, tt.want)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	t.Run("runs action and records recency", func(t *testing.T) {
		called := 0
		p := New(nil)
		p.Register(Item{Label: "Undo", Action: func() error { called++; return nil }})

		if err := p.Execute(p.Search("undo", 1)[0]); err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if called != 1 {
			t.Errorf("action called %d times, want 1", called)
		}
		if diff := cmp.Diff([]string{"Undo"}, p.Recent()); diff != "" {
			t.Errorf("Recent mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("action error propagates without recency", func(t *testing.T) {
		boom := errors.New("boom")
		p := New(nil)
		p.Register(Item{Label: "Broken", Action: func() error { return boom }})

		err := p.Execute(p.Search("broken", 1)[0])
		if !errors.Is(err, boom) {
			t.Fatalf("Execute error = %v, want wrapping boom", err)
		}
		if got := p.Recent(); len(got) != 0 {
			t.Errorf("Recent = %v, want empty after failed action", got)
		}
	})

	t.Run("nil action", func(t *testing.T) {
		p := New(nil)
		p.Register(Item{Label: "Placeholder"})

		err := p.Execute(p.Search("placeholder", 1)[0])
		if !errors.Is(err, ErrNotInvocable) {
			t.Fatalf("Execute error = %v, want ErrNotInvocable", err)
		}
		if got := p.Recent(); len(got) != 0 {
			t.Errorf("Recent = %v, want empty", got)
		}
	})
}

func TestRecentBoundedAndDeduplicated(t *testing.T) {
	p := New(nil)
	for i := range MaxRecent + 2 {
		p.Register(Item{Label: fmt.Sprintf("Cmd %02d", i), Action: noop})
	}
	for i := range MaxRecent + 2 {
		if err := p.Execute(p.Search(fmt.Sprintf("cmd %02d", i), 1)[0]); err != nil {
			t.Fatalf("Execute: %v", err)
		}
	}

	recent := p.Recent()
	if len(recent) != MaxRecent {
		t.Fatalf("len(Recent) = %d, want %d", len(recent), MaxRecent)
	}
	if recent[0] != "Cmd 11" {
		t.Errorf("Recent[0] = %q, want Cmd 11", recent[0])
	}
	if recent[MaxRecent-1] != "Cmd 02" {
		t.Errorf("Recent[last] = %q, want Cmd 02", recent[MaxRecent-1])
	}

	// Re-executing moves the label to the front without duplicating it.
	if err := p.Execute(p.Search("cmd 05", 1)[0]); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	recent = p.Recent()
	if recent[0] != "Cmd 05" {
		t.Errorf("Recent[0] = %q, want Cmd 05", recent[0])
	}
	seen := map[string]bool{}
	for _, l := range recent {
		if seen[l] {
			t.Errorf("Recent contains duplicate %q: %v", l, recent)
		}
		seen[l] = true
	}
}

func TestRecentReturnsCopy(t *testing.T) {
	p := New(nil)
	p.Register(Item{Label: "Today", Action: noop})
	if err := p.Execute(p.Search("today", 1)[0]); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	got := p.Recent()
	got[0] = "mutated"
	if p.Recent()[0] != "Today" {
		t.Error("mutating Recent() result changed palette history")
	}
}

func TestClearKeepsHistory(t *testing.T) {
	p := New(nil)
	p.RegisterMany(salesItems())
	if err := p.Execute(p.Search("settings", 1)[0]); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	p.Clear()
	if p.ItemCount() != 0 {
		t.Errorf("ItemCount after Clear = %d, want 0", p.ItemCount())
	}
	if got := p.Search("", 0); len(got) != 0 {
		t.Errorf("Search after Clear = %v, want empty", labels(got))
	}

	p.RegisterMany(salesItems())
	if first := labels(p.Search("", 0))[0]; first != "Settings" {
		t.Errorf("first result after re-register = %q, want Settings", first)
	}
}

func TestIsSubsequence(t *testing.T) {
	tests := []struct {
		needle, haystack string
		want             bool
	}{
		{"", "anything", true},
		{"sd", "schedule demo", true},
		{"ds", "schedule demo", false},
		{"zz", "schedule demo", false},
		{"ee", "e", false},
		{"cafe", "café bistro", false},
		{"café", "le café", true},
	}
	for _, tt := range tests {
		if got := isSubsequence(tt.needle, tt.haystack); got != tt.want {
			t.Errorf("isSubsequence(%q, %q) = %v, want %v", tt.needle, tt.haystack, got, tt.want)
		}
	}
}
