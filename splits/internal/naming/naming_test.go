package naming

import (
	"reflect"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		last bool
		view View
		want Name
	}{
		{
			name: "subsplit drops marker",
			raw:  "-Boss Fight",
			want: Name{Text: "Boss Fight", Subsplit: true},
		},
		{
			name: "marker on last segment is verbatim",
			raw:  "-Boss Fight",
			last: true,
			want: Name{Text: "-Boss Fight"},
		},
		{
			name: "grouped name row view",
			raw:  "{Area 1} Boss Fight",
			want: Name{Text: "Boss Fight", Header: "Area 1", Body: "Boss Fight", Grouped: true},
		},
		{
			name: "grouped name section view",
			raw:  "{Area 1} Boss Fight",
			view: ViewSection,
			want: Name{Text: "Area 1", Header: "Area 1", Body: "Boss Fight", Grouped: true},
		},
		{
			name: "plain name",
			raw:  "Boss Fight",
			view: ViewSection,
			want: Name{Text: "Boss Fight"},
		},
		{
			name: "subsplit takes precedence over braces",
			raw:  "-{Area} Boss",
			want: Name{Text: "{Area} Boss", Subsplit: true},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Resolve(tc.raw, tc.last, tc.view); got != tc.want {
				t.Errorf("Resolve(%q) = %+v, want %+v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestSplitHeader(t *testing.T) {
	tests := []struct {
		raw          string
		header, body string
		ok           bool
	}{
		{"{Area 1} Boss Fight", "Area 1", "Boss Fight", true},
		{"{Area 1}Boss", "Area 1", "Boss", true},
		{"{A} {B} C", "A} {B", "C", true},
		{"{A}   ", "A", " ", true},
		{"{Area 1}\v\tBoss", "Area 1", "Boss", true},
		{"{Area 1}\u00a0\u3000Boss", "Area 1", "Boss", true},
		{"{A}\u3000", "A", "\u3000", true},
		{"{} Boss", "", "", false},
		{"{Area 1}", "", "", false},
		{"Area 1} Boss", "", "", false},
		{"{Area\n1} Boss", "", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			h, b, ok := SplitHeader(tc.raw)
			if ok != tc.ok || h != tc.header || b != tc.body {
				t.Errorf("SplitHeader(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tc.raw, h, b, ok, tc.header, tc.body, tc.ok)
			}
		})
	}
}

func TestAbbreviations(t *testing.T) {
	got := Abbreviations("  Hyrule Castle (Any%): Ganon Fight ")
	if len(got) == 0 || got[0] != "Hyrule Castle (Any%): Ganon Fight" {
		t.Fatalf("first candidate = %v, want full name", got)
	}
	want := map[string]bool{"Hyrule Castle: Ganon Fight": true, "Ganon Fight": true, "Hyrule Castle": true, "HCGF": true}
	for _, c := range got[1:] {
		delete(want, c)
	}
	if len(want) != 0 {
		t.Errorf("missing candidates %v in %v", want, got)
	}
	for i := 2; i < len(got); i++ {
		if len([]rune(got[i])) > len([]rune(got[i-1])) {
			t.Errorf("candidates not ordered longest first: %v", got)
		}
	}
}

func TestAbbreviations_Empty(t *testing.T) {
	if got := Abbreviations("   "); got != nil {
		t.Errorf("Abbreviations(blank) = %v, want nil", got)
	}
	if got := Abbreviations("Boss"); !reflect.DeepEqual(got, []string{"Boss"}) {
		t.Errorf("Abbreviations(Boss) = %v", got)
	}
}
