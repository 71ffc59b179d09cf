package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestExtractWords_ListsTablesAnchorsAndPre(t *testing.T) {
	const page = `
	<html><body>
		<ul><li>Crate</li><li>slate</li><li>not a word</li></ul>
		<table><tr><td>TRACE</td><td>42nd</td></tr></table>
		<a href="/w/arose">arose</a>
		<pre>brine
		crate  spare</pre>
	</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	got := ExtractWords(doc)
	want := []string{"crate", "slate", "trace", "arose", "brine", "spare"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d]=%q want %q (all: %v)", i, got[i], want[i], got)
		}
	}
}

func TestLoadPlainFile_FiltersAndDedupes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enable1.txt")
	content := "crate\nCRATE\ncr8te\n\n slate \n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := LoadPlainFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"crate", "slate"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestGroupByLength_BucketsWithinRange(t *testing.T) {
	groups := GroupByLength([]string{"cat", "crate", "strain", "be", "stainers"}, 3, 7)

	if len(groups[3]) != 1 || groups[3][0] != "cat" {
		t.Fatalf("groups[3] = %v", groups[3])
	}
	if len(groups[5]) != 1 || groups[5][0] != "crate" {
		t.Fatalf("groups[5] = %v", groups[5])
	}
	if len(groups[6]) != 1 || groups[6][0] != "strain" {
		t.Fatalf("groups[6] = %v", groups[6])
	}
	if _, ok := groups[2]; ok {
		t.Fatalf("length 2 should be excluded")
	}
	if _, ok := groups[8]; ok {
		t.Fatalf("length 8 should be excluded")
	}
}
