package diff

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"foo", []string{"foo"}},
		{"foo bar", []string{"foo", " ", "bar"}},
		{"x := 1", []string{"x", " := ", "1"}},
		{"a_b2+c", []string{"a_b2", "+", "c"}},
		{"  lead", []string{"  ", "lead"}},
		{"héllo, wörld", []string{"héllo", ", ", "wörld"}},
	}
	for _, tc := range cases {
		got := Tokenize(tc.in)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("Tokenize(%q): expected %q, got %q", tc.in, tc.want, got)
		}
		if joined := strings.Join(got, ""); joined != tc.in {
			t.Fatalf("Tokenize(%q) lost content: %q", tc.in, joined)
		}
	}
}

func annotated(t *testing.T, input string) []File {
	t.Helper()
	files := Parse(input, false)
	Annotate(files)
	return files
}

func TestAnnotatePairedLine(t *testing.T) {
	input := `diff --git a/a.go b/a.go
@@ -1,3 +1,3 @@
 before
-const x = 1
+const x = 2
 after
`
	files := annotated(t, input)
	chs := files[0].Hunks[0].Changes
	if chs[0].WordDiff != nil || chs[3].WordDiff != nil {
		t.Fatalf("context lines should not be annotated")
	}
	del, add := chs[1], chs[2]
	wantDel := []WordToken{
		{TokenNormal, "const"},
		{TokenNormal, " "},
		{TokenNormal, "x"},
		{TokenNormal, " = "},
		{TokenDelete, "1"},
	}
	wantAdd := []WordToken{
		{TokenNormal, "const"},
		{TokenNormal, " "},
		{TokenNormal, "x"},
		{TokenNormal, " = "},
		{TokenAdd, "2"},
	}
	if !reflect.DeepEqual(del.WordDiff, wantDel) {
		t.Fatalf("delete side: expected %v, got %v", wantDel, del.WordDiff)
	}
	if !reflect.DeepEqual(add.WordDiff, wantAdd) {
		t.Fatalf("add side: expected %v, got %v", wantAdd, add.WordDiff)
	}
}

func TestAnnotateRunTooLong(t *testing.T) {
	var b strings.Builder
	b.WriteString("diff --git a/a.txt b/a.txt\n@@ -1,6 +1,1 @@\n")
	for i := 0; i < 6; i++ {
		b.WriteString("-gone\n")
	}
	b.WriteString("+kept\n")
	files := annotated(t, b.String())
	for i, ch := range files[0].Hunks[0].Changes {
		if ch.WordDiff != nil {
			t.Fatalf("change %d: expected no annotation on long run, got %v", i, ch.WordDiff)
		}
	}
}

func TestAnnotateUnequalRuns(t *testing.T) {
	input := `diff --git a/a.txt b/a.txt
@@ -1,2 +1,1 @@
-first line
-second line
+first line!
`
	files := annotated(t, input)
	chs := files[0].Hunks[0].Changes
	if chs[0].WordDiff == nil {
		t.Fatalf("expected first delete annotated")
	}
	if chs[1].WordDiff != nil {
		t.Fatalf("expected unpaired delete unannotated, got %v", chs[1].WordDiff)
	}
	if chs[2].WordDiff == nil {
		t.Fatalf("expected add annotated")
	}
	last := chs[2].WordDiff[len(chs[2].WordDiff)-1]
	if last.Kind != TokenAdd || last.Value != "!" {
		t.Fatalf("expected trailing add token, got %+v", last)
	}
}

func TestAnnotateRequiresBothRuns(t *testing.T) {
	input := `diff --git a/a.txt b/a.txt
@@ -1,3 +1,2 @@
-only deleted
 middle
+only added
`
	files := annotated(t, input)
	for i, ch := range files[0].Hunks[0].Changes {
		if ch.WordDiff != nil {
			t.Fatalf("change %d: expected no annotation, got %v", i, ch.WordDiff)
		}
	}
}

func TestAnnotateTieBreakDeterministic(t *testing.T) {
	input := `diff --git a/a.txt b/a.txt
@@ -1,1 +1,1 @@
-b a
+a b
`
	files := annotated(t, input)
	chs := files[0].Hunks[0].Changes
	wantDel := []WordToken{
		{TokenDelete, "b"},
		{TokenDelete, " "},
		{TokenNormal, "a"},
	}
	wantAdd := []WordToken{
		{TokenNormal, "a"},
		{TokenAdd, " "},
		{TokenAdd, "b"},
	}
	if !reflect.DeepEqual(chs[0].WordDiff, wantDel) {
		t.Fatalf("delete side: expected %v, got %v", wantDel, chs[0].WordDiff)
	}
	if !reflect.DeepEqual(chs[1].WordDiff, wantAdd) {
		t.Fatalf("add side: expected %v, got %v", wantAdd, chs[1].WordDiff)
	}
}

func TestAnnotateMultipleBlocks(t *testing.T) {
	input := `diff --git a/a.txt b/a.txt
@@ -1,5 +1,5 @@
-one a
+one b
 keep
-two a
+two b
 keep
`
	files := annotated(t, input)
	chs := files[0].Hunks[0].Changes
	for _, i := range []int{0, 1, 3, 4} {
		if chs[i].WordDiff == nil {
			t.Fatalf("change %d: expected annotation", i)
		}
	}
	for _, i := range []int{2, 5} {
		if chs[i].WordDiff != nil {
			t.Fatalf("change %d: expected no annotation", i)
		}
	}
}

func TestAnnotateEmptySide(t *testing.T) {
	input := `diff --git a/a.txt b/a.txt
@@ -1,1 +1,1 @@
-
+text
`
	files := annotated(t, input)
	chs := files[0].Hunks[0].Changes
	if chs[0].WordDiff != nil {
		t.Fatalf("expected empty delete without tokens, got %v", chs[0].WordDiff)
	}
	want := []WordToken{{TokenAdd, "text"}}
	if !reflect.DeepEqual(chs[1].WordDiff, want) {
		t.Fatalf("expected %v, got %v", want, chs[1].WordDiff)
	}
}
