package diff

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseSingleFile(t *testing.T) {
	input := `diff --git a/main.go b/main.go
index 1111111..2222222 100644
--- a/main.go
+++ b/main.go
@@ -1,3 +1,3 @@
 line1
-line2
+line2 changed
 line3
`
	files := Parse(input, false)
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	f := files[0]
	if f.OldPath != "main.go" || f.NewPath != "main.go" {
		t.Fatalf("unexpected paths: %q -> %q", f.OldPath, f.NewPath)
	}
	if f.Status != StatusModified {
		t.Fatalf("expected modified status, got %v", f.Status)
	}
	if len(f.Hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(f.Hunks))
	}
	h := f.Hunks[0]
	if h.Header != "@@ -1,3 +1,3 @@" {
		t.Fatalf("unexpected header %q", h.Header)
	}
	if h.OldStart != 1 || h.OldLines != 3 || h.NewStart != 1 || h.NewLines != 3 {
		t.Fatalf("unexpected ranges: -%d,%d +%d,%d", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
	}
	if len(h.Changes) != 4 {
		t.Fatalf("expected 4 changes, got %d", len(h.Changes))
	}
	wantKinds := []ChangeKind{KindNormal, KindDelete, KindAdd, KindNormal}
	wantContent := []string{"line1", "line2", "line2 changed", "line3"}
	for i, ch := range h.Changes {
		if ch.Kind != wantKinds[i] {
			t.Fatalf("change %d: expected kind %v, got %v", i, wantKinds[i], ch.Kind)
		}
		if ch.Content != wantContent[i] {
			t.Fatalf("change %d: expected content %q, got %q", i, wantContent[i], ch.Content)
		}
	}
}

func TestParseLineNumbers(t *testing.T) {
	input := `diff --git a/main.go b/main.go
--- a/main.go
+++ b/main.go
@@ -10,4 +10,5 @@ func main() {
 ctx1
-old1
+new1
+new2
 ctx2
`
	files := Parse(input, false)
	if len(files) != 1 || len(files[0].Hunks) != 1 {
		t.Fatalf("expected 1 file with 1 hunk, got %+v", files)
	}
	chs := files[0].Hunks[0].Changes
	want := []struct {
		kind     ChangeKind
		old, new int
	}{
		{KindNormal, 10, 10},
		{KindDelete, 11, 0},
		{KindAdd, 0, 11},
		{KindAdd, 0, 12},
		{KindNormal, 12, 13},
	}
	if len(chs) != len(want) {
		t.Fatalf("expected %d changes, got %d", len(want), len(chs))
	}
	for i, w := range want {
		if chs[i].Kind != w.kind || chs[i].OldLine != w.old || chs[i].NewLine != w.new {
			t.Fatalf("change %d: expected %v %d/%d, got %v %d/%d",
				i, w.kind, w.old, w.new, chs[i].Kind, chs[i].OldLine, chs[i].NewLine)
		}
	}
}

func TestParseOldSideReconstruction(t *testing.T) {
	// Delete and normal contents, in order, rebuild the old side of the
	// hunk; add and normal contents rebuild the new side.
	input := `diff --git a/a.txt b/a.txt
@@ -1,4 +1,4 @@
 keep1
-old1
-old2
+new1
+new2
 keep2
`
	files := Parse(input, false)
	var oldSide, newSide []string
	for _, ch := range files[0].Hunks[0].Changes {
		switch ch.Kind {
		case KindDelete:
			oldSide = append(oldSide, ch.Content)
		case KindAdd:
			newSide = append(newSide, ch.Content)
		default:
			oldSide = append(oldSide, ch.Content)
			newSide = append(newSide, ch.Content)
		}
	}
	if got := strings.Join(oldSide, "\n"); got != "keep1\nold1\nold2\nkeep2" {
		t.Fatalf("old side reconstructed wrong: %q", got)
	}
	if got := strings.Join(newSide, "\n"); got != "keep1\nnew1\nnew2\nkeep2" {
		t.Fatalf("new side reconstructed wrong: %q", got)
	}
}

func TestParseStatusMarkers(t *testing.T) {
	cases := []struct {
		name string
		meta string
		want Status
	}{
		{"added", "new file mode 100644", StatusAdded},
		{"deleted", "deleted file mode 100644", StatusDeleted},
		{"renamed", "rename from old.txt\nrename to new.txt", StatusRenamed},
		{"copied", "copy from old.txt\ncopy to new.txt", StatusCopied},
		{"modified", "index 1111111..2222222 100644", StatusModified},
	}
	for _, tc := range cases {
		input := "diff --git a/old.txt b/new.txt\n" + tc.meta + "\n"
		files := Parse(input, false)
		if len(files) != 1 {
			t.Fatalf("%s: expected 1 file, got %d", tc.name, len(files))
		}
		if files[0].Status != tc.want {
			t.Fatalf("%s: expected status %v, got %v", tc.name, tc.want, files[0].Status)
		}
	}
}

func TestParseFirstStatusMarkerWins(t *testing.T) {
	input := `diff --git a/a.txt b/a.txt
new file mode 100644
rename from a.txt
`
	files := Parse(input, false)
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if files[0].Status != StatusAdded {
		t.Fatalf("expected added status, got %v", files[0].Status)
	}
}

func TestParseBinaryFile(t *testing.T) {
	input := `diff --git a/img.png b/img.png
new file mode 100644
index 0000000..59a009d
Binary files /dev/null and b/img.png differ
diff --git a/a.txt b/a.txt
@@ -1,1 +1,1 @@
-old
+new
`
	files := Parse(input, false)
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if !files[0].Binary {
		t.Fatalf("expected binary flag on %s", files[0].NewPath)
	}
	if files[0].Status != StatusAdded {
		t.Fatalf("expected added status, got %v", files[0].Status)
	}
	if len(files[0].Hunks) != 0 {
		t.Fatalf("expected no hunks on binary file, got %d", len(files[0].Hunks))
	}
	if files[1].Binary || len(files[1].Hunks) != 1 {
		t.Fatalf("second file parsed wrong: %+v", files[1])
	}
}

func TestParseMalformedHunkHeaderDropsHunk(t *testing.T) {
	input := `diff --git a/a.txt b/a.txt
@@ bogus @@
-dropped
@@ -1,1 +1,1 @@
-old
+new
`
	files := Parse(input, false)
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	hunks := files[0].Hunks
	if len(hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(hunks))
	}
	if hunks[0].Header != "@@ -1,1 +1,1 @@" {
		t.Fatalf("wrong hunk survived: %q", hunks[0].Header)
	}
	if len(hunks[0].Changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(hunks[0].Changes))
	}
}

func TestParseDefaultLineCounts(t *testing.T) {
	input := `diff --git a/a.txt b/a.txt
@@ -3 +7 @@
-old
+new
`
	files := Parse(input, false)
	h := files[0].Hunks[0]
	if h.OldStart != 3 || h.OldLines != 1 || h.NewStart != 7 || h.NewLines != 1 {
		t.Fatalf("unexpected ranges: -%d,%d +%d,%d", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
	}
	if h.Changes[0].OldLine != 3 {
		t.Fatalf("expected delete at old line 3, got %d", h.Changes[0].OldLine)
	}
	if h.Changes[1].NewLine != 7 {
		t.Fatalf("expected add at new line 7, got %d", h.Changes[1].NewLine)
	}
}

func TestParseSectionHeading(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"@@ -1,2 +1,2 @@ func main() {", "func main() {"},
		{"@@ -1,2 +1,2 @@", ""},
		{"@@ -1,2 +1,2 @@  indented", " indented"},
	}
	for _, tc := range cases {
		input := "diff --git a/a.go b/a.go\n" + tc.header + "\n 1\n 2\n"
		files := Parse(input, false)
		if len(files) != 1 || len(files[0].Hunks) != 1 {
			t.Fatalf("%q: parse failed: %+v", tc.header, files)
		}
		h := files[0].Hunks[0]
		if h.Section != tc.want {
			t.Fatalf("%q: expected section %q, got %q", tc.header, tc.want, h.Section)
		}
		if h.Header != tc.header {
			t.Fatalf("%q: header not kept verbatim: %q", tc.header, h.Header)
		}
	}
}

func TestParseNoNewlineMarker(t *testing.T) {
	input := `diff --git a/a.txt b/a.txt
@@ -1,2 +1,2 @@
 keep
-old
\ No newline at end of file
+new
\ No newline at end of file
`
	files := Parse(input, false)
	chs := files[0].Hunks[0].Changes
	if len(chs) != 3 {
		t.Fatalf("expected 3 changes, got %d", len(chs))
	}
	if chs[1].Kind != KindDelete || chs[1].OldLine != 2 {
		t.Fatalf("delete parsed wrong: %+v", chs[1])
	}
	if chs[2].Kind != KindAdd || chs[2].NewLine != 2 {
		t.Fatalf("add parsed wrong: %+v", chs[2])
	}
}

func TestParseEmptyLines(t *testing.T) {
	// An empty line mid-hunk is a context line with empty content.
	input := `diff --git a/a.txt b/a.txt
@@ -1,3 +1,3 @@
 a

 b
`
	files := Parse(input, false)
	chs := files[0].Hunks[0].Changes
	if len(chs) != 3 {
		t.Fatalf("expected 3 changes, got %d", len(chs))
	}
	if chs[1].Kind != KindNormal || chs[1].Content != "" {
		t.Fatalf("empty line parsed wrong: %+v", chs[1])
	}
	if chs[1].OldLine != 2 || chs[1].NewLine != 2 {
		t.Fatalf("empty line numbered wrong: %+v", chs[1])
	}

	// At the very end of the input it only marks the end.
	trailing := "diff --git a/a.txt b/a.txt\n@@ -1,1 +1,1 @@\n a\n"
	files = Parse(trailing, false)
	if n := len(files[0].Hunks[0].Changes); n != 1 {
		t.Fatalf("expected 1 change, got %d", n)
	}
}

func TestParseUnknownLineEndsHunk(t *testing.T) {
	input := `diff --git a/a.txt b/a.txt
@@ -1,1 +1,1 @@
-old
+new
stray text
@@ -5,1 +5,1 @@
-five
+cinq
`
	files := Parse(input, false)
	hunks := files[0].Hunks
	if len(hunks) != 2 {
		t.Fatalf("expected 2 hunks, got %d", len(hunks))
	}
	if len(hunks[0].Changes) != 2 || len(hunks[1].Changes) != 2 {
		t.Fatalf("expected 2 changes per hunk, got %d and %d", len(hunks[0].Changes), len(hunks[1].Changes))
	}
	if hunks[1].Changes[0].OldLine != 5 {
		t.Fatalf("second hunk numbering off: %+v", hunks[1].Changes[0])
	}
}

func TestParseMultipleFiles(t *testing.T) {
	input := `diff --git a/one.txt b/one.txt
@@ -1,1 +1,1 @@
-a
+b
diff --git a/two.txt b/two.txt
deleted file mode 100644
@@ -1,2 +0,0 @@
-x
-y
`
	files := Parse(input, false)
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].NewPath != "one.txt" || files[1].NewPath != "two.txt" {
		t.Fatalf("unexpected paths: %q, %q", files[0].NewPath, files[1].NewPath)
	}
	if files[1].Status != StatusDeleted {
		t.Fatalf("expected deleted status, got %v", files[1].Status)
	}
	if len(files[1].Hunks[0].Changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(files[1].Hunks[0].Changes))
	}
}

func TestParseSkipsProlog(t *testing.T) {
	input := `warning: LF will be replaced by CRLF
some other noise
diff --git a/a.txt b/a.txt
@@ -1,1 +1,1 @@
-x
+y
`
	files := Parse(input, false)
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if len(files[0].Hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(files[0].Hunks))
	}
}

func TestParseGarbage(t *testing.T) {
	files := Parse("hello\nworld\n", false)
	if len(files) != 0 {
		t.Fatalf("expected no files, got %d", len(files))
	}
	files = Parse("", false)
	if len(files) != 0 {
		t.Fatalf("expected no files for empty input, got %d", len(files))
	}
}

func TestParseExpandAll(t *testing.T) {
	input := `diff --git a/a.txt b/a.txt
@@ -1,1 +1,1 @@
-x
+y
`
	files := Parse(input, true)
	if !files[0].Expanded || !files[0].Hunks[0].Expanded {
		t.Fatalf("expected expanded file and hunk")
	}
	files = Parse(input, false)
	if files[0].Expanded || files[0].Hunks[0].Expanded {
		t.Fatalf("expected collapsed file and hunk")
	}
}

func TestFileJSONEncoding(t *testing.T) {
	input := `diff --git a/a.txt b/a.txt
new file mode 100644
@@ -0,0 +1,1 @@
+x
`
	files := Parse(input, false)
	b, err := json.Marshal(files[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(b)
	for _, want := range []string{`"status":"added"`, `"kind":"add"`, `"oldPath":"a.txt"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}
	if strings.Contains(out, "wordDiff") {
		t.Fatalf("expected wordDiff omitted, got %s", out)
	}
}
