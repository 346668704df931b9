package diff

import "unicode"

// maxWordDiffRun caps how many consecutive changed lines still get
// word-level annotation. Past this the pairing stops being meaningful.
const maxWordDiffRun = 5

// Annotate adds word-level diffs to paired delete/add lines in place.
// A run of deletions immediately followed by a run of additions is
// paired line by line when both runs are short enough; lines left over
// from the longer run stay unannotated.
func Annotate(files []File) {
	for fi := range files {
		for hi := range files[fi].Hunks {
			annotateChanges(files[fi].Hunks[hi].Changes)
		}
	}
}

type run struct {
	kind       ChangeKind
	start, end int
}

func partitionRuns(changes []Change) []run {
	var runs []run
	for i, ch := range changes {
		if len(runs) > 0 && runs[len(runs)-1].kind == ch.Kind {
			runs[len(runs)-1].end = i + 1
			continue
		}
		runs = append(runs, run{kind: ch.Kind, start: i, end: i + 1})
	}
	return runs
}

func annotateChanges(changes []Change) {
	runs := partitionRuns(changes)
	for i := 0; i+1 < len(runs); i++ {
		del, add := runs[i], runs[i+1]
		if del.kind != KindDelete || add.kind != KindAdd {
			continue
		}
		if del.end-del.start > maxWordDiffRun || add.end-add.start > maxWordDiffRun {
			continue
		}
		n := del.end - del.start
		if an := add.end - add.start; an < n {
			n = an
		}
		for k := 0; k < n; k++ {
			diffWords(&changes[del.start+k], &changes[add.start+k])
		}
	}
}

func diffWords(del, add *Change) {
	oldTokens := Tokenize(del.Content)
	newTokens := Tokenize(add.Content)
	oldKeep, newKeep := lcs(oldTokens, newTokens)
	del.WordDiff = annotateTokens(oldTokens, oldKeep, TokenDelete)
	add.WordDiff = annotateTokens(newTokens, newKeep, TokenAdd)
}

func annotateTokens(tokens []string, keep []bool, changed TokenKind) []WordToken {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]WordToken, len(tokens))
	for i, tok := range tokens {
		kind := changed
		if keep[i] {
			kind = TokenNormal
		}
		out[i] = WordToken{Kind: kind, Value: tok}
	}
	return out
}

// Tokenize splits a line into maximal runs of word and non-word
// characters. Word characters are Unicode letters, digits and the
// underscore. Joining the tokens back together restores the line.
func Tokenize(line string) []string {
	if line == "" {
		return nil
	}
	var tokens []string
	start := 0
	var cur bool
	for i, r := range line {
		w := isWordRune(r)
		if i == 0 {
			cur = w
			continue
		}
		if w != cur {
			tokens = append(tokens, line[start:i])
			start = i
			cur = w
		}
	}
	return append(tokens, line[start:])
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// lcs marks, for each side, the tokens belonging to one longest common
// subsequence of a and b. Ties during backtracking prefer stepping the
// b index so the choice is deterministic.
func lcs(a, b []string) (aKeep, bKeep []bool) {
	m, n := len(a), len(b)
	aKeep = make([]bool, m)
	bKeep = make([]bool, n)
	if m == 0 || n == 0 {
		return aKeep, bKeep
	}
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			switch {
			case a[i-1] == b[j-1]:
				dp[i][j] = dp[i-1][j-1] + 1
			case dp[i-1][j] > dp[i][j-1]:
				dp[i][j] = dp[i-1][j]
			default:
				dp[i][j] = dp[i][j-1]
			}
		}
	}
	for i, j := m, n; i > 0 && j > 0; {
		switch {
		case a[i-1] == b[j-1]:
			aKeep[i-1] = true
			bKeep[j-1] = true
			i--
			j--
		case dp[i][j-1] >= dp[i-1][j]:
			j--
		default:
			i--
		}
	}
	return aKeep, bKeep
}
