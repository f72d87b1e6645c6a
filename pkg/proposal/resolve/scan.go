package resolve

import (
	"strings"
)

// piece is run text taking part in the accumulation buffer. text is the
// run's current text from byte offset off onwards.
type piece struct {
	run  int
	off  int
	text string
}

// replaceAll replaces every occurrence of key across runs with value and
// returns the number of replacements. Inserted values are never rescanned.
func replaceAll(runs []Run, key, value string, policy StylePolicy) int {
	var (
		acc []piece
		buf strings.Builder
		n   int
	)
	reset := func() {
		acc = acc[:0]
		buf.Reset()
	}
	for i, run := range runs {
		text := run.Text()
		if text == "" {
			continue
		}
		acc = append(acc, piece{run: i, text: text})
		buf.WriteString(text)
		for {
			at := strings.Index(buf.String(), key)
			if at < 0 {
				break
			}
			tail := splice(runs, acc, at, key, value, policy)
			n++
			reset()
			if tail.text != "" {
				acc = append(acc, tail)
				buf.WriteString(tail.text)
			}
		}
		if !holdsPartial(buf.String(), key) {
			reset()
		}
	}
	return n
}

// splice rewrites the runs covered by the key found at byte offset at of the
// accumulated pieces. Text outside the token is kept in every run; the value
// goes to the run picked by policy. It returns the rest of the last run
// after the token, which may hold a further occurrence.
func splice(runs []Run, acc []piece, at int, key, value string, policy StylePolicy) piece {
	type span struct {
		p        piece
		from, to int // token bytes within p.text
	}
	end := at + len(key)
	var spans []span
	pos := 0
	for _, p := range acc {
		start, stop := pos, pos+len(p.text)
		pos = stop
		if stop <= at || start >= end {
			continue
		}
		spans = append(spans, span{p: p, from: max(at, start) - start, to: min(end, stop) - start})
	}

	frags := make([]Fragment, len(spans))
	for i, s := range spans {
		frags[i] = Fragment{Run: s.p.run, Length: s.to - s.from}
	}
	chosen := policy.Choose(frags)

	var tail piece
	for i, s := range spans {
		cur := runs[s.p.run].Text()
		head := cur[:s.p.off+s.from]
		rest := s.p.text[s.to:]
		insert := ""
		if i == chosen {
			insert = value
		}
		runs[s.p.run].SetText(head + insert + rest)
		tail = piece{run: s.p.run, off: len(head) + len(insert), text: rest}
	}
	return tail
}

// holdsPartial reports whether buf may still grow into key: it has an
// unclosed opening brace, contains the token's inner text, or ends with a
// proper prefix of key.
func holdsPartial(buf, key string) bool {
	if buf == "" {
		return false
	}
	if strings.LastIndex(buf, "{") > strings.LastIndex(buf, "}") {
		return true
	}
	if strings.Contains(buf, key[1:len(key)-1]) {
		return true
	}
	for n := min(len(key)-1, len(buf)); n > 0; n-- {
		if strings.HasSuffix(buf, key[:n]) {
			return true
		}
	}
	return false
}
