// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sentence turns extracted PDF text into request-sized batches of
// whole sentences.
//
// Text is first normalized so that soft line wraps become spaces and hard
// breaks become paragraph breaks, then split after sentence-ending
// punctuation, then packed greedily into batches that stay below a length
// threshold. Lengths are counted in characters (runes), not bytes.
package sentence

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalize rewrites line breaks. A newline directly followed by a word
// character (letter, number or underscore) is a wrapped line and becomes a
// single space. Every other newline is doubled so it reads as a paragraph
// break.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text) + len(text)/16)

	for i, r := range text {
		if r != '\n' {
			b.WriteRune(r)
			continue
		}
		next, _ := utf8.DecodeRuneInString(text[i+1:])
		if isWordRune(next) {
			b.WriteByte(' ')
		} else {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

func isWordRune(r rune) bool {
	if r == utf8.RuneError {
		return false
	}
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Split cuts text at every space that directly follows '.', '!' or '?'.
// The space itself is dropped; all other characters are kept, so joining the
// result with single spaces restores the input.
func Split(text string) []string {
	var sentences []string
	start := 0
	for i := 1; i < len(text); i++ {
		if text[i] != ' ' {
			continue
		}
		switch text[i-1] {
		case '.', '!', '?':
			sentences = append(sentences, text[start:i])
			start = i + 1
		}
	}
	return append(sentences, text[start:])
}

// Batches normalizes and splits text, then packs the sentences greedily in
// order. Each sentence except the last one overall is followed by a space.
// A sentence joins the current batch only while the batch length plus the
// sentence length stays below limit; otherwise the batch is emitted and the
// sentence starts the next one. A sentence longer than limit is emitted on
// its own.
//
// The concatenation of all batches equals Normalize(text). Text that is
// empty or only whitespace yields no batches. The sequence is recomputed
// from scratch on every iteration.
func Batches(text string, limit int) iter.Seq[string] {
	return func(yield func(string) bool) {
		normalized := Normalize(text)
		if strings.TrimSpace(normalized) == "" {
			return
		}

		sentences := Split(normalized)
		last := len(sentences) - 1

		var batch strings.Builder
		length := 0
		for i, s := range sentences {
			n := utf8.RuneCountInString(s)
			if batch.Len() > 0 && length+n >= limit {
				if !yield(batch.String()) {
					return
				}
				batch.Reset()
				length = 0
			}

			batch.WriteString(s)
			length += n
			if i != last {
				batch.WriteByte(' ')
				length++
			}
		}

		if batch.Len() > 0 {
			yield(batch.String())
		}
	}
}
