package phonetics

import (
	"strings"
)

// InferSyllables estimates the number of syllables in word by counting vowel groups. A trailing
// silent "e" and every multi-letter vowel group (treated as a diphthong) each remove one. The
// result is never less than 1.
func InferSyllables(word string) int {
	lower := strings.ToLower(word)
	groups := vowelGroups(lower)
	count := len(groups)
	if strings.HasSuffix(lower, "e") && len(groups) > 1 {
		count--
	}
	for _, group := range groups {
		if len([]rune(group)) > 1 {
			count--
		}
	}
	if count < 1 {
		return 1
	}
	return count
}

// SplitSyllables breaks word into target chunks which concatenate back to word. Chunks are formed
// around vowel groups; if that produces too few chunks the word is split evenly by length instead,
// and if it produces too many the shortest chunks are merged into their neighbours. A word shorter
// than target yields one chunk per rune.
func SplitSyllables(word string, target int) []string {
	runes := []rune(word)
	if target <= 1 || len(runes) <= 1 {
		return []string{word}
	}
	if len(vowelGroups(word)) < target {
		return evenSplit(runes, target)
	}

	chunks := scanChunks(runes)
	if len(chunks) < target {
		return evenSplit(runes, target)
	}
	for len(chunks) > target {
		chunks = mergeShortest(chunks)
	}
	return chunks
}

// scanChunks closes a chunk after each vowel group, pulling one following letter along with it.
// Once a chunk exists, a cluster of two queued consonants is split so the first closes a chunk of
// its own and the rest carry forward.
func scanChunks(runes []rune) []string {
	var (
		chunks []string
		curr   []rune
		queue  []rune
	)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if !isVowel(r) {
			queue = append(queue, r)
			if len(queue) > 1 && len(chunks) > 0 {
				curr = append(curr, queue[0])
				chunks = append(chunks, string(curr))
				curr = nil
				queue = queue[1:]
			}
			continue
		}

		curr = append(curr, queue...)
		curr = append(curr, r)
		queue = nil
		if i+1 < len(runes) && isVowel(runes[i+1]) {
			continue
		}
		if i+1 < len(runes) {
			curr = append(curr, runes[i+1])
			i++
		}
		chunks = append(chunks, string(curr))
		curr = nil
	}
	if len(curr) > 0 || len(queue) > 0 {
		chunks = append(chunks, string(curr)+string(queue))
	}
	return chunks
}

// mergeShortest joins the first shortest chunk onto the chunk after it, or onto the one before
// it when it is last.
func mergeShortest(chunks []string) []string {
	shortest := 0
	for i, c := range chunks {
		if len([]rune(c)) < len([]rune(chunks[shortest])) {
			shortest = i
		}
	}
	if shortest < len(chunks)-1 {
		chunks[shortest] += chunks[shortest+1]
		return append(chunks[:shortest+1], chunks[shortest+2:]...)
	}
	chunks[shortest-1] += chunks[shortest]
	return chunks[:shortest]
}

// evenSplit cuts runes into target pieces whose lengths differ by at most one, longer pieces
// first.
func evenSplit(runes []rune, target int) []string {
	if target > len(runes) {
		target = len(runes)
	}
	size, extra := len(runes)/target, len(runes)%target
	chunks := make([]string, 0, target)
	start := 0
	for i := 0; i < target; i++ {
		end := start + size
		if i < extra {
			end++
		}
		chunks = append(chunks, string(runes[start:end]))
		start = end
	}
	return chunks
}
