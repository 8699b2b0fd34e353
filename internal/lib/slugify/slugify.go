// Package slugify содержит текстовые утилиты для публичных страниц:
// генерацию URL-безопасных слагов и построение анонсов.
package slugify

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const DefaultExcerptLength = 150

var (
	tagRe        = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	disallowedRe = regexp.MustCompile(`[^a-z0-9 -]`)
	hyphenRunRe  = regexp.MustCompile(`-{2,}`)

	// NFD-декомпозиция с удалением комбинируемых знаков: "é" -> "e"
	deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Make строит слаг из заголовка: нижний регистр, без диакритики,
// только [a-z0-9-], пробелы и повторы дефисов схлопнуты.
// Make(Make(x)) == Make(x).
func Make(title string) string {
	s := strings.ToLower(title)

	if out, _, err := transform.String(deaccent, s); err == nil {
		s = out
	}

	s = disallowedRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(strings.TrimSpace(s), "-")
	s = hyphenRunRe.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// Excerpt строит анонс: удаляет теги, схлопывает пробелы и обрезает
// до maxLength. Предпочитает границу предложения после 70% длины,
// затем пробел после 80%, иначе режет жёстко. maxLength <= 0 берёт
// DefaultExcerptLength.
func Excerpt(content string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultExcerptLength
	}

	text := tagRe.ReplaceAllString(content, " ")
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))

	r := []rune(text)
	if len(r) <= maxLength {
		return text
	}

	cut := r[:maxLength]

	if idx := lastIndexRune(cut, '.'); idx >= 0 && idx+1 > maxLength*70/100 {
		return string(cut[:idx+1])
	}

	if idx := lastIndexRune(cut, ' '); idx > maxLength*80/100 {
		return string(cut[:idx]) + "..."
	}

	return string(cut) + "..."
}

func lastIndexRune(r []rune, target rune) int {
	for i := len(r) - 1; i >= 0; i-- {
		if r[i] == target {
			return i
		}
	}
	return -1
}
