package entity

import (
	"strings"

	"github.com/gosimple/slug"
)

// cyrillic transliterates Russian letters the way the site's existing group
// addresses were generated ("Тестовая группа" -> "testovaya-gruppa").
// Input is lowercased before replacement.
var cyrillic = strings.NewReplacer(
	"а", "a", "б", "b", "в", "v", "г", "g", "д", "d", "е", "e", "ё", "yo",
	"ж", "zh", "з", "z", "и", "i", "й", "j", "к", "k", "л", "l", "м", "m",
	"н", "n", "о", "o", "п", "p", "р", "r", "с", "s", "т", "t", "у", "u",
	"ф", "f", "х", "h", "ц", "ts", "ч", "ch", "ш", "sh", "щ", "sch", "ъ", "",
	"ы", "y", "ь", "", "э", "e", "ю", "yu", "я", "ya",
)

// DeriveSlug turns a title into a URL slug truncated to MaxGroupSlugLength.
// It returns an empty string when nothing sluggable is left.
func DeriveSlug(title string) string {
	s := slug.Make(cyrillic.Replace(strings.ToLower(title)))
	if len(s) > MaxGroupSlugLength {
		s = strings.TrimRight(s[:MaxGroupSlugLength], "-_")
	}
	return s
}
