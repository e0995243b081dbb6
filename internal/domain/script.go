package domain

// ContainsCyrillic reports whether text has at least one Russian letter
// (а-я, А-Я, ё, Ё). It decides which dictionary table a query goes to.
func ContainsCyrillic(text string) bool {
	for _, r := range text {
		if isRussianLetter(r) {
			return true
		}
	}
	return false
}

// TableFor returns the table a headword belongs to, judged by its script.
func TableFor(word string) Table {
	if ContainsCyrillic(word) {
		return TableRuEn
	}
	return TableEnRu
}

func isRussianLetter(r rune) bool {
	switch {
	case r >= 'а' && r <= 'я':
		return true
	case r >= 'А' && r <= 'Я':
		return true
	case r == 'ё' || r == 'Ё':
		return true
	}
	return false
}
