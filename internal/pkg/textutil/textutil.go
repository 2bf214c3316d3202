// Package textutil содержит нормализацию текста опросов и нечеткое сравнение имен.
package textutil

import (
	"math"
	"strings"

	"github.com/xrash/smetrics"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize приводит текст к каноническому виду: без пробелов по краям и в нижнем регистре.
// Сравнение вариантов ответа выполняется только по нормализованному тексту.
func Normalize(s string) string {
	// Caser хранит состояние, поэтому создается на каждый вызов
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// Equal сравнивает две строки без учета регистра
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Ratio возвращает оценку похожести двух строк в диапазоне [0, 100].
// Используется расстояние Левенштейна, где замена стоит как удаление плюс вставка,
// поэтому 100 означает совпадение, а 0 - отсутствие общих символов.
func Ratio(a, b string) int {
	a, b = Normalize(a), Normalize(b)
	total := len(a) + len(b)
	if total == 0 || a == "" || b == "" {
		return 0
	}
	dist := smetrics.WagnerFischer(a, b, 1, 1, 2)
	return int(math.Round(float64(total-dist) * 100 / float64(total)))
}
