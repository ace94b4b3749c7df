package content

import "fmt"

// alphabetSeed is the teaching order of the letters. Each entry pairs the
// letter with a short word built mostly from letters taught before it.
var alphabetSeed = []struct {
	char string
	word string
}{
	{"آ", "آ"},
	{"ب", "بابا"},
	{"د", "آباد"},
	{"م", "بام"},
	{"ن", "نان"},
	{"ر", "بار"},
	{"ز", "باز"},
	{"س", "سام"},
	{"ت", "تار"},
	{"و", "بوم"},
	{"ه", "ماه"},
	{"ی", "سینی"},
	{"ش", "شام"},
	{"خ", "خار"},
	{"ف", "فارس"},
	{"ق", "قند"},
	{"ل", "لادن"},
	{"ک", "کارد"},
	{"گ", "گام"},
	{"پ", "پایان"},
	{"چ", "چادر"},
	{"ج", "جان"},
	{"ح", "حرم"},
	{"ع", "عادل"},
	{"غ", "غار"},
	{"ط", "طناب"},
	{"ظ", "ناظم"},
	{"ص", "صابون"},
	{"ض", "رضا"},
	{"ذ", "آذر"},
	{"ث", "ثبت"},
	{"ژ", "دژ"},
}

// PersianDigits maps 0-9 to their Persian numeral.
var PersianDigits = []string{"۰", "۱", "۲", "۳", "۴", "۵", "۶", "۷", "۸", "۹"}

// numberWords are the spoken names of 0-9.
var numberWords = []string{"صفر", "یک", "دو", "سه", "چهار", "پنج", "شش", "هفت", "هشت", "نه"}

// Catalog returns the initial content: every letter and digit at level 1,
// never attempted.
func Catalog() []Item {
	items := make([]Item, 0, len(alphabetSeed)+len(PersianDigits))
	for i, s := range alphabetSeed {
		items = append(items, Item{
			ID:          fmt.Sprintf("p%02d", i+1),
			Character:   s.char,
			Word:        s.word,
			PhoneticRef: s.word,
			ImageRef:    fmt.Sprintf("img_a%d", i+1),
			Category:    CategoryAlphabet,
			Position:    i,
			Level:       MinLevel,
		})
	}
	for n := range PersianDigits {
		items = append(items, Item{
			ID:          fmt.Sprintf("n%d", n),
			Character:   PersianDigits[n],
			Word:        numberWords[n],
			PhoneticRef: fmt.Sprintf("audio_n%d", n),
			ImageRef:    fmt.Sprintf("img_n%d", n),
			Category:    CategoryNumber,
			Position:    n,
			Level:       MinLevel,
		})
	}
	return items
}
