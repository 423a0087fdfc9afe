package model

import "sort"

// CurrencyDescriptions содержит закрытый каталог поддерживаемых валют.
// Любой код вне этого списка считается неизвестной валютой.
var CurrencyDescriptions = map[string]string{
	"USD": "🇺🇸 USD — United States Dollar\nКраїна: США\nСимвол: $",
	"EUR": "🇪🇺 EUR — Euro\nКраїна: Єврозона\nСимвол: €",
	"UAH": "🇺🇦 UAH — Ukrainian Hryvnia\nКраїна: Україна\nСимвол: ₴",
	"PLN": "🇵🇱 PLN — Polish Złoty\nКраїна: Польща\nСимвол: zł",
	"GBP": "🇬🇧 GBP — British Pound\nКраїна: Велика Британія\nСимвол: £",
	"JPY": "🇯🇵 JPY — Japanese Yen\nКраїна: Японія\nСимвол: ¥",
	"CZK": "🇨🇿 CZK — Czech Koruna\nКраїна: Чехія\nСимвол: Kč",
	"CHF": "🇨🇭 CHF — Swiss Franc\nКраїна: Швейцарія\nСимвол: ₣",
	"SEK": "🇸🇪 SEK — Swedish Krona\nКраїна: Швеція\nСимвол: kr",
	"TRY": "🇹🇷 TRY — Turkish Lira\nКраїна: Туреччина\nСимвол: ₺",
}

// SupportedCurrency проверяет, что код есть в каталоге.
func SupportedCurrency(code string) bool {
	_, ok := CurrencyDescriptions[code]
	return ok
}

// CurrencyCodes возвращает отсортированный список кодов каталога.
func CurrencyCodes() []string {
	codes := make([]string, 0, len(CurrencyDescriptions))
	for code := range CurrencyDescriptions {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
