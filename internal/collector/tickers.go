package collector

import "sort"

// Taiwan ETF codes mapped to their primary Yahoo Finance ticker.
var etfTickers = map[string]string{
	"0050":   "0050.TW",
	"006208": "6208.TW",
	"00878":  "0878.TW",
	"00929":  "0929.TW",
}

// Alternative ticker formats tried when the primary one returns no data.
var alternativeTickers = map[string][]string{
	"0050":   {"0050.TWO", "0050.TWO.TW"},
	"006208": {"6208.TWO", "6208.TWO.TW", "006208.TW"},
	"00878":  {"0878.TWO", "0878.TWO.TW", "00878.TW"},
	"00929":  {"0929.TWO", "0929.TWO.TW", "00929.TW"},
}

// SupportedETFs returns the supported ETF codes in stable order.
func SupportedETFs() []string {
	codes := make([]string, 0, len(etfTickers))
	for code := range etfTickers {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Supported reports whether code is a known ETF code.
func Supported(code string) bool {
	_, ok := etfTickers[code]
	return ok
}
