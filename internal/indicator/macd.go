package indicator

// MACD computes the MACD line (fast EMA minus slow EMA), its signal
// line (EMA of the MACD line), and the histogram (their difference).
// The MACD line becomes defined at index slow-1; the signal line after
// a further smooth-1 defined MACD values.
func MACD(closes []float64, fast, slow, smooth int) (macd, signal, hist []*float64) {
	n := len(closes)
	macd = make([]*float64, n)
	signal = make([]*float64, n)
	hist = make([]*float64, n)

	fastEMA := EMASeries(closes, fast)
	slowEMA := EMASeries(closes, slow)

	var line []float64
	offset := -1
	for i := 0; i < n; i++ {
		if fastEMA[i] == nil || slowEMA[i] == nil {
			continue
		}
		v := *fastEMA[i] - *slowEMA[i]
		macd[i] = &v
		if offset < 0 {
			offset = i
		}
		line = append(line, v)
	}
	if offset < 0 {
		return macd, signal, hist
	}

	sigLine := EMASeries(line, smooth)
	for j, s := range sigLine {
		if s == nil {
			continue
		}
		i := offset + j
		signal[i] = s
		h := *macd[i] - *s
		hist[i] = &h
	}
	return macd, signal, hist
}
