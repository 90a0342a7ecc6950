package indicator

import "github.com/anderson155081/Taiwan-ETF-Tracker/internal/model"

// Stochastic computes the stochastic oscillator. %K at row i is the
// position of the close inside the high/low range of the last kPeriod
// bars, scaled to 0-100. When the range is flat (highest high equals
// lowest low) %K is defined as 0. %D is the simple moving average of %K
// over dPeriod rows.
func Stochastic(bars []model.PriceBar, kPeriod, dPeriod int) (k, d []*float64) {
	k = make([]*float64, len(bars))
	d = make([]*float64, len(bars))
	if kPeriod <= 0 || dPeriod <= 0 || len(bars) < kPeriod {
		return k, d
	}

	for i := kPeriod - 1; i < len(bars); i++ {
		lowest := bars[i-kPeriod+1].Low
		highest := bars[i-kPeriod+1].High
		for j := i - kPeriod + 2; j <= i; j++ {
			if bars[j].Low < lowest {
				lowest = bars[j].Low
			}
			if bars[j].High > highest {
				highest = bars[j].High
			}
		}

		v := 0.0
		if highest > lowest {
			v = 100 * (bars[i].Close - lowest) / (highest - lowest)
		}
		k[i] = &v
	}

	// %D starts once dPeriod consecutive %K values exist.
	for i := kPeriod - 1 + dPeriod - 1; i < len(bars); i++ {
		sum := 0.0
		for j := i - dPeriod + 1; j <= i; j++ {
			sum += *k[j]
		}
		mean := sum / float64(dPeriod)
		d[i] = &mean
	}
	return k, d
}
