package calculator

import "PaperDesk/internal/model"

// DetectEngulfing flags two-candle engulfing reversal patterns. A bullish
// engulfing at bar t requires a bearish prior bar whose body is fully
// contained by bar t's bullish body; bearish engulfing is the mirror.
// The first bar has no prior bar and is never flagged.
func DetectEngulfing(bars []model.OHLCV) (bullish, bearish []bool) {
	bullish = make([]bool, len(bars))
	bearish = make([]bool, len(bars))
	for t := 1; t < len(bars); t++ {
		cur, prev := bars[t], bars[t-1]
		bullish[t] = cur.Open < prev.Close &&
			cur.Close > prev.Open &&
			cur.Close > cur.Open &&
			prev.Open > prev.Close
		bearish[t] = cur.Open > prev.Close &&
			cur.Close < prev.Open &&
			cur.Close < cur.Open &&
			prev.Open < prev.Close
	}
	return bullish, bearish
}
