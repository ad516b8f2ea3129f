package signal

import (
	"testing"
	"time"

	"PaperDesk/internal/model"
)

func analysisWithBars(n int) *model.Analysis {
	bars := make([]model.OHLCV, n)
	for i := range bars {
		c := 100.0 + float64(i)
		bars[i] = model.OHLCV{
			Time:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Open:  c, High: c + 1, Low: c - 1, Close: c, Volume: 1000,
		}
	}
	return &model.Analysis{
		Symbol:           "GOOGL",
		Bars:             bars,
		BullishEngulfing: make([]bool, n),
		BearishEngulfing: make([]bool, n),
	}
}

func kinds(alerts []Alert) map[Kind]bool {
	m := make(map[Kind]bool, len(alerts))
	for _, a := range alerts {
		m[a.Kind] = true
	}
	return m
}

func TestEvaluate_NoConditions(t *testing.T) {
	if got := Evaluate(analysisWithBars(5)); len(got) != 0 {
		t.Errorf("expected no alerts, got %+v", got)
	}
	if got := Evaluate(nil); got != nil {
		t.Errorf("nil analysis: expected nil, got %+v", got)
	}
}

func TestEvaluate_EngulfingOnLatestBarOnly(t *testing.T) {
	a := analysisWithBars(5)
	a.BullishEngulfing[2] = true // stale, must not alert
	if got := Evaluate(a); len(got) != 0 {
		t.Errorf("stale flag alerted: %+v", got)
	}

	a.BullishEngulfing[4] = true
	got := Evaluate(a)
	if len(got) != 1 || got[0].Kind != KindBullishEngulfing {
		t.Fatalf("expected one bullish engulfing alert, got %+v", got)
	}
	if got[0].Symbol != "GOOGL" || !got[0].At.Equal(a.Bars[4].Time) {
		t.Errorf("alert metadata wrong: %+v", got[0])
	}
}

func TestEvaluate_AnomalyRequiresDefinedScan(t *testing.T) {
	a := analysisWithBars(5)
	flags := make([]bool, 5)
	flags[4] = true
	a.Anomalies = model.AnomalyScan{Flags: flags, Defined: false}
	if got := Evaluate(a); len(got) != 0 {
		t.Errorf("undefined scan alerted: %+v", got)
	}

	a.Anomalies.Defined = true
	a.Anomalies.Threshold = 0.001
	if got := Evaluate(a); !kinds(got)[KindAnomaly] {
		t.Errorf("expected anomaly alert, got %+v", got)
	}
}

func TestEvaluate_RSIThresholds(t *testing.T) {
	cases := []struct {
		name  string
		rsi   float64
		valid bool
		want  Kind
	}{
		{"overbought", 75, true, KindOverbought},
		{"oversold", 25, true, KindOversold},
		{"neutral", 50, true, ""},
		{"boundary high", 70, true, ""},
		{"boundary low", 30, true, ""},
		{"invalid point", 90, false, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := analysisWithBars(5)
			a.RSI = make(model.Series, 5)
			for i := range a.RSI {
				a.RSI[i] = model.Point{Time: a.Bars[i].Time}
			}
			a.RSI[4].Value = tc.rsi
			a.RSI[4].Valid = tc.valid

			got := Evaluate(a)
			if tc.want == "" {
				if len(got) != 0 {
					t.Errorf("expected no alerts, got %+v", got)
				}
				return
			}
			if len(got) != 1 || got[0].Kind != tc.want {
				t.Errorf("expected %s alert, got %+v", tc.want, got)
			}
		})
	}
}

func TestEvaluate_MultipleConditionsStack(t *testing.T) {
	a := analysisWithBars(5)
	a.BearishEngulfing[4] = true
	a.RSI = model.Series{{}, {}, {}, {}, {Time: a.Bars[4].Time, Value: 80, Valid: true}}

	got := kinds(Evaluate(a))
	if !got[KindBearishEngulfing] || !got[KindOverbought] {
		t.Errorf("expected bearish engulfing and overbought, got %v", got)
	}
}
