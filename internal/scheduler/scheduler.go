package scheduler

import (
	"context"
	"fmt"
	"log"

	"PaperDesk/internal/collector"
	"PaperDesk/internal/ledger"
	"PaperDesk/internal/news"
	"PaperDesk/internal/notifier"
	"PaperDesk/internal/recorder"
	"PaperDesk/internal/signal"

	"github.com/robfig/cron/v3"
)

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron        *cron.Cron
	Collector   *collector.Collector
	Ledger      *ledger.Manager
	Notifier    *notifier.TelegramNotifier
	Recorder    recorder.Recorder
	News        *news.Client
	Symbol      string
	HistoryDays int
	Ctx         context.Context
}

// NewScheduler creates a new Scheduler. The notifier may be nil, in
// which case tasks run silently.
func NewScheduler(ctx context.Context, col *collector.Collector, lm *ledger.Manager,
	tn *notifier.TelegramNotifier, rec recorder.Recorder, nc *news.Client,
	symbol string, historyDays int) *Scheduler {
	return &Scheduler{
		Cron:        cron.New(cron.WithSeconds()),
		Collector:   col,
		Ledger:      lm,
		Notifier:    tn,
		Recorder:    rec,
		News:        nc,
		Symbol:      symbol,
		HistoryDays: historyDays,
		Ctx:         ctx,
	}
}

// RegisterAll registers the valuation and scan tasks.
func (s *Scheduler) RegisterAll(valuationCron, scanCron string) error {
	if _, err := s.Cron.AddFunc(valuationCron, s.valuationTask); err != nil {
		return fmt.Errorf("register valuation task: %w", err)
	}
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// valuationTask marks every open position to market and records the
// resulting portfolio value.
func (s *Scheduler) valuationTask() {
	log.Println("[INFO] running portfolio valuation")
	snap := s.Ledger.Snapshot(func(symbol string) (float64, error) {
		quote, err := s.Collector.Fetcher.FetchQuote(symbol)
		if err != nil {
			return 0, err
		}
		return quote.Price, nil
	})

	s.trySend(notifier.FormatSnapshot(snap))

	cash, _ := snap.Balance.Float64()
	positions, _ := snap.PositionsValue.Float64()
	total, _ := snap.TotalValue.Float64()
	if err := s.Recorder.RecordValuation(&recorder.ValuationEvent{
		Cash:           cash,
		PositionsValue: positions,
		Total:          total,
	}); err != nil {
		log.Printf("[ERROR] record valuation: %v", err)
	}
}

// scanTask analyzes the watched symbol and delivers any alerts.
func (s *Scheduler) scanTask() {
	log.Println("[INFO] running signal scan")
	analysis, err := s.Collector.Analyze(s.Symbol, s.HistoryDays)
	if err != nil {
		log.Printf("[ERROR] scan analyze: %v", err)
		return
	}

	alerts := signal.Evaluate(analysis)
	if len(alerts) == 0 {
		log.Printf("[INFO] scan complete for %s, no alerts", s.Symbol)
		return
	}
	for _, alert := range alerts {
		s.trySend(notifier.FormatAlert(alert))
		if err := s.Recorder.RecordSignal(&recorder.SignalEvent{
			Symbol:    alert.Symbol,
			EventType: string(alert.Kind),
			Value:     alert.Value,
			Note:      alert.Message,
		}); err != nil {
			log.Printf("[ERROR] record signal: %v", err)
		}
	}
}

// RunValuationNow executes the valuation task immediately.
func (s *Scheduler) RunValuationNow() {
	s.valuationTask()
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/portfolio":
		snap := s.Ledger.Snapshot(func(symbol string) (float64, error) {
			quote, err := s.Collector.Fetcher.FetchQuote(symbol)
			if err != nil {
				return 0, err
			}
			return quote.Price, nil
		})
		return notifier.FormatSnapshot(snap)
	case "/analyze":
		analysis, err := s.Collector.Analyze(s.Symbol, s.HistoryDays)
		if err != nil {
			return fmt.Sprintf("analysis failed: %v", err)
		}
		return notifier.FormatAnalysis(analysis)
	case "/news":
		if s.News == nil {
			return "news feed not configured"
		}
		headlines, err := s.News.Headlines(s.Symbol, 5)
		if err != nil {
			return fmt.Sprintf("news fetch failed: %v", err)
		}
		return notifier.FormatHeadlines(s.Symbol, headlines)
	default:
		return "Commands:\n• /portfolio\n• /analyze\n• /news"
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
