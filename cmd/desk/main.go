package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"PaperDesk/internal/calculator"
	"PaperDesk/internal/collector"
	"PaperDesk/internal/config"
	"PaperDesk/internal/ledger"
	"PaperDesk/internal/model"
	"PaperDesk/internal/news"
	"PaperDesk/internal/notifier"
	"PaperDesk/internal/recorder"
	"PaperDesk/internal/scheduler"
	tradesignal "PaperDesk/internal/signal"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] PaperDesk starting...")

	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher and collector
	fetcher := collector.NewYahooFetcher(cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())
	col := collector.NewCollector(fetcher)
	col.RiskFreeRate = cfg.Market.RiskFreeRate

	// Init paper-trading ledger
	lm := ledger.NewManager(cfg.Ledger.StateFile, cfg.Ledger.OpeningBalance)

	// Init news client
	nc := news.NewClient(cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional Telegram notifier
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, lm, tn, rec, nc,
		cfg.Market.Symbol, cfg.Market.HistoryDays)
	if err := sched.RegisterAll(cfg.Schedule.ValuationCron, cfg.Schedule.ScanCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")
	}

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing valuation now")
		go sched.RunValuationNow()
	}

	desk := &desk{
		collector: col,
		ledger:    lm,
		recorder:  rec,
		news:      nc,
		cfg:       cfg,
	}
	go desk.repl(cancel)

	log.Println("[INFO] PaperDesk is running. Type 'help' for commands, Ctrl+C to stop.")

	// Wait for shutdown signal or 'quit'
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	case <-ctx.Done():
	}
	cancel()
	log.Println("[INFO] PaperDesk stopped")
}

// desk drives the interactive command loop.
type desk struct {
	collector *collector.Collector
	ledger    *ledger.Manager
	recorder  recorder.Recorder
	news      *news.Client
	cfg       *config.Config
}

const helpText = `Commands:
  quote <symbol>                         latest quote
  analyze <symbol> [days]                daily indicator analysis
  scan <symbol> [interval]               intraday analysis (1m 5m 15m 30m 60m)
  buy <symbol> <qty> <price>             paper buy
  sell <symbol> <qty> <price>            paper sell
  portfolio                              positions and valuation
  news <symbol>                          recent headlines
  wacc <symbol> <mktCap> <debt> <interest> <taxProv> <pretax> <beta>
  help
  quit`

func (d *desk) repl(cancel context.CancelFunc) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		cmd := strings.ToLower(fields[0])
		args := fields[1:]

		switch cmd {
		case "quit", "exit":
			cancel()
			return
		case "help":
			fmt.Println(helpText)
		case "quote":
			d.quote(args)
		case "analyze":
			d.analyze(args)
		case "scan":
			d.scan(args)
		case "buy":
			d.trade(args, true)
		case "sell":
			d.trade(args, false)
		case "portfolio":
			d.portfolio()
		case "news":
			d.headlines(args)
		case "wacc":
			d.wacc(args)
		default:
			fmt.Printf("unknown command %q, try 'help'\n", cmd)
		}
	}
}

func (d *desk) quote(args []string) {
	if len(args) < 1 {
		fmt.Println("usage: quote <symbol>")
		return
	}
	symbol := strings.ToUpper(args[0])
	q, err := d.collector.Fetcher.FetchQuote(symbol)
	if err != nil {
		fmt.Printf("quote failed: %v\n", err)
		return
	}
	fmt.Printf("%s (%s): %.2f  O:%.2f H:%.2f L:%.2f  vol %.0f  %s\n",
		q.Symbol, q.Name, q.Price, q.Open, q.High, q.Low, q.Volume,
		q.At.Format("2006-01-02 15:04"))
}

func (d *desk) analyze(args []string) {
	if len(args) < 1 {
		fmt.Println("usage: analyze <symbol> [days]")
		return
	}
	symbol := strings.ToUpper(args[0])
	days := d.cfg.Market.HistoryDays
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil && n > 0 {
			days = n
		}
	}
	a, err := d.collector.Analyze(symbol, days)
	if err != nil {
		fmt.Printf("analysis failed: %v\n", err)
		return
	}
	d.printAnalysis(a)
}

func (d *desk) scan(args []string) {
	if len(args) < 1 {
		fmt.Println("usage: scan <symbol> [interval]")
		return
	}
	symbol := strings.ToUpper(args[0])
	interval := "5m"
	if len(args) > 1 {
		interval = args[1]
	}
	a, err := d.collector.Scan(symbol, interval)
	if err != nil {
		fmt.Printf("scan failed: %v\n", err)
		return
	}
	d.printAnalysis(a)
}

func (d *desk) printAnalysis(a *model.Analysis) {
	fmt.Printf("%s: %d bars, price %.2f\n", a.Symbol, len(a.Bars), a.Quote.Price)
	for _, period := range d.collector.EMAPeriods {
		if pt, ok := a.EMA[period].Last(); ok {
			fmt.Printf("  EMA%-4d %.2f\n", period, pt.Value)
		}
	}
	if pt, ok := a.RSI.Last(); ok {
		fmt.Printf("  RSI     %.1f\n", pt.Value)
	}
	macd, okM := a.MACD.Last()
	sig, okS := a.MACDSignal.Last()
	if okM && okS {
		fmt.Printf("  MACD    %.3f / signal %.3f\n", macd.Value, sig.Value)
	}
	if pt, ok := a.Sharpe.Last(); ok {
		fmt.Printf("  Sharpe  %.2f\n", pt.Value)
	}
	sup, okSup := a.Support.Last()
	res, okRes := a.Resistance.Last()
	if okSup && okRes {
		fmt.Printf("  Range   %.2f – %.2f\n", sup.Value, res.Value)
	}
	for _, alert := range tradesignal.Evaluate(a) {
		fmt.Printf("  ⚠ %s\n", alert.Message)
	}
}

func (d *desk) trade(args []string, buy bool) {
	verb := "sell"
	if buy {
		verb = "buy"
	}
	if len(args) < 3 {
		fmt.Printf("usage: %s <symbol> <qty> <price>\n", verb)
		return
	}
	symbol := strings.ToUpper(args[0])
	qty, err := decimal.NewFromString(args[1])
	if err != nil {
		fmt.Printf("bad quantity %q\n", args[1])
		return
	}
	price, err := decimal.NewFromString(args[2])
	if err != nil {
		fmt.Printf("bad price %q\n", args[2])
		return
	}

	var tx ledger.Transaction
	if buy {
		tx, err = d.ledger.Buy(symbol, qty, price)
	} else {
		tx, err = d.ledger.Sell(symbol, qty, price)
	}
	if err != nil {
		fmt.Printf("%s failed: %v\n", verb, err)
		return
	}
	fmt.Printf("%s %s %s @ %s, fee %s, balance %s\n",
		tx.Side, tx.Quantity.String(), tx.Symbol, tx.Price.StringFixed(2),
		tx.Fee.StringFixed(2), tx.BalanceAfter.StringFixed(2))

	qtyF, _ := tx.Quantity.Float64()
	priceF, _ := tx.Price.Float64()
	feeF, _ := tx.Fee.Float64()
	balF, _ := tx.BalanceAfter.Float64()
	if err := d.recorder.RecordTrade(&recorder.TradeEvent{
		ID: tx.ID, Symbol: tx.Symbol, Side: tx.Side,
		Quantity: qtyF, Price: priceF, Fee: feeF, BalanceAfter: balF,
	}); err != nil {
		log.Printf("[ERROR] record trade: %v", err)
	}
}

func (d *desk) portfolio() {
	snap := d.ledger.Snapshot(func(symbol string) (float64, error) {
		q, err := d.collector.Fetcher.FetchQuote(symbol)
		if err != nil {
			return 0, err
		}
		return q.Price, nil
	})
	fmt.Printf("Cash: %s\n", snap.Balance.StringFixed(2))
	for _, row := range snap.Rows {
		fmt.Printf("  %-6s %s @ %s  fees %s  value %s\n",
			row.Symbol, row.Shares.String(), row.PurchasePrice.StringFixed(2),
			row.Fees.StringFixed(2), row.CurrentValue.StringFixed(2))
	}
	fmt.Printf("Positions: %s  Total: %s\n",
		snap.PositionsValue.StringFixed(2), snap.TotalValue.StringFixed(2))
}

func (d *desk) headlines(args []string) {
	if len(args) < 1 {
		fmt.Println("usage: news <symbol>")
		return
	}
	symbol := strings.ToUpper(args[0])
	items, err := d.news.Headlines(symbol, 5)
	if err != nil {
		fmt.Printf("news failed: %v\n", err)
		return
	}
	for _, h := range items {
		fmt.Printf("  • %s\n    %s\n", h.Title, h.Link)
	}
}

func (d *desk) wacc(args []string) {
	if len(args) < 7 {
		fmt.Println("usage: wacc <symbol> <mktCap> <debt> <interest> <taxProv> <pretax> <beta>")
		return
	}
	symbol := strings.ToUpper(args[0])
	nums := make([]float64, 6)
	for i, arg := range args[1:7] {
		n, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			fmt.Printf("bad number %q\n", arg)
			return
		}
		nums[i] = n
	}

	riskFree := 0.0
	if d.cfg.Market.RiskFreeRate != nil {
		riskFree = *d.cfg.Market.RiskFreeRate
	}
	marketReturn, err := d.collector.MarketReturn(d.cfg.Market.Benchmark, 5)
	if err != nil {
		fmt.Printf("benchmark return unavailable (%v), using risk-free rate\n", err)
		marketReturn = riskFree
	}

	beta := nums[5]
	metrics, err := calculator.Fundamentals(model.FundamentalInputs{
		MarketCap:       nums[0],
		TotalDebt:       nums[1],
		InterestExpense: nums[2],
		TaxProvision:    nums[3],
		PretaxIncome:    nums[4],
		Beta:            &beta,
		RiskFreeRate:    riskFree,
		MarketReturn:    marketReturn,
	})
	if err != nil {
		fmt.Printf("wacc failed: %v\n", err)
		return
	}
	fmt.Printf("%s: tax %.2f%%  debt %.2f%%  equity %.2f%%  WACC %.2f%%\n",
		symbol, metrics.TaxRate*100, metrics.CostOfDebt*100,
		metrics.CostOfEquity*100, metrics.WACC*100)
}
