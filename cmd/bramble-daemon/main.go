package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/bramblecoop/bramble/config"
	"github.com/bramblecoop/bramble/jobs/cron"
	"github.com/bramblecoop/bramble/mq_client"
	"github.com/bramblecoop/bramble/payouts"
	"github.com/bramblecoop/bramble/storage"
	"github.com/bramblecoop/bramble/workers/daemons"
)

func CreateWorker(id string, aggregator *payouts.Aggregator, schedule payouts.Schedule) daemons.Worker {
	switch id {
	case "payout":
		return daemons.NewCronJob(cron.NewPayoutJob(aggregator, schedule, config.Logger))
	case "payout_once":
		return daemons.NewOnceJob(&cron.PayoutOnceJob{Runner: aggregator})
	default:
		return nil
	}
}

func newAggregator(cfg *config.Env, policy payouts.Policy) (*payouts.Aggregator, mq_client.Publisher, error) {
	opts := []payouts.Option{
		payouts.WithLogger(config.Logger),
	}

	publisher, err := mq_client.NewPublisher(cfg.EventsBackend, cfg.AMQPURL, cfg.AMQPExchange, cfg.KafkaBrokers)
	if err != nil {
		return nil, nil, err
	}
	if publisher != nil {
		opts = append(opts, payouts.WithEvents(&mq_client.PayoutEvents{Publisher: publisher}))
	}

	if config.Redis != nil {
		opts = append(opts, payouts.WithSummaryStore(&payouts.CacheSummaryStore{Cache: config.Redis}))
	}

	if config.InfluxDB != nil {
		opts = append(opts, payouts.WithMetrics(config.InfluxDB))
	}

	aggregator, err := payouts.NewAggregator(
		storage.NewLedgerRepository(config.DataBase),
		storage.NewPayoutRepository(config.DataBase),
		policy,
		opts...,
	)
	if err != nil {
		if publisher != nil {
			publisher.Close()
		}
		return nil, nil, err
	}

	return aggregator, publisher, nil
}

func main() {
	cfg, err := config.InitializeConfig()
	if err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
	defer config.Close()

	if err := config.RunMigrations(cfg); err != nil {
		config.Fatalf("Failed to run migrations: %v", err)
	}

	payoutConfig, err := payouts.LoadConfig(cfg.PayoutConfig)
	if err != nil {
		config.Fatalf("Failed to load payout config %s: %v", cfg.PayoutConfig, err)
	}

	aggregator, publisher, err := newAggregator(cfg, payoutConfig.Policy)
	if err != nil {
		config.Fatalf("Failed to set up payout aggregator: %v", err)
	}
	if publisher != nil {
		defer publisher.Close()
	}

	workers := make([]daemons.Worker, 0)
	for _, id := range os.Args[1:] {
		worker := CreateWorker(id, aggregator, payoutConfig.Schedule)
		if worker == nil {
			config.Fatalf("Unknown worker: %s", id)
		}

		workers = append(workers, worker)
	}

	if len(workers) == 0 {
		config.Fatalf("Usage: bramble-daemon <payout|payout_once>...")
	}

	var wg sync.WaitGroup
	finished := make(chan struct{})

	for i, worker := range workers {
		config.Logger.Infof("Start bramble-daemon: %s", os.Args[i+1])

		wg.Add(1)
		go func(worker daemons.Worker) {
			defer wg.Done()
			worker.Start()
		}(worker)
	}

	go func() {
		wg.Wait()
		close(finished)
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-signals:
		config.Logger.Infof("Received %s, stopping workers", sig)
		for _, worker := range workers {
			worker.Stop()
		}
		<-finished
	case <-finished:
	}
}
