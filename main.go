package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/KNICEX/stock-watcher/internal/repo"
	"github.com/KNICEX/stock-watcher/internal/schedule"
	"github.com/KNICEX/stock-watcher/internal/service/monitor"
	"github.com/KNICEX/stock-watcher/ioc"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func initViper() {

	// --config=./config/xxx.yaml
	file := pflag.String("config", "./config/config.dev.yaml", "specify config file")
	pflag.Parse()

	viper.SetConfigFile(*file)
	err := viper.ReadInConfig()
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %s \n", err))
	}
}

func main() {
	initViper()

	db := ioc.InitDB()
	if err := repo.InitTables(db); err != nil {
		panic(err)
	}
	alertRepo := repo.NewAlertRepo(db)

	quoteSvc := ioc.InitQuoteService()
	dispatcher := ioc.InitDispatcher()

	var opts []monitor.Option
	if pace := viper.GetDuration("monitor.pace"); pace > 0 {
		opts = append(opts, monitor.WithPace(pace))
	}
	watcher := monitor.NewAlertWatcher(alertRepo, quoteSvc, dispatcher, opts...)
	task := monitor.NewAlertMonitorTask(watcher)

	interval := viper.GetDuration("monitor.interval")
	if interval <= 0 {
		interval = time.Minute
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewScheduler(ctx)
	if err := scheduler.Register(task, interval); err != nil {
		panic(err)
	}

	if viper.GetBool("monitor.run_on_start") {
		if err := task.Run(ctx); err != nil {
			slog.Error("initial scan failed", "error", err)
		}
	}

	scheduler.Start()
	<-ctx.Done()
	// let the in-flight cycle finish its current symbol before exiting
	scheduler.Stop()
}
