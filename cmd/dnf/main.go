package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	dnfmath "github.com/drakos74/dnf-net/internal/math"
	"github.com/drakos74/dnf-net/internal/metrics"
	"github.com/drakos74/dnf-net/internal/net"
	"github.com/drakos74/dnf-net/internal/report"
	"github.com/drakos74/dnf-net/internal/train"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {

	cfg, err := train.FromEnv()
	if err != nil {
		panic(fmt.Sprintf("could not load config: %+v", err))
	}

	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if cfg.MetricsPort > 0 {
		metrics.Serve(cfg.MetricsPort)
	}

	teacher, err := cfg.Teacher()
	if err != nil {
		panic(fmt.Sprintf("could not create teacher network: %+v", err))
	}

	log.Info().
		Str("formula", cfg.Formula).
		Str("shape", teacher.Shape().String()).
		Floats64("learning-rates", cfg.LearningRates).
		Int("max-epochs", cfg.MaxEpochs).
		Msg("starting training")

	summaries := make([]report.Summary, 0)
	for _, rate := range cfg.LearningRates {
		// every learner starts from the same parameters
		learner, err := net.New(teacher.Shape().InputLength, teacher.Shape().Units, rate, dnfmath.NewRandom(cfg.Seed), cfg.Factor)
		if err != nil {
			panic(fmt.Sprintf("could not create learner network: %+v", err))
		}

		trainer, err := train.New(teacher, learner, cfg.MaxEpochs)
		if err != nil {
			panic(fmt.Sprintf("could not create trainer: %+v", err))
		}

		result, err := trainer.WithObserver(metrics.Observer).Run()
		if err != nil {
			log.Error().Err(err).Float64("learning-rate", rate).Msg("training failed")
			continue
		}

		log.Debug().Str("run", trainer.ID()).Msg(learner.String())
		summaries = append(summaries, report.Summarize(fmt.Sprintf("lr=%v", rate), result, cfg.Window))
	}

	report.Render(os.Stdout, summaries...)

	if cfg.MetricsPort > 0 {
		// keep serving the metrics until interrupted
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt)
		<-stop
	}
}
