package train

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/drakos74/dnf-net/internal/net"
)

const (
	// ReferenceFormula is the formula of the reference teacher network.
	ReferenceFormula = "x1 x2 x3 !x4 | x2 x3 x4 !x5 | x3 x4 x5 !x6 | x4 x5 x6 !x7 | x7 !x8 !x9 !x10"

	// DefaultWindow is the moving average window for reports.
	DefaultWindow = 100

	inputLengthKey  = "DNF_INPUT_LENGTH"
	formulaKey      = "DNF_FORMULA"
	learningRateKey = "DNF_LEARNING_RATES"
	maxEpochsKey    = "DNF_MAX_EPOCHS"
	seedKey         = "DNF_SEED"
	factorKey       = "DNF_FACTOR"
	windowKey       = "DNF_WINDOW"
	metricsPortKey  = "DNF_METRICS_PORT"
	debugKey        = "DNF_DEBUG"
)

// Config defines the configuration of a training session.
// InputLength is the number of boolean inputs of both networks
// Formula is the DNF formula the teacher network encodes, one unit per term
// LearningRates defines one learner per learning rate, all trained against the same teacher
// MaxEpochs is the epoch budget of each learner
// Seed seeds the random initialisation of the learners
// Factor scales the random initial parameters
// Window is the moving average window for the report
// MetricsPort exposes prometheus metrics if positive
type Config struct {
	InputLength   int       `json:"input_length"`
	Formula       string    `json:"formula"`
	LearningRates []float64 `json:"learning_rates"`
	MaxEpochs     int       `json:"max_epochs"`
	Seed          int64     `json:"seed"`
	Factor        float64   `json:"factor"`
	Window        int       `json:"window"`
	MetricsPort   int       `json:"metrics_port"`
	Debug         bool      `json:"debug"`
}

// DefaultConfig returns the config for the reference formula.
func DefaultConfig() Config {
	return Config{
		InputLength:   net.DefaultInputLength,
		Formula:       ReferenceFormula,
		LearningRates: []float64{net.DefaultLearningRate},
		MaxEpochs:     DefaultMaxEpochs,
		Seed:          1,
		Factor:        1,
		Window:        DefaultWindow,
	}
}

// FromEnv overrides the default config with the environment variables that are set.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(key string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()
	var err error
	if v, ok := lookup(inputLengthKey); ok {
		if cfg.InputLength, err = strconv.Atoi(v); err != nil {
			return cfg, fmt.Errorf("could not parse %s: %w", inputLengthKey, err)
		}
	}
	if v, ok := lookup(formulaKey); ok {
		cfg.Formula = v
	}
	if v, ok := lookup(learningRateKey); ok {
		rates := strings.Split(v, ",")
		cfg.LearningRates = make([]float64, len(rates))
		for i, r := range rates {
			if cfg.LearningRates[i], err = strconv.ParseFloat(strings.TrimSpace(r), 64); err != nil {
				return cfg, fmt.Errorf("could not parse %s: %w", learningRateKey, err)
			}
		}
	}
	if v, ok := lookup(maxEpochsKey); ok {
		if cfg.MaxEpochs, err = strconv.Atoi(v); err != nil {
			return cfg, fmt.Errorf("could not parse %s: %w", maxEpochsKey, err)
		}
	}
	if v, ok := lookup(seedKey); ok {
		if cfg.Seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return cfg, fmt.Errorf("could not parse %s: %w", seedKey, err)
		}
	}
	if v, ok := lookup(factorKey); ok {
		if cfg.Factor, err = strconv.ParseFloat(v, 64); err != nil {
			return cfg, fmt.Errorf("could not parse %s: %w", factorKey, err)
		}
	}
	if v, ok := lookup(windowKey); ok {
		if cfg.Window, err = strconv.Atoi(v); err != nil {
			return cfg, fmt.Errorf("could not parse %s: %w", windowKey, err)
		}
	}
	if v, ok := lookup(metricsPortKey); ok {
		if cfg.MetricsPort, err = strconv.Atoi(v); err != nil {
			return cfg, fmt.Errorf("could not parse %s: %w", metricsPortKey, err)
		}
	}
	if v, ok := lookup(debugKey); ok {
		if cfg.Debug, err = strconv.ParseBool(v); err != nil {
			return cfg, fmt.Errorf("could not parse %s: %w", debugKey, err)
		}
	}
	return cfg, cfg.Validate()
}

// Validate checks the config values.
func (c Config) Validate() error {
	if c.InputLength < 1 || c.InputLength > MaxInputLength {
		return fmt.Errorf("input length must be within [1,%d]: %d", MaxInputLength, c.InputLength)
	}
	if len(c.LearningRates) == 0 {
		return fmt.Errorf("at least one learning rate is required")
	}
	for _, r := range c.LearningRates {
		if r < 0 {
			return fmt.Errorf("learning rate must not be negative: %v", r)
		}
	}
	if c.MaxEpochs < 1 {
		return fmt.Errorf("max epochs must be positive: %d", c.MaxEpochs)
	}
	if c.Factor <= 0 {
		return fmt.Errorf("factor must be positive: %v", c.Factor)
	}
	if c.Window < 1 {
		return fmt.Errorf("window must be positive: %d", c.Window)
	}
	f, err := net.ParseFormula(c.Formula)
	if err != nil {
		return err
	}
	if f.Variables() > c.InputLength {
		return fmt.Errorf("formula uses %d variables with input length %d", f.Variables(), c.InputLength)
	}
	return nil
}

// Teacher creates the teacher network for the configured formula.
func (c Config) Teacher() (*net.Network, error) {
	f, err := net.ParseFormula(c.Formula)
	if err != nil {
		return nil, err
	}
	return net.FromFormula(c.InputLength, f)
}
