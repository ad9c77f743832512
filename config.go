// The MIT License (MIT)

// Copyright (c) 2016, 2017 Fabian Wenzelmann

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package goel

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	// SolverRule selects the RuleSolver.
	SolverRule = "rule"
	// SolverNaive selects the NaiveSolver.
	SolverNaive = "naive"
	// SolverConcurrent selects the ConcurrentSolver.
	SolverConcurrent = "concurrent"
)

// DefaultQueryCacheSize is the number of compound query results cached by a
// Reasoner.
const DefaultQueryCacheSize = 128

// Config configures a Reasoner.
type Config struct {
	// Solver is one of "rule", "naive" and "concurrent".
	Solver string `yaml:"solver" validate:"oneof=rule naive concurrent"`
	// Workers is the number of workers of the concurrent solver, 0 means
	// GOMAXPROCS.
	Workers int `yaml:"workers" validate:"gte=0"`
	// Timeout bounds each saturation run, 0 means no timeout.
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
	// QueryCacheSize is the size of the compound query cache, 0 disables it.
	QueryCacheSize int `yaml:"query_cache_size" validate:"gte=0"`
}

// DefaultConfig returns the configuration used if nothing else is given.
func DefaultConfig() Config {
	return Config{
		Solver:         SolverRule,
		Workers:        0,
		Timeout:        0,
		QueryCacheSize: DefaultQueryCacheSize,
	}
}

var validate = validator.New()

// Validate checks all fields of the config.
func (cfg Config) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, e.Param()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// LoadConfig reads a YAML config. Fields not set in r keep their default
// value, an empty document yields DefaultConfig.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewSolver returns the solver selected by the config.
func (cfg Config) NewSolver(logger *zap.Logger) Solver {
	switch cfg.Solver {
	case SolverNaive:
		return NewNaiveSolver(logger)
	case SolverConcurrent:
		return NewConcurrentSolver(cfg.Workers, logger)
	default:
		return NewRuleSolver(logger)
	}
}
