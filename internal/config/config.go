/*
 * Copyright (c) 2023. Anton Starikov -- All Rights Reserved
 *
 * This file is part of GEOHEAT project.
 *
 * GEOHEAT is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as the Free Software Foundation,
 * either version 3 of the License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

package config

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/antst/geoheat/internal/logger"

	"github.com/pborman/getopt/v2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigFile = "config.yaml"
	defaultDBFile     = "geoheat.db"
	defaultOutputDir  = "plots"
	defaultLogFormat  = "console"
	defaultYears      = 5

	ModeSingle   = "single"
	ModeOptimize = "optimize"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	LogLevel   zapcore.Level    `yaml:"log_level"`
	LogFormat  string           `yaml:"log_format"`
	Mode       string           `yaml:"mode"`
	Years      int              `yaml:"years"`
	OutputDir  string           `yaml:"output_dir"`
	DBFile     string           `yaml:"db_file"`
	MQTTConfig *MQTTConfig      `yaml:"mqtt"`
	Pool       *PoolConfig      `yaml:"pool"`
	Heater     *HeaterConfig    `yaml:"heater"`
	Geothermy  *GeothermyConfig `yaml:"geothermy"`
	Optimizer  *OptimizerConfig `yaml:"optimizer"`
}

func defConfig() *Config {
	return &Config{
		LogLevel:   zapcore.InfoLevel,
		LogFormat:  defaultLogFormat,
		Mode:       ModeSingle,
		Years:      defaultYears,
		OutputDir:  defaultOutputDir,
		DBFile:     defaultDBFile,
		MQTTConfig: NewMQTTConfig(),
		Pool:       NewPoolConfig(),
		Heater:     NewHeaterConfig(),
		Geothermy:  NewGeothermyConfig(),
		Optimizer:  NewOptimizerConfig(),
	}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := defConfig()
	cfg.FillDefaults()
	return cfg
}

func prettyPrint(cfg *Config) {
	d, err := yaml.Marshal(cfg)
	if err != nil {
		logger.L().Error("Failed to marshal config for pretty print", err)
		return
	}
	logger.L().Debugf("--- Config ---\n%s\n\n", string(d))
}

func (cfg *Config) FillDefaults() {
	if cfg.LogFormat == "" {
		cfg.LogFormat = defaultLogFormat
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeSingle
	}
	if cfg.Years == 0 {
		cfg.Years = defaultYears
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = defaultOutputDir
	}

	if cfg.MQTTConfig == nil {
		cfg.MQTTConfig = NewMQTTConfig()
	}
	if cfg.Pool == nil {
		cfg.Pool = NewPoolConfig()
	}
	if cfg.Heater == nil {
		cfg.Heater = NewHeaterConfig()
	}
	if cfg.Geothermy == nil {
		cfg.Geothermy = NewGeothermyConfig()
	}
	if cfg.Optimizer == nil {
		cfg.Optimizer = NewOptimizerConfig()
	}

	cfg.MQTTConfig.FillDefaults()
	cfg.Pool.FillDefaults()
	cfg.Heater.FillDefaults()
	cfg.Geothermy.FillDefaults()
	cfg.Optimizer.FillDefaults()
}

// Days is the simulated horizon.
func (cfg *Config) Days() int {
	return cfg.Years * 365
}

// Validate reports every non-physical or degenerate parameter at once.
func (cfg *Config) Validate() error {
	var err error
	if cfg.Years < 1 {
		err = multierr.Append(err, fmt.Errorf("years must be >= 1, got %d", cfg.Years))
	}
	if cfg.Mode != ModeSingle && cfg.Mode != ModeOptimize {
		err = multierr.Append(err, fmt.Errorf("unknown mode `%s`", cfg.Mode))
	}
	if cfg.LogFormat != "console" && cfg.LogFormat != "json" {
		err = multierr.Append(err, fmt.Errorf("unknown log format `%s`", cfg.LogFormat))
	}
	err = multierr.Append(err, cfg.Pool.Validate())
	err = multierr.Append(err, cfg.Heater.Validate())
	err = multierr.Append(err, cfg.Geothermy.Validate())
	err = multierr.Append(err, cfg.validateInlets())
	if cfg.Mode == ModeOptimize {
		err = multierr.Append(err, cfg.Optimizer.Validate())
		err = multierr.Append(err, cfg.Optimizer.validateFloor(cfg.Geothermy.GroundTemperature))
	}
	if err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	return nil
}

// validateInlets keeps both exchangers hotter than the water they heat.
func (cfg *Config) validateInlets() error {
	var err error
	if cfg.Heater.WaterInletTemp <= cfg.Pool.WinterTemp {
		err = multierr.Append(err, fmt.Errorf(
			"heater.water_inlet_temp %.2f must exceed pool.winter_temp %.2f",
			cfg.Heater.WaterInletTemp, cfg.Pool.WinterTemp,
		))
	}
	if hottest := math.Max(cfg.Pool.WinterTemp, cfg.Pool.SummerTemp); cfg.Heater.VaporInletTemp <= hottest {
		err = multierr.Append(err, fmt.Errorf(
			"heater.vapor_inlet_temp %.2f must exceed the hottest pool temperature %.2f",
			cfg.Heater.VaporInletTemp, hottest,
		))
	}
	return err
}

// Load reads a config file on top of the defaults. A missing file is not
// an error.
func Load(configFile string) (*Config, error) {
	cfg := defConfig()
	if err := readFile(cfg, configFile); err != nil {
		return nil, err
	}
	cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Get parses the command line, loads the config file and applies flag
// overrides.
func Get() (*Config, error) {
	helpFlag := false
	logLevel := getopt.StringLong("log-level", 'l', "", "log levels: debug, info, warn, error, dpanic, panic, fatal")
	configFile := getopt.StringLong("config", 'c', defaultConfigFile, "config file pathname")
	dbFile := getopt.StringLong("db", 'd', "", "DB file pathname, `-` disables storage")
	mode := getopt.StringLong("mode", 'm', "", "run mode: single, optimize")
	outDir := getopt.StringLong("out", 'o', "", "plot output directory")
	getopt.FlagLong(&helpFlag, "help", 'h', "display help")

	getopt.Parse()
	if helpFlag {
		getopt.Usage()
		os.Exit(0)
	}

	cfg := defConfig()
	if err := readFile(cfg, *configFile); err != nil {
		return nil, errors.WithMessage(err, "GetConfig")
	}
	logger.L().Infof("Using config file `%v`", *configFile)

	if *dbFile != "" {
		cfg.DBFile = *dbFile
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}
	logger.L().Infof("Using DB file `%v`", cfg.DBFile)

	cfg.FillDefaults()

	if *logLevel != "" {
		if err := cfg.LogLevel.Set(*logLevel); err != nil {
			logger.L().Errorf("Wrong log level `%v`: %v", *logLevel, err)
		}
	}
	if cfg.LogFormat != defaultLogFormat {
		if err := logger.Configure(cfg.LogFormat, []string{"stdout"}); err != nil {
			logger.L().Errorf("Wrong log format `%v`: %v", cfg.LogFormat, err)
		}
	}
	logger.SetLogLevel(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prettyPrint(cfg)

	return cfg, nil
}

// StorageEnabled is false when the DB file is set to "-".
func (cfg *Config) StorageEnabled() bool {
	return cfg.DBFile != "" && cfg.DBFile != "-"
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && !info.IsDir()
}

func readFile(cfg *Config, configFileName string) error {
	if !fileExists(configFileName) {
		return nil
	}

	f, err := os.Open(configFileName)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	return nil
}
