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

package logger

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.SugaredLogger
	dlevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

func init() {
	if err := Configure("console", []string{"stdout"}); err != nil {
		panic(err)
	}
	L().Debugf("Logger initialized")
}

// Configure rebuilds the package logger with the given encoding ("console"
// or "json") and output paths. The atomic level is kept across rebuilds.
func Configure(encoding string, outputs []string) error {
	encCfg := zap.NewDevelopmentEncoderConfig()
	if encoding == "json" {
		encCfg = zap.NewProductionEncoderConfig()
	}
	cfg := zap.Config{
		Level:            dlevel,
		Encoding:         encoding,
		EncoderConfig:    encCfg,
		OutputPaths:      outputs,
		ErrorOutputPaths: outputs,
		// NOTE: set this false to enable stack trace
		DisableStacktrace: true,
	}

	l, err := cfg.Build()
	if err != nil {
		return errors.Wrapf(err, "failed to build %s logger", encoding)
	}
	logger = l.Sugar()
	return nil
}

func L() *zap.SugaredLogger {
	if logger == nil {
		panic("Logger is not initialized")
	}
	return logger
}

// Named returns a child logger tagged with the component name.
func Named(component string) *zap.SugaredLogger {
	return L().Named(component)
}

func Close() {
	if err := L().Sync(); err != nil {
		L().Error(errors.WithMessage(err, "failed to close logger"))
	}
}

func SetLogLevel(level zapcore.Level) {
	dlevel.SetLevel(level)
}

func Level() zapcore.Level {
	return dlevel.Level()
}
