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

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/antst/geoheat/internal"
	"github.com/antst/geoheat/internal/config"
	"github.com/antst/geoheat/internal/db"
	"github.com/antst/geoheat/internal/ground"
	"github.com/antst/geoheat/internal/heat_pump"
	"github.com/antst/geoheat/internal/logger"
	"github.com/antst/geoheat/internal/safe_mqtt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Build version, overridden with flag during build.
var version = "devel"

func main() {
	os.Exit(run())
}

func run() int {
	defer logger.Close()
	logger.L().Warnf("Geothermal pool heating simulator, version: %+v", version)

	cfg, err := config.Get()
	if err != nil {
		logger.L().Error(err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var queries *db.Queries
	if cfg.StorageEnabled() {
		if queries, err = db.OpenDatabase(cfg.DBFile); err != nil {
			logger.L().Error(err)
			return 1
		}
		defer queries.Close()
	}

	var pub *safe_mqtt.Publisher
	if cfg.MQTTConfig.Enabled {
		client, err := safe_mqtt.InitMQTTClient(cfg.MQTTConfig.URL, "geoheat-"+uuid.New().String(), cfg.MQTTConfig.ConnectAttempts)
		if err != nil {
			logger.L().Warnf("Publishing disabled: %v", err)
		} else {
			pub = safe_mqtt.NewPublisher(client, cfg.MQTTConfig.Topic)
			defer pub.Close()
		}
	}

	c := internal.NewSimulationController(cfg, queries, pub, os.Stdout)
	if _, err := c.Run(ctx); err != nil {
		logger.L().Error(err)
		return exitCode(err)
	}
	return 0
}

// exitCode is 2 for configuration errors, including parameters only found
// unusable once the model is built, and 1 for any other failure.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, ground.ErrInvalidGrid),
		errors.Is(err, ground.ErrSingularMatrix),
		errors.Is(err, heat_pump.ErrInvalidFloor):
		return 2
	}
	return 1
}
