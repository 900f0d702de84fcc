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

const (
	defaultMQTTURL         = "tcp://127.0.0.1:1883"
	defaultTopic           = "geoheat"
	defaultConnectAttempts = 3
)

type MQTTConfig struct {
	Enabled         bool   `yaml:"enabled"`
	URL             string `yaml:"url"`
	Topic           string `yaml:"topic"`
	ConnectAttempts int    `yaml:"connect_attempts"`
}

func NewMQTTConfig() *MQTTConfig {
	cfg := &MQTTConfig{}
	cfg.FillDefaults()
	return cfg
}

func (c *MQTTConfig) FillDefaults() {
	if c.URL == "" {
		c.URL = defaultMQTTURL
	}
	if c.Topic == "" {
		c.Topic = defaultTopic
	}
	if c.ConnectAttempts == 0 {
		c.ConnectAttempts = defaultConnectAttempts
	}
}
