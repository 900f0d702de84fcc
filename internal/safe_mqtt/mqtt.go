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

package safe_mqtt

import (
	"sync"
	"time"

	"github.com/antst/geoheat/internal/logger"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
)

const (
	reconnectInterval = 2 * time.Second
	disconnectQuiesce = 250 // ms
)

// MqttClient is bridge between our app and MQTT
type MqttClient interface {
	SafePublish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Close()
}

type mqttClient struct {
	mutex sync.Mutex
	mqtt  mqtt.Client
}

var (
	connectHandler = func(client mqtt.Client) {
		or := client.OptionsReader()
		logger.L().Infof("Connected to MQTT broker: %v as %s", or.Servers(), or.ClientID())
	}

	connectLostHandler = func(client mqtt.Client, err error) {
		logger.L().Warnf("Connection to MQTT broker lost: %v", err)
	}
)

// InitMQTTClient connects to the broker, giving up after attempts failed
// connections.
func InitMQTTClient(url, clientID string, attempts int) (MqttClient, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(url).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetMaxReconnectInterval(reconnectInterval)

	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if err := connectMQTT(client, attempts, reconnectInterval); err != nil {
		return nil, err
	}

	return &mqttClient{
		mqtt: client,
	}, nil
}

func connectMQTT(client mqtt.Client, attempts int, interval time.Duration) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 1; i <= attempts; i++ {
		token := client.Connect()
		if token.Wait() && token.Error() == nil {
			return nil
		}
		err = token.Error()
		if i < attempts {
			logger.L().Warnf("Connection failed (%d/%d), retrying in %v: %v", i, attempts, interval, err)
			time.Sleep(interval)
		}
	}
	return errors.Wrapf(err, "MQTT connect failed after %d attempts", attempts)
}

func (m *mqttClient) SafePublish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.mqtt.Publish(topic, qos, retained, payload)
}

func (m *mqttClient) Close() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.mqtt.Disconnect(disconnectQuiesce)
}
