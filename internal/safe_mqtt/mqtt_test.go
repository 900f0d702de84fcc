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
	"testing"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type flakyBroker struct {
	mqtt.Client
	failures int
	calls    int
}

func (b *flakyBroker) Connect() mqtt.Token {
	b.calls++
	if b.calls <= b.failures {
		return newFakeToken(true, errors.New("connection refused"))
	}
	return newFakeToken(true, nil)
}

func TestConnectRetries(t *testing.T) {
	b := &flakyBroker{failures: 2}
	assert.NoError(t, connectMQTT(b, 3, 0))
	assert.Equal(t, 3, b.calls)
}

func TestConnectGivesUp(t *testing.T) {
	b := &flakyBroker{failures: 5}
	err := connectMQTT(b, 3, 0)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, 3, b.calls)
}
