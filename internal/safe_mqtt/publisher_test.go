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
	"encoding/json"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeToken struct {
	done    bool
	err     error
	channel chan struct{}
}

func newFakeToken(done bool, err error) *fakeToken {
	t := &fakeToken{done: done, err: err, channel: make(chan struct{})}
	if done {
		close(t.channel)
	}
	return t
}

func (t *fakeToken) Wait() bool                     { return t.done }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return t.done }
func (t *fakeToken) Done() <-chan struct{}          { return t.channel }
func (t *fakeToken) Error() error                   { return t.err }

type published struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

type fakeClient struct {
	token  mqtt.Token
	sent   []published
	closed bool
}

func (c *fakeClient) SafePublish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.sent = append(c.sent, published{topic, qos, retained, payload.([]byte)})
	return c.token
}

func (c *fakeClient) Close() { c.closed = true }

func TestPublishJSON(t *testing.T) {
	c := &fakeClient{token: newFakeToken(true, nil)}
	p := NewPublisher(c, "geoheat")

	require.NoError(t, p.PublishJSON("summary", map[string]float64{"total_cost": 12.5}))
	require.Len(t, c.sent, 1)
	assert.Equal(t, "geoheat/summary", c.sent[0].topic)
	assert.Equal(t, byte(1), c.sent[0].qos)
	assert.True(t, c.sent[0].retained)

	var got map[string]float64
	require.NoError(t, json.Unmarshal(c.sent[0].payload, &got))
	assert.Equal(t, 12.5, got["total_cost"])

	p.Close()
	assert.True(t, c.closed)
}

func TestPublishJSONErrors(t *testing.T) {
	broker := errors.New("not authorized")
	p := NewPublisher(&fakeClient{token: newFakeToken(true, broker)}, "geoheat")
	err := p.PublishJSON("summary", 1)
	assert.True(t, errors.Is(err, broker))

	p = NewPublisher(&fakeClient{token: newFakeToken(false, nil)}, "geoheat")
	assert.Error(t, p.PublishJSON("summary", 1))

	p = NewPublisher(&fakeClient{token: newFakeToken(true, nil)}, "geoheat")
	assert.Error(t, p.PublishJSON("summary", make(chan int)))
}

func TestTopic(t *testing.T) {
	p := NewPublisher(&fakeClient{}, "base")
	assert.Equal(t, "base", p.Topic(""))
	assert.Equal(t, "base/ranking/1", p.Topic("ranking/1"))
}
