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
	"time"

	"github.com/pkg/errors"
)

const publishTimeout = 10 * time.Second

// Publisher sends retained JSON documents below a base topic.
type Publisher struct {
	client  MqttClient
	topic   string
	timeout time.Duration
}

func NewPublisher(client MqttClient, topic string) *Publisher {
	return &Publisher{client: client, topic: topic, timeout: publishTimeout}
}

func (p *Publisher) Topic(sub string) string {
	if sub == "" {
		return p.topic
	}
	return p.topic + "/" + sub
}

func (p *Publisher) PublishJSON(sub string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "marshal %s", p.Topic(sub))
	}

	token := p.client.SafePublish(p.Topic(sub), 1, true, payload)
	if !token.WaitTimeout(p.timeout) {
		return errors.Errorf("publish to %s timed out after %v", p.Topic(sub), p.timeout)
	}
	return errors.Wrapf(token.Error(), "publish to %s", p.Topic(sub))
}

func (p *Publisher) Close() {
	p.client.Close()
}
