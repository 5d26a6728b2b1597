package publish

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/dnazarov/avatar-twin-engine/internal/avatar"
	"github.com/dnazarov/avatar-twin-engine/internal/envdata"
)

// MQTTPublisher pushes computed avatar states to an MQTT broker so mobile
// clients can subscribe instead of polling.
type MQTTPublisher struct {
	client      mqtt.Client
	topicPrefix string
}

// NewMQTTPublisher connects to the broker and returns a ready publisher.
func NewMQTTPublisher(brokerURL, clientID, topicPrefix string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)

	opts.OnConnect = func(c mqtt.Client) {
		log.Printf("INFO: connected to MQTT broker %s", brokerURL)
	}
	opts.OnConnectionLost = func(c mqtt.Client, err error) {
		log.Printf("ERROR: MQTT connection lost: %v", err)
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect to mqtt broker: %w", token.Error())
	}

	return &MQTTPublisher{
		client:      client,
		topicPrefix: topicPrefix,
	}, nil
}

// PublishState publishes the avatar state as retained JSON so late
// subscribers immediately receive the last known state.
func (p *MQTTPublisher) PublishState(loc envdata.Location, state avatar.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal avatar state: %w", err)
	}

	topic := fmt.Sprintf("%s/%s/state", p.topicPrefix, topicKey(loc))
	token := p.client.Publish(topic, 0, true, payload)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("publish to %s: %w", topic, token.Error())
	}
	return nil
}

// Close disconnects from the broker, allowing in-flight messages to drain.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}

// topicKey flattens a location into a topic segment: spaces collapse to
// dashes, slashes are stripped.
func topicKey(loc envdata.Location) string {
	k := strings.ToLower(loc.City + "-" + loc.Country)
	k = strings.ReplaceAll(k, " ", "-")
	return strings.ReplaceAll(k, "/", "")
}
