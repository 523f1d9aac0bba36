package mqtt

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const (
	_defaultRetained = false
	_tokenTimeout    = 5 * time.Second
	_disconnectQuiet = 250 // milliseconds
)

var ErrTokenTimeout = errors.New("mqtt operation timed out")

//go:generate mockgen -source=client.go -destination=../../../test/unit/doubles/infra/mqtt/client_mock.go -package=mqtt -mock_names=Client=MockClient

type Client interface {
	Subscribe(topic string, qos byte, callback MessageHandler) error
	Unsubscribe(topic string) error
	Publish(topic string, qos byte, payload string) error

	Disconnect()
}

type SimpleClientOpts struct {
	Broker   string
	ClientID string
	Username string
	Password string
}

type subscription struct {
	topic    string
	qos      byte
	callback MessageHandler
}

// NewSimpleClient connects to the broker and keeps every subscription alive
// across reconnects.
func NewSimpleClient(opts SimpleClientOpts) (*SimpleClient, error) {
	simpleClient := newSimpleClient(nil)

	pahoOpts := paho.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetUsername(opts.Username).
		SetPassword(opts.Password).
		SetOnConnectHandler(func(client paho.Client) {
			slog.Info("connected to MQTT broker", slog.String("broker", opts.Broker))
			simpleClient.resubscribeAll(client)
		}).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			slog.Error("connection lost to MQTT broker", slog.Any("error", err))
		}).
		SetAutoReconnect(true).
		SetKeepAlive(10 * time.Second).
		SetConnectTimeout(5 * time.Second)

	client := paho.NewClient(pahoOpts)
	if err := wait(client.Connect()); err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", opts.Broker, err)
	}

	simpleClient.client = client
	return simpleClient, nil
}

func newSimpleClient(client paho.Client) *SimpleClient {
	return &SimpleClient{
		client:        client,
		subscriptions: make(map[string]subscription),
	}
}

var _ Client = (*SimpleClient)(nil)

type SimpleClient struct {
	client        paho.Client
	subscriptions map[string]subscription
	mu            sync.RWMutex
}

func (c *SimpleClient) resubscribeAll(client paho.Client) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.subscriptions) == 0 {
		return
	}

	slog.Info("restoring MQTT subscriptions", slog.Int("count", len(c.subscriptions)))
	for _, sub := range c.subscriptions {
		if err := wait(client.Subscribe(sub.topic, sub.qos, c.pahoHandler(sub.callback))); err != nil {
			slog.Error("restoring subscription", slog.String("topic", sub.topic), slog.Any("error", err))
		}
	}
}

func (c *SimpleClient) Subscribe(topic string, qos byte, callback MessageHandler) error {
	c.mu.Lock()
	c.subscriptions[topic] = subscription{topic: topic, qos: qos, callback: callback}
	c.mu.Unlock()

	if err := wait(c.client.Subscribe(topic, qos, c.pahoHandler(callback))); err != nil {
		c.mu.Lock()
		delete(c.subscriptions, topic)
		c.mu.Unlock()
		return fmt.Errorf("subscribing to topic %s: %w", topic, err)
	}

	slog.Debug("subscribed to MQTT topic", slog.String("topic", topic), slog.Int("qos", int(qos)))
	return nil
}

func (c *SimpleClient) Unsubscribe(topic string) error {
	c.mu.Lock()
	delete(c.subscriptions, topic)
	c.mu.Unlock()

	if err := wait(c.client.Unsubscribe(topic)); err != nil {
		return fmt.Errorf("unsubscribing from topic %s: %w", topic, err)
	}
	return nil
}

// Publish sends payload as-is; peripherals expect plain action strings.
func (c *SimpleClient) Publish(topic string, qos byte, payload string) error {
	if err := wait(c.client.Publish(topic, qos, _defaultRetained, payload)); err != nil {
		return fmt.Errorf("publishing to topic %s: %w", topic, err)
	}
	return nil
}

func (c *SimpleClient) Disconnect() {
	c.mu.Lock()
	c.subscriptions = make(map[string]subscription)
	c.mu.Unlock()

	c.client.Disconnect(_disconnectQuiet)
}

func (c *SimpleClient) pahoHandler(callback MessageHandler) paho.MessageHandler {
	return func(_ paho.Client, msg paho.Message) {
		callback(c, msg)
	}
}

func wait(token paho.Token) error {
	if !token.WaitTimeout(_tokenTimeout) {
		return ErrTokenTimeout
	}
	return token.Error()
}

type MessageHandler func(Client, Message)

type Message interface {
	Topic() string
	MessageID() uint16
	Payload() []byte
	Ack()
}
