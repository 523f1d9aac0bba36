package async

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

type BrokerTopicName string

type BrokerMessage struct {
	Event string
	Value any
	Span  trace.Span
	Error error
}

type InternalBroker interface {
	Subscribe(topic BrokerTopicName) (Subscription, error)
	Unsubscribe(topic BrokerTopicName, subscription Subscription) error
	Publish(ctx context.Context, topic BrokerTopicName, msg BrokerMessage) error
	Stop()
}

//go:generate mockgen -source=internal_broker.go -destination=../../../test/unit/doubles/infra/async/internal_broker_mock.go -package=async -mock_names=InternalBroker=MockInternalBroker

var _ InternalBroker = (*LocalBroker)(nil)

var ErrTopicNotFound = errors.New("topic not found")
var ErrSubscriptorNotFound = errors.New("subscriptor not found")

func NewLocalBroker() *LocalBroker {
	return &LocalBroker{
		subscriptors: make(map[BrokerTopicName][]*subscriptor),
	}
}

// LocalBroker is an in-process fan-out. Every Publish is delivered
// asynchronously; a subscriber that is closed mid-delivery is skipped.
type LocalBroker struct {
	mu           sync.RWMutex
	subscriptors map[BrokerTopicName][]*subscriptor
}

type subscriptor struct {
	once         sync.Once
	mu           sync.RWMutex
	active       bool
	closed       chan struct{}
	subscription Subscription
}

type Subscription struct {
	ID       string
	Receiver chan BrokerMessage
}

func (b *LocalBroker) Subscribe(topic BrokerTopicName) (Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subscriptors := slices.DeleteFunc(b.subscriptors[topic], func(s *subscriptor) bool {
		return !s.isActive()
	})

	subscription := Subscription{ID: uuid.NewString(), Receiver: make(chan BrokerMessage)}
	subscriptors = append(subscriptors, &subscriptor{
		subscription: subscription,
		active:       true,
		closed:       make(chan struct{}),
	})
	b.subscriptors[topic] = subscriptors
	return subscription, nil
}

func (b *LocalBroker) Unsubscribe(topic BrokerTopicName, subscription Subscription) error {
	b.mu.RLock()
	subscriptors, ok := b.subscriptors[topic]
	b.mu.RUnlock()
	if !ok {
		return ErrTopicNotFound
	}

	index := slices.IndexFunc(subscriptors, func(s *subscriptor) bool { return s.subscription.ID == subscription.ID })
	if index < 0 {
		return ErrSubscriptorNotFound
	}

	subscriptors[index].safeClose()
	return nil
}

func (b *LocalBroker) Publish(ctx context.Context, topic BrokerTopicName, msg BrokerMessage) error {
	msg.Span = trace.SpanFromContext(ctx)

	b.mu.RLock()
	topicSubscriptors, ok := b.subscriptors[topic]
	targets := slices.Clone(topicSubscriptors)
	b.mu.RUnlock()
	if !ok {
		return ErrTopicNotFound
	}

	go b.publish(targets, msg)
	return nil
}

func (b *LocalBroker) publish(topicSubscriptors []*subscriptor, msg BrokerMessage) {
	for _, s := range topicSubscriptors {
		s.deliver(msg)
	}
}

func (b *LocalBroker) Stop() {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, subscriptors := range b.subscriptors {
		for _, s := range subscriptors {
			s.safeClose()
		}
	}
}

func (s *subscriptor) isActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *subscriptor) deliver(msg BrokerMessage) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.active {
		return
	}
	select {
	case s.subscription.Receiver <- msg:
	case <-s.closed:
	}
}

// safeClose unblocks pending deliveries before taking the write lock, so the
// receiver is never closed while a send is in flight.
func (s *subscriptor) safeClose() {
	s.once.Do(func() {
		close(s.closed)
		s.mu.Lock()
		s.active = false
		close(s.subscription.Receiver)
		s.mu.Unlock()
	})
}
