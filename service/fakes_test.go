package service

import (
	"catalog-service/dto"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"
)

type memoryKV struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryKV() *memoryKV {
	return &memoryKV{values: map[string]string{}}
}

func (m *memoryKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryKV) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

type sentMail struct {
	to, subject, body string
}

type recordingMailer struct {
	sent []sentMail
	err  error
}

func (m *recordingMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type memoryStorage struct {
	objects map[string]string
	removed []string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: map[string]string{}}
}

func (s *memoryStorage) Put(ctx context.Context, objectName string, upload dto.Upload) error {
	r, err := upload.Open()
	if err != nil {
		return err
	}
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[objectName] = string(b)
	return nil
}

func (s *memoryStorage) Remove(ctx context.Context, objectName string) error {
	delete(s.objects, objectName)
	s.removed = append(s.removed, objectName)
	return nil
}

type published struct {
	routingKey string
	message    any
}

type recordingPublisher struct {
	messages []published
	err      error
}

func (p *recordingPublisher) Publish(ctx context.Context, routingKey string, message any) error {
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, published{routingKey: routingKey, message: message})
	return nil
}

type fakeGateway struct {
	amounts []int64
	err     error
}

func (g *fakeGateway) CreatePaymentIntent(ctx context.Context, amount int64) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	g.amounts = append(g.amounts, amount)
	return "pi_secret_test", nil
}

var errBoom = errors.New("boom")

func upload(name, contentType, body string) *dto.Upload {
	return &dto.Upload{
		Name:        name,
		Size:        int64(len(body)),
		ContentType: contentType,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}
