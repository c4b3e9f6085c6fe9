package loki

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"
)

var (
	ErrStopped    = errors.New("loki pusher is stopped")
	ErrBufferFull = errors.New("loki pusher buffer is full")
)

type Logger interface {
	Error(msg string, args ...any)
}

type Config struct {

	// TenantKey and TenantValue form an optional tenant header for multi-tenant Loki.
	TenantKey   string
	TenantValue string

	// Url of the push endpoint, e.g. https://example.grafana.net/loki/api/v1/push
	Url string `validate:"required,url"`

	// BatchMaxSize is the maximum number of log lines sent in one request.
	BatchMaxSize int `validate:"gte=1"`

	// BatchMaxWait is the longest a line waits in the batch before it is sent.
	BatchMaxWait time.Duration `validate:"gte=1"`

	// BufferSize bounds the queue between Push and the sender; Push fails when it is full.
	BufferSize int `validate:"gte=1"`

	// Labels are attached to every stream.
	Labels map[string]string

	// Username and Password enable basic auth when both are set.
	Username string
	Password string

	Timeout time.Duration
}

func (cfg *Config) setDefaults() {
	if cfg.BatchMaxSize == 0 {
		cfg.BatchMaxSize = 1000
	}
	if cfg.BatchMaxWait == 0 {
		cfg.BatchMaxWait = 5 * time.Second
	}
	if cfg.BufferSize == 0 {
		cfg.BufferSize = 4096
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Labels == nil {
		cfg.Labels = map[string]string{}
	}
}

// Pusher batches log entries and ships them to Loki from a single goroutine.
type Pusher struct {
	config  *Config
	client  *http.Client
	entries chan LogEntry
	quit    chan struct{}
	done    chan struct{}
	once    sync.Once
	logger  Logger
	batch   map[string][]streamValue
	size    int
}

type LogEntry struct {
	Level   string         `json:"level"`
	Message string         `json:"msg"`
	Caller  string         `json:"caller,omitempty"`
	Fields  map[string]any `json:"fields,omitempty"`
	Time    time.Time      `json:"-"`
}

type pushRequest struct {
	Streams []stream `json:"streams"`
}

type stream struct {
	Stream map[string]string `json:"stream"`
	Values []streamValue     `json:"values"`
}

type streamValue []string

func New(cfg Config, logger Logger) (*Pusher, error) {

	cfg.setDefaults()
	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}

	p := &Pusher{
		config:  &cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		entries: make(chan LogEntry, cfg.BufferSize),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
		logger:  logger,
		batch:   map[string][]streamValue{},
	}

	go p.run()
	return p, nil
}

// Push queues the entry without blocking the caller.
func (p *Pusher) Push(e LogEntry) error {
	select {
	case <-p.quit:
		return ErrStopped
	default:
	}

	if e.Time.IsZero() {
		e.Time = time.Now()
	}

	select {
	case p.entries <- e:
		return nil
	default:
		return ErrBufferFull
	}
}

// Stop flushes queued entries and waits for the last request to finish.
func (p *Pusher) Stop() {
	p.once.Do(func() { close(p.quit) })
	<-p.done
}

func (p *Pusher) run() {
	defer close(p.done)

	ticker := time.NewTicker(p.config.BatchMaxWait)
	defer ticker.Stop()

	for {
		select {
		case <-p.quit:
			p.drain()
			p.flush()
			return
		case entry := <-p.entries:
			p.add(entry)
			if p.size >= p.config.BatchMaxSize {
				p.flush()
			}
		case <-ticker.C:
			p.flush()
		}
	}
}

func (p *Pusher) drain() {
	for {
		select {
		case entry := <-p.entries:
			p.add(entry)
		default:
			return
		}
	}
}

func (p *Pusher) add(entry LogEntry) {
	line, err := json.Marshal(entry)
	if err != nil {
		p.logger.Error("failed to encode log entry", "error", err)
		return
	}
	timestamp := strconv.FormatInt(entry.Time.UnixNano(), 10)
	p.batch[entry.Level] = append(p.batch[entry.Level], streamValue{timestamp, string(line)})
	p.size++
}

func (p *Pusher) flush() {
	if p.size == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.config.Timeout)
	defer cancel()

	if err := p.send(ctx); err != nil {
		p.logger.Error("failed to send logs", "error", err, "lines", p.size)
	}
	p.batch = map[string][]streamValue{}
	p.size = 0
}

func (p *Pusher) streams() []stream {
	streams := make([]stream, 0, len(p.batch))
	for level, values := range p.batch {
		labels := make(map[string]string, len(p.config.Labels)+1)
		for k, v := range p.config.Labels {
			labels[k] = v
		}
		labels["level"] = level
		streams = append(streams, stream{Stream: labels, Values: values})
	}
	return streams
}

func (p *Pusher) send(ctx context.Context) error {
	buf := &bytes.Buffer{}
	gz := gzip.NewWriter(buf)

	if err := json.NewEncoder(gz).Encode(pushRequest{Streams: p.streams()}); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.Url, buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")

	if p.config.TenantKey != "" {
		req.Header.Set(p.config.TenantKey, p.config.TenantValue)
	}
	if p.config.Username != "" && p.config.Password != "" {
		req.SetBasicAuth(p.config.Username, p.config.Password)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected response code from Loki: %s, body: %s", resp.Status, string(body))
	}

	return nil
}
