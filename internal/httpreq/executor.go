package httpreq

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"

	"github.com/slok/tasks/internal/log"
)

// ApplyFunc receives the parsed JSON body of a successful request. A returned
// error is handled as a request failure.
type ApplyFunc func(data any) error

// ExecutorConfig is the configuration for the executor.
type ExecutorConfig struct {
	// HTTPClient is the underlying HTTP client, defaults to a new client.
	HTTPClient *http.Client
	// Headers are added to every request, descriptor headers take precedence.
	Headers map[string]string
	// Timeout of each request, zero means no timeout.
	Timeout time.Duration
	// CancelInFlight cancels the previous in flight request when a new one starts.
	CancelInFlight bool
	// OnStateChange is called with the state transitions in order, a transition
	// older than the last delivered one is dropped. It must not start requests
	// on the same executor.
	OnStateChange func(State)
	Logger        log.Logger
}

func (c *ExecutorConfig) defaults() error {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{}
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout can't be negative")
	}

	if c.OnStateChange == nil {
		c.OnStateChange = func(State) {}
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "httpreq.Executor"})

	return nil
}

// Executor performs HTTP requests and tracks the loading and error state of
// the latest one.
type Executor struct {
	client         *resty.Client
	cancelInFlight bool
	onStateChange  func(State)
	logger         log.Logger

	mu       sync.Mutex
	state    State
	version  uint64
	seq      uint64
	inFlight context.CancelFunc

	notifyMu sync.Mutex
	notified uint64
}

// NewExecutor returns a new executor.
func NewExecutor(cfg ExecutorConfig) (*Executor, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	client := resty.NewWithClient(cfg.HTTPClient).
		SetLogger(restyLogger{logger: cfg.Logger}).
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal).
		SetHeaders(cfg.Headers)
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &Executor{
		client:         client,
		cancelInFlight: cfg.CancelInFlight,
		onStateChange:  cfg.OnStateChange,
		logger:         cfg.Logger,
	}, nil
}

// State returns a snapshot of the current state.
func (e *Executor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Do performs the request and returns its result.
func (e *Executor) Do(ctx context.Context, d Descriptor) Result {
	ctx, id, release := e.start(ctx)
	defer release()

	res := e.do(ctx, d)
	e.finish(id, res.Err)

	return res
}

// Send performs the request and calls apply with the parsed response body when
// it succeeds. It returns the failure, if any, that was set on the state.
func (e *Executor) Send(ctx context.Context, d Descriptor, apply ApplyFunc) error {
	ctx, id, release := e.start(ctx)
	defer release()

	res := e.do(ctx, d)
	if res.Err == nil && apply != nil {
		res.Err = apply(res.Data)
	}
	e.finish(id, res.Err)

	return res.Err
}

func (e *Executor) start(ctx context.Context) (context.Context, uint64, func()) {
	ctx, cancel := context.WithCancel(ctx)

	e.mu.Lock()
	if e.cancelInFlight && e.inFlight != nil {
		e.logger.Debugf("canceling in flight request %d", e.seq)
		e.inFlight()
	}
	e.seq++
	id := e.seq
	e.inFlight = cancel
	e.state = State{IsLoading: true}
	e.version++
	state, version := e.state, e.version
	e.mu.Unlock()

	e.notify(version, state)

	release := func() {
		e.mu.Lock()
		if e.seq == id {
			e.inFlight = nil
		}
		e.mu.Unlock()
		cancel()
	}

	return ctx, id, release
}

func (e *Executor) finish(id uint64, err error) {
	e.mu.Lock()
	// A newer request owns the state.
	if e.seq != id {
		e.mu.Unlock()
		e.logger.Debugf("request %d superseded by %d, state not updated", id, e.seq)
		return
	}
	e.state = State{IsLoading: false, Error: ErrorMessage(err)}
	e.version++
	state, version := e.state, e.version
	e.mu.Unlock()

	e.notify(version, state)
}

// notify delivers a state transition unless a newer one was already delivered,
// so the observer always ends on the current state.
func (e *Executor) notify(version uint64, state State) {
	e.notifyMu.Lock()
	defer e.notifyMu.Unlock()

	if version <= e.notified {
		return
	}
	e.notified = version
	e.onStateChange(state)
}

func (e *Executor) do(ctx context.Context, d Descriptor) Result {
	d = d.withDefaults()
	if err := d.validate(); err != nil {
		return Result{Err: fmt.Errorf("invalid request: %w", err)}
	}

	logger := e.logger.WithValues(log.Kv{"method": d.Method, "url": d.URL})

	req := e.client.R().
		SetContext(ctx).
		SetHeaders(d.Headers)
	if d.Body != nil {
		body, err := sonic.Marshal(d.Body)
		if err != nil {
			return Result{Err: fmt.Errorf("could not serialize body: %w", err)}
		}
		req.SetBody(body)
	}

	logger.Debugf("executing request")
	resp, err := req.Execute(d.Method, d.URL)
	if err != nil {
		logger.Debugf("request could not be executed: %s", err)
		return Result{Err: err}
	}

	if !resp.IsSuccess() {
		logger.Warningf("request failed with status %d", resp.StatusCode())
		return Result{
			StatusCode: resp.StatusCode(),
			Raw:        resp.Body(),
			Err:        &RequestError{StatusCode: resp.StatusCode()},
		}
	}

	raw := resp.Body()
	var data any
	if err := sonic.Unmarshal(raw, &data); err != nil {
		return Result{
			StatusCode: resp.StatusCode(),
			Raw:        raw,
			Err:        fmt.Errorf("could not parse response: %w", err),
		}
	}

	return Result{
		Data:       data,
		Raw:        raw,
		StatusCode: resp.StatusCode(),
	}
}

// restyLogger adapts log.Logger to the resty logger.
type restyLogger struct {
	logger log.Logger
}

func (r restyLogger) Errorf(format string, v ...any) { r.logger.Errorf(format, v...) }
func (r restyLogger) Warnf(format string, v ...any)  { r.logger.Warningf(format, v...) }
func (r restyLogger) Debugf(format string, v ...any) { r.logger.Debugf(format, v...) }

// Sender is the interface of a request executor.
type Sender interface {
	Do(ctx context.Context, d Descriptor) Result
	Send(ctx context.Context, d Descriptor, apply ApplyFunc) error
	State() State
}

var _ Sender = &Executor{}
