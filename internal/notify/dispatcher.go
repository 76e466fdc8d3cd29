package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Result is the outcome of one dispatched delivery.
type Result struct {
	Seq       uint64
	Email     string
	Delivered bool
	Status    string
}

// Dispatcher runs deliveries off the tick loop.
// Results are collected with Poll, which never blocks.
type Dispatcher struct {
	notifier Notifier
	timeout  time.Duration
	logger   *log.Logger

	results chan Result
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

const resultBuffer = 16

// NewDispatcher wraps n. A zero timeout means 12 seconds; a nil logger discards.
func NewDispatcher(n Notifier, timeout time.Duration, logger *log.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 12 * time.Second
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		notifier: n,
		timeout:  timeout,
		logger:   logger,
		results:  make(chan Result, resultBuffer),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Dispatch starts delivering code to email in the background.
func (d *Dispatcher) Dispatch(seq uint64, email, code string) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		res := Result{Seq: seq, Email: email}
		res.Delivered, res.Status = d.send(email, code)

		d.logger.Info("recovery delivery finished", "seq", seq, "email", email, "delivered", res.Delivered)
		select {
		case d.results <- res:
		default:
			d.logger.Warn("recovery result dropped, queue full", "seq", seq)
		}
	}()
}

func (d *Dispatcher) send(email, code string) (bool, string) {
	ctx, cancel := context.WithTimeout(d.ctx, d.timeout)
	defer cancel()

	type outcome struct {
		delivered bool
		status    string
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error("notifier panicked", "panic", fmt.Sprint(r))
				done <- outcome{false, StatusSendFailed}
			}
		}()
		delivered, status := d.notifier.Send(ctx, email, code)
		done <- outcome{delivered, status}
	}()

	// A notifier that ignores ctx still cannot hold the result past the timeout.
	select {
	case o := <-done:
		return o.delivered, o.status
	case <-ctx.Done():
		return false, StatusSendFailed
	}
}

// Poll returns one finished result if any is ready.
func (d *Dispatcher) Poll() (Result, bool) {
	select {
	case r := <-d.results:
		return r, true
	default:
		return Result{}, false
	}
}

// Close cancels in-flight deliveries and waits for their goroutines.
func (d *Dispatcher) Close() {
	d.cancel()
	d.wg.Wait()
}
