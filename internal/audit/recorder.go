package audit

import (
	"sync"
	"sync/atomic"
	"time"
)

// RecorderOptions tunes the asynchronous recorder.
type RecorderOptions struct {
	QueueSize int           // bounded buffer; 0 means 256
	Retries   int           // write attempts per record; 0 means 3
	Backoff   time.Duration // delay between attempts; 0 means 100ms
}

func (o RecorderOptions) withDefaults() RecorderOptions {
	if o.QueueSize <= 0 {
		o.QueueSize = 256
	}
	if o.Retries <= 0 {
		o.Retries = 3
	}
	if o.Backoff <= 0 {
		o.Backoff = 100 * time.Millisecond
	}
	return o
}

// Recorder decouples scanning from audit persistence. Enqueue never blocks:
// a full buffer evicts the oldest queued record to make room, and a record
// that exhausts its write retries is dropped. Both losses are counted.
// Scanning continues regardless of sink health.
type Recorder struct {
	sink    Sink
	opts    RecorderOptions
	queue   chan Record
	dropped atomic.Uint64
	once    sync.Once
	wg      sync.WaitGroup
}

func NewRecorder(sink Sink, opts RecorderOptions) *Recorder {
	opts = opts.withDefaults()
	r := &Recorder{
		sink:  sink,
		opts:  opts,
		queue: make(chan Record, opts.QueueSize),
	}
	r.wg.Add(1)
	go r.run()
	return r
}

// Enqueue hands a record to the background writer. A full buffer evicts the
// oldest queued record (counted) so the newest transition is kept. It reports
// false only if the record could not be queued at all.
func (r *Recorder) Enqueue(rec Record) bool {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	select {
	case r.queue <- rec:
		return true
	default:
	}
	select {
	case <-r.queue:
		r.dropped.Add(1)
	default:
	}
	select {
	case r.queue <- rec:
		return true
	default:
		r.dropped.Add(1)
		return false
	}
}

// Dropped returns how many records have been lost to a full buffer or a
// persistently failing sink since the recorder started.
func (r *Recorder) Dropped() uint64 { return r.dropped.Load() }

// Close drains the buffer, waits for the writer to finish, and closes the
// underlying sink. Enqueue must not be called after Close.
func (r *Recorder) Close() error {
	r.once.Do(func() { close(r.queue) })
	r.wg.Wait()
	return r.sink.Close()
}

func (r *Recorder) run() {
	defer r.wg.Done()
	for rec := range r.queue {
		r.write(rec)
	}
}

func (r *Recorder) write(rec Record) {
	for attempt := 0; attempt < r.opts.Retries; attempt++ {
		if attempt > 0 {
			time.Sleep(r.opts.Backoff)
		}
		if err := r.sink.Record(rec); err == nil {
			return
		}
	}
	r.dropped.Add(1)
}
