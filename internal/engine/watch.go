package engine

import (
	"context"
	"sync"
)

const watchQueueSize = 256

// Watcher turns external change notifications into pipeline runs. Each
// monitored root gets one worker and a bounded queue; a path notified again
// while still queued is coalesced into the pending scan rather than queued
// twice.
type Watcher struct {
	eng *Engine

	mu      sync.Mutex
	pending map[string]map[string]bool // root -> rel -> queued
	queues  map[string]chan string

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// Watch starts one worker per configured root and returns the running
// watcher. Stop must be called to shut it down.
func (e *Engine) Watch(ctx context.Context) *Watcher {
	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		eng:     e,
		pending: map[string]map[string]bool{},
		queues:  map[string]chan string{},
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, root := range e.cfg.Roots {
		root := root
		w.pending[root] = map[string]bool{}
		q := make(chan string, watchQueueSize)
		w.queues[root] = q
		w.wg.Add(1)
		go w.run(root, q)
	}
	return w
}

// Notify reports that rel under root changed (created, written, or deleted).
// It never blocks: a duplicate notification for a queued path coalesces, and
// a full queue drops the notification and counts it as coalesced too, since
// the next pass will pick the file up.
func (w *Watcher) Notify(root, rel string) {
	w.mu.Lock()
	p, ok := w.pending[root]
	if !ok {
		w.mu.Unlock()
		return
	}
	if p[rel] {
		w.eng.coalesced.Add(1)
		w.mu.Unlock()
		return
	}
	p[rel] = true
	w.mu.Unlock()

	select {
	case w.queues[root] <- rel:
	default:
		w.mu.Lock()
		delete(p, rel)
		w.mu.Unlock()
		w.eng.coalesced.Add(1)
	}
}

func (w *Watcher) run(root string, q chan string) {
	defer w.wg.Done()
	for {
		// shutdown wins over a backlog: queued-but-unstarted paths are
		// abandoned, only the scan already in flight runs to completion
		select {
		case <-w.ctx.Done():
			return
		default:
		}
		select {
		case <-w.ctx.Done():
			return
		case rel := <-q:
			w.take(root, rel)
			w.eng.ScanFile(w.ctx, root, rel)
		}
	}
}

// take clears the pending mark so later notifications for the path enqueue a
// fresh scan. Clearing before scanning means an edit racing the scan is never
// lost, at worst the file is scanned twice.
func (w *Watcher) take(root, rel string) {
	w.mu.Lock()
	delete(w.pending[root], rel)
	w.mu.Unlock()
}

// Stop abandons queued work, waits for in-flight scans, and flushes caches.
func (w *Watcher) Stop() {
	w.once.Do(func() {
		w.cancel()
		w.wg.Wait()
		w.eng.saveCaches()
	})
}
