package watch

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/corkline/corkline/internal/boardfs"
)

// Poller is the polling backend, for platforms without a native change
// notification facility. It keeps a cache of relative path to last-modified
// timestamp built by a full directory walk; every tick re-walks and diffs
// against the cache. The board file is tracked by one separate timestamp,
// independent of the card-file cache. The tick interval is the coalescing
// window: everything that changed within one interval arrives as one batch.
type Poller struct {
	root     string
	interval time.Duration
	notify   Notify
	log      *logrus.Logger

	mu      sync.Mutex
	started bool
	quit    chan struct{}
	done    chan struct{}

	cache    map[string]time.Time
	boardMod time.Time
}

// NewPoller returns a polling backend bound to the board root. A nil logger
// falls back to the logrus standard logger.
func NewPoller(root string, interval time.Duration, notify Notify, log *logrus.Logger) *Poller {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Poller{root: root, interval: interval, notify: notify, log: log}
}

// Start primes the modification-time cache and begins ticking. Idempotent.
func (p *Poller) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return nil
	}

	// Prime the cache so the first tick reports only what changed after
	// Start, not every existing file as a creation.
	p.cache, p.boardMod = p.walk()

	p.quit = make(chan struct{})
	p.done = make(chan struct{})
	p.started = true
	go p.loop(p.quit, p.done)
	return nil
}

// Stop halts ticking. Idempotent; no notification is delivered after it
// returns.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return
	}
	close(p.quit)
	<-p.done
	p.started = false
}

func (p *Poller) loop(quit, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
			if batch := p.tick(); !batch.Empty() {
				p.notify(batch)
			}
		}
	}
}

// tick re-walks the board directory and diffs against the cache.
func (p *Poller) tick() Batch {
	current, boardMod := p.walk()
	events := make(map[string]bool)

	// New or newer paths are creations and modifications.
	for rel, mod := range current {
		prev, seen := p.cache[rel]
		if !seen || mod.After(prev) {
			events[filepath.Join(p.root, rel)] = false
		}
	}
	// Cached paths absent from the walk are deletions.
	for rel := range p.cache {
		if _, still := current[rel]; !still {
			events[filepath.Join(p.root, rel)] = true
		}
	}

	boardChanged := boardMod.After(p.boardMod)
	p.cache = current
	p.boardMod = boardMod
	return sortedBatch(events, boardChanged)
}

// walk builds a fresh {relative card path -> mtime} map plus the board
// file's own timestamp. Only markdown files directly under cards/<columnID>/
// participate; everything else, the archive directory included, is invisible
// to the poller.
func (p *Poller) walk() (map[string]time.Time, time.Time) {
	seen := make(map[string]time.Time)

	var boardMod time.Time
	if info, err := os.Stat(filepath.Join(p.root, boardfs.BoardFile)); err == nil {
		boardMod = info.ModTime()
	}

	cardsRoot := filepath.Join(p.root, boardfs.CardsDir)
	columns, err := os.ReadDir(cardsRoot)
	if err != nil {
		if !os.IsNotExist(err) {
			p.log.WithError(err).Warn("polling walk failed")
		}
		return seen, boardMod
	}
	for _, col := range columns {
		if !col.IsDir() {
			continue
		}
		files, err := os.ReadDir(filepath.Join(cardsRoot, col.Name()))
		if err != nil {
			p.log.WithError(err).WithField("column", col.Name()).Warn("polling column walk failed")
			continue
		}
		for _, file := range files {
			if file.IsDir() || !strings.HasSuffix(file.Name(), boardfs.MarkdownExt) {
				continue
			}
			info, err := file.Info()
			if err != nil {
				continue
			}
			rel := filepath.Join(boardfs.CardsDir, col.Name(), file.Name())
			seen[rel] = info.ModTime()
		}
	}
	return seen, boardMod
}
