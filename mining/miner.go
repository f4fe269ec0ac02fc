package mining

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	bc "minichain/blockchain"

	"go.dedis.ch/onet/v3/log"
	"golang.org/x/xerrors"
)

const (
	// maxNonce is the maximum value a nonce can be in a block header.
	maxNonce = ^uint64(0)

	// checkInterval is how many nonces a worker tries between checks for
	// an early quit.
	checkInterval = 1 << 10
)

var (
	// ErrBusy is returned when Seal is called while a search is running.
	ErrBusy = xerrors.New("miner already running")
	// ErrStopped is returned when Stop interrupts a search.
	ErrStopped = xerrors.New("miner stopped")
)

// Miner seals drafts by splitting the nonce space between several
// workers. Worker i tries the nonces i, i+W, i+2W, ... and the first
// solution found stops all the others.
type Miner struct {
	sync.Mutex
	Difficulty bc.Difficulty
	// MaxAttempts bounds the total number of hashes over all workers;
	// 0 is unbounded.
	MaxAttempts uint64
	Workers     int

	started bool
	quit    chan struct{}
}

var _ bc.Sealer = (*Miner)(nil)

// New returns a miner; workers <= 0 uses one worker per CPU.
func New(difficulty bc.Difficulty, workers int, maxAttempts uint64) *Miner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Miner{
		Difficulty:  difficulty,
		Workers:     workers,
		MaxAttempts: maxAttempts,
	}
}

// search is the state shared by the workers of one Seal call.
type search struct {
	// 64-bit fields first for atomic alignment.
	nonce    uint64
	attempts uint64
	found    uint32
	draft    *bc.Draft
	quit     chan struct{}
}

// Seal blocks until a worker finds a nonce, the attempt bound is reached,
// ctx is done or Stop is called.
func (m *Miner) Seal(ctx context.Context, draft *bc.Draft) (*bc.Block, error) {
	if err := m.Difficulty.Validate(); err != nil {
		return nil, err
	}
	quit, err := m.start()
	if err != nil {
		return nil, err
	}
	defer m.finish()

	s := &search{
		draft: draft,
		quit:  make(chan struct{}),
	}
	workers := m.Workers
	if workers <= 0 {
		workers = 1
	}
	log.Lvlf3("Starting %d mining worker(s) for block %d", workers, draft.Index())

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(first uint64) {
			defer wg.Done()
			m.solveBlock(s, first, uint64(workers))
		}(uint64(i))
	}
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	var stopErr error
	select {
	case <-done:
	case <-ctx.Done():
		stopErr = ctx.Err()
	case <-quit:
		stopErr = ErrStopped
	}
	s.stop()
	<-done

	if atomic.LoadUint32(&s.found) == 1 {
		nonce := atomic.LoadUint64(&s.nonce)
		if err := draft.SetNonce(nonce); err != nil {
			return nil, err
		}
		log.Lvlf3("Block %d solved with nonce %d after %d attempts", draft.Index(), nonce,
			atomic.LoadUint64(&s.attempts))
		return draft.Seal(m.Difficulty)
	}
	if stopErr != nil {
		return nil, xerrors.Errorf("block %d: %w", draft.Index(), stopErr)
	}
	return nil, xerrors.Errorf("no nonce for block %d after %d attempts: %w",
		draft.Index(), atomic.LoadUint64(&s.attempts), bc.ErrSealFailure)
}

func (s *search) stop() {
	select {
	case <-s.quit:
	default:
		close(s.quit)
	}
}

// solveBlock walks the nonces first, first+step, ... until one meets the
// difficulty or the search is over.
func (m *Miner) solveBlock(s *search, first, step uint64) {
	for nonce := first; ; nonce += step {
		if (nonce/step)%checkInterval == 0 {
			select {
			case <-s.quit:
				return
			default:
			}
		}
		if atomic.LoadUint32(&s.found) == 1 {
			return
		}
		attempts := atomic.AddUint64(&s.attempts, 1)
		if m.MaxAttempts > 0 && attempts > m.MaxAttempts {
			return
		}
		// The block is solved when the hash has enough leading zeros.
		if m.Difficulty.Satisfied(s.draft.HashAt(nonce)) {
			if atomic.CompareAndSwapUint32(&s.found, 0, 1) {
				atomic.StoreUint64(&s.nonce, nonce)
			}
			return
		}
		if nonce > maxNonce-step {
			return
		}
	}
}

func (m *Miner) start() (chan struct{}, error) {
	m.Lock()
	defer m.Unlock()

	if m.started {
		return nil, ErrBusy
	}
	m.quit = make(chan struct{})
	m.started = true
	return m.quit, nil
}

func (m *Miner) finish() {
	m.Lock()
	defer m.Unlock()
	m.started = false
}

// Stop interrupts a running Seal. It is safe for concurrent access.
func (m *Miner) Stop() {
	m.Lock()
	defer m.Unlock()

	// Nothing to do if the miner is not currently running
	if !m.started {
		return
	}
	select {
	case <-m.quit:
	default:
		close(m.quit)
		log.Lvl2("Miner stopped")
	}
}
