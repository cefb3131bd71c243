package worker

import (
	"github.com/screa/eth-vanity/internal/crypto"
	"github.com/screa/eth-vanity/internal/logger"
	"github.com/screa/eth-vanity/pkg/matcher"
	"github.com/screa/eth-vanity/pkg/types"
)

// State is the round state shared by all workers
type State interface {
	Stopped() bool
	Stop()
	Add(n uint64)
}

// Worker searches batches of random key pairs until it finds a match or
// observes the stop flag.
type Worker struct {
	id     int
	config *types.WorkerConfig
	state  State
	logger *logger.Logger

	// Pre-allocated per worker, reused for every batch
	gen   *crypto.Generator
	batch []types.KeyPair
}

// NewWorker creates a new worker instance
func NewWorker(id int, config *types.WorkerConfig, state State, log *logger.Logger) *Worker {
	return &Worker{
		id:     id,
		config: config,
		state:  state,
		logger: log,
		gen:    crypto.NewGenerator(),
		batch:  make([]types.KeyPair, config.BatchSize),
	}
}

// WithGenerator replaces the worker's key generator
func (w *Worker) WithGenerator(gen *crypto.Generator) *Worker {
	w.gen = gen
	return w
}

// Run loops until a match is found or another worker stops the round.
// A generation failure ends this worker without a result.
func (w *Worker) Run() (types.MatchResult, bool) {
	defer clear(w.batch)

	for !w.state.Stopped() {
		result, found, err := w.ProcessBatch()
		if err != nil {
			w.logger.Errorf("worker %d: %v", w.id, err)
			return types.MatchResult{}, false
		}
		if found {
			w.state.Stop()
			return result, true
		}
	}
	return types.MatchResult{}, false
}

// ProcessBatch generates one batch, adds it to the shared attempt counter
// and returns the first candidate that matches.
func (w *Worker) ProcessBatch() (types.MatchResult, bool, error) {
	batch, err := w.gen.GenerateBatch(w.batch)
	w.state.Add(uint64(len(batch)))
	if err != nil {
		return types.MatchResult{}, false, err
	}

	for i := range batch {
		kp := &batch[i]
		digit, run, ok := matcher.Match(kp.Address[:], w.config.MinRun)
		if !ok {
			continue
		}
		return types.MatchResult{
			PrivateKey: crypto.EncodePrivateKey(&kp.PrivateKey),
			Address:    string(kp.Address[:]),
			Digit:      digit,
			RunLength:  run,
		}, true, nil
	}

	return types.MatchResult{}, false, nil
}
