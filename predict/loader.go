package predict

import (
	"sync"
	"time"

	"github.com/YuminosukeSato/scorecast/pkg/log"
)

// Loader loads the artifact at a fixed path on first use and caches the
// resulting Predictor for the lifetime of the Loader. A failed load is not
// cached, so the next call tries again; a successful load is never repeated.
type Loader struct {
	path string
	load func(path string) (*Predictor, error)

	mu        sync.Mutex
	predictor *Predictor
}

// NewLoader returns a Loader for the artifact at path. Nothing is read until
// Get is called.
func NewLoader(path string) *Loader {
	return &Loader{path: path, load: LoadPredictor}
}

// NewLoaderWith returns a Loader that always yields p.
func NewLoaderWith(p *Predictor) *Loader {
	return &Loader{path: "", predictor: p}
}

// Path returns the artifact path.
func (l *Loader) Path() string {
	return l.path
}

// Get returns the cached Predictor, loading it if needed.
func (l *Loader) Get() (*Predictor, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.predictor != nil {
		return l.predictor, nil
	}

	logger := log.GetLoggerWithName("predict")
	start := time.Now()
	p, err := l.load(l.path)
	if err != nil {
		logger.Error("Model load failed", err, log.ModelPathKey, l.path)
		return nil, err
	}
	l.predictor = p
	logger.Info("Model loaded",
		log.OperationKey, log.OperationLoad,
		log.ModelPathKey, l.path,
		log.ModelNameKey, p.ModelType(),
		log.FeatureNamesKey, p.FeatureNames(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return p, nil
}

// Loaded reports whether a Predictor is cached.
func (l *Loader) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.predictor != nil
}
