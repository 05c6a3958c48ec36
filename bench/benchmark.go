package bench

import (
	"fmt"
	"slices"

	"github.com/edaniels/golog"
	"github.com/kovidgoyal/depthrgb"
	"github.com/kovidgoyal/depthrgb/codec"
	"github.com/kovidgoyal/go-parallel"
	"go.uber.org/zap"
)

// DefaultQualities are the qualities of the sweep: 10, 20, ..., 100.
var DefaultQualities = []int{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

// Result maps image names to qualities to errors.
type Result map[string]map[int]float64

type config struct {
	qualities   []int
	metric      Metric
	codec       codec.Codec
	logger      golog.Logger
	parallelism int
}

func default_config() config {
	return config{
		qualities: DefaultQualities,
		metric:    MeanAbsoluteError,
		codec:     codec.JPEG{},
		logger:    zap.NewNop().Sugar(),
	}
}

// Option sets an optional parameter of Run and Compare.
type Option func(*config)

// WithQualities sets the qualities of the sweep. Default is DefaultQualities.
func WithQualities(q ...int) Option {
	return func(c *config) {
		c.qualities = slices.Clone(q)
	}
}

// WithMetric sets the error metric. Default is MeanAbsoluteError.
func WithMetric(m Metric) Option {
	return func(c *config) {
		c.metric = m
	}
}

// WithCodec sets the codec the RGB images go through. Default is codec.JPEG.
func WithCodec(x codec.Codec) Option {
	return func(c *config) {
		c.codec = x
	}
}

// WithLogger sets the logger for progress messages. Default discards them.
func WithLogger(l golog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithParallelism sets the number of workers. Zero, the default, uses one per
// CPU.
func WithParallelism(n int) Option {
	return func(c *config) {
		c.parallelism = max(0, n)
	}
}

func (c *config) validate() error {
	if c.codec == nil {
		return fmt.Errorf("no codec specified")
	}
	if c.metric == nil {
		return fmt.Errorf("no metric specified")
	}
	for _, q := range c.qualities {
		if err := codec.ValidateQuality(q); err != nil {
			return err
		}
	}
	return nil
}

// run_jobs calls f for every index in [0, n) on the configured number of
// workers and returns the error of the lowest failing index.
func (c *config) run_jobs(n int, f func(i int) error) error {
	if n == 0 {
		return nil
	}
	errs := make([]error, n)
	err := parallel.Run_in_parallel_over_range(c.parallelism, func(start, limit int) {
		for i := start; i < limit; i++ {
			errs[i] = f(i)
		}
	}, 0, n)
	if err != nil {
		return err
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Run reconstructs every image at every quality of the sweep and scores the
// result against the original. Any failure aborts the whole run, no partial
// result is returned.
func Run(t depthrgb.Transcoder, images []depthrgb.NamedDepth, opts ...Option) (Result, error) {
	cfg := default_config()
	for _, option := range opts {
		option(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	nq := len(cfg.qualities)
	scores := make([]float64, len(images)*nq)
	cfg.logger.Debugw("starting quality sweep", "transcoder", fmt.Sprintf("%T", t), "codec", cfg.codec.Name(),
		"images", len(images), "qualities", cfg.qualities)
	err := cfg.run_jobs(len(scores), func(i int) error {
		img, quality := images[i/nq], cfg.qualities[i%nq]
		decoded, err := Reconstruct(t, cfg.codec, img.Depth, quality)
		if err != nil {
			return fmt.Errorf("%s at quality %d: %w", img.Name, quality, err)
		}
		if scores[i], err = cfg.metric(img.Depth, decoded); err != nil {
			return fmt.Errorf("%s at quality %d: %w", img.Name, quality, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	ans := make(Result, len(images))
	for i, img := range images {
		m := make(map[int]float64, nq)
		for j, q := range cfg.qualities {
			m[q] = scores[i*nq+j]
		}
		ans[img.Name] = m
		cfg.logger.Debugw("scored image", "image", img.Name, "fingerprint", fmt.Sprintf("%016x", Fingerprint(img.Depth)))
	}
	return ans, nil
}

// Pair is an original depth image and its reconstruction.
type Pair struct {
	Original, Decoded *depthrgb.Depth
}

// Compare reconstructs every image at a single quality and returns the
// originals alongside their reconstructions, for visual inspection. The
// metric and qualities options are ignored.
func Compare(t depthrgb.Transcoder, images []depthrgb.NamedDepth, quality int, opts ...Option) (map[string]Pair, error) {
	cfg := default_config()
	for _, option := range opts {
		option(&cfg)
	}
	cfg.qualities = []int{quality}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	decoded := make([]*depthrgb.Depth, len(images))
	err := cfg.run_jobs(len(images), func(i int) (err error) {
		if decoded[i], err = Reconstruct(t, cfg.codec, images[i].Depth, quality); err != nil {
			return fmt.Errorf("%s at quality %d: %w", images[i].Name, quality, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	ans := make(map[string]Pair, len(images))
	for i, img := range images {
		ans[img.Name] = Pair{Original: img.Depth, Decoded: decoded[i]}
	}
	return ans, nil
}
