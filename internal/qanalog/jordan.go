package qanalog

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/agbru/qcalc/internal/algebra"
	"github.com/agbru/qcalc/internal/combinat"
	apperrors "github.com/agbru/qcalc/internal/errors"
)

// JordanCache memoizes q-Jordan values by (ring, q, partition). Entries are
// never evicted. Concurrent requests for the same key share one computation.
type JordanCache struct {
	entries sync.Map // key -> T
	flight  singleflight.Group
	hits    atomic.Uint64
	misses  atomic.Uint64

	mu     sync.RWMutex
	logger zerolog.Logger
}

// NewJordanCache returns an empty cache with logging disabled.
func NewJordanCache() *JordanCache {
	return &JordanCache{logger: zerolog.Nop()}
}

var defaultJordanCache = NewJordanCache()

// DefaultJordanCache returns the process-wide cache used by QJordan.
func DefaultJordanCache() *JordanCache { return defaultJordanCache }

// SetLogger sets the logger used for cache miss traces.
func (c *JordanCache) SetLogger(l zerolog.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = l
}

func (c *JordanCache) log() *zerolog.Logger {
	c.mu.RLock()
	defer c.mu.RUnlock()
	l := c.logger
	return &l
}

// Len returns the number of cached entries.
func (c *JordanCache) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Stats returns the number of lookups served from the cache and computed.
func (c *JordanCache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// QJordan returns the number of nilpotent matrices of Jordan type t over the
// field with q elements, as a polynomial in q by default. It uses the
// process-wide cache.
func QJordan[T any](r algebra.Ring[T], t combinat.Partition, q ...T) (T, error) {
	return QJordanWith(defaultJordanCache, r, t, q...)
}

// QJordanWith is QJordan with an explicit cache.
//
// The recursion removes one cell from the last row of each distinct part
// size tj < ti:
//
//	J(t) = sum_i J(t - e_i) * (q^ti - q^tj) / (q - 1)
//
// where ti runs over the distinct parts from the smallest up and tj is the
// previous distinct part (0 for the smallest). q = 1 is rejected.
func QJordanWith[T any](c *JordanCache, r algebra.Ring[T], t combinat.Partition, q ...T) (T, error) {
	var zero T
	x, err := resolveQ(r, q)
	if err != nil {
		return zero, err
	}
	if r.IsOne(x) {
		return zero, apperrors.NewInvalidArgument("q must not be equal to 1")
	}
	j := &jordan[T]{
		cache:  c,
		ring:   r,
		q:      x,
		qm1:    r.Sub(x, r.One()),
		prefix: fmt.Sprintf("%T|%s|%s|", r, r.Name(), r.Key(x)),
	}
	return j.eval(t)
}

type jordan[T any] struct {
	cache  *JordanCache
	ring   algebra.Ring[T]
	q, qm1 T
	prefix string
}

func (j *jordan[T]) eval(t combinat.Partition) (T, error) {
	if t.IsEmpty() {
		return j.ring.One(), nil
	}
	key := j.prefix + t.Key()
	if v, ok := j.cache.entries.Load(key); ok {
		j.cache.hits.Add(1)
		return v.(T), nil
	}
	v, err, _ := j.cache.flight.Do(key, func() (any, error) {
		if v, ok := j.cache.entries.Load(key); ok {
			j.cache.hits.Add(1)
			return v, nil
		}
		j.cache.misses.Add(1)
		res, err := j.compute(t)
		if err != nil {
			return nil, err
		}
		j.cache.entries.Store(key, res)
		j.cache.log().Debug().Str("partition", t.String()).Int("size", t.Size()).Msg("q_jordan computed")
		return res, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func (j *jordan[T]) compute(t combinat.Partition) (T, error) {
	var zero T
	r := j.ring
	res := r.Zero()
	tj := 0
	qtj := r.One()
	for i := t.Len() - 1; i >= 0; i-- {
		ti := t.At(i)
		if ti <= tj {
			continue
		}
		sub, err := j.eval(t.Decrement(i))
		if err != nil {
			return zero, err
		}
		qti, err := r.Pow(j.q, ti)
		if err != nil {
			return zero, err
		}
		coeff, err := algebra.Quotient(r, r.Sub(qti, qtj), j.qm1)
		if err != nil {
			return zero, apperrors.WrapError(err, "q_jordan(%s)", t)
		}
		res = r.Add(res, r.Mul(sub, coeff))
		tj, qtj = ti, qti
	}
	return res, nil
}
