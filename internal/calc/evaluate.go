package calc

import (
	"context"
	"math/big"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/qcalc/internal/classical"
	"github.com/agbru/qcalc/internal/combinat"
	apperrors "github.com/agbru/qcalc/internal/errors"
	"github.com/agbru/qcalc/internal/qanalog"
)

var tracer = otel.Tracer("github.com/agbru/qcalc/internal/calc")

// Request is a textual q-analogue call.
type Request struct {
	// Function is a function name or alias, see ParseFunction.
	Function string
	// Args holds the positional arguments. For q_jordan they are joined and
	// parsed as one partition, so "3 2 1" and "[3,2,1]" are both accepted.
	Args []string
	// Q selects the ring and the value of q, see the package documentation.
	Q string
	// Algorithm forces a q-binomial evaluation path; empty means auto.
	Algorithm string
	// Verify specializes the value to q = 1 and compares it with the
	// classical number.
	Verify bool
	// MaxN bounds every size argument in absolute value. Zero means no bound.
	MaxN int
}

// Check is the outcome of a q = 1 verification.
type Check struct {
	Expected string `json:"expected,omitempty" yaml:"expected,omitempty"`
	Actual   string `json:"actual,omitempty" yaml:"actual,omitempty"`
	OK       bool   `json:"ok" yaml:"ok"`
	// Skipped explains why the value could not be specialized.
	Skipped string `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Failed reports whether the verification ran and disagreed.
func (c *Check) Failed() bool { return c != nil && c.Skipped == "" && !c.OK }

// Result is the formatted outcome of a call. Fingerprint is equal for
// equal values computed in the same ring, whatever algorithm produced them.
type Result struct {
	Function    Function      `json:"function" yaml:"function"`
	Args        []string      `json:"args" yaml:"args"`
	Q           string        `json:"q,omitempty" yaml:"q,omitempty"`
	Ring        string        `json:"ring" yaml:"ring"`
	Algorithm   string        `json:"algorithm,omitempty" yaml:"algorithm,omitempty"`
	Value       string        `json:"value" yaml:"value"`
	Duration    time.Duration `json:"duration_ns" yaml:"duration"`
	Check       *Check        `json:"check,omitempty" yaml:"check,omitempty"`
	Fingerprint string        `json:"-" yaml:"-"`
}

// Evaluate parses req, runs the call and formats the value. Validation
// errors are returned before any computation starts. The computation itself
// does not observe ctx; Evaluate stops waiting for it when ctx is done and
// returns the context error.
func Evaluate(ctx context.Context, req Request) (res Result, err error) {
	ctx, span := tracer.Start(ctx, "calc.Evaluate", trace.WithAttributes(
		attribute.String("qcalc.function", req.Function),
		attribute.StringSlice("qcalc.args", req.Args),
		attribute.String("qcalc.q", req.Q),
		attribute.String("qcalc.algorithm", req.Algorithm),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	c, err := prepare(req)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	type done struct {
		o   outcome
		err error
	}
	ch := make(chan done, 1)
	start := time.Now()
	go func() {
		o, err := c.run()
		ch <- done{o, err}
	}()

	var d done
	select {
	case <-ctx.Done():
		return Result{}, apperrors.WrapError(ctx.Err(), "%s", c.fn)
	case d = <-ch:
	}
	if d.err != nil {
		return Result{}, d.err
	}

	res = Result{
		Function:    c.fn,
		Args:        req.Args,
		Q:           strings.TrimSpace(req.Q),
		Ring:        c.ring,
		Algorithm:   d.o.algorithm,
		Value:       d.o.value,
		Duration:    time.Since(start),
		Fingerprint: d.o.fingerprint,
	}
	if req.Verify {
		res.Check = c.verify(d.o)
	}
	span.SetAttributes(
		attribute.String("qcalc.ring", res.Ring),
		attribute.Int("qcalc.value_length", len(res.Value)),
	)
	return res, nil
}

// call is a validated request ready to run.
type call struct {
	fn        Function
	ring      string
	n, k      int
	partition combinat.Partition
	run       func() (outcome, error)
	expected  func() (*big.Int, error)
}

func prepare(req Request) (*call, error) {
	fn, err := ParseFunction(req.Function)
	if err != nil {
		return nil, err
	}
	alg, err := qanalog.ParseAlgorithm(req.Algorithm)
	if err != nil {
		return nil, err
	}
	if alg != qanalog.Auto && fn != QBinom {
		return nil, apperrors.NewInvalidArgument("algorithm %s applies only to %s", alg, QBinom)
	}
	if !fn.TakesQ() && strings.TrimSpace(req.Q) != "" {
		return nil, apperrors.NewInvalidArgument("%s takes no q", fn)
	}

	c := &call{fn: fn}
	if err := c.parseArgs(req.Args); err != nil {
		return nil, err
	}
	if err := c.checkBound(req.MaxN); err != nil {
		return nil, err
	}

	if fn == QTCat {
		c.ring = "Multivariate Polynomial Ring in q, t over Integer Ring"
		c.run = func() (outcome, error) {
			b, err := qanalog.QTCatalan(c.n)
			if err != nil {
				return outcome{}, err
			}
			s := b.String()
			return outcome{value: s, fingerprint: s, atOne: b.Eval(big.NewInt(1), big.NewInt(1))}, nil
		}
		c.expected = func() (*big.Int, error) { return classical.Catalan(c.n) }
		return c, nil
	}

	ev, err := parseQ(req.Q)
	if err != nil {
		return nil, err
	}
	c.ring = ev.ring()
	switch fn {
	case QInt:
		c.run = func() (outcome, error) { return ev.qInt(c.n) }
		c.expected = func() (*big.Int, error) { return classical.Integer(c.n), nil }
	case QFact:
		c.run = func() (outcome, error) { return ev.qFactorial(c.n) }
		c.expected = func() (*big.Int, error) { return classical.Factorial(c.n) }
	case QBinom:
		c.run = func() (outcome, error) { return ev.qBinomial(alg, c.n, c.k) }
		c.expected = func() (*big.Int, error) { return classical.Binomial(c.n, c.k) }
	case QCatalan:
		c.run = func() (outcome, error) { return ev.qCatalan(c.n) }
		c.expected = func() (*big.Int, error) { return classical.Catalan(c.n) }
	case QJordan:
		c.run = func() (outcome, error) { return ev.qJordan(c.partition) }
	}
	return c, nil
}

func (c *call) parseArgs(args []string) error {
	if c.fn == QJordan {
		t, err := combinat.ParsePartition(strings.Join(args, " "))
		if err != nil {
			return err
		}
		c.partition = t
		return nil
	}

	want := 1
	if c.fn == QBinom {
		want = 2
	}
	if len(args) != want {
		return apperrors.NewInvalidArgument("%s expects %d argument(s), got %d (usage: %s)", c.fn, want, len(args), c.fn.Usage())
	}

	n, nInt, err := parseInteger(args[0])
	if err != nil {
		return err
	}
	switch c.fn {
	case QBinom:
		k, kInt, err := parseInteger(args[1])
		if err != nil {
			return err
		}
		if !nInt || !kInt {
			return apperrors.NewInvalidArgument("arguments (%s, %s) must be integers", args[0], args[1])
		}
		c.n, c.k = n, k
	case QInt:
		if !nInt {
			return apperrors.NewInvalidArgument("%s must be an integer", args[0])
		}
		c.n = n
	default:
		if !nInt || n < 0 {
			return apperrors.NewInvalidArgument("argument (%s) must be a nonnegative integer", args[0])
		}
		c.n = n
	}
	return nil
}

func (c *call) checkBound(maxN int) error {
	if maxN <= 0 {
		return nil
	}
	size := max(c.n, -c.n, c.partition.Size())
	if size > maxN {
		return apperrors.NewInvalidArgument("size %d exceeds the limit of %d", size, maxN)
	}
	return nil
}

func (c *call) verify(o outcome) *Check {
	if c.expected == nil {
		return &Check{Skipped: "q = 1 is outside the domain of " + string(c.fn)}
	}
	if o.atOne == nil {
		return &Check{Skipped: "value cannot be specialized to q = 1"}
	}
	want, err := c.expected()
	if err != nil {
		return &Check{Skipped: err.Error()}
	}
	return &Check{
		Expected: want.String(),
		Actual:   o.atOne.String(),
		OK:       want.Cmp(o.atOne) == 0,
	}
}
