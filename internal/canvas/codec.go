package canvas

import (
	"fmt"
	"math/big"
	"strings"
)

// DefaultAlphabet is the digit alphabet used unless WithAlphabet is given.
// It supports up to 62 quantization steps.
const DefaultAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// RandomSource supplies uniformly distributed integers in [0, n).
// *math/rand/v2.Rand satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// Option configures a Codec at construction.
type Option func(*options)

type options struct {
	alphabet string
}

// WithAlphabet replaces the digit alphabet. Only its first steps symbols are
// used; it must be ASCII and must not repeat a symbol.
func WithAlphabet(alphabet string) Option {
	return func(o *options) {
		o.alphabet = alphabet
	}
}

// Codec converts between indexes, identifiers and grids of one space.
type Codec struct {
	steps       int
	shape       Shape
	cells       int
	cardinality *big.Int

	// symbols[d] is the symbol for digit d; digits[b] is the digit for
	// symbol byte b, or -1.
	symbols []byte
	digits  [256]int16

	// chunk digits fit in one uint64 word: chunkBase = steps^chunk.
	chunk     int
	chunkBase *big.Int
}

// New builds the codec for a space of the given steps and shape.
//
// It fails with ErrConfig when steps < 2, a dimension is not positive, or the
// alphabet cannot supply steps distinct ASCII symbols.
func New(steps int, shape Shape, opts ...Option) (*Codec, error) {
	o := options{alphabet: DefaultAlphabet}
	for _, opt := range opts {
		opt(&o)
	}

	if steps < 2 {
		return nil, fmt.Errorf("%w: steps must be at least 2, got %d", ErrConfig, steps)
	}
	if err := shape.validate(); err != nil {
		return nil, err
	}
	if len(o.alphabet) < steps {
		return nil, fmt.Errorf("%w: alphabet has %d symbols, need %d", ErrConfig, len(o.alphabet), steps)
	}

	c := &Codec{
		steps:   steps,
		shape:   shape,
		cells:   shape.Cells(),
		symbols: make([]byte, steps),
	}
	for i := range c.digits {
		c.digits[i] = -1
	}
	for d := 0; d < steps; d++ {
		b := o.alphabet[d]
		if b >= 0x80 {
			return nil, fmt.Errorf("%w: alphabet symbol %d is not ASCII", ErrConfig, d)
		}
		if c.digits[b] != -1 {
			return nil, fmt.Errorf("%w: alphabet repeats symbol %q", ErrConfig, b)
		}
		c.symbols[d] = b
		c.digits[b] = int16(d)
	}

	c.cardinality = new(big.Int).Exp(big.NewInt(int64(steps)), big.NewInt(int64(c.cells)), nil)

	// Largest power of steps that stays below 2^62.
	c.chunk = 1
	pow := uint64(steps)
	for pow <= (1<<62)/uint64(steps) {
		pow *= uint64(steps)
		c.chunk++
	}
	c.chunkBase = new(big.Int).SetUint64(pow)

	return c, nil
}

// Steps returns the number of quantization levels per channel.
func (c *Codec) Steps() int { return c.steps }

// Shape returns the grid shape.
func (c *Codec) Shape() Shape { return c.shape }

// CellCount returns the identifier length, Height*Width*Channels.
func (c *Codec) CellCount() int { return c.cells }

// Cardinality returns a copy of steps^CellCount.
func (c *Codec) Cardinality() *big.Int { return new(big.Int).Set(c.cardinality) }

// Alphabet returns the steps symbols in digit order.
func (c *Codec) Alphabet() string { return string(c.symbols) }

// Encode returns the canonical identifier of index.
func (c *Codec) Encode(index *big.Int) (string, error) {
	if index == nil || index.Sign() < 0 || index.Cmp(c.cardinality) >= 0 {
		return "", fmt.Errorf("%w: %v not in [0, %d^%d)", ErrOutOfRange, index, c.steps, c.cells)
	}

	buf := make([]byte, c.cells)
	for i := range buf {
		buf[i] = c.symbols[0]
	}

	n := new(big.Int).Set(index)
	rem := new(big.Int)
	pos := c.cells - 1
	for n.Sign() > 0 && pos >= 0 {
		n.QuoRem(n, c.chunkBase, rem)
		r := rem.Uint64()
		for k := 0; k < c.chunk && pos >= 0; k++ {
			buf[pos] = c.symbols[r%uint64(c.steps)]
			r /= uint64(c.steps)
			pos--
		}
	}
	return string(buf), nil
}

// Decode parses a canonical identifier back to its index.
func (c *Codec) Decode(id string) (*big.Int, error) {
	if err := c.check(id); err != nil {
		return nil, err
	}

	n := new(big.Int)
	word := new(big.Int)
	for start := 0; start < len(id); start += c.chunk {
		end := start + c.chunk
		if end > len(id) {
			end = len(id)
		}

		var acc uint64
		for i := start; i < end; i++ {
			acc = acc*uint64(c.steps) + uint64(c.digits[id[i]])
		}

		if end-start == c.chunk {
			n.Mul(n, c.chunkBase)
		} else {
			n.Mul(n, new(big.Int).Exp(big.NewInt(int64(c.steps)), big.NewInt(int64(end-start)), nil))
		}
		n.Add(n, word.SetUint64(acc))
	}
	return n, nil
}

// ToGrid returns the grid named by id, symbol i becoming cell i.
func (c *Codec) ToGrid(id string) (Grid, error) {
	if err := c.check(id); err != nil {
		return nil, err
	}
	g := make(Grid, c.cells)
	for i := 0; i < len(id); i++ {
		g[i] = int(c.digits[id[i]])
	}
	return g, nil
}

// FromGrid returns the identifier of an already quantized grid.
func (c *Codec) FromGrid(g Grid) (string, error) {
	if len(g) != c.cells {
		return "", fmt.Errorf("%w: got %d cells, want %d", ErrInvalidGrid, len(g), c.cells)
	}
	buf := make([]byte, c.cells)
	for i, v := range g {
		if v < 0 || v >= c.steps {
			return "", fmt.Errorf("%w: cell %d value %d not in [0, %d)", ErrInvalidGrid, i, v, c.steps)
		}
		buf[i] = c.symbols[v]
	}
	return string(buf), nil
}

// Min returns the identifier of index 0.
func (c *Codec) Min() string {
	return strings.Repeat(string(c.symbols[0]), c.cells)
}

// Max returns the identifier of index cardinality-1.
func (c *Codec) Max() string {
	return strings.Repeat(string(c.symbols[c.steps-1]), c.cells)
}

// Random draws every digit independently from src. Since the cardinality is
// a power of steps this is uniform over the whole index space.
func (c *Codec) Random(src RandomSource) string {
	buf := make([]byte, c.cells)
	for i := range buf {
		buf[i] = c.symbols[src.IntN(c.steps)]
	}
	return string(buf)
}

// Step moves id by delta positions around the ring of indexes.
func (c *Codec) Step(id string, delta int64) (string, error) {
	return c.StepBig(id, big.NewInt(delta))
}

// StepBig is Step with an arbitrary precision delta.
func (c *Codec) StepBig(id string, delta *big.Int) (string, error) {
	n, err := c.Decode(id)
	if err != nil {
		return "", err
	}
	if delta != nil {
		n.Add(n, delta)
	}
	// big.Int.Mod is Euclidean: the result is in [0, cardinality).
	n.Mod(n, c.cardinality)
	return c.Encode(n)
}

// Validate reports whether id is a canonical identifier of this space.
func (c *Codec) Validate(id string) bool {
	return c.check(id) == nil
}

func (c *Codec) check(id string) error {
	if len(id) != c.cells {
		return fmt.Errorf("%w: length %d, want %d", ErrInvalidIdentifier, len(id), c.cells)
	}
	for i := 0; i < len(id); i++ {
		if c.digits[id[i]] < 0 {
			return fmt.Errorf("%w: symbol %q at position %d is not a base-%d digit", ErrInvalidIdentifier, id[i], i, c.steps)
		}
	}
	return nil
}
