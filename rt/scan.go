package rt

import (
	"bufio"
	"errors"
	"io"
	"math"
)

var (
	ErrNoInput = errors.New("no input")
	ErrSyntax  = errors.New("invalid integer syntax")
	ErrRange   = errors.New("integer out of range")
)

// -----------------------------------------------------------------------------

type scanner struct {
	r *bufio.Reader
}

func newScanner(in io.Reader) *scanner {
	r, ok := in.(*bufio.Reader)
	if !ok {
		r = bufio.NewReader(in)
	}
	return &scanner{r: r}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (p *scanner) skipSpace() (c byte, err error) {
	for {
		if c, err = p.r.ReadByte(); err != nil {
			if err == io.EOF {
				err = ErrNoInput
			}
			return
		}
		if !isSpace(c) {
			return
		}
	}
}

// readInt parses the next decimal token. The byte that ends the token is left
// in the stream. Out of range values saturate and are reported as ErrRange.
func (p *scanner) readInt() (int64, error) {
	c, err := p.skipSpace()
	if err != nil {
		return 0, err
	}
	neg := false
	if c == '+' || c == '-' {
		neg = c == '-'
		if c, err = p.r.ReadByte(); err != nil {
			if err == io.EOF {
				err = ErrSyntax
			}
			return 0, err
		}
	}
	if !isDigit(c) {
		p.r.UnreadByte()
		return 0, ErrSyntax
	}
	limit := uint64(math.MaxInt64)
	if neg {
		limit++
	}
	var v uint64
	overflow := false
	for {
		d := uint64(c - '0')
		if overflow || v > (limit-d)/10 {
			overflow = true
		} else {
			v = v*10 + d
		}
		if c, err = p.r.ReadByte(); err != nil {
			if err != io.EOF {
				return 0, err
			}
			break
		}
		if !isDigit(c) {
			p.r.UnreadByte()
			break
		}
	}
	switch {
	case overflow && neg:
		return math.MinInt64, ErrRange
	case overflow:
		return math.MaxInt64, ErrRange
	case neg:
		return -int64(v), nil
	}
	return int64(v), nil
}

// -----------------------------------------------------------------------------
