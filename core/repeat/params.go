// core/repeat/params.go
package repeat

import (
	"context"
	"errors"
	"fmt"
)

// ErrQueryOutOfRange rejects malformed detector parameters. The wrapped
// message names the offending parameter and its value; the index stays
// valid and usable.
var ErrQueryOutOfRange = errors.New("query parameter out of range")

func paramErr(name string, value int, want string) error {
	return fmt.Errorf("%w: %s=%d (want %s)", ErrQueryOutOfRange, name, value, want)
}

// cancelStride is how many visited nodes/candidates run between context
// checks in the worst-case-quadratic detectors.
const cancelStride = 256

type canceller struct {
	ctx     context.Context
	visited int
}

func (c *canceller) step() error {
	if c.visited%cancelStride == 0 {
		select {
		case <-c.ctx.Done():
			return c.ctx.Err()
		default:
		}
	}
	c.visited++
	return nil
}
