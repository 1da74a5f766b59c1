// Package assert guards internal invariants that should never fire in a
// correct build. A failing assertion panics; the worker loop in package
// transport recovers from it in production so one bad tick
// cannot take the whole engine down.
package assert

import (
	"fmt"

	"github.com/felixtrz/immersive-web-sdk/oerror"
)

// IsTrue panics with a formatted invariant-violation error if ok is false.
func IsTrue(ok bool, message string, args ...interface{}) {
	if !ok {
		panic(oerror.Wrap(oerror.ErrInvariant, fmt.Sprintf(message, args...)))
	}
}
