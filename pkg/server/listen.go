// Package server binds the HTTP listener.
package server

import (
	"errors"
	"fmt"
	"net"
	"syscall"
)

// Listen binds primary and falls back to fallback only when primary is
// already in use. Any other bind error is returned as is.
func Listen(primary, fallback string) (net.Listener, error) {
	ln, err := net.Listen("tcp", primary)
	if err == nil {
		return ln, nil
	}
	if fallback == "" || !errors.Is(err, syscall.EADDRINUSE) {
		return nil, err
	}
	ln, ferr := net.Listen("tcp", fallback)
	if ferr != nil {
		return nil, fmt.Errorf("listen %s: %w (primary %s: %v)", fallback, ferr, primary, err)
	}
	return ln, nil
}
