package server

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListen_Primary(t *testing.T) {
	ln, err := Listen("127.0.0.1:0", "")
	require.NoError(t, err)
	defer ln.Close()
	assert.NotEmpty(t, ln.Addr().String())
}

func TestListen_FallbackWhenPrimaryBusy(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	ln, err := Listen(busy.Addr().String(), "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	assert.NotEqual(t, busy.Addr().String(), ln.Addr().String())
}

func TestListen_BusyWithoutFallback(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	_, err = Listen(busy.Addr().String(), "")
	assert.Error(t, err)
}

func TestListen_OtherErrorsDoNotFallBack(t *testing.T) {
	_, err := Listen("127.0.0.1:notaport", "127.0.0.1:0")
	assert.Error(t, err)
}
