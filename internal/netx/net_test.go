package netx

import (
	"context"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListen_PicksFreePort(t *testing.T) {
	ln, err := Listen(context.Background(), "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	u := BaseURL(ln)
	assert.True(t, strings.HasPrefix(u, "http://127.0.0.1:"), u)
	assert.NotEqual(t, "http://127.0.0.1:0", u)
}

func TestListen_AddressInUse(t *testing.T) {
	ln, err := Listen(context.Background(), "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	_, err = Listen(context.Background(), ln.Addr().String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen "+ln.Addr().String())
}

type fakeListener struct {
	net.Listener
	addr net.Addr
}

func (f fakeListener) Addr() net.Addr { return f.addr }

func TestBaseURL_WildcardBecomesLoopback(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{"0.0.0.0:3000", "http://127.0.0.1:3000"},
		{"[::]:3000", "http://127.0.0.1:3000"},
		{"[::1]:3000", "http://[::1]:3000"},
		{"192.168.1.5:8080", "http://192.168.1.5:8080"},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			tcp, err := net.ResolveTCPAddr("tcp", tt.addr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, BaseURL(fakeListener{addr: tcp}))
		})
	}
}
