package multicast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetwork(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    string
	}{
		{name: "ipv4 group", address: "239.255.255.250", want: "udp4"},
		{name: "ipv6 group", address: "ff08::1", want: "udp6"},
		{name: "ipv6 link local", address: "ff02::123", want: "udp6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Network(tt.address))
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:   "valid ipv4",
			config: Config{Address: "239.255.255.250", Port: 8888},
		},
		{
			name:   "valid ipv6",
			config: Config{Address: "ff08::1", Port: 8888},
		},
		{
			name:    "garbage address",
			config:  Config{Address: "not-an-ip", Port: 8888},
			wantErr: ErrInvalidAddress,
		},
		{
			name:    "unicast address",
			config:  Config{Address: "192.168.1.10", Port: 8888},
			wantErr: ErrNotMulticast,
		},
		{
			name:    "zero port",
			config:  Config{Address: "239.255.255.250", Port: 0},
			wantErr: ErrInvalidPort,
		},
		{
			name:    "port too large",
			config:  Config{Address: "239.255.255.250", Port: 70000},
			wantErr: ErrInvalidPort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, IsConfigError(err))
			}
		})
	}
}

func TestOpen_UnknownInterface(t *testing.T) {
	_, err := Open(Config{
		Address:   "ff08::1",
		Port:      8888,
		Interface: "doesnotexist",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInterfaceNotFound)
	assert.True(t, IsConfigError(err))
}

func TestOpen_InvalidConfigHasNoResidue(t *testing.T) {
	_, err := Open(Config{Address: "not-an-ip", Port: 8888})
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestGroupConn_SendReceive(t *testing.T) {
	conn, err := Open(Config{
		Address:     "239.255.255.250",
		Port:        38888,
		ReadTimeout: 200 * time.Millisecond,
	})
	if err != nil {
		t.Skipf("multicast not available on this host: %v", err)
	}
	defer conn.Close()

	require.NoError(t, conn.Send([]byte("ping")))

	buf := make([]byte, MaxDatagramSize)
	deadline := time.Now().Add(3 * time.Second)
	for {
		n, _, err := conn.Receive(buf)
		if err == nil {
			assert.Equal(t, "ping", string(buf[:n]))
			return
		}
		require.ErrorIs(t, err, ErrReadTimeout)
		if time.Now().After(deadline) {
			t.Skip("loopback delivery not available on this host")
		}
	}
}

func TestGroupConn_CloseIdempotent(t *testing.T) {
	conn, err := Open(Config{Address: "239.255.255.250", Port: 38889})
	if err != nil {
		t.Skipf("multicast not available on this host: %v", err)
	}

	require.NoError(t, conn.Close())
	assert.NoError(t, conn.Close())
}
