package arena

import (
	"flag"
	"testing"

	"github.com/alecthomas/units"
	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRegisterFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    units.Base2Bytes
		wantErr bool
	}{
		{"default", nil, DefaultCapacity, false},
		{"mebibytes", []string{"-arena.capacity=16MiB"}, 16 * units.MiB, false},
		{"kibibytes", []string{"-arena.capacity=1KiB"}, units.KiB, false},
		{"bytes", []string{"-arena.capacity=512B"}, 512, false},
		{"garbage", []string{"-arena.capacity=big"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			fs.SetOutput(nopWriter{})
			cfg.RegisterFlags(fs, "arena.")

			err := fs.Parse(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Capacity)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Capacity = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidCapacity)

	cfg.Capacity = -units.KiB
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidCapacity)
}

func TestNewFromConfig(t *testing.T) {
	a, err := NewFromConfig(Config{Capacity: 4 * units.KiB}, log.NewNopLogger())
	require.NoError(t, err)
	defer a.Release()
	assert.Equal(t, 4096, a.Capacity())

	_, err = NewFromConfig(Config{}, nil)
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
