package arena

import (
	"flag"

	"github.com/alecthomas/units"
	"github.com/go-kit/log"
	"github.com/pkg/errors"
)

// Config holds the settings needed to build an Arena.
type Config struct {
	Capacity units.Base2Bytes `yaml:"capacity"`
}

// DefaultConfig returns a Config with DefaultCapacity.
func DefaultConfig() Config {
	return Config{Capacity: units.Base2Bytes(DefaultCapacity)}
}

// RegisterFlags registers the arena flags under prefix.
func (cfg *Config) RegisterFlags(f *flag.FlagSet, prefix string) {
	cfg.Capacity = units.Base2Bytes(DefaultCapacity)
	f.Var((*bytesValue)(&cfg.Capacity), prefix+"capacity", "Size of the scratch arena, e.g. 16MiB. The region is reserved up front and committed on first touch.")
}

// Validate checks the config.
func (cfg *Config) Validate() error {
	if cfg.Capacity <= 0 {
		return errors.Wrapf(ErrInvalidCapacity, "got %d bytes", int64(cfg.Capacity))
	}
	if int64(cfg.Capacity) != int64(int(cfg.Capacity)) {
		return errors.Errorf("arena: capacity %d does not fit in the address space", int64(cfg.Capacity))
	}
	return nil
}

// NewFromConfig validates cfg and reserves an arena of the configured size.
func NewFromConfig(cfg Config, logger log.Logger) (*Arena, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return New(int(cfg.Capacity), WithLogger(logger))
}

// bytesValue adapts units.Base2Bytes to flag.Value.
type bytesValue units.Base2Bytes

func (b *bytesValue) String() string {
	return units.Base2Bytes(*b).String()
}

func (b *bytesValue) Set(s string) error {
	v, err := units.ParseBase2Bytes(s)
	if err != nil {
		return errors.Wrapf(err, "invalid size %q", s)
	}
	*b = bytesValue(v)
	return nil
}
