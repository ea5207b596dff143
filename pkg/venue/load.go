package venue

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/seatlab/seatplan/pkg/errors"
)

// Read decodes a venue configuration from r, validates it, and applies
// defaults. The reader must contain TOML (see the package documentation for
// the expected layout).
func Read(r io.Reader) (*Venue, error) {
	var v Venue
	if _, err := toml.NewDecoder(r).Decode(&v); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode venue config")
	}
	if err := v.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return &v, nil
}

// Load reads and validates a venue configuration file at path.
func Load(path string) (*Venue, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "venue config %s", path)
		}
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
