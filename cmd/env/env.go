package env

import (
	"os"

	"github.com/spf13/pflag"
)

// DefaultFromEnv sets the flag from envvar when it was not given on the command line.
func DefaultFromEnv(fs *pflag.FlagSet, flag, envvar string) error {
	if fs.Changed(flag) {
		return nil
	}
	v, ok := os.LookupEnv(envvar)
	if !ok || v == "" {
		return nil
	}
	return fs.Set(flag, v)
}
