package config

import (
	"fmt"
	"os"
)

// Exitf reports a startup failure, such as an unknown -first player, on
// stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
