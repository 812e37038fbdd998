package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

// enumFlag is a string flag restricted to a fixed set of values. An empty
// value means unset.
type enumFlag struct {
	value   string
	allowed []string
}

var _ pflag.Value = (*enumFlag)(nil)

func newEnumFlag(allowed ...string) *enumFlag {
	return &enumFlag{allowed: allowed}
}

func (f *enumFlag) String() string { return f.value }

func (f *enumFlag) Set(v string) error {
	v = strings.ToLower(strings.TrimSpace(v))
	if !slices.Contains(f.allowed, v) {
		return fmt.Errorf("must be one of %s", strings.Join(f.allowed, ", "))
	}
	f.value = v
	return nil
}

func (f *enumFlag) Type() string { return strings.Join(f.allowed, "|") }

// anyChanged reports whether any of the named flags was set on the command line.
func anyChanged(fs *pflag.FlagSet, names ...string) bool {
	return slices.ContainsFunc(names, fs.Changed)
}
