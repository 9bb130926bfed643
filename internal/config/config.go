// Package config loads named codec profiles from a CUE file.
//
// A configuration file looks like:
//
//	default: "sensor"
//	codecs: {
//	    sensor: { width: 12, base: "hex" }
//	    byte:   { width: 8, base: "bin" }
//	}
//
// The file is unified with an embedded schema (schema.cue) that constrains
// widths to 1..64 and bases to dec, hex, bin or oct. Omitted fields take
// the schema defaults (width 8, base dec). Unknown fields are rejected.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/graycode/internal/gray"
	"github.com/roach88/graycode/internal/numfmt"
)

//go:embed schema.cue
var schemaCUE string

// BuiltinName names the profile available when no file defines one.
const BuiltinName = "default"

// Error codes reported by Load and Parse.
const (
	ErrCodeNotFound       = "E201" // config file missing or unreadable
	ErrCodeSyntax         = "E202" // CUE parse/compile failure
	ErrCodeSchema         = "E203" // value violates the schema
	ErrCodeUnknownDefault = "E204" // default names an undefined codec
	ErrCodeUnknownCodec   = "E205" // lookup of an undefined codec
)

// LoadError reports a configuration problem, with a CUE position when one
// is known.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Profile is a named codec setting.
type Profile struct {
	Name  string
	Width int
	Base  numfmt.Base
}

// Codec builds the codec described by the profile.
func (p Profile) Codec() (*gray.Codec[uint64], error) {
	return gray.New[uint64](p.Width)
}

// Config holds the profiles loaded from a file.
type Config struct {
	// Default is the profile used when none is named.
	Default string

	// Profiles maps names to profiles.
	Profiles map[string]Profile

	// Source is the file the config came from, empty for Builtin.
	Source string
}

// Builtin returns the configuration used when no file is given: a single
// 8-bit decimal profile named "default".
func Builtin() *Config {
	return &Config{
		Default: BuiltinName,
		Profiles: map[string]Profile{
			BuiltinName: {Name: BuiltinName, Width: gray.DefaultWidth, Base: numfmt.Decimal},
		},
	}
}

// Load reads and validates a CUE configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading config: %v", err)}
	}
	return Parse(path, data)
}

// fileConfig mirrors #Config for decoding.
type fileConfig struct {
	Default string                 `json:"default"`
	Codecs  map[string]fileProfile `json:"codecs"`
}

type fileProfile struct {
	Width int    `json:"width"`
	Base  string `json:"base"`
}

// Parse validates CUE source against the schema. filename is used only for
// error positions.
func Parse(filename string, data []byte) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling embedded schema: %w", err)
	}

	file := ctx.CompileBytes(data, cue.Filename(filename))
	if err := file.Err(); err != nil {
		return nil, newLoadError(ErrCodeSyntax, filename, err)
	}

	value := schema.LookupPath(cue.ParsePath("#Config")).Unify(file)
	if err := value.Validate(cue.Concrete(true), cue.Final()); err != nil {
		return nil, newLoadError(ErrCodeSchema, filename, err)
	}

	var fc fileConfig
	if err := value.Decode(&fc); err != nil {
		return nil, newLoadError(ErrCodeSchema, filename, err)
	}

	cfg := &Config{
		Default:  fc.Default,
		Profiles: make(map[string]Profile, len(fc.Codecs)+1),
		Source:   filename,
	}
	for name, fp := range fc.Codecs {
		base, err := numfmt.ParseBase(fp.Base)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeSchema, Message: fmt.Sprintf("codecs.%s: %v", name, err)}
		}
		cfg.Profiles[name] = Profile{Name: name, Width: fp.Width, Base: base}
	}

	if _, ok := cfg.Profiles[cfg.Default]; !ok {
		if cfg.Default != BuiltinName {
			return nil, &LoadError{
				Code:    ErrCodeUnknownDefault,
				Message: fmt.Sprintf("default codec %q is not defined", cfg.Default),
				Pos:     value.LookupPath(cue.ParsePath("default")).Pos(),
			}
		}
		cfg.Profiles[BuiltinName] = Builtin().Profiles[BuiltinName]
	}

	return cfg, nil
}

// Profile returns the named profile, or the default profile for "".
func (c *Config) Profile(name string) (Profile, error) {
	if name == "" {
		name = c.Default
	}
	p, ok := c.Profiles[name]
	if !ok {
		return Profile{}, &LoadError{
			Code:    ErrCodeUnknownCodec,
			Message: fmt.Sprintf("codec %q is not defined (have %v)", name, c.Names()),
		}
	}
	return p, nil
}

// Names returns the profile names in sorted order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// newLoadError converts a CUE error into a LoadError. The position prefers
// a location in the user's file over one in the embedded schema.
func newLoadError(code, filename string, err error) *LoadError {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: code, Message: err.Error()}
	}

	first := errs[0]
	format, args := first.Msg()
	le := &LoadError{Code: code, Message: fmt.Sprintf(format, args...), Pos: first.Position()}
	for _, pos := range cueerrors.Positions(err) {
		if pos.Filename() == filename {
			le.Pos = pos
			break
		}
	}
	if path := first.Path(); len(path) > 0 {
		le.Message = fmt.Sprintf("%s: %s", joinPath(path), le.Message)
	}
	if len(errs) > 1 {
		le.Message = fmt.Sprintf("%s (and %d more errors)", le.Message, len(errs)-1)
	}
	return le
}

func joinPath(path []string) string {
	out := path[0]
	for _, p := range path[1:] {
		out += "." + p
	}
	return out
}
