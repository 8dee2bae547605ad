package config

import (
	"bytes"
	"os"
	"path/filepath"
	"unicode"

	"github.com/goccy/go-yaml"

	"github.com/Yamashou/dartgenc/errors"
)

// DefaultConfigFilenames are searched by FindConfigFile, in order.
var DefaultConfigFilenames = []string{".dartgenc.yml", "dartgenc.yml", ".dartgenc.yaml", "dartgenc.yaml"}

// Config represents the config file.
type Config struct {
	Generator Options `yaml:"generator"`
}

// Options are the generator switches. The zero value is a valid configuration:
// nothing beyond a constructor is generated and no suffix is appended.
type Options struct {
	// Suffix is appended to every generated or referenced nested class name.
	Suffix                string `yaml:"suffix,omitempty"`
	GeneratorDoc          bool   `yaml:"generator_doc,omitempty"`
	GeneratorSerializable bool   `yaml:"generator_serializable,omitempty"`
	NullSafe              bool   `yaml:"null_safe,omitempty"`
	CreateFromList        bool   `yaml:"create_from_list,omitempty"`
	SetConverters         bool   `yaml:"set_converters,omitempty"`
	// ConvertersValue is spliced into @JsonSerializable(converters: ...) without validation.
	ConvertersValue string `yaml:"converters_value,omitempty"`
}

// LoadConfig loads and parses the config file.
func LoadConfig(configFilename string) (*Config, error) {
	configContent, err := os.ReadFile(configFilename)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read config")
	}

	var c Config

	yamlDecoder := yaml.NewDecoder(bytes.NewReader([]byte(os.ExpandEnv(string(configContent)))), yaml.DisallowUnknownField())
	if err := yamlDecoder.Decode(&c); err != nil {
		return nil, errors.Wrap(err, "unable to parse config")
	}

	if err := c.Generator.Validate(); err != nil {
		return nil, errors.Wrap(err, "generator")
	}

	c.Generator = c.Generator.Normalize()

	return &c, nil
}

// FindConfigFile walks up from dir and returns the first config file found.
// An empty string and no error are returned when there is none.
func FindConfigFile(dir string, names []string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrap(err, "unable to resolve config directory")
	}

	for {
		for _, name := range names {
			path := filepath.Join(absDir, name)
			info, err := os.Stat(path)
			if err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(absDir)
		if parent == absDir {
			return "", nil
		}
		absDir = parent
	}
}

// Validate reports option combinations that can never produce valid output.
func (o Options) Validate() error {
	if o.SetConverters && o.ConvertersValue == "" {
		return errors.WithHint(
			errors.New("'set_converters' is true but 'converters_value' is empty"),
			"set converters_value to a Dart list expression such as [DateTimeConverter()]",
		)
	}

	for _, r := range o.Suffix {
		if !isIdentRune(r) {
			return errors.Newf("suffix %q is not a valid identifier part", o.Suffix)
		}
	}

	return nil
}

// Normalize applies the forced options: a serializable class always gets the
// list decoder.
func (o Options) Normalize() Options {
	if o.GeneratorSerializable {
		o.CreateFromList = true
	}
	return o
}

// Converters returns the converters expression to splice, or "" when disabled.
func (o Options) Converters() string {
	if !o.SetConverters {
		return ""
	}
	return o.ConvertersValue
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
