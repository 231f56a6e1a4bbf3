package config

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/fossas/sitecheck/files"
)

var (
	ErrWrongVersion = errors.New("config file version is not 1")
	DefaultFiles    = []string{".sitecheck.yml", ".sitecheck.yaml"}
)

// A File is a version 1 configuration file.
type File struct {
	Version  int                `mapstructure:"version"`
	Exe      []string           `mapstructure:"exe"`
	UserSite bool               `mapstructure:"user_site"`
	Exclude  []string           `mapstructure:"exclude"`
	Validate ValidateProperties `mapstructure:"validate"`

	dir string
}

type ValidateProperties struct {
	Bound    string `mapstructure:"bound"`
	Superset bool   `mapstructure:"superset"`
	Subset   bool   `mapstructure:"subset"`
}

// ReadFile loads the configuration file at filename. When filename is empty,
// the nearest default file at or above the working directory is used; having
// none is not an error.
func ReadFile(filename string) (File, string, error) {
	if filename == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return File{}, "", err
		}
		found, err := files.FindUp(cwd, DefaultFiles...)
		if err == files.ErrDirNotFound {
			return File{}, "", nil
		}
		if err != nil {
			return File{}, "", err
		}
		filename = found
	}

	var contents map[string]interface{}
	err := files.ReadYAML(&contents, filename)
	if err != nil {
		return File{}, "", errors.Wrapf(err, "could not read config file %s", filename)
	}
	f, err := decode(contents)
	if err != nil {
		return File{}, "", errors.Wrapf(err, "could not parse config file %s", filename)
	}
	f.dir = filepath.Dir(filename)
	return f, filename, nil
}

// New parses the contents of a configuration file.
func New(data []byte) (File, error) {
	// Check whether version is correct. We first unmarshal into a map so that if
	// the type of `version` is not `int`, we can identify that issue distinct
	// from malformed YAML and handle it specially.
	var contents map[string]interface{}
	err := yaml.Unmarshal(data, &contents)
	if err != nil {
		return File{}, err
	}
	return decode(contents)
}

func decode(contents map[string]interface{}) (File, error) {
	if v, ok := contents["version"].(int); !ok || v != 1 {
		return File{}, ErrWrongVersion
	}

	var file File
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &file,
	})
	if err != nil {
		return File{}, err
	}
	err = decoder.Decode(contents)
	if err != nil {
		return File{}, err
	}
	return file, nil
}

// resolve makes a path from the file relative to the file's directory.
func (f File) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || f.dir == "" {
		return path
	}
	return filepath.Join(f.dir, path)
}
