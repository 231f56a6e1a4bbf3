package files

import (
	"github.com/BurntSushi/toml"
	"github.com/apex/log"
	yaml "gopkg.in/yaml.v2"
)

func ReadTOML(v interface{}, pathElems ...string) error {
	return ReadUnmarshal(toml.Unmarshal, v, pathElems...)
}

func ReadYAML(v interface{}, pathElems ...string) error {
	return ReadUnmarshal(yaml.Unmarshal, v, pathElems...)
}

type UnmarshalFunc func(data []byte, v interface{}) error

func ReadUnmarshal(unmarshal UnmarshalFunc, v interface{}, pathElems ...string) error {
	contents, err := Read(pathElems...)
	if err != nil {
		return err
	}
	err = unmarshal(contents, v)
	if err != nil {
		log.WithError(err).WithField("pathElems", pathElems).Debug("could not parse file")
	}
	return err
}
