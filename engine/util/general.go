package util

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

func FromJson(data []byte, msg any) error {
	err := json.Unmarshal(data, msg)
	if err != nil {
		return errors.Wrap(err, "decode json")
	}
	return nil
}

// ReadJsonFile decodes the file at path into msg. Fields missing from the
// file keep the values msg already has.
func ReadJsonFile(path string, msg any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}
	return errors.Wrap(FromJson(data, msg), path)
}
