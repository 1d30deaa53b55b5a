package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"dispatch/internal/core/domain/services/matching"
	"dispatch/internal/pkg/errs"

	"gopkg.in/yaml.v3"
)

// instanceFileVersion is the only layout matchctl reads and writes.
const instanceFileVersion = 1

type instanceFile struct {
	Version           int `yaml:"version"`
	matching.Instance `yaml:",inline"`
}

func encodeInstance(w io.Writer, in matching.Instance) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(instanceFile{Version: instanceFileVersion, Instance: in}); err != nil {
		return err
	}
	return enc.Close()
}

func decodeInstance(r io.Reader) (matching.Instance, error) {
	var f instanceFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return matching.Instance{}, errs.NewValueIsRequiredError("instance")
		}
		return matching.Instance{}, fmt.Errorf("failed to parse instance: %w", err)
	}
	if f.Version != instanceFileVersion {
		return matching.Instance{}, errs.NewVersionIsInvalidError("version",
			fmt.Errorf("got %d, want %d", f.Version, instanceFileVersion))
	}
	return f.Instance, nil
}

func readInstanceFile(path string, stdin io.Reader) (matching.Instance, error) {
	if path == "-" {
		return decodeInstance(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return matching.Instance{}, err
	}
	return decodeInstance(bytes.NewReader(data))
}

// withOutput runs fn against stdout for "-" and against a new file otherwise.
func withOutput(path string, stdout io.Writer, fn func(w io.Writer) error) (err error) {
	if path == "-" || path == "" {
		return fn(stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(f)
}
