// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Open reads a table snapshot from the given YAML file.
func Open(filename string) (*Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read reads a table snapshot in YAML format.
func Read(r io.Reader) (*Table, error) {
	t := &Table{}
	if err := yaml.NewDecoder(r).Decode(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Save writes the table as YAML to the given file.
func (t *Table) Save(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	err = t.Write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// Write writes the table in YAML format.
func (t *Table) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return err
	}
	return enc.Close()
}
