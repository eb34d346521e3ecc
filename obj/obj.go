// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package obj reads mesh assets in the Wavefront OBJ file format (*.obj)
// into [model.MeshData]. Only geometry is read: vertex positions, normals
// and polygonal faces, which are triangulated as fans. Materials, texture
// coordinates and groups are ignored.
// Basic format info: https://en.wikipedia.org/wiki/Wavefront_.obj_file
package obj

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cogentcore.org/core/math32"
	"cogentcore.org/simscene/model"
)

// Local constants
const (
	blanks   = "\r\n\t "
	invIndex = -1
)

// Decoder contains the decoded data of one obj file.
type Decoder struct {

	// Vertices are the vertex positions.
	Vertices []math32.Vector3

	// Normals are the vertex normals.
	Normals []math32.Vector3

	// Faces are the decoded polygons.
	Faces []Face

	// Warnings has messages about unsupported statements.
	Warnings []string

	// current line number
	line int
}

// Face has the vertex and normal indexes of one polygon.
// Normal indexes are -1 where the face has none.
type Face struct {
	Vertices []int
	Normals  []int
}

// Open reads the given obj file, naming the mesh after the
// file name without its extension.
func Open(filename string) (*model.MeshData, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	md, err := Decode(f, name)
	if err != nil {
		return nil, fmt.Errorf("obj: %s: %w", filename, err)
	}
	return md, nil
}

// Decode reads obj data from r into mesh data with the given name.
func Decode(r io.Reader, name string) (*model.MeshData, error) {
	dec := &Decoder{}
	if err := dec.Parse(r); err != nil {
		return nil, err
	}
	return dec.Mesh(name), nil
}

// Parse reads all of the lines from r.
func (dec *Decoder) Parse(r io.Reader) error {
	bufin := bufio.NewReader(r)
	dec.line = 1
	for {
		line, err := bufin.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		line = strings.Trim(line, blanks)
		if perr := dec.parseLine(line); perr != nil {
			return perr
		}
		if err == io.EOF {
			break
		}
		dec.line++
	}
	return nil
}

// parseLine dispatches one line to the statement parsers.
func (dec *Decoder) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	switch fields[0] {
	case "v":
		v, err := dec.parseVec3(fields[1:])
		if err != nil {
			return err
		}
		dec.Vertices = append(dec.Vertices, v)
	case "vn":
		v, err := dec.parseVec3(fields[1:])
		if err != nil {
			return err
		}
		dec.Normals = append(dec.Normals, v)
	case "f":
		return dec.parseFace(fields[1:])
	case "vt", "o", "g", "s", "usemtl", "mtllib":
	default:
		dec.Warnings = append(dec.Warnings, fmt.Sprintf("line %d: statement not supported: %s", dec.line, fields[0]))
	}
	return nil
}

// parseVec3 parses the three coordinates of a v or vn line.
func (dec *Decoder) parseVec3(fields []string) (math32.Vector3, error) {
	var v [3]float32
	if len(fields) < 3 {
		return math32.Vector3{}, dec.formatError("fewer than 3 coordinates")
	}
	for i, f := range fields[:3] {
		val, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return math32.Vector3{}, dec.formatError(err.Error())
		}
		v[i] = float32(val)
	}
	return math32.Vec3(v[0], v[1], v[2]), nil
}

// parseFace parses a face description line:
// f v1[/vt1][/vn1] v2[/vt2][/vn2] v3[/vt3][/vn3] ...
func (dec *Decoder) parseFace(fields []string) error {
	if len(fields) < 3 {
		return dec.formatError("face with fewer than 3 vertices")
	}
	face := Face{Vertices: make([]int, len(fields)), Normals: make([]int, len(fields))}
	for pos, f := range fields {
		vfields := strings.Split(f, "/")
		vi, err := dec.parseIndex(vfields[0], len(dec.Vertices))
		if err != nil {
			return err
		}
		face.Vertices[pos] = vi
		face.Normals[pos] = invIndex
		if len(vfields) >= 3 && vfields[2] != "" {
			ni, err := dec.parseIndex(vfields[2], len(dec.Normals))
			if err != nil {
				return err
			}
			face.Normals[pos] = ni
		}
	}
	dec.Faces = append(dec.Faces, face)
	return nil
}

// parseIndex parses a 1-based index; negative values are relative
// to the n elements parsed so far.
func (dec *Decoder) parseIndex(s string, n int) (int, error) {
	val, err := strconv.Atoi(s)
	if err != nil {
		return 0, dec.formatError(err.Error())
	}
	var idx int
	switch {
	case val > 0:
		idx = val - 1
	case val < 0:
		idx = n + val
	default:
		return 0, dec.formatError("index value equal to 0")
	}
	if idx < 0 || idx >= n {
		return 0, dec.formatError(fmt.Sprintf("index %d out of range", val))
	}
	return idx, nil
}

// Mesh returns the triangulated mesh for the decoded faces. Every face
// corner becomes its own vertex. Corners without a normal get the
// normal of the face.
func (dec *Decoder) Mesh(name string) *model.MeshData {
	md := &model.MeshData{Name: name}
	for fi := range dec.Faces {
		face := &dec.Faces[fi]
		a := dec.Vertices[face.Vertices[0]]
		b := dec.Vertices[face.Vertices[1]]
		c := dec.Vertices[face.Vertices[2]]
		fnorm := math32.Normal(a, b, c)
		base := uint32(len(md.Vertices))
		for ci := range face.Vertices {
			md.Vertices = append(md.Vertices, dec.Vertices[face.Vertices[ci]])
			if ni := face.Normals[ci]; ni != invIndex {
				md.Normals = append(md.Normals, dec.Normals[ni])
			} else {
				md.Normals = append(md.Normals, fnorm)
			}
		}
		// triangle fan: 0, i-1, i
		for i := 2; i < len(face.Vertices); i++ {
			md.Indices = append(md.Indices, base, base+uint32(i-1), base+uint32(i))
		}
	}
	return md
}

func (dec *Decoder) formatError(msg string) error {
	return fmt.Errorf("%w: line %d: %s", ErrFormat, dec.line, msg)
}

// ErrFormat is returned for malformed obj data.
var ErrFormat = errors.New("obj: format error")
