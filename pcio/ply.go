package pcio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// plyProperty describes one per-vertex scalar property.
type plyProperty struct {
	name string
	size int
	typ  string
}

// plyScalarSizes maps PLY scalar type names to their encoded sizes.
var plyScalarSizes = map[string]int{
	"char": 1, "int8": 1,
	"uchar": 1, "uint8": 1,
	"short": 2, "int16": 2,
	"ushort": 2, "uint16": 2,
	"int": 4, "int32": 4,
	"uint": 4, "uint32": 4,
	"float": 4, "float32": 4,
	"double": 8, "float64": 8,
}

type plyHeader struct {
	format      string
	vertexCount int
	props       []plyProperty
}

// decodePLY parses a PLY file and extracts the x/y/z coordinates of its
// vertex element. The vertex element must be the first element declared;
// later elements (faces etc.) are ignored.
func decodePLY(data []byte) ([][3]float32, error) {
	marker := bytes.Index(data, []byte("end_header\n"))
	if marker < 0 {
		return nil, fmt.Errorf("%w: missing end_header", ErrFileFormat)
	}
	header, err := parsePLYHeader(data[:marker])
	if err != nil {
		return nil, err
	}
	body := data[marker+len("end_header\n"):]

	switch header.format {
	case "ascii":
		return decodePLYAscii(header, body)
	case "binary_little_endian":
		return decodePLYBinary(header, body)
	default:
		return nil, fmt.Errorf("%w: unsupported ply format %q", ErrFileFormat, header.format)
	}
}

func parsePLYHeader(raw []byte) (*plyHeader, error) {
	lines := strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "ply" {
		return nil, fmt.Errorf("%w: missing ply magic", ErrFileFormat)
	}

	h := &plyHeader{vertexCount: -1}
	inVertex := false
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "comment", "obj_info":
			// ignored
		case "format":
			if len(fields) < 2 {
				return nil, fmt.Errorf("%w: malformed format line", ErrFileFormat)
			}
			h.format = fields[1]
		case "element":
			if len(fields) < 3 {
				return nil, fmt.Errorf("%w: malformed element line", ErrFileFormat)
			}
			if fields[1] == "vertex" {
				if h.vertexCount >= 0 {
					return nil, fmt.Errorf("%w: duplicate vertex element", ErrFileFormat)
				}
				n, err := strconv.Atoi(fields[2])
				if err != nil || n < 0 {
					return nil, fmt.Errorf("%w: bad vertex count %q", ErrFileFormat, fields[2])
				}
				h.vertexCount = n
				inVertex = true
			} else {
				// Vertices must come first so the body offset is known.
				if h.vertexCount < 0 {
					return nil, fmt.Errorf("%w: vertex element must be declared first", ErrFileFormat)
				}
				inVertex = false
			}
		case "property":
			if !inVertex {
				continue
			}
			if len(fields) < 3 {
				return nil, fmt.Errorf("%w: malformed property line", ErrFileFormat)
			}
			if fields[1] == "list" {
				return nil, fmt.Errorf("%w: list property on vertex element", ErrFileFormat)
			}
			size, ok := plyScalarSizes[fields[1]]
			if !ok {
				return nil, fmt.Errorf("%w: unknown property type %q", ErrFileFormat, fields[1])
			}
			h.props = append(h.props, plyProperty{name: fields[2], size: size, typ: fields[1]})
		}
	}

	if h.format == "" {
		return nil, fmt.Errorf("%w: missing format line", ErrFileFormat)
	}
	if h.vertexCount < 0 {
		return nil, fmt.Errorf("%w: missing vertex element", ErrFileFormat)
	}
	for _, axis := range []string{"x", "y", "z"} {
		idx := h.propIndex(axis)
		if idx < 0 {
			return nil, fmt.Errorf("%w: vertex element lacks %s property", ErrFileFormat, axis)
		}
		typ := h.props[idx].typ
		if typ != "float" && typ != "float32" && typ != "double" && typ != "float64" {
			return nil, fmt.Errorf("%w: %s property has non-float type %q", ErrFileFormat, axis, typ)
		}
	}
	return h, nil
}

func (h *plyHeader) propIndex(name string) int {
	for i, p := range h.props {
		if p.name == name {
			return i
		}
	}
	return -1
}

func decodePLYAscii(h *plyHeader, body []byte) ([][3]float32, error) {
	xi, yi, zi := h.propIndex("x"), h.propIndex("y"), h.propIndex("z")

	points := make([][3]float32, 0, h.vertexCount)
	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if len(points) == h.vertexCount {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < len(h.props) {
			return nil, fmt.Errorf("%w: vertex row has %d of %d fields", ErrFileFormat, len(fields), len(h.props))
		}
		var pt [3]float32
		for k, idx := range [3]int{xi, yi, zi} {
			v, err := strconv.ParseFloat(fields[idx], 32)
			if err != nil {
				return nil, fmt.Errorf("%w: bad coordinate %q", ErrFileFormat, fields[idx])
			}
			pt[k] = float32(v)
		}
		points = append(points, pt)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileFormat, err)
	}
	if len(points) != h.vertexCount {
		return nil, fmt.Errorf("%w: expected %d vertices, found %d", ErrFileFormat, h.vertexCount, len(points))
	}
	return points, nil
}

func decodePLYBinary(h *plyHeader, body []byte) ([][3]float32, error) {
	stride := 0
	offsets := make([]int, len(h.props))
	for i, p := range h.props {
		offsets[i] = stride
		stride += p.size
	}
	if len(body) < h.vertexCount*stride {
		return nil, fmt.Errorf("%w: body holds %d bytes, need %d", ErrFileFormat, len(body), h.vertexCount*stride)
	}

	xi, yi, zi := h.propIndex("x"), h.propIndex("y"), h.propIndex("z")
	points := make([][3]float32, h.vertexCount)
	for i := 0; i < h.vertexCount; i++ {
		row := body[i*stride:]
		for k, idx := range [3]int{xi, yi, zi} {
			field := row[offsets[idx]:]
			if h.props[idx].size == 8 {
				points[i][k] = float32(math.Float64frombits(binary.LittleEndian.Uint64(field)))
			} else {
				points[i][k] = math.Float32frombits(binary.LittleEndian.Uint32(field))
			}
		}
	}
	return points, nil
}
