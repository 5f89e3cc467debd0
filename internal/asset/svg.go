// Package asset loads the vector indicator and background images.
package asset

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

var (
	ErrInvalidSVG  = errors.New("invalid svg")
	ErrNoDimension = errors.New("svg has no usable width/height or viewBox")
)

var animID = regexp.MustCompile(`^anim(\d\d)$`)

// SVG is an indicator drawing split into its id'd elements. Every element
// with an id becomes a layer that can be rendered on its own, wrapped in the
// groups it sits in so inherited transforms and styles still apply.
type SVG struct {
	width  float64
	height float64
	layers map[string]*oksvg.SvgIcon
}

// LoadSVG reads and parses an indicator file.
func LoadSVG(path string) (*SVG, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := ParseSVG(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

type element struct {
	name  string
	tag   []byte
	start int64
	id    string
}

type layerSource struct {
	id        string
	body      []byte
	ancestors []element
}

// ParseSVG splits data into layers.
func ParseSVG(data []byte) (*SVG, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var (
		stack   []element
		rootTag []byte
		shared  []byte
		sources []layerSource
		inDefs  int
		width   float64
		height  float64
	)

	for {
		offset := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSVG, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			tag := data[offset:dec.InputOffset()]
			e := element{name: rawName(tag), tag: tag, start: offset, id: attr(t, "id")}
			if len(stack) == 0 {
				if t.Name.Local != "svg" {
					return nil, fmt.Errorf("%w: root element is <%s>", ErrInvalidSVG, t.Name.Local)
				}
				rootTag = tag
				width, height = rootSize(t)
			}
			if t.Name.Local == "defs" {
				inDefs++
			}
			stack = append(stack, e)

		case xml.EndElement:
			e := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			end := dec.InputOffset()
			if t.Name.Local == "defs" {
				inDefs--
			}
			if len(stack) == 0 {
				continue
			}
			switch {
			case (t.Name.Local == "defs" || t.Name.Local == "style") && inDefs == 0:
				shared = append(shared, data[e.start:end]...)
			case e.id != "" && inDefs == 0:
				sources = append(sources, layerSource{
					id:        e.id,
					body:      data[e.start:end],
					ancestors: append([]element(nil), stack[1:]...),
				})
			}
		}
	}

	if rootTag == nil {
		return nil, fmt.Errorf("%w: no <svg> element", ErrInvalidSVG)
	}
	if width <= 0 || height <= 0 {
		return nil, ErrNoDimension
	}

	s := &SVG{width: width, height: height, layers: make(map[string]*oksvg.SvgIcon, len(sources))}
	for _, src := range sources {
		doc := layerDocument(rootTag, shared, src)
		icon, err := oksvg.ReadIconStream(bytes.NewReader(doc))
		if err != nil {
			return nil, fmt.Errorf("layer %s: %w", src.id, err)
		}
		s.layers[src.id] = icon
	}
	return s, nil
}

// layerDocument builds a standalone svg holding one layer.
func layerDocument(rootTag, shared []byte, src layerSource) []byte {
	var buf bytes.Buffer
	buf.Write(rootTag)
	buf.Write(shared)
	for _, a := range src.ancestors {
		buf.Write(a.tag)
	}
	buf.Write(src.body)
	for i := len(src.ancestors) - 1; i >= 0; i-- {
		fmt.Fprintf(&buf, "</%s>", src.ancestors[i].name)
	}
	buf.WriteString("</svg>")
	return buf.Bytes()
}

// rawName returns the tag name as written, prefix included.
func rawName(tag []byte) string {
	name := strings.TrimPrefix(string(tag), "<")
	if i := strings.IndexAny(name, " \t\r\n/>"); i >= 0 {
		name = name[:i]
	}
	return name
}

func attr(t xml.StartElement, name string) string {
	for _, a := range t.Attr {
		if a.Name.Local == name && a.Name.Space == "" {
			return a.Value
		}
	}
	return ""
}

// rootSize takes width and height from the <svg> element, falling back to
// the viewBox when they are missing or relative.
func rootSize(t xml.StartElement) (float64, float64) {
	var vbW, vbH float64
	if fields := strings.FieldsFunc(attr(t, "viewBox"), func(r rune) bool { return r == ',' || r == ' ' }); len(fields) == 4 {
		vbW, _ = strconv.ParseFloat(fields[2], 64)
		vbH, _ = strconv.ParseFloat(fields[3], 64)
	}
	w, okW := parseLength(attr(t, "width"))
	h, okH := parseLength(attr(t, "height"))
	if !okW || !okH {
		return vbW, vbH
	}
	return w, h
}

// pxPerUnit converts absolute CSS units to user units at 96 dpi.
var pxPerUnit = map[string]float64{
	"px": 1,
	"in": 96,
	"cm": 96 / 2.54,
	"mm": 96 / 25.4,
	"pt": 96.0 / 72,
	"pc": 16,
}

// parseLength reads an absolute length such as "220", "50mm" or "2in" in
// pixels. Relative lengths (%, em, ex) are rejected.
func parseLength(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	factor := 1.0
	if len(s) > 2 {
		if f, ok := pxPerUnit[strings.ToLower(s[len(s)-2:])]; ok {
			factor = f
			s = strings.TrimSpace(s[:len(s)-2])
		}
	}
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v * factor, true
}

// Size is the native size of the drawing.
func (s *SVG) Size() (float64, float64) {
	return s.width, s.height
}

func (s *SVG) Has(id string) bool {
	_, ok := s.layers[id]
	return ok
}

// Layers returns the layer ids in sorted order.
func (s *SVG) Layers() []string {
	ids := make([]string, 0, len(s.layers))
	for id := range s.layers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AnimLayerCount counts the consecutive anim00, anim01, ... layers.
func (s *SVG) AnimLayerCount() int {
	present := map[int]bool{}
	for id := range s.layers {
		if m := animID.FindStringSubmatch(id); m != nil {
			n, _ := strconv.Atoi(m[1])
			present[n] = true
		}
	}
	n := 0
	for present[n] {
		n++
	}
	return n
}

// RenderLayer draws layer id over dst, scaled from native units. Unknown ids
// draw nothing.
func (s *SVG) RenderLayer(dst *image.RGBA, id string, scale float64) error {
	icon, ok := s.layers[id]
	if !ok {
		return nil
	}
	if dst == nil {
		return fmt.Errorf("render %s: nil destination", id)
	}
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	icon.SetTarget(0, 0, s.width*scale, s.height*scale)
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)
	return nil
}
