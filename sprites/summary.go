package sprites

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Summary is the manifest of one batch run: every extracted sprite, keyed
// by name in the order they were added, plus run totals.
type Summary struct {
	sprites              map[string]*SpriteResult
	order                []string
	TotalGIFsProcessed   int
	TotalFramesExtracted int
}

func NewSummary() *Summary {
	return &Summary{sprites: make(map[string]*SpriteResult)}
}

// Add merges a result keyed by its name. A result with the same name as an
// earlier one replaces it in place, the totals are adjusted so that they
// always match the sprites present. Returns true if a result was replaced.
func (s *Summary) Add(r *SpriteResult) (replaced bool) {
	if s.sprites == nil {
		s.sprites = make(map[string]*SpriteResult)
	}
	if prev, ok := s.sprites[r.Name]; ok {
		s.TotalFramesExtracted -= prev.FrameCount
		replaced = true
	} else {
		s.order = append(s.order, r.Name)
		s.TotalGIFsProcessed++
	}
	s.sprites[r.Name] = r
	s.TotalFramesExtracted += r.FrameCount
	return
}

func (s *Summary) Get(name string) (*SpriteResult, bool) {
	r, ok := s.sprites[name]
	return r, ok
}

// Names returns sprite names in insertion order.
func (s *Summary) Names() []string {
	return append([]string(nil), s.order...)
}

func (s *Summary) Len() int { return len(s.order) }

func encode_value(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// MarshalJSON writes the manifest with sprites in insertion order. Note that
// json.Marshal() re-escapes HTML characters in the output of MarshalJSON,
// use WriteManifest to get them verbatim.
func (s *Summary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"sprites":{`)
	for i, name := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encode_value(&buf, name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encode_value(&buf, s.sprites[name]); err != nil {
			return nil, err
		}
	}
	buf.WriteString(`},"total_gifs_processed":`)
	buf.WriteString(strconv.Itoa(s.TotalGIFsProcessed))
	buf.WriteString(`,"total_frames_extracted":`)
	buf.WriteString(strconv.Itoa(s.TotalFramesExtracted))
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func expect_delim(dec *json.Decoder, d json.Delim) error {
	t, err := dec.Token()
	if err != nil {
		return err
	}
	if got, ok := t.(json.Delim); !ok || got != d {
		return fmt.Errorf("invalid manifest: expected %q, got %v", d, t)
	}
	return nil
}

func read_key(dec *json.Decoder) (string, error) {
	t, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := t.(string)
	if !ok {
		return "", fmt.Errorf("invalid manifest: expected an object key, got %v", t)
	}
	return key, nil
}

// UnmarshalJSON reads a manifest, keeping the sprites in file order. Totals
// are taken from the file as is.
func (s *Summary) UnmarshalJSON(data []byte) error {
	*s = Summary{sprites: make(map[string]*SpriteResult)}
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expect_delim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		key, err := read_key(dec)
		if err != nil {
			return err
		}
		switch key {
		case "sprites":
			if err = expect_delim(dec, '{'); err != nil {
				return err
			}
			for dec.More() {
				name, err := read_key(dec)
				if err != nil {
					return err
				}
				var r SpriteResult
				if err = dec.Decode(&r); err != nil {
					return fmt.Errorf("invalid manifest entry %q: %w", name, err)
				}
				if _, exists := s.sprites[name]; !exists {
					s.order = append(s.order, name)
				}
				s.sprites[name] = &r
			}
			if err = expect_delim(dec, '}'); err != nil {
				return err
			}
		case "total_gifs_processed":
			err = dec.Decode(&s.TotalGIFsProcessed)
		case "total_frames_extracted":
			err = dec.Decode(&s.TotalFramesExtracted)
		default:
			var skip json.RawMessage
			err = dec.Decode(&skip)
		}
		if err != nil {
			return err
		}
	}
	return expect_delim(dec, '}')
}

// WriteManifest writes s to path as indented JSON, creating parent
// directories as needed.
func WriteManifest(path string, s *Summary) error {
	data, err := s.MarshalJSON()
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if err = json.Indent(&out, data, "", "  "); err != nil {
		return err
	}
	out.WriteByte('\n')
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating manifest directory: %w", err)
	}
	return os.WriteFile(path, out.Bytes(), 0o644)
}

func ReadManifest(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := NewSummary()
	if err = json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
