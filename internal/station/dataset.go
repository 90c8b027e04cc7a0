package station

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// FullDatasetSize is the number of stations in JMA's complete AMeDAS table.
// The bundled dataset is a subset; "jma-data station sync" produces the
// full one.
const FullDatasetSize = 1286

//go:embed data/amedas_stations.json
var bundledStations []byte

// Load reads a station dataset: a JSON object mapping station code to
// station record. The object's key order becomes the directory order.
func Load(r io.Reader) (*Directory, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("reading dataset: expected a JSON object")
	}

	var stations []Station
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading dataset key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("reading dataset: unexpected token %v", tok)
		}

		var s Station
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("decoding station %s: %w", key, err)
		}
		if s.Code == "" {
			s.Code = key
		}
		if s.Code != key {
			return nil, fmt.Errorf("station %s: record code %q does not match key", key, s.Code)
		}
		stations = append(stations, s)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("reading dataset end: %w", err)
	}

	return NewDirectory(stations)
}

// LoadFile reads a station dataset from path.
func LoadFile(path string) (*Directory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening station dataset: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Bundled returns the dataset compiled into the binary.
func Bundled() (*Directory, error) {
	return Load(bytes.NewReader(bundledStations))
}

// Write encodes stations as a dataset document in the order given.
func Write(w io.Writer, stations []Station) error {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, s := range stations {
		key, err := json.Marshal(s.Code)
		if err != nil {
			return err
		}
		record, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("encoding station %s: %w", s.Code, err)
		}
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(record)
		if i < len(stations)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")

	_, err := w.Write(buf.Bytes())
	return err
}

var (
	defaultOnce sync.Once
	defaultDir  *Directory
	defaultErr  error
	defaultPath string
)

// SetDefaultPath selects the dataset file used by Default. It only has an
// effect before the first call to Default; an empty path means the bundled
// dataset.
func SetDefaultPath(path string) {
	defaultPath = path
}

// Default returns the process-wide directory, loading it on first use.
// The directory is never reloaded.
func Default() (*Directory, error) {
	defaultOnce.Do(func() {
		if defaultPath != "" {
			defaultDir, defaultErr = LoadFile(defaultPath)
			return
		}
		defaultDir, defaultErr = Bundled()
	})
	return defaultDir, defaultErr
}
