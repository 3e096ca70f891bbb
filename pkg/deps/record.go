package deps

import (
	"encoding/json"
	"io"
)

// JarUsage lists the internal class names consumed from one classpath jar.
type JarUsage struct {
	Jar     string   `json:"jar,omitempty"`
	Symbols []string `json:"symbols,omitempty"`
}

// Record is the optional dependency record written alongside the output
// jar: for each directly-referenced classpath jar, which symbols this
// compilation actually consumed from it, so a downstream build can trim an
// overly broad classpath.
type Record struct {
	Jars []JarUsage `json:"jars,omitempty"`
}

// WriteRecord marshals rec as indented JSON to w.
func WriteRecord(w io.Writer, rec *Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ReadRecord unmarshals a dependency record from r.
func ReadRecord(r io.Reader) (*Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
