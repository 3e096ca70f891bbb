// Package deps implements the transitive classpath collector: for every
// classpath class a produced signature or annotation actually references,
// it copies that class's verbatim bytes into the output under a reserved
// prefix, and optionally records which jar contributed which symbols.
package deps

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	classFileSuffix = ".class"
	jarFileSuffix   = ".jar"
)

// ClassPathEntry fetches one classpath class's verbatim bytes by internal
// name (e.g. "java/util/List").
type ClassPathEntry interface {
	ReadClass(internalName string) ([]byte, error)
	String() string
}

// DirectoryClassPathEntry reads class files out of an exploded directory
// tree, internal name mapping directly to a relative path.
type DirectoryClassPathEntry struct {
	Dir string
}

func (e *DirectoryClassPathEntry) String() string { return e.Dir }

func (e *DirectoryClassPathEntry) ReadClass(internalName string) ([]byte, error) {
	return os.ReadFile(filepath.Join(e.Dir, internalName+classFileSuffix))
}

// JarClassPathEntry reads class files out of a jar archive, matching by the
// class's jar-entry path (internalName + ".class").
type JarClassPathEntry struct {
	JarFile string
}

// NewJarClassPathEntry constructs a JarClassPathEntry for jarFile.
func NewJarClassPathEntry(jarFile string) *JarClassPathEntry {
	return &JarClassPathEntry{JarFile: jarFile}
}

func (e *JarClassPathEntry) String() string { return e.JarFile }

func (e *JarClassPathEntry) ReadClass(internalName string) ([]byte, error) {
	r, err := zip.OpenReader(e.JarFile)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	want := internalName + classFileSuffix
	for _, f := range r.File {
		if f.Name != want {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("class %s not found in %s", internalName, e.JarFile)
}

// ClassPath is an ordered list of classpath entries, consulted in order
// exactly as javac's own classpath resolves a simple name: first entry to
// produce the class wins.
type ClassPath struct {
	entries []ClassPathEntry
}

// NewClassPath parses a ":"-separated classpath string into directory and
// jar entries, dispatching on the ".jar" suffix.
func NewClassPath(classPathStr string) (*ClassPath, error) {
	var entries []ClassPathEntry
	for _, seg := range strings.Split(classPathStr, ":") {
		if seg == "" {
			continue
		}
		abs, err := filepath.Abs(seg)
		if err != nil {
			return nil, fmt.Errorf("not a legal classpath entry %q: %w", seg, err)
		}
		if strings.HasSuffix(seg, jarFileSuffix) {
			entries = append(entries, NewJarClassPathEntry(abs))
		} else {
			entries = append(entries, &DirectoryClassPathEntry{Dir: abs})
		}
	}
	return &ClassPath{entries: entries}, nil
}

func (cp *ClassPath) String() string {
	parts := make([]string, len(cp.entries))
	for i, e := range cp.entries {
		parts[i] = e.String()
	}
	return strings.Join(parts, ":")
}

// ReadClass tries each entry in order, returning the bytes from the first
// entry that has internalName along with that entry's string identity (used
// to attribute the symbol to its originating jar in the dependency record).
func (cp *ClassPath) ReadClass(internalName string) ([]byte, string, error) {
	for _, e := range cp.entries {
		if data, err := e.ReadClass(internalName); err == nil {
			return data, e.String(), nil
		}
	}
	return nil, "", fmt.Errorf("class %s not found on classpath %s", internalName, cp.String())
}
