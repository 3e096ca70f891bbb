// Command headerc is the driver: it reads already-parsed compilation units,
// binds and lowers them, and writes the resulting class files plus an
// optional dependency record. Parsing Java source into the tree form this
// tool consumes is an external collaborator's job (see pkg/tree); sources
// files here are expected to already be in that JSON-serialized shape.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/stackb/headerc/pkg/binder"
	"github.com/stackb/headerc/pkg/classfile"
	"github.com/stackb/headerc/pkg/deps"
	"github.com/stackb/headerc/pkg/diag"
	"github.com/stackb/headerc/pkg/logging"
	"github.com/stackb/headerc/pkg/tree"

	"github.com/stackb/headerc/internal/pipeline"
)

const executableName = "headerc"

type config struct {
	classpath     string
	sources       stringList
	output        string
	release       int
	moduleVersion string
	verbose       bool
}

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

var releaseMajor = map[int]uint16{
	8:  52,
	9:  53,
	10: 54,
	11: 55,
	17: 61,
	21: 65,
}

func main() {
	log.SetPrefix(executableName + ": ")
	log.SetFlags(0)

	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	if err := run(cfg); err != nil {
		log.Fatalln("ERROR:", err)
	}
}

func parseFlags(args []string) (*config, error) {
	cfg := &config{release: 17}
	fs := flag.NewFlagSet(executableName, flag.ExitOnError)
	fs.StringVar(&cfg.classpath, "classpath", "", "colon-separated classpath used to collect transitive dependency bytes")
	fs.Var(&cfg.sources, "sources", "path to a JSON-encoded tree.CompUnit file (repeatable)")
	fs.StringVar(&cfg.output, "output", "", "directory to write output class files and the dependency record into")
	fs.IntVar(&cfg.release, "release", cfg.release, "target class-file major version, by JDK release number")
	fs.StringVar(&cfg.moduleVersion, "module_version", "", "version string recorded in a bound module-info, if present")
	fs.BoolVar(&cfg.verbose, "verbose", false, "enable debug-level operational logging")
	fs.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s -sources unit.json [-sources unit2.json ...] -output DIR\n", executableName)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if len(cfg.sources) == 0 {
		return nil, fmt.Errorf("at least one -sources file is required")
	}
	if cfg.output == "" {
		return nil, fmt.Errorf("-output is required")
	}
	return cfg, nil
}

func run(cfg *config) error {
	logger := logging.New(os.Stderr, cfg.verbose)

	units, err := readUnits(cfg.sources)
	if err != nil {
		return fmt.Errorf("reading sources: %w", err)
	}

	var cp *deps.ClassPath
	if cfg.classpath != "" {
		cp, err = deps.NewClassPath(cfg.classpath)
		if err != nil {
			return fmt.Errorf("classpath: %w", err)
		}
	}

	major, ok := releaseMajor[cfg.release]
	if !ok {
		return fmt.Errorf("unsupported -release %d", cfg.release)
	}

	sink := diag.NewSink()
	b := binder.NewBinder(nil, nil, nil, nil, sink)
	p := pipeline.New(b, cp, pipeline.Options{
		ClassFile:     classfile.Options{MajorVersion: major, MinorVersion: 0},
		ModuleVersion: cfg.moduleVersion,
	}, logger)

	out := p.Run(units)

	if len(out.Diagnostics) > 0 {
		for _, d := range out.Diagnostics {
			fmt.Fprintln(os.Stderr, d.Error())
		}
		return fmt.Errorf("%d diagnostic(s) recorded; no output written", len(out.Diagnostics))
	}

	return writeOutput(cfg.output, out)
}

func readUnits(paths []string) ([]*tree.CompUnit, error) {
	units := make([]*tree.CompUnit, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var cu tree.CompUnit
		if err := json.Unmarshal(data, &cu); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		units = append(units, &cu)
	}
	return units, nil
}

func writeOutput(dir string, out *pipeline.Output) error {
	for name, data := range out.Classes {
		if err := writeClassFile(dir, name, data); err != nil {
			return err
		}
	}
	for name, data := range out.Transitive {
		if err := writeClassFile(dir, deps.TransitivePrefix+name, data); err != nil {
			return err
		}
	}
	if out.Record != nil && len(out.Record.Jars) > 0 {
		f, err := os.Create(filepath.Join(dir, "dependencies.json"))
		if err != nil {
			return err
		}
		defer f.Close()
		if err := deps.WriteRecord(f, out.Record); err != nil {
			return err
		}
	}
	return nil
}

func writeClassFile(dir, internalName string, data []byte) error {
	path := filepath.Join(dir, filepath.FromSlash(internalName)+".class")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
