package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-bookingform/pkg/model"
	"github.com/goliatone/go-bookingform/pkg/schema"
	"github.com/goliatone/go-bookingform/pkg/widgets"
)

const bundledName = "<bundled>"

var knownWidgets = widgets.NewRegistry()

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [files or directories...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(), "\nLint booking form definitions. Without paths the bundled definition is checked.\n")
	}
	flag.Parse()
	os.Exit(lint(flag.Args(), os.Stderr))
}

// lint reports every violation to w and returns the process exit code.
func lint(paths []string, w io.Writer) int {
	var violations []violation
	if len(paths) == 0 {
		def, err := schema.Default()
		violations = append(violations, lintDefinition(bundledName, def, err)...)
	}
	for _, path := range expand(paths, &violations) {
		def, err := schema.LoadFile(path)
		violations = append(violations, lintDefinition(path, def, err)...)
	}

	if len(violations) == 0 {
		return 0
	}
	sort.Slice(violations, func(i, j int) bool {
		if violations[i].file == violations[j].file {
			if violations[i].location == violations[j].location {
				return violations[i].message < violations[j].message
			}
			return violations[i].location < violations[j].location
		}
		return violations[i].file < violations[j].file
	})
	for _, v := range violations {
		fmt.Fprintf(w, "%s: %s -> %s\n", v.file, v.location, v.message)
	}
	return 1
}

func lintDefinition(file string, def schema.Definition, loadErr error) []violation {
	if loadErr != nil {
		var schemaErr *model.SchemaError
		if !errors.As(loadErr, &schemaErr) {
			return []violation{{file: file, location: "document", message: loadErr.Error()}}
		}
		out := make([]violation, 0, len(schemaErr.Violations))
		for _, v := range schemaErr.Violations {
			out = append(out, violation{file: file, location: fieldLocation(v.Field), message: v.Message})
		}
		return out
	}

	var out []violation
	for _, field := range def.Schema.Fields() {
		if field.Widget == "" {
			continue
		}
		if !knownWidgets.Known(field.Widget) {
			out = append(out, violation{
				file:     file,
				location: fieldLocation(field.Name),
				message:  fmt.Sprintf("unknown widget %q", field.Widget),
			})
		}
	}
	return out
}

// expand replaces directories with the schema files found beneath them.
func expand(paths []string, violations *[]violation) []string {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.WalkDir(path, func(name string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && schema.IsSchemaFile(name) {
				files = append(files, name)
			}
			return nil
		})
		if err != nil {
			*violations = append(*violations, violation{file: path, location: "directory", message: err.Error()})
		}
	}
	return files
}

func fieldLocation(name string) string {
	if name == "" {
		return "fields"
	}
	return "fields." + name
}
