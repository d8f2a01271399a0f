package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ido50/sqlqb/internal/stmtfile"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Output formats of the render command
const (
	formatText = "text"
	formatYAML = "yaml"
	formatJSON = "json"
)

type param struct {
	Name  string      `yaml:"name" json:"name"`
	Value interface{} `yaml:"value" json:"value"`
}

type rendered struct {
	File   string        `yaml:"file" json:"file"`
	Name   string        `yaml:"name,omitempty" json:"name,omitempty"`
	SQL    string        `yaml:"sql" json:"sql"`
	Params []param       `yaml:"params,omitempty" json:"params,omitempty"`
	Args   []interface{} `yaml:"args,omitempty" json:"args,omitempty"`
}

func newRenderCmd(opts *options) *cobra.Command {
	var format string
	var workers int

	cmd := &cobra.Command{
		Use:   "render FILE...",
		Short: "Render the statements of statement files without executing them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case formatText, formatYAML, formatJSON:
			default:
				return fmt.Errorf("unknown output format %q", format)
			}

			results, err := renderFiles(cmd, args, workers)
			if err != nil {
				return err
			}

			return writeRendered(opts.stdout, format, results)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text, yaml, json)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "number of files rendered in parallel")

	return cmd
}

// renderFiles renders all statements of the provided files in parallel,
// returning them in file order
func renderFiles(cmd *cobra.Command, files []string, workers int) ([]rendered, error) {
	perFile := make([][]rendered, len(files))

	eg, ctx := errgroup.WithContext(cmd.Context())
	if workers > 0 {
		eg.SetLimit(workers)
	}

	for i, file := range files {
		i, file := i, file
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			results, err := renderFile(file)
			if err != nil {
				return err
			}
			perFile[i] = results
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var all []rendered
	for _, results := range perFile {
		all = append(all, results...)
	}

	return all, nil
}

func renderFile(file string) ([]rendered, error) {
	stmts, err := stmtfile.ReadFile(file)
	if err != nil {
		return nil, err
	}

	results := make([]rendered, 0, len(stmts))
	for i, stmt := range stmts {
		q, err := stmt.Render()
		if err != nil {
			return nil, fmt.Errorf("%s: statement %d: %w", file, i+1, err)
		}

		result := rendered{File: file, Name: stmt.Name, SQL: q.SQL()}
		if q.Named() {
			params := q.Params()
			for _, key := range params.Keys() {
				value, _ := params.Get(key)
				result.Params = append(result.Params, param{Name: key, Value: value})
			}
		} else {
			result.Args = q.Args()
		}

		results = append(results, result)
	}

	return results, nil
}

func writeRendered(w io.Writer, format string, results []rendered) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()
	}

	for i, result := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}

		header := result.File
		if result.Name != "" {
			header += ": " + result.Name
		}
		fmt.Fprintf(w, "-- %s\n%s\n", header, result.SQL)

		for _, p := range result.Params {
			fmt.Fprintf(w, "--   :%s = %s\n", p.Name, formatValue(p.Value))
		}

		if len(result.Args) > 0 {
			values := make([]string, len(result.Args))
			for j, arg := range result.Args {
				values[j] = formatValue(arg)
			}
			fmt.Fprintf(w, "--   args: %s\n", strings.Join(values, ", "))
		}
	}

	return nil
}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
