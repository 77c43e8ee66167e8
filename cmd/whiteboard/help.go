package main

import (
	"bytes"
	"embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"text/template"
)

//go:embed templates/*.txt
var helpFS embed.FS

var (
	helpOnce sync.Once
	helpTmpl *template.Template
)

func parseHelpTemplates() {
	helpTmpl = template.Must(template.New("").Funcs(map[string]any{
		"flags": func(fs *flag.FlagSet) []flagInfo {
			result := []flagInfo{}
			if fs == nil {
				return result
			}
			fs.VisitAll(func(f *flag.Flag) {
				result = append(result, flagInfo{f.Name, f.DefValue, f.Usage})
			})
			return result
		},
	}).ParseFS(helpFS, "templates/*.txt"))
}

type flagInfo struct {
	Name     string
	DefValue string
	Usage    string
}

type HelpData interface {
	Program() string
	Template() string
	FlagSet() *flag.FlagSet
}

type UsageError struct {
	of  HelpData
	err error
}

func (e *UsageError) Error() string {
	help, err := e.renderHelp()
	if err != nil {
		return err.Error()
	}
	if e.err != nil {
		return fmt.Sprintf("%v\n\n%s", e.err, help)
	}
	return help
}

func (e *UsageError) Unwrap() error { return e.err }

func (e *UsageError) renderHelp() (string, error) {
	helpOnce.Do(parseHelpTemplates)
	var buf bytes.Buffer
	if err := helpTmpl.ExecuteTemplate(&buf, e.of.Template(), e.of); err != nil {
		log.Printf("error rendering help template: %v", err)
		return "", err
	}
	return buf.String(), nil
}

func usageErrorf(of HelpData, format string, args ...any) error {
	return &UsageError{of: of, err: fmt.Errorf(format, args...)}
}

// usageFunc prints the help of h as a flag.FlagSet Usage hook.
func usageFunc(h HelpData) func() {
	return func() {
		fmt.Fprint(os.Stderr, (&UsageError{of: h}).Error())
	}
}

// parseFlags parses args and turns -h into a UsageError.
func parseFlags(h HelpData, fs *flag.FlagSet, args []string) error {
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return &UsageError{of: h}
		}
		return &UsageError{of: h, err: err}
	}
	return nil
}

func (r *root) Template() string { return "root.txt" }
func (c *openCmd) Template() string { return "open.txt" }
func (c *listCmd) Template() string { return "list.txt" }
func (c *deleteCmd) Template() string { return "delete.txt" }
func (c *renderCmd) Template() string { return "render.txt" }
func (c *replayCmd) Template() string { return "replay.txt" }
func (c *exportCmd) Template() string { return "export.txt" }
func (c *colorsCmd) Template() string { return "colors.txt" }
func (c *widthsCmd) Template() string { return "widths.txt" }
func (c *toolsCmd) Template() string { return "tools.txt" }
func (c *configCmd) Template() string { return "config.txt" }
