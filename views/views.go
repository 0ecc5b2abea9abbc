// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Context is the data passed to a template.
type Context = pongo2.Context

// Renderer renders the embedded HTML templates.
type Renderer struct {
	set *pongo2.TemplateSet
}

var registerFilters sync.Once

// New builds a renderer over the embedded templates.
func New() (*Renderer, error) {
	sub, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		return nil, fmt.Errorf("views: open templates: %w", err)
	}

	registerFilters.Do(func() {
		if !pongo2.FilterExists("ago") {
			pongo2.RegisterFilter("ago", filterAgo)
		}
		if !pongo2.FilterExists("comma") {
			pongo2.RegisterFilter("comma", filterComma)
		}
	})

	return &Renderer{set: pongo2.NewSet("views", pongo2.NewFSLoader(sub))}, nil
}

// Render executes the named template and writes it with the given status.
// Nothing is written when the template fails.
func (v *Renderer) Render(w http.ResponseWriter, status int, name string, data Context) error {
	tpl, err := v.set.FromCache(name)
	if err != nil {
		return fmt.Errorf("views: load %s: %w", name, err)
	}
	out, err := tpl.Execute(data)
	if err != nil {
		return fmt.Errorf("views: execute %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = w.Write([]byte(out))
	return err
}

// filterAgo renders a time as "3 hours ago".
func filterAgo(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	switch t := in.Interface().(type) {
	case time.Time:
		return pongo2.AsValue(humanize.Time(t)), nil
	case *time.Time:
		if t == nil {
			return pongo2.AsValue(""), nil
		}
		return pongo2.AsValue(humanize.Time(*t)), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterComma renders an integer with thousands separators.
func filterComma(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(humanize.Comma(int64(in.Integer()))), nil
}
