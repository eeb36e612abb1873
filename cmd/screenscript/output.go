package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/deepnoodle-ai/screenscript/object"
	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
)

func writeJSON(w io.Writer, value any) error {
	var data []byte
	var err error
	if color.NoColor {
		data, err = json.MarshalIndent(value, "", "  ")
	} else {
		data, err = prettyjson.Marshal(value)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// objectJSON converts a runtime value for JSON output.
func objectJSON(obj object.Object) (json.RawMessage, error) {
	if obj == nil {
		return json.RawMessage("null"), nil
	}
	data, err := object.ToJSON(obj)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// varsJSON converts a memory dump for JSON output.
func varsJSON(vars map[string]object.Object) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(vars))
	for name, value := range vars {
		data, err := objectJSON(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[name] = data
	}
	return out, nil
}

// writeVars prints a memory dump as sorted "name = value" lines.
func writeVars(w io.Writer, vars map[string]object.Object) error {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%s = %s\n", name, vars[name].Inspect()); err != nil {
			return err
		}
	}
	return nil
}
