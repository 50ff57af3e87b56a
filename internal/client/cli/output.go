package cli

import (
	"encoding/json"
	"fmt"
)

// print writes v as JSON followed by a newline.
func (a *App) print(v any) error {
	var (
		data []byte
		err  error
	)
	if a.pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(a.out, string(data))
	return err
}
