package util

import (
	"encoding/json"
	"fmt"
)

// PrintPrettyJSON prints v as indented JSON on stdout.
func PrintPrettyJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// PrintPrettyJSONSlice prints items as a JSON array. A nil slice prints as [].
func PrintPrettyJSONSlice[T any](items []T) error {
	if len(items) == 0 {
		fmt.Println("[]")
		return nil
	}
	return PrintPrettyJSON(items)
}
