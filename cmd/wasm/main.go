//go:build js && wasm

// Package main provides WASM bindings for the validation engine, letting a
// browser validate JSON instances against a schema without a round trip to
// a server.
package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/dlovans/verita/pkg/lint"
	"github.com/dlovans/verita/pkg/schema"
)

func main() {
	js.Global().Set("VeritaValidate", js.FuncOf(veritaValidate))
	js.Global().Set("VeritaLint", js.FuncOf(veritaLint))
	select {}
}

// veritaValidate is the JS-callable wrapper for schema.Document.Validate.
// Usage: VeritaValidate(schemaJsonString, instanceJsonString, outputFormat) -> report object
func veritaValidate(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return makeError("VeritaValidate requires 2 arguments: schemaJson, instanceJson")
	}

	schemaText := args[0].String()
	instanceText := args[1].String()
	outputFormat := "detailed"
	if len(args) >= 3 {
		outputFormat = args[2].String()
	}

	opts := schema.NewOptions(schema.WithOutputFormat(outputFormatFromString(outputFormat)))

	doc, err := schema.ParseBytes([]byte(schemaText), opts)
	if err != nil {
		return makeError("invalid schema: " + err.Error())
	}

	var instance any
	if err := json.Unmarshal([]byte(instanceText), &instance); err != nil {
		return makeError("invalid instance: " + err.Error())
	}

	result := doc.Validate(instance, opts)
	report := schema.Format(result, opts.OutputFormat)
	return toJSObject(report)
}

// veritaLint is the JS-callable wrapper for lint.Run.
// Usage: VeritaLint(schemaJsonString) -> { valid: boolean, issues: [...] }
func veritaLint(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return makeError("VeritaLint requires 1 argument: schemaJson")
	}
	result, err := lint.Run(args[0].String())
	if err != nil {
		return makeError(err.Error())
	}
	return toJSObject(result)
}

func outputFormatFromString(s string) schema.OutputFormat {
	switch s {
	case "flag":
		return schema.OutputFlag
	case "basic":
		return schema.OutputBasic
	default:
		return schema.OutputDetailed
	}
}

func makeError(msg string) map[string]any {
	return map[string]any{"error": msg}
}

// toJSObject round-trips a Go value through JSON so it reaches JavaScript
// as a plain object rather than an opaque wrapped struct.
func toJSObject(v any) any {
	raw, err := json.Marshal(v)
	if err != nil {
		return makeError(err.Error())
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return makeError(err.Error())
	}
	return out
}
