// Package mcpargs converts between Go structs and MCP tool schemas.
//
// Marshal turns an annotated struct into mcp.ToolOption values so that the
// tool's input schema is declared next to the handler that consumes it;
// NewTool wraps mcp.NewTool with that conversion. Unmarshal populates the
// same struct from the arguments map of an incoming call. Field names are
// converted from CamelCase to snake_case on both paths.
//
// Supported struct tags:
//   - mcp_desc: required, the field description shown to the caller
//   - mcp_required: "true" marks the argument as required
//
// Types implementing Marshaler/Unmarshaler (such as ID) take over their own
// conversion.
package mcpargs

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/mark3labs/mcp-go/mcp"
)

var (
	ErrMarshalArguments   = errors.New("failed to marshal arguments")
	ErrUnmarshalArguments = errors.New("failed to unmarshal arguments")
)

// MCPType identifies the JSON schema type an argument maps to.
type MCPType int

const (
	TypeString MCPType = iota
	TypeNumber
	TypeBoolean
)

// Marshaler is implemented by argument types that declare their own MCP
// schema type.
type Marshaler interface {
	Marshal() MCPType
}

// Unmarshaler is implemented by argument types that decode themselves from a
// raw argument value.
type Unmarshaler interface {
	Unmarshal(v any) error
}

// NewTool is a wrapper around mcp.NewTool that appends the tool options
// derived from the args struct. It panics if the struct is malformed, since
// that is a programming error caught at registration time.
func NewTool(name string, args any, opts ...mcp.ToolOption) mcp.Tool {
	structOpts, err := Marshal(args)
	if err != nil {
		panic(err)
	}

	return mcp.NewTool(name, append(opts, structOpts...)...)
}

// Marshal returns the MCP tool options describing the exported fields of the
// args struct. Supported field kinds are string, bool, the integer and float
// kinds, and any type implementing Marshaler.
func Marshal(args any) ([]mcp.ToolOption, error) {
	t := reflect.TypeOf(args)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: expected struct, got %s", ErrMarshalArguments, t.Kind())
	}

	v := reflect.Indirect(reflect.ValueOf(args))

	var (
		toolOpts []mcp.ToolOption
		errs     error
	)

	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		optName := toSnakeCase(field.Name)

		description := field.Tag.Get("mcp_desc")
		if description == "" {
			errs = errors.Join(errs, fmt.Errorf(`%w: missing "mcp_desc" tag on field %q`, ErrMarshalArguments, field.Name))
			continue
		}

		propOpts := []mcp.PropertyOption{mcp.Description(description)}

		switch field.Tag.Get("mcp_required") {
		case "true":
			propOpts = append(propOpts, mcp.Required())
		case "false", "":
			// optional
		default:
			errs = errors.Join(errs, fmt.Errorf(`%w: invalid "mcp_required" tag on field %q`, ErrMarshalArguments, field.Name))
			continue
		}

		mcpType, err := fieldType(field.Type, v.Field(i))
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("%w: field %q: %w", ErrMarshalArguments, field.Name, err))
			continue
		}

		switch mcpType {
		case TypeString:
			toolOpts = append(toolOpts, mcp.WithString(optName, propOpts...))
		case TypeNumber:
			toolOpts = append(toolOpts, mcp.WithNumber(optName, propOpts...))
		case TypeBoolean:
			toolOpts = append(toolOpts, mcp.WithBoolean(optName, propOpts...))
		}
	}

	if errs != nil {
		return nil, errs
	}

	return toolOpts, nil
}

//nolint:err113 // Errors are wrapped by the caller.
func fieldType(t reflect.Type, value reflect.Value) (MCPType, error) {
	if marshaler, ok := value.Interface().(Marshaler); ok {
		return marshaler.Marshal(), nil
	}

	switch t.Kind() { //nolint:exhaustive // Unhandled kinds are an error.
	case reflect.String:
		return TypeString, nil
	case reflect.Bool:
		return TypeBoolean, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return TypeNumber, nil
	default:
		return 0, fmt.Errorf("unsupported type %s", t.Kind())
	}
}

// Unmarshal populates the struct pointed to by v with the values from the
// arguments map of a tool call. Missing optional arguments leave the
// corresponding field at its zero value; missing required arguments are an
// error. All errors are collected so the caller sees every problem at once.
func Unmarshal(arguments map[string]any, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: destination must be a non-nil pointer to a struct", ErrUnmarshalArguments)
	}

	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: destination must point to a struct, got %s", ErrUnmarshalArguments, rv.Kind())
	}

	rt := rv.Type()

	var errs error

	for i := range rt.NumField() {
		field := rt.Field(i)
		if !field.IsExported() {
			errs = errors.Join(errs, fmt.Errorf("%w: unexported field %q is not supported", ErrUnmarshalArguments, field.Name))
			continue
		}

		value, ok := arguments[toSnakeCase(field.Name)]
		if !ok {
			if field.Tag.Get("mcp_required") == "true" {
				errs = errors.Join(errs, fmt.Errorf("%w: missing required argument %q", ErrUnmarshalArguments, toSnakeCase(field.Name)))
			}

			continue
		}

		fieldValue := rv.Field(i)

		if fieldValue.CanAddr() {
			if unmarshaler, ok := fieldValue.Addr().Interface().(Unmarshaler); ok {
				if err := unmarshaler.Unmarshal(value); err != nil {
					errs = errors.Join(errs, fmt.Errorf("%w: argument %q: %w", ErrUnmarshalArguments, toSnakeCase(field.Name), err))
				}

				continue
			}
		}

		if err := setValue(fieldValue, value); err != nil {
			errs = errors.Join(errs, fmt.Errorf("%w: argument %q: %w", ErrUnmarshalArguments, toSnakeCase(field.Name), err))
		}
	}

	return errs
}

// setValue assigns a raw argument value to the target field, converting
// between the types encoding/json produces (string, bool, float64) and the
// field's kind.
//
//nolint:err113 // Errors are wrapped in Unmarshal().
func setValue(target reflect.Value, value any) error {
	if value == nil {
		return fmt.Errorf("cannot set nil value")
	}

	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(target.Type()) {
		target.Set(rv)
		return nil
	}

	switch target.Kind() { //nolint:exhaustive // Unhandled kinds return an error.
	case reflect.String:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("cannot convert %T to string", value)
		}

		target.SetString(s)

	case reflect.Bool:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("cannot convert %T to bool", value)
		}

		target.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch n := value.(type) {
		case int:
			target.SetInt(int64(n))
		case int64:
			target.SetInt(n)
		case float64:
			target.SetInt(int64(n))
		default:
			return fmt.Errorf("cannot convert %T to int", value)
		}

	case reflect.Float32, reflect.Float64:
		switch n := value.(type) {
		case float64:
			target.SetFloat(n)
		case int:
			target.SetFloat(float64(n))
		default:
			return fmt.Errorf("cannot convert %T to float", value)
		}

	default:
		return fmt.Errorf("unsupported target type: %s", target.Kind())
	}

	return nil
}

// toSnakeCase converts a CamelCase field name to snake_case, keeping
// acronyms like "IID" together.
func toSnakeCase(s string) string {
	var result strings.Builder

	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := unicode.IsLower(rune(s[i-1]))
			nextLower := i < len(s)-1 && unicode.IsLower(rune(s[i+1]))

			if prevLower || nextLower {
				result.WriteRune('_')
			}
		}

		result.WriteRune(unicode.ToLower(r))
	}

	return result.String()
}
