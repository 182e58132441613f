package field

import (
	"fmt"
	"strings"
)

// A Type represents a field type.
type Type uint8

// List of field types.
const (
	TypeInvalid Type = iota
	TypeBool
	TypeTime
	TypeJSON
	TypeUUID
	TypeBytes
	TypeEnum
	TypeString
	TypeOther
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt
	TypeInt64
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint
	TypeUint64
	TypeFloat32
	TypeFloat64
	endTypes
)

var (
	typeNames = [...]string{
		TypeInvalid: "invalid",
		TypeBool:    "bool",
		TypeTime:    "time.Time",
		TypeJSON:    "json.RawMessage",
		TypeUUID:    "uuid.UUID",
		TypeBytes:   "[]byte",
		TypeEnum:    "string",
		TypeString:  "string",
		TypeOther:   "other",
		TypeInt:     "int",
		TypeInt8:    "int8",
		TypeInt16:   "int16",
		TypeInt32:   "int32",
		TypeInt64:   "int64",
		TypeUint:    "uint",
		TypeUint8:   "uint8",
		TypeUint16:  "uint16",
		TypeUint32:  "uint32",
		TypeUint64:  "uint64",
		TypeFloat32: "float32",
		TypeFloat64: "float64",
	}
	// keywords used in schema documents.
	typeKeywords = [...]string{
		TypeInvalid: "invalid",
		TypeBool:    "bool",
		TypeTime:    "time",
		TypeJSON:    "json",
		TypeUUID:    "uuid",
		TypeBytes:   "bytes",
		TypeEnum:    "enum",
		TypeString:  "string",
		TypeOther:   "other",
		TypeInt:     "int",
		TypeInt8:    "int8",
		TypeInt16:   "int16",
		TypeInt32:   "int32",
		TypeInt64:   "int64",
		TypeUint:    "uint",
		TypeUint8:   "uint8",
		TypeUint16:  "uint16",
		TypeUint32:  "uint32",
		TypeUint64:  "uint64",
		TypeFloat32: "float32",
		TypeFloat64: "float64",
	}
)

// String returns the Go type name of t.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Keyword returns the name of t in schema documents.
func (t Type) Keyword() string {
	if t < endTypes {
		return typeKeywords[t]
	}
	return typeKeywords[TypeInvalid]
}

// Valid reports if the given type is known.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// Numeric reports if the given type is a numeric type.
func (t Type) Numeric() bool {
	return t >= TypeInt8 && t < endTypes
}

// Integer reports if the given type is an integer type.
func (t Type) Integer() bool {
	return t >= TypeInt8 && t <= TypeUint64
}

// ParseType returns the type named by the given schema-document keyword.
func ParseType(s string) (Type, error) {
	k := strings.ToLower(strings.TrimSpace(s))
	for t := TypeBool; t < endTypes; t++ {
		if typeKeywords[t] == k {
			return t, nil
		}
	}
	return TypeInvalid, fmt.Errorf("field: unknown type %q", s)
}

// TypeInfo holds the information regarding field type.
// Used by the code generator to produce the Go types of columns.
type TypeInfo struct {
	Type    Type
	Ident   string
	PkgPath string
}

// Valid reports if the type info describes a usable Go type.
func (t *TypeInfo) Valid() bool {
	if t == nil || !t.Type.Valid() {
		return false
	}
	if t.Type == TypeOther {
		return t.Ident != ""
	}
	return true
}

// String returns the Go type name of the info.
func (t *TypeInfo) String() string {
	switch {
	case t == nil:
		return typeNames[TypeInvalid]
	case t.Ident != "":
		return t.Ident
	default:
		return t.Type.String()
	}
}
