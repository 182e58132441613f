// Package field describes the semantic value types that schema columns are
// mapped to.
//
// A column's database type (for example "bigint" or "varchar(255)") is mapped
// by the schema loader to a [TypeInfo]. The code generator only looks at the
// TypeInfo: it decides the Go type of value-type fields, of DAO identities and
// of the parameters of the generated fetch methods.
//
//	&field.TypeInfo{Type: field.TypeInt64}                       // int64
//	&field.TypeInfo{Type: field.TypeUUID}                        // uuid.UUID
//	&field.TypeInfo{Type: field.TypeOther, Ident: "decimal.Decimal",
//	    PkgPath: "github.com/shopspring/decimal"}                 // decimal.Decimal
//
// A nil TypeInfo, or one with [TypeInvalid], marks an unmapped column.
package field
