// Package schema holds the relational model that daogen generates code from.
//
// The model is a read-only tree:
//
//	Database
//	  └── Schema
//	        └── Table
//	              ├── Column
//	              └── Key (primary key, unique keys)
//
// Every node below the database implements [Definition], exposing its output
// name, comment, owning schema and database. Models are usually produced by
// the compiler/load package, either from a YAML document or by inspecting a
// live database, but they can also be assembled by hand:
//
//	db := &schema.Database{
//	    Schemas: []*schema.Schema{{
//	        Name: "shop",
//	        Tables: []*schema.Table{{
//	            Name: "orders",
//	            Columns: []*schema.Column{
//	                {Name: "id", Type: &field.TypeInfo{Type: field.TypeInt64}},
//	                {Name: "customer_id", Type: &field.TypeInfo{Type: field.TypeInt64}},
//	            },
//	            PrimaryKey: &schema.Key{ColumnNames: []string{"id"}},
//	            UniqueKeys: []*schema.Key{{Name: "orders_customer_uq", ColumnNames: []string{"customer_id"}}},
//	        }},
//	    }},
//	}
//	db.Link()
//
// [Database.Link] wires the back-references and resolves key columns. It must
// be called once the tree is complete and before the model is handed to the
// generator; after that the model is treated as immutable.
package schema
