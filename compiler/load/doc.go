// Package load builds the schema model that code is generated from.
//
// A model is either read from a schema document, a YAML (or JSON) file
// describing schemas, tables, columns and keys:
//
//	schemas:
//	  - name: shop
//	    tables:
//	      - name: orders
//	        columns:
//	          - {name: id, type: int64}
//	          - {name: customer_id, type: int64}
//	        primary_key: [id]
//	        unique_keys:
//	          - {name: orders_customer_uq, columns: [customer_id]}
//
// or inspected from a live database with atlas. Inspect accepts postgres,
// mysql and sqlite URLs.
package load
