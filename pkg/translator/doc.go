// Package translator turns data dictionary rows into schema properties.
//
// Each row is converted on its own. The semantic type follows a fixed
// precedence: a "yesno" field is boolean, an "integer" or "number" text
// validation wins next, radio and dropdown fields become label-constrained
// strings (or integers when numeric choice encoding is requested), and
// everything else is a string. Validation bounds are attached whenever both
// are present and numeric, whatever the semantic type.
package translator
