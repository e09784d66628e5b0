// Package dictionary exposes the public contracts for reading REDCap-style data
// dictionary exports: where a dictionary comes from (Source), the raw payload
// (Document), and the validated tabular view handed to the translator (Table).
// Loader and reader implementations live under internal/dictionary.
package dictionary
