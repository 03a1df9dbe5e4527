// Package textutil provides text helpers for identifier derivation and
// fuzzy matching.
//
// Identifiers for songs and tracks are lowercase dash-separated tokens that
// double as directory names under the catalog, so sanitization collapses
// anything filesystem-hostile. Search matching uses term-frequency
// fingerprints compared by cosine similarity; tokenization lowercases,
// splits on non-alphanumeric characters, and filters tokens shorter than
// 3 characters.
package textutil
