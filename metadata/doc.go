// Package metadata contains facilities for working with raw model documents as stored
// in a models repository.
//
// A model document is either a single JSON object, or an array of JSON objects (a
// multi-model or expanded file).  This package deliberately knows very little about
// DTDL: it extracts the identifiers a document declares, and harvests identifier
// references from the positions that name dependencies (extends, component and content
// schemas, relationship targets).  Validating DTDL semantics is the job of a model parser.
//
// Harvesting is lenient.  Malformed references are ignored rather than reported, since
// they do not prevent resolution of everything else.
package metadata
