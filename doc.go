// Package modelsrepo defines an API for resolving Digital Twin Model Identifiers (DTMIs)
// against a models repository.
//
// A models repository stores one JSON model file per identifier, at a path derived from
// the identifier (see package dtmi), and optionally an "expanded" file bundling a model with
// every model it transitively depends on.  Repository content is provided by one or more
// Fetcher implementations; drivers may read a local directory tree, a remote HTTP endpoint,
// etc.  See individual driver documentation under drivers/ for more information.
//
// Resolution of an identifier and its dependencies is performed by a resolv.Client.
package modelsrepo
