// Package repository holds one typed repository per store collection.
// Repositories only translate between Go values and store requests; the
// rules about what may be written live in the domain packages.
package repository

import "github.com/iliyamo/lawshop/internal/store"

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = store.ErrNotFound
