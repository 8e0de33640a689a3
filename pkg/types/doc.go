// Package types defines the Cupboard and Table storage interfaces, the
// entity types shared by the tracker (children, words, caregivers, reference
// words), the derived practice and growth types, and the standard errors.
package types
