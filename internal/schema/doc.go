// Package schema defines the HCL-tagged structures that mirror the on-disk
// project definition grammar. These types exist purely for decoding; the
// loader translates them into the format-agnostic config model.
package schema
