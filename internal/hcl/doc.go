// Package hcl implements the config.Loader interface for HCL project
// definition files. It decodes the raw syntax into the schema package's
// tagged structs, then translates those into the format-agnostic config
// model, evaluating any free-form settings expressions along the way.
package hcl
