// Package metadata defines the read-only views of a managed-code metadata
// graph: units (modules and assemblies), namespaces, type definitions and
// references, type members, method bodies and the leaf records hanging off
// them.
//
// Every node that can be referenced exposes both a definition view and a
// reference view, and the same object satisfies both. A FieldDefinition is
// also a FieldReference, a Module is also a ModuleReference, and so on.
// Traversals that dispatch on these interfaces must test the most specific
// view first: specialized and generic-instance references wrap a definition
// and must not be mistaken for one.
//
// The package also declares the contracts consumed from the hosting
// environment: InternFactory, NameTable, PlatformType and Host.
package metadata
