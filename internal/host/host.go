// Package host bundles the global services a traversal consults: the
// intern factory, the name table and the platform types.
package host

import (
	"github.com/il2js/metamodel/internal/intern"
	"github.com/il2js/metamodel/internal/metadata"
)

// Host is the default metadata.Host.
type Host struct {
	factory  *intern.Factory
	names    *NameTable
	platform *PlatformTypes
}

// New returns a host with a fresh intern factory and name table, and
// platform types defined in an assembly named coreAssembly. An empty
// coreAssembly means mscorlib.
func New(coreAssembly string) *Host {
	if coreAssembly == "" {
		coreAssembly = DefaultCoreAssembly
	}
	f := intern.New()
	return &Host{
		factory:  f,
		names:    NewNameTable(),
		platform: NewPlatformTypes(coreAssembly, f),
	}
}

func (h *Host) InternFactory() metadata.InternFactory { return h.factory }
func (h *Host) NameTable() metadata.NameTable         { return h.names }
func (h *Host) PlatformType() metadata.PlatformType   { return h.platform }

// Platform returns the concrete platform types.
func (h *Host) Platform() *PlatformTypes { return h.platform }

// Interned returns the number of keys the intern factory handed out.
func (h *Host) Interned() int { return h.factory.Len() }
