package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixScene     = "scene"
	PrefixGroup     = "group"
	PrefixShape     = "shape"
	PrefixPath      = "path"
	PrefixSession   = "sess"
	PrefixSelection = "sel"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewSceneID() string     { return New(PrefixScene) }
func NewGroupID() string     { return New(PrefixGroup) }
func NewShapeID() string     { return New(PrefixShape) }
func NewPathID() string      { return New(PrefixPath) }
func NewSessionID() string   { return New(PrefixSession) }
func NewSelectionID() string { return New(PrefixSelection) }

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}
