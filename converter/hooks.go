package converter

import (
	"context"
	"errors"
)

// ErrUnresolved indicates that a link or media reference could not be resolved by a hook.
var ErrUnresolved = errors.New("unresolved link or media reference")

// ResolutionMode controls how unresolved references and missing mandatory
// attributes are handled.
type ResolutionMode string

const (
	// ResolutionBestEffort continues conversion, records a warning and falls
	// back to built-in behavior.
	ResolutionBestEffort ResolutionMode = "best_effort"
	// ResolutionStrict fails conversion.
	ResolutionStrict ResolutionMode = "strict"
)

// ConvertOptions carries optional per-conversion context.
type ConvertOptions struct {
	SourcePath string
}

// LinkRenderHook can rewrite reference targets during conversion.
type LinkRenderHook func(ctx context.Context, in LinkRenderInput) (LinkRenderOutput, error)

// MediaRenderHook can rewrite image paths during conversion.
type MediaRenderHook func(ctx context.Context, in MediaRenderInput) (MediaRenderOutput, error)

// LinkRenderInput describes a reference being rendered. Source is the
// element tag (xref, link, ulink, uri). Internal references carry the raw
// linkend as Target.
type LinkRenderInput struct {
	Source     string
	SourcePath string
	Target     string
	Internal   bool
	Text       string
	Attrs      map[string]string
}

// LinkRenderOutput replaces the target of a reference. For internal
// references Target is used verbatim as the anchor id. TextOnly renders the
// label without a reference.
type LinkRenderOutput struct {
	Target   string
	TextOnly bool
	Handled  bool
}

// MediaRenderInput describes an image reference being rendered.
type MediaRenderInput struct {
	SourcePath string
	Path       string
	Alt        string
	Inline     bool
	Attrs      map[string]string
}

// MediaRenderOutput replaces the image path.
type MediaRenderOutput struct {
	Path    string
	Handled bool
}
