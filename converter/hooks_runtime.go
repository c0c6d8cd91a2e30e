package converter

import (
	"errors"
	"fmt"
	"strings"
)

func (s *state) applyLinkRenderHook(element string, in LinkRenderInput) (LinkRenderOutput, bool, error) {
	if s.config.LinkHook == nil {
		return LinkRenderOutput{}, false, nil
	}
	if err := s.checkContext(); err != nil {
		return LinkRenderOutput{}, false, err
	}

	out, err := s.config.LinkHook(s.ctx, in)
	if err != nil {
		return LinkRenderOutput{}, false, s.hookError("link", element, in.Target, err)
	}
	if !out.Handled {
		return LinkRenderOutput{}, false, nil
	}

	out.Target = strings.TrimSpace(out.Target)
	if out.Target == "" && !out.TextOnly {
		return LinkRenderOutput{}, false, errors.New("invalid link hook output: handled output requires a non-empty target unless textOnly is true")
	}
	return out, true, nil
}

func (s *state) applyMediaRenderHook(element string, in MediaRenderInput) (MediaRenderOutput, bool, error) {
	if s.config.MediaHook == nil {
		return MediaRenderOutput{}, false, nil
	}
	if err := s.checkContext(); err != nil {
		return MediaRenderOutput{}, false, err
	}

	out, err := s.config.MediaHook(s.ctx, in)
	if err != nil {
		return MediaRenderOutput{}, false, s.hookError("media", element, in.Path, err)
	}
	if !out.Handled {
		return MediaRenderOutput{}, false, nil
	}

	out.Path = strings.TrimSpace(out.Path)
	if out.Path == "" {
		return MediaRenderOutput{}, false, errors.New("invalid media hook output: handled output requires a non-empty path")
	}
	return out, true, nil
}

// hookError applies the resolution mode to a failed hook call. A nil result
// means the caller falls back to built-in rendering.
func (s *state) hookError(kind, element, reference string, err error) error {
	if !errors.Is(err, ErrUnresolved) {
		return fmt.Errorf("%s hook failed: %w", kind, err)
	}
	if s.config.ResolutionMode == ResolutionStrict {
		return fmt.Errorf("unresolved %s reference %q: %w", kind, reference, err)
	}
	s.addWarning(WarningUnresolvedReference, element,
		fmt.Sprintf("unresolved %s reference %q; using fallback rendering", kind, reference))
	return nil
}

// missingAttribute applies the resolution mode to a MissingAttributeError.
func (s *state) missingAttribute(node Node, cause error) error {
	if s.config.ResolutionMode == ResolutionStrict {
		return fmt.Errorf("convert %s: %w", node.Tag, cause)
	}
	s.addWarning(WarningMissingAttribute, node.Tag, cause.Error())
	return nil
}
