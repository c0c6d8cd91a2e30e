package converter

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hookContextKey string

const traceContextKey hookContextKey = "trace"

func externalLinkPara() Node {
	return para(Element("link", attrs("xlink:href", "https://wiki.example/pages/123"), Text("Page")))
}

func figure(path string) Node {
	return el("figure",
		el("title", Text("Diagram")),
		el("mediaobject",
			el("imageobject", Element("imagedata", attrs("fileref", path))),
			el("textobject", el("phrase", Text("Arch"))),
		),
	)
}

func TestLinkHookRewritesInternalReference(t *testing.T) {
	var called atomic.Bool
	conv := newTestConverter(t, Config{
		LinkHook: func(ctx context.Context, in LinkRenderInput) (LinkRenderOutput, error) {
			called.Store(true)
			assert.Equal(t, "hook-test", ctx.Value(traceContextKey))
			assert.Equal(t, "xref", in.Source)
			assert.Equal(t, "docs/guide.xml", in.SourcePath)
			assert.Equal(t, "install", in.Target)
			assert.True(t, in.Internal)
			return LinkRenderOutput{Target: "setup.adoc#install", Handled: true}, nil
		},
	})

	root := para(Text("See "), Element("xref", attrs("linkend", "install")), Text("."))
	ctx := context.WithValue(context.Background(), traceContextKey, "hook-test")
	result, err := conv.ConvertWithContext(ctx, root, ConvertOptions{SourcePath: "docs/guide.xml"})
	require.NoError(t, err)
	assert.True(t, called.Load())
	assert.Equal(t, "See <<setup.adoc#install>>.\n", result.AsciiDoc)
}

func TestLinkHookRewritesExternalLink(t *testing.T) {
	conv := newTestConverter(t, Config{
		LinkHook: func(_ context.Context, in LinkRenderInput) (LinkRenderOutput, error) {
			assert.Equal(t, "link", in.Source)
			assert.Equal(t, "https://wiki.example/pages/123", in.Target)
			assert.Equal(t, "Page", in.Text)
			assert.False(t, in.Internal)
			return LinkRenderOutput{Target: "../pages/123.adoc", Handled: true}, nil
		},
	})

	result, err := conv.Convert(externalLinkPara())
	require.NoError(t, err)
	assert.Equal(t, "link:../pages/123.adoc[Page]\n", result.AsciiDoc)
}

func TestLinkHookTextOnly(t *testing.T) {
	conv := newTestConverter(t, Config{
		LinkHook: func(_ context.Context, _ LinkRenderInput) (LinkRenderOutput, error) {
			return LinkRenderOutput{TextOnly: true, Handled: true}, nil
		},
	})

	result, err := conv.Convert(externalLinkPara())
	require.NoError(t, err)
	assert.Equal(t, "Page\n", result.AsciiDoc)
}

func TestMediaHookRewritesPath(t *testing.T) {
	conv := newTestConverter(t, Config{
		MediaHook: func(_ context.Context, in MediaRenderInput) (MediaRenderOutput, error) {
			assert.Equal(t, "img/a.png", in.Path)
			assert.Equal(t, "Arch", in.Alt)
			assert.False(t, in.Inline)
			return MediaRenderOutput{Path: "assets/a.png", Handled: true}, nil
		},
	})

	result, err := conv.Convert(figure("img/a.png"))
	require.NoError(t, err)
	assert.Equal(t, ".Diagram\nimage::assets/a.png[Arch]\n", result.AsciiDoc)
}

func TestUnhandledHooksFallbackToExistingBehavior(t *testing.T) {
	t.Run("link", func(t *testing.T) {
		conv := newTestConverter(t, Config{
			LinkHook: func(_ context.Context, _ LinkRenderInput) (LinkRenderOutput, error) {
				return LinkRenderOutput{Target: "ignored.adoc", Handled: false}, nil
			},
		})

		result, err := conv.Convert(externalLinkPara())
		require.NoError(t, err)
		assert.Equal(t, "https://wiki.example/pages/123[Page]\n", result.AsciiDoc)
	})

	t.Run("media", func(t *testing.T) {
		conv := newTestConverter(t, Config{
			MediaHook: func(_ context.Context, _ MediaRenderInput) (MediaRenderOutput, error) {
				return MediaRenderOutput{Path: "ignored.png", Handled: false}, nil
			},
		})

		result, err := conv.Convert(figure("img/a.png"))
		require.NoError(t, err)
		assert.Equal(t, ".Diagram\nimage::img/a.png[Arch]\n", result.AsciiDoc)
	})
}

func TestHookErrUnresolvedBestEffortWarnsAndFallsBack(t *testing.T) {
	conv := newTestConverter(t, Config{
		LinkHook: func(_ context.Context, _ LinkRenderInput) (LinkRenderOutput, error) {
			return LinkRenderOutput{}, ErrUnresolved
		},
		MediaHook: func(_ context.Context, _ MediaRenderInput) (MediaRenderOutput, error) {
			return MediaRenderOutput{}, ErrUnresolved
		},
	})

	result, err := conv.Convert(externalLinkPara())
	require.NoError(t, err)
	assert.Equal(t, "https://wiki.example/pages/123[Page]\n", result.AsciiDoc)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningUnresolvedReference, result.Warnings[0].Type)

	result, err = conv.Convert(figure("img/a.png"))
	require.NoError(t, err)
	assert.Equal(t, ".Diagram\nimage::img/a.png[Arch]\n", result.AsciiDoc)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "imagedata", result.Warnings[0].Element)
}

func TestHookErrUnresolvedStrictFailsConversion(t *testing.T) {
	conv := newTestConverter(t, Config{
		ResolutionMode: ResolutionStrict,
		LinkHook: func(_ context.Context, _ LinkRenderInput) (LinkRenderOutput, error) {
			return LinkRenderOutput{}, ErrUnresolved
		},
	})

	_, err := conv.Convert(externalLinkPara())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnresolved)
	assert.Contains(t, err.Error(), "unresolved link reference")
}

func TestHookFailureIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	conv := newTestConverter(t, Config{
		LinkHook: func(_ context.Context, _ LinkRenderInput) (LinkRenderOutput, error) {
			return LinkRenderOutput{}, boom
		},
	})

	_, err := conv.Convert(externalLinkPara())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "link hook failed")
}

func TestHookValidationErrors(t *testing.T) {
	t.Run("link output requires target", func(t *testing.T) {
		conv := newTestConverter(t, Config{
			LinkHook: func(_ context.Context, _ LinkRenderInput) (LinkRenderOutput, error) {
				return LinkRenderOutput{Handled: true}, nil
			},
		})

		_, err := conv.Convert(externalLinkPara())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "handled output requires a non-empty target")
	})

	t.Run("media output requires path", func(t *testing.T) {
		conv := newTestConverter(t, Config{
			MediaHook: func(_ context.Context, _ MediaRenderInput) (MediaRenderOutput, error) {
				return MediaRenderOutput{Path: "  ", Handled: true}, nil
			},
		})

		_, err := conv.Convert(figure("img/a.png"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "handled output requires a non-empty path")
	})
}

func TestMissingAttributeBestEffort(t *testing.T) {
	t.Run("xref without linkend", func(t *testing.T) {
		result, err := newTestConverter(t, Config{}).Convert(para(Text("see "), el("xref")))
		require.NoError(t, err)
		assert.Equal(t, "see\n", result.AsciiDoc)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, WarningMissingAttribute, result.Warnings[0].Type)
		assert.Contains(t, result.Warnings[0].Message, "linkend")
	})

	t.Run("imagedata without fileref", func(t *testing.T) {
		root := el("figure", el("mediaobject", el("imageobject", el("imagedata"))))
		result, err := newTestConverter(t, Config{}).Convert(root)
		require.NoError(t, err)
		assert.Empty(t, result.AsciiDoc)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, "imagedata", result.Warnings[0].Element)
	})
}

func TestMissingAttributeStrict(t *testing.T) {
	conv := newTestConverter(t, Config{ResolutionMode: ResolutionStrict})

	_, err := conv.Convert(para(el("xref")))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingAttribute)

	var missing *MissingAttributeError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "xref", missing.Element)
	assert.Equal(t, "linkend", missing.Attribute)
}

func TestImageMacroAttributes(t *testing.T) {
	root := el("mediaobject",
		el("imageobject", Element("imagedata", attrs("fileref", "a.png", "width", "50%"))),
		el("alt", Text("Chart, annual")),
	)

	assert.Equal(t, "image::a.png[\"Chart, annual\",width=50%]\n", convertTree(t, Config{}, root))
}

func TestConvertWithContextCancellationPropagatesToHook(t *testing.T) {
	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), traceContextKey, "context-cancel"))

	hookCalled := atomic.Bool{}
	conv := newTestConverter(t, Config{
		LinkHook: func(hookCtx context.Context, _ LinkRenderInput) (LinkRenderOutput, error) {
			hookCalled.Store(true)
			assert.Equal(t, "context-cancel", hookCtx.Value(traceContextKey))
			cancel()
			<-hookCtx.Done()
			return LinkRenderOutput{}, hookCtx.Err()
		},
	})

	_, err := conv.ConvertWithContext(ctx, externalLinkPara(), ConvertOptions{})
	require.Error(t, err)
	assert.True(t, hookCalled.Load())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConcurrentConvertWithThreadSafeHook(t *testing.T) {
	var (
		mu    sync.Mutex
		calls int
	)

	conv := newTestConverter(t, Config{
		MediaHook: func(_ context.Context, _ MediaRenderInput) (MediaRenderOutput, error) {
			mu.Lock()
			calls++
			mu.Unlock()
			return MediaRenderOutput{Handled: false}, nil
		},
	})

	const workers = 8
	const iterations = 100

	errCh := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				result, err := conv.Convert(figure("img/a.png"))
				if err != nil {
					errCh <- err
					return
				}
				if result.AsciiDoc != ".Diagram\nimage::img/a.png[Arch]\n" {
					errCh <- errors.New("unexpected asciidoc output")
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, workers*iterations, calls)
}
