package display

import (
	"testing"

	"raycaster/internal/render"
	"raycaster/internal/world"
)

func newSampleRenderer(t *testing.T, width, height int) *render.Renderer {
	t.Helper()
	return newSampleRendererWith(t, render.Options{Width: width, Height: height})
}

func newSampleRendererWith(t *testing.T, opts render.Options) *render.Renderer {
	t.Helper()
	m, err := world.SampleDescription().Build(world.GenerateAtlas(), world.GenerateSky())
	if err != nil {
		t.Fatalf("build sample map: %v", err)
	}
	r, err := render.NewRenderer(m, opts)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	t.Cleanup(r.Close)
	return r
}
