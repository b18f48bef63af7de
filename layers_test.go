package glint

import (
	"errors"
	"testing"
)

// fakeTarget stands in for a GPU render target in layer stack tests.
type fakeTarget struct {
	id         int
	width      int
	height     int
	sharedWith int // id of the layer whose depth stencil is attached, -1 if own
	destroyed  bool
}

type fakeTargets struct {
	nextID    int
	created   int
	destroyed int
}

func (f *fakeTargets) stack() *layerStack[fakeTarget] {
	return &layerStack[fakeTarget]{
		createLayer: func(w, h int, share *fakeTarget) (fakeTarget, error) {
			f.nextID++
			f.created++
			t := fakeTarget{id: f.nextID, width: w, height: h, sharedWith: -1}
			if share != nil {
				t.sharedWith = share.id
			}
			return t, nil
		},
		createPostprocess: func(w, h int) (fakeTarget, error) {
			f.nextID++
			f.created++
			return fakeTarget{id: f.nextID, width: w, height: h, sharedWith: -1}, nil
		},
		destroy: func(t *fakeTarget) {
			t.destroyed = true
			f.destroyed++
		},
	}
}

func TestLayerStackDepthAccounting(t *testing.T) {
	var f fakeTargets
	s := f.stack()

	base, err := s.beginFrame(800, 600)
	if err != nil {
		t.Fatal(err)
	}
	if base != 0 {
		t.Errorf("base handle = %d, want 0", base)
	}
	if s.depth() != 1 {
		t.Fatalf("depth = %d after beginFrame", s.depth())
	}

	h1, _ := s.push()
	h2, _ := s.push()
	if h1 != 1 || h2 != 2 {
		t.Errorf("handles = %d, %d, want 1, 2", h1, h2)
	}
	if s.depth() != 3 {
		t.Fatalf("depth = %d", s.depth())
	}
	if s.topHandle() != h2 {
		t.Errorf("topHandle = %d, want %d", s.topHandle(), h2)
	}

	s.pop()
	s.pop()
	if s.depth() != 1 {
		t.Fatalf("depth = %d after pops", s.depth())
	}
	s.endFrame()
	if s.depth() != 0 {
		t.Fatalf("depth = %d after endFrame", s.depth())
	}
}

func TestLayerStackPoolReuse(t *testing.T) {
	var f fakeTargets
	s := f.stack()

	// First frame grows the pool to three layers.
	s.beginFrame(800, 600)
	s.push()
	s.push()
	s.pop()
	s.pop()
	s.endFrame()
	if f.created != 3 {
		t.Fatalf("created = %d after first frame", f.created)
	}

	// A second frame at the same depth allocates nothing.
	s.beginFrame(800, 600)
	s.push()
	s.push()
	s.pop()
	s.pop()
	s.endFrame()
	if f.created != 3 {
		t.Errorf("created = %d after second frame, want 3", f.created)
	}
	if f.destroyed != 0 {
		t.Errorf("destroyed = %d, want 0", f.destroyed)
	}
}

func TestLayerStackSharedDepthStencil(t *testing.T) {
	var f fakeTargets
	s := f.stack()

	s.beginFrame(800, 600)
	s.push()
	s.push()

	first := s.layer(0)
	if first.sharedWith != -1 {
		t.Errorf("first layer shares depth stencil with %d", first.sharedWith)
	}
	for h := LayerHandle(1); h < 3; h++ {
		if s.layer(h).sharedWith != first.id {
			t.Errorf("layer %d shares with %d, want %d", h, s.layer(h).sharedWith, first.id)
		}
	}
}

func TestLayerStackResizeDestroysPool(t *testing.T) {
	var f fakeTargets
	s := f.stack()

	s.beginFrame(800, 600)
	s.push()
	if _, err := s.getPostprocess(postprocessPrimary); err != nil {
		t.Fatal(err)
	}
	s.pop()
	s.endFrame()
	created := f.created

	s.beginFrame(1024, 768)
	if f.destroyed != created {
		t.Errorf("destroyed = %d, want %d", f.destroyed, created)
	}
	if got := s.top(); got.width != 1024 || got.height != 768 {
		t.Errorf("base layer %dx%d after resize", got.width, got.height)
	}
	s.endFrame()
}

func TestLayerStackPostprocessLazy(t *testing.T) {
	var f fakeTargets
	s := f.stack()
	s.beginFrame(640, 480)

	if f.created != 1 {
		t.Fatalf("created = %d, want only the base layer", f.created)
	}
	p1, err := s.getPostprocess(postprocessBlendMask)
	if err != nil {
		t.Fatal(err)
	}
	p2, _ := s.getPostprocess(postprocessBlendMask)
	if p1.id != p2.id {
		t.Error("second lookup created a new target")
	}
	if f.created != 2 {
		t.Errorf("created = %d, want 2", f.created)
	}
}

func TestLayerStackSwapPostprocess(t *testing.T) {
	var f fakeTargets
	s := f.stack()
	s.beginFrame(640, 480)

	p, _ := s.getPostprocess(postprocessPrimary)
	sec, _ := s.getPostprocess(postprocessSecondary)
	pid, sid := p.id, sec.id

	s.swapPostprocessPrimarySecondary()
	p, _ = s.getPostprocess(postprocessPrimary)
	sec, _ = s.getPostprocess(postprocessSecondary)
	if p.id != sid || sec.id != pid {
		t.Error("swap did not exchange primary and secondary")
	}
}

func TestLayerStackFailedPushAbsorbsPop(t *testing.T) {
	var f fakeTargets
	s := f.stack()
	create := s.createLayer
	s.createLayer = func(w, h int, share *fakeTarget) (fakeTarget, error) {
		if f.created >= 1 {
			return fakeTarget{}, errors.New("out of memory")
		}
		return create(w, h, share)
	}

	s.beginFrame(640, 480)
	if _, err := s.push(); err == nil {
		t.Fatal("push succeeded with exhausted pool")
	}
	s.pushFailed()

	// The caller still pops the layer it believes it pushed; that pop must
	// not remove the base layer.
	s.pop()
	if s.depth() != 1 {
		t.Fatalf("depth = %d after absorbed pop, want 1", s.depth())
	}
	s.endFrame()
	if s.depth() != 0 {
		t.Fatalf("depth = %d after endFrame", s.depth())
	}
}

func TestLayerClearColors(t *testing.T) {
	// The base layer blits onto the backbuffer unblended, so an empty frame
	// must come out opaque black; pushed layers composite over lower
	// content and must start transparent.
	if baseLayerClear != [4]float32{0, 0, 0, 1} {
		t.Errorf("base layer clear = %v, want opaque black", baseLayerClear)
	}
	if pushedLayerClear != [4]float32{0, 0, 0, 0} {
		t.Errorf("pushed layer clear = %v, want transparent", pushedLayerClear)
	}
}

func TestLayerStackUnbalancedFramePanics(t *testing.T) {
	var f fakeTargets
	s := f.stack()
	s.beginFrame(640, 480)
	s.push()

	defer func() {
		if recover() == nil {
			t.Error("endFrame with extra layer did not panic")
		}
	}()
	s.endFrame()
}

func TestLayerStackHandleRangePanics(t *testing.T) {
	var f fakeTargets
	s := f.stack()
	s.beginFrame(640, 480)
	h, _ := s.push()
	s.pop()

	defer func() {
		if recover() == nil {
			t.Error("popped handle resolved")
		}
	}()
	s.layer(h)
}
