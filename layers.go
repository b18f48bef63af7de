package glint

// The render layer stack backs PushLayer/PopLayer. Layers are pooled:
// popping keeps the underlying render target around for the next push, so
// after a few frames of warm-up a stable scene allocates nothing. All
// pooled layers share the depth stencil buffer of the first layer, which
// keeps clip mask state visible across the whole stack.
//
// Four auxiliary single-sample targets back the compositing and filter
// passes. They are created on first use and live until the next resize.

// Clear colors for freshly activated layers. The base layer starts opaque
// black, the color the final blit must produce for an empty frame; pushed
// layers start fully transparent so they composite over the content below.
var (
	baseLayerClear   = [4]float32{0, 0, 0, 1}
	pushedLayerClear = [4]float32{0, 0, 0, 0}
)

const (
	postprocessPrimary = iota
	postprocessSecondary
	postprocessTertiary
	postprocessBlendMask
	numPostprocess
)

// layerStack owns the pooled render layers and postprocess targets. It is
// generic over the render target type so the pooling and handle rules can
// be exercised without a GPU device.
type layerStack[T any] struct {
	// createLayer allocates a multisampled target. share points at the
	// pool's first layer when one exists, whose depth stencil the new
	// layer must attach.
	createLayer func(width, height int, share *T) (T, error)
	// createPostprocess allocates a single-sample target without depth.
	createPostprocess func(width, height int) (T, error)
	destroy           func(*T)

	width, height int

	pool  []T
	inUse int

	// failedPushes counts pushes that could not allocate a layer. Their
	// matching pops are absorbed, so the push/pop pairing survives a
	// resource-creation failure.
	failedPushes int

	postprocess      [numPostprocess]T
	postprocessValid [numPostprocess]bool
}

// beginFrame readies the stack for a new frame and pushes the base layer.
// A dimension change drops every cached target first.
func (s *layerStack[T]) beginFrame(width, height int) (LayerHandle, error) {
	if s.inUse != 0 {
		panic("layer stack not empty at frame start")
	}
	if width != s.width || height != s.height {
		s.destroyAll()
		s.width = width
		s.height = height
	}
	s.failedPushes = 0
	return s.push()
}

// endFrame verifies the push/pop pairing and pops the base layer.
func (s *layerStack[T]) endFrame() {
	if s.inUse != 1 {
		panic("unbalanced layer push/pop at frame end")
	}
	s.pop()
}

// push activates the next pooled layer, growing the pool when all layers
// are in use, and returns its handle.
func (s *layerStack[T]) push() (LayerHandle, error) {
	if s.inUse == len(s.pool) {
		var share *T
		if len(s.pool) > 0 {
			share = &s.pool[0]
		}
		t, err := s.createLayer(s.width, s.height, share)
		if err != nil {
			return 0, err
		}
		s.pool = append(s.pool, t)
	}
	s.inUse++
	return LayerHandle(s.inUse - 1), nil
}

// pushFailed records a push whose layer could not be allocated. The caller
// keeps rendering into the current top, and the failed push's matching pop
// becomes a no-op.
func (s *layerStack[T]) pushFailed() {
	s.failedPushes++
}

func (s *layerStack[T]) pop() {
	if s.failedPushes > 0 {
		s.failedPushes--
		return
	}
	if s.inUse == 0 {
		panic("pop on empty layer stack")
	}
	s.inUse--
}

// layer resolves a handle to its render target. Handles are stack
// positions, so anything outside the active range is a caller bug.
func (s *layerStack[T]) layer(h LayerHandle) *T {
	if h < 0 || int(h) >= s.inUse {
		panic("layer handle out of range")
	}
	return &s.pool[h]
}

func (s *layerStack[T]) top() *T {
	return s.layer(s.topHandle())
}

func (s *layerStack[T]) topHandle() LayerHandle {
	return LayerHandle(s.inUse - 1)
}

func (s *layerStack[T]) depth() int {
	return s.inUse
}

// getPostprocess returns the postprocess target at index i, creating it on
// first use at the current frame dimensions.
func (s *layerStack[T]) getPostprocess(i int) (*T, error) {
	if !s.postprocessValid[i] {
		t, err := s.createPostprocess(s.width, s.height)
		if err != nil {
			return nil, err
		}
		s.postprocess[i] = t
		s.postprocessValid[i] = true
	}
	return &s.postprocess[i], nil
}

// swapPostprocessPrimarySecondary exchanges the two scratch targets. The
// filter passes ping-pong between them and end by leaving their result in
// primary.
func (s *layerStack[T]) swapPostprocessPrimarySecondary() {
	s.postprocess[postprocessPrimary], s.postprocess[postprocessSecondary] =
		s.postprocess[postprocessSecondary], s.postprocess[postprocessPrimary]
	s.postprocessValid[postprocessPrimary], s.postprocessValid[postprocessSecondary] =
		s.postprocessValid[postprocessSecondary], s.postprocessValid[postprocessPrimary]
}

// destroyAll releases every cached target. Called on resize and shutdown.
func (s *layerStack[T]) destroyAll() {
	for i := range s.pool {
		s.destroy(&s.pool[i])
	}
	s.pool = s.pool[:0]
	s.inUse = 0
	for i := range s.postprocess {
		if s.postprocessValid[i] {
			s.destroy(&s.postprocess[i])
			s.postprocessValid[i] = false
		}
	}
}
