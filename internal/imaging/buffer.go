package imaging

import "image"

// buffer owns the pixels of one handle. Once released it holds nothing and
// must not be read again.
type buffer struct {
	pix *image.NRGBA
}

func newBuffer(pix *image.NRGBA) *buffer {
	return &buffer{pix: pix}
}

func (b *buffer) live() bool {
	return b != nil && b.pix != nil
}

func (b *buffer) release() {
	if b != nil {
		b.pix = nil
	}
}

func (b *buffer) size() (int, int) {
	if !b.live() {
		return 0, 0
	}
	r := b.pix.Bounds()
	return r.Dx(), r.Dy()
}

// replace installs next as the handle's buffer, frees the previous one and
// resyncs the dimensions from the new pixels.
func (im *Image) replace(next *buffer) {
	prev := im.buf
	im.buf = next
	im.width, im.height = next.size()
	if prev != next {
		prev.release()
	}
}
