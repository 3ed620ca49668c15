package imaging

// Image is one decoded raster image and its metadata. It exclusively owns
// its pixel buffer; every transform replaces that buffer in place and frees
// the old one before returning.
//
// An Image is not safe for concurrent use. After Release every operation
// except Size fails with KindInvalidState.
type Image struct {
	proc   *Processor
	format Format
	width  int
	height int
	buf    *buffer
	path   string
}

// Size returns the dimensions of the current buffer. After Release it
// returns the last dimensions the handle had.
func (im *Image) Size() (width, height int) {
	return im.width, im.height
}

// Format returns the format the handle will be encoded as.
func (im *Image) Format() Format { return im.format }

// Path returns the source path, which is also the default output target. It
// is empty for byte-sourced or released handles.
func (im *Image) Path() string { return im.path }

// MimeType returns "image/jpeg" or "image/png" for the handle's format.
func (im *Image) MimeType() (string, error) {
	mime, err := im.format.MimeType()
	if err != nil {
		return "", newError(KindInvalidState, "mime type", err)
	}
	return mime, nil
}

// SetFormat overrides the format subsequent encodes use. Only "jpeg" and
// "png" are accepted. The pixels are not touched.
func (im *Image) SetFormat(name string) error {
	if err := im.checkLive("set format"); err != nil {
		return err
	}
	f, err := ParseFormat(name)
	if err != nil {
		return err
	}
	im.format = f
	return nil
}

// Release frees the pixel buffer and clears the path. Format and size keep
// their last values. Releasing twice is a no-op.
func (im *Image) Release() {
	if im.buf == nil {
		return
	}
	im.buf.release()
	im.buf = nil
	im.path = ""
}

func (im *Image) checkLive(op string) error {
	if im == nil || im.proc == nil || !im.buf.live() {
		return newError(KindInvalidState, op, ErrReleased)
	}
	return nil
}
