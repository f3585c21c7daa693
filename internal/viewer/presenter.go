package viewer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Presenter shows CPU-rendered frames. Each frame is uploaded into a texture
// attached to a read framebuffer and blitted to the window.
type Presenter struct {
	fbo           uint32
	texture       uint32
	width, height int32
}

// NewPresenter allocates the texture and framebuffer. A GL context must be
// current.
func NewPresenter() (*Presenter, error) {
	p := &Presenter{}
	gl.GenTextures(1, &p.texture)
	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.GenFramebuffers(1, &p.fbo)
	if err := p.resize(1, 1); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

func (p *Presenter) resize(width, height int32) error {
	p.width, p.height = width, height
	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, p.fbo)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, p.texture, 0)
	status := gl.CheckFramebufferStatus(gl.READ_FRAMEBUFFER)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return nil
}

// Upload copies img into the texture, reallocating it when the size changes.
func (p *Presenter) Upload(img *image.NRGBA) error {
	b := img.Bounds()
	w, h := int32(b.Dx()), int32(b.Dy())
	if w == 0 || h == 0 {
		return nil
	}
	if w != p.width || h != p.height {
		if err := p.resize(w, h); err != nil {
			return err
		}
	}

	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, w, h, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	return nil
}

// Blit draws the last uploaded frame over the whole default framebuffer of
// size w*h. Image row 0 lands at the top of the window.
func (p *Presenter) Blit(w, h int, background [4]float32) {
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(w), int32(h))
	gl.ClearColor(background[0], background[1], background[2], background[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, p.fbo)
	// GL rows run bottom-up, so swap the destination y bounds
	gl.BlitFramebuffer(0, 0, p.width, p.height, 0, int32(h), int32(w), 0, gl.COLOR_BUFFER_BIT, gl.LINEAR)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
}

// ReadPixels reads the window's back buffer as a top-down NRGBA image, for
// screenshots of exactly what is on screen.
func ReadPixels(w, h int) *image.NRGBA {
	pixels := make([]byte, w*h*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return FlipRows(pixels, w, h)
}

// FlipRows converts bottom-up RGBA rows into a top-down image.
func FlipRows(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	row := w * 4
	for y := 0; y < h; y++ {
		src := (h - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return img
}

// Destroy releases the GL objects.
func (p *Presenter) Destroy() {
	if p.fbo != 0 {
		gl.DeleteFramebuffers(1, &p.fbo)
		p.fbo = 0
	}
	if p.texture != 0 {
		gl.DeleteTextures(1, &p.texture)
		p.texture = 0
	}
}
