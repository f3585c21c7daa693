package texture

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

// ErrTGAFormat is returned for TGA files this decoder does not handle.
var ErrTGAFormat = errors.New("unsupported TGA")

func init() {
	// TGA has no magic number; match on the colour map flag and image type.
	image.RegisterFormat("tga", "?\x00\x02", Decode, DecodeConfig)
	image.RegisterFormat("tga", "?\x00\x0a", Decode, DecodeConfig)
}

type tgaHeader struct {
	idLength      int
	imageType     byte
	width, height int
	bytesPerPixel int
	topToBottom   bool
}

func readTGAHeader(r io.Reader) (tgaHeader, error) {
	var b [tgaHeaderSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return tgaHeader{}, fmt.Errorf("reading TGA header: %w", err)
	}

	h := tgaHeader{
		idLength:  int(b[0]),
		imageType: b[2],
		width:     int(b[12]) | int(b[13])<<8,
		height:    int(b[14]) | int(b[15])<<8,
		// bit 5 of the descriptor marks top-to-bottom row order
		topToBottom: b[17]&0x20 != 0,
	}
	if b[1] != 0 {
		return h, fmt.Errorf("color-mapped image: %w", ErrTGAFormat)
	}
	if h.imageType != TGATypeUncompressed && h.imageType != TGATypeRLE {
		return h, fmt.Errorf("image type %d: %w", h.imageType, ErrTGAFormat)
	}
	switch bpp := int(b[16]); bpp {
	case 24, 32:
		h.bytesPerPixel = bpp / 8
	default:
		return h, fmt.Errorf("bit depth %d: %w", bpp, ErrTGAFormat)
	}
	return h, nil
}

// DecodeConfig returns the dimensions of a TGA image without decoding pixels.
func DecodeConfig(r io.Reader) (image.Config, error) {
	h, err := readTGAHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.NRGBAModel, Width: h.width, Height: h.height}, nil
}

// Decode reads an uncompressed or RLE true-colour TGA into an NRGBA image.
// 24-bit images decode as opaque.
func Decode(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	h, err := readTGAHeader(br)
	if err != nil {
		return nil, err
	}
	if _, err := br.Discard(h.idLength); err != nil {
		return nil, fmt.Errorf("TGA id field truncated: %w", err)
	}

	img := image.NewNRGBA(image.Rect(0, 0, h.width, h.height))
	n := h.width * h.height
	px := make([]byte, h.bytesPerPixel)

	put := func(i int) {
		x, y := i%h.width, i/h.width
		if !h.topToBottom {
			y = h.height - 1 - y
		}
		o := img.PixOffset(x, y)
		// stored as BGR(A)
		img.Pix[o], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3] = px[2], px[1], px[0], 255
		if h.bytesPerPixel == 4 {
			img.Pix[o+3] = px[3]
		}
	}

	if h.imageType == TGATypeUncompressed {
		for i := 0; i < n; i++ {
			if _, err := io.ReadFull(br, px); err != nil {
				return nil, fmt.Errorf("TGA pixel data truncated: %w", err)
			}
			put(i)
		}
		return img, nil
	}

	for i := 0; i < n; {
		packet, err := br.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("TGA RLE data truncated: %w", err)
		}
		count := int(packet&0x7f) + 1
		repeat := packet&0x80 != 0
		for k := 0; k < count && i < n; k++ {
			if !repeat || k == 0 {
				if _, err := io.ReadFull(br, px); err != nil {
					return nil, fmt.Errorf("TGA RLE data truncated: %w", err)
				}
			}
			put(i)
			i++
		}
	}
	return img, nil
}

// EncodeTGA writes img as an uncompressed 32-bit top-to-bottom TGA.
func EncodeTGA(w io.Writer, img image.Image) error {
	b := img.Bounds()
	if b.Dx() > 0xffff || b.Dy() > 0xffff {
		return fmt.Errorf("%dx%d exceeds TGA limits: %w", b.Dx(), b.Dy(), ErrTGAFormat)
	}

	bw := bufio.NewWriter(w)
	var hdr [tgaHeaderSize]byte
	hdr[2] = TGATypeUncompressed
	hdr[12], hdr[13] = byte(b.Dx()), byte(b.Dx()>>8)
	hdr[14], hdr[15] = byte(b.Dy()), byte(b.Dy()>>8)
	hdr[16] = 32
	hdr[17] = 0x20 | 8 // top-to-bottom, 8 alpha bits
	if _, err := bw.Write(hdr[:]); err != nil {
		return err
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if _, err := bw.Write([]byte{c.B, c.G, c.R, c.A}); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
