package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
)

func tgaHeaderBytes(imageType byte, w, h, bpp int, descriptor byte) []byte {
	return []byte{
		0, 0, imageType,
		0, 0, 0, 0, 0,
		0, 0, 0, 0,
		byte(w), byte(w >> 8), byte(h), byte(h >> 8),
		byte(bpp), descriptor,
	}
}

func TestDecodeUncompressedBottomUp(t *testing.T) {
	data := tgaHeaderBytes(TGATypeUncompressed, 2, 2, 24, 0)
	// bottom row first, BGR
	data = append(data,
		0, 0, 255, 0, 255, 0, // bottom: red, green
		255, 0, 0, 255, 255, 255, // top: blue, white
	)

	img, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	tests := []struct {
		x, y int
		want color.NRGBA
	}{
		{0, 0, color.NRGBA{B: 255, A: 255}},
		{1, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{0, 1, color.NRGBA{R: 255, A: 255}},
		{1, 1, color.NRGBA{G: 255, A: 255}},
	}
	nrgba := img.(*image.NRGBA)
	for _, tt := range tests {
		if got := nrgba.NRGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDecodeRLE(t *testing.T) {
	data := tgaHeaderBytes(TGATypeRLE, 4, 1, 32, 0x20)
	data = append(data,
		0x82, 10, 20, 30, 128, // run of 3
		0x00, 1, 2, 3, 4, // one raw pixel
	)

	img, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	nrgba := img.(*image.NRGBA)
	for x := 0; x < 3; x++ {
		if got := nrgba.NRGBAAt(x, 0); got != (color.NRGBA{R: 30, G: 20, B: 10, A: 128}) {
			t.Errorf("run pixel %d = %v", x, got)
		}
	}
	if got := nrgba.NRGBAAt(3, 0); got != (color.NRGBA{R: 3, G: 2, B: 1, A: 4}) {
		t.Errorf("raw pixel = %v", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"colour mapped", append([]byte{0, 1}, make([]byte, 16)...)},
		{"grayscale", tgaHeaderBytes(3, 1, 1, 8, 0)},
		{"16 bit", tgaHeaderBytes(TGATypeUncompressed, 1, 1, 16, 0)},
		{"truncated pixels", append(tgaHeaderBytes(TGATypeUncompressed, 2, 2, 24, 0), 1, 2, 3)},
		{"truncated rle", append(tgaHeaderBytes(TGATypeRLE, 4, 1, 24, 0), 0x81, 1, 2, 3)},
	}
	for _, tt := range tests {
		if _, err := Decode(bytes.NewReader(tt.data)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}

	if _, err := Decode(bytes.NewReader(tgaHeaderBytes(3, 1, 1, 8, 0))); !errors.Is(err, ErrTGAFormat) {
		t.Errorf("expected ErrTGAFormat, got %v", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 11)
	}

	var buf bytes.Buffer
	if err := EncodeTGA(&buf, src); err != nil {
		t.Fatalf("EncodeTGA: %v", err)
	}

	// goes through the registered format
	img, format, err := image.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("image.Decode: %v", err)
	}
	if format != "tga" {
		t.Errorf("format = %q, want tga", format)
	}
	if !bytes.Equal(img.(*image.NRGBA).Pix, src.Pix) {
		t.Error("round trip changed pixels")
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(buf.Bytes()))
	if err != nil || cfg.Width != 3 || cfg.Height != 2 {
		t.Errorf("DecodeConfig = %+v, %v", cfg, err)
	}
}
