package imageio

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"
)

// OutputNamer hands out timestamped file names such as
// pano_2006-01-02_15-04-05.png. A numeric suffix is added when the name is
// already taken.
type OutputNamer struct {
	Dir    string
	Prefix string
	Ext    string // including the dot; ".png" when empty

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewOutputNamer creates a namer writing into dir.
func NewOutputNamer(dir, prefix, ext string) *OutputNamer {
	return &OutputNamer{Dir: dir, Prefix: prefix, Ext: ext}
}

// Next returns an unused file name.
func (n *OutputNamer) Next() string {
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	ext := n.Ext
	if ext == "" {
		ext = ".png"
	}

	base := fmt.Sprintf("%s_%s", n.Prefix, now().Format("2006-01-02_15-04-05"))
	name := filepath.Join(n.Dir, base+ext)
	for i := 1; exists(name); i++ {
		name = filepath.Join(n.Dir, fmt.Sprintf("%s_%d%s", base, i, ext))
	}
	return name
}

// Save writes img under the next free name and returns it.
func (n *OutputNamer) Save(img image.Image) (string, error) {
	name := n.Next()
	if err := Save(name, img); err != nil {
		return "", err
	}
	return name, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
