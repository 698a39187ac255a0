package tarot

import (
	"bytes"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "image/jpeg" // background decode support
	_ "image/png"

	"arcana/pkg/logger"
)

// BackgroundAsset is one entry of the card background catalog. The
// image is decoded once at load time; its native dimensions define the
// output canvas of every card composed onto it.
type BackgroundAsset struct {
	Name   string
	Image  image.Image
	Width  int
	Height int
}

// Catalog is the fixed set of background assets, loaded once at
// startup. An empty catalog is a configuration error, checked at load
// time rather than per request.
type Catalog struct {
	assets []BackgroundAsset
}

var ErrEmptyCatalog = fmt.Errorf("background catalog is empty")

// LoadCatalogDir reads every decodable image in dir, in lexical name
// order.
func LoadCatalogDir(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backgrounds dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}

	return loadCatalog(names, func(name string) ([]byte, error) {
		return os.ReadFile(filepath.Join(dir, name))
	})
}

// LoadCatalogFS loads the catalog from an embedded filesystem, used
// when no backgrounds directory is configured.
func LoadCatalogFS(fsys fs.FS, dir string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded backgrounds: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}

	return loadCatalog(names, func(name string) ([]byte, error) {
		return fs.ReadFile(fsys, filepath.Join(dir, name))
	})
}

func loadCatalog(names []string, read func(string) ([]byte, error)) (*Catalog, error) {
	sort.Strings(names)

	c := &Catalog{}
	for _, name := range names {
		data, err := read(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read background %s: %w", name, err)
		}

		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			logger.LogWarn("Skipping undecodable background %s: %v", name, err)
			continue
		}

		b := img.Bounds()
		c.assets = append(c.assets, BackgroundAsset{
			Name:   name,
			Image:  img,
			Width:  b.Dx(),
			Height: b.Dy(),
		})
	}

	if len(c.assets) == 0 {
		return nil, ErrEmptyCatalog
	}

	return c, nil
}

// Len returns the catalog size.
func (c *Catalog) Len() int { return len(c.assets) }

// Assets returns the catalog entries in canonical order.
func (c *Catalog) Assets() []BackgroundAsset { return c.assets }

// Select deterministically picks a background for a handle: sum of
// character codes modulo catalog size. Deliberately a different hash
// from AssignStyle so style and background do not co-vary for similar
// handles. An empty handle gets the first asset in catalog order.
func (c *Catalog) Select(handle string) *BackgroundAsset {
	if handle == "" {
		return &c.assets[0]
	}

	sum := 0
	for _, r := range handle {
		sum += int(r)
	}
	return &c.assets[sum%len(c.assets)]
}
