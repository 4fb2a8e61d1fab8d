package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

// createTestImage writes a uniform PNG into the test's temp dir and returns
// its path.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := createInMemoryImage(width, height, c)

	path := filepath.Join(t.TempDir(), "test-image.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 100, 60, color.RGBA{255, 0, 0, 255})

	img1, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b := img1.Bounds(); b.Dx() != 100 || b.Dy() != 60 {
		t.Errorf("unexpected dimensions: got %dx%d, want 100x60", b.Dx(), b.Dy())
	}

	img2, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if img1 != img2 {
		t.Error("second Load did not return cached image")
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
}

func TestImageCache_NilCache(t *testing.T) {
	var cache *ImageCache
	img, err := cache.Load(createTestImage(t, 10, 10, color.White))
	if err != nil {
		t.Fatalf("nil cache Load failed: %v", err)
	}
	if img.Bounds().Dx() != 10 {
		t.Errorf("width = %d, want 10", img.Bounds().Dx())
	}
}

func TestImageCache_Load_Errors(t *testing.T) {
	cache := NewImageCache()
	if _, err := cache.Load("/nonexistent/path/to/image.png"); err == nil {
		t.Error("Load should fail for non-existent file")
	}

	bad := filepath.Join(t.TempDir(), "invalid.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Load(bad); err == nil {
		t.Error("Load should fail for invalid image data")
	}
	if cache.Len() != 0 {
		t.Errorf("failed loads were cached: Len() = %d", cache.Len())
	}
}

// rewriteImage replaces the file at path with a uniform image and moves its
// modification time forward by bump.
func rewriteImage(t *testing.T, path string, width, height int, c color.Color, bump time.Duration) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, createInMemoryImage(width, height, c)); err != nil {
		f.Close()
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	mtime := info.ModTime().Add(bump)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}

func TestImageCache_ReloadsModifiedFile(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"same dimensions", 20, 20},
		{"new dimensions", 30, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := NewImageCache()
			path := createTestImage(t, 20, 20, color.RGBA{255, 0, 0, 255})

			before, err := cache.Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if r, _, _, _ := before.At(5, 5).RGBA(); r>>8 != 255 {
				t.Fatalf("initial red = %d, want 255", r>>8)
			}

			rewriteImage(t, path, tt.width, tt.height, color.RGBA{0, 0, 255, 255}, 2*time.Second)

			after, err := cache.Load(path)
			if err != nil {
				t.Fatalf("Load after edit failed: %v", err)
			}
			if b := after.Bounds(); b.Dx() != tt.width || b.Dy() != tt.height {
				t.Errorf("dimensions = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.width, tt.height)
			}
			if r, _, bl, _ := after.At(5, 5).RGBA(); r>>8 != 0 || bl>>8 != 255 {
				t.Errorf("pixel after edit = r%d b%d, want blue", r>>8, bl>>8)
			}
			if cache.Len() != 1 {
				t.Errorf("Len() = %d, want 1", cache.Len())
			}
		})
	}
}

func TestImageCache_DeletedFileIsEvicted(t *testing.T) {
	cache := NewImageCache()
	path := createTestImage(t, 8, 8, color.White)
	if _, err := cache.Load(path); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Load(path); err == nil {
		t.Error("Load should fail once the file is gone")
	}
	if cache.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after the file was removed", cache.Len())
	}
}

func TestImageCache_EvictAndClear(t *testing.T) {
	cache := NewImageCache()
	a := createTestImage(t, 5, 5, color.Black)
	b := createTestImage(t, 6, 6, color.White)
	for _, p := range []string{a, b} {
		if _, err := cache.Load(p); err != nil {
			t.Fatal(err)
		}
	}

	cache.Evict(a)
	cache.Evict("/nonexistent/path")
	if cache.Len() != 1 {
		t.Errorf("after Evict Len() = %d, want 1", cache.Len())
	}

	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("after Clear Len() = %d, want 0", cache.Len())
	}
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{128, 128, 128, 255})

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(imgPath); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Load failed: %v", err)
	}
}

func TestReadSize(t *testing.T) {
	size, err := ReadSize(createTestImage(t, 123, 45, color.Black))
	if err != nil {
		t.Fatalf("ReadSize failed: %v", err)
	}
	if size.Width != 123 || size.Height != 45 {
		t.Errorf("size = %+v, want 123x45", size)
	}

	bad := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(bad, []byte{0x89, 'P', 'N', 'G'}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadSize(bad); err == nil {
		t.Error("ReadSize should fail on a truncated header")
	}
}

func TestLoad_DecodesPNG(t *testing.T) {
	img, err := Load(createTestImage(t, 8, 4, color.RGBA{0, 0, 255, 255}))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 8, 4) {
		t.Errorf("bounds = %v", img.Bounds())
	}
}
