// Command atlasdump rasterizes one glyph atlas page without a GPU and writes
// it as an image.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/memmaker/glsandbox/engine/glyph"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/term"
)

func main() {
	fontPath := flag.String("font", "", "TrueType/OpenType font file (default: Go Regular)")
	size := flag.Int("size", 32, "pixel size")
	pageFlag := flag.String("page", "0", "page number, decimal or 0x hex")
	out := flag.String("out", "", "output file, .png or .pgm")
	preview := flag.Bool("preview", false, "print the page as ASCII art")
	flag.Parse()

	if err := run(*fontPath, *size, *pageFlag, *out, *preview); err != nil {
		fmt.Fprintln(os.Stderr, "atlasdump:", err)
		os.Exit(1)
	}
}

func run(fontPath string, size int, pageFlag, out string, preview bool) error {
	n, err := strconv.ParseInt(pageFlag, 0, 32)
	if err != nil {
		return errors.Wrap(err, "page")
	}
	if out == "" && !preview {
		return errors.New("nothing to do: pass -out and/or -preview")
	}

	var face *glyph.Face
	if fontPath == "" {
		face, err = glyph.NewFace(goregular.TTF, size)
	} else {
		face, err = glyph.OpenFace(fontPath, size)
	}
	if err != nil {
		return err
	}

	img, page, err := renderPage(face, int(n))
	if err != nil {
		return err
	}
	w, h := page.Size()
	fmt.Fprintf(os.Stderr, "page %d: %d glyphs, %dx%d\n", n, page.Len(), w, h)

	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		if err := writeImage(f, img, out); err != nil {
			f.Close()
			return errors.Wrapf(err, "write %s", out)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	if preview {
		width := 80
		fd := int(os.Stdout.Fd())
		if term.IsTerminal(fd) {
			if tw, _, err := term.GetSize(fd); err == nil && tw > 0 {
				width = tw
			}
		}
		for _, line := range asciiPreview(img, width) {
			fmt.Println(line)
		}
	}
	return nil
}
