package resumepdf

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"

	"github.com/go-pdf/fpdf"

	"github.com/goliatone/go-resume/resume"
)

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

func decodeCapture(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, resume.NewError(resume.KindExport, "decode page capture", err)
	}
	return img, nil
}

// paginate slices img into strips of pageHeight pixels. The last strip keeps
// its natural height.
func paginate(img image.Image, pageHeight int) []image.Image {
	bounds := img.Bounds()
	if pageHeight <= 0 || bounds.Dy() <= pageHeight {
		return []image.Image{img}
	}

	var pages []image.Image
	for y := bounds.Min.Y; y < bounds.Max.Y; y += pageHeight {
		rect := image.Rect(bounds.Min.X, y, bounds.Max.X, min(y+pageHeight, bounds.Max.Y))
		pages = append(pages, crop(img, rect))
	}
	return pages
}

func crop(img image.Image, rect image.Rectangle) image.Image {
	if s, ok := img.(subImager); ok {
		return s.SubImage(rect)
	}
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(out, out.Bounds(), img, rect.Min, draw.Src)
	return out
}

// assemblePDF places one JPEG per page, scaled to the printable width.
func assemblePDF(pages []image.Image, layout pageLayout, opts resume.ExportOptions) ([]byte, error) {
	if len(pages) == 0 {
		return nil, resume.NewError(resume.KindExport, "nothing to assemble", nil)
	}

	orientation := "P"
	if opts.Landscape {
		orientation = "L"
	}
	doc := fpdf.New(orientation, "in", layout.paper.name, "")
	doc.SetMargins(layout.marginIn, layout.marginIn, layout.marginIn)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCreator("go-resume", true)
	doc.SetTitle(opts.Filename, true)

	quality := int(jpegQuality(opts.Image.Quality))
	width := layout.contentWidthIn()
	imageOpts := fpdf.ImageOptions{ImageType: "JPG"}

	for i, img := range pages {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, resume.NewError(resume.KindExport, fmt.Sprintf("encode page %d", i+1), err)
		}
		bounds := img.Bounds()
		height := width * float64(bounds.Dy()) / float64(bounds.Dx())

		name := fmt.Sprintf("page-%d", i+1)
		doc.AddPage()
		doc.RegisterImageOptionsReader(name, imageOpts, &buf)
		doc.ImageOptions(name, layout.marginIn, layout.marginIn, width, height, false, imageOpts, 0, "")
		if doc.Err() {
			return nil, resume.NewError(resume.KindExport, "assemble pdf", doc.Error())
		}
	}

	var out bytes.Buffer
	if err := doc.Output(&out); err != nil {
		return nil, resume.NewError(resume.KindExport, "write pdf", err)
	}
	return out.Bytes(), nil
}
