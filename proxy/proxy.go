package proxy

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"golang.org/x/image/tiff"
	"gonum.org/v1/gonum/mat"
)

type Component int

const (
	R Component = iota
	G
	B
)

func (c Component) String() string {
	switch c {
	case R:
		return "red"
	case G:
		return "green"
	case B:
		return "blue"
	}
	return fmt.Sprintf("Component(%d)", int(c))
}

// ImageProxy embeds image.Image, adding the conversions needed to move frames in and out of
// float matrices. Metadata is appended at each stage to keep a processing history
//
//	metadata  a line of text for each change made to the image
//	Format    the sniffed file type ("png", "tif", ...) if the image was loaded from a file
//	Path      the original file path if the ImageProxy was loaded from a file
type ImageProxy struct {
	image.Image
	Config   image.Config
	Format   string
	Path     string
	metadata []string
}

// adds another line of metadata to the ImageProxy
func (ip *ImageProxy) AddMetadata(data string) {
	t := time.Now().Format("2006-01-02 15:04:05")
	ip.metadata = append(ip.metadata, t+"  "+data)
}

// returns all metadata created for the ImageProxy as a single string.
func (ip ImageProxy) AllMetadata() string {
	var sb strings.Builder
	for _, m := range ip.metadata {
		sb.WriteString(m)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Returns the last element of the metadata slice, or an empty string if the slice is empty.
func (ip ImageProxy) LastMetadata() string {
	if len(ip.metadata) == 0 {
		return ""
	}
	return ip.metadata[len(ip.metadata)-1]
}

// returns the type of the underlying image.Image
func (ip ImageProxy) Type() string {
	Type := "Unknown"
	switch ip.Image.(type) {
	case *image.Gray:
		Type = "Gray 8 bit"
	case *image.Gray16:
		Type = "Gray 16 bit"
	case *image.RGBA:
		Type = "RGBA 8 bit"
	case *image.NRGBA:
		Type = "NRGBA 8 bit"
	case *image.RGBA64:
		Type = "RGBA 16 bit"
	case *image.NRGBA64:
		Type = "NRGBA 16 bit"
	case *image.YCbCr:
		Type = "YCbCr"
	case *image.Paletted:
		Type = "Paletted"
	}
	return Type
}

// loads an image from a file, recording its sniffed format and configuration
func (ip *ImageProxy) LoadFromFile(path string) error {
	r, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer r.Close()

	head := make([]byte, 261)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read header %s: %w", path, err)
	}
	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown || !filetype.IsImage(head[:n]) {
		return fmt.Errorf("%s: %w", path, ErrNotImage)
	}
	ip.Format = kind.Extension

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return err
	}
	config, _, err := image.DecodeConfig(r)
	if err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	ip.Config = config

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return err
	}
	im, err := imaging.Decode(r)
	if err != nil {
		return fmt.Errorf("decode image %s: %w", path, err)
	}
	ip.Image = im
	ip.Path = path
	ip.AddMetadata("Loaded " + ip.Type() + " from " + filepath.Base(path))
	return nil
}

// returns the image as 16-bit gray, converting through the Gray16 colour model if needed.
// 8-bit values v become v*257, so both depths span the same range.
func (ip *ImageProxy) AsGray16() *image.Gray16 {
	if g, ok := ip.Image.(*image.Gray16); ok {
		return g
	}
	b := ip.Bounds()
	g := image.NewGray16(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(g, g.Bounds(), ip.Image, b.Min, draw.Src)
	return g
}

// returns the gray level of every pixel multiplied by scale, as a rows x cols matrix
func (ip *ImageProxy) LuminanceAsMatrix(scale float64) *mat.Dense {
	g := ip.AsGray16()
	w := g.Bounds().Dx()
	h := g.Bounds().Dy()
	data := make([]float64, w*h)
	for j := 0; j < h; j++ {
		off := g.PixOffset(g.Bounds().Min.X, g.Bounds().Min.Y+j)
		for i, v := range Short8As16(g.Pix[off : off+2*w]) {
			data[j*w+i] = float64(v) * scale
		}
	}
	return mat.NewDense(h, w, data)
}

// makes an image from r,g,b planes holding 8-bit pixel values (alpha is opaque)
//
//	depth  8 gives NRGBA, 16 gives NRGBA64 with values stretched by 257
//
// Values outside 0..255 are truncated to that range for safety; fit them beforehand if the
// composite may leave it.
func (ip *ImageProxy) CreateFromRGB(RGB []mat.Matrix, depth int) error {
	if len(RGB) != 3 {
		return errors.New("need 3 planes in order to create an image")
	}
	h, w := RGB[0].Dims()
	for _, p := range RGB[1:] {
		if r, c := p.Dims(); r != h || c != w {
			return errors.New("planes are not the same size")
		}
	}

	switch depth {
	case 8:
		imout := image.NewNRGBA(image.Rect(0, 0, w, h))
		for j := 0; j < h; j++ {
			for i := 0; i < w; i++ {
				imout.SetNRGBA(i, j, color.NRGBA{
					R: uint8(clip(RGB[0].At(j, i), 255)),
					G: uint8(clip(RGB[1].At(j, i), 255)),
					B: uint8(clip(RGB[2].At(j, i), 255)),
					A: 255,
				})
			}
		}
		ip.Image = imout
		ip.AddMetadata("8-bit NRGBA from float planes")
	case 16:
		imout := image.NewNRGBA64(image.Rect(0, 0, w, h))
		for j := 0; j < h; j++ {
			for i := 0; i < w; i++ {
				imout.SetNRGBA64(i, j, color.NRGBA64{
					R: uint16(clip(RGB[0].At(j, i)*257, 65535)),
					G: uint16(clip(RGB[1].At(j, i)*257, 65535)),
					B: uint16(clip(RGB[2].At(j, i)*257, 65535)),
					A: 65535,
				})
			}
		}
		ip.Image = imout
		ip.AddMetadata("16-bit NRGBA from float planes")
	default:
		return errors.New("specify either 8 or 16-bit resolution")
	}
	ip.Config = image.Config{ColorModel: ip.ColorModel(), Width: w, Height: h}
	return nil
}

// rounds v and limits it to 0..hi; NaN becomes 0
func clip(v, hi float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return math.Round(v)
}

// writes the image to path. TIFF files are written with deflate compression, every other
// extension goes through imaging, which picks the encoder from the extension.
func (ip *ImageProxy) SaveToFile(path string) error {
	if ip.Image == nil {
		return errors.New("no image to save")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := tiff.Encode(f, ip.Image, &tiff.Options{Compression: tiff.Deflate, Predictor: true}); err != nil {
			f.Close()
			return fmt.Errorf("encode %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		ip.Path = path
		return nil
	}
	if err := imaging.Save(ip.Image, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	ip.Path = path
	return nil
}
