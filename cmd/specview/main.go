// Command specview runs the spectral composite pipeline from a TOML settings file and shows
// the composite, its three channels and the wavelength legend.
//
//	specview [--config run.toml]
package main

import (
	"fmt"
	"image"
	"log"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/pflag"
	"gonum.org/v1/gonum/mat"

	"github.com/larisahax/spectrorgb/proxy"
	"github.com/larisahax/spectrorgb/spectral"
)

var stack *fyne.Container
var status *widget.Label
var bar *widget.ProgressBar

// tiles on show in stack; closed before the stack is cleared
var tiles []*ImageWidget

func main() {
	configPath := pflag.String("config", "", "TOML file with run settings")
	pflag.Parse()

	cfg := spectral.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = spectral.LoadConfig(*configPath); err != nil {
			log.Fatalln(err)
		}
	}
	log.Println("Application start")
	win := simpleGUI(cfg)
	win.Resize(fyne.NewSize(900, 700))
	win.ShowAndRun()
}

func simpleGUI(cfg spectral.Config) fyne.Window {
	a := app.NewWithID("com.github.larisahax.spectrorgb")
	w := a.NewWindow("Spectral composite")
	stack = container.NewGridWithColumns(2, widget.NewLabel("Press Run to build the composite"))

	input := widget.NewEntry()
	input.SetText(cfg.InputDir)
	input.SetPlaceHolder("frame directory")
	count := widget.NewEntry()
	count.SetText(fmt.Sprint(cfg.Count))
	policy := widget.NewSelect([]string{spectral.ExcludeLast.String(), spectral.IncludeLast.String()}, nil)
	policy.SetSelected(cfg.Policy.String())

	var run *widget.Button
	run = widget.NewButton("Run", func() {
		c := cfg
		c.InputDir = input.Text
		if _, err := fmt.Sscan(count.Text, &c.Count); err != nil {
			status.SetText("frame count: " + err.Error())
			return
		}
		p, err := spectral.ParsePolicy(policy.Selected)
		if err != nil {
			status.SetText(err.Error())
			return
		}
		c.Policy = p
		run.Disable()
		go func() {
			defer run.Enable()
			runPipeline(c)
		}()
	})

	top := container.NewBorder(nil, nil, widget.NewLabel("Frames"), container.NewHBox(count, policy, run), input)
	status = widget.NewLabel("")
	bar = widget.NewProgressBar()
	bottom := container.NewVBox(bar, status)
	w.SetContent(container.NewBorder(top, bottom, nil, nil, container.NewVScroll(stack)))
	return w
}

// runPipeline runs one conversion and fills the grid with its results. It must not be called
// from the UI goroutine.
func runPipeline(cfg spectral.Config) {
	progress := make(chan float64, 16)
	done := make(chan struct{})
	go func() {
		for v := range progress {
			bar.SetValue(v)
		}
		close(done)
	}()
	cfg.Progress = progress
	cfg.Logger = slog.Default()

	status.SetText("Running " + cfg.InputDir)
	res, err := spectral.Run(cfg, proxy.FrameLoader{}, proxy.CompositeWriter{})
	close(progress)
	<-done
	if err != nil {
		log.Println("run failed: " + err.Error())
		status.SetText(err.Error())
		return
	}

	fitted := res.Composite.Fit(cfg.Clamp, 255)
	ip := new(proxy.ImageProxy)
	if err := ip.CreateFromRGB([]mat.Matrix{fitted.R, fitted.G, fitted.B}, 8); err != nil {
		log.Println("cannot display composite: " + err.Error())
		return
	}

	clearTiles()
	addTile(ip.Image, "composite")
	for i, plane := range res.Composite.Planes() {
		addTile(proxy.NewImageMatrix(plane).AsEqualisedGray(), proxy.Component(i).String())
	}
	legend := canvas.NewImageFromImage(spectral.Legend(res.Curves.Wavelengths, 32))
	legend.FillMode = canvas.ImageFillStretch
	legend.ScaleMode = canvas.ImageScalePixels
	legend.SetMinSize(fyne.NewSize(300, 32))
	stack.Add(container.NewBorder(nil, widget.NewLabel("legend"), nil, nil, legend))
	stack.Refresh()
	status.SetText(fmt.Sprintf("Wrote %s (%d frames, %d samples)", cfg.Output, res.Frames, len(res.Curves.Wavelengths)))
}

func clearTiles() {
	for _, t := range tiles {
		t.Close()
	}
	tiles = nil
	stack.RemoveAll()
}

func addTile(im image.Image, caption string) {
	iw, err := NewImageWidget(im, 64)
	if err != nil {
		log.Println("cannot make pyramid for " + caption)
		ci := canvas.NewImageFromImage(im)
		ci.FillMode = canvas.ImageFillContain
		ci.SetMinSize(fyne.NewSize(300, 300))
		stack.Add(container.NewBorder(nil, widget.NewLabel(caption), nil, nil, ci))
		return
	}
	tiles = append(tiles, iw)
	stack.Add(container.NewBorder(nil, widget.NewLabel(caption), nil, nil, iw))
}
