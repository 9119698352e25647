package main

import (
	"image"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/larisahax/spectrorgb/proxy"
)

// ImageWidget shows an image, swapping between pyramid levels as the widget is resized so
// large composites stay cheap to draw. Close stops the resize watcher.
type ImageWidget struct {
	widget.BaseWidget
	Image   *canvas.Image
	Pyramid []image.Image

	mu    sync.Mutex
	index int
	stop  chan struct{}
	done  chan struct{}
	once  sync.Once
}

func NewImageWidget(img image.Image, minsize int) (*ImageWidget, error) {
	return newImageWidget(img, minsize, time.Second)
}

func newImageWidget(img image.Image, minsize int, every time.Duration) (*ImageWidget, error) {
	pyr, err := proxy.Pyramid(img, minsize)
	if err != nil {
		return nil, err
	}
	index := len(pyr) - 1
	ci := canvas.NewImageFromImage(pyr[index])
	ci.FillMode = canvas.ImageFillContain
	ci.SetMinSize(fyne.NewSize(300, 300))
	w := &ImageWidget{
		Image:   ci,
		Pyramid: pyr,
		index:   index,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	w.ExtendBaseWidget(w)
	go w.watch(every)
	return w, nil
}

// watch picks the pyramid level closest to the widget size until Close is called.
func (m *ImageWidget) watch(every time.Duration) {
	defer close(m.done)
	tick := time.NewTicker(every)
	defer tick.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-tick.C:
		}
		size := m.Size()
		b := m.Pyramid[m.Index()].Bounds()
		ratio := min(size.Width/float32(b.Dx()), size.Height/float32(b.Dy()))
		if ratio < 1.1 && ratio > .5 {
			continue
		}
		if ratio > 1.1 {
			m.step(-1)
		} else {
			m.step(1)
		}
	}
}

// Index is the pyramid level on show, 0 being full resolution.
func (m *ImageWidget) Index() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index
}

// Close stops the resize watcher and waits for it to exit. It is safe to call more than once.
func (m *ImageWidget) Close() {
	m.once.Do(func() { close(m.stop) })
	<-m.done
}

func (item *ImageWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(item.Image))
}

func (m *ImageWidget) step(d int) {
	m.mu.Lock()
	next := m.index + d
	if next < 0 || next >= len(m.Pyramid) {
		m.mu.Unlock()
		return
	}
	m.index = next
	m.mu.Unlock()
	m.Image.Image = m.Pyramid[next]
	m.Image.Refresh()
}
