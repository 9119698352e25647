package main

import (
	"image"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageWidgetSwapsLevels(t *testing.T) {
	test.NewApp()
	w, err := newImageWidget(image.NewNRGBA(image.Rect(0, 0, 256, 256)), 64, 5*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()
	require.Len(t, w.Pyramid, 3)
	assert.Equal(t, 2, w.Index())

	w.Resize(fyne.NewSize(1024, 1024))
	assert.Eventually(t, func() bool { return w.Index() == 0 }, time.Second, 5*time.Millisecond)

	w.Resize(fyne.NewSize(64, 64))
	assert.Eventually(t, func() bool { return w.Index() == 2 }, time.Second, 5*time.Millisecond)
}

func TestImageWidgetCloseStopsWatcher(t *testing.T) {
	test.NewApp()
	w, err := newImageWidget(image.NewGray(image.Rect(0, 0, 128, 128)), 64, time.Millisecond)
	require.NoError(t, err)

	w.Close()
	select {
	case <-w.done:
	default:
		t.Fatal("watcher still running after Close")
	}
	w.Close()

	// no further level changes once closed
	before := w.Index()
	w.Resize(fyne.NewSize(1024, 1024))
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, before, w.Index())
}

func TestClearTilesClosesEveryTile(t *testing.T) {
	test.NewApp()
	stack = container.NewGridWithColumns(2)
	tiles = nil
	for i := 0; i < 4; i++ {
		addTile(image.NewGray(image.Rect(0, 0, 128, 128)), "tile")
	}
	require.Len(t, tiles, 4)
	closed := append([]*ImageWidget(nil), tiles...)

	clearTiles()
	assert.Empty(t, tiles)
	assert.Empty(t, stack.Objects)
	for _, w := range closed {
		select {
		case <-w.done:
		default:
			t.Fatal("tile watcher still running after clearTiles")
		}
	}
}
