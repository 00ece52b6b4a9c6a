//go:build windows

package printer

import (
	"context"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestWinspoolStructLayout(t *testing.T) {
	ptr := unsafe.Sizeof(uintptr(0))

	// DOC_INFO_1W: three string pointers.
	assert.Equal(t, 3*ptr, unsafe.Sizeof(docInfo1{}))
	assert.Equal(t, 2*ptr, unsafe.Offsetof(docInfo1{}.datatype))

	// PRINTER_INFO_4W: two string pointers and a DWORD, padded to pointer size.
	assert.Equal(t, 2*ptr, unsafe.Offsetof(printerInfo4{}.attributes))
	assert.Equal(t, 3*ptr, unsafe.Sizeof(printerInfo4{}))
}

func TestSpoolerSender_RejectsBeforeOpeningPrinter(t *testing.T) {
	sender := &SpoolerSender{Logger: zaptest.NewLogger(t)}

	err := sender.Send(context.Background(), "  ", []byte("^XA^XZ\n"))
	assert.ErrorIs(t, err, ErrEmptyPrinter)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = sender.Send(ctx, "Zebra_GC420t", []byte("^XA^XZ\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSpoolerSender_UnknownPrinter(t *testing.T) {
	sender, err := NewSpoolerSender(zaptest.NewLogger(t))
	require.NoError(t, err)

	err = sender.Send(context.Background(), "zplpress-no-such-printer", []byte("^XA^XZ\n"))
	var dispatchErr *DispatchError
	require.ErrorAs(t, err, &dispatchErr)
	assert.Contains(t, err.Error(), "could not open printer")
}

func TestSpoolerLister(t *testing.T) {
	lister, err := NewSpoolerLister()
	require.NoError(t, err)

	_, err = lister.List(context.Background())
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = lister.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDetect_PrefersSpooler(t *testing.T) {
	sender, lister := Detect(Options{Logger: zaptest.NewLogger(t)})

	router, ok := sender.(*Router)
	require.True(t, ok)
	assert.IsType(t, &SpoolerSender{}, router.Local)
	assert.IsType(t, SpoolerLister{}, lister)
}
