//go:build windows

package printer

import (
	"context"
	"fmt"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

const (
	docName         = "Label Print"
	rawDatatype     = "RAW"
	enumLocal       = 0x00000002
	enumConnections = 0x00000004
)

var (
	winspool             = windows.NewLazySystemDLL("winspool.drv")
	procOpenPrinter      = winspool.NewProc("OpenPrinterW")
	procClosePrinter     = winspool.NewProc("ClosePrinter")
	procStartDocPrinter  = winspool.NewProc("StartDocPrinterW")
	procEndDocPrinter    = winspool.NewProc("EndDocPrinter")
	procStartPagePrinter = winspool.NewProc("StartPagePrinter")
	procEndPagePrinter   = winspool.NewProc("EndPagePrinter")
	procWritePrinter     = winspool.NewProc("WritePrinter")
	procEnumPrinters     = winspool.NewProc("EnumPrintersW")
)

type docInfo1 struct {
	docName    *uint16
	outputFile *uint16
	datatype   *uint16
}

type printerInfo4 struct {
	printerName *uint16
	serverName  *uint16
	attributes  uint32
}

// SpoolerSender submits RAW jobs through the Windows print spooler.
type SpoolerSender struct {
	Logger *zap.Logger
}

var _ Sender = (*SpoolerSender)(nil)

// NewSpoolerSender returns a spooler sender when winspool.drv can be loaded.
func NewSpoolerSender(logger *zap.Logger) (*SpoolerSender, error) {
	if err := winspool.Load(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSpoolerUnavailable, err)
	}
	return &SpoolerSender{Logger: logger}, nil
}

// Send opens the printer, writes data as a single RAW document and closes
// the handle on every path.
func (s *SpoolerSender) Send(ctx context.Context, printer string, data []byte) error {
	if err := checkPrinter(printer); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	name, err := windows.UTF16PtrFromString(printer)
	if err != nil {
		return &DispatchError{Printer: printer, Err: err}
	}
	var handle windows.Handle
	if r, _, callErr := procOpenPrinter.Call(uintptr(unsafe.Pointer(name)), uintptr(unsafe.Pointer(&handle)), 0); r == 0 {
		return &DispatchError{
			Printer: printer,
			Err:     fmt.Errorf("could not open printer %q, check the name and driver: %w", printer, callErr),
		}
	}
	defer procClosePrinter.Call(uintptr(handle))

	info := docInfo1{
		docName:  windows.StringToUTF16Ptr(docName),
		datatype: windows.StringToUTF16Ptr(rawDatatype),
	}
	job, _, callErr := procStartDocPrinter.Call(uintptr(handle), 1, uintptr(unsafe.Pointer(&info)))
	if job == 0 {
		return &DispatchError{Printer: printer, Err: fmt.Errorf("start document: %w", callErr)}
	}
	defer procEndDocPrinter.Call(uintptr(handle))

	if r, _, callErr := procStartPagePrinter.Call(uintptr(handle)); r == 0 {
		return &DispatchError{Printer: printer, Err: fmt.Errorf("start page: %w", callErr)}
	}
	defer procEndPagePrinter.Call(uintptr(handle))

	for offset := 0; offset < len(data); {
		var written uint32
		chunk := data[offset:]
		r, _, callErr := procWritePrinter.Call(
			uintptr(handle),
			uintptr(unsafe.Pointer(&chunk[0])),
			uintptr(len(chunk)),
			uintptr(unsafe.Pointer(&written)),
		)
		if r == 0 || written == 0 {
			return &DispatchError{Printer: printer, Err: fmt.Errorf("write: %w", callErr)}
		}
		offset += int(written)
	}

	if s.Logger != nil {
		s.Logger.Debug("spooler accepted job",
			zap.String("printer", printer),
			zap.Uint64("job", uint64(job)),
			zap.Int("bytes", len(data)),
		)
	}
	return nil
}

// SpoolerLister enumerates local and connected printers.
type SpoolerLister struct{}

var _ Lister = SpoolerLister{}

// NewSpoolerLister returns a lister when winspool.drv can be loaded.
func NewSpoolerLister() (Lister, error) {
	if err := winspool.Load(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSpoolerUnavailable, err)
	}
	return SpoolerLister{}, nil
}

// List calls EnumPrintersW at level 4.
func (SpoolerLister) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	flags := uintptr(enumLocal | enumConnections)

	var needed, returned uint32
	procEnumPrinters.Call(flags, 0, 4, 0, 0, uintptr(unsafe.Pointer(&needed)), uintptr(unsafe.Pointer(&returned)))
	if needed == 0 {
		return nil, nil
	}

	buf := make([]byte, needed)
	r, _, callErr := procEnumPrinters.Call(
		flags, 0, 4,
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(needed),
		uintptr(unsafe.Pointer(&needed)),
		uintptr(unsafe.Pointer(&returned)),
	)
	if r == 0 {
		return nil, fmt.Errorf("enumerate printers: %w", callErr)
	}

	infos := unsafe.Slice((*printerInfo4)(unsafe.Pointer(&buf[0])), returned)
	printers := make([]string, 0, returned)
	for _, info := range infos {
		printers = append(printers, windows.UTF16PtrToString(info.printerName))
	}
	return printers, nil
}
