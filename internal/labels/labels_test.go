package labels

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/five82/zplpress/internal/printer"
	"github.com/five82/zplpress/internal/zpl"
)

type fakeSender struct {
	calls  []call
	failAt int // 1-based call that fails; 0 never fails
	err    error
}

type call struct {
	printer string
	data    []byte
}

func (f *fakeSender) Send(_ context.Context, name string, data []byte) error {
	f.calls = append(f.calls, call{printer: name, data: append([]byte(nil), data...)})
	if f.failAt == len(f.calls) {
		return f.err
	}
	return nil
}

func writeLabels(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "labels.zpl")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func labelFile(n int) []byte {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString("^XA^FO20,20^FDlabel ")
		b.WriteByte(byte('A' + i))
		b.WriteString("^FS^XZ\n")
	}
	return []byte(b.String())
}

func TestPrint_TestModeSendsOnlyFirstLabel(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		sender := &fakeSender{}
		svc := &Service{Sender: sender}

		res, err := svc.Print(context.Background(), Request{Path: writeLabels(t, labelFile(n)), Printer: "Zebra", Mode: ModeTest})
		require.NoError(t, err)
		require.Len(t, sender.calls, 1, "labels=%d", n)
		assert.Equal(t, "^XA^FO20,20^FDlabel A^FS^XZ\n", string(sender.calls[0].data))
		assert.Equal(t, n, res.Labels)
		assert.Equal(t, 1, res.Jobs)
		assert.Equal(t, 1, res.Sent)
		assert.NotEmpty(t, res.RunID)
	}
}

func TestPrint_AllModeSendsEveryLabel(t *testing.T) {
	sender := &fakeSender{}
	svc := &Service{Sender: sender}

	res, err := svc.Print(context.Background(), Request{Path: writeLabels(t, labelFile(4)), Printer: "Zebra", Mode: ModeAll})
	require.NoError(t, err)
	require.Len(t, sender.calls, 4)
	for i, c := range sender.calls {
		assert.Equal(t, "Zebra", c.printer)
		assert.Contains(t, string(c.data), "label "+string(rune('A'+i)))
		assert.True(t, strings.HasSuffix(string(c.data), "^XZ\n"))
	}
	assert.Equal(t, 4, res.Sent)
}

func TestPrint_BatchedJobs(t *testing.T) {
	sender := &fakeSender{}
	svc := &Service{Sender: sender, BatchSize: 2}

	res, err := svc.Print(context.Background(), Request{Path: writeLabels(t, labelFile(5)), Printer: "Zebra", Mode: ModeAll})
	require.NoError(t, err)
	require.Len(t, sender.calls, 3)
	assert.Equal(t, 2, strings.Count(string(sender.calls[0].data), "^XZ\n"))
	assert.Equal(t, 2, strings.Count(string(sender.calls[1].data), "^XZ\n"))
	assert.Equal(t, 1, strings.Count(string(sender.calls[2].data), "^XZ\n"))
	assert.Equal(t, 5, res.Sent)
	assert.Equal(t, 3, res.Jobs)
}

func TestPrint_BatchingIgnoredInTestMode(t *testing.T) {
	sender := &fakeSender{}
	svc := &Service{Sender: sender, BatchSize: 50}

	_, err := svc.Print(context.Background(), Request{Path: writeLabels(t, labelFile(3)), Printer: "Zebra", Mode: ModeTest})
	require.NoError(t, err)
	require.Len(t, sender.calls, 1)
	assert.Equal(t, 1, strings.Count(string(sender.calls[0].data), "^XZ\n"))
}

func TestPrint_FailureStopsRun(t *testing.T) {
	cause := &printer.DispatchError{Printer: "Zebra", Stderr: "printer is offline"}
	sender := &fakeSender{failAt: 2, err: cause}
	svc := &Service{Sender: sender}

	res, err := svc.Print(context.Background(), Request{Path: writeLabels(t, labelFile(3)), Printer: "Zebra", Mode: ModeAll})
	require.Error(t, err)
	assert.Len(t, sender.calls, 2, "third label must not be attempted")

	var jobErr *JobError
	require.True(t, errors.As(err, &jobErr))
	assert.Equal(t, 2, jobErr.Index)
	assert.Equal(t, 3, jobErr.Total)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "job 2 of 3")
	assert.Contains(t, err.Error(), "printer is offline")
	assert.Equal(t, 1, res.Sent)
}

func TestPrint_MissingStartMarkerNeverDispatches(t *testing.T) {
	sender := &fakeSender{}
	svc := &Service{Sender: sender}

	_, err := svc.Print(context.Background(), Request{Path: writeLabels(t, []byte("hello ^XZ world ^XZ")), Printer: "Zebra", Mode: ModeAll})
	assert.ErrorIs(t, err, ErrNoStartMarker)
	assert.Empty(t, sender.calls)
}

func TestPrint_MarkerOnlyFileIsOneLabel(t *testing.T) {
	sender := &fakeSender{}
	svc := &Service{Sender: sender}

	_, err := svc.Print(context.Background(), Request{Path: writeLabels(t, []byte("^XA")), Printer: "Zebra", Mode: ModeAll})
	require.NoError(t, err)
	require.Len(t, sender.calls, 1)
	assert.Equal(t, "^XA^XZ\n", string(sender.calls[0].data))
}

func TestPreview_BlankFileFailsMarkerCheck(t *testing.T) {
	svc := &Service{}
	_, err := svc.Preview(writeLabels(t, []byte("   \n")))
	assert.ErrorIs(t, err, ErrNoStartMarker)
}

func TestPrint_NoPrinterCheckedBeforeFileIO(t *testing.T) {
	sender := &fakeSender{}
	svc := &Service{Sender: sender}

	_, err := svc.Print(context.Background(), Request{Path: filepath.Join(t.TempDir(), "missing.zpl"), Printer: "  ", Mode: ModeAll})
	assert.ErrorIs(t, err, ErrNoPrinter)
	assert.Empty(t, sender.calls)
}

func TestPrint_UnreadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.zpl")
	_, err := (&Service{Sender: &fakeSender{}}).Print(context.Background(), Request{Path: path, Printer: "Zebra"})

	var readErr *ReadError
	require.True(t, errors.As(err, &readErr))
	assert.Equal(t, path, readErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), path)
}

func TestPrint_NoSender(t *testing.T) {
	_, err := (&Service{}).Print(context.Background(), Request{Path: "x", Printer: "Zebra"})
	assert.ErrorIs(t, err, printer.ErrSpoolerUnavailable)
}

func TestPrint_StrictRejectsBlockWithoutStart(t *testing.T) {
	sender := &fakeSender{}
	svc := &Service{Sender: sender, Strict: true}

	_, err := svc.Print(context.Background(), Request{Path: writeLabels(t, []byte("^XA one ^XZ trailing")), Printer: "Zebra", Mode: ModeAll})
	var blockErr *zpl.BlockError
	require.True(t, errors.As(err, &blockErr))
	assert.Equal(t, 2, blockErr.Index)
	assert.Empty(t, sender.calls)
}

func TestPrint_Latin1BytesPassThrough(t *testing.T) {
	raw := []byte("^XA^CI27^FDS\xE3o Paulo \xB0C^FS^XZ\n")
	sender := &fakeSender{}
	svc := &Service{Sender: sender}

	_, err := svc.Print(context.Background(), Request{Path: writeLabels(t, raw), Printer: "Zebra", Mode: ModeTest})
	require.NoError(t, err)
	require.Len(t, sender.calls, 1)
	assert.Equal(t, raw, sender.calls[0].data)
}

func TestPrint_LogsRun(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	svc := &Service{Sender: &fakeSender{}, Logger: zap.New(core)}

	res, err := svc.Print(context.Background(), Request{Path: writeLabels(t, labelFile(2)), Printer: "Zebra", Mode: ModeAll})
	require.NoError(t, err)

	started := logs.FilterMessage("print run started").All()
	require.Len(t, started, 1)
	fields := started[0].ContextMap()
	assert.Equal(t, res.RunID, fields["run"])
	assert.Equal(t, "Zebra", fields["printer"])
	assert.Equal(t, "all", fields["mode"])
	assert.EqualValues(t, 2, fields["labels"])
	assert.Equal(t, 2, logs.FilterMessage("job sent").Len())
}

func TestJobs(t *testing.T) {
	plan := Plan{Blocks: []string{"a^XZ\n", "b^XZ\n", "c^XZ\n"}}

	assert.Equal(t, []string{"a^XZ\n"}, (&Service{}).Jobs(plan, ModeTest))
	assert.Equal(t, plan.Blocks, (&Service{}).Jobs(plan, ModeAll))
	assert.Equal(t, []string{"a^XZ\nb^XZ\n", "c^XZ\n"}, (&Service{BatchSize: 2}).Jobs(plan, ModeAll))
	assert.Nil(t, (&Service{}).Jobs(Plan{}, ModeAll))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "test", ModeTest.String())
	assert.Equal(t, "all", ModeAll.String())
}

func TestResultSummary(t *testing.T) {
	assert.Equal(t, "First label sent to Zebra.", Result{Printer: "Zebra", Mode: ModeTest, Sent: 1}.Summary())
	assert.Equal(t, "All 12 labels sent to Zebra.", Result{Printer: "Zebra", Mode: ModeAll, Sent: 12}.Summary())
}
