package nas_test

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/mock/gomock"

	"github.com/geoprobe/geoprobe"
	"github.com/geoprobe/geoprobe/config"
	"github.com/geoprobe/geoprobe/driver"
	"github.com/geoprobe/geoprobe/nas"
	"github.com/geoprobe/geoprobe/stream"
	"github.com/geoprobe/geoprobe/test"
	mock_nas "github.com/geoprobe/geoprobe/test/mock/nas"
)

const (
	nasFile   = "testdata/bestandsdatenauszug.xml"
	gmlFile   = "testdata/plain.gml"
	jsonFile  = "testdata/not-xml.json"
	gfsFile   = "testdata/alkis.gfs"
	emptyGFS  = "testdata/empty.gfs"
	nasLayers = "ax_flurstueck,ax_gebaeude,AX_Buchungsstelle"
)

type stubDataset struct{ name string }

// FailClose is a stream whose Close reports an error.
type failClose struct{ stream.Handle }

func (f failClose) Close() error {
	f.Handle.Close()
	return errors.New("close failed")
}

func (d *stubDataset) Name() string     { return d.name }
func (d *stubDataset) Driver() string   { return nas.DriverName }
func (d *stubDataset) Layers() []string { return nil }
func (d *stubDataset) Close() error     { return nil }

func TestDescriptor(t *testing.T) {
	d := nas.New(config.Map{}).Descriptor()
	type meta struct {
		Name, LongName, Extension, HelpTopic string
		SQLDialects                          []string
		Capabilities                         driver.Capabilities
	}
	got := meta{d.Name, d.LongName, d.Extension, d.HelpTopic, d.SQLDialects, d.Capabilities}
	want := meta{
		Name:         "NAS",
		LongName:     "NAS - ALKIS",
		Extension:    "xml",
		HelpTopic:    "drivers/vector/nas.html",
		SQLDialects:  []string{"OGRSQL", "SQLITE"},
		Capabilities: driver.CapVector | driver.CapVirtualIO,
	}
	if !cmp.Equal(got, want) {
		t.Error(cmp.Diff(got, want))
	}
	if d.Identify == nil || d.Open == nil {
		t.Error("missing entry points")
	}
}

func TestRegister(t *testing.T) {
	t.Run("Twice", func(t *testing.T) {
		c := driver.NewCatalog()
		d := nas.New(config.Map{})
		for range 2 {
			if err := d.Register(c); err != nil {
				t.Fatal(err)
			}
		}
		if got, want := c.Names(), []string{nas.DriverName}; !cmp.Equal(got, want) {
			t.Error(cmp.Diff(got, want))
		}
	})

	t.Run("Occupied", func(t *testing.T) {
		c := driver.NewCatalog()
		other := nas.New(config.Map{}).Descriptor()
		other.Name = "nas"
		if err := c.Register(other); err != nil {
			t.Fatal(err)
		}
		if err := nas.New(config.Map{}).Register(c); err != nil {
			t.Fatal(err)
		}
		if got := c.Lookup(nas.DriverName); got != other {
			t.Error("existing entry replaced")
		}
		if got, want := len(c.Names()), 1; got != want {
			t.Errorf("got: %d, want: %d", got, want)
		}
	})

	t.Run("Default", func(t *testing.T) {
		t.Cleanup(func() { driver.Default.Deregister(nas.DriverName) })
		for range 2 {
			if err := nas.Register(); err != nil {
				t.Fatal(err)
			}
		}
		var ct int
		for _, n := range driver.Default.Names() {
			if strings.EqualFold(n, nas.DriverName) {
				ct++
			}
		}
		if got, want := ct, 1; got != want {
			t.Errorf("got: %d, want: %d", got, want)
		}
	})
}

func openInfo(t *testing.T, ctx context.Context, name, doc string) (*driver.OpenInfo, *stream.Stream) {
	t.Helper()
	s, err := stream.New(ctx, name, strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return &driver.OpenInfo{Filename: name, Stream: s}, s
}

func TestOpen(t *testing.T) {
	ctx := test.Logging(t)
	doc, err := os.ReadFile(nasFile)
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Map{nas.KeyGFSTemplate: gfsFile}

	t.Run("Accepted", func(t *testing.T) {
		ctl := gomock.NewController(t)
		f := mock_nas.NewMockDatasetFactory(ctl)
		info, s := openInfo(t, ctx, "a.xml", string(doc))
		want := &stubDataset{name: "a.xml"}
		f.EXPECT().Open(gomock.Any(), "a.xml").DoAndReturn(func(context.Context, string) (geoprobe.Dataset, error) {
			if s.Ingest(stream.HeaderSize) || !errors.Is(s.Err(), stream.ErrClosed) {
				t.Error("sniffing stream still open when the factory ran")
			}
			return want, nil
		})
		d := &nas.Driver{Config: cfg, Factory: f}
		ds, err := d.Open(ctx, info)
		if err != nil {
			t.Fatal(err)
		}
		if ds != want {
			t.Errorf("got: %v, want: %v", ds, want)
		}
	})

	t.Run("Pinned", func(t *testing.T) {
		ctl := gomock.NewController(t)
		f := mock_nas.NewMockDatasetFactory(ctl)
		info, _ := openInfo(t, ctx, "b.xml", "<root/>")
		info.AllowedDrivers = []string{nas.DriverName}
		f.EXPECT().Open(gomock.Any(), "b.xml").Return(&stubDataset{name: "b.xml"}, nil)
		d := &nas.Driver{Factory: f}
		ds, err := d.Open(ctx, info)
		if err != nil {
			t.Fatal(err)
		}
		if ds == nil {
			t.Fatal("no dataset")
		}
	})

	t.Run("CloseError", func(t *testing.T) {
		ctl := gomock.NewController(t)
		f := mock_nas.NewMockDatasetFactory(ctl)
		info, _ := openInfo(t, ctx, "e.xml", string(doc))
		info.Stream = failClose{info.Stream}
		f.EXPECT().Open(gomock.Any(), "e.xml").Return(&stubDataset{name: "e.xml"}, nil)
		var buf bytes.Buffer
		l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		d := &nas.Driver{Config: cfg, Factory: f, Logger: l}
		if _, err := d.Open(ctx, info); err != nil {
			t.Fatal(err)
		}
		if out := buf.String(); !strings.Contains(out, "error closing sniffing stream") || !strings.Contains(out, "close failed") {
			t.Errorf("close error not logged to the driver's logger: %q", out)
		}
	})

	t.Run("NotMine", func(t *testing.T) {
		for _, tc := range []struct {
			Name   string
			Doc    string
			Config config.Provider
			Access geoprobe.Access
		}{
			{Name: "Rejected", Doc: `{"a": 1}`, Config: cfg},
			{Name: "Disabled", Doc: string(doc), Config: config.Map{}},
			{Name: "Update", Doc: string(doc), Config: cfg, Access: geoprobe.AccessUpdate},
		} {
			t.Run(tc.Name, func(t *testing.T) {
				ctl := gomock.NewController(t)
				f := mock_nas.NewMockDatasetFactory(ctl)
				info, s := openInfo(t, ctx, "c.xml", tc.Doc)
				info.Access = tc.Access
				d := &nas.Driver{Config: tc.Config, Factory: f}
				ds, err := d.Open(ctx, info)
				if ds != nil || err != nil {
					t.Errorf("got: (%v, %v), want: (nil, nil)", ds, err)
				}
				if !s.Ingest(stream.HeaderSize) {
					t.Error("stream closed on a \"not mine\" answer")
				}
			})
		}
	})

	t.Run("FactoryError", func(t *testing.T) {
		boom := errors.New("boom")
		precondition := &geoprobe.Error{Op: "factory", Kind: geoprobe.ErrPrecondition, Inner: fs.ErrNotExist}
		for _, tc := range []struct {
			Name  string
			Ret   geoprobe.Dataset
			Err   error
			Kind  geoprobe.ErrorKind
			Cause error
		}{
			{Name: "Plain", Err: boom, Kind: geoprobe.ErrInvalid, Cause: boom},
			{Name: "Typed", Err: precondition, Kind: geoprobe.ErrPrecondition, Cause: fs.ErrNotExist},
			{Name: "NoDataset", Kind: geoprobe.ErrInternal},
		} {
			t.Run(tc.Name, func(t *testing.T) {
				ctl := gomock.NewController(t)
				f := mock_nas.NewMockDatasetFactory(ctl)
				f.EXPECT().Open(gomock.Any(), "d.xml").Return(tc.Ret, tc.Err)
				info, _ := openInfo(t, ctx, "d.xml", string(doc))
				d := &nas.Driver{Config: cfg, Factory: f}
				ds, err := d.Open(ctx, info)
				if ds != nil {
					t.Error("dataset returned with error")
				}
				if !errors.Is(err, tc.Kind) {
					t.Errorf("got: %v, want kind: %v", err, tc.Kind)
				}
				if tc.Cause != nil && !errors.Is(err, tc.Cause) {
					t.Errorf("got: %v, want cause: %v", err, tc.Cause)
				}
			})
		}
	})
}

func TestGFSFactory(t *testing.T) {
	ctx := test.Logging(t)

	t.Run("Layers", func(t *testing.T) {
		f := &nas.GFSFactory{Config: config.Map{nas.KeyGFSTemplate: gfsFile}}
		ds, err := f.Open(ctx, nasFile)
		if err != nil {
			t.Fatal(err)
		}
		defer ds.Close()
		if got, want := strings.Join(ds.Layers(), ","), nasLayers; got != want {
			t.Errorf("got: %q, want: %q", got, want)
		}
		if got, want := ds.Name(), nasFile; got != want {
			t.Errorf("got: %q, want: %q", got, want)
		}
		if got, want := ds.Driver(), nas.DriverName; got != want {
			t.Errorf("got: %q, want: %q", got, want)
		}
		ds.Layers()[0] = "mutated"
		if ds.Layers()[0] == "mutated" {
			t.Error("Layers exposes internal state")
		}
	})

	for _, tc := range []struct {
		Name  string
		P     config.Provider
		File  string
		Cause error
	}{
		{Name: "Unset", P: config.Map{}, File: nasFile},
		{Name: "Empty", P: config.Map{nas.KeyGFSTemplate: ""}, File: nasFile},
		{Name: "NoClasses", P: config.Map{nas.KeyGFSTemplate: emptyGFS}, File: nasFile},
		{Name: "MissingTemplate", P: config.Map{nas.KeyGFSTemplate: "testdata/missing.gfs"}, File: nasFile, Cause: fs.ErrNotExist},
		{Name: "MissingFile", P: config.Map{nas.KeyGFSTemplate: gfsFile}, File: "testdata/missing.xml", Cause: fs.ErrNotExist},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			f := &nas.GFSFactory{Config: tc.P}
			_, err := f.Open(ctx, tc.File)
			if !errors.Is(err, geoprobe.ErrPrecondition) {
				t.Errorf("got: %v, want: %v", err, geoprobe.ErrPrecondition)
			}
			if tc.Cause != nil && !errors.Is(err, tc.Cause) {
				t.Errorf("got: %v, want: %v", err, tc.Cause)
			}
		})
	}
}

func TestCatalog(t *testing.T) {
	ctx := test.Logging(t)
	raw, err := os.ReadFile(nasFile)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(raw); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	gzFile := filepath.Join(t.TempDir(), "bestandsdatenauszug.xml.gz")
	if err := os.WriteFile(gzFile, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	enabled := driver.NewCatalog()
	if err := nas.New(config.Map{nas.KeyGFSTemplate: gfsFile}).Register(enabled); err != nil {
		t.Fatal(err)
	}
	disabled := driver.NewCatalog()
	if err := nas.New(config.Map{}).Register(disabled); err != nil {
		t.Fatal(err)
	}
	pin := &driver.Options{AllowedDrivers: []string{nas.DriverName}}

	tt := []struct {
		Name    string
		Catalog *driver.Catalog
		File    string
		Opts    *driver.Options
		Verdict geoprobe.Verdict
		Err     error
	}{
		{Name: "NAS", Catalog: enabled, File: nasFile, Verdict: geoprobe.Accept},
		{Name: "Compressed", Catalog: enabled, File: gzFile, Verdict: geoprobe.Accept},
		{Name: "PlainGML", Catalog: enabled, File: gmlFile, Verdict: geoprobe.Reject, Err: driver.ErrNoDriver},
		{Name: "JSON", Catalog: enabled, File: jsonFile, Verdict: geoprobe.Reject, Err: driver.ErrNoDriver},
		{Name: "PinnedGML", Catalog: enabled, File: gmlFile, Opts: pin, Verdict: geoprobe.ForceAccept},
		{Name: "Disabled", Catalog: disabled, File: nasFile, Verdict: geoprobe.Reject, Err: driver.ErrNoDriver},
		{Name: "Update", Catalog: enabled, File: nasFile, Opts: &driver.Options{Access: geoprobe.AccessUpdate}, Verdict: geoprobe.Accept, Err: driver.ErrNoDriver},
	}
	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			_, v, err := tc.Catalog.Identify(ctx, tc.File, tc.Opts)
			if err != nil {
				t.Fatal(err)
			}
			if got, want := v, tc.Verdict; got != want {
				t.Errorf("verdict: got: %v, want: %v", got, want)
			}

			ds, err := tc.Catalog.Open(ctx, tc.File, tc.Opts)
			if tc.Err != nil {
				if !errors.Is(err, tc.Err) {
					t.Errorf("got: %v, want: %v", err, tc.Err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			defer ds.Close()
			if got, want := ds.Name(), tc.File; got != want {
				t.Errorf("name: got: %q, want: %q", got, want)
			}
			if got, want := strings.Join(ds.Layers(), ","), nasLayers; got != want {
				t.Errorf("layers: got: %q, want: %q", got, want)
			}
		})
	}
}
