package nas

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/geoprobe/geoprobe"
	"github.com/geoprobe/geoprobe/config"
	"github.com/geoprobe/geoprobe/stream"
)

// DatasetFactory constructs a dataset for a file the driver accepted.
//
// The factory is handed the filename, not the stream used for identification,
// and opens the file itself.
type DatasetFactory interface {
	Open(ctx context.Context, filename string) (geoprobe.Dataset, error)
}

// GFSFactory is the default [DatasetFactory]. The layers of a NAS dataset are
// the feature classes declared by the GFS template named in the
// [KeyGFSTemplate] option.
type GFSFactory struct {
	Config config.Provider
}

var _ DatasetFactory = (*GFSFactory)(nil)

// Open implements [DatasetFactory].
//
// The layers come from the template alone. The named file is only checked for
// readability: it's opened through [stream.Open] and closed again, so a file
// that vanished or can't be decompressed since identification is reported
// here rather than on first use.
func (f *GFSFactory) Open(ctx context.Context, filename string) (geoprobe.Dataset, error) {
	tmpl := config.GetDefault(f.Config, KeyGFSTemplate, "")
	if tmpl == "" {
		return nil, &geoprobe.Error{
			Op:      "nas.Open",
			Kind:    geoprobe.ErrPrecondition,
			Message: KeyGFSTemplate + " is not set",
		}
	}
	classes, err := readGFS(tmpl)
	if err != nil {
		return nil, &geoprobe.Error{
			Op:      "nas.Open",
			Kind:    geoprobe.ErrPrecondition,
			Message: "unable to read GFS template",
			Inner:   err,
		}
	}
	s, err := stream.Open(ctx, filename)
	if err != nil {
		return nil, &geoprobe.Error{
			Op:      "nas.Open",
			Kind:    geoprobe.ErrPrecondition,
			Message: "file not readable",
			Inner:   err,
		}
	}
	if err := s.Close(); err != nil {
		return nil, &geoprobe.Error{
			Op:    "nas.Open",
			Kind:  geoprobe.ErrInternal,
			Inner: err,
		}
	}
	return &dataset{
		name:     filename,
		template: tmpl,
		layers:   classes,
	}, nil
}

// Dataset is a NAS document described by a GFS template.
type dataset struct {
	name     string
	template string
	layers   []string
}

var _ geoprobe.Dataset = (*dataset)(nil)

func (d *dataset) Name() string     { return d.name }
func (d *dataset) Driver() string   { return DriverName }
func (d *dataset) Layers() []string { return slices.Clone(d.layers) }
func (d *dataset) Close() error     { return nil }

// Template reports the GFS template the dataset was opened with.
func (d *dataset) Template() string { return d.template }

// GfsDocument is the subset of a GFS file that's decoded.
type gfsDocument struct {
	XMLName xml.Name   `xml:"GMLFeatureClassList"`
	Classes []gfsClass `xml:"GMLFeatureClass"`
}

type gfsClass struct {
	Name        string `xml:"Name"`
	ElementPath string `xml:"ElementPath"`
}

// ReadGFS returns the feature class names declared in the named GFS file, in
// document order.
func readGFS(name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var doc gfsDocument
	if err := xml.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	ret := make([]string, 0, len(doc.Classes))
	for _, c := range doc.Classes {
		n := strings.TrimSpace(c.Name)
		if n == "" {
			n = strings.TrimSpace(c.ElementPath)
		}
		if n == "" || slices.Contains(ret, n) {
			continue
		}
		ret = append(ret, n)
	}
	if len(ret) == 0 {
		return nil, errors.New(name + ": no feature classes declared")
	}
	return ret, nil
}
