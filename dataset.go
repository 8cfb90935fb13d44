package geoprobe

// Dataset is an opened vector dataset.
//
// Datasets are produced by drivers after a positive identification. The
// caller owns the Dataset and must call Close.
type Dataset interface {
	// Name is the filename the dataset was opened from.
	Name() string
	// Driver is the name of the driver that produced the dataset.
	Driver() string
	// Layers reports the names of the layers the dataset exposes.
	Layers() []string
	Close() error
}
