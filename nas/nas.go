// Package nas implements the driver for NAS (Normbasierte
// Austauschschnittstelle) documents, the GML application schema used to
// exchange German cadastral data (ALKIS, ATKIS, AFIS).
//
// Identification is a two-phase heuristic on the prefix of the input. The
// first phase only checks that the header looks like XML. The second grows
// the prefix to [IngestSize] bytes and looks for the GML namespace and at
// least one indicator token. A file that matches is still rejected unless the
// [KeyGFSTemplate] option is set, because opening a NAS document requires a
// GFS template describing its feature classes.
package nas

// DriverName is the catalog name of the driver.
const DriverName = "NAS"

// Configuration options consulted by the driver.
const (
	// KeyIndicator overrides the indicator tokens. The value is a
	// semicolon-separated list.
	KeyIndicator = "NAS_INDICATOR"
	// KeyGFSTemplate names the GFS template used to open NAS documents. The
	// driver only recognizes files when it's set.
	KeyGFSTemplate = "NAS_GFS_TEMPLATE"
)

// DefaultIndicators is used when [KeyIndicator] is unset.
const DefaultIndicators = "NAS-Operationen;AAA-Fachschema;aaa.xsd;aaa-suite"

// IngestSize is the size of the prefix the content check works on.
const IngestSize = 8192

// Marker must appear in every NAS document's prefix.
var marker = []byte("opengis.net/gml")
