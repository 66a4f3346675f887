package entity

// EntityKind identifica o tipo de uma entidade de desenho.
type EntityKind string

const (
	KindLine        EntityKind = "LINE"
	KindArc         EntityKind = "ARC"
	KindCircle      EntityKind = "CIRCLE"
	KindPolyline    EntityKind = "POLYLINE"
	KindUnsupported EntityKind = "UNSUPPORTED"
)

// Point2D is a planar coordinate in millimeters.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Entity é uma entidade geométrica decodificada de um desenho.
type Entity interface {
	Kind() EntityKind
}

// LineSegment represents a straight cut between two points.
type LineSegment struct {
	Start Point2D `json:"start"`
	End   Point2D `json:"end"`
}

// Arc represents a counter-clockwise circular arc. Angles are in degrees.
type Arc struct {
	Center        Point2D `json:"center"`
	Radius        float64 `json:"radius"`
	StartAngleDeg float64 `json:"start_angle"`
	EndAngleDeg   float64 `json:"end_angle"`
}

// Circle represents a full, closed circle.
type Circle struct {
	Center Point2D `json:"center"`
	Radius float64 `json:"radius"`
}

// PointSequence represents a connected sequence of points (LWPOLYLINE / POLYLINE).
type PointSequence struct {
	Points []Point2D `json:"points"`
	// SourceType keeps the DXF type the sequence was decoded from.
	SourceType string `json:"source_type,omitempty"`
}

// UnsupportedEntity carries a drawing entity the quoting pipeline does not measure
// (text, dimensions, hatches...).
type UnsupportedEntity struct {
	DXFType string `json:"dxf_type"`
}

func (LineSegment) Kind() EntityKind       { return KindLine }
func (Arc) Kind() EntityKind               { return KindArc }
func (Circle) Kind() EntityKind            { return KindCircle }
func (PointSequence) Kind() EntityKind     { return KindPolyline }
func (UnsupportedEntity) Kind() EntityKind { return KindUnsupported }

// MeasuredEntity is one supported entity together with its cutting length.
type MeasuredEntity struct {
	Kind     EntityKind `json:"type"`
	Length   float64    `json:"length"`
	Geometry Entity     `json:"geometry"`
}

// GeometrySummary agrega as entidades medidas de um desenho e os totais derivados.
type GeometrySummary struct {
	TotalLength   float64          `json:"total_length"`
	LineCount     int              `json:"line_count"`
	ArcCount      int              `json:"arc_count"`
	CircleCount   int              `json:"circle_count"`
	PolylineCount int              `json:"polyline_count"`
	Entities      []MeasuredEntity `json:"entities"`
}

// EntityCount returns the number of measured entities.
func (s GeometrySummary) EntityCount() int {
	return s.LineCount + s.ArcCount + s.CircleCount + s.PolylineCount
}

// LengthByKind soma o comprimento de corte por tipo de entidade.
func (s GeometrySummary) LengthByKind() map[EntityKind]float64 {
	out := make(map[EntityKind]float64, 4)
	for _, e := range s.Entities {
		out[e.Kind] += e.Length
	}
	return out
}
