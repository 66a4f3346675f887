package service

import (
	"context"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/diillson/cnc-quote-go/internal/domain/entity"
	"github.com/diillson/cnc-quote-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

type fakeDrawings struct {
	entities []entity.Entity
	err      error
}

func (f fakeDrawings) DecodeEntities(_ context.Context, _ io.Reader) ([]entity.Entity, error) {
	return f.entities, f.err
}

func pt(x, y float64) entity.Point2D { return entity.Point2D{X: x, Y: y} }

// testDrawing reproduces the reference test part: a 100x50 rectangle, a circle,
// a half arc and a closed triangle.
func testDrawing() []entity.Entity {
	return []entity.Entity{
		entity.LineSegment{Start: pt(0, 0), End: pt(100, 0)},
		entity.LineSegment{Start: pt(100, 0), End: pt(100, 50)},
		entity.LineSegment{Start: pt(100, 50), End: pt(0, 50)},
		entity.LineSegment{Start: pt(0, 50), End: pt(0, 0)},
		entity.Circle{Center: pt(50, 25), Radius: 15},
		entity.Arc{Center: pt(25, 25), Radius: 10, StartAngleDeg: 0, EndAngleDeg: 180},
		entity.PointSequence{
			Points:     []entity.Point2D{pt(75, 10), pt(90, 40), pt(60, 40), pt(75, 10)},
			SourceType: "LWPOLYLINE",
		},
	}
}

func testDrawingLength() float64 {
	triangle := 2*math.Sqrt(15*15+30*30) + 30
	return 300 + 2*math.Pi*15 + 10*math.Pi + triangle
}

func TestLineLength(t *testing.T) {
	assert.InDelta(t, 5.0, LineLength(entity.LineSegment{Start: pt(0, 0), End: pt(3, 4)}), tolerance)
	assert.InDelta(t, 5.0, LineLength(entity.LineSegment{Start: pt(3, 4), End: pt(0, 0)}), tolerance)
	assert.Equal(t, 0.0, LineLength(entity.LineSegment{Start: pt(7, -2), End: pt(7, -2)}))
}

func TestCircleLength(t *testing.T) {
	for _, r := range []float64{0, 1, 15, 123.456} {
		assert.InDelta(t, 2*math.Pi*r, CircleLength(entity.Circle{Radius: r}), tolerance)
	}
}

func TestArcLength(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		want       float64
	}{
		{"half", 0, 180, 10 * math.Pi},
		{"quarter", 90, 180, 5 * math.Pi},
		{"wraps through zero", 350, 10, 10 * (20 * math.Pi / 180)},
		{"major sweep", 180, 90, 10 * (270 * math.Pi / 180)},
		{"same angle", 45, 45, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ArcLength(entity.Arc{Radius: 10, StartAngleDeg: tt.start, EndAngleDeg: tt.end})
			assert.InDelta(t, tt.want, got, tolerance)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}

	assert.InDelta(t, 3.49, ArcLength(entity.Arc{Radius: 10, StartAngleDeg: 350, EndAngleDeg: 10}), 0.005)
}

func TestArcLength_NeverNegative(t *testing.T) {
	for start := 0.0; start < 360; start += 15 {
		for end := 0.0; end < 360; end += 15 {
			got := ArcLength(entity.Arc{Radius: 2.5, StartAngleDeg: start, EndAngleDeg: end})
			assert.GreaterOrEqual(t, got, 0.0, "start=%v end=%v", start, end)
		}
	}
}

func TestPointSequenceLength(t *testing.T) {
	assert.Equal(t, 0.0, PointSequenceLength(entity.PointSequence{}))
	assert.Equal(t, 0.0, PointSequenceLength(entity.PointSequence{Points: []entity.Point2D{pt(4, 4)}}))

	open := entity.PointSequence{Points: []entity.Point2D{pt(0, 0), pt(3, 4), pt(3, 10)}}
	assert.InDelta(t, 11.0, PointSequenceLength(open), tolerance)

	// Additive over consecutive segments
	first := entity.PointSequence{Points: open.Points[:2]}
	second := entity.PointSequence{Points: open.Points[1:]}
	assert.InDelta(t, PointSequenceLength(first)+PointSequenceLength(second), PointSequenceLength(open), tolerance)
}

func TestExtractGeometry_TestDrawing(t *testing.T) {
	summary := ExtractGeometry(testDrawing())

	assert.InDelta(t, testDrawingLength(), summary.TotalLength, tolerance)
	assert.InDelta(t, 522.75, summary.TotalLength, 0.01)
	assert.Equal(t, 4, summary.LineCount)
	assert.Equal(t, 1, summary.ArcCount)
	assert.Equal(t, 1, summary.CircleCount)
	assert.Equal(t, 1, summary.PolylineCount)
	assert.Equal(t, 7, summary.EntityCount())
	require.Len(t, summary.Entities, 7)

	assert.Equal(t, entity.KindLine, summary.Entities[0].Kind)
	assert.InDelta(t, 100.0, summary.Entities[0].Length, tolerance)
	assert.Equal(t, entity.KindPolyline, summary.Entities[6].Kind)

	byKind := summary.LengthByKind()
	assert.InDelta(t, 300.0, byKind[entity.KindLine], tolerance)
	assert.InDelta(t, 30*math.Pi, byKind[entity.KindCircle], tolerance)
}

func TestExtractGeometry_SkipsUnsupported(t *testing.T) {
	withText := append(testDrawing(),
		entity.UnsupportedEntity{DXFType: "TEXT"},
		entity.UnsupportedEntity{DXFType: "DIMENSION"},
	)

	summary := ExtractGeometry(withText)
	plain := ExtractGeometry(testDrawing())

	assert.Equal(t, plain.TotalLength, summary.TotalLength)
	assert.Equal(t, plain.EntityCount(), summary.EntityCount())
	assert.Len(t, summary.Entities, 7)
}

func TestExtractGeometry_Empty(t *testing.T) {
	summary := ExtractGeometry(nil)
	assert.Equal(t, 0.0, summary.TotalLength)
	assert.Equal(t, 0, summary.EntityCount())
	assert.Empty(t, summary.Entities)
}

func TestExtractGeometry_Idempotent(t *testing.T) {
	drawing := testDrawing()
	first := ExtractGeometry(drawing)
	second := ExtractGeometry(drawing)
	assert.Equal(t, first, second)
	assert.Equal(t, math.Float64bits(first.TotalLength), math.Float64bits(second.TotalLength))
}

func TestExtractFromReader(t *testing.T) {
	x := NewGeometryExtractor(fakeDrawings{entities: testDrawing()})

	summary, err := x.ExtractFromReader(context.Background(), "part.dxf", strings.NewReader(""))
	require.NoError(t, err)
	assert.InDelta(t, testDrawingLength(), summary.TotalLength, tolerance)
}

func TestExtractFromReader_DecodeFailure(t *testing.T) {
	cause := errors.New("unexpected group code")
	x := NewGeometryExtractor(fakeDrawings{err: cause})

	_, err := x.ExtractFromReader(context.Background(), "broken.dxf", strings.NewReader("garbage"))
	require.Error(t, err)

	var gpe *types.GeometryProcessingError
	require.ErrorAs(t, err, &gpe)
	assert.Equal(t, "broken.dxf", gpe.Source)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "broken.dxf")
}
