package dxf

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/diillson/cnc-quote-go/internal/domain/entity"
	"github.com/diillson/cnc-quote-go/internal/domain/service"
	"github.com/diillson/cnc-quote-go/internal/shared/types"
	"github.com/rpaloschi/dxf-go/core"
	"github.com/rpaloschi/dxf-go/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type panicReader struct{}

func (panicReader) Read(p []byte) (int, error) {
	panic("truncated group code")
}

func newTestRepository() *DrawingRepositoryImpl {
	return NewDrawingRepository().(*DrawingRepositoryImpl)
}

// tags monta um fluxo DXF ASCII a partir de pares código/valor.
func tags(pairs ...interface{}) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		fmt.Fprintf(&b, "%v\n%v\n", pairs[i], pairs[i+1])
	}
	return b.String()
}

func entitiesSection(body ...string) string {
	return tags(0, "SECTION", 2, "ENTITIES") + strings.Join(body, "") + tags(0, "ENDSEC", 0, "EOF")
}

// testPart: linha de 100 mm, arco, círculo, triângulo em LWPOLYLINE,
// POLYLINE 3-4-5, um texto e uma moldura no paper space.
func testPart() string {
	return entitiesSection(
		tags(0, "LINE", 8, "0", 10, 0, 20, 0, 30, 0, 11, 100, 21, 0, 31, 0),
		tags(0, "LINE", 67, 1, 8, "0", 10, 0, 20, 0, 30, 0, 11, 210, 21, 0, 31, 0),
		tags(0, "ARC", 8, "0", 10, 25, 20, 25, 30, 0, 40, 10, 50, 0, 51, 180),
		tags(0, "CIRCLE", 8, "0", 10, 50, 20, 25, 30, 0, 40, 15),
		tags(0, "LWPOLYLINE", 8, "0", 90, 4, 70, 0,
			10, 75, 20, 10, 10, 90, 20, 40, 10, 60, 20, 40, 10, 75, 20, 10),
		tags(0, "POLYLINE", 8, "0", 66, 1, 10, 0, 20, 0, 30, 0, 70, 0),
		tags(0, "VERTEX", 8, "0", 10, 0, 20, 0, 30, 0),
		tags(0, "VERTEX", 8, "0", 10, 3, 20, 4, 30, 0),
		tags(0, "SEQEND", 8, "0"),
		tags(0, "TEXT", 8, "0", 10, 0, 20, 0, 30, 0, 40, 2.5, 1, "PART-001"),
	)
}

func pt(x, y float64) entity.Point2D { return entity.Point2D{X: x, Y: y} }

func TestDecodeEntities_TestPart(t *testing.T) {
	ents, err := newTestRepository().DecodeEntities(context.Background(), strings.NewReader(testPart()))
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(ents), 5)

	tests := []struct {
		name string
		want entity.Entity
	}{
		{"line", entity.LineSegment{Start: pt(0, 0), End: pt(100, 0)}},
		{"arc", entity.Arc{Center: pt(25, 25), Radius: 10, StartAngleDeg: 0, EndAngleDeg: 180}},
		{"circle", entity.Circle{Center: pt(50, 25), Radius: 15}},
		{"lwpolyline", entity.PointSequence{
			Points:     []entity.Point2D{pt(75, 10), pt(90, 40), pt(60, 40), pt(75, 10)},
			SourceType: "LWPOLYLINE",
		}},
		{"polyline", entity.PointSequence{Points: []entity.Point2D{pt(0, 0), pt(3, 4)}, SourceType: "POLYLINE"}},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ents[i])
		})
	}

	// O texto, quando reconhecido pelo parser, chega como não suportado
	for _, e := range ents[len(tests):] {
		assert.Equal(t, entity.KindUnsupported, e.Kind())
	}
}

func TestDecodeEntities_PaperSpaceIsIgnored(t *testing.T) {
	doc := entitiesSection(
		tags(0, "LINE", 8, "0", 10, 0, 20, 0, 30, 0, 11, 100, 21, 0, 31, 0),
		tags(0, "LINE", 67, 1, 8, "BORDER", 10, 0, 20, 0, 30, 0, 11, 210, 21, 0, 31, 0),
		tags(0, "CIRCLE", 67, 1, 8, "BORDER", 10, 5, 20, 5, 30, 0, 40, 2),
	)

	ents, err := newTestRepository().DecodeEntities(context.Background(), strings.NewReader(doc))
	require.NoError(t, err)

	summary := service.ExtractGeometry(ents)
	assert.Equal(t, 1, summary.LineCount)
	assert.Equal(t, 0, summary.CircleCount)
	assert.InDelta(t, 100.0, summary.TotalLength, 1e-9)
}

func TestExtractFromReader_TestPartLength(t *testing.T) {
	extractor := service.NewGeometryExtractor(newTestRepository())

	summary, err := extractor.ExtractFromReader(context.Background(), "part.dxf", strings.NewReader(testPart()))
	require.NoError(t, err)

	triangle := 2*math.Sqrt(15*15+30*30) + 30
	want := 100 + 10*math.Pi + 30*math.Pi + triangle + 5
	assert.InDelta(t, want, summary.TotalLength, 1e-9)
	assert.Equal(t, 1, summary.LineCount)
	assert.Equal(t, 1, summary.ArcCount)
	assert.Equal(t, 1, summary.CircleCount)
	assert.Equal(t, 2, summary.PolylineCount)
}

func TestDecodeEntities_RejectsNonDXFInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"plain text", "this is not a dxf file at all\n"},
		{"pdf bytes", "%PDF-1.4 binary\x00\x01"},
		{"no EOF", tags(0, "SECTION", 2, "ENTITIES", 0, "ENDSEC")},
		{"EOF without section", tags(0, "EOF")},
	}

	extractor := service.NewGeometryExtractor(newTestRepository())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ents, err := newTestRepository().DecodeEntities(context.Background(), strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Nil(t, ents)
			assert.Contains(t, err.Error(), "not a DXF container")

			_, err = extractor.ExtractFromReader(context.Background(), "bad.dxf", strings.NewReader(tt.input))
			var geomErr *types.GeometryProcessingError
			require.True(t, errors.As(err, &geomErr))
			assert.Equal(t, "bad.dxf", geomErr.Source)
		})
	}
}

func TestCheckContainer_AcceptsCRLFAndBOM(t *testing.T) {
	doc := "\ufeff" + strings.ReplaceAll(entitiesSection(), "\n", "\r\n")
	assert.NoError(t, checkContainer([]byte(doc)))
}

func TestDecodeEntities_RecoversFromParserPanic(t *testing.T) {
	repo := newTestRepository()

	ents, err := repo.DecodeEntities(context.Background(), panicReader{})
	require.Error(t, err)
	assert.Nil(t, ents)
	assert.Contains(t, err.Error(), "malformed DXF container")
}

func TestDecodeEntities_CanceledContext(t *testing.T) {
	repo := newTestRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.DecodeEntities(ctx, strings.NewReader(""))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConvert_Line(t *testing.T) {
	repo := newTestRepository()

	got, ok := repo.convert(&entities.Line{
		Start: core.Point{X: 1, Y: 2, Z: 5},
		End:   core.Point{X: 4, Y: 6, Z: 5},
	})

	require.True(t, ok)
	assert.Equal(t, entity.LineSegment{
		Start: entity.Point2D{X: 1, Y: 2},
		End:   entity.Point2D{X: 4, Y: 6},
	}, got)
}

func TestConvert_UnsupportedType(t *testing.T) {
	repo := newTestRepository()

	got, ok := repo.convert(&entities.Spline{})
	require.True(t, ok)
	assert.Equal(t, entity.UnsupportedEntity{DXFType: "SPLINE"}, got)
	assert.Equal(t, entity.KindUnsupported, got.Kind())
}

func TestSetParserLogger(t *testing.T) {
	original := core.Log
	t.Cleanup(func() { core.Log = original })

	obs, logs := observer.New(zap.DebugLevel)
	SetParserLogger(zap.New(obs))

	core.Log.Println("Discarding tag: 999")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "dxf-go", entry.LoggerName)
	assert.Equal(t, zap.DebugLevel, entry.Level)
	assert.Contains(t, entry.Message, "Discarding tag")
}
