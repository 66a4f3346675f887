package service

import (
	"context"
	"io"
	"math"

	"github.com/diillson/cnc-quote-go/internal/domain/entity"
	"github.com/diillson/cnc-quote-go/internal/domain/repository"
	"github.com/diillson/cnc-quote-go/internal/shared/types"
)

// GeometryExtractor mede o percurso de corte das entidades de um desenho.
type GeometryExtractor struct {
	drawings repository.DrawingRepository
}

// NewGeometryExtractor creates an extractor that decodes drawings through the given repository.
func NewGeometryExtractor(drawings repository.DrawingRepository) *GeometryExtractor {
	return &GeometryExtractor{drawings: drawings}
}

// ExtractFromReader decodes a drawing and summarizes its geometry. Any failure to obtain
// the entity list is returned as a *types.GeometryProcessingError.
func (x *GeometryExtractor) ExtractFromReader(ctx context.Context, source string, r io.Reader) (entity.GeometrySummary, error) {
	entities, err := x.drawings.DecodeEntities(ctx, r)
	if err != nil {
		return entity.GeometrySummary{}, &types.GeometryProcessingError{Source: source, Err: err}
	}
	return ExtractGeometry(entities), nil
}

// ExtractGeometry soma o comprimento de corte e conta as entidades suportadas.
// Entidades não suportadas são ignoradas.
func ExtractGeometry(entities []entity.Entity) entity.GeometrySummary {
	summary := entity.GeometrySummary{
		Entities: make([]entity.MeasuredEntity, 0, len(entities)),
	}

	for _, e := range entities {
		var length float64

		switch g := e.(type) {
		case entity.LineSegment:
			length = LineLength(g)
			summary.LineCount++
		case entity.Arc:
			length = ArcLength(g)
			summary.ArcCount++
		case entity.Circle:
			length = CircleLength(g)
			summary.CircleCount++
		case entity.PointSequence:
			length = PointSequenceLength(g)
			summary.PolylineCount++
		default:
			continue
		}

		summary.TotalLength += length
		summary.Entities = append(summary.Entities, entity.MeasuredEntity{
			Kind:     e.Kind(),
			Length:   length,
			Geometry: e,
		})
	}

	return summary
}

// LineLength returns the Euclidean distance between the segment end points.
func LineLength(l entity.LineSegment) float64 {
	return distance(l.Start, l.End)
}

// ArcLength retorna o comprimento do arco percorrido no sentido anti-horário do início ao fim.
func ArcLength(a entity.Arc) float64 {
	start := a.StartAngleDeg * math.Pi / 180
	end := a.EndAngleDeg * math.Pi / 180

	// Passagem por 0°/360°
	if end < start {
		end += 2 * math.Pi
	}

	return a.Radius * (end - start)
}

// CircleLength returns the full circumference.
func CircleLength(c entity.Circle) float64 {
	return 2 * math.Pi * c.Radius
}

// PointSequenceLength sums the distances between consecutive points. The sequence is not closed implicitly.
func PointSequenceLength(p entity.PointSequence) float64 {
	var total float64
	for i := 0; i+1 < len(p.Points); i++ {
		total += distance(p.Points[i], p.Points[i+1])
	}
	return total
}

func distance(a, b entity.Point2D) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}
