package dxf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/diillson/cnc-quote-go/internal/domain/entity"
	"github.com/diillson/cnc-quote-go/internal/domain/repository"
	"github.com/rpaloschi/dxf-go/core"
	"github.com/rpaloschi/dxf-go/document"
	"github.com/rpaloschi/dxf-go/entities"
	"go.uber.org/zap"
)

// DrawingRepositoryImpl implementa o DrawingRepository sobre o dxf-go.
type DrawingRepositoryImpl struct{}

// NewDrawingRepository cria uma nova implementação do DrawingRepository.
func NewDrawingRepository() repository.DrawingRepository {
	return &DrawingRepositoryImpl{}
}

func (r *DrawingRepositoryImpl) logger() *zap.Logger {
	return zap.L().Named("dxf")
}

// DecodeEntities lê o container DXF e converte as entidades do model space.
// Entidades do paper space (folha, carimbo) são descartadas.
func (r *DrawingRepositoryImpl) DecodeEntities(ctx context.Context, reader io.Reader) (ents []entity.Entity, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// O parser entra em pânico com alguns arquivos truncados
	defer func() {
		if rec := recover(); rec != nil {
			ents = nil
			err = fmt.Errorf("malformed DXF container: %v", rec)
		}
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("error reading DXF document: %w", err)
	}
	if err := checkContainer(data); err != nil {
		return nil, err
	}

	doc, err := document.DxfDocumentFromStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error reading DXF document: %w", err)
	}

	skipped := make(map[string]int)
	paperSpace := 0
	ents = make([]entity.Entity, 0, len(doc.Entities.Entities))
	for _, e := range doc.Entities.Entities {
		converted, ok := r.convert(e)
		if !ok {
			paperSpace++
			continue
		}
		if u, isUnsupported := converted.(entity.UnsupportedEntity); isUnsupported {
			skipped[u.DXFType]++
		}
		ents = append(ents, converted)
	}

	r.logger().Debug("decoded DXF entities",
		zap.Int("entities", len(ents)),
		zap.Int("paper_space", paperSpace),
		zap.Any("unsupported", skipped))

	return ents, nil
}

// checkContainer valida o fluxo de tags ASCII: pares código/valor, ao menos uma
// SECTION e o marcador EOF. O dxf-go aceita qualquer entrada sem seções como um
// documento vazio.
func checkContainer(data []byte) error {
	text := strings.TrimPrefix(string(data), "\ufeff")
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	hasSection := false
	for i := 0; i+1 < len(lines); i += 2 {
		code := strings.TrimSpace(lines[i])
		if _, err := strconv.Atoi(code); err != nil {
			return fmt.Errorf("not a DXF container: invalid group code %q at line %d", truncateTag(code), i+1)
		}
		if code != "0" {
			continue
		}
		switch strings.TrimSpace(lines[i+1]) {
		case "SECTION":
			hasSection = true
		case "EOF":
			if !hasSection {
				return errors.New("not a DXF container: no SECTION before EOF")
			}
			return nil
		}
	}

	return errors.New("not a DXF container: missing EOF marker")
}

func truncateTag(s string) string {
	const maxTag = 20
	if r := []rune(s); len(r) > maxTag {
		return string(r[:maxTag]) + "..."
	}
	return s
}

// convert retorna false para entidades do paper space.
func (r *DrawingRepositoryImpl) convert(e entities.Entity) (entity.Entity, bool) {
	switch v := e.(type) {
	case *entities.Line:
		if v.Space == entities.PAPER {
			return nil, false
		}
		return entity.LineSegment{
			Start: r.point(v.Start),
			End:   r.point(v.End),
		}, true
	case *entities.Arc:
		if v.Space == entities.PAPER {
			return nil, false
		}
		return entity.Arc{
			Center:        r.point(v.Center),
			Radius:        r.scalar("arc radius", v.Radius),
			StartAngleDeg: r.scalar("arc start angle", v.StartAngle),
			EndAngleDeg:   r.scalar("arc end angle", v.EndAngle),
		}, true
	case *entities.Circle:
		if v.Space == entities.PAPER {
			return nil, false
		}
		return entity.Circle{
			Center: r.point(v.Center),
			Radius: r.scalar("circle radius", v.Radius),
		}, true
	case *entities.LWPolyline:
		if v.Space == entities.PAPER {
			return nil, false
		}
		points := make([]entity.Point2D, 0, len(v.Points))
		for _, p := range v.Points {
			points = append(points, r.point(p.Point))
		}
		return entity.PointSequence{Points: points, SourceType: "LWPOLYLINE"}, true
	case *entities.Polyline:
		if v.Space == entities.PAPER {
			return nil, false
		}
		points := make([]entity.Point2D, 0, len(v.Vertices))
		for _, vertex := range v.Vertices {
			points = append(points, r.point(vertex.Location))
		}
		return entity.PointSequence{Points: points, SourceType: "POLYLINE"}, true
	default:
		return entity.UnsupportedEntity{DXFType: dxfTypeName(e)}, true
	}
}

// SetParserLogger redireciona o log interno do dxf-go (core.Log) para o zap, no nível debug.
func SetParserLogger(logger *zap.Logger) {
	stdLogger, err := zap.NewStdLogAt(logger.Named("dxf-go"), zap.DebugLevel)
	if err != nil {
		return
	}
	core.Log = stdLogger
}

// point descarta Z; o percurso de corte é planar.
func (r *DrawingRepositoryImpl) point(p core.Point) entity.Point2D {
	return entity.Point2D{
		X: r.scalar("x", p.X),
		Y: r.scalar("y", p.Y),
	}
}

// scalar só registra valores não finitos; o cálculo segue com o valor original.
func (r *DrawingRepositoryImpl) scalar(field string, v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		r.logger().Warn("non-finite coordinate in drawing", zap.String("field", field), zap.Float64("value", v))
	}
	return v
}

func dxfTypeName(e entities.Entity) string {
	if _, ok := e.(*entities.Spline); ok {
		return "SPLINE"
	}
	// *entities.Text -> TEXT
	name := fmt.Sprintf("%T", e)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToUpper(name)
}
