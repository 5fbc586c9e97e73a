// Package batch encodes many coordinates at once on a bounded worker pool.
package batch

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/ssargent/mapcode/pkg/mapcode"
	"github.com/ssargent/mapcode/pkg/storage"
	"github.com/ssargent/mapcode/pkg/territory"
)

// DefaultWorkers is used when a worker count below one is given.
const DefaultWorkers = 4

// ErrNoMapcode is reported for points no territory can encode.
var ErrNoMapcode = errors.New("no mapcode for point")

// Request describes one batch encode.
type Request struct {
	Points []storage.Point
	// Territory restricts the codes to one territory when set.
	Territory string
	Precision int
	// Shortest keeps only the first code of each point.
	Shortest bool
}

// Encode encodes every point of req with at most workers goroutines. The
// results are in point order; a point that fails carries its error in its
// result. The returned error is either a territory that does not resolve
// or the cancellation of ctx.
func Encode(ctx context.Context, e *mapcode.Engine, req Request, workers int) ([]storage.ItemResult, error) {
	t := territory.None
	if req.Territory != "" {
		var err error
		if t, err = e.ResolveTerritory(req.Territory, territory.None); err != nil {
			return nil, err
		}
	}
	if workers < 1 {
		workers = DefaultWorkers
	}

	results := make([]storage.ItemResult, len(req.Points))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range req.Points {
		if gctx.Err() != nil {
			break
		}
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = encodePoint(e, i, p, t, req)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func encodePoint(e *mapcode.Engine, i int, p storage.Point, t territory.ID, req Request) storage.ItemResult {
	res := storage.ItemResult{Index: i}
	if req.Shortest {
		r, ok, err := e.EncodeShortest(p.Lat, p.Lon, t, req.Precision)
		switch {
		case err != nil:
			res.Error = err.Error()
		case !ok:
			res.Error = ErrNoMapcode.Error()
		default:
			res.Codes = []string{r.String()}
		}
		return res
	}
	codes, err := e.EncodeAll(p.Lat, p.Lon, t, req.Precision)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	if len(codes) == 0 {
		res.Error = ErrNoMapcode.Error()
		return res
	}
	for _, r := range codes {
		res.Codes = append(res.Codes, r.String())
	}
	return res
}

// ReadPoints reads one "lat lon" or "lat,lon" pair per line. Blank lines
// and lines starting with # are skipped.
func ReadPoints(r io.Reader) ([]storage.Point, error) {
	var points []storage.Point
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		fields := strings.FieldsFunc(s, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == ';'
		})
		if len(fields) != 2 {
			return nil, errors.Errorf("line %d: want \"lat lon\", got %q", line, s)
		}
		lat, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: latitude", line)
		}
		lon, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: longitude", line)
		}
		points = append(points, storage.Point{Lat: lat, Lon: lon})
	}
	return points, errors.Wrap(sc.Err(), "read points")
}
