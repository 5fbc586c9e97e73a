package batch

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/mapcode/pkg/dataset"
	"github.com/ssargent/mapcode/pkg/mapcode"
	"github.com/ssargent/mapcode/pkg/storage"
	"github.com/ssargent/mapcode/pkg/territory"
)

var amsterdam = storage.Point{Lat: 52.376514, Lon: 4.908543}

func testEngine(t *testing.T) *mapcode.Engine {
	t.Helper()
	tbl, err := dataset.Load("../dataset/testdata/world.yaml")
	require.NoError(t, err)
	return mapcode.NewEngine(tbl)
}

func TestEncode(t *testing.T) {
	e := testEngine(t)
	ctx := context.Background()

	t.Run("shortest", func(t *testing.T) {
		res, err := Encode(ctx, e, Request{Points: []storage.Point{amsterdam}, Shortest: true}, 2)
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, []string{"NLD JD.LZM"}, res[0].Codes)
		assert.Empty(t, res[0].Error)
	})

	t.Run("all codes", func(t *testing.T) {
		res, err := Encode(ctx, e, Request{Points: []storage.Point{amsterdam}}, 2)
		require.NoError(t, err)
		require.Len(t, res, 1)
		codes := res[0].Codes
		require.GreaterOrEqual(t, len(codes), 2)
		assert.Equal(t, "NLD JD.LZM", codes[0])
		assert.NotContains(t, codes[len(codes)-1], " ", "last code is international")
	})

	t.Run("territory restriction", func(t *testing.T) {
		res, err := Encode(ctx, e, Request{Points: []storage.Point{amsterdam}, Territory: "LUX"}, 1)
		require.NoError(t, err)
		assert.Empty(t, res[0].Codes)
		assert.Equal(t, ErrNoMapcode.Error(), res[0].Error)
	})

	t.Run("unknown territory", func(t *testing.T) {
		_, err := Encode(ctx, e, Request{Points: []storage.Point{amsterdam}, Territory: "XYZ"}, 1)
		assert.ErrorIs(t, err, territory.ErrUnknownTerritory)
	})

	t.Run("bad point", func(t *testing.T) {
		res, err := Encode(ctx, e, Request{Points: []storage.Point{{Lat: math.NaN()}, amsterdam}, Shortest: true}, 0)
		require.NoError(t, err)
		assert.NotEmpty(t, res[0].Error)
		assert.Equal(t, 1, res[1].Index)
		assert.Equal(t, []string{"NLD JD.LZM"}, res[1].Codes)
	})

	t.Run("cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := Encode(cctx, e, Request{Points: []storage.Point{amsterdam}}, 1)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestEncodeKeepsOrder(t *testing.T) {
	e := mapcode.NewEngine(mustWorld(t))
	points := make([]storage.Point, 200)
	for i := range points {
		points[i] = storage.Point{Lat: -80 + float64(i)*0.8, Lon: -179 + float64(i)*1.7}
	}

	parallel, err := Encode(context.Background(), e, Request{Points: points, Shortest: true, Precision: 2}, 8)
	require.NoError(t, err)
	serial, err := Encode(context.Background(), e, Request{Points: points, Shortest: true, Precision: 2}, 1)
	require.NoError(t, err)

	require.Len(t, parallel, len(points))
	assert.Equal(t, serial, parallel)
	for i, r := range parallel {
		assert.Equal(t, i, r.Index)
		assert.Len(t, r.Codes, 1)
	}
}

func mustWorld(t *testing.T) *territory.Table {
	t.Helper()
	tbl, err := dataset.World().Table()
	require.NoError(t, err)
	return tbl
}

func TestReadPoints(t *testing.T) {
	in := `# lat lon
52.376514 4.908543

-33.8688,151.2093
0;0
	10	20
`
	points, err := ReadPoints(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []storage.Point{
		{Lat: 52.376514, Lon: 4.908543},
		{Lat: -33.8688, Lon: 151.2093},
		{Lat: 0, Lon: 0},
		{Lat: 10, Lon: 20},
	}, points)
}

func TestReadPointsErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"one field", "52.3\n", "line 1"},
		{"three fields", "1 2\n1 2 3\n", "line 2"},
		{"bad latitude", "north 4\n", "latitude"},
		{"bad longitude", "1 east\n", "longitude"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadPoints(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
