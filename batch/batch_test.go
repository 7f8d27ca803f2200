package batch

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseCollisions(t *testing.T) {
	cases := []struct {
		name    string
		output  string
		ped     int32
		car     int32
		wantErr error
	}{
		{"both", "pedestrian collision count: 3\nvehicle collision count: 12\n", 3, 12, nil},
		{"extra whitespace", "pedestrian collision count:   0\r\nvehicle collision count:\t7\r\n", 0, 7, nil},
		{"noise around", "starting\npedestrian collision count: 1\nbye\nvehicle collision count: 2\n", 1, 2, nil},
		{"pedestrian missing", "vehicle collision count: 2\n", 0, 0, ErrPedestrianCountMissing},
		{"vehicle missing", "pedestrian collision count: 2\n", 0, 0, ErrVehicleCountMissing},
		{"empty", "", 0, 0, ErrPedestrianCountMissing},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ped, car, err := ParseCollisions([]byte(c.output))
			if c.wantErr != nil {
				assert.ErrorIs(t, err, c.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.ped, ped)
			assert.Equal(t, c.car, car)
		})
	}
}

type fakeExecutor struct {
	outputs []string
	errs    []error
	calls   int
}

func (e *fakeExecutor) Execute(context.Context) ([]byte, error) {
	i := e.calls
	e.calls++
	return []byte(e.outputs[i]), e.errs[i]
}

func TestRunnerSkipsFailedRuns(t *testing.T) {
	e := &fakeExecutor{
		outputs: []string{
			"pedestrian collision count: 1\nvehicle collision count: 2\n",
			"",
			"garbage\n",
			"pedestrian collision count: 4\nvehicle collision count: 5\n",
		},
		errs: []error{nil, errors.New("exit status 1"), nil, nil},
	}
	r, err := NewRunner(e, 4)
	require.NoError(t, err)
	results, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, e.calls)
	require.Len(t, results, 2)
	assert.Equal(t, Result{BatchID: r.BatchID(), Run: 1, PedestrianCollisions: 1, VehicleCollisions: 2}, results[0])
	assert.Equal(t, Result{BatchID: r.BatchID(), Run: 4, PedestrianCollisions: 4, VehicleCollisions: 5}, results[1])
}

func TestRunnerStopsWhenCancelled(t *testing.T) {
	e := &fakeExecutor{outputs: []string{""}, errs: []error{nil}}
	r, err := NewRunner(e, 3)
	require.NoError(t, err)
	c, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := r.Run(c)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
	assert.Zero(t, e.calls)
}

func TestNewRunnerRejectsNonPositive(t *testing.T) {
	_, err := NewRunner(&fakeExecutor{}, 0)
	assert.Error(t, err)
}

func TestBatchIDsAreUnique(t *testing.T) {
	a, err := NewRunner(&fakeExecutor{}, 1)
	require.NoError(t, err)
	b, err := NewRunner(&fakeExecutor{}, 1)
	require.NoError(t, err)
	assert.NotEqual(t, a.BatchID(), b.BatchID())
}

func TestCommandExecute(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	ok := &Command{Path: "sh", Args: []string{"-c", "echo 'pedestrian collision count: 3'; echo 'vehicle collision count: 4'; echo log >&2"}}
	out, err := ok.Execute(context.Background())
	require.NoError(t, err)
	ped, car, err := ParseCollisions(out)
	require.NoError(t, err)
	assert.Equal(t, int32(3), ped)
	assert.Equal(t, int32(4), car)

	fail := &Command{Path: "sh", Args: []string{"-c", "echo boom >&2; exit 3"}}
	_, err = fail.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestXLSXSinkRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	results := []Result{
		{Run: 1, PedestrianCollisions: 2, VehicleCollisions: 3},
		{Run: 3, PedestrianCollisions: 0, VehicleCollisions: 11},
	}
	require.NoError(t, (&XLSXSink{Path: path}).Write(context.Background(), results))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"run", "collisions_ped", "collisions_car"},
		{"1", "2", "3"},
		{"3", "0", "11"},
	}, rows)
}

func TestMongoSink(t *testing.T) {
	uri := os.Getenv("CROSSING_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("CROSSING_TEST_MONGO_URI not set")
	}
	s := &MongoSink{URI: uri, DB: "crossing_test", Col: "results"}
	err := s.Write(context.Background(), []Result{{BatchID: "test", Run: 1, PedestrianCollisions: 1, VehicleCollisions: 2}})
	assert.NoError(t, err)
}
