package service

import (
	"bytes"
	"context"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	testifymock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mat-analysis/internal/export"
	"github.com/mat-analysis/internal/mock"
	"github.com/mat-analysis/internal/parser/mat4"
	"github.com/mat-analysis/internal/testutil"
	"github.com/mat-analysis/pkg/compression"
	"github.com/mat-analysis/pkg/config"
	"github.com/mat-analysis/pkg/model"
	"github.com/mat-analysis/pkg/utils"
)

var sampleNames = []string{"time", "bus.v[1]", "bus.v[2]", "motor.speed", "gain", "x"}

func sampleBytes(t *testing.T) []byte {
	t.Helper()
	data, err := mat4.Encode(testutil.SampleResultFile())
	require.NoError(t, err)
	return data
}

func writeSample(t *testing.T) string {
	t.Helper()
	return testutil.WriteFile(t, t.TempDir(), "sample.mat", sampleBytes(t))
}

func loaded(t *testing.T, opts ...Option) *Service {
	t.Helper()
	svc := New(opts...)
	result := svc.Load(context.Background(), writeSample(t))
	require.True(t, result.Success, result.Message)
	return svc
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return "load-" + string(rune('0'+n))
	}
}

func TestService_Load(t *testing.T) {
	clock := utils.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).WithStep(time.Millisecond)
	svc := New(WithClock(clock), WithIDGenerator(sequentialIDs()))
	assert.False(t, svc.Loaded())

	result := svc.Load(context.Background(), writeSample(t))

	require.True(t, result.Success, result.Message)
	assert.Equal(t, "load-1", result.LoadID)
	assert.Equal(t, 6, result.VariableCount)
	assert.Equal(t, 6, result.ResolvedCount)
	assert.Equal(t, 3, result.TimePoints)
	assert.Positive(t, result.Duration)
	assert.Equal(t, model.LoadStatusSucceeded, result.Status())

	snap := svc.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, "load-1", snap.LoadID)
	assert.Equal(t, sampleNames, snap.Names)
	assert.Equal(t, model.Series{0, 0.5, 1}, snap.Time())
}

func TestService_LoadCompressed(t *testing.T) {
	for _, ct := range []compression.Type{compression.TypeGzip, compression.TypeZstd} {
		t.Run(ct.String(), func(t *testing.T) {
			data, err := compression.Compress(sampleBytes(t), ct, compression.LevelDefault)
			require.NoError(t, err)
			path := testutil.WriteFile(t, t.TempDir(), "sample.mat"+ct.Extension(), data)

			result := New().Load(context.Background(), path)
			assert.True(t, result.Success, result.Message)
			assert.Equal(t, 6, result.VariableCount)
		})
	}
}

func TestService_LoadFailureKeepsSnapshot(t *testing.T) {
	svc := New(WithIDGenerator(sequentialIDs()))
	require.True(t, svc.Load(context.Background(), writeSample(t)).Success)

	dir := t.TempDir()
	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "absent.mat")},
		{"garbage", testutil.WriteFile(t, dir, "garbage.mat", []byte("not a result file at all"))},
		{"empty", testutil.WriteFile(t, dir, "empty.mat", nil)},
		{"unknown extension", testutil.WriteFile(t, dir, "sample.csv", sampleBytes(t))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := svc.Load(context.Background(), tt.path)
			assert.False(t, result.Success)
			assert.NotEmpty(t, result.Message)
			assert.Zero(t, result.VariableCount)
			assert.Equal(t, model.LoadStatusFailed, result.Status())

			assert.Equal(t, "load-1", svc.Snapshot().LoadID)
			assert.Equal(t, sampleNames, svc.Names())
		})
	}
}

func TestService_LoadMissingNameArray(t *testing.T) {
	raw := testutil.SampleResultFile()
	delete(raw.Arrays, model.FieldName)

	p := &mock.MockParser{}
	p.ExpectSupportedFormats([]string{"mat"})
	p.ExpectName("stub")
	p.ExpectParse(raw, nil)

	svc := New(WithParser(p))
	result := svc.LoadReader(context.Background(), "result.mat", bytes.NewReader([]byte{0}))

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "missing required field")
	assert.False(t, svc.Loaded())
	p.AssertExpectations(t)
}

func TestService_LoadParserError(t *testing.T) {
	p := &mock.MockParser{}
	p.ExpectSupportedFormats([]string{"mat"})
	p.ExpectName("stub")
	p.ExpectParse(nil, errors.New("boom"))

	svc := New(WithParser(p))
	result := svc.LoadReader(context.Background(), "result.mat", bytes.NewReader([]byte{0}))

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "boom")
}

func TestService_LoadReaderDefaultsToMat(t *testing.T) {
	svc := New()
	result := svc.LoadReader(context.Background(), "stdin", bytes.NewReader(sampleBytes(t)))
	assert.True(t, result.Success, result.Message)
	assert.Equal(t, "stdin", result.Source)
}

func TestService_LoadAsync(t *testing.T) {
	svc := New()
	ch := svc.LoadAsync(context.Background(), writeSample(t))

	result, ok := <-ch
	require.True(t, ok)
	assert.True(t, result.Success, result.Message)

	_, ok = <-ch
	assert.False(t, ok, "channel must be closed after the single outcome")
	assert.True(t, svc.Loaded())
}

func TestService_LoadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := New()
	result := svc.Load(ctx, writeSample(t))
	assert.False(t, result.Success)
	assert.False(t, svc.Loaded())
}

func TestService_LoadFromStorage(t *testing.T) {
	st := &mock.MockStorage{}
	st.ExpectDownload("runs/sample.mat", sampleBytes(t), nil)
	st.ExpectDownload("runs/absent.mat", nil, errors.New("not found"))

	svc := New(WithStorage(st))
	assert.True(t, svc.HasStorage())

	result := svc.LoadFromStorage(context.Background(), "runs/sample.mat")
	assert.True(t, result.Success, result.Message)
	assert.Equal(t, "runs/sample.mat", result.Source)

	result = svc.LoadFromStorage(context.Background(), "runs/absent.mat")
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "not found")
	assert.Equal(t, "runs/sample.mat", svc.Snapshot().Source)

	st.AssertExpectations(t)
}

func TestService_LoadFromStorageWithoutStorage(t *testing.T) {
	result := New().LoadFromStorage(context.Background(), "runs/sample.mat")
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "storage is not configured")
}

func TestService_History(t *testing.T) {
	repo := &mock.MockHistoryRepository{}
	repo.ExpectSaveLoad(nil).Twice()

	svc := New(WithHistory(repo))
	require.True(t, svc.Load(context.Background(), writeSample(t)).Success)
	require.False(t, svc.Load(context.Background(), filepath.Join(t.TempDir(), "absent.mat")).Success)
	repo.AssertNumberOfCalls(t, "SaveLoad", 2)

	first := repo.Calls[0].Arguments.Get(1).(*model.LoadRecord)
	assert.Equal(t, model.LoadStatusSucceeded, first.Status)
	assert.Equal(t, 6, first.VariableCount)
	second := repo.Calls[1].Arguments.Get(1).(*model.LoadRecord)
	assert.Equal(t, model.LoadStatusFailed, second.Status)

	records := []*model.LoadRecord{first, second}
	repo.ExpectListLoads(20, records, nil)
	got, err := svc.History(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestService_HistorySaveFailureDoesNotFailLoad(t *testing.T) {
	repo := &mock.MockHistoryRepository{}
	repo.ExpectSaveLoad(errors.New("db down"))

	svc := New(WithHistory(repo))
	result := svc.Load(context.Background(), writeSample(t))
	assert.True(t, result.Success)
	assert.True(t, svc.Loaded())
}

func TestService_HistoryDisabled(t *testing.T) {
	_, err := New().History(context.Background(), 10)
	assert.Error(t, err)
}

func TestService_NewFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Database.Enabled = true
	cfg.Database.Type = "sqlite"
	cfg.Database.Path = filepath.Join(t.TempDir(), "history.db")

	svc, err := NewFromConfig(cfg, utils.NewDefaultLogger(utils.LevelError, nil))
	require.NoError(t, err)
	defer svc.Close()

	require.True(t, svc.Load(context.Background(), writeSample(t)).Success)

	records, err := svc.History(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.LoadStatusSucceeded, records[0].Status)
	assert.Equal(t, 3, records[0].TimePoints)
}

func TestService_NewFromConfigBadDatabase(t *testing.T) {
	cfg := config.Default()
	cfg.Database.Enabled = true
	cfg.Database.Type = "oracle"

	_, err := NewFromConfig(cfg, nil)
	assert.Error(t, err)
}

func TestService_QueriesBeforeLoad(t *testing.T) {
	svc := New()

	_, ok := svc.Info()
	assert.False(t, ok)
	assert.Empty(t, svc.SearchVariables("v"))
	assert.Empty(t, svc.Names())

	categories := svc.ListCategories()
	assert.Len(t, categories, len(model.AllCategories))
	for _, names := range categories {
		assert.Empty(t, names)
	}

	series, axis := svc.ReadVariables([]string{"a", "a - b"})
	assert.Equal(t, []model.Series{{}, {}}, series)
	assert.Empty(t, axis)

	_, ok = svc.VariableStats("a")
	assert.False(t, ok)

	_, err := svc.Export(context.Background(), []string{"a"}, &bytes.Buffer{}, export.Options{})
	assert.Error(t, err)
}

func TestService_Info(t *testing.T) {
	svc := loaded(t)
	info, ok := svc.Info()
	require.True(t, ok)

	assert.Equal(t, 6, info.VariableCount)
	assert.Equal(t, 6, info.ResolvedCount)
	assert.Equal(t, 3, info.TimePoints)
	assert.Equal(t, 0.0, info.StartTime)
	assert.Equal(t, 1.0, info.StopTime)
	assert.Equal(t, 2, info.CategoryCounts[model.CategoryElectrical])
	assert.Equal(t, 1, info.CategoryCounts[model.CategoryTime])
}

func TestService_ListCategories(t *testing.T) {
	svc := loaded(t)
	categories := svc.ListCategories()

	assert.Equal(t, []string{"time"}, categories[model.CategoryTime])
	assert.Equal(t, []string{"bus.v[1]", "bus.v[2]"}, categories[model.CategoryElectrical])
	assert.Equal(t, []string{"motor.speed"}, categories[model.CategoryMechanical])
	assert.Equal(t, []string{"gain", "x"}, categories[model.CategoryOther])

	categories[model.CategoryTime][0] = "mutated"
	assert.Equal(t, []string{"time"}, svc.ListCategories()[model.CategoryTime])
}

func TestService_Search(t *testing.T) {
	svc := loaded(t)

	assert.Equal(t, []string{"bus.v[1]", "bus.v[2]"}, svc.SearchVariables("BUS"))
	assert.Equal(t, sampleNames, svc.SearchVariables(""))
	assert.Empty(t, svc.SearchVariables("volt"))

	fuzzy := svc.FuzzySearchVariables("mspd")
	assert.Equal(t, []string{"motor.speed"}, fuzzy)
	assert.Equal(t, "motor.speed", svc.Suggest("motor.sped"))
}

func TestService_ReadVariables(t *testing.T) {
	svc := loaded(t)

	keys := []string{"x", "bus.v[1] - bus.v[2]", "bus.v[1]+bus.v[2]", "missing", "gain - x", "bus.v[1]"}
	series, axis := svc.ReadVariables(keys)

	require.Len(t, series, len(keys))
	assert.Equal(t, model.Series{2, 4, 4}, series[0])
	assert.Equal(t, model.Series{4, 5, 6}, series[1])
	assert.Empty(t, series[2])
	assert.Empty(t, series[3])
	assert.Empty(t, series[4], "operands of different length")
	assert.Equal(t, model.Series{5, 7, 9}, series[5])
	assert.Equal(t, model.Series{0, 0.5, 1}, axis)

	series[0][0] = 100
	again, _ := svc.ReadVariables([]string{"x"})
	assert.Equal(t, model.Series{2, 4, 4}, again[0])
}

func TestService_VariableStats(t *testing.T) {
	svc := loaded(t)

	stats, ok := svc.VariableStats("bus.v[1]")
	require.True(t, ok)
	assert.Equal(t, 5.0, stats.Min)
	assert.Equal(t, 9.0, stats.Max)
	assert.Equal(t, 7.0, stats.Mean)
	assert.InDelta(t, math.Sqrt(8.0/3.0), stats.Std, 1e-12)
	assert.Equal(t, 3, stats.Count)

	_, ok = svc.VariableStats("missing")
	assert.False(t, ok)
	_, ok = svc.VariableStats("bus.v[1] - bus.v[2]")
	assert.False(t, ok)
}

func TestService_Summary(t *testing.T) {
	svc := loaded(t, WithWorkers(2))

	all := svc.Summary(context.Background(), nil)
	require.Len(t, all, len(sampleNames))
	for i, entry := range all {
		assert.Equal(t, sampleNames[i], entry.Name)
		assert.True(t, entry.Available)
	}

	some := svc.Summary(context.Background(), []string{"missing", "gain"})
	require.Len(t, some, 2)
	assert.False(t, some[0].Available)
	assert.True(t, some[1].Available)
	assert.Equal(t, 2, some[1].Stats.Count)
}

func TestService_ExportColumns(t *testing.T) {
	svc := loaded(t)

	table := svc.ExportColumns([]string{"bus.v[1]", "gain", "missing", "bus.v[1] - bus.v[2]"})
	assert.Equal(t, []string{"bus.v[1]", "bus.v[1] - bus.v[2]"}, table.Names)
	assert.Equal(t, []string{"gain", "missing"}, table.Omitted)
	assert.Equal(t, 3, table.Rows())
}

func TestService_Export(t *testing.T) {
	svc := loaded(t)

	var buf bytes.Buffer
	table, err := svc.Export(context.Background(), []string{"x", "gain"}, &buf, export.Options{Format: export.FormatCSV})
	require.NoError(t, err)
	assert.Equal(t, []string{"gain"}, table.Omitted)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "time,x", lines[0])
	assert.Equal(t, "0.5,4", lines[2])

	_, err = svc.Export(context.Background(), []string{"x"}, &buf, export.Options{Format: "mat"})
	assert.Error(t, err)
}

func TestService_ExportToStorage(t *testing.T) {
	st := &mock.MockStorage{}
	st.ExpectUpload("exports/run.csv.gz", nil)
	st.On("GetURL", "exports/run.csv.gz").Return("https://bucket/exports/run.csv.gz")

	svc := loaded(t, WithStorage(st))
	table, url, err := svc.ExportToStorage(context.Background(), "exports/run.csv.gz",
		[]string{"bus.v[2]"}, export.Options{Compression: "gzip"})
	require.NoError(t, err)
	assert.Equal(t, []string{"bus.v[2]"}, table.Names)
	assert.Equal(t, "https://bucket/exports/run.csv.gz", url)

	uploaded := st.Calls[0].Arguments.Get(2).(*bytes.Buffer)
	plain, err := compression.AutoDecompress(uploaded.Bytes())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(plain), "time,bus.v[2]\n"))
	st.AssertExpectations(t)
}

func TestService_ExportToStorageWithoutStorage(t *testing.T) {
	svc := loaded(t)
	_, _, err := svc.ExportToStorage(context.Background(), "k", []string{"x"}, export.Options{})
	assert.Error(t, err)
}

func TestService_ConcurrentReadsDuringLoads(t *testing.T) {
	svc := loaded(t)
	path := writeSample(t)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				series, axis := svc.ReadVariables([]string{"bus.v[1]"})
				assert.Equal(t, len(axis), len(series[0]))
				assert.Len(t, svc.ListCategories(), len(model.AllCategories))
			}
		}()
	}
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, svc.Load(context.Background(), path).Success)
		}()
	}
	wg.Wait()
}

func TestService_Fetch(t *testing.T) {
	st := &mock.MockStorage{}
	st.On("DownloadFile", testifymock.Anything, "runs/a.mat", "/tmp/a.mat").Return(nil)
	st.On("DownloadFile", testifymock.Anything, "runs/b.mat", "/tmp/b.mat").Return(errors.New("denied"))

	svc := New(WithStorage(st))
	assert.NoError(t, svc.Fetch(context.Background(), "runs/a.mat", "/tmp/a.mat"))
	assert.Error(t, svc.Fetch(context.Background(), "runs/b.mat", "/tmp/b.mat"))
	st.AssertExpectations(t)

	assert.Error(t, New().Fetch(context.Background(), "runs/a.mat", "/tmp/a.mat"))
}
