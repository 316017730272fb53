package usecase_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/subway-admin/internal/domain"
	"github.com/subway-admin/internal/pkg/errors"
	"github.com/subway-admin/internal/usecase"
	"github.com/subway-admin/internal/usecase/dto"
)

func ptr(v int64) *int64 { return &v }

// newLine builds a line whose stations follow each other in the given order.
func newLine(id int64, name string, stationIDs ...int64) *domain.Line {
	line := &domain.Line{
		ID:           id,
		Name:         name,
		StartTime:    "05:30",
		EndTime:      "23:30",
		IntervalTime: 10,
		BgColor:      "bg-green-500",
	}
	var pre *int64
	for _, sid := range stationIDs {
		line.AddLineStation(domain.NewLineStation(pre, sid, 10, 3))
		pre = ptr(sid)
	}
	return line
}

func station(id int64, name string) *domain.Station {
	return &domain.Station{ID: id, Name: name}
}

func stationIDsOf(detail dto.LineDetailResponse) []int64 {
	ids := make([]int64, 0, len(detail.Stations))
	for _, s := range detail.Stations {
		ids = append(ids, s.Station.ID)
	}
	return ids
}

type lineFixture struct {
	lineRepo    *MockLineRepository
	stationRepo *MockStationRepository
	uc          *usecase.LineUseCase
	ctx         context.Context
}

func newLineFixture() *lineFixture {
	lineRepo := &MockLineRepository{}
	stationRepo := &MockStationRepository{}
	return &lineFixture{
		lineRepo:    lineRepo,
		stationRepo: stationRepo,
		uc:          usecase.NewLineUseCase(lineRepo, stationRepo, nil, zap.NewNop(), 0),
		ctx:         context.Background(),
	}
}

func TestLineUseCase_Save(t *testing.T) {
	t.Run("returns persisted line with id", func(t *testing.T) {
		f := newLineFixture()
		line := newLine(0, "Line 2")
		persisted := newLine(1, "Line 2")
		f.lineRepo.On("Save", f.ctx, line).Return(persisted, nil)

		saved, err := f.uc.Save(f.ctx, line)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), saved.ID)
		f.lineRepo.AssertExpectations(t)
	})

	t.Run("storage error propagates", func(t *testing.T) {
		f := newLineFixture()
		line := newLine(0, "Line 2")
		f.lineRepo.On("Save", f.ctx, line).Return(nil, errors.ErrDatabaseError)

		saved, err := f.uc.Save(f.ctx, line)

		assert.ErrorIs(t, err, errors.ErrDatabaseError)
		assert.Nil(t, saved)
	})
}

func TestLineUseCase_ShowLines(t *testing.T) {
	f := newLineFixture()
	lines := []*domain.Line{newLine(1, "Line 2"), newLine(2, "Line 3")}
	f.lineRepo.On("FindAll", f.ctx).Return(lines, nil)

	result, err := f.uc.ShowLines(f.ctx)

	assert.NoError(t, err)
	assert.Equal(t, lines, result)
}

func TestLineUseCase_UpdateLine(t *testing.T) {
	t.Run("overwrites fields and keeps identity", func(t *testing.T) {
		f := newLineFixture()
		line := newLine(1, "Line 2", 1, 2)
		f.lineRepo.On("FindByID", f.ctx, int64(1)).Return(line, nil)
		f.lineRepo.On("Save", f.ctx, line).Return(line, nil)

		err := f.uc.UpdateLine(f.ctx, 1, dto.LineRequest{
			Name:         "Line 3",
			StartTime:    "06:00",
			EndTime:      "23:00",
			IntervalTime: 7,
			BgColor:      "bg-orange-500",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), line.ID)
		assert.Equal(t, "Line 3", line.Name)
		assert.Equal(t, "06:00", line.StartTime)
		assert.Equal(t, 7, line.IntervalTime)
		assert.Equal(t, "bg-orange-500", line.BgColor)
		assert.Equal(t, []int64{1, 2}, line.LineStationsID())
		f.lineRepo.AssertExpectations(t)
	})

	t.Run("unknown id is NotFound and creates nothing", func(t *testing.T) {
		f := newLineFixture()
		f.lineRepo.On("FindByID", f.ctx, int64(99)).Return(nil, nil)

		err := f.uc.UpdateLine(f.ctx, 99, dto.LineRequest{Name: "Line 9"})

		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
		assert.Contains(t, err.Error(), "99")
		f.lineRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("lookup error propagates unchanged", func(t *testing.T) {
		f := newLineFixture()
		f.lineRepo.On("FindByID", f.ctx, int64(1)).Return(nil, errors.ErrDatabaseError)

		err := f.uc.UpdateLine(f.ctx, 1, dto.LineRequest{Name: "Line 9"})

		assert.Same(t, errors.ErrDatabaseError, err)
		f.lineRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestLineUseCase_DeleteLineByID(t *testing.T) {
	f := newLineFixture()
	f.lineRepo.On("DeleteByID", f.ctx, int64(99)).Return(nil)

	err := f.uc.DeleteLineByID(f.ctx, 99)

	assert.NoError(t, err)
	f.lineRepo.AssertExpectations(t)
}

func TestLineUseCase_AddLineStation(t *testing.T) {
	t.Run("first station then detail", func(t *testing.T) {
		f := newLineFixture()
		line := newLine(1, "Line 2")
		f.lineRepo.On("FindByID", f.ctx, int64(1)).Return(line, nil)
		f.lineRepo.On("Save", f.ctx, line).Return(line, nil)
		f.stationRepo.On("FindAllByID", f.ctx, []int64{5}).Return([]*domain.Station{station(5, "Gangnam")}, nil)

		err := f.uc.AddLineStation(f.ctx, 1, dto.LineStationCreateRequest{
			PreStationID: nil,
			StationID:    5,
			Distance:     10,
			Duration:     3,
		})
		require.NoError(t, err)

		detail, err := f.uc.FindLineWithStationsByID(f.ctx, 1)
		require.NoError(t, err)
		require.Len(t, detail.Stations, 1)
		assert.Equal(t, int64(5), detail.Stations[0].Station.ID)
		assert.Equal(t, 10, detail.Stations[0].Distance)
		assert.Equal(t, 3, detail.Stations[0].Duration)
		f.lineRepo.AssertNumberOfCalls(t, "Save", 1)
	})

	t.Run("inserts at position of preceding station", func(t *testing.T) {
		f := newLineFixture()
		line := newLine(1, "Line 2", 1, 2, 3)
		f.lineRepo.On("FindByID", f.ctx, int64(1)).Return(line, nil)
		f.lineRepo.On("Save", f.ctx, line).Return(line, nil)

		err := f.uc.AddLineStation(f.ctx, 1, dto.LineStationCreateRequest{
			PreStationID: ptr(1),
			StationID:    7,
			Distance:     4,
			Duration:     2,
		})

		require.NoError(t, err)
		assert.Equal(t, []int64{1, 7, 2, 3}, line.LineStationsID())
	})

	t.Run("unknown line is NotFound", func(t *testing.T) {
		f := newLineFixture()
		f.lineRepo.On("FindByID", f.ctx, int64(42)).Return(nil, nil)

		err := f.uc.AddLineStation(f.ctx, 42, dto.LineStationCreateRequest{StationID: 5})

		assert.True(t, errors.IsNotFound(err))
		f.lineRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestLineUseCase_RemoveLineStation(t *testing.T) {
	t.Run("removes and relinks chain", func(t *testing.T) {
		f := newLineFixture()
		line := newLine(1, "Line 2", 1, 2, 3)
		f.lineRepo.On("FindByID", f.ctx, int64(1)).Return(line, nil)
		f.lineRepo.On("Save", f.ctx, line).Return(line, nil)
		f.stationRepo.On("FindAllByID", f.ctx, []int64{1, 3}).
			Return([]*domain.Station{station(1, "Gangnam"), station(3, "Seolleung")}, nil)

		require.NoError(t, f.uc.RemoveLineStation(f.ctx, 1, 2))

		for _, ls := range line.Stations {
			assert.False(t, ls.Follows(2))
		}

		detail, err := f.uc.FindLineWithStationsByID(f.ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 3}, stationIDsOf(*detail))
	})

	t.Run("unknown line is NotFound", func(t *testing.T) {
		f := newLineFixture()
		f.lineRepo.On("FindByID", f.ctx, int64(42)).Return(nil, nil)

		err := f.uc.RemoveLineStation(f.ctx, 42, 2)

		assert.True(t, errors.IsNotFound(err))
		f.lineRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestLineUseCase_FindLineWithStationsByID(t *testing.T) {
	t.Run("stations follow path order", func(t *testing.T) {
		f := newLineFixture()
		line := newLine(1, "Line 2", 3, 1, 2)
		f.lineRepo.On("FindByID", f.ctx, int64(1)).Return(line, nil)
		// Repository returns stations in id order
		f.stationRepo.On("FindAllByID", f.ctx, []int64{3, 1, 2}).Return([]*domain.Station{
			station(1, "Gangnam"), station(2, "Yeoksam"), station(3, "Seolleung"),
		}, nil)

		detail, err := f.uc.FindLineWithStationsByID(f.ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, "Line 2", detail.Name)
		assert.Equal(t, []int64{3, 1, 2}, stationIDsOf(*detail))
	})

	t.Run("unknown line is NotFound", func(t *testing.T) {
		f := newLineFixture()
		f.lineRepo.On("FindByID", f.ctx, int64(42)).Return(nil, nil)

		detail, err := f.uc.FindLineWithStationsByID(f.ctx, 42)

		assert.Nil(t, detail)
		assert.True(t, errors.IsNotFound(err))
		f.stationRepo.AssertNotCalled(t, "FindAllByID", mock.Anything, mock.Anything)
	})
}

func TestLineUseCase_WholeLines(t *testing.T) {
	t.Run("one bulk fetch, one view per line", func(t *testing.T) {
		f := newLineFixture()
		lines := []*domain.Line{
			newLine(1, "Line 2", 1, 2),
			newLine(2, "Line 3", 2, 3),
		}
		f.lineRepo.On("FindAll", f.ctx).Return(lines, nil)
		f.stationRepo.On("FindAllByID", f.ctx, []int64{1, 2, 2, 3}).Return([]*domain.Station{
			station(1, "Gangnam"), station(2, "Yeoksam"), station(3, "Seolleung"),
		}, nil).Once()

		resp, err := f.uc.WholeLines(f.ctx)

		require.NoError(t, err)
		require.Len(t, resp.LineDetailResponses, 2)
		assert.Equal(t, []int64{1, 2}, stationIDsOf(resp.LineDetailResponses[0]))
		assert.Equal(t, []int64{2, 3}, stationIDsOf(resp.LineDetailResponses[1]))
		f.stationRepo.AssertNumberOfCalls(t, "FindAllByID", 1)
	})

	t.Run("stations missing from storage are skipped", func(t *testing.T) {
		f := newLineFixture()
		f.lineRepo.On("FindAll", f.ctx).Return([]*domain.Line{newLine(1, "Line 2", 1, 2)}, nil)
		f.stationRepo.On("FindAllByID", f.ctx, []int64{1, 2}).Return([]*domain.Station{station(2, "Yeoksam")}, nil)

		resp, err := f.uc.WholeLines(f.ctx)

		require.NoError(t, err)
		assert.Equal(t, []int64{2}, stationIDsOf(resp.LineDetailResponses[0]))
	})

	t.Run("no lines", func(t *testing.T) {
		f := newLineFixture()
		f.lineRepo.On("FindAll", f.ctx).Return([]*domain.Line{}, nil)
		f.stationRepo.On("FindAllByID", f.ctx, mock.Anything).Return([]*domain.Station{}, nil)

		resp, err := f.uc.WholeLines(f.ctx)

		require.NoError(t, err)
		assert.Empty(t, resp.LineDetailResponses)
	})

	t.Run("line lookup error propagates", func(t *testing.T) {
		f := newLineFixture()
		f.lineRepo.On("FindAll", f.ctx).Return(nil, errors.ErrDatabaseError)

		resp, err := f.uc.WholeLines(f.ctx)

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, errors.ErrDatabaseError)
	})
}

func TestLineUseCase_FindStationWithName(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newLineFixture()
		f.stationRepo.On("FindByName", f.ctx, "Gangnam").Return(station(1, "Gangnam"), nil)

		s, err := f.uc.FindStationWithName(f.ctx, "Gangnam")

		require.NoError(t, err)
		assert.Equal(t, int64(1), s.ID)
	})

	t.Run("no match is NotFound naming the station", func(t *testing.T) {
		f := newLineFixture()
		f.stationRepo.On("FindByName", f.ctx, "gangnam").Return(nil, nil)

		s, err := f.uc.FindStationWithName(f.ctx, "gangnam")

		assert.Nil(t, s)
		require.True(t, errors.IsNotFound(err))
		assert.Contains(t, err.Error(), `"gangnam"`)
	})
}

func TestLineUseCase_FindAllStations(t *testing.T) {
	f := newLineFixture()
	stations := []*domain.Station{station(1, "Gangnam"), station(2, "Yeoksam")}
	f.stationRepo.On("FindAll", f.ctx).Return(stations, nil)

	result, err := f.uc.FindAllStations(f.ctx)

	assert.NoError(t, err)
	assert.Equal(t, stations, result)
}

func TestLineUseCase_WholeLinesCache(t *testing.T) {
	ctx := context.Background()
	ttl := time.Minute

	t.Run("hit skips repositories", func(t *testing.T) {
		lineRepo, stationRepo, cacheRepo := &MockLineRepository{}, &MockStationRepository{}, &MockCacheRepository{}
		uc := usecase.NewLineUseCase(lineRepo, stationRepo, cacheRepo, zap.NewNop(), ttl)

		cached := dto.WholeSubwayResponse{LineDetailResponses: []dto.LineDetailResponse{
			{LineResponse: dto.LineResponse{ID: 1, Name: "Line 2"}},
		}}
		data, err := json.Marshal(cached)
		require.NoError(t, err)
		cacheRepo.On("Get", ctx, "network:gen").Return([]byte("3"), nil)
		cacheRepo.On("Get", ctx, "network:3").Return(data, nil)

		resp, err := uc.WholeLines(ctx)

		require.NoError(t, err)
		assert.Equal(t, "Line 2", resp.LineDetailResponses[0].Name)
		lineRepo.AssertNotCalled(t, "FindAll", mock.Anything)
	})

	t.Run("miss computes and stores under current generation", func(t *testing.T) {
		lineRepo, stationRepo, cacheRepo := &MockLineRepository{}, &MockStationRepository{}, &MockCacheRepository{}
		uc := usecase.NewLineUseCase(lineRepo, stationRepo, cacheRepo, zap.NewNop(), ttl)

		cacheRepo.On("Get", ctx, "network:gen").Return(nil, nil)
		cacheRepo.On("Get", ctx, "network:0").Return(nil, nil)
		cacheRepo.On("Set", ctx, "network:0", mock.Anything, ttl).Return(nil)
		lineRepo.On("FindAll", ctx).Return([]*domain.Line{newLine(1, "Line 2", 1)}, nil)
		stationRepo.On("FindAllByID", ctx, []int64{1}).Return([]*domain.Station{station(1, "Gangnam")}, nil)

		resp, err := uc.WholeLines(ctx)

		require.NoError(t, err)
		assert.Len(t, resp.LineDetailResponses, 1)
		cacheRepo.AssertExpectations(t)
	})

	t.Run("unreadable generation bypasses cache", func(t *testing.T) {
		lineRepo, stationRepo, cacheRepo := &MockLineRepository{}, &MockStationRepository{}, &MockCacheRepository{}
		uc := usecase.NewLineUseCase(lineRepo, stationRepo, cacheRepo, zap.NewNop(), ttl)

		cacheRepo.On("Get", ctx, "network:gen").Return(nil, stderrors.New("connection refused"))
		lineRepo.On("FindAll", ctx).Return([]*domain.Line{}, nil)
		stationRepo.On("FindAllByID", ctx, mock.Anything).Return([]*domain.Station{}, nil)

		resp, err := uc.WholeLines(ctx)

		require.NoError(t, err)
		assert.NotNil(t, resp)
		cacheRepo.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache write failure does not fail the request", func(t *testing.T) {
		lineRepo, stationRepo, cacheRepo := &MockLineRepository{}, &MockStationRepository{}, &MockCacheRepository{}
		uc := usecase.NewLineUseCase(lineRepo, stationRepo, cacheRepo, zap.NewNop(), ttl)

		cacheRepo.On("Get", ctx, "network:gen").Return([]byte("1"), nil)
		cacheRepo.On("Get", ctx, "network:1").Return(nil, stderrors.New("connection refused"))
		cacheRepo.On("Set", ctx, "network:1", mock.Anything, ttl).Return(stderrors.New("connection refused"))
		lineRepo.On("FindAll", ctx).Return([]*domain.Line{}, nil)
		stationRepo.On("FindAllByID", ctx, mock.Anything).Return([]*domain.Station{}, nil)

		resp, err := uc.WholeLines(ctx)

		require.NoError(t, err)
		assert.NotNil(t, resp)
	})

	t.Run("mutations start a new generation", func(t *testing.T) {
		lineRepo, stationRepo, cacheRepo := &MockLineRepository{}, &MockStationRepository{}, &MockCacheRepository{}
		uc := usecase.NewLineUseCase(lineRepo, stationRepo, cacheRepo, zap.NewNop(), ttl)

		line := newLine(1, "Line 2", 1)
		lineRepo.On("FindByID", ctx, int64(1)).Return(line, nil)
		lineRepo.On("Save", ctx, line).Return(line, nil)
		lineRepo.On("DeleteByID", ctx, int64(1)).Return(nil)
		cacheRepo.On("Incr", ctx, "network:gen").Return(int64(5), nil)
		cacheRepo.On("Delete", ctx, "network:4").Return(nil)

		require.NoError(t, uc.AddLineStation(ctx, 1, dto.LineStationCreateRequest{PreStationID: ptr(1), StationID: 2}))
		require.NoError(t, uc.RemoveLineStation(ctx, 1, 2))
		require.NoError(t, uc.UpdateLine(ctx, 1, dto.LineRequest{Name: "Line 3"}))
		require.NoError(t, uc.DeleteLineByID(ctx, 1))

		cacheRepo.AssertNumberOfCalls(t, "Incr", 4)
		cacheRepo.AssertNumberOfCalls(t, "Delete", 4)
	})

	t.Run("failed lookup leaves cache alone", func(t *testing.T) {
		lineRepo, stationRepo, cacheRepo := &MockLineRepository{}, &MockStationRepository{}, &MockCacheRepository{}
		uc := usecase.NewLineUseCase(lineRepo, stationRepo, cacheRepo, zap.NewNop(), ttl)

		lineRepo.On("FindByID", ctx, int64(99)).Return(nil, nil)

		err := uc.UpdateLine(ctx, 99, dto.LineRequest{Name: "Line 3"})

		assert.True(t, errors.IsNotFound(err))
		cacheRepo.AssertNotCalled(t, "Incr", mock.Anything, mock.Anything)
	})

	t.Run("view computed across a mutation is not served after it", func(t *testing.T) {
		lineRepo, stationRepo, memory := &MockLineRepository{}, &MockStationRepository{}, newMemoryCache()
		uc := usecase.NewLineUseCase(lineRepo, stationRepo, memory, zap.NewNop(), ttl)

		stored := newLine(1, "Line 2", 1)
		beforeAdd := newLine(1, "Line 2", 1)
		lineRepo.On("FindByID", ctx, int64(1)).Return(stored, nil)
		lineRepo.On("Save", ctx, stored).Return(stored, nil)
		stationRepo.On("FindAllByID", ctx, mock.Anything).
			Return([]*domain.Station{station(1, "Gangnam"), station(2, "Yeoksam")}, nil)

		// The first read sees the line as it was, while the add commits before the read finishes.
		lineRepo.On("FindAll", ctx).Run(func(mock.Arguments) {
			req := dto.LineStationCreateRequest{PreStationID: ptr(1), StationID: 2, Distance: 10, Duration: 3}
			require.NoError(t, uc.AddLineStation(ctx, 1, req))
		}).Return([]*domain.Line{beforeAdd}, nil).Once()
		lineRepo.On("FindAll", ctx).Return([]*domain.Line{stored}, nil)

		first, err := uc.WholeLines(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, stationIDsOf(first.LineDetailResponses[0]))

		second, err := uc.WholeLines(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2}, stationIDsOf(second.LineDetailResponses[0]))
		assert.Equal(t, []int64{1, 2}, stored.LineStationsID())

		// The up-to-date view is now cached and served without touching storage.
		third, err := uc.WholeLines(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2}, stationIDsOf(third.LineDetailResponses[0]))
		lineRepo.AssertNumberOfCalls(t, "FindAll", 2)
		assert.True(t, memory.has("network:1"))
	})
}
