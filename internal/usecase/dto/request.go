package dto

import "github.com/subway-admin/internal/domain"

// LineRequest - создание или изменение линии
type LineRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	StartTime    string `json:"start_time" validate:"required,clock"`
	EndTime      string `json:"end_time" validate:"required,clock"`
	IntervalTime int    `json:"interval_time" validate:"required,min=1,max=1440"`
	BgColor      string `json:"bg_color" validate:"omitempty,max=64"`
}

func (r LineRequest) ToLine() domain.Line {
	return domain.Line{
		Name:         r.Name,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		IntervalTime: r.IntervalTime,
		BgColor:      r.BgColor,
	}
}

// LineStationCreateRequest - добавление станции в линию.
// PreStationID is omitted (null) when the station becomes the first of the line.
type LineStationCreateRequest struct {
	PreStationID *int64 `json:"pre_station_id"`
	StationID    int64  `json:"station_id" validate:"required,min=1"`
	Distance     int    `json:"distance" validate:"min=0"`
	Duration     int    `json:"duration" validate:"min=0"`
}

// StationCreateRequest - создание станции
type StationCreateRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (r StationCreateRequest) ToStation() *domain.Station {
	return &domain.Station{Name: r.Name}
}
