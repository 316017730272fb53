package dto

import (
	"time"

	"github.com/subway-admin/internal/domain"
)

// StationResponse - станция
type StationResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func ConvertStation(s *domain.Station) StationResponse {
	return StationResponse{
		ID:        s.ID,
		Name:      s.Name,
		CreatedAt: s.CreatedAt,
	}
}

func ConvertStations(stations []*domain.Station) []StationResponse {
	result := make([]StationResponse, 0, len(stations))
	for _, s := range stations {
		result = append(result, ConvertStation(s))
	}
	return result
}

// LineResponse - линия без станций
type LineResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	IntervalTime int       `json:"interval_time"`
	BgColor      string    `json:"bg_color"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ConvertLine(l *domain.Line) LineResponse {
	return LineResponse{
		ID:           l.ID,
		Name:         l.Name,
		StartTime:    l.StartTime,
		EndTime:      l.EndTime,
		IntervalTime: l.IntervalTime,
		BgColor:      l.BgColor,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

func ConvertLines(lines []*domain.Line) []LineResponse {
	result := make([]LineResponse, 0, len(lines))
	for _, l := range lines {
		result = append(result, ConvertLine(l))
	}
	return result
}

// LineStationResponse - станция на своей позиции в линии
type LineStationResponse struct {
	Station  StationResponse `json:"station"`
	Distance int             `json:"distance"`
	Duration int             `json:"duration"`
}

// LineDetailResponse - линия со станциями в порядке следования
type LineDetailResponse struct {
	LineResponse
	Stations []LineStationResponse `json:"stations"`
}

// NewLineDetailResponse pairs each position of the line's path with its station from index.
// Positions whose station is missing from index are skipped.
func NewLineDetailResponse(line *domain.Line, index domain.StationIndex) LineDetailResponse {
	ordered := line.OrderedStations()
	stations := make([]LineStationResponse, 0, len(ordered))
	for _, ls := range ordered {
		station, ok := index[ls.StationID]
		if !ok {
			continue
		}
		stations = append(stations, LineStationResponse{
			Station:  ConvertStation(station),
			Distance: ls.Distance,
			Duration: ls.Duration,
		})
	}

	return LineDetailResponse{
		LineResponse: ConvertLine(line),
		Stations:     stations,
	}
}

// WholeSubwayResponse - вся сеть: каждая линия со своими станциями
type WholeSubwayResponse struct {
	LineDetailResponses []LineDetailResponse `json:"line_detail_responses"`
}
