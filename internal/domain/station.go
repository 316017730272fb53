package domain

import "time"

type Station struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// StationIndex resolves stations by id after one bulk fetch.
type StationIndex map[int64]*Station

func NewStationIndex(stations []*Station) StationIndex {
	index := make(StationIndex, len(stations))
	for _, s := range stations {
		index[s.ID] = s
	}
	return index
}
