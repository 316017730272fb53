package domain

import "time"

// LineStation links one station into a line's path. PreStationID is nil for the first station;
// Distance and Duration are measured from the preceding station.
type LineStation struct {
	PreStationID *int64 `json:"pre_station_id" db:"pre_station_id"`
	StationID    int64  `json:"station_id" db:"station_id"`
	Distance     int    `json:"distance" db:"distance"`
	Duration     int    `json:"duration" db:"duration"`
}

func NewLineStation(preStationID *int64, stationID int64, distance, duration int) LineStation {
	return LineStation{
		PreStationID: copyID(preStationID),
		StationID:    stationID,
		Distance:     distance,
		Duration:     duration,
	}
}

// IsFirst reports whether the entry heads its line.
func (ls LineStation) IsFirst() bool {
	return ls.PreStationID == nil
}

// Follows reports whether the entry comes right after stationID.
func (ls LineStation) Follows(stationID int64) bool {
	return ls.PreStationID != nil && *ls.PreStationID == stationID
}

func (ls LineStation) samePredecessor(other LineStation) bool {
	if ls.PreStationID == nil || other.PreStationID == nil {
		return ls.PreStationID == nil && other.PreStationID == nil
	}
	return *ls.PreStationID == *other.PreStationID
}

type Line struct {
	ID           int64         `json:"id" db:"id"`
	Name         string        `json:"name" db:"name"`
	StartTime    string        `json:"start_time" db:"start_time"`
	EndTime      string        `json:"end_time" db:"end_time"`
	IntervalTime int           `json:"interval_time" db:"interval_time"`
	BgColor      string        `json:"bg_color" db:"bg_color"`
	Stations     []LineStation `json:"stations" db:"-"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
}

// Update overwrites every field that is set on other. Identity, stations and CreatedAt are kept.
func (l *Line) Update(other Line) {
	if other.Name != "" {
		l.Name = other.Name
	}
	if other.StartTime != "" {
		l.StartTime = other.StartTime
	}
	if other.EndTime != "" {
		l.EndTime = other.EndTime
	}
	if other.IntervalTime != 0 {
		l.IntervalTime = other.IntervalTime
	}
	if other.BgColor != "" {
		l.BgColor = other.BgColor
	}
	l.UpdatedAt = time.Now()
}

// AddLineStation inserts ls after its preceding station (or at the head when it has none).
// The entry that used to occupy that slot is re-linked to follow ls.
// A station already on the line is moved to the new position; an entry naming itself
// as predecessor is ignored.
func (l *Line) AddLineStation(ls LineStation) {
	if ls.Follows(ls.StationID) {
		return
	}
	if l.hasStation(ls.StationID) {
		l.RemoveLineStationByID(ls.StationID)
	}

	for i := range l.Stations {
		if l.Stations[i].samePredecessor(ls) {
			next := ls.StationID
			l.Stations[i].PreStationID = &next
			break
		}
	}
	l.Stations = append(l.Stations, ls)
}

// RemoveLineStationByID drops the station from the path and links its successor to its predecessor.
// Unknown station ids are ignored.
func (l *Line) RemoveLineStationByID(stationID int64) {
	idx := -1
	for i, ls := range l.Stations {
		if ls.StationID == stationID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	removed := l.Stations[idx]
	for i := range l.Stations {
		if l.Stations[i].Follows(stationID) {
			l.Stations[i].PreStationID = copyID(removed.PreStationID)
			break
		}
	}
	l.Stations = append(l.Stations[:idx], l.Stations[idx+1:]...)
}

// OrderedStations walks the path from its head. Entries unreachable from the head are left out.
func (l *Line) OrderedStations() []LineStation {
	ordered := make([]LineStation, 0, len(l.Stations))

	var head *LineStation
	byPredecessor := make(map[int64]LineStation, len(l.Stations))
	for i, ls := range l.Stations {
		if ls.IsFirst() {
			if head == nil {
				head = &l.Stations[i]
			}
			continue
		}
		byPredecessor[*ls.PreStationID] = ls
	}
	if head == nil {
		return ordered
	}

	ordered = append(ordered, *head)
	current := head.StationID
	for len(ordered) < len(l.Stations) {
		next, ok := byPredecessor[current]
		if !ok {
			break
		}
		ordered = append(ordered, next)
		current = next.StationID
	}
	return ordered
}

// LineStationsID returns the ids of the line's stations in path order.
func (l *Line) LineStationsID() []int64 {
	ordered := l.OrderedStations()
	ids := make([]int64, 0, len(ordered))
	for _, ls := range ordered {
		ids = append(ids, ls.StationID)
	}
	return ids
}

// MatchingStations selects this line's stations from index, in path order.
// Ids missing from index are skipped.
func (l *Line) MatchingStations(index StationIndex) []*Station {
	ids := l.LineStationsID()
	stations := make([]*Station, 0, len(ids))
	for _, id := range ids {
		if s, ok := index[id]; ok {
			stations = append(stations, s)
		}
	}
	return stations
}

func (l *Line) hasStation(stationID int64) bool {
	for _, ls := range l.Stations {
		if ls.StationID == stationID {
			return true
		}
	}
	return false
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
