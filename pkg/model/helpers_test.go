package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func set(t *testing.T, bits string) Set {
	t.Helper()
	parsed, err := ParseSet(bits)
	require.NoError(t, err)
	return parsed
}

// newTestTime builds a time on a semester whose dimensions are taken from the bit strings
func newTestTime(t *testing.T, weeks, days string, start, duration int) Time {
	t.Helper()
	time, err := NewTime(len(weeks), len(days), set(t, weeks), set(t, days), start, duration)
	require.NoError(t, err)
	return time
}

func newTestRoom(t *testing.T, id, capacity int, unavailable ...Time) *Room {
	t.Helper()
	room, err := NewRoom(id, capacity, unavailable)
	require.NoError(t, err)
	return room
}

// newTestClass builds a class whose options are the given times and rooms, all with zero penalty. An empty rooms list
// builds a class that does not need a room
func newTestClass(t *testing.T, id int, times []Time, rooms []*Room) *Class {
	t.Helper()
	timeOptions := make([]*TimeOption, len(times))
	for i, time := range times {
		option, err := NewTimeOption(time, 0)
		require.NoError(t, err)
		timeOptions[i] = option
	}

	roomOptions := make([]*RoomOption, len(rooms))
	for i, room := range rooms {
		option, err := NewRoomOption(room, 0)
		require.NoError(t, err)
		roomOptions[i] = option
	}

	class, err := NewClass(id, 100, timeOptions, roomOptions, nil)
	require.NoError(t, err)
	return class
}

// singleClass builds a class with a single possible time and, if room is not nil, a single possible room
func singleClass(t *testing.T, id int, time Time, room *Room) *Class {
	t.Helper()
	if room == nil {
		return newTestClass(t, id, []Time{time}, nil)
	}
	return newTestClass(t, id, []Time{time}, []*Room{room})
}

// schedule builds a timetable over the classes assigning each one its first time and, if needed, its first room
func schedule(t *testing.T, classes ...*Class) *Timetable {
	t.Helper()
	timetable, err := NewTimetable(classes)
	require.NoError(t, err)
	for _, class := range classes {
		event := timetable.Event(class)
		require.NoError(t, event.SetTime(class.Times[0]))
		if class.NeedsRoom() {
			require.NoError(t, event.SetRoom(class.Rooms[0]))
		}
	}
	return timetable
}

func newTestConstraint(t *testing.T, kind Kind, classes []*Class, params ...int) Constraint {
	t.Helper()
	constraint, err := NewConstraint(kind, classes, nil, params...)
	require.NoError(t, err)
	return constraint
}

func newTestTravel(t *testing.T, rooms []*Room, travels map[[2]int]int) *TravelMatrix {
	t.Helper()
	builder, err := NewTravelMatrixBuilder(rooms)
	require.NoError(t, err)
	byId := make(map[int]*Room, len(rooms))
	for _, room := range rooms {
		byId[room.Id] = room
	}
	for pair, slots := range travels {
		require.NoError(t, builder.Set(byId[pair[0]], byId[pair[1]], slots))
	}
	return builder.Build()
}
