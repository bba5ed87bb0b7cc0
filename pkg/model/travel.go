package model

import "log"

// TravelMatrix holds the number of slots needed to move between any two rooms of an instance. It is immutable once
// built, so it can be shared by concurrent evaluations without synchronization
type TravelMatrix struct {
	indices map[int]int // Room id -> row
	times   [][]int
}

// TravelMatrixBuilder is the single writer of a TravelMatrix
type TravelMatrixBuilder struct {
	matrix *TravelMatrix
	built  bool
}

func NewTravelMatrixBuilder(rooms []*Room) (*TravelMatrixBuilder, error) {
	matrix := &TravelMatrix{
		indices: make(map[int]int, len(rooms)),
		times:   make([][]int, len(rooms)),
	}
	for i, room := range rooms {
		if _, ok := matrix.indices[room.Id]; ok {
			return nil, invalidArgument("room %d is defined more than once", room.Id)
		}
		matrix.indices[room.Id] = i
		matrix.times[i] = make([]int, len(rooms))
	}
	return &TravelMatrixBuilder{matrix: matrix}, nil
}

// Set stores the (symmetric) travel time between two rooms
func (builder *TravelMatrixBuilder) Set(room1, room2 *Room, slots int) error {
	if builder.built {
		return contractViolation("travel matrix has already been built")
	} else if slots < 0 {
		return invalidArgument("travel time between rooms %d and %d cannot be negative: %d", room1.Id, room2.Id, slots)
	}

	i, ok1 := builder.matrix.indices[room1.Id]
	j, ok2 := builder.matrix.indices[room2.Id]
	if !ok1 || !ok2 {
		return invalidArgument("travel time between unknown rooms %d and %d", room1.Id, room2.Id)
	}

	builder.matrix.times[i][j] = slots
	builder.matrix.times[j][i] = slots
	return nil
}

// Build seals the builder and returns the matrix; later calls to Set fail
func (builder *TravelMatrixBuilder) Build() *TravelMatrix {
	builder.built = true
	return builder.matrix
}

// Travel returns the slots needed to go from room1 to room2
func (matrix *TravelMatrix) Travel(room1, room2 *Room) int {
	i, ok1 := matrix.indices[room1.Id]
	j, ok2 := matrix.indices[room2.Id]
	if !ok1 || !ok2 {
		log.Panicf("travel time requested between unknown rooms %d and %d", room1.Id, room2.Id)
	}
	return matrix.times[i][j]
}

// Covers checks whether the matrix has a row for the room
func (matrix *TravelMatrix) Covers(room *Room) bool {
	_, ok := matrix.indices[room.Id]
	return ok
}

// Rows returns the number of rooms covered by the matrix
func (matrix *TravelMatrix) Rows() int {
	return len(matrix.times)
}
