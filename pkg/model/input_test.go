package model

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/mapstructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	instanceFile = "testdata/instance.json"
	solutionFile = "testdata/solution.json"
)

func rawFixture(t *testing.T) RawInstance {
	t.Helper()
	bytes, err := os.ReadFile(instanceFile)
	require.NoError(t, err)
	var inputJson map[string]any
	require.NoError(t, json.Unmarshal(bytes, &inputJson))

	var rawInput RawInstance
	require.NoError(t, mapstructure.Decode(inputJson, &rawInput))
	return rawInput
}

func TestInstanceFromJson(t *testing.T) {
	// Act
	instance, err := InstanceFromJson(instanceFile)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "tiny-2w", instance.Name)
	assert.Equal(t, 5, instance.NrDays)
	assert.Equal(t, 2, instance.NrWeeks)
	assert.Equal(t, Weights{Time: 2, Room: 3, Distribution: 5, Student: 10}, instance.Weights)
	assert.Len(t, instance.Rooms, 2)
	assert.Len(t, instance.Classes, 4)
	assert.Len(t, instance.Students, 2)
	assert.Len(t, instance.Hard, 1)
	assert.Len(t, instance.Soft, 2)

	rooms := instance.Rooms
	assert.Equal(t, 6, instance.Travel.Travel(rooms[1], rooms[0]))
	assert.Len(t, rooms[0].Unavailable, 1)

	classes := instance.Classes
	assert.True(t, classes[0].NeedsRoom())
	assert.False(t, classes[2].NeedsRoom(), "class 3 is declared without a room")
	assert.Same(t, classes[0], classes[1].Parent)
	assert.Same(t, classes[0], classes[2].Parent)
	assert.Nil(t, classes[3].Parent)

	maxDayLoad := instance.Soft[1]
	assert.Equal(t, MaxDayLoad, maxDayLoad.Constraint.Kind)
	assert.Equal(t, 30, maxDayLoad.Constraint.Limit)
	assert.Equal(t, 3, maxDayLoad.Weight)
}

func TestProcessRawInput(t *testing.T) {
	t.Run("Parent declared after its child", func(t *testing.T) {
		// Arrange
		rawInput := rawFixture(t)
		subparts := rawInput.Courses[0].Configs[0].Subparts
		subparts[0], subparts[1] = subparts[1], subparts[0]

		// Act
		instance, err := ProcessRawInput(rawInput)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, instance.Classes[0].Parent.Id)
	})

	malformed := map[string]func(rawInput *RawInstance){
		"Undefined parent": func(rawInput *RawInstance) {
			rawInput.Courses[1].Configs[0].Subparts[0].Classes[0].Parent = 99
		},
		"Undefined room option": func(rawInput *RawInstance) {
			rawInput.Courses[1].Configs[0].Subparts[0].Classes[0].Rooms[0].Id = 99
		},
		"Undefined travel room": func(rawInput *RawInstance) {
			rawInput.Rooms[0].Travel[0].Room = 99
		},
		"Undefined course": func(rawInput *RawInstance) {
			rawInput.Students[0].Courses = append(rawInput.Students[0].Courses, 99)
		},
		"Undefined distribution class": func(rawInput *RawInstance) {
			rawInput.Distributions[0].Classes = []int{1, 99}
		},
	}
	for name, corrupt := range malformed {
		t.Run(name, func(t *testing.T) {
			rawInput := rawFixture(t)
			corrupt(&rawInput)

			_, err := ProcessRawInput(rawInput)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}

	invalid := map[string]func(rawInput *RawInstance){
		"Duplicated class": func(rawInput *RawInstance) {
			rawInput.Courses[1].Configs[0].Subparts[0].Classes[0].Id = 1
		},
		"Time longer than the day": func(rawInput *RawInstance) {
			rawInput.Courses[1].Configs[0].Subparts[0].Classes[0].Times[0].Length = 200
		},
		"Days of the wrong length": func(rawInput *RawInstance) {
			rawInput.Rooms[0].Unavailable[0].Days = "0000001"
		},
		"Unknown distribution": func(rawInput *RawInstance) {
			rawInput.Distributions[1].Type = "SameLunch"
		},
		"Cyclic parents": func(rawInput *RawInstance) {
			rawInput.Courses[0].Configs[0].Subparts[0].Classes[0].Parent = 2
		},
		"Zero weight": func(rawInput *RawInstance) {
			rawInput.Optimization.Student = 0
		},
	}
	for name, corrupt := range invalid {
		t.Run(name, func(t *testing.T) {
			rawInput := rawFixture(t)
			corrupt(&rawInput)

			_, err := ProcessRawInput(rawInput)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestSolutionFromJson(t *testing.T) {
	// Arrange
	instance, err := InstanceFromJson(instanceFile)
	require.NoError(t, err)

	// Act
	timetable, err := SolutionFromJson(solutionFile, instance)

	// Assert
	require.NoError(t, err)
	assert.True(t, timetable.Complete())
	first := timetable.EventById(1)
	assert.Equal(t, 96, first.Time().Time.Start())
	assert.Equal(t, 1, first.Room().Room.Id)
	assert.Len(t, first.Students(), 2)
	assert.Nil(t, timetable.EventById(3).Room())
}

func TestProcessRawSolution(t *testing.T) {
	instance, err := InstanceFromJson(instanceFile)
	require.NoError(t, err)

	tests := []struct {
		name       string
		assignment RawAssignment
		expected   error
	}{
		{"Unknown class", RawAssignment{Id: 9, Days: "10100", Weeks: "11", Start: 96, Room: 1}, ErrNotFound},
		{"Unknown time", RawAssignment{Id: 1, Days: "10100", Weeks: "11", Start: 97, Room: 1}, ErrNotFound},
		{"Unknown room", RawAssignment{Id: 1, Days: "10100", Weeks: "11", Start: 96, Room: 3}, ErrNotFound},
		{"Unknown student", RawAssignment{Id: 1, Days: "10100", Weeks: "11", Start: 96, Room: 1, Students: []int{5}}, ErrNotFound},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ProcessRawSolution(RawSolution{Classes: []RawAssignment{test.assignment}}, instance)
			assert.ErrorIs(t, err, test.expected)
		})
	}

	t.Run("Missing file", func(t *testing.T) {
		_, err := SolutionFromJson(filepath.Join(t.TempDir(), "missing.json"), instance)
		assert.Error(t, err)
	})
}
