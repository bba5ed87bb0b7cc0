package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	instanceXmlFile = "testdata/instance.xml"
	solutionXmlFile = "testdata/solution.xml"
)

func TestInstanceFromXml(t *testing.T) {
	// Act
	instance, err := InstanceFromXml(instanceXmlFile)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "tiny-2w", instance.Name)
	assert.Equal(t, 288, instance.SlotsPerDay)
	assert.Equal(t, Weights{Time: 2, Room: 3, Distribution: 5, Student: 10}, instance.Weights)
	assert.Len(t, instance.Classes, 4)
	assert.Len(t, instance.Students, 2)
	assert.Len(t, instance.Hard, 1)
	assert.Len(t, instance.Soft, 2)

	rooms := instance.Rooms
	assert.Equal(t, 6, instance.Travel.Travel(rooms[0], rooms[1]))
	assert.Len(t, rooms[0].Unavailable, 1)

	classes := instance.Classes
	assert.True(t, classes[0].NeedsRoom())
	assert.Len(t, classes[0].Rooms, 2)
	assert.Len(t, classes[0].Times, 2)
	assert.False(t, classes[2].NeedsRoom(), "class 3 is declared with room=\"false\"")
	assert.Same(t, classes[0], classes[1].Parent)
	assert.Equal(t, 2, instance.Soft[0].Weight)
	assert.Equal(t, 30, instance.Soft[1].Constraint.Limit)
}

func TestXmlAndJsonScoreAlike(t *testing.T) {
	// Arrange
	instance, err := LoadInstance(instanceXmlFile)
	require.NoError(t, err)

	// Act
	timetable, err := LoadSolution(solutionXmlFile, instance)

	// Assert
	require.NoError(t, err)
	assert.True(t, timetable.Complete())
	assert.True(t, instance.Feasible(timetable))
	assert.Equal(t, Score{Time: 4, Room: 1, Distribution: 92, Student: 2, Total: 491}, instance.Score(timetable))

	first := timetable.EventById(1)
	assert.Equal(t, 1, first.Room().Room.Id)
	assert.Len(t, first.Students(), 2)
	assert.Nil(t, timetable.EventById(3).Room())
}

func TestLoadDispatchesOnExtension(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		instance, err := LoadInstance(instanceFile)
		require.NoError(t, err)
		timetable, err := LoadSolution(solutionFile, instance)
		require.NoError(t, err)
		assert.Equal(t, 491, instance.Score(timetable).Total)
	})

	t.Run("XML solution of a JSON instance", func(t *testing.T) {
		instance, err := LoadInstance(instanceFile)
		require.NoError(t, err)
		timetable, err := LoadSolution(solutionXmlFile, instance)
		require.NoError(t, err)
		assert.Equal(t, 491, instance.Score(timetable).Total)
	})

	t.Run("Malformed XML", func(t *testing.T) {
		// Arrange
		file := filepath.Join(t.TempDir(), "broken.xml")
		require.NoError(t, os.WriteFile(file, []byte(`<problem name="broken"><rooms>`), 0o644))

		// Act
		_, err := LoadInstance(file)

		// Assert
		assert.ErrorContains(t, err, "cannot decode instance")
	})

	t.Run("Missing file", func(t *testing.T) {
		instance, err := LoadInstance(instanceXmlFile)
		require.NoError(t, err)
		_, err = LoadSolution(filepath.Join(t.TempDir(), "missing.xml"), instance)
		assert.Error(t, err)
	})
}
