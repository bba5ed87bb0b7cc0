package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStudent(t *testing.T, id int) *Student {
	t.Helper()
	student, err := NewStudent(id, nil)
	require.NoError(t, err)
	return student
}

func TestEventAssignmentContract(t *testing.T) {
	if !validating {
		t.Skip("assignments are only checked by validating builds")
	}

	time := newTestTime(t, "1", "11111", 0, 12)
	small, large := newTestRoom(t, 1, 1), newTestRoom(t, 2, 30)

	t.Run("Foreign time", func(t *testing.T) {
		class := singleClass(t, 1, time, nil)
		other := singleClass(t, 2, time, nil)
		timetable, err := NewTimetable([]*Class{class})
		require.NoError(t, err)

		assert.ErrorIs(t, timetable.Event(class).SetTime(other.Times[0]), ErrContractViolation)
	})

	t.Run("Time reassigned", func(t *testing.T) {
		class := singleClass(t, 1, time, nil)
		timetable := schedule(t, class)

		assert.ErrorIs(t, timetable.Event(class).SetTime(class.Times[0]), ErrContractViolation)
	})

	t.Run("Room for a class without rooms", func(t *testing.T) {
		class := singleClass(t, 1, time, nil)
		roomful := singleClass(t, 2, time, large)
		timetable := schedule(t, class)

		assert.ErrorIs(t, timetable.Event(class).SetRoom(roomful.Rooms[0]), ErrContractViolation)
	})

	t.Run("Foreign room", func(t *testing.T) {
		class := singleClass(t, 1, time, small)
		other := singleClass(t, 2, time, large)
		timetable, err := NewTimetable([]*Class{class})
		require.NoError(t, err)

		assert.ErrorIs(t, timetable.Event(class).SetRoom(other.Rooms[0]), ErrContractViolation)
	})

	t.Run("Room capacity", func(t *testing.T) {
		// Arrange
		class := singleClass(t, 1, time, small)
		timetable := schedule(t, class)
		event := timetable.Event(class)
		require.NoError(t, event.AddStudent(newTestStudent(t, 1), timetable))

		// Act
		err := event.AddStudent(newTestStudent(t, 2), timetable)

		// Assert
		assert.ErrorIs(t, err, ErrContractViolation)
		assert.Len(t, event.Students(), 1)
	})

	t.Run("Class limit", func(t *testing.T) {
		option, err := NewTimeOption(time, 0)
		require.NoError(t, err)
		class, err := NewClass(1, 0, []*TimeOption{option}, nil, nil)
		require.NoError(t, err)
		timetable := schedule(t, class)

		assert.ErrorIs(t, timetable.Event(class).AddStudent(newTestStudent(t, 1), timetable), ErrContractViolation)
	})

	t.Run("Duplicated student", func(t *testing.T) {
		class := singleClass(t, 1, time, nil)
		timetable := schedule(t, class)
		student := newTestStudent(t, 1)
		require.NoError(t, timetable.Event(class).AddStudent(student, timetable))

		assert.ErrorIs(t, timetable.Event(class).AddStudent(student, timetable), ErrContractViolation)
	})

	t.Run("Parent first", func(t *testing.T) {
		// Arrange
		parent := singleClass(t, 1, time, nil)
		child := singleClass(t, 2, time, nil)
		require.NoError(t, child.LinkParent(parent))
		timetable := schedule(t, parent, child)
		student := newTestStudent(t, 1)

		// Act
		orphan := timetable.Event(child).AddStudent(student, timetable)
		require.NoError(t, timetable.Event(parent).AddStudent(student, timetable))
		adopted := timetable.Event(child).AddStudent(student, timetable)

		// Assert
		assert.ErrorIs(t, orphan, ErrContractViolation)
		assert.NoError(t, adopted)
	})
}

func TestScheduled(t *testing.T) {
	time := newTestTime(t, "1", "1", 0, 12)
	withRoom := singleClass(t, 1, time, newTestRoom(t, 1, 10))
	withoutRoom := singleClass(t, 2, time, nil)
	timetable, err := NewTimetable([]*Class{withRoom, withoutRoom})
	require.NoError(t, err)

	assert.False(t, timetable.Complete())

	require.NoError(t, timetable.Event(withRoom).SetTime(withRoom.Times[0]))
	require.NoError(t, timetable.Event(withoutRoom).SetTime(withoutRoom.Times[0]))
	assert.False(t, timetable.Event(withRoom).Scheduled())
	assert.True(t, timetable.Event(withoutRoom).Scheduled())

	require.NoError(t, timetable.Event(withRoom).SetRoom(withRoom.Rooms[0]))
	assert.True(t, timetable.Complete())
}

func TestTimetableClone(t *testing.T) {
	// Arrange
	time := newTestTime(t, "1", "1", 0, 12)
	class := singleClass(t, 1, time, nil)
	timetable, err := NewTimetable([]*Class{class})
	require.NoError(t, err)
	student := newTestStudent(t, 1)

	// Act
	clone := timetable.Clone()
	require.NoError(t, clone.Event(class).SetTime(class.Times[0]))
	require.NoError(t, clone.Event(class).AddStudent(student, clone))

	// Assert
	assert.Nil(t, timetable.Event(class).Time())
	assert.Empty(t, timetable.Event(class).Students())
	assert.True(t, clone.Event(class).Enrolled(student))
	assert.Len(t, clone.Enrollments()[student], 1)
}

func TestDuplicatedClasses(t *testing.T) {
	class := singleClass(t, 1, newTestTime(t, "1", "1", 0, 12), nil)
	_, err := NewTimetable([]*Class{class, class})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
