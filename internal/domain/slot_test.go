package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mskTime(t *testing.T, hour, minute int) time.Time {
	t.Helper()
	return time.Date(2024, 5, 12, hour, minute, 0, 0, Moscow)
}

func TestNewTimeSlot_InvalidInterval(t *testing.T) {
	start := mskTime(t, 12, 0)

	_, err := NewTimeSlot(start, start, SlotFree, "Free")
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewTimeSlot(start, start.Add(-time.Hour), SlotFree, "Free")
	assert.ErrorIs(t, err, ErrInvalidInterval)

	slot, err := NewTimeSlot(start, start.Add(time.Hour), SlotTherapy, "13:00")
	require.NoError(t, err)
	assert.Equal(t, 60, slot.DurationMinutes())
}

func TestTimeSlot_Overlaps(t *testing.T) {
	newSlot := func(startHour, startMin, endHour, endMin int) TimeSlot {
		s, err := NewTimeSlot(mskTime(t, startHour, startMin), mskTime(t, endHour, endMin), SlotFree, "")
		require.NoError(t, err)
		return s
	}

	base := newSlot(11, 0, 12, 0)

	tests := []struct {
		name  string
		other TimeSlot
		want  bool
	}{
		{"identical", newSlot(11, 0, 12, 0), true},
		{"contained", newSlot(11, 15, 11, 45), true},
		{"starts mid-slot", newSlot(11, 30, 12, 30), true},
		{"ends mid-slot", newSlot(10, 30, 11, 30), true},
		{"touches start", newSlot(10, 0, 11, 0), false},
		{"touches end", newSlot(12, 0, 13, 0), false},
		{"disjoint", newSlot(13, 0, 14, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

// Событие, начавшееся не по сетке, должно конфликтовать с обоими
// соседними часовыми слотами: сравнение по равенству начал это бы пропустило
func TestTimeSlot_Overlaps_OffGridEvent(t *testing.T) {
	offGrid, err := NewTimeSlot(mskTime(t, 13, 30), mskTime(t, 14, 30), SlotTherapy, "")
	require.NoError(t, err)

	thirteen, err := NewTimeSlot(mskTime(t, 13, 0), mskTime(t, 14, 0), SlotFree, "")
	require.NoError(t, err)
	fourteen, err := NewTimeSlot(mskTime(t, 14, 0), mskTime(t, 15, 0), SlotFree, "")
	require.NoError(t, err)

	assert.True(t, offGrid.Overlaps(thirteen))
	assert.True(t, offGrid.Overlaps(fourteen))
}

func TestCommune_LectureCapacity(t *testing.T) {
	assert.Equal(t, 10, CommuneAmerican.LectureCapacity())
	assert.Equal(t, 8, CommuneGerman.LectureCapacity())
}

func TestParseCommune(t *testing.T) {
	c, err := ParseCommune("Американская")
	require.NoError(t, err)
	assert.Equal(t, CommuneAmerican, c)

	c, err = ParseCommune("german")
	require.NoError(t, err)
	assert.Equal(t, CommuneGerman, c)

	_, err = ParseCommune("французская")
	assert.Error(t, err)
}

func TestIsBlackoutHour(t *testing.T) {
	assert.True(t, IsBlackoutHour(15))
	assert.True(t, IsBlackoutHour(16))
	assert.False(t, IsBlackoutHour(14))
	assert.False(t, IsBlackoutHour(17))
}

func TestPhoneRe(t *testing.T) {
	valid := []string{
		"+79161234567",
		"89161234567",
		"79161234567",
		"9161234567",
		"+7 916 123-45-67",
		"8 (916) 123 45 67",
	}
	for _, phone := range valid {
		assert.True(t, PhoneRe.MatchString(phone), phone)
	}

	invalid := []string{
		"12345",
		"абвгд",
		"+1 555 123 4567",
		"+7916123456",
	}
	for _, phone := range invalid {
		assert.False(t, PhoneRe.MatchString(phone), phone)
	}
}

func TestBookingRequest_EventSummary(t *testing.T) {
	req := BookingRequest{Name: "Иван", Headcount: 3}
	assert.Equal(t, "Иван+3", req.EventSummary())
}
