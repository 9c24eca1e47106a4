package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{name: "morning", input: "9:00 AM", want: MustTimeOfDay(9, 0)},
		{name: "half hour", input: "9:30 AM", want: MustTimeOfDay(9, 30)},
		{name: "noon", input: "12:00 PM", want: MustTimeOfDay(12, 0)},
		{name: "midnight", input: "12:00 AM", want: MustTimeOfDay(0, 0)},
		{name: "afternoon", input: "1:30 PM", want: MustTimeOfDay(13, 30)},
		{name: "evening", input: "7:00 PM", want: MustTimeOfDay(19, 0)},
		{name: "lowercase meridiem", input: "9:00 am", want: MustTimeOfDay(9, 0)},
		{name: "no meridiem", input: "9:00", wantErr: true},
		{name: "hour 13", input: "13:00 PM", wantErr: true},
		{name: "hour 0", input: "0:30 AM", wantErr: true},
		{name: "single digit minute", input: "9:5 AM", wantErr: true},
		{name: "garbage", input: "nine o'clock", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMilitary(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{input: "09:00", want: MustTimeOfDay(9, 0)},
		{input: "00:00", want: MustTimeOfDay(0, 0)},
		{input: "19:00", want: MustTimeOfDay(19, 0)},
		{input: "23:59", want: MustTimeOfDay(23, 59)},
		{input: "24:00", wantErr: true},
		{input: "9:5", wantErr: true},
		{input: "0900", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMilitary(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeOfDay_String(t *testing.T) {
	tests := []struct {
		time TimeOfDay
		want string
	}{
		{MustTimeOfDay(9, 0), "9:00 AM"},
		{MustTimeOfDay(10, 30), "10:30 AM"},
		{MustTimeOfDay(0, 0), "12:00 AM"},
		{MustTimeOfDay(12, 0), "12:00 PM"},
		{MustTimeOfDay(13, 30), "1:30 PM"},
		{MustTimeOfDay(19, 0), "7:00 PM"},
		{MustTimeOfDay(9, 5), "9:05 AM"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.time.String())
		})
	}
}

func TestTimeOfDay_Military(t *testing.T) {
	assert.Equal(t, "09:00", MustTimeOfDay(9, 0).Military())
	assert.Equal(t, "19:00", MustTimeOfDay(19, 0).Military())
	assert.Equal(t, "00:05", MustTimeOfDay(0, 5).Military())
}

func TestTimeOfDay_RoundTrip(t *testing.T) {
	// Клоковая форма и 24-часовая форма должны парситься в одно и то же значение
	for minutes := 0; minutes < MinutesPerDay; minutes += 30 {
		tod := TimeOfDay(minutes)

		fromClock, err := ParseClock(tod.String())
		require.NoError(t, err)
		assert.Equal(t, tod, fromClock)

		fromMilitary, err := ParseMilitary(tod.Military())
		require.NoError(t, err)
		assert.Equal(t, tod, fromMilitary)
	}
}

func TestTimeOfDay_AddMinutes(t *testing.T) {
	start := MustTimeOfDay(9, 30)

	end, err := start.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, MustTimeOfDay(10, 15), end)

	// Конец дня (24:00) допустим как конец интервала
	end, err = MustTimeOfDay(23, 0).AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(MinutesPerDay), end)

	// Выход за пределы суток — ошибка
	_, err = MustTimeOfDay(23, 0).AddMinutes(90)
	assert.Error(t, err)

	_, err = MustTimeOfDay(1, 0).AddMinutes(-90)
	assert.Error(t, err)
}

func TestTimeOfDay_BeforeAfter(t *testing.T) {
	a := MustTimeOfDay(9, 0)
	b := MustTimeOfDay(9, 30)

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.True(t, b.After(a))
	assert.False(t, a.Before(a))
	assert.False(t, a.After(a))
}

func TestTimeOfDay_JSON(t *testing.T) {
	data, err := json.Marshal(MustTimeOfDay(13, 30))
	require.NoError(t, err)
	assert.Equal(t, `"1:30 PM"`, string(data))

	var parsed TimeOfDay
	require.NoError(t, json.Unmarshal([]byte(`"10:00 AM"`), &parsed))
	assert.Equal(t, MustTimeOfDay(10, 0), parsed)
}

func TestTimeOfDay_Scan(t *testing.T) {
	var tod TimeOfDay
	require.NoError(t, tod.Scan(int64(570)))
	assert.Equal(t, MustTimeOfDay(9, 30), tod)

	require.NoError(t, tod.Scan([]byte("600")))
	assert.Equal(t, MustTimeOfDay(10, 0), tod)

	assert.Error(t, tod.Scan("not a number"))
	assert.Error(t, tod.Scan(int64(MinutesPerDay)))
}
