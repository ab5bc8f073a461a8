package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJinPro/SVOD/pkg/models"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevErr, prevNoColor := Out, Err, color.NoColor
	Out, Err, color.NoColor = &buf, &buf, true
	t.Cleanup(func() { Out, Err, color.NoColor = prevOut, prevErr, prevNoColor })
	return &buf
}

func TestTable_OneLinePerRow(t *testing.T) {
	buf := capture(t)

	events := []models.Event{
		{ID: "e1", Type: models.TypeAlarm, Severity: models.SeverityCritical, Status: models.StatusActive, ObjectName: "Склад 4"},
		{ID: "e2", Type: models.TypeAccess, Severity: models.SeverityInfo, Status: models.StatusResolved},
		{ID: "e3", Type: "unknown", Severity: models.SeveritySuccess, Status: models.StatusPending},
	}
	Table(EventHeaders, EventRows(events))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2+3)
	assert.True(t, strings.HasPrefix(lines[0], "ВРЕМЯ"))
	assert.True(t, strings.HasPrefix(lines[1], "-----"))
	assert.Contains(t, lines[2], "Тревога")
	assert.Contains(t, lines[2], "Критический")
	assert.Contains(t, lines[3], "Завершено")
	assert.Contains(t, lines[4], "unknown", "unknown enum values are shown raw")
}

func TestPagerLine(t *testing.T) {
	capture(t)
	line := PagerLine("Показано 3 из 3", 1, 1, false, false)
	assert.Equal(t, "Показано 3 из 3   стр. 1/1   ← Назад   Вперёд →", line)
	assert.Contains(t, PagerLine("Показано 0 из 0", 1, 0, false, false), "стр. 1/1")
}

func TestTimestamp(t *testing.T) {
	assert.Equal(t, placeholder, Timestamp(""))
	assert.Equal(t, "not a date", Timestamp("not a date"))
	assert.NotEqual(t, "2024-05-01T10:00:00Z", Timestamp("2024-05-01T10:00:00Z"))
	assert.Len(t, Date("2024-05-01"), len("01.05.2024"))
}

func TestRows(t *testing.T) {
	five := 5
	last := "2024-05-01T10:00:00Z"
	objects := ObjectRows([]models.ObjectListItem{
		{ID: "101", Name: "Аптека", Disabled: true, EventsToday: &five, LastEventAt: &last},
		{ID: "102", Name: "Склад"},
	})
	assert.Equal(t, "5", objects[0][4])
	assert.Equal(t, "Отключён", objects[0][6])
	assert.Equal(t, placeholder, objects[1][4])

	users := UserRows([]models.User{{ID: "1", Username: "op1", Role: models.RoleOperator, IsActive: false}})
	assert.Equal(t, []string{"1", "op1", placeholder, "Оператор", "нет", "Никогда"}, users[0])

	notes := NotificationRows([]models.Notification{{Title: "Предупреждение", Read: false}, {Title: "x", Read: true}})
	assert.Equal(t, "●", notes[0][0])
	assert.Equal(t, " ", notes[1][0])

	open := true
	groups := GroupRows([]models.ObjectGroup{{Group: 1, IsOpen: &open}, {Group: 2}})
	assert.Equal(t, "Снята с охраны", groups[0][2])
	assert.Equal(t, placeholder, groups[1][2])

	reports := ReportRows([]models.Report{{ID: "r1", Type: models.ReportWeekly, Status: models.ReportSent, PeriodStart: "2024-04-22", PeriodEnd: "2024-04-28"}})
	assert.Contains(t, reports[0][2], "–")
	assert.Equal(t, "Недельный", reports[0][1])
}

func TestStatusLines(t *testing.T) {
	buf := capture(t)
	Success("Готово: %d объектов", 42)
	Error("%s", "Invalid credentials")
	KeyValue("Объект", "Аптека")
	require.NoError(t, JSON(map[string]int{"objects": 42}))

	out := buf.String()
	assert.Contains(t, out, "✓ Готово: 42 объектов")
	assert.Contains(t, out, "Error: Invalid credentials")
	assert.Contains(t, out, "Объект:")
	assert.Contains(t, out, "\"objects\": 42")
}

func TestBarAndTrend(t *testing.T) {
	capture(t)
	assert.Equal(t, "", Bar(0, 10, 20))
	assert.Equal(t, strings.Repeat("█", 10), Bar(5, 10, 20))
	assert.Equal(t, "█", Bar(1, 1000, 20))
	assert.Equal(t, "▲ 12.5%", Trend(12.5))
	assert.Equal(t, "▼ 3.0%", Trend(-3))
}
