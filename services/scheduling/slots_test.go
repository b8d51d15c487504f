package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agendly/models"
)

// 2025-11-24 is a Monday.
const mondayISO = "2025-11-24"

func beforeMonday() time.Time {
	return time.Date(2025, 11, 20, 8, 0, 0, 0, time.UTC)
}

func TestGetAvailableSlotsNoAvailability(t *testing.T) {
	engine, repo := newTestEngine(beforeMonday())
	repo.addAppointment("cut", 30)

	out, err := engine.GetAvailableSlots(context.Background(), testTenant, testWorker, mondayISO, []string{"cut"})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestGetAvailableSlotsHourlyAnchors(t *testing.T) {
	engine, repo := newTestEngine(beforeMonday())
	repo.addAppointment("cut", 30)
	repo.setDay(testWorker, 0, models.TimeRange{Start: "09:00", End: "12:00"})

	out, err := engine.GetAvailableSlots(context.Background(), testTenant, testWorker, mondayISO, []string{"cut"})
	require.NoError(t, err)

	assert.Equal(t, map[string]models.SlotView{
		"1": {HorarioInicio: "09:00", HorarioFim: "09:30"},
		"2": {HorarioInicio: "10:00", HorarioFim: "10:30"},
		"3": {HorarioInicio: "11:00", HorarioFim: "11:30"},
	}, out)
}

func TestGetAvailableSlotsAcceptsBothDateFormats(t *testing.T) {
	engine, repo := newTestEngine(beforeMonday())
	repo.addAppointment("cut", 30)
	repo.setDay(testWorker, 0, models.TimeRange{Start: "09:00", End: "12:00"})

	iso, err := engine.GetAvailableSlots(context.Background(), testTenant, testWorker, mondayISO, []string{"cut"})
	require.NoError(t, err)
	br, err := engine.GetAvailableSlots(context.Background(), testTenant, testWorker, "24/11/2025", []string{"cut"})
	require.NoError(t, err)
	assert.Equal(t, iso, br)
}

func TestGetAvailableSlotsOverlapTolerance(t *testing.T) {
	engine, repo := newTestEngine(beforeMonday())
	repo.addAppointment("cut", 30)
	repo.addAppointment("fringe", 10)
	repo.setDay(testWorker, 0, models.TimeRange{Start: "09:00", End: "12:00"})
	require.NoError(t, repo.SetSchedulingConfig(context.Background(), &models.SchedulingConfig{
		TenantID:         testTenant,
		OverlapTolerance: 10,
	}))

	// A 30-minute service cannot fit in the tolerance window alone.
	out, err := engine.GetAvailableSlots(context.Background(), testTenant, testWorker, mondayISO, []string{"cut"})
	require.NoError(t, err)
	assert.Len(t, out, 3)
	assert.NotContains(t, out, "4")

	// A 10-minute service gains the 12:00 slot that runs into the tolerance.
	out, err = engine.GetAvailableSlots(context.Background(), testTenant, testWorker, mondayISO, []string{"fringe"})
	require.NoError(t, err)
	assert.Equal(t, map[string]models.SlotView{
		"1": {HorarioInicio: "09:00", HorarioFim: "09:10"},
		"2": {HorarioInicio: "10:00", HorarioFim: "10:10"},
		"3": {HorarioInicio: "11:00", HorarioFim: "11:10"},
		"4": {HorarioInicio: "12:00", HorarioFim: "12:10"},
	}, out)
}

func TestGetAvailableSlotsSameDayLeadIn(t *testing.T) {
	now := time.Date(2025, 11, 24, 10, 5, 0, 0, time.UTC)
	engine, repo := newTestEngine(now)
	repo.addAppointment("cut", 30)
	repo.setDay(testWorker, 0, models.TimeRange{Start: "09:00", End: "12:00"})

	out, err := engine.GetAvailableSlots(context.Background(), testTenant, testWorker, mondayISO, []string{"cut"})
	require.NoError(t, err)

	// 10:05 plus the 10-minute lead-in pushes the first slot to 10:15; the
	// next anchor is the following whole hour.
	assert.Equal(t, map[string]models.SlotView{
		"1": {HorarioInicio: "10:15", HorarioFim: "10:45"},
		"2": {HorarioInicio: "11:00", HorarioFim: "11:30"},
	}, out)
}

func TestGetAvailableSlotsAroundExistingBooking(t *testing.T) {
	engine, repo := newTestEngine(beforeMonday())
	repo.addAppointment("cut", 30)
	repo.setDay(testWorker, 0, models.TimeRange{Start: "09:00", End: "12:00"})
	require.NoError(t, repo.CreateScheduling(context.Background(), &models.Scheduling{
		ID:       "existing",
		TenantID: testTenant,
		WorkerID: testWorker,
		ClientID: testClient,
		Date:     mondayISO,
		Start:    600, // 10:00
		End:      630, // 10:30
		Duration: 30,
	}))

	out, err := engine.GetAvailableSlots(context.Background(), testTenant, testWorker, mondayISO, []string{"cut"})
	require.NoError(t, err)

	// The free window reopens at 10:30, and the hourly anchor continues.
	assert.Equal(t, map[string]models.SlotView{
		"1": {HorarioInicio: "09:00", HorarioFim: "09:30"},
		"2": {HorarioInicio: "10:30", HorarioFim: "11:00"},
		"3": {HorarioInicio: "11:00", HorarioFim: "11:30"},
	}, out)
}

func TestGetAvailableSlotsCancelledBookingIgnored(t *testing.T) {
	engine, repo := newTestEngine(beforeMonday())
	repo.addAppointment("cut", 30)
	repo.setDay(testWorker, 0, models.TimeRange{Start: "09:00", End: "12:00"})
	require.NoError(t, repo.CreateScheduling(context.Background(), &models.Scheduling{
		ID:       "existing",
		TenantID: testTenant,
		WorkerID: testWorker,
		ClientID: testClient,
		Date:     mondayISO,
		Start:    600,
		End:      630,
		Duration: 30,
	}))
	require.NoError(t, repo.CancelScheduling(context.Background(), testTenant, "existing"))

	out, err := engine.GetAvailableSlots(context.Background(), testTenant, testWorker, mondayISO, []string{"cut"})
	require.NoError(t, err)
	assert.Len(t, out, 3)
	assert.Equal(t, models.SlotView{HorarioInicio: "10:00", HorarioFim: "10:30"}, out["2"])
}

func TestGetAvailableSlotsMultipleAppointments(t *testing.T) {
	engine, repo := newTestEngine(beforeMonday())
	repo.addAppointment("cut", 30)
	repo.addAppointment("beard", 15)
	repo.setDay(testWorker, 0, models.TimeRange{Start: "09:00", End: "12:00"})

	out, err := engine.GetAvailableSlots(context.Background(), testTenant, testWorker, mondayISO, []string{"cut", "beard"})
	require.NoError(t, err)

	// Durations sum to 45 minutes per slot.
	assert.Equal(t, map[string]models.SlotView{
		"1": {HorarioInicio: "09:00", HorarioFim: "09:45"},
		"2": {HorarioInicio: "10:00", HorarioFim: "10:45"},
		"3": {HorarioInicio: "11:00", HorarioFim: "11:45"},
	}, out)
}

func TestGetAvailableSlotsSplitDay(t *testing.T) {
	engine, repo := newTestEngine(beforeMonday())
	repo.addAppointment("cut", 30)
	repo.setDay(testWorker, 0,
		models.TimeRange{Start: "09:00", End: "10:00"},
		models.TimeRange{Start: "14:00", End: "16:00"},
	)

	out, err := engine.GetAvailableSlots(context.Background(), testTenant, testWorker, mondayISO, []string{"cut"})
	require.NoError(t, err)

	assert.Equal(t, map[string]models.SlotView{
		"1": {HorarioInicio: "09:00", HorarioFim: "09:30"},
		"2": {HorarioInicio: "14:00", HorarioFim: "14:30"},
		"3": {HorarioInicio: "15:00", HorarioFim: "15:30"},
	}, out)
}

func TestGetAvailableSlotsDayEndRendering(t *testing.T) {
	engine, repo := newTestEngine(beforeMonday())
	repo.addAppointment("late", 60)
	repo.setDay(testWorker, 0, models.TimeRange{Start: "23:00", End: "23:40"})
	require.NoError(t, repo.SetSchedulingConfig(context.Background(), &models.SchedulingConfig{
		TenantID:         testTenant,
		OverlapTolerance: 30, // capped at end of day
	}))

	out, err := engine.GetAvailableSlots(context.Background(), testTenant, testWorker, mondayISO, []string{"late"})
	require.NoError(t, err)
	// A closing edge on the day boundary renders "24:00", not next midnight.
	assert.Equal(t, map[string]models.SlotView{
		"1": {HorarioInicio: "23:00", HorarioFim: "24:00"},
	}, out)
}

func TestGetAvailableSlotsErrors(t *testing.T) {
	engine, repo := newTestEngine(beforeMonday())
	repo.addAppointment("cut", 30)
	repo.setDay(testWorker, 0, models.TimeRange{Start: "09:00", End: "12:00"})

	_, err := engine.GetAvailableSlots(context.Background(), testTenant, testWorker, "not-a-date", []string{"cut"})
	assert.Equal(t, CodeInvalidInput, CodeOf(err))

	_, err = engine.GetAvailableSlots(context.Background(), testTenant, testWorker, mondayISO, []string{"ghost"})
	assert.Equal(t, CodeInvalidInput, CodeOf(err))

	// Appointment ids resolve per tenant, so another tenant's set is unknown.
	_, err = engine.GetAvailableSlots(context.Background(), "tenant-2", testWorker, mondayISO, []string{"cut"})
	assert.Equal(t, CodeInvalidInput, CodeOf(err))
}

func TestGetAvailableSlotsEmptyAppointmentSet(t *testing.T) {
	engine, repo := newTestEngine(beforeMonday())
	repo.setDay(testWorker, 0, models.TimeRange{Start: "09:00", End: "12:00"})

	out, err := engine.GetAvailableSlots(context.Background(), testTenant, testWorker, mondayISO, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
