package scheduling

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// generatorWindowDays is the span of generated data, starting at the Monday
// of the current week.
const generatorWindowDays = 14

var appointmentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("dental-one/appointment"))

// TimeOfDay is a wall-clock slot start.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On returns the instant of t on day's calendar date in day's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, day.Location())
}

// DefaultSlots are the candidate start times: a morning and an afternoon block.
var DefaultSlots = []TimeOfDay{
	{9, 0}, {9, 30}, {10, 0}, {10, 30}, {11, 0}, {11, 30},
	{14, 0}, {14, 30}, {15, 0}, {15, 30}, {16, 0}, {16, 30},
}

// Roster is the set of ids the generator draws from.
type Roster struct {
	Doctors  []string `json:"doctors"`
	Patients []string `json:"patients"`
	Services []string `json:"services"`
	ClinicID string   `json:"clinic_id"`
}

// GeneratorParams are the explicit inputs to GenerateAppointments.
type GeneratorParams struct {
	Now    time.Time
	Rand   Rand
	Roster Roster
	Slots  []TimeOfDay
}

type doctorSlot struct {
	doctorID string
	start    time.Time
}

// GenerateAppointments builds the synthetic canonical list for the two weeks
// starting at the Monday of Now's week. Weekends are skipped. Each weekday
// draws 2-4 candidates; a candidate whose doctor already holds that start time
// on the same day is dropped, not redrawn, so a day may come up short.
// The result is sorted ascending by start time.
func GenerateAppointments(p GeneratorParams) []Appointment {
	slots := p.Slots
	if slots == nil {
		slots = DefaultSlots
	}
	r := p.Roster
	if len(slots) == 0 || len(r.Doctors) == 0 || len(r.Patients) == 0 || len(r.Services) == 0 {
		return []Appointment{}
	}

	appointments := make([]Appointment, 0, generatorWindowDays*4)
	weekStart := WeekStart(p.Now)

	for dayIndex := 0; dayIndex < generatorWindowDays; dayIndex++ {
		day := weekStart.AddDate(0, 0, dayIndex)
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}

		accepted := make(map[doctorSlot]struct{})
		count := 2 + p.Rand.IntN(3)

		for i := 0; i < count; i++ {
			start := slots[p.Rand.IntN(len(slots))].On(day)
			doctorID := r.Doctors[p.Rand.IntN(len(r.Doctors))]

			key := doctorSlot{doctorID: doctorID, start: start}
			if _, taken := accepted[key]; taken {
				continue
			}
			accepted[key] = struct{}{}

			appointments = append(appointments, Appointment{
				ID:         uuid.NewSHA1(appointmentNamespace, []byte(doctorID+"|"+start.Format(time.RFC3339))).String(),
				PatientID:  r.Patients[(dayIndex+i)%len(r.Patients)],
				DoctorID:   doctorID,
				ClinicID:   r.ClinicID,
				ServiceIDs: []string{r.Services[p.Rand.IntN(len(r.Services))]},
				StartTime:  start,
				EndTime:    start.Add(SlotDuration),
				Status:     DeriveStatus(p.Now, start, p.Rand),
				Symptoms:   sampleSymptoms[p.Rand.IntN(len(sampleSymptoms))],
				Notes:      sampleNotes[p.Rand.IntN(len(sampleNotes))],
				IsFollowUp: p.Rand.Float64() < 0.3,
				CreatedAt:  p.Now,
				UpdatedAt:  p.Now,
			})
		}
	}

	sortByStart(appointments)
	return appointments
}

// sortByStart orders ascending by StartTime, keeping generation order for ties.
func sortByStart(list []Appointment) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].StartTime.Before(list[j].StartTime)
	})
}
