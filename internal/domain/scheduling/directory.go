package scheduling

import "strings"

// Fallback display values for references the directory cannot resolve.
const (
	UnknownPatient = "Unknown Patient"
	UnknownDoctor  = "Unknown Doctor"
	UnknownService = "Unknown Service"
	UnknownClinic  = "Unknown Clinic"
)

// User is a patient or staff member record.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// ServiceRecord is a bookable clinic service.
type ServiceRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Clinic is a practice location.
type Clinic struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Directory resolves ids to read-only records. A miss returns false, never an error.
type Directory interface {
	ResolveUser(id string) (User, bool)
	ResolveService(id string) (ServiceRecord, bool)
	ResolveClinic(id string) (Clinic, bool)
}

// Roles used to build a generator roster from a directory.
const (
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// MapDirectory is a Directory backed by keyed maps. It also remembers
// insertion order so a deterministic roster can be derived from it.
type MapDirectory struct {
	users    map[string]User
	services map[string]ServiceRecord
	clinics  map[string]Clinic

	userOrder    []string
	serviceOrder []string
	clinicOrder  []string
}

// NewMapDirectory creates an empty MapDirectory.
func NewMapDirectory() *MapDirectory {
	return &MapDirectory{
		users:    make(map[string]User),
		services: make(map[string]ServiceRecord),
		clinics:  make(map[string]Clinic),
	}
}

func (d *MapDirectory) AddUser(u User) {
	if _, ok := d.users[u.ID]; !ok {
		d.userOrder = append(d.userOrder, u.ID)
	}
	d.users[u.ID] = u
}

func (d *MapDirectory) AddService(s ServiceRecord) {
	if _, ok := d.services[s.ID]; !ok {
		d.serviceOrder = append(d.serviceOrder, s.ID)
	}
	d.services[s.ID] = s
}

func (d *MapDirectory) AddClinic(c Clinic) {
	if _, ok := d.clinics[c.ID]; !ok {
		d.clinicOrder = append(d.clinicOrder, c.ID)
	}
	d.clinics[c.ID] = c
}

func (d *MapDirectory) ResolveUser(id string) (User, bool) {
	u, ok := d.users[id]
	return u, ok
}

func (d *MapDirectory) ResolveService(id string) (ServiceRecord, bool) {
	s, ok := d.services[id]
	return s, ok
}

func (d *MapDirectory) ResolveClinic(id string) (Clinic, bool) {
	c, ok := d.clinics[id]
	return c, ok
}

// Roster derives the generator roster: doctors and patients by role, all
// services, and the first clinic.
func (d *MapDirectory) Roster() Roster {
	var r Roster
	for _, id := range d.userOrder {
		switch d.users[id].Role {
		case RoleDoctor:
			r.Doctors = append(r.Doctors, id)
		case RolePatient:
			r.Patients = append(r.Patients, id)
		}
	}
	r.Services = append(r.Services, d.serviceOrder...)
	if len(d.clinicOrder) > 0 {
		r.ClinicID = d.clinicOrder[0]
	}
	return r
}

// AppointmentView is an appointment with its directory references resolved
// for display.
type AppointmentView struct {
	Appointment
	PatientName  string `json:"patient_name"`
	PatientEmail string `json:"patient_email,omitempty"`
	DoctorName   string `json:"doctor_name"`
	ServiceName  string `json:"service_name"`
	ClinicName   string `json:"clinic_name"`
}

// Resolve fills display names, falling back to the Unknown* placeholders.
func Resolve(a Appointment, dir Directory) AppointmentView {
	v := AppointmentView{
		Appointment: a,
		PatientName: UnknownPatient,
		DoctorName:  UnknownDoctor,
		ServiceName: UnknownService,
		ClinicName:  UnknownClinic,
	}
	if dir == nil {
		return v
	}
	if p, ok := dir.ResolveUser(a.PatientID); ok {
		v.PatientName = p.FullName()
		v.PatientEmail = p.Email
	}
	if d, ok := dir.ResolveUser(a.DoctorID); ok {
		v.DoctorName = d.FullName()
	}
	if s, ok := dir.ResolveService(a.PrimaryServiceID()); ok {
		v.ServiceName = s.Name
	}
	if c, ok := dir.ResolveClinic(a.ClinicID); ok {
		v.ClinicName = c.Name
	}
	return v
}

// ResolveAll resolves every appointment in list order.
func ResolveAll(list []Appointment, dir Directory) []AppointmentView {
	out := make([]AppointmentView, 0, len(list))
	for _, a := range list {
		out = append(out, Resolve(a, dir))
	}
	return out
}
