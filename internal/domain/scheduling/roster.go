package scheduling

// DemoDirectory returns the seeded directory used when no database is configured.
func DemoDirectory() *MapDirectory {
	d := NewMapDirectory()

	d.AddClinic(Clinic{ID: "clinic-1", Name: "Dental One Downtown"})

	doctors := []User{
		{ID: "doc-1", FirstName: "Sarah", LastName: "Whitfield", Email: "s.whitfield@dentalone.test", Role: RoleDoctor},
		{ID: "doc-2", FirstName: "Rajesh", LastName: "Karki", Email: "r.karki@dentalone.test", Role: RoleDoctor},
		{ID: "doc-3", FirstName: "Elena", LastName: "Moreau", Email: "e.moreau@dentalone.test", Role: RoleDoctor},
	}
	patients := []User{
		{ID: "pat-1", FirstName: "John", LastName: "Miller", Email: "john.miller@example.com", Role: RolePatient},
		{ID: "pat-2", FirstName: "Aisha", LastName: "Rahman", Email: "aisha.rahman@example.com", Role: RolePatient},
		{ID: "pat-3", FirstName: "Tomas", LastName: "Novak", Email: "tomas.novak@example.com", Role: RolePatient},
		{ID: "pat-4", FirstName: "Mei", LastName: "Lin", Email: "mei.lin@example.com", Role: RolePatient},
		{ID: "pat-5", FirstName: "Grace", LastName: "Okafor", Email: "grace.okafor@example.com", Role: RolePatient},
		{ID: "pat-6", FirstName: "Lucas", LastName: "Ferreira", Email: "lucas.ferreira@example.com", Role: RolePatient},
	}
	for _, u := range doctors {
		d.AddUser(u)
	}
	for _, u := range patients {
		d.AddUser(u)
	}

	for _, s := range []ServiceRecord{
		{ID: "svc-1", Name: "Routine Check-up"},
		{ID: "svc-2", Name: "Teeth Cleaning"},
		{ID: "svc-3", Name: "Tooth Filling"},
		{ID: "svc-4", Name: "Root Canal Treatment"},
		{ID: "svc-5", Name: "Tooth Extraction"},
		{ID: "svc-6", Name: "Orthodontic Consultation"},
	} {
		d.AddService(s)
	}
	return d
}

var sampleSymptoms = []string{
	"Toothache on lower left molar",
	"Sensitivity to cold drinks",
	"Bleeding gums when brushing",
	"Jaw pain after chewing",
	"Chipped front tooth",
	"",
}

var sampleNotes = []string{
	"Patient prefers morning visits",
	"Review x-rays from last visit",
	"Allergic to penicillin",
	"Bring previous treatment records",
	"",
}
