package reports_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariaalvez/vetclinic-api/internal/application/reports"
	"github.com/mariaalvez/vetclinic-api/internal/domain/entity"
)

func TestConsultations_FiltroPorTutorYOrden(t *testing.T) {
	e := newEnv(t)

	tutorA := &entity.Tutor{Name: "Ana", CPF: "11111111111"}
	require.NoError(t, e.store.Tutors().Create(tutorA))
	tutorB := &entity.Tutor{Name: "Bruno", CPF: "22222222222"}
	require.NoError(t, e.store.Tutors().Create(tutorB))

	rex := &entity.Animal{Name: "Rex", TutorID: tutorA.ID, Species: "Canina"}
	require.NoError(t, e.store.Animals().Create(rex))
	mia := &entity.Animal{Name: "Mia", TutorID: tutorB.ID, Species: "Felina"}
	require.NoError(t, e.store.Animals().Create(mia))

	vet := &entity.Veterinarian{Name: "Dra. Souza"}
	require.NoError(t, e.store.Vets().Create(vet))

	crear := func(animalID string, daysAgo int, diagnosis string) {
		t.Helper()
		require.NoError(t, e.store.Repos().Consultations.Create(&entity.Consultation{
			AnimalID:       animalID,
			VeterinarianID: vet.ID,
			AttendedAt:     hoy.AddDate(0, 0, -daysAgo),
			Diagnosis:      diagnosis,
		}))
	}
	crear(rex.ID, 1, "Otitis")
	crear(rex.ID, 5, "Control")
	crear(mia.ID, 2, "Vacunación anual")

	// Sin filtros: todas, de la más reciente a la más antigua.
	rows, err := e.reports.Consultations(reports.ConsultationFilter{}, 0, 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Otitis", rows[0].Consultation.Diagnosis)
	assert.Equal(t, "Control", rows[2].Consultation.Diagnosis)
	assert.Equal(t, "Dra. Souza", rows[0].Veterinarian.Name)

	// El filtro por tutor abarca todos sus animales.
	rows, err = e.reports.Consultations(reports.ConsultationFilter{TutorID: tutorA.ID}, 0, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, rex.ID, r.Animal.ID)
	}

	// Filtro por animal combinado con rango de fechas.
	desde := hoy.AddDate(0, 0, -3)
	rows, err = e.reports.Consultations(reports.ConsultationFilter{AnimalID: rex.ID, From: &desde}, 0, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Otitis", rows[0].Consultation.Diagnosis)

	// Paginación sobre el resultado filtrado.
	rows, err = e.reports.Consultations(reports.ConsultationFilter{}, 2, 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Control", rows[0].Consultation.Diagnosis)
}

func TestServices_BusquedaInsensibleAAcentos(t *testing.T) {
	e := newEnv(t)

	company := &entity.ServiceCompany{Name: "Lab Vet", CNPJ: "11222333000181"}
	require.NoError(t, e.store.Companies().Create(company))
	rex := &entity.Animal{Name: "Rex", Species: "Canina"}
	require.NoError(t, e.store.Animals().Create(rex))

	crear := func(daysAgo int, meds, procs string) {
		t.Helper()
		require.NoError(t, e.store.ServiceRecords().Create(&entity.ServiceRecord{
			CompanyID:       company.ID,
			AnimalID:        rex.ID,
			PerformedAt:     hoy.AddDate(0, 0, -daysAgo),
			MedicationsNote: meds,
			ProceduresNote:  procs,
		}))
	}
	crear(1, "Ivermectína 2ml", "")
	crear(2, "", "Extracción de sangre")
	crear(3, "Dipirona", "Curación simple")

	// Busca sin acento, el dato lo tiene; recorre ambas notas.
	rows, err := e.reports.Services(reports.ServiceFilter{Search: "ivermectina"}, 0, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Lab Vet", rows[0].Company.Name)

	rows, err = e.reports.Services(reports.ServiceFilter{Search: "EXTRACCION"}, 0, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// Sin búsqueda: todas, de la más reciente a la más antigua.
	rows, err = e.reports.Services(reports.ServiceFilter{}, 0, 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.True(t, rows[0].Record.PerformedAt.After(rows[2].Record.PerformedAt))

	// Rango de fechas.
	hasta := hoy.AddDate(0, 0, -2)
	rows, err = e.reports.Services(reports.ServiceFilter{To: &hasta}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
