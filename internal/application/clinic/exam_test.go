package clinic_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariaalvez/vetclinic-api/internal/application/clinic"
	"github.com/mariaalvez/vetclinic-api/internal/domain"
	"github.com/mariaalvez/vetclinic-api/internal/infrastructure/memory"
)

func TestExam_CicloDeCatalogo(t *testing.T) {
	store := memory.NewStore()
	uc := clinic.NewExamUseCase(store.Exams())

	hemograma, err := uc.Create("Hemograma completo")
	require.NoError(t, err)
	require.NotEmpty(t, hemograma.ID)

	_, err = uc.Create("Radiografía")
	require.NoError(t, err)

	// Nombre duplicado.
	_, err = uc.Create("Hemograma completo")
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Nombre vacío o demasiado largo.
	_, err = uc.Create("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(strings.Repeat("x", 101))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Renombrar no puede colisionar con otro examen.
	_, err = uc.Update(hemograma.ID, "Radiografía")
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	renamed, err := uc.Update(hemograma.ID, "Hemograma")
	require.NoError(t, err)
	assert.Equal(t, "Hemograma", renamed.Name)

	exams, err := uc.List(0, 0)
	require.NoError(t, err)
	assert.Len(t, exams, 2)

	require.NoError(t, uc.Delete(hemograma.ID))
	err = uc.Delete(hemograma.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConsultation_ExamenesSolicitados(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	examUC := clinic.NewExamUseCase(f.store.Exams())

	hemograma, err := examUC.Create("Hemograma")
	require.NoError(t, err)
	rx, err := examUC.Create("Radiografía")
	require.NoError(t, err)

	input := clinic.ConsultationInput{
		AnimalID:       f.animal.ID,
		VeterinarianID: f.vet.ID,
		AttendedAt:     hoy,
		Diagnosis:      "Otitis",
		ExamIDs:        []string{hemograma.ID, rx.ID, hemograma.ID}, // repetido
		AsOf:           hoy,
	}
	cons, err := f.consultation.Create(ctx, input)
	require.NoError(t, err)
	// Los repetidos se colapsan conservando el orden de solicitud.
	assert.Equal(t, []string{hemograma.ID, rx.ID}, cons.ExamIDs)

	saved, err := f.store.Repos().Consultations.GetByID(cons.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{hemograma.ID, rx.ID}, saved.ExamIDs)

	// Mientras una consulta lo referencie, el examen no puede borrarse.
	err = examUC.Delete(hemograma.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// La edición reescribe el conjunto de exámenes.
	input.ExamIDs = []string{rx.ID}
	_, err = f.consultation.Update(ctx, cons.ID, input)
	require.NoError(t, err)
	saved, err = f.store.Repos().Consultations.GetByID(cons.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{rx.ID}, saved.ExamIDs)

	// Ahora sí se puede quitar del catálogo.
	require.NoError(t, examUC.Delete(hemograma.ID))
}

func TestConsultation_ExamenInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.consultation.Create(context.Background(), clinic.ConsultationInput{
		AnimalID:       f.animal.ID,
		VeterinarianID: f.vet.ID,
		AttendedAt:     hoy,
		Diagnosis:      "Otitis",
		ExamIDs:        []string{"no-existe"},
		AsOf:           hoy,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
